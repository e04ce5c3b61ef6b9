package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/maxvaer/sitemapprobe/internal/config"
	"github.com/maxvaer/sitemapprobe/internal/logging"
	"github.com/maxvaer/sitemapprobe/internal/output"
	"github.com/maxvaer/sitemapprobe/internal/runner"
	"github.com/maxvaer/sitemapprobe/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	opts       *config.Options
	configFile string
	verbose    bool
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"base-url"}},
	{"HTTP", []string{"timeout", "user-agent"}},
	{"OUTPUT", []string{"format", "no-color", "log-level", "verbose"}},
	{"CONFIGURATION", []string{"config"}},
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sitemapprobe [flags]",
		Short:   "Check that sitemap ranges respond and contain URLs",
		Version: version.Version,
		Long: `sitemapprobe requests each known sitemap range once, in order, and
reports the HTTP status, the response time and the number of <url>
entries. Failures are reported and the next range is still probed.`,
		Example: `  sitemapprobe
  sitemapprobe --base-url http://localhost:3000/sitemap
  sitemapprobe --timeout 30s --format json
  SITEMAP_BASE_URL=https://staging.example.com/sitemap sitemapprobe`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cmd.Flags(), configFile)
			if err != nil {
				return err
			}
			if verbose {
				loaded.LogLevel = "debug"
			}
			if loaded.BaseURL != "" && !strings.HasPrefix(loaded.BaseURL, "http://") && !strings.HasPrefix(loaded.BaseURL, "https://") {
				loaded.BaseURL = "https://" + loaded.BaseURL
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			opts = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			logger := logging.New(opts.LogLevel, cmd.ErrOrStderr())
			out, err := output.New(opts.Format, cmd.OutOrStdout(), opts.NoColor)
			if err != nil {
				return err
			}
			defer out.Close()

			err = runner.Run(ctx, opts, out, logger)
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("interrupted")
			}
			return err
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.Flags()

	// Target
	f.String("base-url", config.DefaultBaseURL, "Sitemap base URL; ranges are appended as /{start}/{end}.xml")

	// HTTP
	f.Duration("timeout", config.DefaultTimeout, "Per-request timeout")
	f.String("user-agent", config.DefaultUserAgent, "User-Agent header")

	// Output
	f.String("format", config.FormatText, "Output format: text, json")
	f.Bool("no-color", false, "Disable colored output")
	f.String("log-level", "warn", "Log level on stderr: debug, info, warn, error")
	f.BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level debug")

	// Configuration
	f.StringVarP(&configFile, "config", "c", "", "YAML config file")

	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		w := cmd.ErrOrStderr()
		fmt.Fprintf(w, "%s\n\nUsage:\n  %s\n", cmd.Long, cmd.UseLine())
		fmt.Fprintf(w, "\nExamples:\n%s\n", cmd.Example)
		fmt.Fprintf(w, "\nFlags:\n")
		for _, g := range helpGroups {
			fmt.Fprintf(w, "\n%s:\n", g.title)
			for _, name := range g.flags {
				if f := cmd.Flags().Lookup(name); f != nil {
					fmt.Fprintln(w, formatFlag(f))
				}
			}
		}
		fmt.Fprintln(w)
	})

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func formatFlag(f *pflag.Flag) string {
	var left string
	if f.Shorthand != "" {
		left = fmt.Sprintf("-%s, --%s", f.Shorthand, f.Name)
	} else {
		left = fmt.Sprintf("    --%s", f.Name)
	}

	typ := f.Value.Type()
	if typ != "bool" {
		left += " " + typ
	}

	// Pad to fixed column width for aligned descriptions.
	const col = 30
	for len(left) < col {
		left += " "
	}

	right := f.Usage
	def := f.DefValue
	if def != "" && def != "false" && def != "0" && def != "0s" {
		right += fmt.Sprintf(" (default %s)", def)
	}

	return "   " + left + right
}
