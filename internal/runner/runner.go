package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/maxvaer/sitemapprobe/internal/config"
	"github.com/maxvaer/sitemapprobe/internal/output"
	"github.com/maxvaer/sitemapprobe/internal/probe"
)

// Run probes every default range against opts.BaseURL and reports each
// outcome to out. Probe failures are reported, never returned: the error
// is non-nil only for bad options, a cancelled run or a failed write.
func Run(ctx context.Context, opts *config.Options, out output.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	req, err := probe.NewRequester(opts, logger)
	if err != nil {
		return fmt.Errorf("creating requester: %w", err)
	}
	logger.Info("starting sitemap probe",
		slog.String("base_url", opts.BaseURL),
		slog.Duration("timeout", opts.Timeout),
		slog.Int("ranges", len(probe.DefaultRanges)))
	return ProbeRanges(ctx, req, probe.DefaultRanges, out, logger)
}

// ProbeRanges probes ranges one at a time, in order. A failed probe does
// not stop the loop; a cancelled context stops it before the next probe.
func ProbeRanges(ctx context.Context, req *probe.Requester, ranges []probe.Range, out output.Writer, logger *slog.Logger) error {
	if err := out.WriteHeader(); err != nil {
		return err
	}

	var failed int
	for _, r := range ranges {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := out.WriteProbeStart(r); err != nil {
			return err
		}

		result := req.Probe(ctx, r)
		if !result.OK() {
			failed++
		}
		if err := out.WriteResult(&result); err != nil {
			return err
		}
	}

	logger.Info("sitemap probe finished",
		slog.Int("probed", len(ranges)),
		slog.Int("failed", failed))
	return out.WriteFooter()
}
