package output

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/maxvaer/sitemapprobe/internal/probe"
	"golang.org/x/term"
)

const (
	headerLine = "🧪 Testing valid ranges from database analysis..."
	footerLine = "🎯 If these work, your sitemap optimization is successful!"
)

// TextWriter writes the human-readable, emoji-marked console report.
type TextWriter struct {
	w    io.Writer
	pass *color.Color
	fail *color.Color
}

// NewTextWriter creates a text writer. Colors are used only when w is a
// terminal and noColor is false.
func NewTextWriter(w io.Writer, noColor bool) *TextWriter {
	pass := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	if !noColor && isTerminal(w) {
		pass.EnableColor()
		fail.EnableColor()
	} else {
		pass.DisableColor()
		fail.DisableColor()
	}
	return &TextWriter{w: w, pass: pass, fail: fail}
}

func (t *TextWriter) WriteHeader() error {
	_, err := fmt.Fprintln(t.w, headerLine)
	return err
}

func (t *TextWriter) WriteProbeStart(r probe.Range) error {
	_, err := fmt.Fprintf(t.w, "\nTesting range %s-%s...\n",
		humanize.Comma(int64(r.Start)), humanize.Comma(int64(r.End)))
	return err
}

func (t *TextWriter) WriteResult(result *probe.Result) error {
	var err error
	switch result.Outcome {
	case probe.OutcomeOK:
		_, err = t.pass.Fprintf(t.w, "✅ SUCCESS: %d URLs in %.0fms", result.URLCount, result.Millis())
	case probe.OutcomeHTTPError:
		_, err = t.fail.Fprintf(t.w, "❌ HTTP %d in %.0fms", result.StatusCode, result.Millis())
	default:
		_, err = t.fail.Fprintf(t.w, "❌ ERROR: %s", result.ErrorMessage())
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(t.w)
	return err
}

func (t *TextWriter) WriteFooter() error {
	_, err := fmt.Fprintf(t.w, "\n%s\n", footerLine)
	return err
}

func (t *TextWriter) Close() error {
	if closer, ok := t.w.(io.Closer); ok && t.w != os.Stdout && t.w != os.Stderr {
		return closer.Close()
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
