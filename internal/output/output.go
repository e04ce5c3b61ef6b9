package output

import (
	"fmt"
	"io"

	"github.com/maxvaer/sitemapprobe/internal/config"
	"github.com/maxvaer/sitemapprobe/internal/probe"
)

// Writer is implemented by each output format.
type Writer interface {
	WriteHeader() error
	WriteProbeStart(r probe.Range) error
	WriteResult(result *probe.Result) error
	WriteFooter() error
	Close() error
}

// New returns the writer for format, writing to w.
func New(format string, w io.Writer, noColor bool) (Writer, error) {
	switch format {
	case config.FormatJSON:
		return NewJSONWriter(w), nil
	case config.FormatText, "":
		return NewTextWriter(w, noColor), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
