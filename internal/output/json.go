package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/maxvaer/sitemapprobe/internal/probe"
)

type jsonEntry struct {
	Range      string  `json:"range"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	URL        string  `json:"url"`
	Outcome    string  `json:"outcome"`
	StatusCode int     `json:"status,omitempty"`
	ElapsedMS  float64 `json:"elapsed_ms"`
	URLCount   *int    `json:"urls,omitempty"`
	Size       *int64  `json:"size,omitempty"`
	PartsCount string  `json:"parts_count,omitempty"`
	Empty      bool    `json:"empty,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// JSONWriter streams one JSON object per probe as each one finishes.
type JSONWriter struct {
	w   io.Writer
	enc *json.Encoder
}

// NewJSONWriter creates a JSON lines writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{w: w, enc: json.NewEncoder(w)}
}

func (j *JSONWriter) WriteHeader() error { return nil }

func (j *JSONWriter) WriteProbeStart(probe.Range) error { return nil }

func (j *JSONWriter) WriteResult(result *probe.Result) error {
	entry := jsonEntry{
		Range:      result.Range.String(),
		Start:      result.Range.Start,
		End:        result.Range.End,
		URL:        result.URL,
		Outcome:    result.Outcome.String(),
		StatusCode: result.StatusCode,
		ElapsedMS:  result.Millis(),
		Error:      result.ErrorMessage(),
	}
	if result.OK() {
		count, size := result.URLCount, result.Size
		entry.URLCount = &count
		entry.Size = &size
		entry.PartsCount = result.PartsCount
		entry.Empty = result.Empty
	}
	return j.enc.Encode(entry)
}

func (j *JSONWriter) WriteFooter() error { return nil }

func (j *JSONWriter) Close() error {
	if closer, ok := j.w.(io.Closer); ok && j.w != os.Stdout && j.w != os.Stderr {
		return closer.Close()
	}
	return nil
}
