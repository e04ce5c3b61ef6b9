package probe

import "time"

// Outcome classifies a probe.
type Outcome int

const (
	OutcomeOK             Outcome = iota // HTTP 200, body inspected
	OutcomeHTTPError                     // any other status, body ignored
	OutcomeTransportError                // no response: timeout, refused, DNS, read error
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeHTTPError:
		return "http_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Result holds the outcome of a single range probe.
type Result struct {
	Range      Range
	URL        string
	Outcome    Outcome
	StatusCode int // 0 for transport errors
	Elapsed    time.Duration
	URLCount   int    // only set for OutcomeOK
	Size       int64  // body bytes, only set for OutcomeOK
	PartsCount string // X-Parts-Count header, if sent
	Empty      bool   // X-Empty-Sitemap: true
	Err        error  // only set for OutcomeTransportError
}

// OK reports whether the probe returned HTTP 200.
func (r *Result) OK() bool { return r.Outcome == OutcomeOK }

// Millis returns the elapsed time in milliseconds.
func (r *Result) Millis() float64 {
	if r.Elapsed < 0 {
		return 0
	}
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// ErrorMessage returns the transport error text, or "" if there was none.
func (r *Result) ErrorMessage() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}
