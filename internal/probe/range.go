package probe

import (
	"bytes"
	"strconv"
	"strings"
)

// Range is one sitemap test case: the numeric ID span encoded in the
// sitemap path. Callers guarantee 0 <= Start <= End.
type Range struct {
	Start int
	End   int
}

// DefaultRanges are the ranges known to contain parts, probed in order.
var DefaultRanges = []Range{
	{Start: 1, End: 3000},
	{Start: 363001, End: 366000},
	{Start: 366001, End: 369000},
	{Start: 369001, End: 372000},
	{Start: 372001, End: 375000},
}

// Path returns the sitemap path for the range, e.g. "/1/3000.xml".
func (r Range) Path() string {
	return "/" + strconv.Itoa(r.Start) + "/" + strconv.Itoa(r.End) + ".xml"
}

func (r Range) String() string {
	return strconv.Itoa(r.Start) + "-" + strconv.Itoa(r.End)
}

// BuildURL joins base and the range path. A trailing slash on base is ignored.
func BuildURL(base string, r Range) string {
	return strings.TrimRight(base, "/") + r.Path()
}

var urlTag = []byte("<url>")

// CountURLs counts non-overlapping occurrences of "<url>" in body.
func CountURLs(body []byte) int {
	return bytes.Count(body, urlTag)
}
