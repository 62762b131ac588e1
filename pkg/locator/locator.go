// Package locator encodes reading positions as opaque format-tagged strings.
//
// EPUB positions are a vertical scroll fraction over the whole flattened
// book; PDF positions are a zero-based page index. A locator produced for
// one format never decodes under the other format's tag.
package locator

import (
	"math"
	"strconv"
	"strings"
)

const (
	epubScrollPrefix = "epub-scroll:"
	pdfPagePrefix    = "pdf-page:"
)

// EncodeEpubScroll encodes a scroll fraction, clamped to [0,1].
func EncodeEpubScroll(percent float64) string {
	return epubScrollPrefix + strconv.FormatFloat(clampFraction(percent), 'f', -1, 64)
}

// DecodeEpubScroll returns the clamped scroll fraction, or ok=false when the
// locator does not carry the epub-scroll tag or does not parse.
func DecodeEpubScroll(loc string) (float64, bool) {
	rest, found := strings.CutPrefix(loc, epubScrollPrefix)
	if !found {
		return 0, false
	}
	v, err := strconv.ParseFloat(rest, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return clampFraction(v), true
}

// EncodePdfPage encodes a page index, clamped to >= 0.
func EncodePdfPage(pageIndex int) string {
	if pageIndex < 0 {
		pageIndex = 0
	}
	return pdfPagePrefix + strconv.Itoa(pageIndex)
}

// DecodePdfPage returns the clamped page index, or ok=false when the locator
// does not carry the pdf-page tag or does not parse as an integer.
func DecodePdfPage(loc string) (int, bool) {
	rest, found := strings.CutPrefix(loc, pdfPagePrefix)
	if !found {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	if n < 0 {
		n = 0
	}
	return n, true
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
