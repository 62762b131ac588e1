package locator

import "testing"

func TestEpubScrollRoundTrip(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{-0.5, 0},
		{3.5, 1},
	}
	for _, tc := range cases {
		got, ok := DecodeEpubScroll(EncodeEpubScroll(tc.in))
		if !ok {
			t.Fatalf("DecodeEpubScroll(encode(%v)) not ok", tc.in)
		}
		if got != tc.want {
			t.Fatalf("round trip %v = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestPdfPageRoundTrip(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 0},
		{11, 11},
		{-3, 0},
	}
	for _, tc := range cases {
		got, ok := DecodePdfPage(EncodePdfPage(tc.in))
		if !ok {
			t.Fatalf("DecodePdfPage(encode(%d)) not ok", tc.in)
		}
		if got != tc.want {
			t.Fatalf("round trip %d = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestCrossFormatTagsRejected(t *testing.T) {
	if _, ok := DecodeEpubScroll(EncodePdfPage(4)); ok {
		t.Fatalf("epub decoder accepted a pdf locator")
	}
	if _, ok := DecodePdfPage(EncodeEpubScroll(0.4)); ok {
		t.Fatalf("pdf decoder accepted an epub locator")
	}
}

func TestDecodeMalformed(t *testing.T) {
	for _, loc := range []string{"", "garbage", "epub-scroll:", "epub-scroll:abc", "epub-scroll:NaN", "pdf-page:", "pdf-page:x", "pdf-page:1.5"} {
		if _, ok := DecodeEpubScroll(loc); ok {
			t.Fatalf("DecodeEpubScroll(%q) unexpectedly ok", loc)
		}
		if _, ok := DecodePdfPage(loc); ok {
			t.Fatalf("DecodePdfPage(%q) unexpectedly ok", loc)
		}
	}
}

func TestDecodeClampsOutOfRangeValues(t *testing.T) {
	if got, ok := DecodeEpubScroll("epub-scroll:2.5"); !ok || got != 1 {
		t.Fatalf("DecodeEpubScroll(2.5) = %v, %v, want 1, true", got, ok)
	}
	if got, ok := DecodeEpubScroll("epub-scroll:-1"); !ok || got != 0 {
		t.Fatalf("DecodeEpubScroll(-1) = %v, %v, want 0, true", got, ok)
	}
	if got, ok := DecodePdfPage("pdf-page:-7"); !ok || got != 0 {
		t.Fatalf("DecodePdfPage(-7) = %d, %v, want 0, true", got, ok)
	}
}
