package rgb

import (
	"math"
	"testing"
)

func TestParseHexRoundTrip(t *testing.T) {
	for _, s := range []string{"#050520", "#0a0a30", "#150a30", "#aaccff", "ffffff"} {
		c, err := ParseHex(s)
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", s, err)
		}
		want := s
		if want[0] != '#' {
			want = "#" + want
		}
		if got := c.Hex(); got != want {
			t.Fatalf("Hex() = %q, want %q", got, want)
		}
	}

	for _, bad := range []string{"", "#12345", "#zzzzzz"} {
		if _, err := ParseHex(bad); err == nil {
			t.Fatalf("ParseHex(%q) accepted invalid input", bad)
		}
	}
}

func TestLerpEndpoints(t *testing.T) {
	a := MustParseHex("#000000")
	b := MustParseHex("#ffffff")

	if a.Lerp(b, 0) != a || a.Lerp(b, 1) != b {
		t.Fatal("Lerp endpoints must be exact")
	}
	if mid := a.Lerp(b, 0.5); math.Abs(mid.G-0.5) > 1e-12 {
		t.Fatalf("midpoint = %+v", mid)
	}
}

func TestFromHSL(t *testing.T) {
	tests := []struct {
		h, s, l float64
		want    string
	}{
		{0, 1, 0.5, "#ff0000"},
		{1.0 / 3, 1, 0.5, "#00ff00"},
		{2.0 / 3, 1, 0.5, "#0000ff"},
		{0.5, 0, 0.6, "#999999"},
		{1.5, 1, 0.5, "#00ffff"},
	}

	for _, tt := range tests {
		if got := FromHSL(tt.h, tt.s, tt.l).Hex(); got != tt.want {
			t.Fatalf("FromHSL(%v,%v,%v) = %s, want %s", tt.h, tt.s, tt.l, got, tt.want)
		}
	}
}

func TestMustParseHexPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustParseHex("nope")
}
