package fixed

import (
	"errors"
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"-3.7", -37},
		{"3.7", 37},
		{"0.0", 0},
		{"-0.0", 0},
		{"-0.5", -5},
		{"10.0", 100},
		{"99.9", 999},
		{"-99.9", -999},
		{"12345.6", 123456},
	}
	for _, tt := range cases {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse(%q): unexpected error: %s", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{
		"", "-", ".", "1", "1.", ".5", "-.5", "1.23", "1..2", "1.2.3",
		"a.b", "12a.0", "--1.0", "1.-0", " 1.0", "1.0\r", "1234567890123456789.0",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse([]byte(in))
			if !errors.Is(err, ErrSyntax) {
				t.Errorf("Parse(%q) error = %v, want ErrSyntax", in, err)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	cases := []struct {
		v    int64
		want string
	}{
		{-37, "-3.7"},
		{37, "3.7"},
		{0, "0.0"},
		{-5, "-0.5"},
		{5, "0.5"},
		{150, "15.0"},
		{-999, "-99.9"},
		{math.MinInt64, "-922337203685477580.8"},
	}
	for _, tt := range cases {
		if got := Format(tt.v); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for v := int64(-1000); v <= 1000; v++ {
		got, err := Parse([]byte(Format(v)))
		if err != nil {
			t.Fatalf("Parse(Format(%d)): %s", v, err)
		}
		if got != v {
			t.Fatalf("Parse(Format(%d)) = %d", v, got)
		}
	}
}

func TestAppend(t *testing.T) {
	got := string(Append([]byte("Oslo;"), -55))
	if got != "Oslo;-5.5" {
		t.Errorf("Append = %q", got)
	}
}

var sink int64

func BenchmarkParse(b *testing.B) {
	b.ReportAllocs()
	in := []byte("-12.3")
	for i := 0; i < b.N; i++ {
		v, err := Parse(in)
		if err != nil {
			b.Fatal(err)
		}
		sink = v
	}
}
