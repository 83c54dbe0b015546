package youtube

import (
	"testing"
	"time"
)

func TestParseISODuration(t *testing.T) {
	cases := []struct {
		iso  string
		want time.Duration
	}{
		{"PT4M13S", 4*time.Minute + 13*time.Second},
		{"PT1H2M3S", time.Hour + 2*time.Minute + 3*time.Second},
		{"PT45S", 45 * time.Second},
		{"PT10M", 10 * time.Minute},
		{"", 0},
	}
	for _, tc := range cases {
		t.Run(tc.iso, func(t *testing.T) {
			if got := parseISODuration(tc.iso); got != tc.want {
				t.Fatalf("parseISODuration(%q) = %v, want %v", tc.iso, got, tc.want)
			}
		})
	}
}

func TestParseTimedText(t *testing.T) {
	raw := []byte(`<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.5" dur="3.2">Today we learn fractions.</text>
  <text start="3.7" dur="2.0">A half is one of two equal parts.</text>
  <text start="5.7" dur="1.0">   </text>
  <text start="6.7" dur="2.0">Let&amp;#39;s practice!</text>
</transcript>`)

	segments, err := parseTimedText(raw)
	if err != nil {
		t.Fatalf("parseTimedText error: %v", err)
	}
	if len(segments) != 3 {
		t.Fatalf("segments = %d, want 3 (blank line dropped)", len(segments))
	}
	if segments[0].StartSec != 0.5 || segments[0].Text != "Today we learn fractions." {
		t.Fatalf("first segment = %+v", segments[0])
	}
	if segments[2].Text != "Let's practice!" {
		t.Fatalf("entities not unescaped: %q", segments[2].Text)
	}
}

func TestParseTimedTextEmpty(t *testing.T) {
	segments, err := parseTimedText(nil)
	if err != nil {
		t.Fatalf("parseTimedText error: %v", err)
	}
	if len(segments) != 0 {
		t.Fatalf("segments = %d, want 0", len(segments))
	}
}

func TestParseTimedTextMalformed(t *testing.T) {
	if _, err := parseTimedText([]byte("not xml at all <")); err == nil {
		t.Fatal("malformed xml must error")
	}
}

func TestBuildQuery(t *testing.T) {
	if got, want := buildQuery("3", "math", "Fractions"), "Fractions math grade 3 for kids"; got != want {
		t.Fatalf("buildQuery = %q, want %q", got, want)
	}
	if got, want := buildQuery("", "math", "Fractions"), "Fractions math for kids"; got != want {
		t.Fatalf("buildQuery with no grade = %q, want %q", got, want)
	}
}
