package streaming

import (
	"errors"
	"testing"
)

func TestParseRangeAbsent(t *testing.T) {
	br, err := ParseRange("", 1000)
	if err != nil {
		t.Fatalf("ParseRange failed: %v", err)
	}
	if br != nil {
		t.Errorf("Expected nil range for absent header, got %+v", br)
	}
}

func TestParseRangeValid(t *testing.T) {
	tests := []struct {
		name   string
		header string
		size   int64
		start  int64
		end    int64
	}{
		{"explicit", "bytes=2-4", 6, 2, 4},
		{"explicit full", "bytes=0-5", 6, 0, 5},
		{"open ended", "bytes=500000-", 1000000, 500000, 999999},
		{"end clamped", "bytes=2-9999", 6, 2, 5},
		{"suffix", "bytes=-3", 10, 7, 9},
		{"suffix larger than file", "bytes=-100", 10, 0, 9},
		{"single byte", "bytes=5-5", 6, 5, 5},
		{"case insensitive unit", "BYTES=1-2", 6, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br, err := ParseRange(tt.header, tt.size)
			if err != nil {
				t.Fatalf("ParseRange(%q, %d) failed: %v", tt.header, tt.size, err)
			}
			if br == nil {
				t.Fatalf("ParseRange(%q, %d) returned nil range", tt.header, tt.size)
			}
			if br.Start != tt.start || br.End != tt.end {
				t.Errorf("Expected %d-%d, got %d-%d", tt.start, tt.end, br.Start, br.End)
			}
			if br.Length() != tt.end-tt.start+1 {
				t.Errorf("Expected length %d, got %d", tt.end-tt.start+1, br.Length())
			}
		})
	}
}

func TestParseRangeUnsatisfiable(t *testing.T) {
	tests := []struct {
		name   string
		header string
		size   int64
	}{
		{"start beyond size", "bytes=2000000-", 1000000},
		{"start at size", "bytes=6-", 6},
		{"start after end", "bytes=4-2", 6},
		{"zero suffix", "bytes=-0", 10},
		{"non-bytes unit", "lines=0-4", 10},
		{"multiple ranges", "bytes=0-1,3-4", 10},
		{"garbage start", "bytes=abc-4", 10},
		{"garbage end", "bytes=0-def", 10},
		{"no dash", "bytes=5", 10},
		{"empty spec", "bytes=", 10},
		{"empty file", "bytes=0-", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br, err := ParseRange(tt.header, tt.size)
			if !errors.Is(err, ErrUnsatisfiable) {
				t.Errorf("ParseRange(%q, %d) = (%+v, %v), want ErrUnsatisfiable",
					tt.header, tt.size, br, err)
			}
		})
	}
}
