package normalize

import (
	"math"
	"testing"
)

func TestStringSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want float64
	}{
		{"identical", "vesterbrogade 123", "vesterbrogade 123", 1.0},
		{"case insensitive", "Vesterbrogade", "vesterbrogade", 1.0},
		{"both empty", "", "", 0.0},
		{"left empty", "", "istedgade", 0.0},
		{"right empty", "istedgade", "", 0.0},
		{"classic edit distance", "kitten", "sitting", 1.0 - 3.0/7.0},
		{"single substitution", "istedgade 10", "istedgade 12", 1.0 - 1.0/12.0},
		{"disjoint strings", "abc", "xyz", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StringSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("StringSimilarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestStringSimilarity_Symmetry(t *testing.T) {
	pairs := [][2]string{
		{"vesterbrogade 123", "vesterbrogade 121"},
		{"istedgade", "isted gade"},
		{"ny østergade alle 7", "ny østergade allé 7"},
		{"", "something"},
		{"kitten", "sitting"},
	}
	for _, p := range pairs {
		ab := StringSimilarity(p[0], p[1])
		ba := StringSimilarity(p[1], p[0])
		if math.Abs(ab-ba) > 1e-12 {
			t.Errorf("asymmetric: sim(%q,%q)=%v but sim(%q,%q)=%v", p[0], p[1], ab, p[1], p[0], ba)
		}
	}
}

func TestStringSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"a", "completely different and much longer"},
		{"æøå", "aoa"},
		{"vesterbrogade 123, fl4, dleft, 1620", "istedgade 10, fl-1, dright, 1650"},
	}
	for _, p := range pairs {
		got := StringSimilarity(p[0], p[1])
		if got < 0.0 || got > 1.0 {
			t.Errorf("sim(%q,%q)=%v out of [0,1]", p[0], p[1], got)
		}
	}
}
