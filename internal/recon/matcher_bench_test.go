package recon

import (
	"fmt"
	"testing"

	"rentroll-reconciliation/internal/models"
)

func BenchmarkMatch(b *testing.B) {
	m := NewMatcher(DefaultConfig())

	canonical := make([]models.CanonicalUnit, 0, 50)
	candidates := make([]models.CandidateUnit, 0, 50)
	for i := 0; i < 50; i++ {
		addr := fmt.Sprintf("Vesterbrogade %d, %d., tv., 1620 København V", 100+i, i%6)
		canonical = append(canonical, canonicalUnit(int64(i+1), addr, i%6, 1, 60+float64(i)))
		candidates = append(candidates, fullCandidate(addr, i%6, 1, 60+float64(i)))
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m.Match(candidates, canonical)
	}
}
