package spectral_test

import (
	"testing"

	"github.com/katalvlaran/voxemit/matrix"
	"github.com/katalvlaran/voxemit/spectral"
)

// BenchmarkIntegrateDense measures one bin over a 1e4×256 legacy table.
func BenchmarkIntegrateDense(b *testing.B) {
	axis := make([]float64, 256)
	for i := range axis {
		axis[i] = 400 + float64(i)
	}
	p, _ := spectral.NewProfile(axis, spectral.Continuous, false)
	table, _ := matrix.NewDense(10000, 256)
	for r := 0; r < 10000; r++ {
		row := table.Row(r)
		for s := range row {
			row[s] = float64((r + s) % 7)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := p.IntegrateDense(table, 500, 520); err != nil {
			b.Fatal(err)
		}
	}
}
