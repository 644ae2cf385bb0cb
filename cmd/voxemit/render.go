package main

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/voxemit/emitter"
	"github.com/katalvlaran/voxemit/grid"
)

// bounds returns the local-frame box enclosing the grid.
func bounds(g *grid.Grid) (lo, hi grid.Point) {
	shape, steps := g.Shape(), g.Steps()
	top := float64(shape[2]) * steps[2]
	if g.System() == grid.Cartesian {
		return grid.Point{}, grid.Point{X: float64(shape[0]) * steps[0], Y: float64(shape[1]) * steps[1], Z: top}
	}
	r := g.RMin() + float64(shape[0])*steps[0]

	return grid.Point{X: -r, Y: -r}, grid.Point{X: r, Y: r, Z: top}
}

// chord draws a random segment between two points of the box.
func chord(rng *rand.Rand, lo, hi grid.Point) (grid.Point, grid.Point) {
	at := func() grid.Point {
		return grid.Point{
			X: lo.X + rng.Float64()*(hi.X-lo.X),
			Y: lo.Y + rng.Float64()*(hi.Y-lo.Y),
			Z: lo.Z + rng.Float64()*(hi.Z-lo.Z),
		}
	}

	return at(), at()
}

// render integrates c.Rays random chords with c.Workers goroutines and returns
// their summed spectrum. Ray n uses its own generator seeded with Seed+n and
// results are summed in ray order, so the output does not depend on Workers.
// The cache must already hold the window.
func render(ctx context.Context, e *emitter.Emitter, c RenderConfig) (*emitter.Spectrum, error) {
	ray := emitter.Window{Min: c.MinWavelength, Max: c.MaxWavelength, N: c.Bins}
	lo, hi := bounds(e.Grid())
	per := make([][]float64, c.Rays)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.Workers)
	for n := 0; n < c.Rays; n++ {
		n := n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewSource(c.Seed + int64(n)))
			start, end := chord(rng, lo, hi)
			s, err := e.Integrate(emitter.NewSpectrum(ray), ray, start, end, nil)
			if err != nil {
				return err
			}
			per[n] = s.Samples

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := emitter.NewSpectrum(ray)
	for _, samples := range per {
		for b, v := range samples {
			total.Samples[b] += v
		}
	}

	return total, nil
}
