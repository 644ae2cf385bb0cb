// Command voxemit renders a batch of random chords through an emitter stored
// in a repository and reports the accumulated spectrum.
//
// Usage:
//
//	voxemit -config voxemit.toml
//
// The cache for the render window is built (or loaded from the repository)
// once before the parallel render starts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/voxemit/cache"
	"github.com/katalvlaran/voxemit/emitter"
	"github.com/katalvlaran/voxemit/repository"
)

func main() {
	configFile := flag.String("config", "", "TOML configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, *configFile, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "voxemit:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configFile string, out io.Writer) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}
	logger, closer := newLogger(cfg.Logging)
	defer closer.Close()

	repo := repository.Open(cfg.Repository.Root)
	def, err := repo.GetEmitter(cfg.Emitter.Group, cfg.Emitter.Name)
	if err != nil {
		return err
	}
	opts := []emitter.Option{emitter.WithLogger(logger), emitter.WithMinSamples(cfg.Emitter.MinSamples)}
	if cfg.Emitter.Step > 0 {
		opts = append(opts, emitter.WithStep(cfg.Emitter.Step))
	}
	e, err := def.Build(opts...)
	if err != nil {
		return err
	}

	if err = prepareCache(repo, e, cfg, logger); err != nil {
		return err
	}

	began := time.Now()
	total, err := render(ctx, e, cfg.Render)
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	snap := e.CacheSnapshot()
	fmt.Fprintf(out, "emitter %s/%s: %s rays in %v (%d workers)\n",
		cfg.Emitter.Group, cfg.Emitter.Name, humanize.Comma(int64(cfg.Render.Rays)), elapsed.Round(time.Millisecond), cfg.Render.Workers)
	fmt.Fprintf(out, "cache %v: %s entries, %s\n", snap.Key, humanize.Comma(int64(snap.M.NNZ())), humanize.Bytes(snap.M.Bytes()))
	bin := floats.MaxIdx(total.Samples)
	fmt.Fprintf(out, "total %.6g, peak bin %d: %.6g\n", floats.Sum(total.Samples), bin, total.Samples[bin])
	for b, v := range total.Samples {
		lower := total.MinWavelength + float64(b)*total.Delta()
		fmt.Fprintf(out, "%10.4f\t%.6g\n", lower, v)
	}

	return nil
}

// prepareCache installs the render window's cache before any goroutine starts:
// from the repository when configured and present, by building otherwise.
func prepareCache(repo *repository.Repository, e *emitter.Emitter, cfg *Config, logger stdLogger) error {
	key := cache.Key{MinWavelength: cfg.Render.MinWavelength, MaxWavelength: cfg.Render.MaxWavelength, Bins: cfg.Render.Bins}
	if cfg.Emitter.LoadCache {
		m, err := repo.LoadCache(cfg.Emitter.Group, cfg.Emitter.Name, key)
		switch {
		case err == nil:
			return e.CacheOverride(m, key.MinWavelength, key.MaxWavelength)
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}
		logger.Infof("no stored cache for %v, building", key)
	}
	if err := e.CacheBuild(key.MinWavelength, key.MaxWavelength, key.Bins, false); err != nil {
		return err
	}
	if cfg.Emitter.SaveCache {
		snap := e.CacheSnapshot()
		n, err := repo.SaveCache(cfg.Emitter.Group, cfg.Emitter.Name, snap.Key, snap.M)
		if err != nil {
			return err
		}
		logger.Infof("saved cache %v (%s)", snap.Key, humanize.Bytes(uint64(n)))
	}

	return nil
}
