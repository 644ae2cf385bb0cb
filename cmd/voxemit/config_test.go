package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[logging]
logfile = "logs/voxemit.log"
max_log_size = 10

[repository]
root = "emitters"

[emitter]
group = "plasma"
name = "core"
step = 0.05
load_cache = true

[render]
min_wavelength = 400
max_wavelength = 700
bins = 30
rays = 250
workers = 2
seed = 9
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "voxemit.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	return path
}

// TestLoadConfig_File decodes every section and resolves paths against the file.
func TestLoadConfig_File(t *testing.T) {
	path := writeConfig(t, sampleConfig)
	dir := filepath.Dir(path)

	c, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "logs/voxemit.log"), c.Logging.Logfile)
	require.Equal(t, 10, c.Logging.MaxSize)
	require.Equal(t, 28, c.Logging.MaxAge) // default kept
	require.Equal(t, filepath.Join(dir, "emitters"), c.Repository.Root)
	require.Equal(t, EmitterConfig{Group: "plasma", Name: "core", Step: 0.05, MinSamples: 2, LoadCache: true}, c.Emitter)
	require.Equal(t, RenderConfig{MinWavelength: 400, MaxWavelength: 700, Bins: 30, Rays: 250, Workers: 2, Seed: 9}, c.Render)
}

// TestLoadConfig_EnvOverrides lets the environment win over the file.
func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("VOXEMIT_RAYS", "7")
	t.Setenv("VOXEMIT_NAME", "edge")
	t.Setenv("VOXEMIT_REPOSITORY", "/srv/emitters")

	c, err := LoadConfig(writeConfig(t, sampleConfig))
	require.NoError(t, err)
	require.Equal(t, 7, c.Render.Rays)
	require.Equal(t, "edge", c.Emitter.Name)
	require.Equal(t, "/srv/emitters", c.Repository.Root)
	require.Equal(t, 30, c.Render.Bins)
}

// TestLoadConfig_Errors reports malformed files, bad env values and invalid settings.
func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[render\nbins = 3"))
	require.ErrorContains(t, err, "could not decode TOML config")

	t.Run("Env", func(t *testing.T) {
		t.Setenv("VOXEMIT_BINS", "many")
		_, err := LoadConfig(writeConfig(t, sampleConfig))
		require.ErrorContains(t, err, "parse env")
	})

	for name, body := range map[string]string{
		"NoEmitter":   "[render]\nmin_wavelength = 1\nmax_wavelength = 2\n",
		"EmptyWindow": "[emitter]\ngroup = \"g\"\nname = \"n\"\n[render]\nmin_wavelength = 2\nmax_wavelength = 2\n",
		"NoWorkers":   "[emitter]\ngroup = \"g\"\nname = \"n\"\n[render]\nmin_wavelength = 1\nmax_wavelength = 2\nworkers = 0\n",
		"FewSamples":  "[emitter]\ngroup = \"g\"\nname = \"n\"\nmin_samples = -3\n[render]\nmin_wavelength = 1\nmax_wavelength = 2\n",
		"NegStep":     "[emitter]\ngroup = \"g\"\nname = \"n\"\nstep = -1\n[render]\nmin_wavelength = 1\nmax_wavelength = 2\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			require.Error(t, err)
		})
	}
}
