package main

import (
	"context"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"cliffline/internal/config"
	"cliffline/internal/delineate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerrain_Shapes(t *testing.T) {
	for _, shape := range []string{"ramp", "bay", "cliff"} {
		t.Run(shape, func(t *testing.T) {
			src, err := terrain(shape, 80, 60, 10)
			require.NoError(t, err)

			cfg := config.Default(10)
			if shape == "cliff" {
				cfg.Profile.Direction = "landward"
			}
			run, err := delineate.New(src, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
			require.NoError(t, err)
			sum, err := run.Execute(context.Background())
			require.NoError(t, err)
			assert.Equal(t, 1, sum.Coasts)
			assert.Positive(t, sum.ValidProfiles)
			if shape == "cliff" {
				assert.Positive(t, sum.Cliffs)
			}
		})
	}
}

func TestTerrain_UnknownShape(t *testing.T) {
	_, err := terrain("volcano", 10, 10, 1)
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	src, err := terrain("ramp", 20, 16, 10)
	require.NoError(t, err)
	run, err := delineate.New(src, config.Default(10), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	_, err = run.Execute(context.Background())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ramp.png")
	require.NoError(t, writePNG(path, run, 3))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Width)
	assert.Equal(t, 48, cfg.Height)
}

func TestWritePNG_BadPath(t *testing.T) {
	src, err := terrain("ramp", 20, 16, 10)
	require.NoError(t, err)
	run, err := delineate.New(src, config.Default(10), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	err = writePNG(filepath.Join(t.TempDir(), "missing", "out.png"), run, 1)
	assert.Error(t, err)
}
