package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"cliffline/internal/coast"
	"cliffline/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default(5)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100.0, cfg.Profile.Length)
	assert.Equal(t, 15.0, cfg.Profile.Spacing)
	assert.Equal(t, 9, cfg.Curvature.EdgeMargin)
	assert.Equal(t, int64(1), cfg.Seed)
}

func TestParse_OverridesAndKeepsDefaults(t *testing.T) {
	src := []byte(`
still_water_level = 0.5
seed              = 42

coastline {
  handedness = "left"
  smoothing  = "savitzky_golay"
  window     = 7
  order      = 3
}

curvature {
  edge_margin = 4
}

profile {
  length    = 10 * cell_size
  direction = "landward"
}
`)
	cfg, err := Parse(src, "run.hcl", 2)
	require.NoError(t, err)

	assert.Equal(t, 0.5, cfg.StillWaterLevel)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 20.0, cfg.Profile.Length)
	assert.Equal(t, 6.0, cfg.Profile.Spacing, "unset attribute keeps its default")
	assert.Equal(t, 4, cfg.Curvature.EdgeMargin)
	assert.Equal(t, 5, cfg.Curvature.Interval)
	assert.Equal(t, 0.5, cfg.Cliff.ElevationTolerance, "absent block keeps its defaults")

	trace := cfg.TraceOptions(nil)
	assert.Equal(t, coast.LeftHanded, trace.Handedness)
	assert.Equal(t, coast.SmoothOptions{Method: coast.SmoothSavitzkyGolay, Window: 7, Order: 3}, trace.Smoothing)
	assert.Equal(t, profile.Landward, cfg.BuildOptions(nil).Direction)
	assert.Equal(t, -1.0, cfg.CurvatureOptions(-1).Orientation)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `profile {`},
		{"unknown attribute", `colour = "blue"`},
		{"even window", "coastline {\n window = 4\n}"},
		{"order too high", "coastline {\n smoothing = \"savitzky_golay\"\n window = 9\n order = 7\n}"},
		{"bad direction", "profile {\n direction = \"inland\"\n}"},
		{"bad handedness", "coastline {\n handedness = \"up\"\n}"},
		{"zero length", "profile {\n length = 0\n}"},
		{"bad level", "logging {\n level = \"loud\"\n}"},
		{"unknown variable", "profile {\n length = 3 * cell_width\n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl", 1)
			assert.Error(t, err)
		})
	}
}

func TestValidate_WrapsErrInvalid(t *testing.T) {
	cfg := Default(1)
	cfg.Cliff.ElevationTolerance = -1
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg = Default(1)
	cfg.Logging = nil
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.hcl")
	require.NoError(t, os.WriteFile(path, []byte("cliff {\n elevation_tolerance = 2\n}\n"), 0o644))

	cfg, err := Load(path, 1)
	require.NoError(t, err)
	assert.Equal(t, 2.0, cfg.Cliff.ElevationTolerance)

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"), 1)
	assert.Error(t, err)
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := (&LoggingConfig{Level: "warn", Format: "json"}).NewLogger(&buf)
	l.Info("hidden")
	l.Warn("shown", "coast", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, 3.0, rec["coast"])
}

func TestParse_DuplicateBlock(t *testing.T) {
	_, err := Parse([]byte("cliff {\n elevation_tolerance = 1\n}\ncliff {\n elevation_tolerance = 2\n}\n"), "dup.hcl", 1)
	assert.Error(t, err)
}
