// Package config holds the run configuration: defaults, validation and
// loading from HCL files.
package config

import (
	"errors"
	"fmt"
	"log/slog"

	"cliffline/internal/cliff"
	"cliffline/internal/coast"
	"cliffline/internal/intersect"
	"cliffline/internal/profile"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// Config is everything a delineation run needs besides the elevation data.
type Config struct {
	StillWaterLevel float64
	// Seed drives the coin flip between equally long crossing profiles.
	Seed int64

	Coastline *CoastlineConfig
	Curvature *CurvatureConfig
	Profile   *ProfileConfig
	Cliff     *CliffConfig
	Logging   *LoggingConfig
}

// CoastlineConfig configures tracing and smoothing.
type CoastlineConfig struct {
	Handedness string `hcl:"handedness,optional"` // "right" or "left"
	Smoothing  string `hcl:"smoothing,optional"`  // "none", "running_mean" or "savitzky_golay"
	Window     int    `hcl:"window,optional"`
	Order      int    `hcl:"order,optional"`
	MinPoints  int    `hcl:"min_points,optional"`
	MaxSteps   int    `hcl:"max_steps,optional"` // 0 means 4 * cells
}

// CurvatureConfig configures curvature estimation.
type CurvatureConfig struct {
	Interval   int `hcl:"interval,optional"`
	EdgeMargin int `hcl:"edge_margin,optional"`
}

// ProfileConfig configures profile construction. Lengths are in external
// units; HCL files can write them as multiples of cell_size.
type ProfileConfig struct {
	Length    float64 `hcl:"length,optional"`
	Spacing   float64 `hcl:"spacing,optional"`
	Direction string  `hcl:"direction,optional"` // "seaward" or "landward"
}

// CliffConfig configures the cliff locator.
type CliffConfig struct {
	ElevationTolerance float64 `hcl:"elevation_tolerance,optional"`
}

// LoggingConfig selects the log level and handler.
type LoggingConfig struct {
	Level  string `hcl:"level,optional"`  // debug, info, warn or error
	Format string `hcl:"format,optional"` // text or json
}

// Default returns the default configuration for a grid with the given cell size.
func Default(cellSize float64) *Config {
	trace := coast.DefaultTraceOptions()
	curv := coast.DefaultCurvatureOptions()
	build := profile.DefaultBuildOptions(cellSize)
	return &Config{
		Seed: 1,
		Coastline: &CoastlineConfig{
			Handedness: "right",
			Smoothing:  "running_mean",
			Window:     trace.Smoothing.Window,
			Order:      2,
			MinPoints:  trace.MinPoints,
		},
		Curvature: &CurvatureConfig{
			Interval:   curv.Interval,
			EdgeMargin: curv.EdgeMargin,
		},
		Profile: &ProfileConfig{
			Length:    build.Length,
			Spacing:   build.Spacing,
			Direction: build.Direction.String(),
		},
		Cliff:   &CliffConfig{ElevationTolerance: cliff.DefaultOptions().Tolerance},
		Logging: &LoggingConfig{Level: "info", Format: "text"},
	}
}

// Validate checks every field and returns the first problem found.
func (c *Config) Validate() error {
	if c.Coastline == nil || c.Curvature == nil || c.Profile == nil || c.Cliff == nil || c.Logging == nil {
		return fmt.Errorf("%w: missing section", ErrInvalid)
	}
	if _, err := c.handedness(); err != nil {
		return err
	}
	smooth, err := c.smoothing()
	if err != nil {
		return err
	}
	if err := smooth.Validate(); err != nil {
		return fmt.Errorf("%w: coastline: %v", ErrInvalid, err)
	}
	if c.Coastline.MinPoints < 2 {
		return fmt.Errorf("%w: coastline.min_points must be at least 2, got %d", ErrInvalid, c.Coastline.MinPoints)
	}
	if c.Coastline.MaxSteps < 0 {
		return fmt.Errorf("%w: coastline.max_steps must not be negative", ErrInvalid)
	}
	if c.Curvature.Interval < 1 {
		return fmt.Errorf("%w: curvature.interval must be at least 1, got %d", ErrInvalid, c.Curvature.Interval)
	}
	if c.Curvature.EdgeMargin < 0 {
		return fmt.Errorf("%w: curvature.edge_margin must not be negative", ErrInvalid)
	}
	if c.Profile.Length <= 0 {
		return fmt.Errorf("%w: profile.length must be positive, got %g", ErrInvalid, c.Profile.Length)
	}
	if c.Profile.Spacing < 0 {
		return fmt.Errorf("%w: profile.spacing must not be negative", ErrInvalid)
	}
	if _, err := c.direction(); err != nil {
		return err
	}
	if c.Cliff.ElevationTolerance < 0 {
		return fmt.Errorf("%w: cliff.elevation_tolerance must not be negative", ErrInvalid)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	if f := c.Logging.Format; f != "text" && f != "json" {
		return fmt.Errorf("%w: logging.format %q", ErrInvalid, f)
	}
	return nil
}

// section returns the struct a block of the given type decodes into.
func (c *Config) section(name string) any {
	switch name {
	case "coastline":
		return c.Coastline
	case "curvature":
		return c.Curvature
	case "profile":
		return c.Profile
	case "cliff":
		return c.Cliff
	default:
		return c.Logging
	}
}

func (c *Config) handedness() (coast.Handedness, error) {
	switch c.Coastline.Handedness {
	case "right":
		return coast.RightHanded, nil
	case "left":
		return coast.LeftHanded, nil
	}
	return 0, fmt.Errorf("%w: coastline.handedness %q", ErrInvalid, c.Coastline.Handedness)
}

func (c *Config) smoothing() (coast.SmoothOptions, error) {
	opts := coast.SmoothOptions{Window: c.Coastline.Window, Order: c.Coastline.Order}
	switch c.Coastline.Smoothing {
	case "none":
		opts.Method = coast.SmoothNone
	case "running_mean":
		opts.Method = coast.SmoothRunningMean
	case "savitzky_golay":
		opts.Method = coast.SmoothSavitzkyGolay
	default:
		return opts, fmt.Errorf("%w: coastline.smoothing %q", ErrInvalid, c.Coastline.Smoothing)
	}
	return opts, nil
}

func (c *Config) direction() (profile.Direction, error) {
	switch c.Profile.Direction {
	case "seaward":
		return profile.Seaward, nil
	case "landward":
		return profile.Landward, nil
	}
	return 0, fmt.Errorf("%w: profile.direction %q", ErrInvalid, c.Profile.Direction)
}

// TraceOptions returns the coastline tracer settings. The config must be valid.
func (c *Config) TraceOptions(logger *slog.Logger) coast.TraceOptions {
	h, _ := c.handedness()
	smooth, _ := c.smoothing()
	return coast.TraceOptions{
		Handedness: h,
		MinPoints:  c.Coastline.MinPoints,
		MaxSteps:   c.Coastline.MaxSteps,
		Smoothing:  smooth,
		Logger:     logger,
	}
}

// CurvatureOptions returns the curvature settings for a grid of the given orientation.
func (c *Config) CurvatureOptions(orientation float64) coast.CurvatureOptions {
	return coast.CurvatureOptions{
		Interval:    c.Curvature.Interval,
		EdgeMargin:  c.Curvature.EdgeMargin,
		Orientation: orientation,
	}
}

// BuildOptions returns the profile builder settings. The config must be valid.
func (c *Config) BuildOptions(logger *slog.Logger) profile.BuildOptions {
	d, _ := c.direction()
	return profile.BuildOptions{
		Length:    c.Profile.Length,
		Spacing:   c.Profile.Spacing,
		Direction: d,
		Logger:    logger,
	}
}

// ResolveOptions returns the intersection resolver settings using coin for ties.
func (c *Config) ResolveOptions(coin intersect.Coin, logger *slog.Logger) intersect.Options {
	return intersect.Options{Coin: coin, Logger: logger}
}

// CliffOptions returns the cliff locator settings.
func (c *Config) CliffOptions(logger *slog.Logger) cliff.Options {
	return cliff.Options{Tolerance: c.Cliff.ElevationTolerance, Logger: logger}
}
