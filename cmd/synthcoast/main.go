// Command synthcoast builds a synthetic elevation model, extracts its
// coastlines, profiles and cliffs, and prints what it found.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"

	"cliffline/internal/coast"
	"cliffline/internal/config"
	"cliffline/internal/delineate"
	"cliffline/internal/render"
	"cliffline/internal/version"

	"gonum.org/v1/gonum/floats"
)

func main() {
	shape := flag.String("shape", "bay", "Terrain: ramp, bay or cliff")
	nx := flag.Int("nx", 80, "Grid columns")
	ny := flag.Int("ny", 60, "Grid rows")
	cellSize := flag.Float64("cell", 10, "Cell size in metres")
	configPath := flag.String("config", "", "Optional HCL run configuration")
	showMap := flag.Bool("map", false, "Print a character map of the grid")
	pngPath := flag.String("png", "", "Write a picture of the grid, coastlines and profiles to this file")
	scale := flag.Int("scale", 8, "Pixels per cell in the -png picture")
	direction := flag.String("direction", "", "Override the profile direction: seaward or landward")
	logLevel := flag.String("log-level", "", "Override the configured log level")
	showVersion := flag.Bool("version", false, "Print the version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("synthcoast"))
		return
	}

	src, err := terrain(*shape, *nx, *ny, *cellSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	cfg := config.Default(*cellSize)
	if *configPath != "" {
		cfg, err = config.Load(*configPath, *cellSize)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
	}
	if *direction != "" {
		cfg.Profile.Direction = *direction
	}
	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}
	logger := cfg.Logging.NewLogger(os.Stderr).With("version", version.Version)

	run, err := delineate.New(src, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to set up run: %v\n", err)
		os.Exit(1)
	}
	sum, err := run.Execute(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Delineation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Terrain %s: %s\n", *shape, run.Grid())
	fmt.Printf("%s\n", sum)

	for _, c := range run.Coasts() {
		peak := 0.0
		if k := c.Line.Curvatures(); len(k) > 0 {
			peak = math.Max(floats.Max(k), -floats.Min(k))
		}
		fmt.Printf("\nCoast %d: %d points, %.1f m, %s-handed, peak curvature %.3f\n",
			c.Line.ID, c.Line.Len(), c.Line.Length(), c.Line.Handedness, peak)
		fmt.Printf("%-8s %6s %8s %8s %10s %10s %9s\n",
			"Profile", "Point", "Segs", "Cells", "Top (m)", "Toe (m)", "Landform")
		for _, p := range c.Profiles.AlongCoast() {
			if !p.Valid() {
				continue
			}
			top, toe, kind := "-", "-", "-"
			switch lf := c.Line.Landform(p.CoastPoint).(type) {
			case coast.Cliff:
				kind = "cliff"
				top = fmt.Sprintf("%.1f", lf.TopElevation)
				if !math.IsNaN(lf.ToeElevation) {
					toe = fmt.Sprintf("%.1f", lf.ToeElevation)
				}
				if !lf.Reliable {
					kind = "cliff?"
				}
			case coast.Beach:
				kind = "beach"
			}
			fmt.Printf("%-8d %6d %8d %8d %10s %10s %9s\n",
				p.ID, p.CoastPoint, p.NumSegments(), len(p.Cells()), top, toe, kind)
		}
	}

	if *showMap {
		fmt.Printf("\n%s", render.Text(run.Grid()))
	}
	if *pngPath != "" {
		if err := writePNG(*pngPath, run, *scale); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write picture: %v\n", err)
			os.Exit(1)
		}
	}
}
