package main

import (
	"fmt"
	"image/png"
	"os"

	"cliffline/internal/delineate"
	"cliffline/internal/profile"
	"cliffline/internal/render"
)

// writePNG renders the run's grid, coastlines and profiles to path, with
// each cell drawn as a scale by scale block.
func writePNG(path string, run *delineate.Run, scale int) error {
	var sets []*profile.Set
	for _, c := range run.Coasts() {
		sets = append(sets, c.Profiles)
	}
	img := render.Scene(run.Grid(), sets...).Render(scale)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
