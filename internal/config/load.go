package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Load reads an HCL configuration file. Settings the file leaves out keep
// their defaults for the given cell size, which expressions can refer to as
// cell_size.
func Load(path string, cellSize float64) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decode(file, path, cellSize)
}

// Parse is Load for configuration held in memory; filename is used in
// diagnostics only.
func Parse(src []byte, filename string, cellSize float64) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, diags)
	}
	return decode(file, filename, cellSize)
}

var sectionSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "coastline"},
		{Type: "curvature"},
		{Type: "profile"},
		{Type: "cliff"},
		{Type: "logging"},
	},
}

type topLevel struct {
	StillWaterLevel float64 `hcl:"still_water_level,optional"`
	Seed            int64   `hcl:"seed,optional"`
}

// decode overlays the file on the defaults. Each block is decoded into the
// existing section so attributes it leaves out keep their default values.
func decode(file *hcl.File, name string, cellSize float64) (*Config, error) {
	cfg := Default(cellSize)
	ctx := evalContext(cellSize)

	content, rest, diags := file.Body.PartialContent(sectionSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", name, diags)
	}

	top := topLevel{StillWaterLevel: cfg.StillWaterLevel, Seed: cfg.Seed}
	diags = gohcl.DecodeBody(rest, ctx, &top)
	seen := make(map[string]bool)
	for _, block := range content.Blocks {
		if seen[block.Type] {
			diags = diags.Append(&hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate " + block.Type + " block",
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		seen[block.Type] = true
		diags = diags.Extend(gohcl.DecodeBody(block.Body, ctx, cfg.section(block.Type)))
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config %s: %w", name, diags)
	}
	cfg.StillWaterLevel, cfg.Seed = top.StillWaterLevel, top.Seed

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	return cfg, nil
}

func evalContext(cellSize float64) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"cell_size": cty.NumberFloatVal(cellSize),
		},
	}
}
