// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/shadercfg/capability"
	"github.com/gogpu/shadercfg/ir"
	"github.com/gogpu/shadercfg/translator"
)

var (
	// ErrInvalidPipeline is returned for descriptions whose stages cannot
	// form a pipeline.
	ErrInvalidPipeline = errors.New("pipeline: invalid pipeline")

	// ErrInvalidStage is returned when a stage entry holds an unknown name
	// or an out of range value.
	ErrInvalidStage = errors.New("pipeline: invalid stage")
)

// Description is the decoded form of a pipeline file.
type Description struct {
	Name       string                 `toml:"name"`
	TargetAPI  string                 `toml:"target_api"`
	Debug      bool                   `toml:"debug"`
	Capability capability.Description `toml:"capability"`
	Stages     []StageDescription     `toml:"stage"`
}

// StageDescription is the header and recorded usage of one stage.
type StageDescription struct {
	Stage       string `toml:"stage"`
	Passthrough bool   `toml:"passthrough"`

	Topology                 string `toml:"topology"`
	MaxOutputVertices        int    `toml:"max_output_vertices"`
	ThreadsPerInputPrimitive int    `toml:"threads_per_input_primitive"`

	LocalMemoryLow  int `toml:"local_memory_low"`
	LocalMemoryHigh int `toml:"local_memory_high"`
	LocalMemoryCrs  int `toml:"local_memory_crs"`

	OmapTargets    int  `toml:"omap_targets"`
	OmapSampleMask bool `toml:"omap_sample_mask"`
	OmapDepth      bool `toml:"omap_depth"`

	Features []string `toml:"features"`

	// Inputs holds [location, component] pairs.
	Inputs          [][]int `toml:"inputs"`
	InputsFixedFunc []int   `toml:"inputs_fixed_func"`
	Outputs         []int   `toml:"outputs"`
	InputsPerPatch  []int   `toml:"inputs_per_patch"`
	OutputsPerPatch []int   `toml:"outputs_per_patch"`
	AllInputs       bool    `toml:"all_inputs"`
	AllOutputs      bool    `toml:"all_outputs"`

	ClipDistances       []int `toml:"clip_distances"`
	LayerInputAttribute *int  `toml:"layer_input_attribute"`

	// Textures and AtomicTextures hold [handle, cbuf_slot] pairs.
	Textures       [][]int `toml:"textures"`
	AtomicTextures [][]int `toml:"atomic_textures"`

	Size int `toml:"size"`
}

// Parse decodes a TOML pipeline description. Unknown keys are rejected.
func Parse(data []byte) (Description, error) {
	var d Description
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Description{}, fmt.Errorf("pipeline: %w", err)
	}
	return d, nil
}

// Load reads and decodes a pipeline file. An empty name is replaced by the
// file path.
func Load(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("pipeline: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return Description{}, fmt.Errorf("%s: %w", path, err)
	}
	if d.Name == "" {
		d.Name = path
	}
	return d, nil
}

// Options returns the translation options the description selects.
func (d *Description) Options() (translator.Options, error) {
	opts := translator.DefaultOptions()
	switch d.TargetAPI {
	case "", "vulkan":
	case "opengl":
		opts.TargetAPI = translator.TargetAPIOpenGL
		opts.TargetLanguage = translator.TargetLanguageGLSL
	default:
		return opts, fmt.Errorf("%w: unknown target api %q", ErrInvalidPipeline, d.TargetAPI)
	}
	if d.Debug {
		opts.Flags |= translator.FlagDebugMode
	}
	return opts, nil
}

// stages parses the stage names and checks they form a pipeline: stages in
// pipeline order, each at most once, and compute only on its own.
func (d *Description) stages() ([]ir.ShaderStage, error) {
	if len(d.Stages) == 0 {
		return nil, fmt.Errorf("%w: no stages", ErrInvalidPipeline)
	}

	out := make([]ir.ShaderStage, len(d.Stages))
	for i, sd := range d.Stages {
		stage, ok := ir.ParseShaderStage(sd.Stage)
		if !ok {
			return nil, fmt.Errorf("%w: unknown stage %q", ErrInvalidStage, sd.Stage)
		}
		if stage == ir.StageCompute && len(d.Stages) > 1 {
			return nil, fmt.Errorf("%w: compute stage linked with other stages", ErrInvalidPipeline)
		}
		if i > 0 && stage <= out[i-1] {
			return nil, fmt.Errorf("%w: %v after %v", ErrInvalidPipeline, stage, out[i-1])
		}
		out[i] = stage
	}
	return out, nil
}

func (sd *StageDescription) header(stage ir.ShaderStage) (ir.ShaderHeader, error) {
	h := ir.ShaderHeader{
		Stage:                     stage,
		GpPassthrough:             sd.Passthrough,
		ThreadsPerInputPrimitive:  sd.ThreadsPerInputPrimitive,
		MaxOutputVertexCount:      sd.MaxOutputVertices,
		ShaderLocalMemoryLowSize:  sd.LocalMemoryLow,
		ShaderLocalMemoryHighSize: sd.LocalMemoryHigh,
		ShaderLocalMemoryCrsSize:  sd.LocalMemoryCrs,
		OmapTargets:               sd.OmapTargets,
		OmapSampleMask:            sd.OmapSampleMask,
		OmapDepth:                 sd.OmapDepth,
	}
	if sd.Topology != "" {
		topo, ok := ir.ParseOutputTopology(sd.Topology)
		if !ok {
			return h, fmt.Errorf("%w: unknown topology %q", ErrInvalidStage, sd.Topology)
		}
		h.OutputTopology = topo
	}
	if errs := ir.ValidateHeader(&h); len(errs) > 0 {
		return h, fmt.Errorf("%w: %v", ErrInvalidStage, errs[0])
	}
	return h, nil
}

func (sd *StageDescription) features() (ir.FeatureFlags, error) {
	var ff ir.FeatureFlags
	for _, name := range sd.Features {
		f, ok := ir.ParseFeature(name)
		if !ok {
			return 0, fmt.Errorf("%w: unknown feature %q", ErrInvalidStage, name)
		}
		ff |= f
	}
	return ff, nil
}

func pairs(values [][]int, what string) error {
	for _, p := range values {
		if len(p) != 2 {
			return fmt.Errorf("%w: %s entry %v is not a pair", ErrInvalidStage, what, p)
		}
	}
	return nil
}
