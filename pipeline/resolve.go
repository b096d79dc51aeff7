// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shadercfg/capability"
	"github.com/gogpu/shadercfg/ir"
	"github.com/gogpu/shadercfg/translator"
)

// Stage is one finalized stage of a resolved pipeline.
type Stage struct {
	Config  *translator.Config
	Program translator.ProgramInfo

	// Textures holds the resolved formats of the textures the stage
	// samples, in description order.
	Textures []TextureBinding
}

// TextureBinding is a resolved texture format.
type TextureBinding struct {
	Handle   int
	CbufSlot int
	Atomic   bool
	Format   gputypes.TextureFormat
}

// Result is a resolved pipeline.
type Result struct {
	Name    string
	Options translator.Options
	Stages  []Stage

	// Messages holds the diagnostics the stages reported to the
	// capability accessor, in order.
	Messages []string
}

// recorder keeps the messages of one pipeline while forwarding them.
type recorder struct {
	translator.GpuAccessor
	messages []string
}

func (r *recorder) Log(message string) {
	r.messages = append(r.messages, message)
	r.GpuAccessor.Log(message)
}

// Link links configurations given in pipeline order. Each stage is merged
// with the one after it, starting from the last pair, so usage propagates
// from the fragment stage toward the vertex stage.
func Link(configs []*translator.Config) {
	for i := len(configs) - 1; i > 0; i-- {
		configs[i-1].MergeFromNextStage(configs[i])
	}
}

// Resolve builds, links and finalizes every stage of d. Accessor
// diagnostics go to logger; nil uses the translator logger.
func Resolve(d Description, logger *slog.Logger) (*Result, error) {
	opts, err := d.Options()
	if err != nil {
		return nil, err
	}
	stages, err := d.stages()
	if err != nil {
		return nil, err
	}
	caps, err := capability.New(d.Capability, logger)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	gpu := &recorder{GpuAccessor: caps}

	configs := make([]*translator.Config, len(stages))
	for i, stage := range stages {
		sd := &d.Stages[i]
		header, err := sd.header(stage)
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		cfg := translator.NewConfigFromHeader(header, gpu, nil, opts)
		if err := sd.replay(cfg); err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		configs[i] = cfg
	}

	Link(configs)

	res := &Result{Name: d.Name, Options: opts, Stages: make([]Stage, len(configs))}
	for i, cfg := range configs {
		sd := &d.Stages[i]
		res.Stages[i] = Stage{
			Config:   cfg,
			Textures: resolveTextures(cfg, sd),
			Program:  cfg.CreateProgramInfo(),
		}
	}
	res.Messages = gpu.messages

	translator.Logger().Debug("pipeline: resolved",
		"name", d.Name,
		"stages", len(configs),
		"messages", len(res.Messages))
	return res, nil
}

// replay applies the usage the decoding layer recorded for the stage.
func (sd *StageDescription) replay(cfg *translator.Config) error {
	features, err := sd.features()
	if err != nil {
		return err
	}
	if err := pairs(sd.Inputs, "inputs"); err != nil {
		return err
	}
	if err := pairs(sd.Textures, "textures"); err != nil {
		return err
	}
	if err := pairs(sd.AtomicTextures, "atomic_textures"); err != nil {
		return err
	}

	cfg.SetUsedFeature(features)

	for _, p := range sd.Inputs {
		cfg.SetInputUserAttribute(p[0], p[1])
	}
	for _, loc := range sd.InputsFixedFunc {
		cfg.SetInputUserAttributeFixedFunc(loc)
	}
	for _, loc := range sd.Outputs {
		cfg.SetOutputUserAttribute(loc)
	}
	for _, loc := range sd.InputsPerPatch {
		cfg.SetInputUserAttributePerPatch(loc)
	}
	for _, loc := range sd.OutputsPerPatch {
		cfg.SetOutputUserAttributePerPatch(loc)
	}
	if sd.AllInputs {
		cfg.SetAllInputUserAttributes()
	}
	if sd.AllOutputs {
		cfg.SetAllOutputUserAttributes()
	}

	for _, index := range sd.ClipDistances {
		cfg.SetClipDistanceWritten(index)
	}
	if sd.LayerInputAttribute != nil {
		if cfg.Stage() != ir.StageGeometry {
			return fmt.Errorf("%w: layer input attribute on %v stage", ErrInvalidStage, cfg.Stage())
		}
		cfg.SetGeometryShaderLayerInputAttribute(*sd.LayerInputAttribute)
	}
	cfg.SizeAdd(sd.Size)
	return nil
}

func resolveTextures(cfg *translator.Config, sd *StageDescription) []TextureBinding {
	var out []TextureBinding
	for _, p := range sd.Textures {
		out = append(out, TextureBinding{Handle: p[0], CbufSlot: p[1], Format: cfg.TextureFormat(p[0], p[1])})
	}
	for _, p := range sd.AtomicTextures {
		out = append(out, TextureBinding{Handle: p[0], CbufSlot: p[1], Atomic: true, Format: cfg.TextureFormatAtomic(p[0], p[1])})
	}
	return out
}
