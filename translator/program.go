// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"sort"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shadercfg/ir"
	"github.com/gogpu/shadercfg/resource"
)

// BindingLayout is the host layout entry of one declared buffer.
type BindingLayout struct {
	Set   int
	Entry gputypes.BindGroupLayoutEntry
}

// ProgramInfo is the finalized state code emission consumes.
type ProgramInfo struct {
	// ConstantBuffers and StorageBuffers list the declared buffers in
	// binding order.
	ConstantBuffers []resource.BufferDefinition
	StorageBuffers  []resource.BufferDefinition

	// Bindings holds the host layout entries of every declared buffer,
	// ordered by set and binding. Storage buffers are writable.
	Bindings []BindingLayout

	Stage ir.ShaderStage

	// GeometryLayerInputAttr is the input forwarded to the render target
	// layer, or -1.
	GeometryLayerInputAttr int

	UsesFragCoord      bool
	UsesInstanceID     bool
	UsesDrawParameters bool
	UsesRtLayer        bool

	ClipDistancesWritten uint8

	// FragmentOutputMap has 4 bits per render target for fragment stages
	// and is -1 for other stages.
	FragmentOutputMap int

	// Size is the accumulated emitted code size.
	Size int
}

// CreateProgramInfo snapshots the configuration for code emission.
// It must be the last call made on the configuration.
func (c *Config) CreateProgramInfo() ProgramInfo {
	fragmentOutputMap := -1
	if c.header.Stage == ir.StageFragment {
		fragmentOutputMap = c.header.OmapTargets
	}

	constants := c.resources.ConstantBuffers()
	storage := c.resources.StorageBuffers()

	return ProgramInfo{
		ConstantBuffers:        constants,
		StorageBuffers:         storage,
		Bindings:               c.bindingLayouts(constants, storage),
		Stage:                  c.header.Stage,
		GeometryLayerInputAttr: c.gpLayerInputAttribute,
		UsesFragCoord:          c.usedFeatures.UsesFragCoord(),
		UsesInstanceID:         c.usedFeatures.UsesInstanceID(),
		UsesDrawParameters:     c.usedFeatures.UsesDrawParameters(),
		UsesRtLayer:            c.usedFeatures.UsesRtLayer(),
		ClipDistancesWritten:   c.clipDistancesWritten,
		FragmentOutputMap:      fragmentOutputMap,
		Size:                   c.size,
	}
}

func (c *Config) bindingLayouts(constants, storage []resource.BufferDefinition) []BindingLayout {
	if len(constants)+len(storage) == 0 {
		return nil
	}
	out := make([]BindingLayout, 0, len(constants)+len(storage))
	for _, d := range constants {
		out = append(out, BindingLayout{Set: d.Set, Entry: d.ConstantLayoutEntry(c.header.Stage)})
	}
	for _, d := range storage {
		out = append(out, BindingLayout{Set: d.Set, Entry: d.LayoutEntry(c.header.Stage, false)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Set != out[j].Set {
			return out[i].Set < out[j].Set
		}
		return out[i].Entry.Binding < out[j].Entry.Binding
	})
	return out
}
