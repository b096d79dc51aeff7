// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"fmt"

	"github.com/gogpu/shadercfg/ir"
	"github.com/gogpu/shadercfg/resource"
)

// Capture fallback bindings. When the host cannot capture natively, the
// program writes captured outputs into storage buffers at these bindings.
const (
	TfeSet               = 1
	TfeInfoBinding       = 0
	TfeBufferBaseBinding = 1
	TfeBuffersCount      = 4
)

// Config holds the translation state of one shader stage.
//
// Fields derived from the program header are fixed at construction.
// Usage and linkage state changes while the stage is translated and
// linked. A Config is owned by one goroutine.
type Config struct {
	header          ir.ShaderHeader
	options         Options
	localMemorySize int
	originUpperLeft bool

	gpu       GpuAccessor
	resources ResourceRegistry

	transformFeedbackEnabled bool
	lastInVertexPipeline     bool

	size                  int
	usedFeatures          ir.FeatureFlags
	clipDistancesWritten  uint8
	gpLayerInputAttribute int

	usedInputAttributes           uint32
	usedOutputAttributes          uint32
	usedInputAttributesPerPatch   uint32
	usedOutputAttributesPerPatch  uint32
	thisInputAttributesComponents ir.ComponentMask
	passthroughAttributes         uint32

	nextUsedInputAttributes         uint32
	nextUsedInputAttributesPerPatch uint32
	nextInputAttributesComponents   ir.ComponentMask
	nextUsesFixedFuncAttributes     bool

	perPatchAttributeLocations *PerPatchLocations

	// nil until the first capture query.
	transformFeedbackOutputs     *[TransformFeedbackWords]TransformFeedbackOutput
	transformFeedbackDefinitions map[TransformFeedbackVariable]TransformFeedbackOutput
}

// NewConfig creates the configuration of a stage with the given local
// memory size. A nil resources creates a private registry.
func NewConfig(stage ir.ShaderStage, gpu GpuAccessor, resources ResourceRegistry, options Options, localMemorySize int) *Config {
	if resources == nil {
		resources = resource.NewManager()
	}

	c := &Config{
		header:                ir.ShaderHeader{Stage: stage},
		options:               options,
		localMemorySize:       localMemorySize,
		gpu:                   gpu,
		resources:             resources,
		gpLayerInputAttribute: -1,
		lastInVertexPipeline:  stage.IsVertexPipeline(),
	}

	requested := stage != ir.StageCompute && gpu.TransformFeedbackEnabled()
	native := gpu.HostSupportsTransformFeedback()
	c.transformFeedbackEnabled = requested && native

	if requested && !native {
		c.registerTransformFeedbackBuffers()
	}

	if stage == ir.StageFragment {
		c.originUpperLeft = options.TargetAPI == TargetAPIVulkan || gpu.OriginUpperLeft()
	}

	return c
}

// NewConfigWithTopology creates the configuration of a stage that emits
// primitives of the given topology.
func NewConfigWithTopology(stage ir.ShaderStage, topology ir.OutputTopology, maxOutputVertices int, gpu GpuAccessor, resources ResourceRegistry, options Options) *Config {
	c := NewConfig(stage, gpu, resources, options, 0)
	c.header.ThreadsPerInputPrimitive = 1
	c.header.OutputTopology = topology
	c.header.MaxOutputVertexCount = maxOutputVertices
	return c
}

// NewConfigFromHeader creates the configuration of a stage described by a
// decoded program header.
func NewConfigFromHeader(header ir.ShaderHeader, gpu GpuAccessor, resources ResourceRegistry, options Options) *Config {
	c := NewConfig(header.Stage, gpu, resources, options, header.LocalMemorySize())
	c.header = header
	c.header.GpPassthrough = header.Stage == ir.StageGeometry && header.GpPassthrough
	return c
}

func (c *Config) registerTransformFeedbackBuffers() {
	info := resource.BufferDefinition{
		Layout:  resource.LayoutStd430,
		Set:     TfeSet,
		Binding: TfeInfoBinding,
		Name:    "tfe_info",
		Type: resource.StructureType{Fields: []resource.StructureField{
			{Type: resource.AggregateArray | resource.AggregateU32, Name: "base_offset", ArrayLength: TfeBuffersCount},
			{Type: resource.AggregateU32, Name: "vertex_count"},
		}},
	}
	c.resources.AddStorageBuffer(info)

	data := resource.StructureType{Fields: []resource.StructureField{
		{Type: resource.AggregateArray | resource.AggregateU32, Name: "data"},
	}}
	for i := 0; i < TfeBuffersCount; i++ {
		c.resources.AddStorageBuffer(resource.BufferDefinition{
			Layout:  resource.LayoutStd430,
			Set:     TfeSet,
			Binding: TfeBufferBaseBinding + i,
			Name:    fmt.Sprintf("tfe_data%d", i),
			Type:    data,
		})
	}
}

// Stage returns the pipeline stage.
func (c *Config) Stage() ir.ShaderStage {
	return c.header.Stage
}

// Options returns the translation options.
func (c *Config) Options() Options {
	return c.options
}

// GpuAccessor returns the capability accessor the stage queries.
func (c *Config) GpuAccessor() GpuAccessor {
	return c.gpu
}

// Resources returns the resource registry the stage declares buffers in.
func (c *Config) Resources() ResourceRegistry {
	return c.resources
}

// GpPassthrough reports whether the stage is a passthrough geometry stage.
func (c *Config) GpPassthrough() bool {
	return c.header.GpPassthrough
}

// ThreadsPerInputPrimitive returns the geometry invocation count.
func (c *Config) ThreadsPerInputPrimitive() int {
	return c.header.ThreadsPerInputPrimitive
}

// OutputTopology returns the primitive type a geometry stage emits.
func (c *Config) OutputTopology() ir.OutputTopology {
	return c.header.OutputTopology
}

// MaxOutputVertices returns the vertex limit of a geometry stage.
func (c *Config) MaxOutputVertices() int {
	return c.header.MaxOutputVertexCount
}

// LocalMemorySize returns the per-thread local memory size in bytes.
func (c *Config) LocalMemorySize() int {
	return c.localMemorySize
}

// OmapTargets returns the fragment output map, 4 bits per render target.
func (c *Config) OmapTargets() int {
	return c.header.OmapTargets
}

// OmapSampleMask reports whether a fragment stage writes the sample mask.
func (c *Config) OmapSampleMask() bool {
	return c.header.OmapSampleMask
}

// OmapDepth reports whether a fragment stage writes depth.
func (c *Config) OmapDepth() bool {
	return c.header.OmapDepth
}

// OriginUpperLeft reports whether fragment coordinates have an upper-left
// origin.
func (c *Config) OriginUpperLeft() bool {
	return c.originUpperLeft
}

// TransformFeedbackEnabled reports whether the host captures outputs
// natively for this stage.
func (c *Config) TransformFeedbackEnabled() bool {
	return c.transformFeedbackEnabled
}

// LastInVertexPipeline reports whether no later stage can modify vertex
// outputs. It is only final once the stage is linked.
func (c *Config) LastInVertexPipeline() bool {
	return c.lastInVertexPipeline
}

// Size returns the accumulated emitted code size.
func (c *Config) Size() int {
	return c.size
}

// UsedFeatures returns the features the program uses.
func (c *Config) UsedFeatures() ir.FeatureFlags {
	return c.usedFeatures
}

// ClipDistancesWritten returns the mask of clip distances written.
func (c *Config) ClipDistancesWritten() uint8 {
	return c.clipDistancesWritten
}

// GpLayerInputAttribute returns the input forwarded to the render target
// layer, or -1.
func (c *Config) GpLayerInputAttribute() int {
	return c.gpLayerInputAttribute
}

// PerPatchLocations returns the per-patch location map shared with the
// adjacent stage, or nil before linking.
func (c *Config) PerPatchLocations() *PerPatchLocations {
	return c.perPatchAttributeLocations
}

// ImapType returns the interpolation modes of a fragment input location.
func (c *Config) ImapType(location int) ir.ImapPixelType {
	if uint(location) >= ir.UserAttributesCount {
		return ir.ImapPixelType{}
	}
	return c.header.ImapTypes[location]
}

// VertexAttributeType returns the host type hint of a vertex input.
// Other stages always use float attributes.
func (c *Config) VertexAttributeType(location int) ir.AttributeType {
	if c.header.Stage != ir.StageVertex {
		return ir.AttributeTypeFloat
	}
	return c.gpu.AttributeType(location)
}

// FragmentOutputType returns the host type hint of a fragment output.
func (c *Config) FragmentOutputType(location int) ir.AttributeType {
	if c.header.Stage != ir.StageFragment {
		return ir.AttributeTypeFloat
	}
	return c.gpu.FragmentOutputType(location)
}

// SizeAdd accumulates emitted code size.
func (c *Config) SizeAdd(size int) {
	c.size += size
}

// SetUsedFeature records features. Flags are never cleared.
func (c *Config) SetUsedFeature(flags ir.FeatureFlags) {
	c.usedFeatures |= flags
}

// SetClipDistanceWritten marks clip distance index 0..7 as written.
func (c *Config) SetClipDistanceWritten(index int) {
	if uint(index) >= 8 {
		return
	}
	c.clipDistancesWritten |= 1 << index
}

// SetGeometryShaderLayerInputAttribute records the input attribute a
// geometry program forwards to the render target layer.
func (c *Config) SetGeometryShaderLayerInputAttribute(attr int) {
	c.usedFeatures |= ir.FeatureRtLayer
	c.gpLayerInputAttribute = attr
}

// InheritFrom merges the usage recorded by another configuration of the
// same stage, such as one built for a separately decoded function.
func (c *Config) InheritFrom(other *Config) {
	c.clipDistancesWritten |= other.clipDistancesWritten
	c.usedFeatures |= other.usedFeatures

	c.usedInputAttributes |= other.usedInputAttributes
	c.usedOutputAttributes |= other.usedOutputAttributes
	c.usedInputAttributesPerPatch |= other.usedInputAttributesPerPatch
	c.usedOutputAttributesPerPatch |= other.usedOutputAttributesPerPatch
	c.thisInputAttributesComponents = c.thisInputAttributesComponents.Or(other.thisInputAttributesComponents)
}
