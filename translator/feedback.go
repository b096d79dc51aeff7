// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"math/bits"

	"github.com/gogpu/shadercfg/ir"
)

// TransformFeedbackWords is the number of capture table slots, one per
// 32-bit word of the capturable output address range.
const TransformFeedbackWords = 192

// TransformFeedbackOutput says where one captured output word is written.
type TransformFeedbackOutput struct {
	Valid  bool
	Buffer int // stream 0..3
	Offset int // byte offset within one vertex of the stream
	Stride int // byte stride of the stream
}

// TransformFeedbackVariable identifies a captured output semantically.
type TransformFeedbackVariable struct {
	IoVariable ir.IoVariable
	Location   int
	Component  int
}

// HasTransformFeedbackOutputs reports whether capture applies to this
// stage: capture is enabled and the stage is either the last one able to
// modify vertex outputs or the fragment stage.
func (c *Config) HasTransformFeedbackOutputs() bool {
	return c.transformFeedbackEnabled && (c.lastInVertexPipeline || c.header.Stage == ir.StageFragment)
}

func (c *Config) hasTransformFeedbackOutputs(isOutput bool) bool {
	if !c.transformFeedbackEnabled {
		return false
	}
	if isOutput {
		return c.lastInVertexPipeline
	}
	return c.header.Stage == ir.StageFragment
}

// ensureTransformFeedbackInitialized builds the capture table and the
// semantic lookup on first use. Both are immutable afterwards.
//
// Capture queries are meant for code emission, after the stage was linked:
// the build reads LastInVertexPipeline.
func (c *Config) ensureTransformFeedbackInitialized() {
	if c.transformFeedbackOutputs != nil || !c.HasTransformFeedbackOutputs() {
		return
	}

	outputs := new([TransformFeedbackWords]TransformFeedbackOutput)
	var vecMap uint64

	for stream := 0; stream < TfeBuffersCount; stream++ {
		locations := c.gpu.TransformFeedbackVaryingLocations(stream)
		stride := c.gpu.TransformFeedbackStride(stream)

		for i, addr := range locations {
			wordOffset := addr / 4
			if addr < 0 || wordOffset >= TransformFeedbackWords {
				continue
			}
			// Streams are expected not to overlap; if they do the later
			// stream wins.
			outputs[wordOffset] = TransformFeedbackOutput{
				Valid:  true,
				Buffer: stream,
				Offset: i * 4,
				Stride: stride,
			}
			vecMap |= 1 << (wordOffset / 4)
		}
	}

	// Publish the table before deriving the lookup: the component decision
	// below queries it.
	c.transformFeedbackOutputs = outputs
	c.transformFeedbackDefinitions = make(map[TransformFeedbackVariable]TransformFeedbackOutput)

	for vecMap != 0 {
		vecIndex := bits.TrailingZeros64(vecMap)

		for subIndex := 0; subIndex < 4; subIndex++ {
			wordOffset := vecIndex*4 + subIndex
			if !outputs[wordOffset].Valid {
				continue
			}

			io, location := ir.MapAttribute(wordOffset*4, true)
			if io == ir.IoInvalid {
				continue
			}

			component := 0
			if c.HasPerLocationInputOrOutputComponent(io, location, subIndex, true) {
				component = subIndex
			}

			key := TransformFeedbackVariable{IoVariable: io, Location: location, Component: component}
			if _, exists := c.transformFeedbackDefinitions[key]; !exists {
				c.transformFeedbackDefinitions[key] = outputs[wordOffset]
			}
		}

		vecMap &^= 1 << vecIndex
	}

	Logger().Debug("translator: capture table built",
		"stage", c.header.Stage,
		"definitions", len(c.transformFeedbackDefinitions))
}

// TransformFeedbackOutputs returns a copy of the capture table. Every slot
// is invalid when capture does not apply to the stage.
func (c *Config) TransformFeedbackOutputs() [TransformFeedbackWords]TransformFeedbackOutput {
	c.ensureTransformFeedbackInitialized()
	if c.transformFeedbackOutputs == nil {
		return [TransformFeedbackWords]TransformFeedbackOutput{}
	}
	return *c.transformFeedbackOutputs
}

// TransformFeedbackOutputAt returns the capture slot of an output word.
func (c *Config) TransformFeedbackOutputAt(wordOffset int) TransformFeedbackOutput {
	c.ensureTransformFeedbackInitialized()
	if c.transformFeedbackOutputs == nil || uint(wordOffset) >= TransformFeedbackWords {
		return TransformFeedbackOutput{}
	}
	return c.transformFeedbackOutputs[wordOffset]
}

// TransformFeedbackOutput returns the capture slot of one component of a
// user attribute location.
func (c *Config) TransformFeedbackOutput(location, component int) TransformFeedbackOutput {
	return c.TransformFeedbackOutputAt(ir.UserAttributeBase/4 + location*4 + component)
}

// TryGetTransformFeedbackOutput looks up the capture slot of a semantic
// output.
func (c *Config) TryGetTransformFeedbackOutput(io ir.IoVariable, location, component int) (TransformFeedbackOutput, bool) {
	c.ensureTransformFeedbackInitialized()
	out, ok := c.transformFeedbackDefinitions[TransformFeedbackVariable{IoVariable: io, Location: location, Component: component}]
	return out, ok
}

// TransformFeedbackOutputComponents returns how many components of a user
// attribute location, starting at component, are captured as one run.
//
// The run is measured from component 0 of the location: consecutive slots
// must be valid, in the same stream, and 4 bytes apart. A start component
// outside that run yields 1.
func (c *Config) TransformFeedbackOutputComponents(location, component int) int {
	c.ensureTransformFeedbackInitialized()
	if c.transformFeedbackOutputs == nil || uint(location) >= ir.UserAttributesCount || uint(component) >= 4 {
		return 1
	}

	baseIndex := ir.UserAttributeBase/4 + location*4
	count := 1

	for ; count < 4; count++ {
		prev := &c.transformFeedbackOutputs[baseIndex+count-1]
		curr := &c.transformFeedbackOutputs[baseIndex+count]

		if !prev.Valid || !curr.Valid || prev.Buffer != curr.Buffer || prev.Offset+4 != curr.Offset {
			break
		}
	}

	if component >= count {
		return 1
	}

	return count - component
}
