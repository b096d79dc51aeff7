// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/shadercfg/ir"
)

// PerPatchLocations maps per-patch attribute indices to the locations
// assigned when two stages were linked. One instance is shared by both
// linked configurations and is never modified after the link.
type PerPatchLocations struct {
	locations map[int]int
}

// Location returns the location assigned to a per-patch attribute.
// It is safe to call on a nil map.
func (p *PerPatchLocations) Location(index int) (int, bool) {
	if p == nil {
		return 0, false
	}
	location, ok := p.locations[index]
	return location, ok
}

// Len returns the number of assigned attributes.
func (p *PerPatchLocations) Len() int {
	if p == nil {
		return 0
	}
	return len(p.locations)
}

// Indices returns the assigned attribute indices in ascending order.
func (p *PerPatchLocations) Indices() []int {
	if p == nil {
		return nil
	}
	var mask uint32
	for index := range p.locations {
		mask |= 1 << index
	}
	return ir.BitIndices(mask)
}

// MergeOutputUserAttributes folds the inputs of the next stage into the
// outputs of this one. A passthrough geometry stage cannot write them, so
// inputs it does not produce itself are forwarded instead.
func (c *Config) MergeOutputUserAttributes(mask, perPatch uint32) {
	c.nextUsedInputAttributes = mask

	if c.header.GpPassthrough {
		c.passthroughAttributes = mask &^ c.usedOutputAttributes
	} else {
		c.usedOutputAttributes |= mask
		c.usedOutputAttributesPerPatch |= perPatch
	}
}

// MergeFromNextStage links this stage with the stage that consumes its
// outputs. next must be fully translated. Pipelines are linked from the
// last stage backward, each adjacent pair once.
func (c *Config) MergeFromNextStage(next *Config) {
	c.nextInputAttributesComponents = next.thisInputAttributesComponents
	c.nextUsedInputAttributesPerPatch = next.usedInputAttributesPerPatch
	c.nextUsesFixedFuncAttributes = next.usedFeatures.Has(ir.FeatureFixedFuncAttr)
	c.MergeOutputUserAttributes(next.usedInputAttributes, next.usedInputAttributesPerPatch)

	perPatch := c.usedOutputAttributesPerPatch | next.usedInputAttributesPerPatch
	if perPatch != 0 {
		// Regular and per-patch locations share one namespace on the host,
		// so per-patch attributes take locations no regular output uses.
		locations := make(map[int]int, bits.OnesCount32(perPatch))
		freeMask := ^(c.usedOutputAttributes | next.usedOutputAttributes)

		for _, attr := range ir.BitIndices(perPatch) {
			if freeMask == 0 {
				msg := fmt.Sprintf("No enough free locations for patch input/output 0x%X.", attr)
				c.gpu.Log(msg)
				Logger().Warn("translator: per-patch locations exhausted",
					"stage", c.header.Stage, "attribute", attr, "assigned", len(locations))
				break
			}

			location := bits.TrailingZeros32(freeMask)
			locations[attr] = location
			freeMask &^= 1 << location
		}

		shared := &PerPatchLocations{locations: locations}
		c.perPatchAttributeLocations = shared
		next.perPatchAttributeLocations = shared
	}

	// A passthrough geometry stage cannot modify outputs, so the stage
	// feeding it remains the last one that can.
	if next.header.Stage != ir.StageFragment && (next.header.Stage != ir.StageGeometry || !next.header.GpPassthrough) {
		c.lastInVertexPipeline = false
	}

	Logger().Debug("translator: stages linked",
		"stage", c.header.Stage,
		"next", next.header.Stage,
		"outputs", fmt.Sprintf("%#08x", c.usedOutputAttributes),
		"perPatch", c.perPatchAttributeLocations.Len(),
		"lastInVertexPipeline", c.lastInVertexPipeline)
}
