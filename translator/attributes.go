// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"math"
	"math/bits"

	"github.com/gogpu/shadercfg/ir"
)

// NoFreeAttribute is returned by FreeUserAttribute when no location is left.
const NoFreeAttribute = -1

func validLocation(index int) bool {
	if uint(index) < ir.UserAttributesCount {
		return true
	}
	Logger().Warn("translator: attribute location out of range", "location", index)
	return false
}

// SetInputUserAttributeFixedFunc marks an input location used without
// recording component usage. It is used for data injected on behalf of
// fixed-function state.
func (c *Config) SetInputUserAttributeFixedFunc(index int) {
	if validLocation(index) {
		c.usedInputAttributes |= 1 << index
	}
}

// SetOutputUserAttributeFixedFunc marks an output location used on behalf
// of fixed-function state.
func (c *Config) SetOutputUserAttributeFixedFunc(index int) {
	if validLocation(index) {
		c.usedOutputAttributes |= 1 << index
	}
}

// SetInputUserAttribute marks one component of an input location read.
func (c *Config) SetInputUserAttribute(index, component int) {
	if !validLocation(index) || uint(component) >= 4 {
		return
	}
	c.usedInputAttributes |= 1 << index
	c.thisInputAttributesComponents = c.thisInputAttributesComponents.SetComponent(index, component)
}

// SetOutputUserAttribute marks an output location written.
func (c *Config) SetOutputUserAttribute(index int) {
	if validLocation(index) {
		c.usedOutputAttributes |= 1 << index
	}
}

// SetInputUserAttributePerPatch marks a per-patch input read.
func (c *Config) SetInputUserAttributePerPatch(index int) {
	if validLocation(index) {
		c.usedInputAttributesPerPatch |= 1 << index
	}
}

// SetOutputUserAttributePerPatch marks a per-patch output written.
func (c *Config) SetOutputUserAttributePerPatch(index int) {
	if validLocation(index) {
		c.usedOutputAttributesPerPatch |= 1 << index
	}
}

// SetAllInputUserAttributes marks every input location and component used.
// Called once dynamically indexed input access is found.
func (c *Config) SetAllInputUserAttributes() {
	c.usedInputAttributes |= ir.AllAttributesMask
	c.thisInputAttributesComponents = ir.AllComponents
}

// SetAllOutputUserAttributes marks every output location used.
func (c *Config) SetAllOutputUserAttributes() {
	c.usedOutputAttributes |= ir.AllAttributesMask
}

// UsedInputAttributes returns the mask of input locations read by the stage.
func (c *Config) UsedInputAttributes() uint32 {
	return c.usedInputAttributes
}

// UsedOutputAttributes returns the mask of output locations written by the stage.
func (c *Config) UsedOutputAttributes() uint32 {
	return c.usedOutputAttributes
}

// UsedInputAttributesPerPatch returns the per-patch input attributes read.
func (c *Config) UsedInputAttributesPerPatch() uint32 {
	return c.usedInputAttributesPerPatch
}

// UsedOutputAttributesPerPatch returns the per-patch output attributes written.
func (c *Config) UsedOutputAttributesPerPatch() uint32 {
	return c.usedOutputAttributesPerPatch
}

// ThisInputAttributesComponents returns the input components read, bit
// location*4+component.
func (c *Config) ThisInputAttributesComponents() ir.ComponentMask {
	return c.thisInputAttributesComponents
}

// PassthroughAttributes returns the inputs a passthrough geometry stage
// forwards to the next stage without writing them.
func (c *Config) PassthroughAttributes() uint32 {
	return c.passthroughAttributes
}

// NextInputAttributesComponents returns the input components read by the
// next stage, known after linking.
func (c *Config) NextInputAttributesComponents() ir.ComponentMask {
	return c.nextInputAttributesComponents
}

// NextUsedInputAttributesPerPatch returns the per-patch inputs read by the
// next stage, known after linking.
func (c *Config) NextUsedInputAttributesPerPatch() uint32 {
	return c.nextUsedInputAttributesPerPatch
}

// NextUsesFixedFuncAttributes reports whether the next stage addresses its
// inputs only with fixed-function (non-indexed) accesses.
func (c *Config) NextUsesFixedFuncAttributes() bool {
	return c.nextUsesFixedFuncAttributes
}

// FreeUserAttribute returns the (n+1)-th location, counting up from 0,
// that is not marked used, or NoFreeAttribute if there is none.
func (c *Config) FreeUserAttribute(isOutput bool, n int) int {
	useMask := c.usedInputAttributes
	if isOutput {
		useMask = c.usedOutputAttributes
	}

	for useMask != math.MaxUint32 {
		bit := bits.TrailingZeros32(^useMask)
		if n < 1 {
			return bit
		}
		useMask |= 1 << bit
		n--
	}

	return NoFreeAttribute
}

// IsUsedOutputAttribute reports whether the next stage may read the output
// at the given attribute byte address.
//
// The answer is exact only for user attributes when the next stage
// addresses its inputs with constant addresses. Otherwise it is true:
// a spurious true costs an unneeded store, never a wrong result.
func (c *Config) IsUsedOutputAttribute(attr int) bool {
	if c.nextUsesFixedFuncAttributes && attr >= ir.UserAttributeBase && attr < ir.UserAttributeEnd {
		index := (attr - ir.UserAttributeBase) >> 4
		return ir.HasBit(c.nextUsedInputAttributes, index)
	}
	return true
}

// HasPerLocationInputOrOutput reports whether a variable is declared with
// one host variable per location rather than as an indexed array.
func (c *Config) HasPerLocationInputOrOutput(io ir.IoVariable, isOutput bool) bool {
	if io == ir.IoUserDefined {
		if isOutput {
			return !c.usedFeatures.Has(ir.FeatureOaIndexing)
		}
		return !c.usedFeatures.Has(ir.FeatureIaIndexing)
	}
	return io == ir.IoFragmentOutputColor
}

// HasPerLocationInputOrOutputComponent reports whether a single component
// of a user attribute must be declared on its own because capture does not
// write all four components of the location as one contiguous vector.
func (c *Config) HasPerLocationInputOrOutputComponent(io ir.IoVariable, location, component int, isOutput bool) bool {
	if io != ir.IoUserDefined || uint(component) >= 4 || !c.hasTransformFeedbackOutputs(isOutput) {
		return false
	}
	return c.TransformFeedbackOutputComponents(location, 0) != 4
}

// PerPatchAttributeLocation returns the location assigned to a per-patch
// attribute when the stage was linked, or index when none was assigned.
func (c *Config) PerPatchAttributeLocation(index int) int {
	if location, ok := c.perPatchAttributeLocations.Location(index); ok {
		return location
	}
	return index
}
