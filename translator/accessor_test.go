// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shadercfg/ir"
	"github.com/gogpu/shadercfg/resource"
)

// testAccessor is a GpuAccessor with fields tests set directly.
type testAccessor struct {
	tfbEnabled         bool
	tfbNative          bool
	varyings           [TfeBuffersCount][]int
	strides            [TfeBuffersCount]int
	imageLoadFormatted bool
	originUpperLeft    bool
	formats            map[int]gputypes.TextureFormat
	attributeTypes     map[int]ir.AttributeType
	outputTypes        map[int]ir.AttributeType

	logs           []string
	varyingQueries int
}

func (a *testAccessor) Log(message string)                  { a.logs = append(a.logs, message) }
func (a *testAccessor) TransformFeedbackEnabled() bool      { return a.tfbEnabled }
func (a *testAccessor) HostSupportsTransformFeedback() bool { return a.tfbNative }
func (a *testAccessor) TransformFeedbackStride(stream int) int {
	return a.strides[stream]
}
func (a *testAccessor) TransformFeedbackVaryingLocations(stream int) []int {
	a.varyingQueries++
	return a.varyings[stream]
}
func (a *testAccessor) HostSupportsImageLoadFormatted() bool { return a.imageLoadFormatted }
func (a *testAccessor) OriginUpperLeft() bool                { return a.originUpperLeft }
func (a *testAccessor) AttributeType(location int) ir.AttributeType {
	return a.attributeTypes[location]
}
func (a *testAccessor) FragmentOutputType(location int) ir.AttributeType {
	return a.outputTypes[location]
}
func (a *testAccessor) TextureFormat(handle, cbufSlot int) gputypes.TextureFormat {
	return a.formats[handle]
}

// captureAccessor returns an accessor with native capture enabled.
func captureAccessor() *testAccessor {
	return &testAccessor{tfbEnabled: true, tfbNative: true}
}

// countingRegistry records every storage buffer registration.
type countingRegistry struct {
	*resource.Manager
	storageCalls []resource.BufferDefinition
}

func newCountingRegistry() *countingRegistry {
	return &countingRegistry{Manager: resource.NewManager()}
}

func (r *countingRegistry) AddStorageBuffer(def resource.BufferDefinition) bool {
	r.storageCalls = append(r.storageCalls, def)
	return r.Manager.AddStorageBuffer(def)
}

func newTestConfig(stage ir.ShaderStage, gpu *testAccessor) *Config {
	return NewConfig(stage, gpu, nil, DefaultOptions(), 0)
}
