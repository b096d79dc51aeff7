// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shadercfg/ir"
	"github.com/gogpu/shadercfg/resource"
)

// GpuAccessor answers questions about the host and the guest pipeline state
// the bytecode does not encode. Implementations must tolerate concurrent
// reads: one accessor may serve several programs translated in parallel.
type GpuAccessor interface {
	// Log receives diagnostic text.
	Log(message string)

	// TransformFeedbackEnabled reports whether the guest requested capture.
	TransformFeedbackEnabled() bool

	// HostSupportsTransformFeedback reports native capture support.
	HostSupportsTransformFeedback() bool

	// TransformFeedbackVaryingLocations returns, for stream 0..3, the output
	// attribute byte addresses captured in stream order.
	TransformFeedbackVaryingLocations(stream int) []int

	// TransformFeedbackStride returns the byte stride of a stream.
	TransformFeedbackStride(stream int) int

	// HostSupportsImageLoadFormatted reports whether images can be loaded
	// without declaring a format.
	HostSupportsImageLoadFormatted() bool

	// AttributeType returns the type hint of a vertex attribute location.
	AttributeType(location int) ir.AttributeType

	// FragmentOutputType returns the type hint of a fragment output location.
	FragmentOutputType(location int) ir.AttributeType

	// OriginUpperLeft reports whether the fragment origin is the upper-left
	// corner on APIs where it is configurable.
	OriginUpperLeft() bool

	// TextureFormat returns the format of a texture or image, or
	// gputypes.TextureFormatUndefined when it is unknown.
	TextureFormat(handle, cbufSlot int) gputypes.TextureFormat
}

// ResourceRegistry collects buffer declarations for the translation
// session. *resource.Manager implements it.
type ResourceRegistry interface {
	AddStorageBuffer(def resource.BufferDefinition) bool
	ConstantBuffers() []resource.BufferDefinition
	StorageBuffers() []resource.BufferDefinition
}
