// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package capability

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shadercfg/ir"
	"github.com/gogpu/shadercfg/translator"
)

const streamCount = translator.TfeBuffersCount

type textureKey struct {
	handle, cbufSlot int
}

// Accessor answers capability queries from a validated Description.
type Accessor struct {
	transformFeedback  bool
	nativeCapture      bool
	imageLoadFormatted bool
	originUpperLeft    bool

	varyings [streamCount][]int
	strides  [streamCount]int

	attributeTypes map[int]ir.AttributeType
	outputTypes    map[int]ir.AttributeType
	textures       map[textureKey]gputypes.TextureFormat

	log *slog.Logger
}

var _ translator.GpuAccessor = (*Accessor)(nil)

// New validates d and builds an accessor from it. Messages passed to Log
// go to logger at warn level; a nil logger uses the translator logger.
func New(d Description, logger *slog.Logger) (*Accessor, error) {
	if logger == nil {
		logger = translator.Logger()
	}
	a := &Accessor{
		transformFeedback:  d.TransformFeedback,
		nativeCapture:      d.NativeTransformFeedback,
		imageLoadFormatted: d.ImageLoadFormatted,
		originUpperLeft:    d.OriginUpperLeft,
		attributeTypes:     make(map[int]ir.AttributeType, len(d.Attributes)),
		outputTypes:        make(map[int]ir.AttributeType, len(d.FragmentOutputs)),
		textures:           make(map[textureKey]gputypes.TextureFormat, len(d.Textures)),
		log:                logger,
	}

	var seen [streamCount]bool
	for _, s := range d.Streams {
		if uint(s.Index) >= streamCount {
			return nil, fmt.Errorf("%w: stream index %d out of range", ErrInvalidDescription, s.Index)
		}
		if seen[s.Index] {
			return nil, fmt.Errorf("%w: stream %d declared twice", ErrInvalidDescription, s.Index)
		}
		if s.Stride < 0 {
			return nil, fmt.Errorf("%w: stream %d has negative stride", ErrInvalidDescription, s.Index)
		}
		for _, addr := range s.Varyings {
			if addr < 0 || addr%4 != 0 {
				return nil, fmt.Errorf("%w: stream %d varying %#x is not a word address", ErrInvalidDescription, s.Index, addr)
			}
		}
		seen[s.Index] = true
		a.varyings[s.Index] = append([]int(nil), s.Varyings...)
		a.strides[s.Index] = s.Stride
	}

	if err := typedSlots(a.attributeTypes, d.Attributes, "attribute"); err != nil {
		return nil, err
	}
	if err := typedSlots(a.outputTypes, d.FragmentOutputs, "fragment output"); err != nil {
		return nil, err
	}

	for _, tex := range d.Textures {
		format, ok := ParseTextureFormat(tex.Format)
		if !ok {
			return nil, fmt.Errorf("%w: texture %d has unknown format %q", ErrInvalidDescription, tex.Handle, tex.Format)
		}
		a.textures[textureKey{tex.Handle, tex.CbufSlot}] = format
	}

	if a.transformFeedback && !a.nativeCapture {
		logger.Debug("capability: capture emulated through storage buffers")
	}
	return a, nil
}

func typedSlots(dst map[int]ir.AttributeType, slots []TypedSlot, what string) error {
	for _, s := range slots {
		if uint(s.Location) >= ir.UserAttributesCount {
			return fmt.Errorf("%w: %s location %d out of range", ErrInvalidDescription, what, s.Location)
		}
		typ, ok := ir.ParseAttributeType(s.Type)
		if !ok {
			return fmt.Errorf("%w: %s %d has unknown type %q", ErrInvalidDescription, what, s.Location, s.Type)
		}
		if _, dup := dst[s.Location]; dup {
			return fmt.Errorf("%w: %s %d declared twice", ErrInvalidDescription, what, s.Location)
		}
		dst[s.Location] = typ
	}
	return nil
}

// Log reports a translator diagnostic as a warning.
func (a *Accessor) Log(message string) {
	a.log.Warn("capability: translator message", "message", message)
}

// TransformFeedbackEnabled reports whether the guest requested capture.
func (a *Accessor) TransformFeedbackEnabled() bool {
	return a.transformFeedback
}

// HostSupportsTransformFeedback reports whether the host captures natively.
func (a *Accessor) HostSupportsTransformFeedback() bool {
	return a.nativeCapture
}

// HostSupportsImageLoadFormatted reports whether the host loads images
// without a declared format.
func (a *Accessor) HostSupportsImageLoadFormatted() bool {
	return a.imageLoadFormatted
}

// OriginUpperLeft reports whether the host uses an upper-left fragment
// origin.
func (a *Accessor) OriginUpperLeft() bool {
	return a.originUpperLeft
}

// TransformFeedbackVaryingLocations returns the captured addresses of a
// stream. The result must not be modified.
func (a *Accessor) TransformFeedbackVaryingLocations(stream int) []int {
	if uint(stream) >= streamCount {
		return nil
	}
	return a.varyings[stream]
}

// TransformFeedbackStride returns the byte stride of a stream.
func (a *Accessor) TransformFeedbackStride(stream int) int {
	if uint(stream) >= streamCount {
		return 0
	}
	return a.strides[stream]
}

// AttributeType returns the declared type of a vertex attribute, float if
// none was declared.
func (a *Accessor) AttributeType(location int) ir.AttributeType {
	return a.attributeTypes[location]
}

// FragmentOutputType returns the declared type of a fragment output, float
// if none was declared.
func (a *Accessor) FragmentOutputType(location int) ir.AttributeType {
	return a.outputTypes[location]
}

// TextureFormat returns the declared format of a texture, or
// TextureFormatUndefined so the caller applies its fallback.
func (a *Accessor) TextureFormat(handle, cbufSlot int) gputypes.TextureFormat {
	if f, ok := a.textures[textureKey{handle, cbufSlot}]; ok {
		return f
	}
	return gputypes.TextureFormatUndefined
}
