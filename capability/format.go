// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package capability

import "github.com/gogpu/gputypes"

var textureFormats = map[string]gputypes.TextureFormat{
	"undefined":            gputypes.TextureFormatUndefined,
	"r8unorm":              gputypes.TextureFormatR8Unorm,
	"r32uint":              gputypes.TextureFormatR32Uint,
	"r32sint":              gputypes.TextureFormatR32Sint,
	"rgba8unorm":           gputypes.TextureFormatRGBA8Unorm,
	"bgra8unorm":           gputypes.TextureFormatBGRA8Unorm,
	"depth24plus-stencil8": gputypes.TextureFormatDepth24PlusStencil8,
}

// ParseTextureFormat returns the format with the given lower-case name.
func ParseTextureFormat(name string) (gputypes.TextureFormat, bool) {
	f, ok := textureFormats[name]
	return f, ok
}

// FormatName returns the name ParseTextureFormat accepts for f, or
// "unknown".
func FormatName(f gputypes.TextureFormat) string {
	for name, format := range textureFormats {
		if format == f {
			return name
		}
	}
	return "unknown"
}
