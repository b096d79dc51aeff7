// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// TextureFormat returns the format of a texture. Unknown formats fall back
// to RGBA8Unorm, which every host can sample.
func (c *Config) TextureFormat(handle, cbufSlot int) gputypes.TextureFormat {
	format := c.gpu.TextureFormat(handle, cbufSlot)
	if format == gputypes.TextureFormatUndefined {
		c.gpu.Log(fmt.Sprintf("Unknown format for texture %d.", handle))
		Logger().Warn("translator: unknown texture format", "handle", handle, "cbufSlot", cbufSlot)
		format = gputypes.TextureFormatRGBA8Unorm
	}
	return format
}

// TextureFormatAtomic returns the format of an image used by atomic
// operations. Only 32-bit integer formats are valid; anything else falls
// back to R32Sint.
func (c *Config) TextureFormatAtomic(handle, cbufSlot int) gputypes.TextureFormat {
	format := c.gpu.TextureFormat(handle, cbufSlot)
	if format != gputypes.TextureFormatR32Sint && format != gputypes.TextureFormatR32Uint {
		c.gpu.Log(fmt.Sprintf("Invalid format for atomic operation on texture %d.", handle))
		Logger().Warn("translator: non-atomic texture format", "handle", handle, "cbufSlot", cbufSlot, "format", format)
		format = gputypes.TextureFormatR32Sint
	}
	return format
}

// ImageFormat returns the format an image must be declared with.
// Loads on hosts that support unformatted loads need no format and return
// TextureFormatUndefined.
func (c *Config) ImageFormat(handle, cbufSlot int, isWrite bool) gputypes.TextureFormat {
	if !isWrite && c.gpu.HostSupportsImageLoadFormatted() {
		return gputypes.TextureFormatUndefined
	}
	return c.TextureFormat(handle, cbufSlot)
}
