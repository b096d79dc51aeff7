// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package capability

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidDescription is returned when a description is well-formed TOML
// but describes an impossible host.
var ErrInvalidDescription = errors.New("capability: invalid description")

// Description is the decoded form of a capability file.
type Description struct {
	TransformFeedback       bool `toml:"transform_feedback"`
	NativeTransformFeedback bool `toml:"native_transform_feedback"`
	ImageLoadFormatted      bool `toml:"image_load_formatted"`
	OriginUpperLeft         bool `toml:"origin_upper_left"`

	Streams         []Stream    `toml:"stream"`
	Attributes      []TypedSlot `toml:"attribute"`
	FragmentOutputs []TypedSlot `toml:"fragment_output"`
	Textures        []Texture   `toml:"texture"`
}

// Stream describes one capture stream.
type Stream struct {
	Index  int `toml:"index"`
	Stride int `toml:"stride"`
	// Varyings holds the output byte address captured into each 4-byte
	// word of the stream, in buffer order.
	Varyings []int `toml:"varyings"`
}

// TypedSlot assigns a host scalar type to a vertex attribute or fragment
// output location.
type TypedSlot struct {
	Location int    `toml:"location"`
	Type     string `toml:"type"`
}

// Texture assigns a format to a texture handle.
type Texture struct {
	Handle   int    `toml:"handle"`
	CbufSlot int    `toml:"cbuf_slot"`
	Format   string `toml:"format"`
}

// Parse decodes a TOML capability description. Unknown keys are rejected.
func Parse(data []byte) (Description, error) {
	var d Description
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Description{}, fmt.Errorf("capability: %w", err)
	}
	return d, nil
}

// Load reads and decodes a capability file.
func Load(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, fmt.Errorf("capability: %w", err)
	}
	return Parse(data)
}
