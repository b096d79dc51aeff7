// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package capability

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shadercfg/ir"
)

const sampleDescription = `
transform_feedback = true
native_transform_feedback = false
image_load_formatted = true

[[stream]]
index = 0
stride = 16
varyings = [128, 132, 136, 140]

[[stream]]
index = 2
stride = 4
varyings = [112]

[[attribute]]
location = 1
type = "sint"

[[fragment_output]]
location = 0
type = "uint"

[[texture]]
handle = 3
format = "r32uint"

[[texture]]
handle = 3
cbuf_slot = 2
format = "rgba8unorm"
`

func mustParse(t *testing.T, src string) Description {
	t.Helper()
	d, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return d
}

func TestNew_FromDescription(t *testing.T) {
	a, err := New(mustParse(t, sampleDescription), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if !a.TransformFeedbackEnabled() || a.HostSupportsTransformFeedback() {
		t.Error("capture flags not decoded")
	}
	if !a.HostSupportsImageLoadFormatted() || a.OriginUpperLeft() {
		t.Error("host flags not decoded")
	}
	if got := a.TransformFeedbackVaryingLocations(0); len(got) != 4 || got[3] != 140 {
		t.Errorf("stream 0 varyings = %v", got)
	}
	if got := a.TransformFeedbackStride(2); got != 4 {
		t.Errorf("stream 2 stride = %d, want 4", got)
	}
	if got := a.TransformFeedbackVaryingLocations(1); got != nil {
		t.Errorf("undeclared stream varyings = %v, want nil", got)
	}
	if got := a.TransformFeedbackVaryingLocations(7); got != nil {
		t.Errorf("out of range stream varyings = %v, want nil", got)
	}

	if got := a.AttributeType(1); got != ir.AttributeTypeSint {
		t.Errorf("AttributeType(1) = %v, want sint", got)
	}
	if got := a.AttributeType(0); got != ir.AttributeTypeFloat {
		t.Errorf("AttributeType(0) = %v, want float", got)
	}
	if got := a.FragmentOutputType(0); got != ir.AttributeTypeUint {
		t.Errorf("FragmentOutputType(0) = %v, want uint", got)
	}

	if got := a.TextureFormat(3, 0); got != gputypes.TextureFormatR32Uint {
		t.Errorf("TextureFormat(3, 0) = %v", got)
	}
	if got := a.TextureFormat(3, 2); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("TextureFormat(3, 2) = %v", got)
	}
	if got := a.TextureFormat(4, 0); got != gputypes.TextureFormatUndefined {
		t.Errorf("TextureFormat(4, 0) = %v, want undefined", got)
	}
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("transform_feedbak = true\n")); err == nil {
		t.Error("Parse accepted a misspelled key")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"stream index", "[[stream]]\nindex = 4\n"},
		{"duplicate stream", "[[stream]]\nindex = 1\n[[stream]]\nindex = 1\n"},
		{"negative stride", "[[stream]]\nindex = 0\nstride = -4\n"},
		{"unaligned varying", "[[stream]]\nindex = 0\nvaryings = [130]\n"},
		{"attribute location", "[[attribute]]\nlocation = 32\ntype = \"float\"\n"},
		{"attribute type", "[[attribute]]\nlocation = 0\ntype = \"half\"\n"},
		{"duplicate output", "[[fragment_output]]\nlocation = 0\ntype = \"uint\"\n[[fragment_output]]\nlocation = 0\ntype = \"sint\"\n"},
		{"texture format", "[[texture]]\nhandle = 1\nformat = \"bc7\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(mustParse(t, tt.src), nil)
			if !errors.Is(err, ErrInvalidDescription) {
				t.Errorf("New() error = %v, want ErrInvalidDescription", err)
			}
		})
	}
}

func TestAccessor_LogUsesLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	a, err := New(Description{}, logger)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Log("Unknown format for texture 9.")

	if !strings.Contains(buf.String(), "Unknown format for texture 9.") {
		t.Errorf("log output = %q", buf.String())
	}
}

func TestParseTextureFormat(t *testing.T) {
	if f, ok := ParseTextureFormat("r32sint"); !ok || f != gputypes.TextureFormatR32Sint {
		t.Errorf("ParseTextureFormat(r32sint) = %v, %v", f, ok)
	}
	if _, ok := ParseTextureFormat("R32Sint"); ok {
		t.Error("format names are lower case")
	}
}

func TestFormatName(t *testing.T) {
	for name, format := range textureFormats {
		if got := FormatName(format); got != name {
			t.Errorf("FormatName(%v) = %q, want %q", format, got, name)
		}
	}
}
