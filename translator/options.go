// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

// TargetAPI is the host graphics API the translated program runs on.
type TargetAPI uint8

const (
	TargetAPIOpenGL TargetAPI = iota
	TargetAPIVulkan
)

// String returns the API name.
func (a TargetAPI) String() string {
	if a == TargetAPIVulkan {
		return "vulkan"
	}
	return "opengl"
}

// TargetLanguage is the form code emission produces.
type TargetLanguage uint8

const (
	TargetLanguageGLSL TargetLanguage = iota
	TargetLanguageSPIRV
)

// String returns the language name.
func (l TargetLanguage) String() string {
	if l == TargetLanguageSPIRV {
		return "spirv"
	}
	return "glsl"
}

// TranslationFlags control translation behavior.
type TranslationFlags uint32

const (
	// FlagNone uses default settings.
	FlagNone TranslationFlags = 0

	// FlagDebugMode keeps extra diagnostics in emitted code.
	FlagDebugMode TranslationFlags = 1 << 0
)

// Debug reports whether FlagDebugMode is set.
func (o Options) Debug() bool {
	return o.Flags&FlagDebugMode != 0
}

// Options configures translation of one program.
type Options struct {
	// TargetAPI selects the host API. It decides the fragment origin.
	TargetAPI TargetAPI

	// TargetLanguage selects the emitted form.
	TargetLanguage TargetLanguage

	// Flags control translation behavior.
	Flags TranslationFlags
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		TargetAPI:      TargetAPIVulkan,
		TargetLanguage: TargetLanguageSPIRV,
		Flags:          FlagNone,
	}
}
