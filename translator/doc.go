// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package translator tracks the per-stage state a shader translation needs
// beyond what the bytecode encodes.
//
// A Config is created for each stage of a program and records, while the
// stage is translated:
//
//   - which input and output attribute locations are used, per location and
//     per component, including per-patch attributes
//   - the features the program uses
//   - clip distances written and emitted code size
//
// # Linking
//
// Once every stage is translated, adjacent stages are linked from the last
// stage backward with MergeFromNextStage. Linking narrows output usage to
// what the next stage reads, assigns shared locations to per-patch
// attributes and decides which stage is the last one able to modify vertex
// outputs.
//
// # Transform Feedback
//
// When the guest captures vertex outputs, the capture table maps every
// output word to a stream, offset and stride. It is built on first query
// from the GpuAccessor and does not change afterwards. If the host has no
// native capture support, the configuration registers fallback storage
// buffers so emission can write captured data explicitly.
//
// # Finalizing
//
//	info := cfg.CreateProgramInfo()
//
// ProgramInfo is the immutable bundle handed to code emission. No method
// may be called on the Config afterwards.
package translator
