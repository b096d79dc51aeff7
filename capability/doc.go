// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package capability provides a static implementation of the host
// capability queries a stage configuration makes.
//
// An [Accessor] is built from a [Description], usually decoded from TOML:
//
//	transform_feedback = true
//	native_transform_feedback = false
//	origin_upper_left = false
//
//	[[stream]]
//	index = 0
//	stride = 16
//	varyings = [128, 132, 136, 140]
//
//	[[attribute]]
//	location = 1
//	type = "sint"
//
//	[[texture]]
//	handle = 3
//	format = "r32uint"
//
// Accessors are immutable after construction and safe for concurrent use.
package capability
