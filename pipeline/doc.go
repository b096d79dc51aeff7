// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package pipeline resolves a whole pipeline of stage configurations from a
// TOML description.
//
// A description lists the host capabilities and, per stage, the usage the
// decoding layer recorded. [Resolve] builds one configuration per stage,
// replays the usage, links adjacent stages from the last one backward and
// finalizes every stage:
//
//	name = "vs_fs"
//
//	[capability]
//	origin_upper_left = false
//
//	[[stage]]
//	stage = "vertex"
//	outputs = [0, 1]
//
//	[[stage]]
//	stage = "fragment"
//	features = ["fixed_func_attr"]
//	inputs = [[0, 0], [0, 1]]
//
// [Result.Dump] prints the resolved state in a stable text form.
package pipeline
