// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package resource keeps track of the buffer bindings a translated program
// declares.
//
// A Manager is owned by one translation session and shared by every stage
// configuration of that session. Registrations are deduplicated by set and
// binding, and the finalized lists are returned in binding order so that
// emitted declarations are stable.
package resource
