// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resource

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/shadercfg/ir"
)

// BufferLayout is the memory layout rule of a buffer block.
type BufferLayout uint8

const (
	LayoutStd140 BufferLayout = iota
	LayoutStd430
)

// String returns the layout name.
func (l BufferLayout) String() string {
	if l == LayoutStd140 {
		return "std140"
	}
	return "std430"
}

// AggregateType describes the type of one structure field.
// The low bits hold the element type, AggregateArray marks arrays.
type AggregateType uint8

const (
	AggregateU32 AggregateType = iota + 1
	AggregateS32
	AggregateFP32

	AggregateElementMask AggregateType = 0x0f
	AggregateArray       AggregateType = 0x80
)

// String returns the field type in declaration form, e.g. "u32[4]".
func (t AggregateType) String() string {
	switch t & AggregateElementMask {
	case AggregateU32:
		return "u32"
	case AggregateS32:
		return "s32"
	case AggregateFP32:
		return "f32"
	default:
		return "invalid"
	}
}

// StructureField is one member of a buffer block.
type StructureField struct {
	Type AggregateType
	Name string
	// ArrayLength is the element count of an array field.
	// Zero on an array field means the array is runtime-sized.
	ArrayLength int
}

// Size returns the field size in bytes, or 0 for runtime-sized arrays.
func (f StructureField) Size() int {
	if f.Type&AggregateArray != 0 {
		return 4 * f.ArrayLength
	}
	return 4
}

// String returns the field in declaration form, e.g. "u32[] data".
func (f StructureField) String() string {
	if f.Type&AggregateArray == 0 {
		return f.Type.String() + " " + f.Name
	}
	if f.ArrayLength == 0 {
		return f.Type.String() + "[] " + f.Name
	}
	return fmt.Sprintf("%s[%d] %s", f.Type, f.ArrayLength, f.Name)
}

// StructureType is the field layout of a buffer block.
type StructureType struct {
	Fields []StructureField
}

// MinSize returns the size of the fixed-size part of the block.
func (s StructureType) MinSize() int {
	size := 0
	for _, f := range s.Fields {
		size += f.Size()
	}
	return size
}

// BufferDefinition describes one buffer binding.
type BufferDefinition struct {
	Layout  BufferLayout
	Set     int
	Binding int
	Name    string
	Type    StructureType
}

// String returns the binding and its fields on one line.
func (d BufferDefinition) String() string {
	fields := make([]string, len(d.Type.Fields))
	for i, f := range d.Type.Fields {
		fields[i] = f.String()
	}
	return fmt.Sprintf("%s set=%d binding=%d %s { %s }", d.Name, d.Set, d.Binding, d.Layout, strings.Join(fields, "; "))
}

// LayoutEntry returns the bind group layout entry a host pipeline needs to
// bind this storage buffer to the given stage.
func (d BufferDefinition) LayoutEntry(stage ir.ShaderStage, readOnly bool) gputypes.BindGroupLayoutEntry {
	entry := gputypes.BindGroupLayoutEntry{
		Binding:    uint32(d.Binding),
		Visibility: visibility(stage),
		Buffer: &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeStorage,
			MinBindingSize: uint64(d.Type.MinSize()),
		},
	}
	if readOnly {
		entry.Buffer.Type = gputypes.BufferBindingTypeReadOnlyStorage
	}
	return entry
}

// ConstantLayoutEntry is LayoutEntry for a constant buffer.
func (d BufferDefinition) ConstantLayoutEntry(stage ir.ShaderStage) gputypes.BindGroupLayoutEntry {
	return gputypes.BindGroupLayoutEntry{
		Binding:    uint32(d.Binding),
		Visibility: visibility(stage),
		Buffer: &gputypes.BufferBindingLayout{
			Type:           gputypes.BufferBindingTypeUniform,
			MinBindingSize: uint64(d.Type.MinSize()),
		},
	}
}

func visibility(stage ir.ShaderStage) gputypes.ShaderStages {
	switch stage {
	case ir.StageFragment:
		return gputypes.ShaderStageFragment
	case ir.StageCompute:
		return gputypes.ShaderStageCompute
	default:
		// Tessellation and geometry stages have no host visibility bit of
		// their own; they run in the vertex part of the pipeline.
		return gputypes.ShaderStageVertex
	}
}

type bindingKey struct {
	set, binding int
}

// Manager collects the buffer bindings of one translation session.
// Bindings are deduplicated by (set, binding): the first registration wins.
type Manager struct {
	constant map[bindingKey]BufferDefinition
	storage  map[bindingKey]BufferDefinition
}

// NewManager creates an empty resource manager.
func NewManager() *Manager {
	return &Manager{
		constant: make(map[bindingKey]BufferDefinition, 4),
		storage:  make(map[bindingKey]BufferDefinition, 8),
	}
}

// AddStorageBuffer registers a storage buffer. It returns false if the
// binding was already registered.
func (m *Manager) AddStorageBuffer(def BufferDefinition) bool {
	return add(m.storage, def)
}

// AddConstantBuffer registers a constant (uniform) buffer. It returns false
// if the binding was already registered.
func (m *Manager) AddConstantBuffer(def BufferDefinition) bool {
	return add(m.constant, def)
}

func add(defs map[bindingKey]BufferDefinition, def BufferDefinition) bool {
	key := bindingKey{def.Set, def.Binding}
	if _, exists := defs[key]; exists {
		return false
	}
	defs[key] = def
	return true
}

// ConstantBuffers returns the registered constant buffers ordered by set
// and binding.
func (m *Manager) ConstantBuffers() []BufferDefinition {
	return sorted(m.constant)
}

// StorageBuffers returns the registered storage buffers ordered by set and
// binding.
func (m *Manager) StorageBuffers() []BufferDefinition {
	return sorted(m.storage)
}

// Count returns the number of registered bindings.
func (m *Manager) Count() int {
	return len(m.constant) + len(m.storage)
}

func sorted(defs map[bindingKey]BufferDefinition) []BufferDefinition {
	out := make([]BufferDefinition, 0, len(defs))
	for _, d := range defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Set != out[j].Set {
			return out[i].Set < out[j].Set
		}
		return out[i].Binding < out[j].Binding
	})
	return out
}
