// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package translator

import (
	"slices"
	"testing"

	"github.com/gogpu/shadercfg/ir"
)

func TestMergeFromNextStage_PerPatchLocations(t *testing.T) {
	gpu := &testAccessor{}
	tcs := newTestConfig(ir.StageTessControl, gpu)
	tcs.SetOutputUserAttribute(0)
	tcs.SetOutputUserAttribute(1)
	tcs.SetOutputUserAttributePerPatch(0)
	tcs.SetOutputUserAttributePerPatch(1)

	tes := newTestConfig(ir.StageTessEval, gpu)
	tes.SetInputUserAttribute(3, 0)
	tes.SetInputUserAttributePerPatch(1)
	tes.SetInputUserAttributePerPatch(2)
	tes.SetOutputUserAttribute(0)

	tcs.MergeFromNextStage(tes)

	if tcs.PerPatchLocations() == nil || tcs.PerPatchLocations() != tes.PerPatchLocations() {
		t.Fatal("linked stages do not share one per-patch location map")
	}

	// Regular locations 0, 1 and 3 are taken on either side.
	want := map[int]int{0: 2, 1: 4, 2: 5}
	if got := tcs.PerPatchLocations().Len(); got != len(want) {
		t.Fatalf("Len() = %d, want %d", got, len(want))
	}
	for attr, location := range want {
		if got := tcs.PerPatchAttributeLocation(attr); got != location {
			t.Errorf("PerPatchAttributeLocation(%d) = %d, want %d", attr, got, location)
		}
		if got := tes.PerPatchAttributeLocation(attr); got != location {
			t.Errorf("next PerPatchAttributeLocation(%d) = %d, want %d", attr, got, location)
		}
		if ir.HasBit(tcs.UsedOutputAttributes(), location) || ir.HasBit(tes.UsedOutputAttributes(), location) {
			t.Errorf("per-patch %d assigned location %d used by a regular output", attr, location)
		}
	}

	if got := tcs.PerPatchAttributeLocation(7); got != 7 {
		t.Errorf("PerPatchAttributeLocation(7) = %d, want identity", got)
	}
	if got, want := tcs.PerPatchLocations().Indices(), []int{0, 1, 2}; !slices.Equal(got, want) {
		t.Errorf("Indices() = %v, want %v", got, want)
	}
}

func TestMergeFromNextStage_PerPatchExhausted(t *testing.T) {
	gpu := &testAccessor{}
	tcs := newTestConfig(ir.StageTessControl, gpu)
	for loc := 0; loc < 30; loc++ {
		tcs.SetOutputUserAttribute(loc)
	}
	for attr := 0; attr < 3; attr++ {
		tcs.SetOutputUserAttributePerPatch(attr)
	}
	tes := newTestConfig(ir.StageTessEval, gpu)

	tcs.MergeFromNextStage(tes)

	locations := tcs.PerPatchLocations()
	if locations.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", locations.Len())
	}
	if got, ok := locations.Location(0); !ok || got != 30 {
		t.Errorf("Location(0) = %d/%v, want 30", got, ok)
	}
	if got, ok := locations.Location(1); !ok || got != 31 {
		t.Errorf("Location(1) = %d/%v, want 31", got, ok)
	}
	if _, ok := locations.Location(2); ok {
		t.Error("Location(2) assigned after exhaustion")
	}

	if len(gpu.logs) != 1 || gpu.logs[0] != "No enough free locations for patch input/output 0x2." {
		t.Errorf("logs = %q, want one exhaustion message for 0x2", gpu.logs)
	}
}

func TestMergeFromNextStage_NoPerPatch(t *testing.T) {
	gpu := &testAccessor{}
	vs := newTestConfig(ir.StageVertex, gpu)
	fs := newTestConfig(ir.StageFragment, gpu)
	fs.SetInputUserAttribute(1, 2)

	vs.MergeFromNextStage(fs)

	if vs.PerPatchLocations() != nil || fs.PerPatchLocations() != nil {
		t.Error("per-patch map created without per-patch attributes")
	}
	if got := vs.UsedOutputAttributes(); got != 1<<1 {
		t.Errorf("UsedOutputAttributes() = %#x, want %#x", got, 1<<1)
	}
	if !vs.NextInputAttributesComponents().HasComponent(1, 2) {
		t.Error("next input components not copied")
	}
	if vs.NextUsesFixedFuncAttributes() {
		t.Error("NextUsesFixedFuncAttributes() = true, want false")
	}
}

func TestMergeFromNextStage_Passthrough(t *testing.T) {
	gpu := &testAccessor{}
	gs := NewConfigFromHeader(ir.ShaderHeader{Stage: ir.StageGeometry, GpPassthrough: true}, gpu, nil, DefaultOptions())
	gs.SetOutputUserAttribute(0)
	gs.SetOutputUserAttributePerPatch(4)

	fs := newTestConfig(ir.StageFragment, gpu)
	for _, loc := range []int{0, 1, 2} {
		fs.SetInputUserAttribute(loc, 0)
	}

	gs.MergeFromNextStage(fs)

	if got := gs.PassthroughAttributes(); got != 1<<1|1<<2 {
		t.Errorf("PassthroughAttributes() = %#x, want %#x", got, 1<<1|1<<2)
	}
	if got := gs.UsedOutputAttributes(); got != 1 {
		t.Errorf("UsedOutputAttributes() = %#x, want 0x1", got)
	}
}

func TestMergeOutputUserAttributes(t *testing.T) {
	cfg := newTestConfig(ir.StageVertex, &testAccessor{})
	cfg.SetOutputUserAttribute(5)
	cfg.MergeOutputUserAttributes(1<<2, 1<<3)

	if got := cfg.UsedOutputAttributes(); got != 1<<2|1<<5 {
		t.Errorf("UsedOutputAttributes() = %#x", got)
	}
	if got := cfg.UsedOutputAttributesPerPatch(); got != 1<<3 {
		t.Errorf("UsedOutputAttributesPerPatch() = %#x", got)
	}
	if cfg.PassthroughAttributes() != 0 {
		t.Error("PassthroughAttributes() set on a regular stage")
	}
}

func TestMergeFromNextStage_LastInVertexPipeline(t *testing.T) {
	tests := []struct {
		name        string
		stage       ir.ShaderStage
		next        ir.ShaderStage
		passthrough bool
		want        bool
	}{
		{"vertex to fragment", ir.StageVertex, ir.StageFragment, false, true},
		{"vertex to tess control", ir.StageVertex, ir.StageTessControl, false, false},
		{"vertex to geometry", ir.StageVertex, ir.StageGeometry, false, false},
		{"vertex to passthrough geometry", ir.StageVertex, ir.StageGeometry, true, true},
		{"tess eval to geometry", ir.StageTessEval, ir.StageGeometry, false, false},
		{"geometry to fragment", ir.StageGeometry, ir.StageFragment, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gpu := &testAccessor{}
			cfg := newTestConfig(tt.stage, gpu)
			next := NewConfigFromHeader(ir.ShaderHeader{Stage: tt.next, GpPassthrough: tt.passthrough}, gpu, nil, DefaultOptions())

			if !cfg.LastInVertexPipeline() {
				t.Fatal("LastInVertexPipeline() = false before linking")
			}
			cfg.MergeFromNextStage(next)
			if got := cfg.LastInVertexPipeline(); got != tt.want {
				t.Errorf("LastInVertexPipeline() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerPatchLocations_Nil(t *testing.T) {
	var p *PerPatchLocations
	if _, ok := p.Location(0); ok {
		t.Error("nil map reported a location")
	}
	if p.Len() != 0 || p.Indices() != nil {
		t.Error("nil map not empty")
	}
}
