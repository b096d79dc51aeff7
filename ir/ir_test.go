package ir

import "testing"

func TestShaderStage_RoundTrip(t *testing.T) {
	for s := StageCompute; s <= StageFragment; s++ {
		got, ok := ParseShaderStage(s.String())
		if !ok || got != s {
			t.Errorf("ParseShaderStage(%q) = %v, %v; want %v", s.String(), got, ok, s)
		}
	}
	if _, ok := ParseShaderStage("mesh"); ok {
		t.Error("ParseShaderStage(\"mesh\") succeeded")
	}
}

func TestShaderStage_IsVertexPipeline(t *testing.T) {
	want := map[ShaderStage]bool{
		StageCompute:     false,
		StageVertex:      true,
		StageTessControl: true,
		StageTessEval:    true,
		StageGeometry:    true,
		StageFragment:    false,
	}
	for stage, w := range want {
		if got := stage.IsVertexPipeline(); got != w {
			t.Errorf("%v.IsVertexPipeline() = %v, want %v", stage, got, w)
		}
	}
}

func TestParseOutputTopology(t *testing.T) {
	for _, name := range []string{"point_list", "line_strip", "triangle_strip"} {
		topo, ok := ParseOutputTopology(name)
		if !ok || topo.String() != name {
			t.Errorf("ParseOutputTopology(%q) = %v, %v", name, topo, ok)
		}
	}
	if _, ok := ParseOutputTopology("triangle_list"); ok {
		t.Error("ParseOutputTopology(\"triangle_list\") succeeded")
	}
}

func TestParseAttributeType(t *testing.T) {
	for _, typ := range []AttributeType{AttributeTypeFloat, AttributeTypeSint, AttributeTypeUint} {
		got, ok := ParseAttributeType(typ.String())
		if !ok || got != typ {
			t.Errorf("ParseAttributeType(%q) = %v, %v", typ.String(), got, ok)
		}
	}
}

func TestImapPixelType(t *testing.T) {
	var unused ImapPixelType
	if unused.Used() || unused.FirstUsedType() != PixelImapUnused {
		t.Error("zero ImapPixelType reported as used")
	}

	typ := ImapPixelType{Z: PixelImapScreenLinear, W: PixelImapConstant}
	if !typ.Used() {
		t.Error("Used() = false")
	}
	if got := typ.FirstUsedType(); got != PixelImapScreenLinear {
		t.Errorf("FirstUsedType() = %v, want screen linear", got)
	}
}

func TestShaderHeader_LocalMemorySize(t *testing.T) {
	h := ShaderHeader{
		ShaderLocalMemoryLowSize:  16,
		ShaderLocalMemoryHighSize: 8,
		ShaderLocalMemoryCrsSize:  64,
	}
	if got := h.LocalMemorySize(); got != 26 {
		t.Errorf("LocalMemorySize() = %d, want 26", got)
	}
}
