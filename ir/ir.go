package ir

// ShaderStage represents a shader stage.
//
// The order matters: every graphics stage before StageFragment belongs to
// the vertex pipeline.
type ShaderStage uint8

const (
	StageCompute ShaderStage = iota
	StageVertex
	StageTessControl
	StageTessEval
	StageGeometry
	StageFragment
)

// String returns the short stage name used in logs and dumps.
func (s ShaderStage) String() string {
	switch s {
	case StageCompute:
		return "compute"
	case StageVertex:
		return "vertex"
	case StageTessControl:
		return "tess_control"
	case StageTessEval:
		return "tess_eval"
	case StageGeometry:
		return "geometry"
	case StageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// ParseShaderStage is the inverse of ShaderStage.String.
func ParseShaderStage(name string) (ShaderStage, bool) {
	for s := StageCompute; s <= StageFragment; s++ {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// IsVertexPipeline reports whether the stage runs before rasterization.
func (s ShaderStage) IsVertexPipeline() bool {
	return s != StageCompute && s < StageFragment
}

// OutputTopology represents the primitive type a geometry stage emits.
type OutputTopology uint8

const (
	TopologyPointList     OutputTopology = 1
	TopologyLineStrip     OutputTopology = 6
	TopologyTriangleStrip OutputTopology = 7
)

// String returns the topology name.
func (t OutputTopology) String() string {
	switch t {
	case TopologyPointList:
		return "point_list"
	case TopologyLineStrip:
		return "line_strip"
	case TopologyTriangleStrip:
		return "triangle_strip"
	default:
		return "unknown"
	}
}

// ParseOutputTopology is the inverse of OutputTopology.String.
func ParseOutputTopology(name string) (OutputTopology, bool) {
	for _, t := range []OutputTopology{TopologyPointList, TopologyLineStrip, TopologyTriangleStrip} {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

// AttributeType is the host-side scalar type hint of a vertex attribute or
// fragment output.
type AttributeType uint8

const (
	AttributeTypeFloat AttributeType = iota
	AttributeTypeSint
	AttributeTypeUint
)

// String returns the type name.
func (t AttributeType) String() string {
	switch t {
	case AttributeTypeSint:
		return "sint"
	case AttributeTypeUint:
		return "uint"
	default:
		return "float"
	}
}

// ParseAttributeType is the inverse of AttributeType.String.
func ParseAttributeType(name string) (AttributeType, bool) {
	switch name {
	case "float":
		return AttributeTypeFloat, true
	case "sint":
		return AttributeTypeSint, true
	case "uint":
		return AttributeTypeUint, true
	}
	return 0, false
}

// PixelImap is the interpolation mode of one fragment input component.
type PixelImap uint8

const (
	PixelImapUnused PixelImap = iota
	PixelImapConstant
	PixelImapPerspective
	PixelImapScreenLinear
)

// ImapPixelType holds the interpolation modes of the four components of
// one fragment input location.
type ImapPixelType struct {
	X, Y, Z, W PixelImap
}

// Used reports whether any component is read.
func (t ImapPixelType) Used() bool {
	return t.X != PixelImapUnused || t.Y != PixelImapUnused || t.Z != PixelImapUnused || t.W != PixelImapUnused
}

// FirstUsedType returns the mode of the first read component.
func (t ImapPixelType) FirstUsedType() PixelImap {
	for _, m := range [4]PixelImap{t.X, t.Y, t.Z, t.W} {
		if m != PixelImapUnused {
			return m
		}
	}
	return PixelImapUnused
}

// ThreadsPerWarp divides the call/return stack size when computing local
// memory requirements.
const ThreadsPerWarp = 32

// ShaderHeader holds the fields the decoding layer extracts from a program
// header. Decoding the raw header words is not done here.
type ShaderHeader struct {
	Stage ShaderStage

	// GpPassthrough marks a geometry program that forwards its inputs
	// unmodified.
	GpPassthrough bool

	ThreadsPerInputPrimitive int
	OutputTopology           OutputTopology
	MaxOutputVertexCount     int

	ShaderLocalMemoryLowSize  int
	ShaderLocalMemoryHighSize int
	ShaderLocalMemoryCrsSize  int

	// Fragment only.
	ImapTypes      [UserAttributesCount]ImapPixelType
	OmapTargets    int // 4 bits per render target
	OmapSampleMask bool
	OmapDepth      bool
}

// LocalMemorySize returns the per-thread local memory size in bytes.
func (h *ShaderHeader) LocalMemorySize() int {
	return h.ShaderLocalMemoryLowSize + h.ShaderLocalMemoryHighSize + h.ShaderLocalMemoryCrsSize/ThreadsPerWarp
}
