package ir

// Attribute byte addresses.
const (
	AttributeTessLevelOuter = 0x000
	AttributeTessLevelInner = 0x010
	AttributePrimitiveID    = 0x060
	AttributeLayer          = 0x064
	AttributeViewportIndex  = 0x068
	AttributePointSize      = 0x06c
	AttributePosition       = 0x070

	// UserAttributeBase is the first byte of the user-defined region.
	UserAttributeBase = 0x080
	// UserAttributesCount is the number of user-defined locations.
	UserAttributesCount = 32
	// UserAttributeEnd is one past the last byte of the user-defined region.
	UserAttributeEnd = UserAttributeBase + UserAttributesCount*16

	AttributeFrontColorDiffuse  = 0x280
	AttributeFrontColorSpecular = 0x290
	AttributeBackColorDiffuse   = 0x2a0
	AttributeBackColorSpecular  = 0x2b0
	AttributeClipDistance       = 0x2c0
	AttributePointCoord         = 0x2e0
	AttributeFogCoord           = 0x2e8
	AttributeTessCoord          = 0x2f0
	AttributeInstanceID         = 0x2f8
	AttributeVertexID           = 0x2fc
	AttributeTexCoordBase       = 0x300
	AttributeTexCoordEnd        = 0x380
	AttributeFrontFacing        = 0x3fc
)

// AllAttributesMask has one bit set per user-defined location.
const AllAttributesMask uint32 = 1<<UserAttributesCount - 1

// UserAttributeAddress returns the byte address of a user-defined
// location and component.
func UserAttributeAddress(location, component int) int {
	return UserAttributeBase + location*16 + component*4
}

// IoVariable is the semantic identity of an attribute address.
type IoVariable uint8

const (
	IoInvalid IoVariable = iota
	IoUserDefined
	IoTessellationLevelOuter
	IoTessellationLevelInner
	IoPrimitiveID
	IoLayer
	IoViewportIndex
	IoPointSize
	IoPosition
	IoFrontColorDiffuse
	IoFrontColorSpecular
	IoBackColorDiffuse
	IoBackColorSpecular
	IoClipDistance
	IoPointCoord
	IoFogCoord
	IoTessellationCoord
	IoInstanceID
	IoVertexID
	IoTextureCoord
	IoFrontFacing
	IoFragmentOutputColor
	IoFragmentOutputDepth
)

var ioVariableNames = [...]string{
	IoInvalid:                "invalid",
	IoUserDefined:            "user",
	IoTessellationLevelOuter: "tess_level_outer",
	IoTessellationLevelInner: "tess_level_inner",
	IoPrimitiveID:            "primitive_id",
	IoLayer:                  "layer",
	IoViewportIndex:          "viewport_index",
	IoPointSize:              "point_size",
	IoPosition:               "position",
	IoFrontColorDiffuse:      "front_color_diffuse",
	IoFrontColorSpecular:     "front_color_specular",
	IoBackColorDiffuse:       "back_color_diffuse",
	IoBackColorSpecular:      "back_color_specular",
	IoClipDistance:           "clip_distance",
	IoPointCoord:             "point_coord",
	IoFogCoord:               "fog_coord",
	IoTessellationCoord:      "tess_coord",
	IoInstanceID:             "instance_id",
	IoVertexID:               "vertex_id",
	IoTextureCoord:           "texture_coord",
	IoFrontFacing:            "front_facing",
	IoFragmentOutputColor:    "frag_output_color",
	IoFragmentOutputDepth:    "frag_output_depth",
}

// String returns the variable name used in dumps.
func (v IoVariable) String() string {
	if int(v) < len(ioVariableNames) {
		return ioVariableNames[v]
	}
	return "invalid"
}

type attributeRange struct {
	base, end int
	io        IoVariable
	inputOnly bool
	located   bool // location = (addr-base)/16
}

var attributeRanges = [...]attributeRange{
	{AttributeTessLevelOuter, AttributeTessLevelOuter + 16, IoTessellationLevelOuter, false, false},
	{AttributeTessLevelInner, AttributeTessLevelInner + 8, IoTessellationLevelInner, false, false},
	{AttributePrimitiveID, AttributePrimitiveID + 4, IoPrimitiveID, false, false},
	{AttributeLayer, AttributeLayer + 4, IoLayer, false, false},
	{AttributeViewportIndex, AttributeViewportIndex + 4, IoViewportIndex, false, false},
	{AttributePointSize, AttributePointSize + 4, IoPointSize, false, false},
	{AttributePosition, AttributePosition + 16, IoPosition, false, false},
	{UserAttributeBase, UserAttributeEnd, IoUserDefined, false, true},
	{AttributeFrontColorDiffuse, AttributeFrontColorDiffuse + 16, IoFrontColorDiffuse, false, false},
	{AttributeFrontColorSpecular, AttributeFrontColorSpecular + 16, IoFrontColorSpecular, false, false},
	{AttributeBackColorDiffuse, AttributeBackColorDiffuse + 16, IoBackColorDiffuse, false, false},
	{AttributeBackColorSpecular, AttributeBackColorSpecular + 16, IoBackColorSpecular, false, false},
	{AttributeClipDistance, AttributeClipDistance + 32, IoClipDistance, false, false},
	{AttributePointCoord, AttributePointCoord + 8, IoPointCoord, true, false},
	{AttributeFogCoord, AttributeFogCoord + 4, IoFogCoord, false, false},
	{AttributeTessCoord, AttributeTessCoord + 8, IoTessellationCoord, true, false},
	{AttributeInstanceID, AttributeInstanceID + 4, IoInstanceID, true, false},
	{AttributeVertexID, AttributeVertexID + 4, IoVertexID, true, false},
	{AttributeTexCoordBase, AttributeTexCoordEnd, IoTextureCoord, false, true},
	{AttributeFrontFacing, AttributeFrontFacing + 4, IoFrontFacing, true, false},
}

// MapAttribute resolves a byte address to its semantic variable and
// location. Location is only meaningful for user-defined attributes and
// texture coordinates; it is 0 otherwise. Addresses outside every known
// range, and input-only addresses queried as outputs, map to IoInvalid.
func MapAttribute(byteOffset int, isOutput bool) (IoVariable, int) {
	for _, r := range attributeRanges {
		if byteOffset < r.base || byteOffset >= r.end {
			continue
		}
		if isOutput && r.inputOnly {
			return IoInvalid, 0
		}
		if r.located {
			return r.io, (byteOffset - r.base) >> 4
		}
		return r.io, 0
	}
	return IoInvalid, 0
}
