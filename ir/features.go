package ir

import "strings"

// FeatureFlags records the features a program uses.
// Flags are only ever added; merging two sets is a bitwise OR.
type FeatureFlags uint32

const (
	// FeatureNone means no tracked feature is used.
	FeatureNone FeatureFlags = 0

	FeatureBindless FeatureFlags = 1 << (iota - 1)
	FeatureInstanceID
	FeatureDrawParameters
	FeatureRtLayer

	// FeatureFixedFuncAttr means every attribute access is a constant
	// address, so per-location usage masks are exact.
	FeatureFixedFuncAttr

	FeatureFragCoordXY
	FeatureIntegerSampling

	// FeatureIaIndexing and FeatureOaIndexing mean input or output
	// attributes are addressed dynamically.
	FeatureIaIndexing
	FeatureOaIndexing

	FeatureLocalMemory
	FeatureSharedMemory
	FeatureStore
)

var featureNames = [...]struct {
	flag FeatureFlags
	name string
}{
	{FeatureBindless, "bindless"},
	{FeatureInstanceID, "instance_id"},
	{FeatureDrawParameters, "draw_parameters"},
	{FeatureRtLayer, "rt_layer"},
	{FeatureFixedFuncAttr, "fixed_func_attr"},
	{FeatureFragCoordXY, "frag_coord_xy"},
	{FeatureIntegerSampling, "integer_sampling"},
	{FeatureIaIndexing, "ia_indexing"},
	{FeatureOaIndexing, "oa_indexing"},
	{FeatureLocalMemory, "local_memory"},
	{FeatureSharedMemory, "shared_memory"},
	{FeatureStore, "store"},
}

// Has reports whether every flag in f is set.
func (ff FeatureFlags) Has(f FeatureFlags) bool {
	return ff&f == f
}

// UsesInstanceID reports whether the instance index is read.
func (ff FeatureFlags) UsesInstanceID() bool {
	return ff.Has(FeatureInstanceID)
}

// UsesDrawParameters reports whether draw parameters are read.
func (ff FeatureFlags) UsesDrawParameters() bool {
	return ff.Has(FeatureDrawParameters)
}

// UsesRtLayer reports whether the render target layer is written.
func (ff FeatureFlags) UsesRtLayer() bool {
	return ff.Has(FeatureRtLayer)
}

// UsesFragCoord reports whether fragment coordinates are read.
func (ff FeatureFlags) UsesFragCoord() bool {
	return ff.Has(FeatureFragCoordXY)
}

// UsesFixedFuncAttr reports whether attributes are addressed without indexing.
func (ff FeatureFlags) UsesFixedFuncAttr() bool {
	return ff.Has(FeatureFixedFuncAttr)
}

// String returns the set flag names joined by '|', or "none".
func (ff FeatureFlags) String() string {
	if ff == FeatureNone {
		return "none"
	}
	var names []string
	for _, fn := range featureNames {
		if ff.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseFeature returns the flag with the given name.
func ParseFeature(name string) (FeatureFlags, bool) {
	for _, fn := range featureNames {
		if fn.name == name {
			return fn.flag, true
		}
	}
	return FeatureNone, false
}
