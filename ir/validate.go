package ir

import (
	"fmt"
	"math"
)

// ValidationError represents a header validation error.
type ValidationError struct {
	Message string
	// Optional context
	Field string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// headerValidator validates one shader header.
type headerValidator struct {
	header *ShaderHeader
	errors []ValidationError
}

// ValidateHeader checks that the header fields are consistent with its
// stage. Returns validation errors if any, or nil if the header is valid.
func ValidateHeader(h *ShaderHeader) []ValidationError {
	v := &headerValidator{header: h}

	if h.Stage > StageFragment {
		v.addError("", fmt.Sprintf("unknown stage %d", h.Stage))
		return v.errors
	}

	v.validateGeometry()
	v.validateLocalMemory()
	v.validateFragment()

	if len(v.errors) > 0 {
		return v.errors
	}
	return nil
}

// validateGeometry checks the fields only a geometry program may set.
func (v *headerValidator) validateGeometry() {
	h := v.header
	if h.Stage != StageGeometry {
		if h.GpPassthrough {
			v.addError("passthrough", "only valid on geometry stages")
		}
		if h.OutputTopology != 0 {
			v.addError("topology", "only valid on geometry stages")
		}
		if h.MaxOutputVertexCount != 0 {
			v.addError("max_output_vertices", "only valid on geometry stages")
		}
		if h.ThreadsPerInputPrimitive != 0 {
			v.addError("threads_per_input_primitive", "only valid on geometry stages")
		}
		return
	}

	switch h.OutputTopology {
	case 0, TopologyPointList, TopologyLineStrip, TopologyTriangleStrip:
	default:
		v.addError("topology", fmt.Sprintf("unknown topology %d", h.OutputTopology))
	}
	if h.MaxOutputVertexCount < 0 {
		v.addError("max_output_vertices", "must not be negative")
	}
	if h.ThreadsPerInputPrimitive < 0 {
		v.addError("threads_per_input_primitive", "must not be negative")
	}
}

func (v *headerValidator) validateLocalMemory() {
	h := v.header
	if h.ShaderLocalMemoryLowSize < 0 {
		v.addError("local_memory_low", "must not be negative")
	}
	if h.ShaderLocalMemoryHighSize < 0 {
		v.addError("local_memory_high", "must not be negative")
	}
	if h.ShaderLocalMemoryCrsSize < 0 {
		v.addError("local_memory_crs", "must not be negative")
	}
}

// validateFragment checks the output map, which fragment programs own.
func (v *headerValidator) validateFragment() {
	h := v.header
	if h.Stage != StageFragment {
		if h.OmapTargets != 0 || h.OmapSampleMask || h.OmapDepth {
			v.addError("omap", "only valid on fragment stages")
		}
		return
	}
	if h.OmapTargets < 0 || int64(h.OmapTargets) > math.MaxUint32 {
		v.addError("omap_targets", fmt.Sprintf("%d does not fit 8 render targets", h.OmapTargets))
	}
}

func (v *headerValidator) addError(field, msg string) {
	v.errors = append(v.errors, ValidationError{
		Message: msg,
		Field:   field,
	})
}
