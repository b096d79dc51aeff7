// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package pipeline

import (
	"fmt"
	"io"
	"strings"

	"github.com/gogpu/shadercfg/capability"
	"github.com/gogpu/shadercfg/ir"
	"github.com/gogpu/shadercfg/translator"
)

const componentNames = "xyzw"

// Dump writes the resolved state of every stage. The output only depends
// on the description, so it can be compared against golden files.
func (r *Result) Dump(w io.Writer) error {
	_, err := io.WriteString(w, r.String())
	return err
}

// String returns the dump Dump writes.
func (r *Result) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "pipeline %s\n", r.Name)
	fmt.Fprintf(&sb, "target %v %v", r.Options.TargetAPI, r.Options.TargetLanguage)
	if r.Options.Debug() {
		sb.WriteString(" debug")
	}
	sb.WriteByte('\n')

	for i := range r.Stages {
		dumpStage(&sb, &r.Stages[i])
	}

	if len(r.Messages) > 0 {
		sb.WriteString("messages\n")
		for _, m := range r.Messages {
			fmt.Fprintf(&sb, "  %s\n", m)
		}
	}
	return sb.String()
}

func dumpStage(sb *strings.Builder, s *Stage) {
	cfg := s.Config
	stage := cfg.Stage()

	fmt.Fprintf(sb, "stage %v\n", stage)
	fmt.Fprintf(sb, "  features %v\n", cfg.UsedFeatures())
	fmt.Fprintf(sb, "  inputs 0x%08x\n", cfg.UsedInputAttributes())
	fmt.Fprintf(sb, "  outputs 0x%08x\n", cfg.UsedOutputAttributes())
	if m := cfg.UsedInputAttributesPerPatch(); m != 0 {
		fmt.Fprintf(sb, "  inputs_per_patch 0x%08x\n", m)
	}
	if m := cfg.UsedOutputAttributesPerPatch(); m != 0 {
		fmt.Fprintf(sb, "  outputs_per_patch 0x%08x\n", m)
	}
	if m := cfg.PassthroughAttributes(); m != 0 {
		fmt.Fprintf(sb, "  passthrough 0x%08x\n", m)
	}
	if n := cfg.LocalMemorySize(); n > 0 {
		fmt.Fprintf(sb, "  local_memory %d\n", n)
	}
	if stage == ir.StageGeometry {
		fmt.Fprintf(sb, "  topology %v max_output_vertices=%d\n", cfg.OutputTopology(), cfg.MaxOutputVertices())
	}

	if stage.IsVertexPipeline() {
		fmt.Fprintf(sb, "  last_in_vertex_pipeline %v\n", cfg.LastInVertexPipeline())
	}
	if stage == ir.StageFragment {
		fmt.Fprintf(sb, "  origin_upper_left %v\n", cfg.OriginUpperLeft())
	}

	if locations := cfg.PerPatchLocations(); locations.Len() > 0 {
		sb.WriteString("  per_patch_locations")
		for _, attr := range locations.Indices() {
			location, _ := locations.Location(attr)
			fmt.Fprintf(sb, " %d->%d", attr, location)
		}
		sb.WriteByte('\n')
	}

	if cfg.HasTransformFeedbackOutputs() {
		dumpCapture(sb, cfg)
	}

	for _, tex := range s.Textures {
		kind := "texture"
		if tex.Atomic {
			kind = "atomic_texture"
		}
		fmt.Fprintf(sb, "  %s %d.%d %s\n", kind, tex.Handle, tex.CbufSlot, capability.FormatName(tex.Format))
	}

	for _, def := range s.Program.ConstantBuffers {
		fmt.Fprintf(sb, "  constant %v\n", def)
	}
	for _, def := range s.Program.StorageBuffers {
		fmt.Fprintf(sb, "  storage %v\n", def)
	}
	for _, b := range s.Program.Bindings {
		fmt.Fprintf(sb, "  layout set=%d binding=%d %v %v min_size=%d\n",
			b.Set, b.Entry.Binding, b.Entry.Buffer.Type, b.Entry.Visibility, b.Entry.Buffer.MinBindingSize)
	}

	p := &s.Program
	fmt.Fprintf(sb, "  program clip=0x%02x omap=%d layer_attr=%d frag_coord=%v instance_id=%v draw_parameters=%v rt_layer=%v size=%d\n",
		p.ClipDistancesWritten, p.FragmentOutputMap, p.GeometryLayerInputAttr,
		p.UsesFragCoord, p.UsesInstanceID, p.UsesDrawParameters, p.UsesRtLayer, p.Size)
}

func dumpCapture(sb *strings.Builder, cfg *translator.Config) {
	table := cfg.TransformFeedbackOutputs()
	for word, out := range table {
		if !out.Valid {
			continue
		}
		fmt.Fprintf(sb, "  capture 0x%03x %s buffer=%d offset=%d stride=%d\n",
			word*4, attributeLabel(word), out.Buffer, out.Offset, out.Stride)
	}

	for loc := 0; loc < ir.UserAttributesCount; loc++ {
		if !cfg.TransformFeedbackOutput(loc, 0).Valid {
			continue
		}
		if n := cfg.TransformFeedbackOutputComponents(loc, 0); n > 1 {
			fmt.Fprintf(sb, "  capture_vector user[%d] components=%d\n", loc, n)
		}
	}
}

func attributeLabel(word int) string {
	v, location := ir.MapAttribute(word*4, true)
	component := componentNames[word%4]
	if v == ir.IoUserDefined || v == ir.IoTextureCoord {
		return fmt.Sprintf("%v[%d].%c", v, location, component)
	}
	return fmt.Sprintf("%v.%c", v, component)
}
