// Package shadercfg resolves the per-stage configuration a shader
// translator needs to emit code for a pipeline of stages.
//
// For each stage it tracks which attribute locations and components are
// read and written, links adjacent stages so they agree on attribute
// layout, and maps transform-feedback outputs onto capture buffers.
// Bytecode decoding and code emission are done elsewhere; they drive a
// [translator.Config] and consume its [translator.ProgramInfo].
//
// Example usage:
//
//	res, err := shadercfg.ResolveFile("pipeline.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(res)
//
// Stages built directly are linked with LinkStages:
//
//	vs := translator.NewConfig(ir.StageVertex, gpu, nil, shadercfg.DefaultOptions(), 0)
//	fs := translator.NewConfig(ir.StageFragment, gpu, nil, shadercfg.DefaultOptions(), 0)
//	// ... record usage while decoding ...
//	shadercfg.LinkStages(vs, fs)
package shadercfg

import (
	"log/slog"

	"github.com/gogpu/shadercfg/pipeline"
	"github.com/gogpu/shadercfg/translator"
)

// Version is the module version reported by the CLI.
const Version = "0.1.0-dev"

// DefaultOptions returns options targeting Vulkan SPIR-V.
func DefaultOptions() translator.Options {
	return translator.DefaultOptions()
}

// SetLogger configures the logger used by every package of the module.
// Pass nil to silence logging, which is the default.
func SetLogger(l *slog.Logger) {
	translator.SetLogger(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return translator.Logger()
}

// LinkStages links stage configurations given in pipeline order. Every
// stage must be fully translated.
func LinkStages(configs ...*translator.Config) {
	pipeline.Link(configs)
}

// Resolve parses a TOML pipeline description and resolves it.
func Resolve(source []byte) (*pipeline.Result, error) {
	d, err := pipeline.Parse(source)
	if err != nil {
		return nil, err
	}
	return pipeline.Resolve(d, nil)
}

// ResolveFile loads a TOML pipeline description and resolves it.
func ResolveFile(path string) (*pipeline.Result, error) {
	d, err := pipeline.Load(path)
	if err != nil {
		return nil, err
	}
	return pipeline.Resolve(d, nil)
}
