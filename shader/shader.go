// Package shader compiles and links GLSL shader programs and manages their
// lifetime on the GPU: compile both stages, link, validate, then detach and
// delete everything together when the program is released.
package shader

import (
	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics"
)

// StageKind identifies a programmable pipeline stage.
type StageKind int

const (
	VertexStage StageKind = iota
	FragmentStage
)

func (k StageKind) String() string {
	switch k {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	}
	return "unknown"
}

// Ext returns the source file extension conventionally used for the stage.
func (k StageKind) Ext() string {
	if k == VertexStage {
		return ".vert"
	}
	return ".frag"
}

func (k StageKind) glEnum() graphics.Enum {
	if k == VertexStage {
		return graphics.VERTEX_SHADER
	}
	return graphics.FRAGMENT_SHADER
}

// Stage is one compiled shader stage, owned by the Program it is attached
// to. Source holds the text exactly as it was handed to the compiler. The
// handle is valid from a successful compile until the owning program is
// released.
type Stage struct {
	Kind   StageKind
	Path   string
	Source string

	handle graphics.Shader
}

// compileStage creates a stage object, uploads src untouched and compiles
// it. On failure the stage object is deleted before the error is returned,
// so no handle outlives a failed compile.
func compileStage(gfx graphics.API, kind StageKind, path, src string) (Stage, error) {
	h := gfx.CreateShader(kind.glEnum())
	gfx.ShaderSource(h, src)
	gfx.CompileShader(h)
	if gfx.GetShaderi(h, graphics.COMPILE_STATUS) == int32(graphics.FALSE) {
		log := gfx.GetShaderInfoLog(h)
		gfx.DeleteShader(h)
		return Stage{}, &CompileError{Stage: kind, Path: path, Log: log}
	}
	return Stage{Kind: kind, Path: path, Source: src, handle: h}, nil
}
