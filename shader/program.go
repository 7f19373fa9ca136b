package shader

import (
	"log"
	"runtime"

	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics"
)

// Program is a linked shader program. It exclusively owns one vertex
// stage, one fragment stage and the native program object they are linked
// into, from Load until Release.
type Program struct {
	gfx      graphics.API
	handle   graphics.Program
	vertex   Stage
	fragment Stage
	active   bool
	released bool
}

// Load reads, compiles and links the named vertex and fragment stages into
// a ready-to-use program. Stage names resolve through SourcePath. The
// stages stay attached for the program's lifetime; Release deletes them
// together with the program object. Every failure path deletes whatever
// native objects were created before it, so an error never leaks a handle:
// a second-stage compile failure deletes the first stage, and a link or
// validate failure deletes both stages and the program object.
func Load(gfx graphics.API, vertexName, fragmentName string) (*Program, error) {
	vert, err := loadStage(gfx, VertexStage, vertexName)
	if err != nil {
		return nil, err
	}
	frag, err := loadStage(gfx, FragmentStage, fragmentName)
	if err != nil {
		gfx.DeleteShader(vert.handle)
		return nil, err
	}

	handle := gfx.CreateProgram()
	gfx.AttachShader(handle, vert.handle)
	gfx.AttachShader(handle, frag.handle)

	gfx.LinkProgram(handle)
	if gfx.GetProgrami(handle, graphics.LINK_STATUS) == int32(graphics.FALSE) {
		infoLog := gfx.GetProgramInfoLog(handle)
		destroy(gfx, handle, vert, frag)
		return nil, &LinkError{Program: handle.V, Log: infoLog}
	}

	gfx.ValidateProgram(handle)
	if gfx.GetProgrami(handle, graphics.VALIDATE_STATUS) == int32(graphics.FALSE) {
		infoLog := gfx.GetProgramInfoLog(handle)
		destroy(gfx, handle, vert, frag)
		return nil, &LinkError{Program: handle.V, Log: infoLog}
	}

	p := &Program{gfx: gfx, handle: handle, vertex: vert, fragment: frag}
	runtime.SetFinalizer(p, (*Program).finalize)
	return p, nil
}

// destroy detaches and deletes both stages, then deletes the program
// object. Shared by Release and the link/validate failure paths.
func destroy(gfx graphics.API, handle graphics.Program, vert, frag Stage) {
	gfx.DetachShader(handle, vert.handle)
	gfx.DetachShader(handle, frag.handle)
	gfx.DeleteShader(vert.handle)
	gfx.DeleteShader(frag.handle)
	gfx.DeleteProgram(handle)
}

// Handle returns the native program name. Zero after Release.
func (p *Program) Handle() graphics.Program { return p.handle }

// VertexPath returns the resolved path the vertex stage was read from.
func (p *Program) VertexPath() string { return p.vertex.Path }

// FragmentPath returns the resolved path the fragment stage was read from.
func (p *Program) FragmentPath() string { return p.fragment.Path }

// Active reports whether the program is the one draws currently use.
func (p *Program) Active() bool { return p.active }

// Released reports whether the native program object has been deleted.
func (p *Program) Released() bool { return p.released }

// Activate makes the program current so subsequent draws use it.
func (p *Program) Activate() {
	if p.released {
		log.Printf("shader: ignoring Activate of released program")
		return
	}
	p.gfx.UseProgram(p.handle)
	p.active = true
}

// Deactivate makes no program current. It only issues the state change if
// the program is actually active, so it is free to call unconditionally.
func (p *Program) Deactivate() {
	if !p.active {
		return
	}
	p.gfx.UseProgram(graphics.NoProgram)
	p.active = false
}

// Release deactivates the program if it is current, then detaches and
// deletes both stages and deletes the program object. Calling Release
// again is a no-op.
func (p *Program) Release() {
	if p.released {
		return
	}
	p.Deactivate()
	destroy(p.gfx, p.handle, p.vertex, p.fragment)
	p.handle = graphics.Program{}
	p.vertex.handle = graphics.Shader{}
	p.fragment.handle = graphics.Shader{}
	p.released = true
	runtime.SetFinalizer(p, nil)
}

// finalize runs on the GC goroutine, where no GL call is legal. It only
// reports the leak; the context going away at exit reclaims the object.
func (p *Program) finalize() {
	if !p.released {
		log.Printf("shader: program %d was garbage collected without Release", p.handle.V)
	}
}
