package renderer

import (
	"fmt"
	"log"

	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics"
	"github.com/CalvinWilkinson/OpenGL-Triangle/options"
	"github.com/CalvinWilkinson/OpenGL-Triangle/shader"
)

// State is a Session's position in its lifecycle. Sessions only move
// forward: Uninitialized, ContextReady, Running, then Closed.
type State int

const (
	StateUninitialized State = iota
	StateContextReady
	StateRunning
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateContextReady:
		return "context-ready"
	case StateRunning:
		return "running"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// clearColor is the fixed cornflower blue background.
var clearColor = [4]float32{100.0 / 255.0, 149.0 / 255.0, 237.0 / 255.0, 1.0}

// Session owns everything one rendered window needs: the shader program,
// the triangle geometry and the debug channel. All methods must run on the
// thread that owns the GL context.
type Session struct {
	opts     *options.Options
	ctx      graphics.Context
	gfx      graphics.API
	program  *shader.Program
	geometry *Geometry
	state    State

	// debugErr holds the first non-informational debug message, recorded
	// by the callback and escalated by RenderFrame. Synchronous debug
	// output delivers the callback on this thread, so no locking.
	debugErr error
}

// NewSession returns an idle session that renders with the options' shader
// once loaded and set up.
func NewSession(opts *options.Options) *Session {
	return &Session{opts: opts, state: StateUninitialized}
}

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// Load captures the window context and graphics backend, makes the context
// current on the calling thread and turns on the debug channel. Output is
// synchronous so messages arrive on this thread, during the call that
// raised them. The backend retains the callback while it is registered,
// which keeps the session reachable for the life of the context.
func (s *Session) Load(ctx graphics.Context, gfx graphics.API) error {
	if s.state != StateUninitialized {
		return fmt.Errorf("load called in state %s", s.state)
	}
	s.ctx = ctx
	s.gfx = gfx
	ctx.MakeCurrent()

	gfx.Enable(graphics.DEBUG_OUTPUT)
	gfx.Enable(graphics.DEBUG_OUTPUT_SYNCHRONOUS)
	gfx.DebugMessageCallback(s.onDebug)

	s.state = StateContextReady
	return nil
}

// Setup compiles and links the shader program, sets the clear color and
// uploads the triangle, moving the session to Running. A compile or link
// failure aborts the transition: the error propagates, nothing stays
// allocated and the session remains context-ready.
func (s *Session) Setup() error {
	if s.state != StateContextReady {
		return fmt.Errorf("setup called in state %s", s.state)
	}

	program, err := shader.Load(s.gfx, *s.opts.Shader, *s.opts.Shader)
	if err != nil {
		return err
	}
	log.Printf("shader program %d ready (%s, %s)",
		program.Handle().V, program.VertexPath(), program.FragmentPath())

	s.gfx.ClearColor(clearColor[0], clearColor[1], clearColor[2], clearColor[3])

	s.program = program
	s.geometry = NewGeometry(s.gfx)
	s.state = StateRunning
	return nil
}

// RenderFrame draws one frame: clear, activate the program, bind the
// triangle, one draw call for its three vertices, swap. The viewport
// follows the framebuffer so resizes keep the full window covered. A debug
// message recorded before or during the frame makes it return a
// graphics.DebugError; informational messages never do.
func (s *Session) RenderFrame() error {
	if s.state != StateRunning {
		return fmt.Errorf("render frame called in state %s", s.state)
	}
	if s.debugErr != nil {
		return s.debugErr
	}

	w, h := s.ctx.GetFramebufferSize()
	s.gfx.Viewport(0, 0, int32(w), int32(h))
	s.gfx.Clear(graphics.COLOR_BUFFER_BIT)

	s.program.Activate()
	s.geometry.Bind()
	s.gfx.DrawArrays(graphics.TRIANGLES, 0, s.geometry.Count())

	s.ctx.EndFrame()
	return s.debugErr
}

// Run renders frames until the window asks to close or a frame fails,
// then closes the session. The window itself stays up for the caller to
// shut down.
func (s *Session) Run() error {
	if s.state != StateRunning {
		return fmt.Errorf("run called in state %s", s.state)
	}
	defer s.Close()
	for !s.ctx.ShouldClose() {
		if err := s.RenderFrame(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the geometry and the shader program. It is safe in every
// state, including before Setup ever ran, and safe to call repeatedly.
func (s *Session) Close() {
	if s.state == StateClosed {
		return
	}
	if s.geometry != nil {
		s.geometry.Release()
		s.geometry = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	s.state = StateClosed
	log.Printf("render session closed")
}

// onDebug receives native debug messages on the context thread. It only
// records; escalation happens at the frame boundary so the GL call stack
// underneath the callback stays untouched.
func (s *Session) onDebug(m graphics.DebugMessage) {
	if m.Informational() {
		return
	}
	log.Printf("gl debug: %s", m)
	if s.debugErr == nil {
		s.debugErr = &graphics.DebugError{Message: m}
	}
}
