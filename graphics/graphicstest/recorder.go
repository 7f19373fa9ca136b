// Package graphicstest provides a recording implementation of the graphics
// interfaces for tests that need to verify GL call sequences and object
// lifetimes without a real context.
package graphicstest

import (
	"fmt"

	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics"
)

// Draw captures one DrawArrays call together with the state bound when it
// was issued.
type Draw struct {
	Mode    graphics.Enum
	First   int32
	Count   int32
	Program graphics.Program
	Array   graphics.VertexArray
}

type shaderObj struct {
	xtype    graphics.Enum
	source   string
	compiled bool
	log      string
}

type programObj struct {
	attached  []uint32
	linked    bool
	validated bool
	log       string
}

// Recorder implements graphics.API against in-memory state. Every mutating
// call is appended to Calls with its arguments formatted; queries are served
// from state without being traced. Object names come from one shared counter
// so a handle never repeats across classes within a test.
type Recorder struct {
	// Calls is the ordered trace of mutating API calls.
	Calls []string

	// Misuse collects calls that a real driver would reject, such as
	// uploading buffer data with no buffer bound.
	Misuse []string

	// CompileFailures maps a stage type (VERTEX_SHADER, FRAGMENT_SHADER)
	// to a compiler log; matching stages fail compilation with that log.
	CompileFailures map[graphics.Enum]string

	// LinkFailure, when non-empty, makes every link report failure with
	// this info log. ValidateFailure does the same for validation.
	LinkFailure     string
	ValidateFailure string

	// Sources holds each ShaderSource payload in call order, surviving
	// deletion of the stage it was attached to.
	Sources []string

	// Uploads holds each BufferData payload in call order.
	Uploads [][]byte

	// Draws holds each DrawArrays call with its bound state.
	Draws []Draw

	// Clears holds each ClearColor in call order.
	Clears [][4]float32

	// CurrentProgram and BoundArray mirror the mock context's bindings.
	CurrentProgram graphics.Program
	BoundArray     graphics.VertexArray

	nextName    uint32
	shaders     map[uint32]*shaderObj
	programs    map[uint32]*programObj
	buffers     map[uint32]bool
	arrays      map[uint32]bool
	boundBuffer graphics.Buffer
	enabled     map[graphics.Enum]bool
	debugProc   func(graphics.DebugMessage)
}

// NewRecorder returns an empty recorder with no injected failures.
func NewRecorder() *Recorder {
	return &Recorder{
		CompileFailures: make(map[graphics.Enum]string),
		shaders:         make(map[uint32]*shaderObj),
		programs:        make(map[uint32]*programObj),
		buffers:         make(map[uint32]bool),
		arrays:          make(map[uint32]bool),
		enabled:         make(map[graphics.Enum]bool),
	}
}

var _ graphics.API = (*Recorder)(nil)

func (r *Recorder) record(format string, args ...any) {
	r.Calls = append(r.Calls, fmt.Sprintf(format, args...))
}

func (r *Recorder) misuse(format string, args ...any) {
	r.Misuse = append(r.Misuse, fmt.Sprintf(format, args...))
}

func (r *Recorder) name() uint32 {
	r.nextName++
	return r.nextName
}

// LiveObjects returns the number of native objects allocated and not yet
// deleted, across all classes. Zero after teardown means no leaks.
func (r *Recorder) LiveObjects() int {
	return len(r.shaders) + len(r.programs) + len(r.buffers) + len(r.arrays)
}

func (r *Recorder) LiveShaders() int      { return len(r.shaders) }
func (r *Recorder) LivePrograms() int     { return len(r.programs) }
func (r *Recorder) LiveBuffers() int      { return len(r.buffers) }
func (r *Recorder) LiveVertexArrays() int { return len(r.arrays) }

// CallCount returns how many traced calls invoke the named entry point.
func (r *Recorder) CallCount(name string) int {
	n := 0
	for _, c := range r.Calls {
		if len(c) > len(name) && c[:len(name)+1] == name+"(" {
			n++
		}
	}
	return n
}

// ShaderSourceText returns the source last attached to the stage, or "" if
// the stage does not exist.
func (r *Recorder) ShaderSourceText(s graphics.Shader) string {
	if obj, ok := r.shaders[s.V]; ok {
		return obj.source
	}
	return ""
}

// Attached returns the stage names currently attached to the program.
func (r *Recorder) Attached(p graphics.Program) []uint32 {
	if obj, ok := r.programs[p.V]; ok {
		return append([]uint32(nil), obj.attached...)
	}
	return nil
}

// DebugRegistered reports whether a debug callback has been installed.
func (r *Recorder) DebugRegistered() bool { return r.debugProc != nil }

// Enabled reports whether Enable was called for the capability.
func (r *Recorder) Enabled(cap graphics.Enum) bool { return r.enabled[cap] }

// EmitDebug delivers a message to the registered debug callback, simulating
// the native layer reporting an error. It is a no-op when no callback is
// registered.
func (r *Recorder) EmitDebug(m graphics.DebugMessage) {
	if r.debugProc != nil {
		r.debugProc(m)
	}
}

// ---- graphics.API: shader stages ----

func (r *Recorder) CreateShader(xtype graphics.Enum) graphics.Shader {
	n := r.name()
	r.shaders[n] = &shaderObj{xtype: xtype}
	r.record("CreateShader(%s)", enumName(xtype))
	return graphics.Shader{V: n}
}

func (r *Recorder) ShaderSource(s graphics.Shader, src string) {
	r.record("ShaderSource(%d)", s.V)
	r.Sources = append(r.Sources, src)
	if obj, ok := r.shaders[s.V]; ok {
		obj.source = src
	} else {
		r.misuse("ShaderSource on unknown shader %d", s.V)
	}
}

func (r *Recorder) CompileShader(s graphics.Shader) {
	r.record("CompileShader(%d)", s.V)
	obj, ok := r.shaders[s.V]
	if !ok {
		r.misuse("CompileShader on unknown shader %d", s.V)
		return
	}
	if log, fail := r.CompileFailures[obj.xtype]; fail {
		obj.compiled = false
		obj.log = log
		return
	}
	obj.compiled = true
	obj.log = ""
}

func (r *Recorder) GetShaderi(s graphics.Shader, pname graphics.Enum) int32 {
	obj, ok := r.shaders[s.V]
	if !ok {
		return 0
	}
	if pname == graphics.COMPILE_STATUS {
		if obj.compiled {
			return int32(graphics.TRUE)
		}
		return int32(graphics.FALSE)
	}
	return 0
}

func (r *Recorder) GetShaderInfoLog(s graphics.Shader) string {
	if obj, ok := r.shaders[s.V]; ok {
		return obj.log
	}
	return ""
}

func (r *Recorder) DeleteShader(s graphics.Shader) {
	r.record("DeleteShader(%d)", s.V)
	delete(r.shaders, s.V)
}

// ---- graphics.API: programs ----

func (r *Recorder) CreateProgram() graphics.Program {
	n := r.name()
	r.programs[n] = &programObj{}
	r.record("CreateProgram()")
	return graphics.Program{V: n}
}

func (r *Recorder) AttachShader(p graphics.Program, s graphics.Shader) {
	r.record("AttachShader(%d, %d)", p.V, s.V)
	obj, ok := r.programs[p.V]
	if !ok {
		r.misuse("AttachShader on unknown program %d", p.V)
		return
	}
	if _, ok := r.shaders[s.V]; !ok {
		r.misuse("AttachShader of unknown shader %d", s.V)
		return
	}
	obj.attached = append(obj.attached, s.V)
}

func (r *Recorder) DetachShader(p graphics.Program, s graphics.Shader) {
	r.record("DetachShader(%d, %d)", p.V, s.V)
	obj, ok := r.programs[p.V]
	if !ok {
		r.misuse("DetachShader on unknown program %d", p.V)
		return
	}
	for i, n := range obj.attached {
		if n == s.V {
			obj.attached = append(obj.attached[:i], obj.attached[i+1:]...)
			return
		}
	}
	r.misuse("DetachShader of shader %d not attached to program %d", s.V, p.V)
}

func (r *Recorder) LinkProgram(p graphics.Program) {
	r.record("LinkProgram(%d)", p.V)
	obj, ok := r.programs[p.V]
	if !ok {
		r.misuse("LinkProgram on unknown program %d", p.V)
		return
	}
	if r.LinkFailure != "" {
		obj.linked = false
		obj.log = r.LinkFailure
		return
	}
	obj.linked = true
	obj.log = ""
}

func (r *Recorder) ValidateProgram(p graphics.Program) {
	r.record("ValidateProgram(%d)", p.V)
	obj, ok := r.programs[p.V]
	if !ok {
		r.misuse("ValidateProgram on unknown program %d", p.V)
		return
	}
	if r.ValidateFailure != "" {
		obj.validated = false
		obj.log = r.ValidateFailure
		return
	}
	obj.validated = true
}

func (r *Recorder) GetProgrami(p graphics.Program, pname graphics.Enum) int32 {
	obj, ok := r.programs[p.V]
	if !ok {
		return 0
	}
	status := func(b bool) int32 {
		if b {
			return int32(graphics.TRUE)
		}
		return int32(graphics.FALSE)
	}
	switch pname {
	case graphics.LINK_STATUS:
		return status(obj.linked)
	case graphics.VALIDATE_STATUS:
		return status(obj.validated)
	}
	return 0
}

func (r *Recorder) GetProgramInfoLog(p graphics.Program) string {
	if obj, ok := r.programs[p.V]; ok {
		return obj.log
	}
	return ""
}

func (r *Recorder) UseProgram(p graphics.Program) {
	r.record("UseProgram(%d)", p.V)
	if p.Valid() {
		if obj, ok := r.programs[p.V]; !ok || !obj.linked {
			r.misuse("UseProgram of unlinked or unknown program %d", p.V)
		}
	}
	r.CurrentProgram = p
}

func (r *Recorder) DeleteProgram(p graphics.Program) {
	r.record("DeleteProgram(%d)", p.V)
	delete(r.programs, p.V)
}

// ---- graphics.API: buffers and vertex arrays ----

func (r *Recorder) CreateBuffer() graphics.Buffer {
	n := r.name()
	r.buffers[n] = true
	r.record("CreateBuffer()")
	return graphics.Buffer{V: n}
}

func (r *Recorder) BindBuffer(target graphics.Enum, b graphics.Buffer) {
	r.record("BindBuffer(%s, %d)", enumName(target), b.V)
	if b.Valid() {
		if !r.buffers[b.V] {
			r.misuse("BindBuffer of unknown buffer %d", b.V)
		}
	}
	r.boundBuffer = b
}

func (r *Recorder) BufferData(target graphics.Enum, src []byte, usage graphics.Enum) {
	r.record("BufferData(%s, %d bytes, %s)", enumName(target), len(src), enumName(usage))
	if !r.boundBuffer.Valid() {
		r.misuse("BufferData with no buffer bound to %s", enumName(target))
		return
	}
	r.Uploads = append(r.Uploads, append([]byte(nil), src...))
}

func (r *Recorder) DeleteBuffer(b graphics.Buffer) {
	r.record("DeleteBuffer(%d)", b.V)
	delete(r.buffers, b.V)
	if r.boundBuffer == b {
		r.boundBuffer = graphics.Buffer{}
	}
}

func (r *Recorder) CreateVertexArray() graphics.VertexArray {
	n := r.name()
	r.arrays[n] = true
	r.record("CreateVertexArray()")
	return graphics.VertexArray{V: n}
}

func (r *Recorder) BindVertexArray(a graphics.VertexArray) {
	r.record("BindVertexArray(%d)", a.V)
	if a.Valid() && !r.arrays[a.V] {
		r.misuse("BindVertexArray of unknown array %d", a.V)
	}
	r.BoundArray = a
}

func (r *Recorder) DeleteVertexArray(a graphics.VertexArray) {
	r.record("DeleteVertexArray(%d)", a.V)
	delete(r.arrays, a.V)
	if r.BoundArray == a {
		r.BoundArray = graphics.VertexArray{}
	}
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, xtype graphics.Enum, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer(%d, %d, %s, %t, %d, %d)", index, size, enumName(xtype), normalized, stride, offset)
	if !r.boundBuffer.Valid() {
		r.misuse("VertexAttribPointer with no buffer bound")
	}
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.record("EnableVertexAttribArray(%d)", index)
	if !r.BoundArray.Valid() {
		r.misuse("EnableVertexAttribArray with no vertex array bound")
	}
}

// ---- graphics.API: per-frame state ----

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor(%g, %g, %g, %g)", red, green, blue, alpha)
	r.Clears = append(r.Clears, [4]float32{red, green, blue, alpha})
}

func (r *Recorder) Clear(mask graphics.Enum) {
	r.record("Clear(%s)", enumName(mask))
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
}

func (r *Recorder) DrawArrays(mode graphics.Enum, first, count int32) {
	r.record("DrawArrays(%s, %d, %d)", enumName(mode), first, count)
	if !r.CurrentProgram.Valid() {
		r.misuse("DrawArrays with no program active")
	}
	if !r.BoundArray.Valid() {
		r.misuse("DrawArrays with no vertex array bound")
	}
	r.Draws = append(r.Draws, Draw{
		Mode:    mode,
		First:   first,
		Count:   count,
		Program: r.CurrentProgram,
		Array:   r.BoundArray,
	})
}

// ---- graphics.API: debug channel ----

func (r *Recorder) Enable(cap graphics.Enum) {
	r.record("Enable(%s)", enumName(cap))
	r.enabled[cap] = true
}

func (r *Recorder) DebugMessageCallback(fn func(graphics.DebugMessage)) {
	r.record("DebugMessageCallback()")
	r.debugProc = fn
}

func enumName(e graphics.Enum) string {
	switch e {
	case graphics.VERTEX_SHADER:
		return "VERTEX_SHADER"
	case graphics.FRAGMENT_SHADER:
		return "FRAGMENT_SHADER"
	case graphics.ARRAY_BUFFER:
		return "ARRAY_BUFFER"
	case graphics.STATIC_DRAW:
		return "STATIC_DRAW"
	case graphics.FLOAT:
		return "FLOAT"
	case graphics.TRIANGLES:
		return "TRIANGLES"
	case graphics.COLOR_BUFFER_BIT:
		return "COLOR_BUFFER_BIT"
	case graphics.DEBUG_OUTPUT:
		return "DEBUG_OUTPUT"
	case graphics.DEBUG_OUTPUT_SYNCHRONOUS:
		return "DEBUG_OUTPUT_SYNCHRONOUS"
	}
	return fmt.Sprintf("0x%04X", uint32(e))
}
