// Package gldriver implements the graphics API on desktop OpenGL through
// the go-gl 4.3 core bindings. Everything here is a thin pass-through; the
// only state is the registered debug callback.
package gldriver

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"unsafe"

	gl "github.com/go-gl/gl/v4.3-core/gl"

	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics"
)

var glInitOnce sync.Once

// Driver issues calls straight to the native bindings. All methods must
// run on the thread that owns the current context.
type Driver struct {
	// debugProc stays referenced here while registered so the callback
	// cannot be collected while the native layer still points at it.
	debugProc func(graphics.DebugMessage)
}

var _ graphics.API = (*Driver)(nil)

// New initializes the OpenGL bindings against the context current on the
// calling thread and returns the driver.
func New() (*Driver, error) {
	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	log.Printf("OpenGL version '%s'", version)
	return &Driver{}, nil
}

func (d *Driver) CreateShader(xtype graphics.Enum) graphics.Shader {
	return graphics.Shader{V: gl.CreateShader(uint32(xtype))}
}

func (d *Driver) ShaderSource(s graphics.Shader, src string) {
	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(s.V, 1, csources, nil)
	free()
}

func (d *Driver) CompileShader(s graphics.Shader) {
	gl.CompileShader(s.V)
}

func (d *Driver) GetShaderi(s graphics.Shader, pname graphics.Enum) int32 {
	var v int32
	gl.GetShaderiv(s.V, uint32(pname), &v)
	return v
}

func (d *Driver) GetShaderInfoLog(s graphics.Shader) string {
	var logLength int32
	gl.GetShaderiv(s.V, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetShaderInfoLog(s.V, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Driver) DeleteShader(s graphics.Shader) {
	gl.DeleteShader(s.V)
}

func (d *Driver) CreateProgram() graphics.Program {
	return graphics.Program{V: gl.CreateProgram()}
}

func (d *Driver) AttachShader(p graphics.Program, s graphics.Shader) {
	gl.AttachShader(p.V, s.V)
}

func (d *Driver) DetachShader(p graphics.Program, s graphics.Shader) {
	gl.DetachShader(p.V, s.V)
}

func (d *Driver) LinkProgram(p graphics.Program) {
	gl.LinkProgram(p.V)
}

func (d *Driver) ValidateProgram(p graphics.Program) {
	gl.ValidateProgram(p.V)
}

func (d *Driver) GetProgrami(p graphics.Program, pname graphics.Enum) int32 {
	var v int32
	gl.GetProgramiv(p.V, uint32(pname), &v)
	return v
}

func (d *Driver) GetProgramInfoLog(p graphics.Program) string {
	var logLength int32
	gl.GetProgramiv(p.V, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return ""
	}
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(p.V, logLength, nil, gl.Str(logText))
	return strings.TrimRight(logText, "\x00")
}

func (d *Driver) UseProgram(p graphics.Program) {
	gl.UseProgram(p.V)
}

func (d *Driver) DeleteProgram(p graphics.Program) {
	gl.DeleteProgram(p.V)
}

func (d *Driver) CreateBuffer() graphics.Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return graphics.Buffer{V: b}
}

func (d *Driver) BindBuffer(target graphics.Enum, b graphics.Buffer) {
	gl.BindBuffer(uint32(target), b.V)
}

func (d *Driver) BufferData(target graphics.Enum, src []byte, usage graphics.Enum) {
	gl.BufferData(uint32(target), len(src), gl.Ptr(src), uint32(usage))
}

func (d *Driver) DeleteBuffer(b graphics.Buffer) {
	gl.DeleteBuffers(1, &b.V)
}

func (d *Driver) CreateVertexArray() graphics.VertexArray {
	var a uint32
	gl.GenVertexArrays(1, &a)
	return graphics.VertexArray{V: a}
}

func (d *Driver) BindVertexArray(a graphics.VertexArray) {
	gl.BindVertexArray(a.V)
}

func (d *Driver) DeleteVertexArray(a graphics.VertexArray) {
	gl.DeleteVertexArrays(1, &a.V)
}

func (d *Driver) VertexAttribPointer(index uint32, size int32, xtype graphics.Enum, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, uint32(xtype), normalized, stride, gl.PtrOffset(offset))
}

func (d *Driver) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (d *Driver) ClearColor(red, green, blue, alpha float32) {
	gl.ClearColor(red, green, blue, alpha)
}

func (d *Driver) Clear(mask graphics.Enum) {
	gl.Clear(uint32(mask))
}

func (d *Driver) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Driver) DrawArrays(mode graphics.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (d *Driver) Enable(cap graphics.Enum) {
	gl.Enable(uint32(cap))
}

func (d *Driver) DebugMessageCallback(fn func(graphics.DebugMessage)) {
	d.debugProc = fn
	gl.DebugMessageCallback(func(source, gltype, id, severity uint32, length int32, message string, userParam unsafe.Pointer) {
		fn(graphics.DebugMessage{
			Source:   graphics.Enum(source),
			Type:     graphics.Enum(gltype),
			Severity: graphics.Enum(severity),
			ID:       id,
			Message:  message,
		})
	}, nil)
}
