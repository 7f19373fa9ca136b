// Package graphics defines the backend-neutral surface the renderer and
// shader packages are written against: a typed-handle view of the GL objects
// they own, the subset of GL calls they issue, and the window context they
// drive. The real implementations live in gldriver and glfwcontext; the
// recording test backend lives in graphicstest.
package graphics

// Enum is a GL enumerant. The constants below carry the standard GL values so
// a backend can pass them through unchanged.
type Enum uint32

const (
	FALSE Enum = 0
	TRUE  Enum = 1

	VERTEX_SHADER   Enum = 0x8B31
	FRAGMENT_SHADER Enum = 0x8B30

	COMPILE_STATUS  Enum = 0x8B81
	LINK_STATUS     Enum = 0x8B82
	VALIDATE_STATUS Enum = 0x8B83

	ARRAY_BUFFER Enum = 0x8892
	STATIC_DRAW  Enum = 0x88E4

	FLOAT     Enum = 0x1406
	TRIANGLES Enum = 0x0004

	COLOR_BUFFER_BIT Enum = 0x4000

	DEBUG_OUTPUT             Enum = 0x92E0
	DEBUG_OUTPUT_SYNCHRONOUS Enum = 0x8242
)

// Typed handles for the native object names the core owns. A zero value is
// the GL "no object" name, so Valid doubles as the guard for teardown paths.
type (
	Shader      struct{ V uint32 }
	Program     struct{ V uint32 }
	Buffer      struct{ V uint32 }
	VertexArray struct{ V uint32 }
)

func (s Shader) Valid() bool      { return s.V != 0 }
func (p Program) Valid() bool     { return p.V != 0 }
func (b Buffer) Valid() bool      { return b.V != 0 }
func (a VertexArray) Valid() bool { return a.V != 0 }

// NoProgram is the zero program; binding it deactivates the current one.
// NoBuffer and NoVertexArray are the matching zero names for unbinding.
var (
	NoProgram     = Program{}
	NoBuffer      = Buffer{}
	NoVertexArray = VertexArray{}
)

// API is the set of GL calls the shader manager and render session issue.
// Method names and argument order follow go-gl so the real driver is a thin
// pass-through; a test backend can implement it without a GPU.
//
// All methods must be called from the thread that owns the context.
type API interface {
	// Shader stages.
	CreateShader(xtype Enum) Shader
	ShaderSource(s Shader, src string)
	CompileShader(s Shader)
	GetShaderi(s Shader, pname Enum) int32
	GetShaderInfoLog(s Shader) string
	DeleteShader(s Shader)

	// Programs.
	CreateProgram() Program
	AttachShader(p Program, s Shader)
	DetachShader(p Program, s Shader)
	LinkProgram(p Program)
	ValidateProgram(p Program)
	GetProgrami(p Program, pname Enum) int32
	GetProgramInfoLog(p Program) string
	UseProgram(p Program)
	DeleteProgram(p Program)

	// Buffers and vertex arrays.
	CreateBuffer() Buffer
	BindBuffer(target Enum, b Buffer)
	BufferData(target Enum, src []byte, usage Enum)
	DeleteBuffer(b Buffer)
	CreateVertexArray() VertexArray
	BindVertexArray(a VertexArray)
	DeleteVertexArray(a VertexArray)
	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset int)
	EnableVertexAttribArray(index uint32)

	// Per-frame state.
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Viewport(x, y, width, height int32)
	DrawArrays(mode Enum, first, count int32)

	// Debug channel.
	Enable(cap Enum)
	DebugMessageCallback(fn func(DebugMessage))
}
