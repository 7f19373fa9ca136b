package renderer

import (
	"encoding/binary"
	"log"
	"runtime"

	"golang.org/x/mobile/exp/f32"

	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics"
)

// triangleVertices is the fixed host-side geometry: three positions in
// normalized device coordinates, three floats each.
var triangleVertices = []float32{
	-0.5, 0.5, 0.0,
	-0.5, -0.5, 0.0,
	0.5, 0.5, 0.0,
}

// Geometry owns the vertex buffer holding the triangle and the vertex
// array describing its layout. The buffer is filled once at creation and
// never written again.
type Geometry struct {
	gfx      graphics.API
	vao      graphics.VertexArray
	vbo      graphics.Buffer
	count    int32
	released bool
}

// NewGeometry allocates the vertex array and buffer, uploads the triangle
// with static usage and records the single attribute: location 0, three
// floats per vertex, tightly packed. Both bindings are cleared before it
// returns.
func NewGeometry(gfx graphics.API) *Geometry {
	g := &Geometry{gfx: gfx, count: int32(len(triangleVertices) / 3)}
	g.vao = gfx.CreateVertexArray()
	g.vbo = gfx.CreateBuffer()

	gfx.BindVertexArray(g.vao)
	gfx.BindBuffer(graphics.ARRAY_BUFFER, g.vbo)
	gfx.BufferData(graphics.ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, triangleVertices...), graphics.STATIC_DRAW)
	gfx.VertexAttribPointer(0, 3, graphics.FLOAT, false, 3*4, 0)
	gfx.EnableVertexAttribArray(0)
	gfx.BindBuffer(graphics.ARRAY_BUFFER, graphics.NoBuffer)
	gfx.BindVertexArray(graphics.NoVertexArray)

	runtime.SetFinalizer(g, (*Geometry).finalize)
	return g
}

// Bind makes the triangle's vertex array current for drawing.
func (g *Geometry) Bind() {
	if g.released {
		log.Printf("renderer: ignoring Bind of released geometry")
		return
	}
	g.gfx.BindVertexArray(g.vao)
}

// Unbind clears the vertex array binding.
func (g *Geometry) Unbind() {
	g.gfx.BindVertexArray(graphics.NoVertexArray)
}

// Count returns the number of vertices to draw.
func (g *Geometry) Count() int32 { return g.count }

// Released reports whether the native objects have been deleted.
func (g *Geometry) Released() bool { return g.released }

// Release deletes the vertex array and then the buffer. Calling Release
// again is a no-op.
func (g *Geometry) Release() {
	if g.released {
		return
	}
	g.gfx.DeleteVertexArray(g.vao)
	g.gfx.DeleteBuffer(g.vbo)
	g.vao = graphics.NoVertexArray
	g.vbo = graphics.NoBuffer
	g.released = true
	runtime.SetFinalizer(g, nil)
}

// finalize runs on the GC goroutine, where no GL call is legal, so it only
// reports the missed Release.
func (g *Geometry) finalize() {
	if !g.released {
		log.Printf("renderer: geometry was garbage collected without Release")
	}
}
