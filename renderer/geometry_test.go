package renderer

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/exp/f32"

	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics/graphicstest"
)

func TestNewGeometryUploadsTriangleOnce(t *testing.T) {
	rec := graphicstest.NewRecorder()
	g := NewGeometry(rec)

	assert.Equal(t, int32(3), g.Count())

	// Allocate, bind, upload, describe the attribute, unbind both.
	assert.Equal(t, []string{
		"CreateVertexArray()",
		"CreateBuffer()",
		"BindVertexArray(1)",
		"BindBuffer(ARRAY_BUFFER, 2)",
		"BufferData(ARRAY_BUFFER, 36 bytes, STATIC_DRAW)",
		"VertexAttribPointer(0, 3, FLOAT, false, 12, 0)",
		"EnableVertexAttribArray(0)",
		"BindBuffer(ARRAY_BUFFER, 0)",
		"BindVertexArray(0)",
	}, rec.Calls)

	require.Len(t, rec.Uploads, 1)
	assert.Equal(t, f32.Bytes(binary.LittleEndian,
		-0.5, 0.5, 0.0,
		-0.5, -0.5, 0.0,
		0.5, 0.5, 0.0,
	), rec.Uploads[0])

	assert.Empty(t, rec.Misuse)
}

func TestGeometryBindUnbind(t *testing.T) {
	rec := graphicstest.NewRecorder()
	g := NewGeometry(rec)

	g.Bind()
	assert.True(t, rec.BoundArray.Valid())

	g.Unbind()
	assert.False(t, rec.BoundArray.Valid())
	assert.Equal(t, "BindVertexArray(0)", rec.Calls[len(rec.Calls)-1])
}

func TestGeometryReleaseDeletesArrayThenBuffer(t *testing.T) {
	rec := graphicstest.NewRecorder()
	g := NewGeometry(rec)

	rec.Calls = nil
	g.Release()

	assert.True(t, g.Released())
	assert.Equal(t, []string{"DeleteVertexArray(1)", "DeleteBuffer(2)"}, rec.Calls)
	assert.Equal(t, 0, rec.LiveObjects())

	g.Release()
	assert.Equal(t, 1, rec.CallCount("DeleteVertexArray"))
	assert.Equal(t, 1, rec.CallCount("DeleteBuffer"))
}

func TestGeometryBindAfterReleaseIgnored(t *testing.T) {
	rec := graphicstest.NewRecorder()
	g := NewGeometry(rec)
	g.Release()

	rec.Calls = nil
	g.Bind()
	assert.Empty(t, rec.Calls)
}
