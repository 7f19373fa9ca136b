package shader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics"
	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics/graphicstest"
)

const (
	testVertSrc = `#version 430 core
layout(location = 0) in vec3 aPosition;
void main() { gl_Position = vec4(aPosition, 1.0); }
`
	testFragSrc = `#version 430 core
out vec4 FragColor;
void main() { FragColor = vec4(1.0, 0.5, 0.2, 1.0); }
`
)

// writeStages writes a vertex/fragment source pair into a temp directory
// and returns the extensionless absolute base name both resolve from.
func writeStages(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.vert"), []byte(testVertSrc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.frag"), []byte(testFragSrc), 0o644))
	return filepath.Join(dir, "triangle")
}

func TestLoadCompilesAndLinks(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)

	p, err := Load(rec, base, base)
	require.NoError(t, err)
	require.True(t, p.Handle().Valid())

	assert.Equal(t, base+".vert", p.VertexPath())
	assert.Equal(t, base+".frag", p.FragmentPath())

	// Source text reaches the driver untouched.
	require.Len(t, rec.Sources, 2)
	assert.Equal(t, testVertSrc, rec.Sources[0])
	assert.Equal(t, testFragSrc, rec.Sources[1])

	// Full create sequence. The stages stay attached after the link; they
	// are only deleted when the program is released.
	assert.Equal(t, []string{
		"CreateShader(VERTEX_SHADER)",
		"ShaderSource(1)",
		"CompileShader(1)",
		"CreateShader(FRAGMENT_SHADER)",
		"ShaderSource(2)",
		"CompileShader(2)",
		"CreateProgram()",
		"AttachShader(3, 1)",
		"AttachShader(3, 2)",
		"LinkProgram(3)",
		"ValidateProgram(3)",
	}, rec.Calls)

	assert.Equal(t, 2, rec.LiveShaders())
	assert.Equal(t, 1, rec.LivePrograms())
	assert.Equal(t, []uint32{1, 2}, rec.Attached(p.Handle()))
	assert.Empty(t, rec.Misuse)
}

func TestLoadMissingVertexSource(t *testing.T) {
	rec := graphicstest.NewRecorder()

	_, err := Load(rec, filepath.Join(t.TempDir(), "nope"), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "reading vertex stage")
	assert.Equal(t, 0, rec.LiveObjects())
}

func TestLoadMissingFragmentSourceDeletesVertexStage(t *testing.T) {
	rec := graphicstest.NewRecorder()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.vert"), []byte(testVertSrc), 0o644))

	_, err := Load(rec, filepath.Join(dir, "triangle"), filepath.Join(dir, "triangle"))
	require.Error(t, err)
	assert.ErrorContains(t, err, "reading fragment stage")

	// The already-compiled vertex stage must not leak.
	assert.Contains(t, rec.Calls, "DeleteShader(1)")
	assert.Equal(t, 0, rec.LiveObjects())
}

func TestLoadVertexCompileFailure(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)
	rec.CompileFailures[graphics.VERTEX_SHADER] = "0:1(1): error: syntax error, unexpected IDENTIFIER"

	_, err := Load(rec, base, base)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, VertexStage, ce.Stage)
	assert.Equal(t, "0:1(1): error: syntax error, unexpected IDENTIFIER", ce.Log)
	assert.Equal(t, 0, rec.LiveObjects())
}

func TestLoadFragmentCompileFailureDeletesSibling(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)
	rec.CompileFailures[graphics.FRAGMENT_SHADER] = "0:3(1): error: 'FragColor' undeclared"

	_, err := Load(rec, base, base)
	require.Error(t, err)

	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, FragmentStage, ce.Stage)

	// Both the failed fragment stage and the healthy vertex stage are gone.
	assert.Contains(t, rec.Calls, "DeleteShader(1)")
	assert.Contains(t, rec.Calls, "DeleteShader(2)")
	assert.Equal(t, 0, rec.LiveObjects())
}

func TestLoadLinkFailure(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)
	rec.LinkFailure = "error: linking with uncompiled/unspecialized shader"

	_, err := Load(rec, base, base)
	require.Error(t, err)

	var le *LinkError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, uint32(3), le.Program)
	assert.Equal(t, "error: linking with uncompiled/unspecialized shader", le.Log)

	// Stages are detached before deletion and the program object goes too.
	assert.Contains(t, rec.Calls, "DetachShader(3, 1)")
	assert.Contains(t, rec.Calls, "DetachShader(3, 2)")
	assert.Contains(t, rec.Calls, "DeleteProgram(3)")
	assert.Equal(t, 0, rec.LiveObjects())
}

func TestLoadValidateFailure(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)
	rec.ValidateFailure = "active samplers with a different type refer to the same texture image unit"

	_, err := Load(rec, base, base)
	require.Error(t, err)

	var le *LinkError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, rec.ValidateFailure, le.Log)
	assert.Equal(t, 0, rec.LiveObjects())
}

func TestActivateDeactivate(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)
	p, err := Load(rec, base, base)
	require.NoError(t, err)

	p.Activate()
	assert.True(t, p.Active())
	assert.Equal(t, p.Handle(), rec.CurrentProgram)

	p.Deactivate()
	assert.False(t, p.Active())
	assert.False(t, rec.CurrentProgram.Valid())

	// Deactivating an inactive program issues nothing.
	p.Deactivate()
	assert.Equal(t, 2, rec.CallCount("UseProgram"))
	assert.Empty(t, rec.Misuse)
}

func TestReleaseDeactivatesAndDeletes(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)
	p, err := Load(rec, base, base)
	require.NoError(t, err)

	p.Activate()
	p.Release()

	assert.True(t, p.Released())
	assert.False(t, p.Handle().Valid())
	assert.False(t, rec.CurrentProgram.Valid())
	assert.Equal(t, 0, rec.LiveObjects())

	// Deactivate first, then detach and delete the stages, then the
	// program object itself.
	assert.Equal(t, []string{
		"UseProgram(3)",
		"UseProgram(0)",
		"DetachShader(3, 1)",
		"DetachShader(3, 2)",
		"DeleteShader(1)",
		"DeleteShader(2)",
		"DeleteProgram(3)",
	}, rec.Calls[11:])
}

func TestReleaseIdempotent(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)
	p, err := Load(rec, base, base)
	require.NoError(t, err)

	p.Release()
	p.Release()
	assert.Equal(t, 1, rec.CallCount("DeleteProgram"))
	assert.Equal(t, 2, rec.CallCount("DeleteShader"))
	assert.Equal(t, 2, rec.CallCount("DetachShader"))

	// A released program cannot be made current again.
	p.Activate()
	assert.Equal(t, 0, rec.CallCount("UseProgram"))
}

func TestReleaseWithoutActivate(t *testing.T) {
	rec := graphicstest.NewRecorder()
	base := writeStages(t)
	p, err := Load(rec, base, base)
	require.NoError(t, err)

	p.Release()
	assert.Equal(t, 0, rec.CallCount("UseProgram"))
	assert.Equal(t, 0, rec.LiveObjects())
}

func TestSourcePath(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)
	exeDir := filepath.Dir(exe)

	got, err := SourcePath("triangle", VertexStage)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exeDir, "triangle.vert"), got)

	got, err = SourcePath("triangle", FragmentStage)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exeDir, "triangle.frag"), got)

	// An explicit extension is kept as given.
	got, err = SourcePath("custom.glsl", FragmentStage)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(exeDir, "custom.glsl"), got)

	// Absolute names bypass executable-relative resolution.
	abs := filepath.Join(t.TempDir(), "effect.frag")
	got, err = SourcePath(abs, FragmentStage)
	require.NoError(t, err)
	assert.Equal(t, abs, got)
}
