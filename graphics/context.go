package graphics

// Context defines the interface to the window owning the OpenGL context.
// The render session depends on the windowing layer only through this:
// a frame swap, a close signal, and the drawable size.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
}
