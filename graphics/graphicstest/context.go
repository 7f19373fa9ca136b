package graphicstest

import "github.com/CalvinWilkinson/OpenGL-Triangle/graphics"

// Context is a stub windowing context with a fixed framebuffer size and a
// frame budget: ShouldClose reports true once EndFrame has been called the
// budgeted number of times, so render loops terminate deterministically.
type Context struct {
	Width  int
	Height int

	// Budget is how many frames may complete before ShouldClose trips.
	Budget int

	// Frames counts EndFrame calls, CurrentCalls counts MakeCurrent calls,
	// and ShutdownCalls counts Shutdown calls.
	Frames        int
	CurrentCalls  int
	ShutdownCalls int
}

// NewContext returns a stub context of the given size that closes after
// budget frames.
func NewContext(width, height, budget int) *Context {
	return &Context{Width: width, Height: height, Budget: budget}
}

var _ graphics.Context = (*Context)(nil)

func (c *Context) MakeCurrent() { c.CurrentCalls++ }

func (c *Context) Shutdown() { c.ShutdownCalls++ }

func (c *Context) ShouldClose() bool { return c.Frames >= c.Budget }

func (c *Context) EndFrame() { c.Frames++ }

func (c *Context) GetFramebufferSize() (int, int) { return c.Width, c.Height }
