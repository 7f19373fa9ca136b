package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/pkg/profile"

	gldriver "github.com/CalvinWilkinson/OpenGL-Triangle/gldriver"
	glfwcontext "github.com/CalvinWilkinson/OpenGL-Triangle/glfwcontext"
	options "github.com/CalvinWilkinson/OpenGL-Triangle/options"
	renderer "github.com/CalvinWilkinson/OpenGL-Triangle/renderer"
)

func runTriangle(opts *options.Options) {
	window, err := glfwcontext.New(opts)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer window.Shutdown()

	window.MakeCurrent()
	gfx, err := gldriver.New()
	if err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}

	session := renderer.NewSession(opts)
	if err := session.Load(window, gfx); err != nil {
		log.Fatalf("Failed to load render session: %v", err)
	}
	if err := session.Setup(); err != nil {
		log.Fatalf("Failed to set up render session: %v", err)
	}

	log.Println("Starting render loop...")
	if err := session.Run(); err != nil {
		log.Fatalf("Rendering failed: %v", err)
	}
}

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.Options{
		Width:   flag.Int("width", 800, "Window width in pixels"),
		Height:  flag.Int("height", 600, "Window height in pixels"),
		Title:   flag.String("title", "OpenGL Triangle", "Window title"),
		Shader:  flag.String("shader", "triangle", "Base name of the shader stage pair, resolved next to the executable"),
		Profile: flag.Bool("profile", false, "Write a CPU profile for the run"),
	}
	flag.Parse()

	if *opts.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	runTriangle(opts)
}
