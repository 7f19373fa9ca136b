package shader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/CalvinWilkinson/OpenGL-Triangle/graphics"
)

// SourcePath resolves the file a named stage is read from. A name without
// an extension gets the stage's conventional one appended, so "triangle"
// resolves to triangle.vert or triangle.frag depending on the stage.
// Absolute names are used as given; relative names resolve against the
// directory the running executable lives in, which is where the build
// places the bundled shader files.
func SourcePath(name string, kind StageKind) (string, error) {
	if filepath.Ext(name) == "" {
		name += kind.Ext()
	}
	if filepath.IsAbs(name) {
		return name, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), name), nil
}

func loadStage(gfx graphics.API, kind StageKind, name string) (Stage, error) {
	path, err := SourcePath(name, kind)
	if err != nil {
		return Stage{}, err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Stage{}, fmt.Errorf("reading %s stage: %w", kind, err)
	}
	return compileStage(gfx, kind, path, string(src))
}
