package shader

import (
	"fmt"
	"strings"
)

// CompileError reports a stage that failed to compile. Log is the raw
// compiler output exactly as the driver produced it.
type CompileError struct {
	Stage StageKind
	Path  string
	Log   string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s stage %s: %s", e.Stage, e.Path, strings.TrimSpace(e.Log))
}

// LinkError reports a program that failed to link or to validate. Log is
// the raw info log from the driver.
type LinkError struct {
	Program uint32
	Log     string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("linking program %d: %s", e.Program, strings.TrimSpace(e.Log))
}
