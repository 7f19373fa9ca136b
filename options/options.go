package options

// Options carries the command-line configuration. Fields are pointers so
// they can be wired straight to flag declarations.
type Options struct {
	Width   *int
	Height  *int
	Title   *string
	Shader  *string // stage base name, resolved by the shader package
	Profile *bool   // write a CPU profile for the run
}
