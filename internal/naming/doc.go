// Package naming maps input texture paths to output paths (relative-path
// computation, strip-segments, extension replacement) and resolves in-run
// output path collisions.
package naming
