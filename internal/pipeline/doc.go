// Package pipeline orchestrates file discovery, bounded-concurrency batch
// conversion, animation assembly, and batch summary reporting.
package pipeline
