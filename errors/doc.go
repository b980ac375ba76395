// Package errors provides unified error handling for halokit.
// It implements structured error types with machine-readable codes and
// enough context (action kind, name, object index) to locate a failing
// pipeline action without reading stack traces.
package errors
