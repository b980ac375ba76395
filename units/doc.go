// Package units provides unit-tagged quantity values and base-unit
// normalization for catalog storage.
//
// The unit system is deliberately small: a unit is a symbol plus a scale
// factor onto a base (cgs-style) symbol. Quantities surviving a pipeline
// run are normalized to base units exactly once before they are appended
// to the catalog, so converting an already-base value is a no-op.
package units
