package units

import (
	"fmt"
	"sync"
)

// Unit describes a physical unit as a scale factor onto a base unit.
type Unit struct {
	// Symbol is the unit name as written by users ("Msun", "kpc").
	Symbol string `json:"symbol"`
	// Base is the symbol of the base unit this unit reduces to.
	Base string `json:"base"`
	// Scale converts a value in Symbol to a value in Base.
	Scale float64 `json:"scale"`
}

// IsBase reports whether the unit is its own base representation.
func (u Unit) IsBase() bool {
	return u.Symbol == u.Base
}

var (
	mu    sync.RWMutex
	table = map[string]Unit{}
)

// Register adds or replaces a unit definition. Register base units with
// Base == Symbol and Scale 1. Populate the table once at startup.
func Register(symbol, base string, scale float64) {
	mu.Lock()
	defer mu.Unlock()
	table[symbol] = Unit{Symbol: symbol, Base: base, Scale: scale}
}

// Lookup returns the unit definition for symbol.
func Lookup(symbol string) (Unit, bool) {
	mu.RLock()
	defer mu.RUnlock()
	u, ok := table[symbol]
	return u, ok
}

// Quantity is a value carrying unit metadata.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// New creates a quantity in the given unit.
func New(value float64, unit string) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// String renders the quantity with its unit symbol.
func (q Quantity) String() string {
	if q.Unit == "" {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit)
}

// ToBase converts the quantity to its base-unit representation.
// Unknown or dimensionless units pass through unchanged, and converting an
// already-base quantity is a no-op, so the operation is idempotent.
func (q Quantity) ToBase() Quantity {
	u, ok := Lookup(q.Unit)
	if !ok || u.IsBase() {
		return q
	}
	return Quantity{Value: q.Value * u.Scale, Unit: u.Base}
}

// InBase reports whether the quantity already carries a base unit.
// Unknown units count as base: there is nothing to convert them to.
func (q Quantity) InBase() bool {
	u, ok := Lookup(q.Unit)
	return !ok || u.IsBase()
}

// Normalize converts v to base units if it carries unit metadata.
// Plain values pass through untouched.
func Normalize(v any) any {
	if q, ok := v.(Quantity); ok {
		return q.ToBase()
	}
	return v
}

// Default cgs-style definitions used by the stock quantity registry.
// Callers can extend or replace entries with Register.
func init() {
	// base units
	Register("g", "g", 1)
	Register("cm", "cm", 1)
	Register("s", "s", 1)
	Register("cm/s", "cm/s", 1)

	// mass
	Register("Msun", "g", 1.98841e33)

	// length
	Register("km", "cm", 1e5)
	Register("kpc", "cm", 3.0856775814913673e21)
	Register("Mpc", "cm", 3.0856775814913673e24)

	// time
	Register("yr", "s", 3.15576e7)
	Register("Gyr", "s", 3.15576e16)

	// velocity
	Register("km/s", "cm/s", 1e5)
}
