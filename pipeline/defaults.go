package pipeline

import (
	"fmt"

	"github.com/kbukum/halokit/units"
)

var defaultRegistries = NewRegistries()

// Default returns the process-wide registry set. It is populated with the
// stock generic actions at init and by user packages at startup; treat it
// as read-only afterwards.
func Default() *Registries {
	return defaultRegistries
}

// RegisterCallback adds a callback factory to the default registries.
func RegisterCallback(name string, factory func(args ...any) (CallbackFunc, error)) {
	defaultRegistries.Callbacks.Register(name, factory)
}

// RegisterFilter adds a filter factory to the default registries.
func RegisterFilter(name string, factory func(args ...any) (FilterFunc, error)) {
	defaultRegistries.Filters.Register(name, factory)
}

// RegisterQuantity adds a quantity factory to the default registries.
func RegisterQuantity(name string, factory func(args ...any) (QuantityFunc, error)) {
	defaultRegistries.Quantities.Register(name, factory)
}

// RegisterRecipe adds a recipe factory to the default registries.
func RegisterRecipe(name string, factory func(args ...any) (RecipeFunc, error)) {
	defaultRegistries.Recipes.Register(name, factory)
}

// Stock generic actions. Domain-specific science lives in user packages;
// these cover the orchestration-level needs shared by every analysis.
func init() {
	RegisterFilter("quantity_value", quantityValueFactory)
	RegisterCallback("store_value", storeValueFactory)
	RegisterQuantity("object_index", objectIndexFactory)
}

// quantityValueFactory builds a filter comparing a stored quantity against
// a threshold: args are (key, op, value[, unit]) with op one of
// > >= < <= == !=. Comparison happens in base units.
func quantityValueFactory(args ...any) (FilterFunc, error) {
	if len(args) < 3 || len(args) > 4 {
		return nil, fmt.Errorf("quantity_value wants (key, op, value[, unit]), got %d args", len(args))
	}
	key, err := argString(args, 0, "key")
	if err != nil {
		return nil, err
	}
	op, err := argString(args, 1, "op")
	if err != nil {
		return nil, err
	}
	threshold, err := argFloat(args, 2, "value")
	if err != nil {
		return nil, err
	}
	if len(args) == 4 {
		unit, err := argString(args, 3, "unit")
		if err != nil {
			return nil, err
		}
		threshold = units.New(threshold, unit).ToBase().Value
	}
	if !validOp(op) {
		return nil, fmt.Errorf("quantity_value: unsupported operator %q", op)
	}

	return func(t *Target) (bool, error) {
		raw, ok := t.Quantity(key)
		if !ok {
			return false, fmt.Errorf("quantity %q not set on target %d", key, t.Index)
		}
		v, ok := numeric(raw)
		if !ok {
			return false, fmt.Errorf("quantity %q is not numeric (%T)", key, raw)
		}
		return compare(v, op, threshold), nil
	}, nil
}

// storeValueFactory builds a callback storing a fixed value under a key:
// args are (key, value).
func storeValueFactory(args ...any) (CallbackFunc, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("store_value wants (key, value), got %d args", len(args))
	}
	key, err := argString(args, 0, "key")
	if err != nil {
		return nil, err
	}
	value := args[1]

	return func(t *Target) error {
		t.Quantities[key] = value
		return nil
	}, nil
}

// objectIndexFactory builds a quantity returning the target's index
// within its chunk.
func objectIndexFactory(args ...any) (QuantityFunc, error) {
	if len(args) != 0 {
		return nil, fmt.Errorf("object_index wants no args, got %d", len(args))
	}
	return func(t *Target) (any, error) {
		return t.Index, nil
	}, nil
}

// --- argument and value helpers ---

func argString(args []any, i int, name string) (string, error) {
	s, ok := args[i].(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", name, args[i])
	}
	return s, nil
}

func argFloat(args []any, i int, name string) (float64, error) {
	v, ok := numeric(args[i])
	if !ok {
		return 0, fmt.Errorf("argument %q must be numeric, got %T", name, args[i])
	}
	return v, nil
}

// numeric extracts a base-unit float from the value kinds quantities take.
func numeric(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case units.Quantity:
		return v.ToBase().Value, true
	default:
		return 0, false
	}
}

func validOp(op string) bool {
	switch op {
	case ">", ">=", "<", "<=", "==", "!=":
		return true
	}
	return false
}

func compare(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	case "!=":
		return v != threshold
	}
	return false
}
