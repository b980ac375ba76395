package pipeline

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/halokit/errors"
)

// Definition is the declarative form of a pipeline, loadable from YAML.
type Definition struct {
	// Name labels the pipeline in logs and files. Informational.
	Name string `yaml:"name"`
	// Actions configure the pipeline in order.
	Actions []ActionDef `yaml:"actions"`
}

// ActionDef is one declarative action entry.
type ActionDef struct {
	// Kind is callback, filter, quantity, or recipe.
	Kind string `yaml:"kind"`
	// Name is the registered action name. For quantities, Key is used
	// as the registry name when Name is empty.
	Name string `yaml:"name,omitempty"`
	// Key is the storage key for quantity actions.
	Key string `yaml:"key,omitempty"`
	// Namespace marks a quantity as a raw field extraction from the
	// given source namespace instead of a registry computation.
	Namespace string `yaml:"namespace,omitempty"`
	// Args are passed to the action factory in order.
	Args []any `yaml:"args,omitempty"`
}

// LoadDefinition reads and parses a YAML pipeline definition file.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading pipeline definition %s: %w", path, err)
	}
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing pipeline definition %s: %w", path, err)
	}
	return &def, nil
}

// Apply configures the pipeline from a definition, dispatching each
// entry to the corresponding Add call. The first failing entry stops
// application; earlier entries remain appended.
func (p *Pipeline) Apply(def *Definition) error {
	for i, a := range def.Actions {
		var err error
		switch a.Kind {
		case KindCallback:
			err = p.AddCallback(a.Name, a.Args...)
		case KindFilter:
			err = p.AddFilter(a.Name, a.Args...)
		case KindQuantity:
			key := a.Key
			if key == "" {
				key = a.Name
			}
			if key == "" {
				err = errors.MissingField("key")
				break
			}
			if a.Namespace != "" {
				err = p.AddQuantityField(key, a.Namespace)
			} else {
				err = p.AddQuantity(key, a.Args...)
			}
		case KindRecipe:
			err = p.AddRecipe(a.Name, a.Args...)
		default:
			err = errors.InvalidActionKind(a.Kind)
		}
		if err != nil {
			return fmt.Errorf("applying action %d (%s %q): %w", i, a.Kind, a.Name, err)
		}
	}
	return nil
}
