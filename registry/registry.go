package registry

import (
	"sort"
	"sync"

	"github.com/kbukum/halokit/errors"
)

// Factory builds a bound callable from configuration-time arguments.
// Implementations should validate their arguments and fail fast; a factory
// error surfaces at Find time, never during a run.
type Factory[T any] func(args ...any) (T, error)

// Registry provides named factory lookup for one action kind.
type Registry[T any] struct {
	kind      string
	mu        sync.RWMutex
	factories map[string]Factory[T]
}

// New creates a new empty Registry for the given action kind.
// The kind appears in lookup errors ("unknown filter ...").
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, factories: make(map[string]Factory[T])}
}

// Kind returns the action kind this registry serves.
func (r *Registry[T]) Kind() string { return r.kind }

// Register adds a factory to the registry. Registering the same name twice
// replaces the previous factory; populate registries once at startup.
func (r *Registry[T]) Register(name string, factory Factory[T]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// RegisterValue adds a factory that ignores arguments and always returns fn.
func (r *Registry[T]) RegisterValue(name string, fn T) {
	r.Register(name, func(...any) (T, error) { return fn, nil })
}

// Find resolves a name and binds args into the returned callable.
// Returns an UNKNOWN_ACTION error if no factory is registered under name.
func (r *Registry[T]) Find(name string, args ...any) (T, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()

	var zero T
	if !ok {
		return zero, errors.UnknownAction(r.kind, name)
	}
	return factory(args...)
}

// Contains reports whether a factory is registered under name.
func (r *Registry[T]) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[name]
	return ok
}

// List returns sorted names of all registered factories.
func (r *Registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
