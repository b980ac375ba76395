package pipeline

import (
	"slices"
	"sync"

	"github.com/kbukum/halokit/chunk"
	"github.com/kbukum/halokit/errors"
	"github.com/kbukum/halokit/logger"
	"github.com/kbukum/halokit/registry"
)

// Registries bundles the named-action registries, one per action kind.
type Registries struct {
	Callbacks  *registry.Registry[CallbackFunc]
	Filters    *registry.Registry[FilterFunc]
	Quantities *registry.Registry[QuantityFunc]
	Recipes    *registry.Registry[RecipeFunc]
}

// NewRegistries creates an empty registry set.
func NewRegistries() *Registries {
	return &Registries{
		Callbacks:  registry.New[CallbackFunc](KindCallback),
		Filters:    registry.New[FilterFunc](KindFilter),
		Quantities: registry.New[QuantityFunc](KindQuantity),
		Recipes:    registry.New[RecipeFunc](KindRecipe),
	}
}

// Pipeline accumulates an ordered action list during configuration and
// drives objects through it during a run. The action list is append-only
// while configuring and frozen (read-only) while any run is in flight,
// so it is safely shared by reference across workers.
type Pipeline struct {
	reg       *Registries
	log       *logger.Logger
	observers []Observer

	mu            sync.Mutex
	running       int
	actions       []Action
	quantityKeys  []string
	fieldRequests []chunk.FieldRef
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithRegistries sets the registry set used to resolve action names.
func WithRegistries(reg *Registries) Option {
	return func(p *Pipeline) { p.reg = reg }
}

// WithLogger sets the pipeline's logger.
func WithLogger(log *logger.Logger) Option {
	return func(p *Pipeline) { p.log = log }
}

// WithObserver attaches observers that receive run execution events.
func WithObserver(obs ...Observer) Option {
	return func(p *Pipeline) { p.observers = append(p.observers, obs...) }
}

// New creates an empty pipeline resolving names against the default
// registries unless overridden.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		reg: Default(),
		log: logger.GetGlobalLogger().WithComponent("pipeline"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddCallback resolves name via the callback registry, binding args, and
// appends the bound callback to the action list. An unknown name fails
// here and leaves the pipeline unmodified.
func (p *Pipeline) AddCallback(name string, args ...any) error {
	fn, err := p.reg.Callbacks.Find(name, args...)
	if err != nil {
		return err
	}
	return p.append(&callbackAction{name: name, fn: fn})
}

// AddFilter resolves name via the filter registry, binding args, and
// appends the bound filter. A filter returning false halts processing of
// the current target for all subsequent actions.
func (p *Pipeline) AddFilter(name string, args ...any) error {
	fn, err := p.reg.Filters.Find(name, args...)
	if err != nil {
		return err
	}
	return p.append(&filterAction{name: name, fn: fn})
}

// AddQuantity resolves key via the quantity registry, binding args, and
// appends a quantity action storing the result under key.
func (p *Pipeline) AddQuantity(key string, args ...any) error {
	fn, err := p.reg.Quantities.Find(key, args...)
	if err != nil {
		return err
	}
	if err := p.append(&quantityAction{key: key, fn: fn}); err != nil {
		return err
	}
	p.recordKey(key)
	return nil
}

// AddQuantityField appends a quantity action that reads the raw field
// (namespace, key) from the chunk at the target's index. No registry
// lookup occurs; the field ref is added to the set of fields the engine
// asks the source to materialize per chunk.
func (p *Pipeline) AddQuantityField(key, namespace string) error {
	if namespace == "" {
		return errors.MissingField("namespace")
	}
	ref := chunk.FieldRef{Namespace: namespace, Field: key}
	if err := p.append(&quantityAction{key: key, ref: &ref}); err != nil {
		return err
	}
	p.mu.Lock()
	if !slices.Contains(p.fieldRequests, ref) {
		p.fieldRequests = append(p.fieldRequests, ref)
	}
	p.mu.Unlock()
	p.recordKey(key)
	return nil
}

// AddRecipe resolves name via the recipe registry, binding args, and
// invokes the recipe synchronously with the pipeline itself. A recipe is
// defined purely in terms of Add* calls, so its expansion is equivalent,
// action for action, to issuing the same calls by hand. It leaves no
// trace beyond the actions it appended.
func (p *Pipeline) AddRecipe(name string, args ...any) error {
	recipe, err := p.reg.Recipes.Find(name, args...)
	if err != nil {
		return err
	}
	return recipe(p)
}

// Actions returns a snapshot of the configured action list.
func (p *Pipeline) Actions() []Action {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.actions)
}

// QuantityKeys returns the configured quantity keys in first-added order.
// These fix the catalog's column set.
func (p *Pipeline) QuantityKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.quantityKeys)
}

// FieldRequests returns the raw fields the engine will ask the source to
// materialize for each chunk.
func (p *Pipeline) FieldRequests() []chunk.FieldRef {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.fieldRequests)
}

func (p *Pipeline) append(a Action) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running > 0 {
		return errors.PipelineFrozen("add " + a.Kind())
	}
	p.actions = append(p.actions, a)
	return nil
}

func (p *Pipeline) recordKey(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !slices.Contains(p.quantityKeys, key) {
		p.quantityKeys = append(p.quantityKeys, key)
	}
}

// freeze marks a run in flight and returns shared read-only snapshots of
// the configuration.
func (p *Pipeline) freeze() (actions []Action, keys []string, fields []chunk.FieldRef) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running++
	return p.actions, p.quantityKeys, p.fieldRequests
}

func (p *Pipeline) unfreeze() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running--
}
