package pipeline

import "github.com/kbukum/halokit/chunk"

// Action kind names as they appear in errors, logs, and pipeline files.
const (
	KindCallback = "callback"
	KindFilter   = "filter"
	KindQuantity = "quantity"
	KindRecipe   = "recipe"
)

// CallbackFunc operates on a target for side effect only.
type CallbackFunc func(t *Target) error

// FilterFunc decides whether a target continues through the action list.
type FilterFunc func(t *Target) (bool, error)

// QuantityFunc computes a value to be stored on the target.
type QuantityFunc func(t *Target) (any, error)

// RecipeFunc configures a pipeline by issuing Add* calls on it.
type RecipeFunc func(p *Pipeline) error

// Action is one configured unit of work in the action list. The set of
// kinds is closed: callbacks, filters, and quantities. (Recipes never
// appear in the list; they expand into it at configuration time.)
type Action interface {
	// Kind returns KindCallback, KindFilter, or KindQuantity.
	Kind() string
	// Name returns the configured action name; for quantities this is
	// the storage key.
	Name() string

	sealed()
}

type callbackAction struct {
	name string
	fn   CallbackFunc
}

func (a *callbackAction) Kind() string { return KindCallback }
func (a *callbackAction) Name() string { return a.name }
func (a *callbackAction) sealed()      {}

type filterAction struct {
	name string
	fn   FilterFunc
}

func (a *filterAction) Kind() string { return KindFilter }
func (a *filterAction) Name() string { return a.name }
func (a *filterAction) sealed()      {}

// quantityAction stores under key either the result of fn or, when ref is
// set, the chunk's materialized field value at the target's index.
type quantityAction struct {
	key string
	fn  QuantityFunc
	ref *chunk.FieldRef
}

func (a *quantityAction) Kind() string { return KindQuantity }
func (a *quantityAction) Name() string { return a.key }
func (a *quantityAction) sealed()      {}
