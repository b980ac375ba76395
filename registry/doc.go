// Package registry provides named-factory lookup for pipeline actions.
//
// Each action kind (callback, filter, quantity, recipe) owns one Registry.
// A factory is registered once at process startup under a string name and
// binds configuration-time arguments into a callable that is later invoked
// with only the per-object target:
//
//	filters := registry.New[FilterFunc]("filter")
//	filters.Register("quantity_value", quantityValueFactory)
//	fn, err := filters.Find("quantity_value", "particle_mass", ">", 1e13)
//
// An unknown name fails at Find time, so misconfigured pipelines are
// rejected before any object is processed.
package registry
