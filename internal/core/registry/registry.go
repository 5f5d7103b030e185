package registry

import (
	"sort"
	"sync"

	"github.com/scenekit/scenekit/internal/core/entity"
)

// Category partitions registered tags. Tags are unique within a category but
// may repeat across categories.
type Category string

const (
	CategoryAttribute Category = "attribute"
	CategoryNode      Category = "node"
	CategoryComponent Category = "component"
	CategoryMisc      Category = "misc"
)

// FallbackTag is the reserved tag holding a category's generic constructor.
// Resolution falls back to it when the live tag is unregistered, so unknown
// backend types stay usable in least-specific form instead of failing.
const FallbackTag = "*"

// Ctor builds a wrapper for the given full name. The env carries the backend
// and the resolver so wrappers can resolve related entities on demand.
type Ctor func(env entity.Env, name string) entity.Entity

// Registry holds the per-category tag→constructor tables. It is an explicit
// value handed to the resolver, not ambient state; tests build their own.
type Registry struct {
	mu     sync.Mutex
	tables map[Category]map[string]Ctor
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{tables: make(map[Category]map[string]Ctor)}
}

// RegisterTypes merges mapping into the category's table. Registration is
// additive only; re-registering a tag overwrites it, which is the supported
// way for a host to substitute its own wrapper for a default one.
func (r *Registry) RegisterTypes(category Category, mapping map[string]Ctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table, ok := r.tables[category]
	if !ok {
		table = make(map[string]Ctor, len(mapping))
		r.tables[category] = table
	}
	for tag, ctor := range mapping {
		table[tag] = ctor
	}
}

// Lookup returns the constructor registered for tag in category.
func (r *Registry) Lookup(category Category, tag string) (Ctor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ctor, ok := r.tables[category][tag]
	return ctor, ok
}

// LookupOrFallback returns the tag's constructor, or the category's generic
// fallback when the tag is unregistered. The second result reports whether
// the tag itself matched.
func (r *Registry) LookupOrFallback(category Category, tag string) (Ctor, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table := r.tables[category]
	if ctor, ok := table[tag]; ok {
		return ctor, true
	}
	return table[FallbackTag], false
}

// Tags returns the registered tags of a category, sorted, for diagnostics.
func (r *Registry) Tags(category Category) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.tables[category]))
	for tag := range r.tables[category] {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
	defaultFill     []func(*Registry)
)

// Populate queues a registration to run when the default registry is first
// requested. Entity families call this from package init.
func Populate(fill func(*Registry)) {
	defaultFill = append(defaultFill, fill)
}

// Default returns the process-wide registry, populating it on first use.
// Lifetime is the process; there is no teardown.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
		for _, fill := range defaultFill {
			fill(defaultRegistry)
		}
	})
	return defaultRegistry
}
