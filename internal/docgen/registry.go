package docgen

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrDuplicateDefinition indicates two differing definitions registered under
// the same identifier. Re-registering an identical definition is a no-op.
var ErrDuplicateDefinition = errors.New("conflicting definition already registered")

// Sink receives each fully resolved generation request exactly once.
type Sink func(root *DefinitionDoc, res *Resolved) error

// Registry accumulates definitions observed in arbitrary order during a build
// pass and defers generation requests until every flatten reference they need
// has been registered. It is safe for concurrent use.
//
// A generation request that never sees its dependencies registered simply
// produces no output; incomplete documents are never written.
type Registry struct {
	mu      sync.Mutex
	defs    map[string]*DefinitionDoc
	pending map[string][]*DefinitionDoc // target path -> deferred roots
	sink    Sink
}

// NewRegistry creates an empty registry. The sink is invoked under the
// registry lock, serializing writes from concurrently processed definitions.
func NewRegistry(sink Sink) *Registry {
	return &Registry{
		defs:    make(map[string]*DefinitionDoc),
		pending: make(map[string][]*DefinitionDoc),
		sink:    sink,
	}
}

// Register inserts a definition and re-attempts every deferred generation
// request, since the new entry may be the dependency one of them was missing.
func (r *Registry) Register(def *DefinitionDoc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.insertLocked(def); err != nil {
		return err
	}
	return r.drainLocked()
}

// RequestGeneration registers the root definition and attempts resolution.
// If any flatten reference is not yet registered the request is queued and
// retried on each subsequent Register call.
func (r *Registry) RequestGeneration(root *DefinitionDoc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.insertLocked(root); err != nil {
		return err
	}
	r.pending[root.Target] = append(r.pending[root.Target], root)
	return r.drainLocked()
}

// Lookup returns the definition registered under the identifier.
func (r *Registry) Lookup(identifier string) (*DefinitionDoc, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	def, ok := r.defs[identifier]
	return def, ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.defs)
}

// Unresolved returns the identifiers of generation requests still waiting on
// missing dependencies, for end-of-run diagnostics.
func (r *Registry) Unresolved() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var roots []string
	for _, list := range r.pending {
		for _, root := range list {
			roots = append(roots, root.Identifier)
		}
	}
	return roots
}

func (r *Registry) insertLocked(def *DefinitionDoc) error {
	if existing, ok := r.defs[def.Identifier]; ok {
		if reflect.DeepEqual(existing, def) {
			return nil
		}
		return fmt.Errorf("%w: %s", ErrDuplicateDefinition, def.Identifier)
	}
	r.defs[def.Identifier] = def
	return nil
}

// drainLocked re-attempts every pending generation against the current
// definition set. Each root that resolves is removed before its output is
// written, so a successful transition fires the sink exactly once.
func (r *Registry) drainLocked() error {
	for target, list := range r.pending {
		// Filter into a fresh slice: an error below must leave pending
		// holding only the untried roots, never a partially overwritten
		// view of the original list.
		remaining := make([]*DefinitionDoc, 0, len(list))
		for i, root := range list {
			res, ok, err := resolve(root, r.defs)
			if err != nil {
				r.pending[target] = append(remaining, list[i+1:]...)
				return fmt.Errorf("resolving %s: %w", root.Identifier, err)
			}
			if !ok {
				remaining = append(remaining, root)
				continue
			}
			if err := r.sink(root, res); err != nil {
				r.pending[target] = append(remaining, list[i+1:]...)
				return fmt.Errorf("generating docs for %s: %w", root.Identifier, err)
			}
		}
		if len(remaining) == 0 {
			delete(r.pending, target)
		} else {
			r.pending[target] = remaining
		}
	}
	return nil
}
