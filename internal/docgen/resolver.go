package docgen

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"
)

// ErrCyclicDependency indicates a flatten-reference cycle. Composition cycles
// cannot occur in well-formed Go structs, but a stale registry entry or a
// pointer-typed flatten field can still produce one, so the walk guards
// against looping instead of recursing forever.
var ErrCyclicDependency = errors.New("cyclic flatten reference")

// resolve expands a root's flatten references against a registry snapshot.
//
// The walk is depth-first in declaration order: each reference contributes its
// fields before its own references are expanded, and the root's direct fields
// come last, so dependencies always precede the root in flat mode and the root
// forms the final section in grouped mode.
//
// A reference missing from the snapshot defers the whole generation: resolve
// returns ok=false and no error, and nothing is rendered. Resolution is a pure
// read, safe to re-attempt on any later registration.
func resolve(root *DefinitionDoc, defs map[string]*DefinitionDoc) (*Resolved, bool, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	if err := g.AddVertex(root.Identifier); err != nil {
		return nil, false, err
	}

	res := &Resolved{Root: root}

	var walk func(owner string, refs []string) (bool, error)
	walk = func(owner string, refs []string) (bool, error) {
		for _, ref := range refs {
			if err := g.AddVertex(ref); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
				return false, err
			}
			if err := g.AddEdge(owner, ref); err != nil {
				switch {
				case errors.Is(err, graph.ErrEdgeCreatesCycle):
					return false, fmt.Errorf("%w: %s -> %s", ErrCyclicDependency, owner, ref)
				case errors.Is(err, graph.ErrEdgeAlreadyExists):
					// Diamond: the reference was already expanded via
					// another path. Its fields are in place, skip it.
					continue
				default:
					return false, err
				}
			}

			dep, found := defs[ref]
			if !found {
				return false, nil
			}

			fields := relabel(dep.Fields, ref)
			res.Rows = append(res.Rows, fields...)
			res.Sections = append(res.Sections, Section{Identifier: ref, Fields: fields})

			if ok, err := walk(ref, dep.FlattenRefs); !ok || err != nil {
				return ok, err
			}
		}
		return true, nil
	}

	ok, err := walk(root.Identifier, root.FlattenRefs)
	if err != nil || !ok {
		return nil, ok, err
	}

	own := relabel(root.Fields, root.Identifier)
	res.Rows = append(res.Rows, own...)
	res.Sections = append(res.Sections, Section{Identifier: root.Identifier, Fields: own})
	return res, true, nil
}

// relabel copies fields with their group label set to the owning identifier.
func relabel(fields []FieldDoc, group string) []FieldDoc {
	out := make([]FieldDoc, len(fields))
	for i, f := range fields {
		f.Group = group
		out[i] = f
	}
	return out
}
