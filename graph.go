// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import (
	"log"

	"github.com/vireath/framegraph/driver"
)

// phase tracks which part of a Graph's lifecycle it is in, so that
// re-entrancy mistakes (calling AddPass during Execute, calling
// Compile twice) are caught instead of silently corrupting state.
type phase int

const (
	phaseSetup phase = iota
	phaseCompiled
	phaseExecuting
)

// Graph is the top-level container: it owns pass nodes, resource
// nodes, concrete resource records and the alias list, and exposes
// the builder/compile/execute surface clients drive a frame with.
//
// A Graph is used once per frame: build it with AddPass/Present/
// MoveResource, Compile it, Execute it, and it resets itself to an
// empty, reusable state.
type Graph struct {
	passes    []passNode
	resources []resourceNode
	concretes []concreteResource
	aliases   []alias

	phase phase
}

// New creates an empty Graph.
func New() *Graph { return &Graph{} }

// AddPass declares a new pass.
// setup is invoked synchronously with a Builder scoped to the new
// pass and a pointer to its freshly constructed pass-local data of
// type T; setup must use the Builder to declare the pass's reads,
// writes and newly created resources. execute is stored and invoked
// later, during Execute, unless the pass's refCount is 0 after the
// cull — which holds for a culled pass and for any pass that declares
// no writes, such as the one Present adds.
// AddPass returns a pointer to the pass's data so that later setup
// calls (for other passes) can read back, e.g., the handles it
// produced.
//
// AddPass is a free function rather than a Graph method because Go
// does not allow a method to introduce its own type parameter.
func AddPass[T any](g *Graph, name string, setup func(*Builder, *T), execute func(*T, *Resources, driver.GPU)) *T {
	g.mustBeInSetup("AddPass")
	id := len(g.passes)
	g.passes = append(g.passes, passNode{name: name, id: id, refCount: 0})

	pe := &passExecutorFor[T]{fn: execute}
	g.passes[id].executor = pe

	b := &Builder{g: g, pass: id}
	setup(b, &pe.data)

	return &pe.data
}

// Present is equivalent to a no-op pass that reads h: it marks h's
// resource as externally observable, so compile's reverse-refcount
// cull never removes the pass chain that produced it even though
// nothing else reads it.
func (g *Graph) Present(h Handle) {
	g.mustBeInSetup("Present")
	AddPass(g, "present", func(b *Builder, _ *struct{}) {
		b.Read(h)
	}, func(_ *struct{}, _ *Resources, _ driver.GPU) {})
}

// MoveResource records that, after compile, to's concrete resource
// should be replaced by from's. No validity checks are performed at
// call time (see DESIGN.md for the rationale); an invalid from or to
// index is only ever detected, as an out-of-range index, during
// compile.
func (g *Graph) MoveResource(from, to Handle) {
	g.mustBeInSetup("MoveResource")
	g.aliases = append(g.aliases, alias{from: from, to: to})
}

// IsValid reports whether h identifies the current version of one of
// g's resource nodes.
func (g *Graph) IsValid(h Handle) bool {
	if !h.Valid() || int(h.Index) >= len(g.resources) {
		return false
	}
	return g.resources[h.Index].version == h.Version
}

// Descriptor returns the ResourceDesc associated with h, if h is
// valid.
func (g *Graph) Descriptor(h Handle) (ResourceDesc, bool) {
	if !g.IsValid(h) {
		return ResourceDesc{}, false
	}
	return g.resources[h.Index].desc, true
}

func (g *Graph) mustBeInSetup(op string) {
	if g.phase != phaseSetup {
		panic("framegraph: " + op + " called outside the setup phase")
	}
}

func logf(format string, args ...any) {
	log.Printf("framegraph: "+format, args...)
}
