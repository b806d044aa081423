// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import "github.com/vireath/framegraph/driver"

// Execute walks the passes in declaration order, driving resource
// devirtualization, the pass's execute callback, and resource
// teardown. Declaration order is itself the dependency order: a
// reader of version v necessarily follows, in declaration order, the
// pass that produced v, because no handle of version v could exist
// before that write happened.
//
// A pass's devirtualize/destroy markers run unconditionally: a pass
// with refCount == 0 is either genuinely culled — in which case
// placeMarkers scheduled on it only resources that a surviving pass
// also uses (never the outputs of a culled writer), so running them
// keeps those lifetimes intact — or it is a read-only pass like the
// one Present adds, which legitimately needs to release whatever
// resource it was the last consumer of. Only the pass's own callback
// is skipped when refCount == 0, since a genuinely culled pass must
// not run.
//
// Execute requires Compile to have run first. After it returns, the
// Graph is empty and ready to be reused for the next frame.
func (g *Graph) Execute(gpu driver.GPU) error {
	if g.phase != phaseCompiled {
		panic("framegraph: Execute called without a prior Compile")
	}
	g.phase = phaseExecuting

	for i := range g.passes {
		pass := &g.passes[i]

		for _, idx := range pass.devirtualize {
			if err := g.concretes[idx].allocate(gpu); err != nil {
				return err
			}
		}

		if pass.refCount != 0 {
			view := &Resources{g: g, pass: i}
			pass.executor.run(view, gpu)
		}

		for _, idx := range pass.destroy {
			g.concretes[idx].release()
		}
	}

	g.checkBalanced()
	g.reset()
	return nil
}

// checkBalanced is a resource-leak assertion: every concrete resource
// must have released its driver-side state by the time execution
// completes.
func (g *Graph) checkBalanced() {
	for i := range g.concretes {
		c := &g.concretes[i]
		if c.color != nil || c.depth != nil || c.target != nil {
			panic("framegraph: resource leak: " + c.name + " was allocated but never released")
		}
	}
}

func (g *Graph) reset() {
	g.passes = nil
	g.resources = nil
	g.concretes = nil
	g.aliases = nil
	g.phase = phaseSetup
}
