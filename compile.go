// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

// Compile materializes concrete resource records, resolves aliases,
// computes refcounts, culls passes whose outputs are never consumed,
// and places allocate/destroy markers on the surviving passes.
// It must be called at most once per Graph before Execute.
func (g *Graph) Compile() *Graph {
	g.mustBeInSetup("Compile")
	g.phase = phaseCompiled

	g.materializeConcretes()
	g.resolveAliases()
	g.seedRefCounts()
	g.cull()
	g.placeMarkers()

	return g
}

// materializeConcretes is compile Step 1: for each resource node,
// allocate a fresh concrete record carrying its descriptor and
// accumulated flags, and point the node at it.
func (g *Graph) materializeConcretes() {
	g.concretes = make([]concreteResource, len(g.resources))
	for i := range g.resources {
		node := &g.resources[i]
		g.concretes[i] = concreteResource{
			name:       node.name,
			desc:       node.desc,
			readFlags:  node.readFlags,
			writeFlags: node.writeFlags,
			writer:     -1,
			first:      -1,
			last:       -1,
		}
		node.concrete = i
	}
}

// resolveAliases is compile Step 2: for each alias in declaration
// order, the To resource node's concrete pointer is replaced by the
// From resource node's concrete pointer.
func (g *Graph) resolveAliases() {
	for _, a := range g.aliases {
		if int(a.from.Index) >= len(g.resources) || int(a.to.Index) >= len(g.resources) {
			logf("move_resource: index out of range (from=%d, to=%d)", a.from.Index, a.to.Index)
			continue
		}
		orphan := g.resources[a.to.Index].concrete
		g.concretes[orphan].orphaned = true
		g.resources[a.to.Index].concrete = g.resources[a.from.Index].concrete
	}
}

// seedRefCounts is compile Step 3: for each pass in declaration
// order, seed its refcount from its write count and, for every
// resource it reads or writes, update the concrete's reader/writer
// counts and first/last consumer.
func (g *Graph) seedRefCounts() {
	for i := range g.passes {
		pass := &g.passes[i]
		pass.refCount = len(pass.writes)

		for _, h := range pass.reads {
			c := g.concreteOf(h)
			c.readerCount++
			if c.first < 0 {
				c.first = i
			}
			c.last = i
		}
		for _, h := range pass.writes {
			c := g.concreteOf(h)
			c.writer = i
			c.writerCount++
			if c.first < 0 {
				c.first = i
			}
			c.last = i
		}
	}
}

// cull is compile Step 4: the reverse-refcount cull. A concrete whose
// readerCount reaches zero pushes the load onto its writer; if the
// writer's refCount then reaches zero, that pass is culled and its
// own reads are in turn decremented, possibly culling their writers
// transitively. Termination follows because every step strictly
// decreases the total pending refcount.
//
// By construction, a concrete reaching this loop cannot have more
// than one writer: two unrelated passes can't write the same
// resource, and a resource written by more than one pass only stays
// off this stack (readerCount > 0) through an external reader such
// as Present — exactly the case MoveResource's alias scenario
// exploits, so the check belongs here, not in seedRefCounts.
func (g *Graph) cull() {
	stack := make([]int, 0, len(g.concretes))
	for i := range g.concretes {
		if g.concretes[i].readerCount == 0 {
			stack = append(stack, i)
		}
	}

	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c := &g.concretes[i]

		if c.writerCount > 1 {
			panic("framegraph: multi-writer violation on resource " + c.name)
		}

		if c.writer < 0 {
			if !c.orphaned {
				logf("resource %q is never written", c.name)
			}
			continue
		}

		writer := &g.passes[c.writer]
		writer.refCount--
		if writer.refCount == 0 {
			for _, h := range writer.reads {
				r := g.concreteOf(h)
				r.readerCount--
				if r.readerCount == 0 {
					stack = append(stack, g.resources[h.Index].concrete)
				}
			}
		}
	}
}

// placeMarkers is compile Step 5: every concrete with at least one
// reader, or with a writer that survived the cull, and both endpoints
// set gets its index appended to its first consumer's devirtualize
// list and its last consumer's destroy list. A write-only concrete
// (e.g. a depth target never read by any pass) of a live writer still
// needs to be devirtualized before its writer runs and destroyed
// after, or the writer's own access to it through Resources would hit
// an unreachable resource. The outputs of a culled writer are never
// scheduled, so culled passes cause no driver calls.
func (g *Graph) placeMarkers() {
	for i := range g.concretes {
		c := &g.concretes[i]
		if (c.first < 0) != (c.last < 0) {
			panic("framegraph: endpoint consistency violated for resource " + c.name)
		}
		liveWriter := c.writer >= 0 && g.passes[c.writer].refCount > 0
		if (c.readerCount > 0 || liveWriter) && c.first >= 0 && c.last >= 0 {
			g.passes[c.first].devirtualize = append(g.passes[c.first].devirtualize, i)
			g.passes[c.last].destroy = append(g.passes[c.last].destroy, i)
		}
	}
}

// concreteOf returns the concrete resource h's node currently points
// to, post alias resolution.
func (g *Graph) concreteOf(h Handle) *concreteResource {
	return &g.concretes[g.resources[h.Index].concrete]
}
