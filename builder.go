// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

// Builder is the per-pass scoped API used during setup to declare
// reads, writes and newly created resources. It is constructed
// internally by AddPass and is valid only for the duration of the
// setup callback it is passed to.
type Builder struct {
	g    *Graph
	pass int
}

// CreateTexture declares a new virtual resource and returns a handle
// to its initial version.
func (b *Builder) CreateTexture(name string, desc ResourceDesc) Handle {
	g := b.g
	index := uint16(len(g.resources))
	g.resources = append(g.resources, resourceNode{
		name:     name,
		index:    index,
		version:  0,
		desc:     desc,
		concrete: -1,
	})
	return Handle{Index: index, Version: 0}
}

// Read declares that the pass reads h. flags, if given, selects which
// of the resource's underlying textures the compiler should
// materialize; the default is Color (see defaultFlags). If h is not
// valid for the current version of its resource node, Read logs a
// diagnostic, records nothing, and returns an invalid handle.
func (b *Builder) Read(h Handle, flags ...RWFlags) Handle {
	g := b.g
	node := g.lookupResource(h)
	if node == nil {
		logf("read: invalid handle (index=%d, version=%d)", h.Index, h.Version)
		return invalidHandle
	}
	node.readFlags |= resolveFlags(flags)
	g.passes[b.pass].reads = append(g.passes[b.pass].reads, Handle{Index: h.Index, Version: h.Version})
	return h
}

// Write declares that the pass writes h. flags, if given, selects
// which of the resource's underlying textures/attachments the
// compiler should materialize; the default is Color. If h is not
// valid for the current version of its resource node — including
// because it has already been superseded by a prior write — Write
// logs a diagnostic, records nothing, and returns an invalid handle.
// On success, the resource node's version is incremented and the new
// handle is returned; h itself becomes stale for future writes.
func (b *Builder) Write(h Handle, flags ...RWFlags) Handle {
	g := b.g
	node := g.lookupResource(h)
	if node == nil {
		logf("write: invalid handle (index=%d, version=%d)", h.Index, h.Version)
		return invalidHandle
	}
	node.writeFlags |= resolveFlags(flags)
	node.version++
	out := Handle{Index: node.index, Version: node.version}
	g.passes[b.pass].writes = append(g.passes[b.pass].writes, out)
	return out
}

// lookupResource returns the resource node h currently addresses, or
// nil if h's index is out of range or its version is stale.
func (g *Graph) lookupResource(h Handle) *resourceNode {
	if !h.Valid() || int(h.Index) >= len(g.resources) {
		return nil
	}
	node := &g.resources[h.Index]
	if node.version != h.Version {
		return nil
	}
	return node
}

func resolveFlags(flags []RWFlags) RWFlags {
	if len(flags) == 0 {
		return defaultFlags
	}
	var f RWFlags
	for _, x := range flags {
		f |= x
	}
	return f
}
