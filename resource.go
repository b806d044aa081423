// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import "github.com/vireath/framegraph/driver"

// resourceNode is the per-declaration record for a virtual resource.
// It is owned by Graph.resources and never reordered; its slice index
// is its identity (Handle.Index). Cross references between passes,
// resources and concrete resources are indices into these slices,
// never pointers, so nothing here needs a cyclic-ownership GC pass.
type resourceNode struct {
	name string
	// index equals this node's position in Graph.resources. Kept
	// alongside it for clarity at call sites that already hold a
	// *resourceNode without its slice position.
	index uint16
	// version is incremented on every successful write and becomes
	// part of the Handle a caller must present to read/write again.
	version uint16

	desc       ResourceDesc
	readFlags  RWFlags
	writeFlags RWFlags

	// concrete indexes into Graph.concretes. It is -1 until compile
	// materializes it (Step 1) or an alias rewrites it (Step 2).
	concrete int
}

// concreteResource is the physical-resource record backing the live
// interval of one or more virtual resources (more than one, when
// aliased together by MoveResource).
type concreteResource struct {
	name string
	desc ResourceDesc

	readFlags  RWFlags
	writeFlags RWFlags

	// writer is the pass index of the last pass, in declaration
	// order, that writes this resource, or -1. writerCount exceeds 1
	// only when MoveResource aliases several written resources onto
	// this record; cull panics if such a record has no readers.
	writer int
	// first and last are the pass indices of the first and last
	// consumer (reader or writer), or -1 if this resource is never
	// consumed.
	first, last int

	readerCount int
	writerCount int

	// orphaned is set by resolveAliases when this concrete was the
	// original backing of a MoveResource To handle and is no longer
	// pointed to by any resource node. It never gets readers or
	// writers of its own and reaches cull's zero-readerCount stack by
	// construction, which is expected and not a graph-authoring
	// mistake.
	orphaned bool

	// Driver-side state. Non-nil only within [first's execution,
	// last's execution]; see concrete.go's allocate/release.
	color, depth driver.Texture
	target       driver.RenderTarget
}
