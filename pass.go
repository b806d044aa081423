// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import "github.com/vireath/framegraph/driver"

// passExecutor is the type-erasing capability a pass retains after
// its pass-local data type has been forgotten: run its execute
// callback against the data it closed over. AddPass constructs one
// passExecutorFor[T] per call; passNode only ever sees the interface.
type passExecutor interface {
	run(v *Resources, gpu driver.GPU)
}

// passExecutorFor binds a pass-local data value of type T to the
// execute callback that closes over it, so passNode can hold passes
// of differing data types in a single slice.
type passExecutorFor[T any] struct {
	data T
	fn   func(*T, *Resources, driver.GPU)
}

func (p *passExecutorFor[T]) run(v *Resources, gpu driver.GPU) { p.fn(&p.data, v, gpu) }

// passNode holds one declared pass: its name, its type-erased
// executor, the resources it reads/writes, and, after compile, the
// devirtualize/destroy placement and liveness refcount.
type passNode struct {
	name string
	// id is the pass's declaration index, equal to its position in
	// Graph.passes. Used only for diagnostics (GraphViz "seq").
	id int

	executor passExecutor

	reads  []Handle
	writes []Handle

	// devirtualize and destroy hold concrete-resource indices,
	// computed by compile Step 5.
	devirtualize []int
	destroy      []int

	// refCount starts at len(writes) and is decremented by the
	// reverse-refcount cull in compile Step 4. A pass with writes
	// whose refCount reaches 0 is culled; a pass with no writes (such
	// as the one Present adds) starts and stays at 0 without being
	// culled. Execute skips the callback of every pass at 0.
	refCount int
}
