// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

// alias records a MoveResource call. Compile Step 2 resolves each
// alias by overwriting the resourceNode at to.Index so that it shares
// from.Index's concrete record. The concrete record that to.Index
// originally pointed to is retained in the backing store but is
// orphaned — nothing references it as reader or writer after Step 3,
// so Step 5 never schedules it for allocation.
type alias struct {
	from, to Handle
}
