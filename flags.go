// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

// RWFlags is a small bit set selecting which underlying textures, and
// which render-target attachments, a resource's builder calls ask to
// be materialized.
type RWFlags uint32

// RWFlags bits.
const (
	// Color selects the resource's color texture/attachment.
	Color RWFlags = 1 << iota
	// Depth selects the resource's depth texture/attachment.
	Depth
	// Stencil selects the resource's stencil attachment. The
	// compiler's allocate step never materializes a stencil texture
	// or binds a stencil attachment, but Stencil is kept so RWFlags
	// mirrors the driver's RenderTargetParam attachment signature in
	// full.
	Stencil
)

// Has reports whether all bits in want are set in f.
func (f RWFlags) Has(want RWFlags) bool { return f&want == want }

// defaultFlags is used by Builder.Read and Builder.Write when the
// caller supplies no explicit flags. Color render targets are the
// overwhelming common case of a pass's declared resources; a
// depth-only resource must pass Depth explicitly.
const defaultFlags = Color
