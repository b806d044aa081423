// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import "github.com/vireath/framegraph/driver"

// ResourceDesc describes the declarative attributes of a virtual
// resource. It is opaque to the compiler and executor beyond what
// allocate (concrete.go) needs — it is passed through to the driver
// largely unchanged at devirtualization time.
type ResourceDesc struct {
	// Kind is the texture's dimensionality.
	Kind driver.Kind
	driver.Dim3D
	// Levels is the mip level count.
	Levels int
	// Samples is the sample count (1 for non-multisampled).
	Samples int
	// Format is the color pixel format. The depth texture, when
	// materialized, always uses a fixed depth format (see
	// allocate in concrete.go) regardless of Format.
	Format driver.PixelFmt
}
