// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import "github.com/vireath/framegraph/driver"

// TexUsage selects which of a resource's underlying textures
// Resources.Texture should return.
type TexUsage int

// TexUsage values.
const (
	// UsageDefault picks the depth texture when the resource's
	// accumulated read flags are exactly Depth, and the color
	// texture otherwise.
	UsageDefault TexUsage = iota
	UsageColor
	UsageDepth
)

// Resources is the read-only facade handed to a pass's execute
// callback. It resolves the handles the pass declared during setup
// into the concrete driver resources the compiler devirtualized for
// this execution.
//
// These accessors do not verify that h is actually among the pass's
// declared reads/writes; a pass that requests a handle it never
// declared will get whatever that concrete resource currently holds.
type Resources struct {
	g    *Graph
	pass int
}

// Texture resolves h to a driver texture, per usage. It panics if the
// concrete resource has not been devirtualized for this pass — a
// programmer error, since a pass can only legitimately request
// textures for handles it declared in setup.
func (v *Resources) Texture(h Handle, usage TexUsage) driver.Texture {
	c := v.concreteOf(h)
	switch usage {
	case UsageColor:
		return v.mustTexture(c, c.color, "color")
	case UsageDepth:
		return v.mustTexture(c, c.depth, "depth")
	default:
		if c.readFlags == Depth {
			return v.mustTexture(c, c.depth, "depth")
		}
		return v.mustTexture(c, c.color, "color")
	}
}

// RenderTarget resolves h to its driver render target.
func (v *Resources) RenderTarget(h Handle) driver.RenderTarget {
	c := v.concreteOf(h)
	if c.target == nil {
		panic("framegraph: render target not devirtualized for this pass")
	}
	return c.target
}

func (v *Resources) concreteOf(h Handle) *concreteResource {
	return v.g.concreteOf(h)
}

func (v *Resources) mustTexture(c *concreteResource, tex driver.Texture, which string) driver.Texture {
	if tex == nil {
		panic("framegraph: " + which + " texture not devirtualized for this pass")
	}
	return tex
}
