// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import "github.com/vireath/framegraph/driver"

// depthFormat is the fixed depth pixel format used for every
// materialized depth texture, regardless of the resource's own
// ResourceDesc.Format (which describes the color aspect).
const depthFormat = driver.D24un

// allocate creates the underlying driver resources for c: a color
// and/or depth texture when c is read or written as such, and, when
// c has a writer, a render target binding the textures c is written
// as (its writeFlags). Texture creation is gated on the union of readFlags and
// writeFlags, not readFlags alone — a resource written as Depth but
// never read still needs a depth texture to bind as the render
// target's depth attachment.
func (c *concreteResource) allocate(gpu driver.GPU) error {
	flags := c.readFlags | c.writeFlags
	if c.readerCount > 0 || c.writerCount > 0 {
		if flags.Has(Color) {
			tex, err := gpu.NewTexture(c.desc.Format, c.desc.Kind, c.desc.Dim3D, c.desc.Levels, c.desc.Samples, driver.UColorTarget|driver.UShaderSample)
			if err != nil {
				return err
			}
			c.color = tex
		}
		if flags.Has(Depth) {
			tex, err := gpu.NewTexture(depthFormat, c.desc.Kind, c.desc.Dim3D, c.desc.Levels, c.desc.Samples, driver.UDepthTarget|driver.UShaderSample)
			if err != nil {
				return err
			}
			c.depth = tex
		}
	}
	if c.writerCount > 0 {
		var attachments driver.Usage
		var color, depth []driver.Texture
		if c.writeFlags.Has(Color) {
			attachments |= driver.UColorTarget
			color = []driver.Texture{c.color}
		}
		if c.writeFlags.Has(Depth) {
			attachments |= driver.UDepthTarget
			depth = []driver.Texture{c.depth}
		}
		target, err := gpu.NewRenderTarget(&driver.RenderTargetParam{
			Attachments: attachments,
			Dim3D:       c.desc.Dim3D,
			Samples:     c.desc.Samples,
			Format:      c.desc.Format,
			Color:       color,
			Depth:       depth,
		})
		if err != nil {
			return err
		}
		c.target = target
	}
	return nil
}

// release tears down whichever driver resources allocate created and
// clears them to nil.
func (c *concreteResource) release() {
	if c.target != nil {
		c.target.Destroy()
		c.target = nil
	}
	if c.color != nil {
		c.color.Destroy()
		c.color = nil
	}
	if c.depth != nil {
		c.depth.Destroy()
		c.depth = nil
	}
}
