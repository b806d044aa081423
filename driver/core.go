// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package driver

// GPU is the interface that provides methods for creating and
// destroying the concrete resources a frame graph devirtualizes.
// A GPU is obtained from a call to Driver.Open.
type GPU interface {
	// NewTexture creates a new texture.
	NewTexture(pf PixelFmt, kind Kind, size Dim3D, levels, samples int, usg Usage) (Texture, error)

	// NewRenderTarget creates a new render target combining the
	// given color/depth/stencil textures.
	NewRenderTarget(param *RenderTargetParam) (RenderTarget, error)
}

// Destroyer is the interface that wraps the Destroy method.
// Types that implement this interface may allocate external memory
// that is not managed by the GC, so Destroy must be called explicitly
// to ensure such memory is deallocated.
type Destroyer interface {
	// Destroy destroys the resource.
	// It must not be called more than once, and the resource
	// must not be used afterwards.
	Destroy()
}

// Texture is the interface that defines a GPU texture.
type Texture interface {
	Destroyer
}

// RenderTarget is the interface that defines a GPU render target,
// i.e., a set of textures bound as color/depth/stencil attachments.
type RenderTarget interface {
	Destroyer
}

// RenderTargetParam describes the attachments of a render target.
type RenderTargetParam struct {
	// Attachments indicates which of Color/Depth/Stencil textures
	// are present.
	Attachments Usage
	Dim3D
	Samples int
	Format  PixelFmt
	Color   []Texture
	Depth   []Texture
	Stencil []Texture
}

// Usage is a mask indicating valid uses for a texture, or, in a
// RenderTargetParam, which attachments a render target binds.
type Usage int

// Usage/attachment flags.
const (
	// UShaderSample indicates that the texture can be sampled in
	// shaders. Every texture the frame graph creates is shader
	// sampleable, so a pass may consume its own inputs downstream.
	UShaderSample Usage = 1 << iota
	// UColorTarget indicates that the texture can be used as a
	// color attachment.
	UColorTarget
	// UDepthTarget indicates that the texture can be used as a
	// depth attachment.
	UDepthTarget
)

// Kind is the dimensionality of a texture.
type Kind int

// Texture kinds.
const (
	Tex2D Kind = iota
	TexCube
	Tex3D
)

// PixelFmt describes the format of a pixel.
type PixelFmt int

// Pixel formats.
const (
	// Color, 8-bit channels.
	RGBA8un PixelFmt = iota
	RGBA8sRGB
	BGRA8un
	// Color, 16-bit channels.
	RGBA16f
	// Depth.
	D16un
	D24un
	D32f
)

// Dim3D is a three-dimensional size.
type Dim3D struct {
	Width, Height, Depth int
}
