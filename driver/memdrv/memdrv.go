// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package memdrv implements an in-memory driver.Driver.
// It allocates no real GPU resources: every Texture and RenderTarget
// it hands out is a bookkeeping record backed by a bit vector slot,
// freed on Destroy. It exists so that the frame graph's own tests can
// exercise compile/execute against a real driver.GPU without a
// graphics backend being available.
package memdrv

import (
	"errors"
	"sync"

	"github.com/vireath/framegraph/driver"
	"github.com/vireath/framegraph/internal/bitvec"
)

func init() {
	driver.Register(&Driver{})
}

// Driver is the memdrv driver.Driver implementation.
type Driver struct {
	mu  sync.Mutex
	gpu *GPU
}

// Open implements driver.Driver.
func (d *Driver) Open() (driver.GPU, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gpu == nil {
		d.gpu = new(GPU)
	}
	return d.gpu, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return "memdrv" }

// Close implements driver.Driver.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gpu = nil
}

// GPU is the memdrv driver.GPU implementation.
type GPU struct {
	mu   sync.Mutex
	texs bitvec.V[uint32]
	rts  bitvec.V[uint32]
}

// NewTexture implements driver.GPU.
func (g *GPU) NewTexture(pf driver.PixelFmt, kind driver.Kind, size driver.Dim3D, levels, samples int, usg driver.Usage) (driver.Texture, error) {
	switch {
	case size.Width < 1, size.Height < 1:
		return nil, errors.New("memdrv: invalid size")
	case levels < 1:
		return nil, errors.New("memdrv: invalid level count")
	case samples < 1 || samples&(samples-1) != 0:
		return nil, errors.New("memdrv: invalid sample count")
	}
	g.mu.Lock()
	id := g.alloc(&g.texs)
	g.mu.Unlock()
	return &texture{
		gpu:     g,
		id:      id,
		pf:      pf,
		kind:    kind,
		size:    size,
		levels:  levels,
		samples: samples,
		usg:     usg,
	}, nil
}

// NewRenderTarget implements driver.GPU.
func (g *GPU) NewRenderTarget(param *driver.RenderTargetParam) (driver.RenderTarget, error) {
	if param == nil {
		return nil, errors.New("memdrv: nil param")
	}
	g.mu.Lock()
	id := g.alloc(&g.rts)
	g.mu.Unlock()
	return &renderTarget{gpu: g, id: id, param: *param}, nil
}

// LiveTextures returns the number of textures currently allocated
// and not yet destroyed.
func (g *GPU) LiveTextures() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.texs.Len() - g.texs.Rem()
}

// LiveRenderTargets returns the number of render targets currently
// allocated and not yet destroyed.
func (g *GPU) LiveRenderTargets() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rts.Len() - g.rts.Rem()
}

// alloc locates a free slot in v, growing it if necessary, and marks
// the slot used. g.mu must be held by the caller.
func (g *GPU) alloc(v *bitvec.V[uint32]) int {
	if v.Rem() == 0 {
		v.Grow(1)
	}
	idx, ok := v.Search()
	if !ok {
		// Cannot happen: Grow(1) always adds unset bits.
		panic("memdrv: search failed immediately after grow")
	}
	v.Set(idx)
	return idx
}

func (g *GPU) freeTexture(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.texs.Unset(id)
}

func (g *GPU) freeRenderTarget(id int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rts.Unset(id)
}

type texture struct {
	gpu       *GPU
	id        int
	pf        driver.PixelFmt
	kind      driver.Kind
	size      driver.Dim3D
	levels    int
	samples   int
	usg       driver.Usage
	destroyed bool
}

// Destroy implements driver.Destroyer.
func (t *texture) Destroy() {
	if t.destroyed {
		panic("memdrv: texture destroyed more than once")
	}
	t.destroyed = true
	t.gpu.freeTexture(t.id)
}

type renderTarget struct {
	gpu       *GPU
	id        int
	param     driver.RenderTargetParam
	destroyed bool
}

// Destroy implements driver.Destroyer.
func (r *renderTarget) Destroy() {
	if r.destroyed {
		panic("memdrv: render target destroyed more than once")
	}
	r.destroyed = true
	r.gpu.freeRenderTarget(r.id)
}
