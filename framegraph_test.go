// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireath/framegraph/driver"
	"github.com/vireath/framegraph/driver/memdrv"
)

func testDesc() ResourceDesc {
	return ResourceDesc{
		Kind:    driver.Tex2D,
		Dim3D:   driver.Dim3D{Width: 64, Height: 64, Depth: 1},
		Levels:  1,
		Samples: 1,
		Format:  driver.RGBA8un,
	}
}

func testGPU(t *testing.T) *memdrv.GPU {
	d := &memdrv.Driver{}
	gpu, err := d.Open()
	require.NoError(t, err)
	return gpu.(*memdrv.GPU)
}

type passData struct {
	out Handle
	ran bool
}

// TestTrivialCull: a pass whose only output is never read by anything
// must be culled, and its execute callback must never run.
func TestTrivialCull(t *testing.T) {
	g := New()
	p := AddPass(g, "orphan", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("orphan", testDesc())
		d.out = b.Write(d.out)
	}, func(d *passData, _ *Resources, _ driver.GPU) {
		d.ran = true
	})

	g.Compile()
	assert.Equal(t, 0, g.passes[0].refCount, "orphan pass should have been culled")

	gpu := testGPU(t)
	require.NoError(t, g.Execute(gpu))
	assert.False(t, p.ran, "culled pass must not execute")
	assert.Equal(t, 0, gpu.LiveTextures())
}

// TestSinglePresent: Present acts as a reader that keeps its
// producing pass alive, and the resource is released by the end of
// the frame.
func TestSinglePresent(t *testing.T) {
	g := New()
	p := AddPass(g, "draw", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("final", testDesc())
		d.out = b.Write(d.out)
	}, func(d *passData, _ *Resources, _ driver.GPU) {
		d.ran = true
	})
	g.Present(p.out)

	g.Compile()
	require.NotZero(t, g.passes[0].refCount, "present should keep the producer alive")

	gpu := testGPU(t)
	require.NoError(t, g.Execute(gpu))
	assert.True(t, p.ran)
	assert.Equal(t, 0, gpu.LiveTextures(), "resource must be released by end of frame")
}

// TestChainedDependency: A produces R0, B reads R0 and produces R1,
// and R1 is presented. A and B must survive the cull with a nonzero
// refCount; the present pass has no writes, so its refCount is 0.
func TestChainedDependency(t *testing.T) {
	g := New()

	var order []string

	a := AddPass(g, "A", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("R0", testDesc())
		d.out = b.Write(d.out)
	}, func(d *passData, _ *Resources, _ driver.GPU) {
		order = append(order, "A")
	})

	type bData struct {
		in, out Handle
	}
	b := AddPass(g, "B", func(bd *Builder, d *bData) {
		d.in = bd.Read(a.out)
		d.out = bd.CreateTexture("R1", testDesc())
		d.out = bd.Write(d.out)
	}, func(d *bData, _ *Resources, _ driver.GPU) {
		order = append(order, "B")
	})

	g.Present(b.out)
	g.Compile()

	for i := range g.passes[:2] {
		assert.NotZero(t, g.passes[i].refCount, "pass %q should survive", g.passes[i].name)
	}
	assert.Zero(t, g.passes[2].refCount, "the present pass has no writes to seed a refcount from")

	gpu := testGPU(t)
	require.NoError(t, g.Execute(gpu))
	assert.Equal(t, []string{"A", "B"}, order, "execution must follow declaration order")
	assert.Equal(t, 0, gpu.LiveTextures())
}

// TestWriteAfterWriteStaleHandle: once a handle has been superseded by
// a later Write, using the stale handle for a further Write must fail
// (logged, not panicked) and hand back an invalid handle.
func TestWriteAfterWriteStaleHandle(t *testing.T) {
	g := New()

	type data struct {
		v0, v1, stale Handle
	}
	AddPass(g, "writer", func(b *Builder, d *data) {
		d.v0 = b.CreateTexture("R0", testDesc())
		d.v1 = b.Write(d.v0)
		d.stale = b.Write(d.v0) // d.v0 is now stale: this must fail.
	}, func(*data, *Resources, driver.GPU) {})

	d := g.passes[0].executor.(*passExecutorFor[data])
	assert.True(t, d.data.v1.Valid())
	assert.False(t, d.data.stale.Valid(), "write through a stale handle must return invalidHandle")
}

// TestAlias: after MoveResource(from, to), any pass that reads to
// observes the driver resource produced for from.
func TestAlias(t *testing.T) {
	g := New()

	src := AddPass(g, "producer", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("src", testDesc())
		d.out = b.Write(d.out)
	}, func(*passData, *Resources, driver.GPU) {})

	dst := AddPass(g, "consumer", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("dst", testDesc())
		d.out = b.Write(d.out)
	}, func(*passData, *Resources, driver.GPU) {})

	g.MoveResource(src.out, dst.out)
	g.Present(dst.out)

	g.Compile()

	srcConcrete := g.resources[src.out.Index].concrete
	dstConcrete := g.resources[dst.out.Index].concrete
	assert.Equal(t, srcConcrete, dstConcrete, "aliased resource must share the source's concrete record")

	gpu := testGPU(t)
	require.NoError(t, g.Execute(gpu))
	assert.Equal(t, 0, gpu.LiveTextures())
}

// TestDoubleCull: culling B (because its sole output is unread) drops
// B's refcount on A's output to zero, which must in turn cull A.
func TestDoubleCull(t *testing.T) {
	g := New()

	a := AddPass(g, "A", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("R0", testDesc())
		d.out = b.Write(d.out)
	}, func(d *passData, _ *Resources, _ driver.GPU) {
		d.ran = true
	})

	type bData struct {
		in, out Handle
		ran     bool
	}
	AddPass(g, "B", func(bd *Builder, d *bData) {
		d.in = bd.Read(a.out)
		d.out = bd.CreateTexture("R1", testDesc())
		d.out = bd.Write(d.out)
	}, func(d *bData, _ *Resources, _ driver.GPU) {
		d.ran = true
	})
	// R1 is never read or presented: B should cull, and A should
	// cascade-cull behind it.

	g.Compile()
	assert.Equal(t, 0, g.passes[0].refCount, "A should have been transitively culled")
	assert.Equal(t, 0, g.passes[1].refCount, "B should have been culled")

	gpu := testGPU(t)
	require.NoError(t, g.Execute(gpu))
	assert.False(t, a.ran)
	assert.Equal(t, 0, gpu.LiveTextures())
}

// TestMultiWriterPanics: aliasing two resources that are each written
// by a different pass makes both writes land on the same concrete
// record, violating the single-writer invariant; Compile must panic.
func TestMultiWriterPanics(t *testing.T) {
	g := New()

	a := AddPass(g, "A", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("R0", testDesc())
		d.out = b.Write(d.out)
	}, func(*passData, *Resources, driver.GPU) {})

	bb := AddPass(g, "B", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("R1", testDesc())
		d.out = b.Write(d.out)
	}, func(*passData, *Resources, driver.GPU) {})

	g.MoveResource(a.out, bb.out)

	assert.Panics(t, func() { g.Compile() })
}

// TestGraphResetsAfterExecute: Execute leaves the Graph empty and in
// the setup phase, ready to be reused for another frame.
func TestGraphResetsAfterExecute(t *testing.T) {
	g := New()
	p := AddPass(g, "draw", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("final", testDesc())
		d.out = b.Write(d.out)
	}, func(*passData, *Resources, driver.GPU) {})
	g.Present(p.out)
	g.Compile()

	gpu := testGPU(t)
	require.NoError(t, g.Execute(gpu))

	assert.Equal(t, phaseSetup, g.phase)
	assert.Empty(t, g.passes)
	assert.Empty(t, g.resources)
	assert.Empty(t, g.concretes)
}

// TestExportGraphviz sanity-checks the emitted dot text without
// over-specifying formatting.
func TestExportGraphviz(t *testing.T) {
	g := New()
	p := AddPass(g, "draw", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("final", testDesc())
		d.out = b.Write(d.out)
	}, func(*passData, *Resources, driver.GPU) {})
	g.Present(p.out)
	g.Compile()

	var buf bytes.Buffer
	require.NoError(t, g.ExportGraphviz(&buf, false))

	out := buf.String()
	assert.Contains(t, out, "digraph framegraph")
	assert.Contains(t, out, "\"P0\"")
	assert.Contains(t, out, "R0_0")
}

// TestExecuteWithoutCompilePanics guards the lifecycle invariant that
// Execute requires a prior Compile.
func TestExecuteWithoutCompilePanics(t *testing.T) {
	g := New()
	assert.Panics(t, func() {
		g.Execute(testGPU(t))
	})
}

// TestAddPassOutsideSetupPanics guards the lifecycle invariant that
// passes can only be added during setup: AddPass after Compile panics.
func TestAddPassOutsideSetupPanics(t *testing.T) {
	g := New()
	p := AddPass(g, "draw", func(b *Builder, d *passData) {
		d.out = b.CreateTexture("final", testDesc())
		d.out = b.Write(d.out)
	}, func(*passData, *Resources, driver.GPU) {})
	g.Present(p.out)
	g.Compile()

	assert.Panics(t, func() {
		AddPass(g, "late", func(b *Builder, d *passData) {}, func(*passData, *Resources, driver.GPU) {})
	})
}
