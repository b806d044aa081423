// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import (
	"fmt"
	"io"
)

// ExportGraphviz writes a GraphViz "dot" representation of g to w:
// passes and resources as nodes, reads/writes as edges, aliases as
// dashed edges. Every version 0..current of a resource node gets its
// own node, and a read edge only connects to the version the reading
// pass actually declared — a pass that read a since-superseded
// version draws no edge to later versions. g must have been compiled,
// since the diagram reports each pass's post-cull refCount and each
// resource's readerCount.
//
// If removeCulled is true, passes with refCount == 0 and resources
// with readerCount == 0 are omitted from the diagram entirely rather
// than drawn in their "dead" color.
func (g *Graph) ExportGraphviz(w io.Writer, removeCulled bool) error {
	if g.phase != phaseCompiled {
		panic("framegraph: ExportGraphviz called before Compile")
	}

	bw := &errWriter{w: w}

	fmt.Fprint(bw, "digraph framegraph {\n")
	fmt.Fprint(bw, "rankdir = LR\n")
	fmt.Fprint(bw, "bgcolor = black\n")
	fmt.Fprint(bw, "node [shape=rectangle, fontname=\"helvetica\", fontsize=10]\n\n")

	for i := range g.passes {
		p := &g.passes[i]
		if removeCulled && p.refCount == 0 {
			continue
		}
		color := "darkorange4"
		if p.refCount != 0 {
			color = "darkorange"
		}
		fmt.Fprintf(bw, "\"P%d\" [label=\"%s\\nrefs: %d\\nseq: %d\", style=filled, fillcolor=%s]\n",
			p.id, p.name, p.refCount, p.id, color)
	}

	fmt.Fprint(bw, "\n")
	for i := range g.resources {
		r := &g.resources[i]
		c := &g.concretes[r.concrete]
		if removeCulled && c.readerCount == 0 {
			continue
		}
		color := "skyblue4"
		if c.readerCount != 0 {
			color = "skyblue"
		}
		for version := uint16(0); version <= r.version; version++ {
			fmt.Fprintf(bw, "\"R%d_%d\"[label=\"%s\\n(version: %d)\\nid:%d\\nrefs:%d\", style=filled, fillcolor=%s]\n",
				r.index, version, r.name, version, r.index, c.readerCount, color)
		}
	}

	fmt.Fprint(bw, "\n")
	for i := range g.passes {
		p := &g.passes[i]
		if removeCulled && p.refCount == 0 {
			continue
		}
		fmt.Fprintf(bw, "P%d -> { ", p.id)
		for _, h := range p.writes {
			c := &g.concretes[g.resources[h.Index].concrete]
			if removeCulled && c.readerCount == 0 {
				continue
			}
			fmt.Fprintf(bw, "R%d_%d ", h.Index, h.Version)
		}
		fmt.Fprint(bw, "} [color=red2]\n")
	}

	fmt.Fprint(bw, "\n")
	for i := range g.resources {
		r := &g.resources[i]
		c := &g.concretes[r.concrete]
		if removeCulled && c.readerCount == 0 {
			continue
		}
		for version := uint16(0); version <= r.version; version++ {
			fmt.Fprintf(bw, "R%d_%d -> { ", r.index, version)
			for j := range g.passes {
				p := &g.passes[j]
				if removeCulled && p.refCount == 0 {
					continue
				}
				for _, h := range p.reads {
					if h.Index == r.index && h.Version == version {
						fmt.Fprintf(bw, "P%d ", p.id)
					}
				}
			}
			fmt.Fprint(bw, "} [color=lightgreen]\n")
		}
	}

	if len(g.aliases) > 0 {
		fmt.Fprint(bw, "\n")
		for _, a := range g.aliases {
			fmt.Fprintf(bw, "R%d_%d -> R%d_%d [color=yellow, style=dashed]\n",
				a.from.Index, a.from.Version, a.to.Index, a.to.Version)
		}
	}

	fmt.Fprint(bw, "}\n")
	return bw.err
}

// errWriter lets the sequence of Fprint* calls above ignore individual
// write errors and report only the first one, at the end.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
