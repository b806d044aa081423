// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package framegraph implements a declarative planner for per-frame
// GPU work.
//
// Clients describe a set of rendering passes and the virtual
// resources (textures, render targets) each pass reads and writes
// through a Graph and the Builder handed to each pass's setup
// callback. Compile culls passes whose outputs are never consumed,
// computes the interval during which each resource must exist, and
// Execute drives pass callbacks against a driver.GPU, devirtualizing
// and releasing concrete resources exactly for that interval.
//
// The design follows Yuriy O'Donnell's 2017 GDC talk "FrameGraph:
// Extensible Rendering Architecture in Frostbite": a graph is built
// fresh every frame, compiled once, executed once, and thrown away.
package framegraph
