// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package framegraph

import "math"

// invalidIndex is the sentinel Handle.Index value of a handle that
// names no resource. uint16's max value is used rather than 0
// because 0 is a legitimate index for a resource's first handle.
const invalidIndex = math.MaxUint16

// Handle is an opaque (index, version) pair identifying a specific
// state of a virtual resource.
// Handles are plain values: freely copyable and comparable, but they
// authorize nothing by themselves — a pass's execute callback must
// exchange one for a driver resource through a Resources view.
// The zero value of Handle is a legitimate version of resource 0 and
// is not itself invalid; use invalidHandle (returned by a failed
// Builder call) or Graph.IsValid to test validity.
type Handle struct {
	Index   uint16
	Version uint16
}

// invalidHandle is returned by Builder calls that fail their validity
// check; its index never matches any resource node.
var invalidHandle = Handle{Index: invalidIndex}

// Valid reports whether h is not the sentinel value returned by a
// failed Builder call.
// It does not check whether h is current for its resource node; use
// Graph.IsValid for that.
func (h Handle) Valid() bool { return h.Index != invalidIndex }
