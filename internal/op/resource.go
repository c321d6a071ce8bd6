package op

import "math/rand"

// ResourceKind identifies what kind of auxiliary resource an operator needs.
type ResourceKind int

const (
	// Workspace is scratch memory used within a single call.
	Workspace ResourceKind = iota
	// Random is a seeded pseudo-random stream.
	Random
)

// String returns a human-readable kind name.
func (k ResourceKind) String() string {
	switch k {
	case Workspace:
		return "Workspace"
	case Random:
		return "Random"
	default:
		return "Unknown"
	}
}

// ResourceRequest declares one auxiliary resource an operator needs during a
// call. The allocator resolves requests into Resources before the call and
// grants them positionally in declaration order.
type ResourceRequest struct {
	Kind ResourceKind
	// Bytes is the workspace size. Ignored for Random requests.
	Bytes int
}

// Resource is a granted resource handle. The allocator owns it; the operator
// borrows it for the duration of one call and must not retain it.
type Resource struct {
	Kind ResourceKind
	// Space is the scratch buffer for Workspace grants.
	Space []byte
	// Rand is the pseudo-random stream for Random grants.
	Rand *rand.Rand
}
