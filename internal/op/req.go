package op

// OpReq tells an operator how to perform the write into one output slot.
// The scheduler picks the request per slot from its liveness and
// accumulation analysis; the operator must honor it exactly, since gradient
// summation elsewhere in the graph relies on AddTo semantics.
type OpReq int

const (
	// NullOp skips the slot entirely: do not write anything.
	NullOp OpReq = iota
	// WriteTo writes a fresh result into the provided buffer.
	WriteTo
	// WriteInplace writes a result into a buffer that aliases one of the
	// inputs. The caller has already arranged the aliasing.
	WriteInplace
	// AddTo accumulates the result into the buffer's existing contents.
	AddTo
)

// String returns a human-readable request name.
func (r OpReq) String() string {
	switch r {
	case NullOp:
		return "NullOp"
	case WriteTo:
		return "WriteTo"
	case WriteInplace:
		return "WriteInplace"
	case AddTo:
		return "AddTo"
	default:
		return "Unknown"
	}
}
