package op

import (
	"fmt"

	"github.com/cinder-ml/cinder/internal/tensor"
)

// InplacePair states that the output at Output may alias the memory of the
// input at Input. Pairs are advisory: the memory planner independently
// verifies liveness and reference counts before committing to any aliasing,
// and a property must never assume a hint was taken.
type InplacePair struct {
	Output int
	Input  int
}

// Property is the device-independent half of an operation: everything
// knowable before committing to a device or to concrete memory. A graph
// builder holds Properties to run shape inference and build a memory plan;
// at execution time it asks the Property to instantiate a device-bound
// Operator.
//
// A Property is configured through repeated SetParam calls and is logically
// read-only afterwards. SetParam and InferShape are driven single-threaded
// per instance; CreateOperator may be called concurrently across device
// contexts since it only reads configuration.
type Property interface {
	// ListArguments returns the ordered names of logical inputs.
	ListArguments() []string

	// ListReturns returns the ordered names of logical outputs.
	ListReturns() []string

	// NumReturns returns the total number of outputs the operator produces.
	NumReturns() int

	// NumVisibleReturns returns how many outputs are exposed to the graph
	// builder for chaining. The visible subset is a prefix of the full
	// return list; the invisible remainder is auxiliary state consumed only
	// by Backward (e.g. a dropout mask).
	NumVisibleReturns() int

	// SetParam configures one string-typed hyperparameter. Unknown names
	// are rejected with a *ParamError. Must be called before inference or
	// instantiation.
	SetParam(name, value string) error

	// InferShape fills in unknown shapes in place. inShapes parallels
	// ListArguments, outShapes parallels ListReturns; an unknown entry has
	// zero dimensions. Known shapes drive derivation of still-unknown
	// inputs where the operation determines them uniquely (a weight shape
	// implied by a known data shape), and every output shape is written.
	//
	// The outcome is two-tier: (false, nil) means not enough information
	// yet, a legitimate try-again-later signal the graph-level driver
	// tolerates until fixpoint; a non-nil error means known shapes are
	// mutually inconsistent, which is fatal to graph construction. Unknown
	// entries that cannot be resolved are left untouched, never guessed.
	InferShape(inShapes, outShapes []tensor.Shape) (bool, error)

	// Copy returns an independently configured duplicate, so graph nodes
	// never alias configuration state.
	Copy() Property

	// CreateOperator instantiates a device-bound Operator honoring the
	// current configuration. It may be called repeatedly (once per device
	// in a multi-device graph) and does not consume the property.
	CreateOperator(run RunContext) (Operator, error)

	// TypeString returns the stable name used for registry lookup and for
	// serializing a graph's operator catalogue.
	TypeString() string

	// ForwardResource declares resources needed during Forward. The
	// allocator grants them in this exact order in Context.Requested.
	ForwardResource() []ResourceRequest

	// BackwardResource declares resources needed during Backward, granted
	// in the same positional fashion.
	BackwardResource() []ResourceRequest

	// DeclareBackwardDependency receives index placeholders for the three
	// backward input categories and returns the subset Backward actually
	// reads. The memory planner uses this to drop buffers the backward
	// pass never touches. The default returns everything; override to
	// reduce peak memory.
	DeclareBackwardDependency(outGrad, inData, outData []int) []int

	// ForwardInplaceOption returns pairs of (output, input) indices whose
	// buffers may alias during Forward. Default is none.
	ForwardInplaceOption(inData, outData []int) []InplacePair

	// BackwardInplaceOption returns pairs of (input-gradient, backward
	// input) indices whose buffers may alias during Backward. Default is
	// none.
	BackwardInplaceOption(outGrad, inData, outData, inGrad []int) []InplacePair
}

// Base supplies the reference defaults for the optional Property methods.
// Concrete properties embed Base and implement InferShape, Copy,
// CreateOperator, and TypeString themselves, overriding the rest as needed.
type Base struct{}

// ListArguments returns the default single input.
func (Base) ListArguments() []string {
	return []string{"data"}
}

// ListReturns returns the default single output.
func (Base) ListReturns() []string {
	return []string{"output"}
}

// NumReturns returns 1. Properties with several outputs override this
// together with ListReturns.
func (Base) NumReturns() int {
	return 1
}

// NumVisibleReturns returns 1, matching the default NumReturns. A property
// that adds invisible auxiliary returns overrides NumReturns and keeps the
// visible count here, or overrides both.
func (Base) NumVisibleReturns() int {
	return 1
}

// SetParam rejects every name: the default property has no hyperparameters.
func (Base) SetParam(name, value string) error {
	return &ParamError{Name: name, Err: ErrUnknownParam}
}

// ForwardResource declares no resources.
func (Base) ForwardResource() []ResourceRequest {
	return nil
}

// BackwardResource declares no resources.
func (Base) BackwardResource() []ResourceRequest {
	return nil
}

// DeclareBackwardDependency returns the full concatenation of outGrad,
// inData, and outData, in that order: by default Backward may read
// everything. Override to let the planner discard unused buffers.
func (Base) DeclareBackwardDependency(outGrad, inData, outData []int) []int {
	deps := make([]int, 0, len(outGrad)+len(inData)+len(outData))
	deps = append(deps, outGrad...)
	deps = append(deps, inData...)
	deps = append(deps, outData...)
	return deps
}

// ForwardInplaceOption permits no aliasing.
func (Base) ForwardInplaceOption(inData, outData []int) []InplacePair {
	return nil
}

// BackwardInplaceOption permits no aliasing.
func (Base) BackwardInplaceOption(outGrad, inData, outData, inGrad []int) []InplacePair {
	return nil
}

// BackwardInputs projects concrete backward-input values through the
// property's DeclareBackwardDependency. It numbers the three categories
// positionally in outGrad/inData/outData order, asks the property which
// indices Backward needs, and returns the matching values in that order.
//
// T is typically *tensor.RawTensor at execution time or a symbolic graph
// reference at planning time; the same dependency logic serves both.
func BackwardInputs[T any](p Property, outGrad, inData, outData []T) []T {
	all := make([]T, 0, len(outGrad)+len(inData)+len(outData))
	all = append(all, outGrad...)
	all = append(all, inData...)
	all = append(all, outData...)

	cnt := 0
	index := func(n int) []int {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = cnt
			cnt++
		}
		return idx
	}
	outGradIdx := index(len(outGrad))
	inDataIdx := index(len(inData))
	outDataIdx := index(len(outData))

	need := p.DeclareBackwardDependency(outGradIdx, inDataIdx, outDataIdx)
	picked := make([]T, 0, len(need))
	for _, i := range need {
		if i < 0 || i >= len(all) {
			panic(fmt.Sprintf("%s: backward dependency index %d out of range [0, %d)", p.TypeString(), i, len(all)))
		}
		picked = append(picked, all[i])
	}
	return picked
}
