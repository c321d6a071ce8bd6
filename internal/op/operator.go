package op

import "github.com/cinder-ml/cinder/internal/tensor"

// Operator is the device-bound execution contract: pure numeric forward and
// backward computation over fully shaped, pre-allocated buffers.
//
// An Operator is created from a Property for a specific device and may be
// reused across many graph nodes sharing the same operation. It holds no
// graph knowledge and no cross-call state: auxiliary forward state a backward
// pass needs (a dropout mask, say) travels as an extra invisible output
// tensor, never as hidden operator fields. This is what lets the execution
// engine reorder and parallelize calls freely, tracking buffer dependencies
// externally.
//
// Failures inside Forward or Backward are unrecoverable: there is no partial
// result contract and no internal retry, so contract violations panic and the
// execution engine aborts the run.
type Operator interface {
	// Forward computes outputs from inputs, writing each output slot per the
	// matching req entry. The caller fixed every shape through a prior
	// inference pass and allocated every buffer. req entries are restricted
	// to WriteTo and WriteInplace: a pure forward pass never accumulates.
	//
	// Forward must not reallocate, resize, or retain any handle.
	Forward(ctx *Context, inData []*tensor.RawTensor, req []OpReq, outData []*tensor.RawTensor)

	// Backward computes input gradients from output gradients and saved
	// forward state, writing into inGrad per the matching req entry.
	//
	// Convention:
	//
	//	len(outGrad) == Property.NumVisibleReturns()
	//	len(outData) == Property.NumReturns()
	//
	// outData replays the forward call's outputs, including invisible
	// auxiliary returns. req may additionally carry AddTo, used when an
	// input feeds multiple graph edges and its gradient accumulates
	// contributions instead of overwriting.
	Backward(ctx *Context, outGrad, inData, outData []*tensor.RawTensor, req []OpReq, inGrad []*tensor.RawTensor)
}
