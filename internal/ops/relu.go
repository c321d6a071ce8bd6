package ops

import (
	"github.com/cinder-ml/cinder/internal/op"
	"github.com/cinder-ml/cinder/internal/tensor"
)

func init() {
	op.Register("Relu", func() op.Property { return NewRelu() })
}

// ReluProperty describes the rectified linear activation: output = max(0, x).
// The output may alias the input, and backward needs only the incoming
// gradient and the forward input.
type ReluProperty struct {
	op.Base
}

// NewRelu returns an unconfigured Relu property.
func NewRelu() *ReluProperty {
	return &ReluProperty{}
}

// InferShape propagates the input shape to the output unchanged.
func (p *ReluProperty) InferShape(inShapes, outShapes []tensor.Shape) (bool, error) {
	if inShapes[0].IsUnknown() {
		return false, nil
	}
	outShapes[0] = inShapes[0].Clone()
	return true, nil
}

// Copy returns an independent duplicate.
func (p *ReluProperty) Copy() op.Property {
	cp := *p
	return &cp
}

// CreateOperator instantiates the CPU kernel.
func (p *ReluProperty) CreateOperator(run op.RunContext) (op.Operator, error) {
	if err := requireCPU(p.TypeString(), run); err != nil {
		return nil, err
	}
	return &reluOp{}, nil
}

// TypeString returns the registry name.
func (p *ReluProperty) TypeString() string {
	return "Relu"
}

// DeclareBackwardDependency needs the output gradient and the forward input;
// the forward output is never read.
func (p *ReluProperty) DeclareBackwardDependency(outGrad, inData, outData []int) []int {
	return []int{outGrad[0], inData[0]}
}

// ForwardInplaceOption hints that the output may reuse the input's memory.
func (p *ReluProperty) ForwardInplaceOption(inData, outData []int) []op.InplacePair {
	return []op.InplacePair{{Output: outData[0], Input: inData[0]}}
}

// BackwardInplaceOption hints that the input gradient may reuse the output
// gradient's memory.
func (p *ReluProperty) BackwardInplaceOption(outGrad, inData, outData, inGrad []int) []op.InplacePair {
	return []op.InplacePair{{Output: inGrad[0], Input: outGrad[0]}}
}

type reluOp struct{}

func (o *reluOp) Forward(ctx *op.Context, inData []*tensor.RawTensor, req []op.OpReq, outData []*tensor.RawTensor) {
	if req[0] == op.NullOp {
		return
	}
	x := inData[0].AsFloat32()
	out := outData[0].AsFloat32()
	for i, v := range x {
		if v > 0 {
			out[i] = v
		} else {
			out[i] = 0
		}
	}
}

func (o *reluOp) Backward(ctx *op.Context, outGrad, inData, outData []*tensor.RawTensor, req []op.OpReq, inGrad []*tensor.RawTensor) {
	if req[0] == op.NullOp {
		return
	}
	og := outGrad[0].AsFloat32()
	x := inData[0].AsFloat32()
	grad := inGrad[0].AsFloat32()

	// Elementwise with aligned indices, so aliasing under WriteInplace is safe.
	switch req[0] {
	case op.WriteTo, op.WriteInplace:
		for i := range grad {
			if x[i] > 0 {
				grad[i] = og[i]
			} else {
				grad[i] = 0
			}
		}
	case op.AddTo:
		for i := range grad {
			if x[i] > 0 {
				grad[i] += og[i]
			}
		}
	}
}
