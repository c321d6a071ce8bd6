package ops

import (
	"github.com/cinder-ml/cinder/internal/op"
	"github.com/cinder-ml/cinder/internal/tensor"
)

func init() {
	op.Register("Add", func() op.Property { return NewAdd() })
}

// AddProperty describes the two-input elementwise sum. Both inputs must have
// the same shape; a known shape on either side resolves the other.
type AddProperty struct {
	op.Base
}

// NewAdd returns an unconfigured Add property.
func NewAdd() *AddProperty {
	return &AddProperty{}
}

// ListArguments returns the two summands.
func (p *AddProperty) ListArguments() []string {
	return []string{"lhs", "rhs"}
}

// InferShape requires lhs and rhs to match, propagating a known shape to an
// unknown side and failing hard on a conflict.
func (p *AddProperty) InferShape(inShapes, outShapes []tensor.Shape) (bool, error) {
	lhs, rhs := inShapes[0], inShapes[1]
	switch {
	case lhs.IsUnknown() && rhs.IsUnknown():
		return false, nil
	case lhs.IsUnknown():
		inShapes[0] = rhs.Clone()
	case rhs.IsUnknown():
		inShapes[1] = lhs.Clone()
	case !lhs.Equal(rhs):
		return false, &op.ShapeError{Op: p.TypeString(), Arg: "rhs", Want: lhs, Got: rhs}
	}
	outShapes[0] = inShapes[0].Clone()
	return true, nil
}

// Copy returns an independent duplicate.
func (p *AddProperty) Copy() op.Property {
	cp := *p
	return &cp
}

// CreateOperator instantiates the CPU kernel.
func (p *AddProperty) CreateOperator(run op.RunContext) (op.Operator, error) {
	if err := requireCPU(p.TypeString(), run); err != nil {
		return nil, err
	}
	return &addOp{}, nil
}

// TypeString returns the registry name.
func (p *AddProperty) TypeString() string {
	return "Add"
}

// DeclareBackwardDependency needs only the output gradient: the sum's
// gradient is the identity towards both inputs.
func (p *AddProperty) DeclareBackwardDependency(outGrad, inData, outData []int) []int {
	return []int{outGrad[0]}
}

// ForwardInplaceOption hints that the output may reuse lhs's memory.
func (p *AddProperty) ForwardInplaceOption(inData, outData []int) []op.InplacePair {
	return []op.InplacePair{{Output: outData[0], Input: inData[0]}}
}

// BackwardInplaceOption hints that the lhs gradient may reuse the output
// gradient's memory.
func (p *AddProperty) BackwardInplaceOption(outGrad, inData, outData, inGrad []int) []op.InplacePair {
	return []op.InplacePair{{Output: inGrad[0], Input: outGrad[0]}}
}

type addOp struct{}

func (o *addOp) Forward(ctx *op.Context, inData []*tensor.RawTensor, req []op.OpReq, outData []*tensor.RawTensor) {
	if req[0] == op.NullOp {
		return
	}
	lhs := inData[0].AsFloat32()
	rhs := inData[1].AsFloat32()
	out := outData[0].AsFloat32()
	for i := range out {
		out[i] = lhs[i] + rhs[i]
	}
}

func (o *addOp) Backward(ctx *op.Context, outGrad, inData, outData []*tensor.RawTensor, req []op.OpReq, inGrad []*tensor.RawTensor) {
	og := outGrad[0].AsFloat32()
	for i := 0; i < 2; i++ {
		if req[i] == op.NullOp {
			continue
		}
		assign(inGrad[i].AsFloat32(), og, req[i])
	}
}
