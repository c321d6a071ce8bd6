package ops

import (
	"errors"
	"strconv"

	"github.com/cinder-ml/cinder/internal/op"
	"github.com/cinder-ml/cinder/internal/tensor"
)

func init() {
	op.Register("Dropout", func() op.Property { return NewDropout() })
}

// DropoutProperty describes inverted dropout: during training each element is
// zeroed with probability p and the survivors are scaled by 1/(1-p).
//
// The operator has two returns but only one is visible to the graph builder:
// the mask is an invisible second output, threaded back into Backward through
// outData so the backward pass replays exactly which elements were dropped
// without the operator keeping private state or re-running the random stream.
//
// Parameters:
//
//	p - drop probability in [0, 1), default 0.5
type DropoutProperty struct {
	op.Base

	p float64
}

// NewDropout returns a Dropout property with the default drop probability.
func NewDropout() *DropoutProperty {
	return &DropoutProperty{p: 0.5}
}

// ListReturns returns the visible output followed by the invisible mask.
func (p *DropoutProperty) ListReturns() []string {
	return []string{"output", "mask"}
}

// NumReturns counts the mask.
func (p *DropoutProperty) NumReturns() int {
	return 2
}

// NumVisibleReturns exposes only the masked data for graph chaining.
func (p *DropoutProperty) NumVisibleReturns() int {
	return 1
}

// SetParam configures the drop probability.
func (p *DropoutProperty) SetParam(name, value string) error {
	switch name {
	case "p":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 || v >= 1 {
			if err == nil {
				err = errors.New("must be in [0, 1)")
			}
			return &op.ParamError{Op: p.TypeString(), Name: name, Value: value, Err: err}
		}
		p.p = v
	default:
		return &op.ParamError{Op: p.TypeString(), Name: name, Err: op.ErrUnknownParam}
	}
	return nil
}

// InferShape gives both returns the input's shape.
func (p *DropoutProperty) InferShape(inShapes, outShapes []tensor.Shape) (bool, error) {
	if inShapes[0].IsUnknown() {
		return false, nil
	}
	outShapes[0] = inShapes[0].Clone()
	outShapes[1] = inShapes[0].Clone()
	return true, nil
}

// Copy returns an independent duplicate with the same configuration.
func (p *DropoutProperty) Copy() op.Property {
	cp := *p
	return &cp
}

// CreateOperator instantiates the CPU kernel.
func (p *DropoutProperty) CreateOperator(run op.RunContext) (op.Operator, error) {
	if err := requireCPU(p.TypeString(), run); err != nil {
		return nil, err
	}
	return &dropoutOp{p: float32(p.p)}, nil
}

// TypeString returns the registry name.
func (p *DropoutProperty) TypeString() string {
	return "Dropout"
}

// ForwardResource requests the random stream that samples the mask.
func (p *DropoutProperty) ForwardResource() []op.ResourceRequest {
	return []op.ResourceRequest{{Kind: op.Random}}
}

// DeclareBackwardDependency needs the output gradient and the saved mask;
// neither the forward input nor the visible output is read.
func (p *DropoutProperty) DeclareBackwardDependency(outGrad, inData, outData []int) []int {
	return []int{outGrad[0], outData[1]}
}

// ForwardInplaceOption hints that the visible output may reuse the input's
// memory. The mask never aliases anything.
func (p *DropoutProperty) ForwardInplaceOption(inData, outData []int) []op.InplacePair {
	return []op.InplacePair{{Output: outData[0], Input: inData[0]}}
}

type dropoutOp struct {
	p float32
}

func (o *dropoutOp) Forward(ctx *op.Context, inData []*tensor.RawTensor, req []op.OpReq, outData []*tensor.RawTensor) {
	x := inData[0].AsFloat32()
	out := outData[0].AsFloat32()

	if !ctx.Train {
		// Inference: identity, mask all ones.
		if req[1] != op.NullOp {
			mask := outData[1].AsFloat32()
			for i := range mask {
				mask[i] = 1
			}
		}
		if req[0] != op.NullOp {
			copy(out, x)
		}
		return
	}

	// The mask is sampled even when its slot is NullOp: the visible output
	// depends on it. Only the write into the mask buffer is skipped.
	var local []float32
	if req[1] != op.NullOp {
		local = outData[1].AsFloat32()
	} else {
		local = make([]float32, len(x))
	}
	rng := ctx.Requested[0].Rand
	scale := 1 / (1 - o.p)
	for i := range local {
		if rng.Float32() < o.p {
			local[i] = 0
		} else {
			local[i] = scale
		}
	}
	if req[0] == op.NullOp {
		return
	}
	// Reading x[i] before writing out[i] keeps the aliased case correct.
	for i := range out {
		out[i] = x[i] * local[i]
	}
}

func (o *dropoutOp) Backward(ctx *op.Context, outGrad, inData, outData []*tensor.RawTensor, req []op.OpReq, inGrad []*tensor.RawTensor) {
	if req[0] == op.NullOp {
		return
	}
	og := outGrad[0].AsFloat32()
	mask := outData[1].AsFloat32()
	grad := inGrad[0].AsFloat32()

	switch req[0] {
	case op.WriteTo, op.WriteInplace:
		for i := range grad {
			grad[i] = og[i] * mask[i]
		}
	case op.AddTo:
		for i := range grad {
			grad[i] += og[i] * mask[i]
		}
	}
}
