package ops

import (
	"errors"
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/cinder-ml/cinder/internal/op"
	"github.com/cinder-ml/cinder/internal/tensor"
)

func init() {
	op.Register("FullyConnected", func() op.Property { return NewFullyConnected() })
}

// FullyConnectedProperty describes the dense affine transform
// output = data @ weight^T + bias, with data (batch, in), weight
// (num_hidden, in), and bias (num_hidden). A known data shape resolves the
// weight and bias shapes.
//
// Parameters:
//
//	num_hidden - number of output units, required
//	no_bias    - drop the bias argument, default false
type FullyConnectedProperty struct {
	op.Base

	numHidden int
	noBias    bool
}

// NewFullyConnected returns an unconfigured FullyConnected property.
// num_hidden must be set before shape inference or instantiation.
func NewFullyConnected() *FullyConnectedProperty {
	return &FullyConnectedProperty{}
}

// ListArguments returns data and weight, plus bias unless no_bias is set.
func (p *FullyConnectedProperty) ListArguments() []string {
	if p.noBias {
		return []string{"data", "weight"}
	}
	return []string{"data", "weight", "bias"}
}

// SetParam configures num_hidden or no_bias.
func (p *FullyConnectedProperty) SetParam(name, value string) error {
	switch name {
	case "num_hidden":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			if err == nil {
				err = errors.New("must be a positive integer")
			}
			return &op.ParamError{Op: p.TypeString(), Name: name, Value: value, Err: err}
		}
		p.numHidden = n
	case "no_bias":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return &op.ParamError{Op: p.TypeString(), Name: name, Value: value, Err: err}
		}
		p.noBias = b
	default:
		return &op.ParamError{Op: p.TypeString(), Name: name, Err: op.ErrUnknownParam}
	}
	return nil
}

// InferShape derives weight, bias, and output shapes from a known data shape.
func (p *FullyConnectedProperty) InferShape(inShapes, outShapes []tensor.Shape) (bool, error) {
	if p.numHidden == 0 {
		return false, &op.ParamError{Op: p.TypeString(), Name: "num_hidden",
			Err: errors.New("must be set before shape inference")}
	}

	data := inShapes[0]
	if data.IsUnknown() {
		return false, nil
	}
	if len(data) != 2 {
		return false, fmt.Errorf("%s: argument %q must be rank 2, got %s", p.TypeString(), "data", data)
	}
	batch, in := data[0], data[1]

	wantWeight := tensor.Shape{p.numHidden, in}
	if inShapes[1].IsUnknown() {
		inShapes[1] = wantWeight
	} else if !inShapes[1].Equal(wantWeight) {
		return false, &op.ShapeError{Op: p.TypeString(), Arg: "weight", Want: wantWeight, Got: inShapes[1]}
	}

	if !p.noBias {
		wantBias := tensor.Shape{p.numHidden}
		if inShapes[2].IsUnknown() {
			inShapes[2] = wantBias
		} else if !inShapes[2].Equal(wantBias) {
			return false, &op.ShapeError{Op: p.TypeString(), Arg: "bias", Want: wantBias, Got: inShapes[2]}
		}
	}

	outShapes[0] = tensor.Shape{batch, p.numHidden}
	return true, nil
}

// Copy returns an independent duplicate with the same configuration.
func (p *FullyConnectedProperty) Copy() op.Property {
	cp := *p
	return &cp
}

// CreateOperator instantiates the CPU kernel.
func (p *FullyConnectedProperty) CreateOperator(run op.RunContext) (op.Operator, error) {
	if err := requireCPU(p.TypeString(), run); err != nil {
		return nil, err
	}
	return &fullyConnectedOp{noBias: p.noBias}, nil
}

// TypeString returns the registry name.
func (p *FullyConnectedProperty) TypeString() string {
	return "FullyConnected"
}

// DeclareBackwardDependency needs the output gradient, the forward data, and
// the weight; the bias and the forward output are never read.
func (p *FullyConnectedProperty) DeclareBackwardDependency(outGrad, inData, outData []int) []int {
	return []int{outGrad[0], inData[0], inData[1]}
}

// BackwardResource requests scratch space for accumulating the bias gradient.
func (p *FullyConnectedProperty) BackwardResource() []op.ResourceRequest {
	if p.noBias {
		return nil
	}
	return []op.ResourceRequest{{Kind: op.Workspace, Bytes: p.numHidden * 4}}
}

type fullyConnectedOp struct {
	noBias bool
}

// general views a rank-2 tensor as a blas32 matrix.
func general(t *tensor.RawTensor) blas32.General {
	s := t.Shape()
	return blas32.General{Rows: s[0], Cols: s[1], Stride: s[1], Data: t.AsFloat32()}
}

func (o *fullyConnectedOp) Forward(ctx *op.Context, inData []*tensor.RawTensor, req []op.OpReq, outData []*tensor.RawTensor) {
	if req[0] == op.NullOp {
		return
	}
	data := general(inData[0])
	weight := general(inData[1])
	out := general(outData[0])

	// out = data @ weight^T
	blas32.Gemm(blas.NoTrans, blas.Trans, 1, data, weight, 0, out)

	if !o.noBias {
		bias := inData[2].AsFloat32()
		for row := 0; row < out.Rows; row++ {
			dst := out.Data[row*out.Stride:]
			for j, b := range bias {
				dst[j] += b
			}
		}
	}
}

func (o *fullyConnectedOp) Backward(ctx *op.Context, outGrad, inData, outData []*tensor.RawTensor, req []op.OpReq, inGrad []*tensor.RawTensor) {
	og := general(outGrad[0])
	data := general(inData[0])
	weight := general(inData[1])

	beta := func(r op.OpReq) float32 {
		if r == op.AddTo {
			return 1
		}
		return 0
	}

	// d(data) = og @ weight
	if req[0] != op.NullOp {
		blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, og, weight, beta(req[0]), general(inGrad[0]))
	}

	// d(weight) = og^T @ data
	if req[1] != op.NullOp {
		blas32.Gemm(blas.Trans, blas.NoTrans, 1, og, data, beta(req[1]), general(inGrad[1]))
	}

	// d(bias) = column sums of og, accumulated in the granted workspace.
	if !o.noBias && req[2] != op.NullOp {
		hidden := outGrad[0].Shape()[1]
		ws, err := tensor.View(ctx.Requested[0].Space[:hidden*4], tensor.Shape{hidden}, tensor.Float32, tensor.CPU)
		if err != nil {
			panic(fmt.Sprintf("FullyConnected: workspace grant too small: %v", err))
		}
		scratch := ws.AsFloat32()
		for i := range scratch {
			scratch[i] = 0
		}
		for row := 0; row < og.Rows; row++ {
			g := og.Data[row*og.Stride:]
			for j := range scratch {
				scratch[j] += g[j]
			}
		}
		assign(inGrad[2].AsFloat32(), scratch, req[2])
	}
}
