package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinder-ml/cinder/internal/op"
	"github.com/cinder-ml/cinder/internal/tensor"
)

func TestDropoutReturns(t *testing.T) {
	p := NewDropout()

	assert.Equal(t, 2, p.NumReturns())
	assert.Equal(t, 1, p.NumVisibleReturns())
	assert.Equal(t, []string{"output", "mask"}, p.ListReturns(),
		"the visible subset must be a prefix of the full return list")
}

func TestDropoutSetParam(t *testing.T) {
	p := NewDropout()

	require.NoError(t, p.SetParam("p", "0.25"))
	require.Error(t, p.SetParam("p", "1.5"))
	require.Error(t, p.SetParam("p", "lots"))
	require.ErrorIs(t, p.SetParam("rate", "0.5"), op.ErrUnknownParam)
}

func TestDropoutInferShape(t *testing.T) {
	p := NewDropout()

	in := []tensor.Shape{{4, 8}}
	out := []tensor.Shape{tensor.Unknown(), tensor.Unknown()}
	done, err := p.InferShape(in, out)
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, tensor.Shape{4, 8}, out[0])
	assert.Equal(t, tensor.Shape{4, 8}, out[1], "mask shares the data shape")
}

func TestDropoutForwardTraining(t *testing.T) {
	p := NewDropout()
	require.NoError(t, p.SetParam("p", "0.5"))
	o, err := p.CreateOperator(op.RunContext{Device: tensor.CPU})
	require.NoError(t, err)

	reqs := p.ForwardResource()
	require.Len(t, reqs, 1)
	require.Equal(t, op.Random, reqs[0].Kind)

	x := newT(t, tensor.Shape{64})
	xs := x.AsFloat32()
	for i := range xs {
		xs[i] = float32(i + 1)
	}
	out := newT(t, tensor.Shape{64})
	mask := newT(t, tensor.Shape{64})

	ctx := cpuCtx(true, grantFor(reqs, 7)...)
	o.Forward(ctx, []*tensor.RawTensor{x}, []op.OpReq{op.WriteTo, op.WriteTo},
		[]*tensor.RawTensor{out, mask})

	dropped := 0
	for i, m := range mask.AsFloat32() {
		switch m {
		case 0:
			dropped++
			assert.Zero(t, out.AsFloat32()[i])
		case 2: // 1/(1-0.5)
			assert.Equal(t, 2*x.AsFloat32()[i], out.AsFloat32()[i])
		default:
			t.Fatalf("mask[%d] = %v, want 0 or 2", i, m)
		}
	}
	assert.Greater(t, dropped, 0, "with p=0.5 over 64 elements some should drop")
	assert.Less(t, dropped, 64)
}

func TestDropoutForwardInference(t *testing.T) {
	p := NewDropout()
	o, err := p.CreateOperator(op.RunContext{Device: tensor.CPU})
	require.NoError(t, err)

	x := newT(t, tensor.Shape{4}, 1, 2, 3, 4)
	out := newT(t, tensor.Shape{4})
	mask := newT(t, tensor.Shape{4})

	// No random grant needed outside training.
	o.Forward(cpuCtx(false), []*tensor.RawTensor{x}, []op.OpReq{op.WriteTo, op.WriteTo},
		[]*tensor.RawTensor{out, mask})
	assert.Equal(t, []float32{1, 2, 3, 4}, out.AsFloat32())
	assert.Equal(t, []float32{1, 1, 1, 1}, mask.AsFloat32())
}

// The in-place hint is advisory: results must match whether the engine
// honored it or ignored it.
func TestDropoutInplaceHintOptional(t *testing.T) {
	p := NewDropout()
	require.NoError(t, p.SetParam("p", "0.5"))
	o, err := p.CreateOperator(op.RunContext{Device: tensor.CPU})
	require.NoError(t, err)

	pairs := p.ForwardInplaceOption([]int{0}, []int{1, 2})
	require.Equal(t, []op.InplacePair{{Output: 1, Input: 0}}, pairs)

	vals := []float32{1, 2, 3, 4, 5, 6, 7, 8}

	// Ignored: separate output buffer.
	x1 := newT(t, tensor.Shape{8}, vals...)
	out1 := newT(t, tensor.Shape{8})
	mask1 := newT(t, tensor.Shape{8})
	o.Forward(cpuCtx(true, grantFor(p.ForwardResource(), 42)...),
		[]*tensor.RawTensor{x1}, []op.OpReq{op.WriteTo, op.WriteTo},
		[]*tensor.RawTensor{out1, mask1})

	// Honored: output is a view over the input buffer, same seed.
	x2 := newT(t, tensor.Shape{8}, vals...)
	out2, err := tensor.View(x2.Data(), tensor.Shape{8}, tensor.Float32, tensor.CPU)
	require.NoError(t, err)
	mask2 := newT(t, tensor.Shape{8})
	o.Forward(cpuCtx(true, grantFor(p.ForwardResource(), 42)...),
		[]*tensor.RawTensor{x2}, []op.OpReq{op.WriteInplace, op.WriteTo},
		[]*tensor.RawTensor{out2, mask2})

	assert.Equal(t, out1.AsFloat32(), out2.AsFloat32())
	assert.Equal(t, mask1.AsFloat32(), mask2.AsFloat32())
}

// Backward replays the mask through outData instead of recomputing
// randomness or keeping operator state.
func TestDropoutBackwardUsesSavedMask(t *testing.T) {
	p := NewDropout()
	o, err := p.CreateOperator(op.RunContext{Device: tensor.CPU})
	require.NoError(t, err)

	out := newT(t, tensor.Shape{4})
	mask := newT(t, tensor.Shape{4}, 2, 0, 2, 0)
	og := newT(t, tensor.Shape{4}, 1, 1, 1, 1)
	gx := newT(t, tensor.Shape{4})

	o.Backward(cpuCtx(true), []*tensor.RawTensor{og}, nil,
		[]*tensor.RawTensor{out, mask}, []op.OpReq{op.WriteTo}, []*tensor.RawTensor{gx})
	assert.Equal(t, []float32{2, 0, 2, 0}, gx.AsFloat32())

	// And accumulates under AddTo.
	o.Backward(cpuCtx(true), []*tensor.RawTensor{og}, nil,
		[]*tensor.RawTensor{out, mask}, []op.OpReq{op.AddTo}, []*tensor.RawTensor{gx})
	assert.Equal(t, []float32{4, 0, 4, 0}, gx.AsFloat32())
}

func TestDropoutBackwardDependency(t *testing.T) {
	p := NewDropout()

	deps := op.BackwardInputs(p, []string{"og"}, []string{"x"}, []string{"out", "mask"})
	assert.Equal(t, []string{"og", "mask"}, deps,
		"backward needs the mask, not the data or visible output")
}
