package ops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinder-ml/cinder/internal/op"
	"github.com/cinder-ml/cinder/internal/tensor"
)

func configuredFC(t *testing.T, hidden string) *FullyConnectedProperty {
	t.Helper()
	p := NewFullyConnected()
	require.NoError(t, p.SetParam("num_hidden", hidden))
	return p
}

func TestFullyConnectedSetParam(t *testing.T) {
	p := NewFullyConnected()

	require.NoError(t, p.SetParam("num_hidden", "16"))
	require.NoError(t, p.SetParam("no_bias", "true"))
	assert.Equal(t, []string{"data", "weight"}, p.ListArguments())

	var perr *op.ParamError
	err := p.SetParam("num_hidden", "zero")
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "FullyConnected", perr.Op)

	err = p.SetParam("num_hidden", "-3")
	require.Error(t, err)

	err = p.SetParam("momentum", "0.9")
	require.ErrorIs(t, err, op.ErrUnknownParam)
}

func TestFullyConnectedInferShapeDerivesWeights(t *testing.T) {
	p := configuredFC(t, "8")

	in := []tensor.Shape{{4, 3}, tensor.Unknown(), tensor.Unknown()}
	out := []tensor.Shape{tensor.Unknown()}
	done, err := p.InferShape(in, out)
	require.NoError(t, err)
	require.True(t, done)

	assert.Equal(t, tensor.Shape{8, 3}, in[1], "weight shape implied by data shape")
	assert.Equal(t, tensor.Shape{8}, in[2], "bias shape implied by num_hidden")
	assert.Equal(t, tensor.Shape{4, 8}, out[0])

	// Re-running with everything known is a no-op.
	done, err = p.InferShape(in, out)
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, tensor.Shape{8, 3}, in[1])
}

func TestFullyConnectedInferShapeInsufficient(t *testing.T) {
	p := configuredFC(t, "8")

	in := []tensor.Shape{tensor.Unknown(), tensor.Unknown(), tensor.Unknown()}
	out := []tensor.Shape{tensor.Unknown()}
	done, err := p.InferShape(in, out)
	require.NoError(t, err)
	assert.False(t, done, "unknown data shape is a retryable insufficiency")
	assert.True(t, in[1].IsUnknown())
}

func TestFullyConnectedInferShapeConflictFatal(t *testing.T) {
	p := configuredFC(t, "8")

	in := []tensor.Shape{{4, 3}, {8, 7}, tensor.Unknown()}
	out := []tensor.Shape{tensor.Unknown()}
	_, err := p.InferShape(in, out)

	var serr *op.ShapeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, "weight", serr.Arg)
	assert.Equal(t, tensor.Shape{8, 3}, serr.Want)
	assert.Equal(t, tensor.Shape{8, 7}, serr.Got)
}

func TestFullyConnectedInferShapeUnconfigured(t *testing.T) {
	p := NewFullyConnected()

	in := []tensor.Shape{{4, 3}, tensor.Unknown(), tensor.Unknown()}
	out := []tensor.Shape{tensor.Unknown()}
	_, err := p.InferShape(in, out)
	require.Error(t, err, "missing num_hidden is a configuration error, not insufficiency")

	var perr *op.ParamError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "num_hidden", perr.Name)
}

func TestFullyConnectedCopyIndependent(t *testing.T) {
	p := configuredFC(t, "8")
	cp := p.Copy()

	require.NoError(t, cp.SetParam("num_hidden", "16"))

	in := []tensor.Shape{{4, 3}, tensor.Unknown(), tensor.Unknown()}
	out := []tensor.Shape{tensor.Unknown()}
	done, err := p.InferShape(in, out)
	require.NoError(t, err)
	require.True(t, done)
	assert.Equal(t, tensor.Shape{4, 8}, out[0], "copy configuration must not leak back")
}

func TestFullyConnectedForwardBackward(t *testing.T) {
	p := configuredFC(t, "2")
	o, err := p.CreateOperator(op.RunContext{Device: tensor.CPU})
	require.NoError(t, err)

	data := newT(t, tensor.Shape{2, 3}, 1, 2, 3, 4, 5, 6)
	weight := newT(t, tensor.Shape{2, 3}, 1, 0, 0, 0, 1, 0)
	bias := newT(t, tensor.Shape{2}, 10, 20)
	out := newT(t, tensor.Shape{2, 2})

	o.Forward(cpuCtx(true), []*tensor.RawTensor{data, weight, bias},
		[]op.OpReq{op.WriteTo}, []*tensor.RawTensor{out})
	assert.Equal(t, []float32{11, 22, 14, 25}, out.AsFloat32())

	og := newT(t, tensor.Shape{2, 2}, 1, 1, 1, 1)
	gData := newT(t, tensor.Shape{2, 3})
	gWeight := newT(t, tensor.Shape{2, 3})
	gBias := newT(t, tensor.Shape{2}, 1, 1) // prior gradient contributions

	granted := grantFor(p.BackwardResource(), 1)
	require.Len(t, granted, 1)
	require.Equal(t, op.Workspace, granted[0].Kind)

	o.Backward(cpuCtx(true, granted...), []*tensor.RawTensor{og},
		[]*tensor.RawTensor{data, weight, bias}, []*tensor.RawTensor{out},
		[]op.OpReq{op.WriteTo, op.WriteTo, op.AddTo},
		[]*tensor.RawTensor{gData, gWeight, gBias})

	assert.Equal(t, []float32{1, 1, 0, 1, 1, 0}, gData.AsFloat32())
	assert.Equal(t, []float32{5, 7, 9, 5, 7, 9}, gWeight.AsFloat32())
	assert.Equal(t, []float32{3, 3}, gBias.AsFloat32(), "bias gradient must accumulate under AddTo")
}

func TestFullyConnectedBackwardDependency(t *testing.T) {
	p := configuredFC(t, "2")

	deps := op.BackwardInputs(p, []string{"og"}, []string{"data", "weight", "bias"}, []string{"out"})
	assert.Equal(t, []string{"og", "data", "weight"}, deps,
		"bias and forward output are not needed by backward")
}

func TestFullyConnectedNoBiasResources(t *testing.T) {
	p := configuredFC(t, "4")
	require.NoError(t, p.SetParam("no_bias", "true"))
	assert.Empty(t, p.BackwardResource())

	require.NoError(t, p.SetParam("no_bias", "false"))
	reqs := p.BackwardResource()
	require.Len(t, reqs, 1)
	assert.Equal(t, op.Workspace, reqs[0].Kind)
	assert.Equal(t, 16, reqs[0].Bytes)
}
