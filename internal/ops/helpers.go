package ops

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"

	"github.com/cinder-ml/cinder/internal/op"
	"github.com/cinder-ml/cinder/internal/tensor"
)

// vec wraps a float32 slice as a unit-stride blas32 vector.
func vec(x []float32) blas32.Vector {
	return blas32.Vector{N: len(x), Inc: 1, Data: x}
}

// assign writes src into dst according to the request mode. The slices must
// have equal length; src and dst may alias under WriteInplace.
func assign(dst, src []float32, req op.OpReq) {
	switch req {
	case op.NullOp:
	case op.WriteTo, op.WriteInplace:
		copy(dst, src)
	case op.AddTo:
		blas32.Axpy(1, vec(src), vec(dst))
	default:
		panic(fmt.Sprintf("invalid request mode %v", req))
	}
}

// requireCPU rejects operator instantiation on anything but the CPU
// reference path.
func requireCPU(typeString string, run op.RunContext) error {
	if run.Device != tensor.CPU {
		return fmt.Errorf("%s: %w: %v", typeString, op.ErrUnsupportedDevice, run.Device)
	}
	return nil
}
