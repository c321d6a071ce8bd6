// Copyright 2025 Cinder ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the shape descriptor and tensor handle consumed by
// the Cinder operator layer.
//
// # Overview
//
// A RawTensor is an opaque view over a contiguous, pre-allocated memory
// region plus a Shape. The operator layer never allocates through it: the
// memory planner sizes and places every buffer from inferred shapes before
// execution, and operators only read and write through the view.
//
// A Shape with zero dimensions is "unknown" and is filled in by shape
// inference as the surrounding graph resolves.
//
// # Basic Usage
//
//	x, err := tensor.NewRaw(tensor.Shape{4, 8}, tensor.Float32, tensor.CPU)
//	if err != nil {
//	    ...
//	}
//	copy(x.AsFloat32(), input)
package tensor
