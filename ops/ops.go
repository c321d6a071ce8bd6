// Copyright 2025 Cinder ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops exposes the built-in operator catalogue. Importing it (a blank
// import is enough) registers every built-in with the op registry:
//
//	import _ "github.com/cinder-ml/cinder/ops"
//
// The constructors are also available directly for callers that configure
// properties in code instead of by type string.
package ops

import (
	"github.com/cinder-ml/cinder/internal/ops"
)

// AddProperty describes the two-input elementwise sum.
type AddProperty = ops.AddProperty

// DropoutProperty describes inverted dropout with the mask as an invisible
// second return.
type DropoutProperty = ops.DropoutProperty

// FullyConnectedProperty describes the dense affine transform.
type FullyConnectedProperty = ops.FullyConnectedProperty

// ReluProperty describes the rectified linear activation.
type ReluProperty = ops.ReluProperty

// NewAdd returns an unconfigured Add property.
func NewAdd() *AddProperty { return ops.NewAdd() }

// NewDropout returns a Dropout property with the default drop probability.
func NewDropout() *DropoutProperty { return ops.NewDropout() }

// NewFullyConnected returns an unconfigured FullyConnected property.
func NewFullyConnected() *FullyConnectedProperty { return ops.NewFullyConnected() }

// NewRelu returns an unconfigured Relu property.
func NewRelu() *ReluProperty { return ops.NewRelu() }
