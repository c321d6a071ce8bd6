// Copyright 2025 Cinder ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package op is the public surface of the Cinder operator abstraction: the
// contract between the device-agnostic symbolic graph and device-specific
// execution.
//
// # Overview
//
// Property is the device-independent factory and metadata object for one
// operation kind: argument/return naming, shape inference, resource
// requests, backward-dependency pruning, and in-place reuse hints. Operator
// is the device-bound execution unit it creates: stateless Forward and
// Backward calls over pre-allocated tensor handles.
//
// # Basic Usage
//
//	prop, err := op.Create("FullyConnected")
//	if err != nil {
//	    ...
//	}
//	if err := prop.SetParam("num_hidden", "128"); err != nil {
//	    ...
//	}
//
//	in := []tensor.Shape{{32, 784}, tensor.Unknown(), tensor.Unknown()}
//	out := []tensor.Shape{tensor.Unknown()}
//	done, err := prop.InferShape(in, out) // fills weight, bias, output shapes
//
//	oper, err := prop.CreateOperator(op.RunContext{Device: tensor.CPU})
//	oper.Forward(ctx, inData, req, outData)
//
// Import the ops package (blank import is enough) to make the built-in
// operator catalogue resolvable through Create.
package op
