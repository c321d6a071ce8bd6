// Copyright 2025 Cinder ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package op

import (
	"github.com/cinder-ml/cinder/internal/op"
)

// Type aliases for public API

// OpReq tells an operator how to perform the write into one output slot.
type OpReq = op.OpReq

// Request modes.
const (
	NullOp       OpReq = op.NullOp
	WriteTo      OpReq = op.WriteTo
	WriteInplace OpReq = op.WriteInplace
	AddTo        OpReq = op.AddTo
)

// Context bundles everything an operator may consult during one call.
type Context = op.Context

// RunContext identifies the device and stream a call executes on.
type RunContext = op.RunContext

// ResourceKind identifies what kind of auxiliary resource an operator needs.
type ResourceKind = op.ResourceKind

// Resource kinds.
const (
	Workspace ResourceKind = op.Workspace
	Random    ResourceKind = op.Random
)

// ResourceRequest declares one auxiliary resource need.
type ResourceRequest = op.ResourceRequest

// Resource is a granted resource handle, borrowed for one call.
type Resource = op.Resource

// InplacePair is an advisory (output, input) aliasing hint.
type InplacePair = op.InplacePair

// Operator is the device-bound forward/backward execution contract.
type Operator = op.Operator

// Property is the device-independent metadata and factory contract.
type Property = op.Property

// Base supplies the default implementations of the optional Property
// methods; concrete properties embed it.
type Base = op.Base

// Factory constructs a new, unconfigured Property.
type Factory = op.Factory

// Errors.
var (
	ErrUnknownParam      = op.ErrUnknownParam
	ErrUnknownOperator   = op.ErrUnknownOperator
	ErrUnsupportedDevice = op.ErrUnsupportedDevice
)

// ParamError reports a malformed or unknown hyperparameter.
type ParamError = op.ParamError

// ShapeError reports mutually inconsistent known shapes during inference.
type ShapeError = op.ShapeError

// Register adds a property factory under its type string.
func Register(name string, f Factory) {
	op.Register(name, f)
}

// Create resolves a type name to a newly constructed, unconfigured Property.
func Create(name string) (Property, error) {
	return op.Create(name)
}

// Types returns the sorted names of all registered operators.
func Types() []string {
	return op.Types()
}

// BackwardInputs projects concrete backward-input values through a
// property's DeclareBackwardDependency; it works uniformly over raw tensors
// and symbolic references.
func BackwardInputs[T any](p Property, outGrad, inData, outData []T) []T {
	return op.BackwardInputs(p, outGrad, inData, outData)
}
