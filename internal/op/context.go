package op

import "github.com/cinder-ml/cinder/internal/tensor"

// RunContext identifies the device and stream a call executes on. The stream
// handle is opaque and owned by the execution engine; its lifetime is the
// duration of the call.
type RunContext struct {
	Device tensor.Device
	Stream any
}

// Context bundles everything an operator may consult during a single Forward
// or Backward call. The caller builds a fresh Context per invocation; the
// operator must not retain it past the call.
//
// Requested holds the resources granted for this call, in the exact order the
// property declared them via ForwardResource or BackwardResource.
type Context struct {
	// Train is true during the training phase, false during inference.
	// Operators like dropout behave differently between the two.
	Train     bool
	Run       RunContext
	Requested []Resource
}
