// Package op defines the operator abstraction of the Cinder engine: the
// contract by which a named computation declares its input/output shape
// relationships, its memory-reuse opportunities, its auxiliary resource
// needs, and its forward/backward execution behavior, independent of the
// device it runs on.
//
// The contract is split in two:
//
//   - Property is the device-independent factory and metadata object. It
//     owns argument and return naming, shape inference, resource requests,
//     backward-dependency pruning, and in-place reuse hints, and it
//     instantiates device-bound Operators.
//   - Operator is the stateless-per-call execution unit: pure numeric
//     Forward and Backward over pre-allocated tensor handles, with no graph
//     knowledge and no shape inference.
//
// A graph builder holds Properties to run shape inference and construct a
// memory plan before any device execution. At execution time it creates an
// Operator per device context and drives Forward/Backward with buffers the
// external allocator chose according to the property's declared hints.
//
// Concrete operators register a Factory under their type string, and the
// graph layer resolves them by name through Create.
package op
