// Package ops implements the built-in operator properties of the Cinder
// engine. Each operator lives in its own file and registers itself with the
// op registry from init, so importing this package (usually blank) makes the
// full catalogue resolvable by type string:
//
//   - Relu: elementwise rectified linear activation
//   - Add: two-input elementwise sum
//   - FullyConnected: dense affine transform with inferred weight shapes
//   - Dropout: stochastic masking with the mask as an invisible return
//
// Only the CPU reference kernels live here; other devices plug in through
// their own CreateOperator paths.
package ops
