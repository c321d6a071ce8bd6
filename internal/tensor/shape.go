package tensor

import (
	"fmt"
	"strings"
)

// Shape represents the dimensions of a tensor.
//
// A Shape with zero dimensions is "unknown": shape inference has not yet
// determined it. Inference fills unknown shapes in place as the surrounding
// graph resolves.
type Shape []int

// Unknown returns a shape that inference still has to fill in.
func Unknown() Shape {
	return nil
}

// IsUnknown reports whether the shape has not been determined yet.
func (s Shape) IsUnknown() bool {
	return len(s) == 0
}

// NumElements returns the total number of elements in the tensor.
// An unknown shape has zero elements.
func (s Shape) NumElements() int {
	if len(s) == 0 {
		return 0
	}
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that the shape is known and all dimensions are positive.
func (s Shape) Validate() error {
	if s.IsUnknown() {
		return fmt.Errorf("shape is unknown")
	}
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape.
// Strides define memory layout: stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// String renders the shape as "(4, 8)", or "(?)" when unknown.
func (s Shape) String() string {
	if s.IsUnknown() {
		return "(?)"
	}
	parts := make([]string, len(s))
	for i, dim := range s {
		parts[i] = fmt.Sprintf("%d", dim)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
