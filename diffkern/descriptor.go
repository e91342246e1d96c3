// Package diffkern derives covariances between observations of a latent
// function and observations of its partial derivatives, for any
// pointwise-differentiable base kernel (Solak et al., "Derivative
// observations in Gaussian process models of dynamic systems", 2003).
package diffkern

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/kern"
)

// Unused records an empty derivative-dimension slot.
const Unused = -1

// Descriptor states how many partial derivatives an observation carries
// (0, 1 or 2) and the input dimensions they were taken in. Unused slots
// hold -1.
type Descriptor struct {
	Count  int
	First  int
	Second int
}

func (d Descriptor) validate(op string, inputDim int) error {
	if d.Count < 0 || d.Count > 2 {
		return &kern.ConfigError{Op: op, Reason: fmt.Sprintf("derivative order %d, only orders 0 to 2 are supported", d.Count)}
	}
	if d.Count >= 1 && (d.First < 0 || d.First >= inputDim) {
		return &kern.ShapeError{Op: op, Axis: "first derivative dimension", Got: d.First, Want: inputDim}
	}
	if d.Count == 2 && (d.Second < 0 || d.Second >= inputDim) {
		return &kern.ShapeError{Op: op, Axis: "second derivative dimension", Got: d.Second, Want: inputDim}
	}
	return nil
}

// ParseDescriptors reads the derivative-information wire format: one row
// per observation, column 0 the derivative count, columns 1..2 the
// dimensions differentiated against, -1 (or absent) marking unused
// slots.
func ParseDescriptors(info *mat.Dense, inputDim int) ([]Descriptor, error) {
	rows, cols := info.Dims()
	if cols < 1 || cols > 3 {
		return nil, &kern.ShapeError{Op: "derivative info", Axis: "columns", Got: cols, Want: 3}
	}
	out := make([]Descriptor, rows)
	for i := 0; i < rows; i++ {
		d := Descriptor{Count: int(info.At(i, 0)), First: Unused, Second: Unused}
		if cols > 1 {
			d.First = int(info.At(i, 1))
		}
		if cols > 2 {
			d.Second = int(info.At(i, 2))
		}
		// The order range is checked before slot availability so an
		// unsupported order is always a ConfigError, however narrow the
		// wire matrix.
		if d.Count > 2 {
			return nil, &kern.ConfigError{Op: "derivative info", Reason: fmt.Sprintf("derivative order %d, only orders 0 to 2 are supported", d.Count)}
		}
		if d.Count > cols-1 {
			return nil, &kern.ShapeError{Op: "derivative info", Axis: "dimension slots", Got: cols - 1, Want: d.Count}
		}
		if err := d.validate("derivative info", inputDim); err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

// maskToDescriptor decodes the dynamic one-hot-count encoding: one flag
// per spatial dimension counting how many times a derivative was taken
// there. A total above two is rejected rather than truncated.
func maskToDescriptor(mask []float64) (Descriptor, error) {
	d := Descriptor{First: Unused, Second: Unused}
	for dim, f := range mask {
		c := int(f)
		if c < 0 || float64(c) != f {
			return Descriptor{}, &kern.ConfigError{
				Op:     "derivative mask",
				Reason: fmt.Sprintf("flag %g in dimension %d is not a non-negative integer", f, dim),
			}
		}
		for ; c > 0; c-- {
			switch {
			case d.First == Unused:
				d.First = dim
			case d.Second == Unused:
				d.Second = dim
			default:
				return Descriptor{}, &kern.ConfigError{
					Op:     "derivative mask",
					Reason: "more than two derivatives requested, only orders 0 to 2 are supported",
				}
			}
			d.Count++
		}
	}
	return d, nil
}
