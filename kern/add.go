package kern

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	add *Add
	_   Kernel      = add
	_   PointEvaler = add
)

// Add reduces its children's covariances with elementwise addition.
type Add struct {
	Combination
}

func NewAdd(children ...Kernel) (*Add, error) {
	flat := make([]Kernel, 0, len(children))
	for _, c := range children {
		switch c := c.(type) {
		case *Add:
			flat = append(flat, c.children...)
		default:
			flat = append(flat, c)
		}
	}
	comb, err := newCombination("add", flat)
	if err != nil {
		return nil, err
	}
	return &Add{Combination: comb}, nil
}

// Sum is shorthand for the two-kernel sum.
func Sum(a, b Kernel) (*Add, error) { return NewAdd(a, b) }

func (k *Add) K(x, x2 mat.Matrix, _ bool) (*mat.Dense, error) {
	var out *mat.Dense
	for _, c := range k.children {
		kc, err := c.K(x, x2, false)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = kc
		} else {
			out.Add(out, kc)
		}
	}
	return out, nil
}

func (k *Add) Kdiag(x mat.Matrix, _ bool) (*mat.VecDense, error) {
	var out *mat.VecDense
	for _, c := range k.children {
		kd, err := c.Kdiag(x, false)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = kd
		} else {
			out.AddVec(out, kd)
		}
	}
	return out, nil
}

func (k *Add) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	var s hyperdual.Number
	for _, c := range k.children {
		s = hyperdual.Add(s, c.(PointEvaler).KPoint(x, z))
	}
	return s
}
