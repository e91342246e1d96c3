package kern

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/num/hyperdual"
)

var (
	prod *Prod
	_    Kernel      = prod
	_    PointEvaler = prod
)

// Prod reduces its children's covariances with elementwise
// multiplication.
type Prod struct {
	Combination
}

func NewProd(children ...Kernel) (*Prod, error) {
	flat := make([]Kernel, 0, len(children))
	for _, c := range children {
		switch c := c.(type) {
		case *Prod:
			flat = append(flat, c.children...)
		default:
			flat = append(flat, c)
		}
	}
	comb, err := newCombination("prod", flat)
	if err != nil {
		return nil, err
	}
	return &Prod{Combination: comb}, nil
}

// Mul is shorthand for the two-kernel product.
func Mul(a, b Kernel) (*Prod, error) { return NewProd(a, b) }

func (k *Prod) K(x, x2 mat.Matrix, _ bool) (*mat.Dense, error) {
	var out *mat.Dense
	for _, c := range k.children {
		kc, err := c.K(x, x2, false)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = kc
		} else {
			out.MulElem(out, kc)
		}
	}
	return out, nil
}

func (k *Prod) Kdiag(x mat.Matrix, _ bool) (*mat.VecDense, error) {
	var out *mat.VecDense
	for _, c := range k.children {
		kd, err := c.Kdiag(x, false)
		if err != nil {
			return nil, err
		}
		if out == nil {
			out = kd
		} else {
			out.MulElemVec(out, kd)
		}
	}
	return out, nil
}

func (k *Prod) KPoint(x, z []hyperdual.Number) hyperdual.Number {
	s := hyperdual.Number{Real: 1}
	for _, c := range k.children {
		s = hyperdual.Mul(s, c.(PointEvaler).KPoint(x, z))
	}
	return s
}
