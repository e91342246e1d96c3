package kern

import "fmt"

// Param is a named value holder read by kernels at evaluation time. The
// trainable-parameter machinery that updates these values lives outside
// this module; kernels only read the current values. A Param constructed
// with a positivity constraint rejects non-positive values both at
// construction and on Set.
type Param struct {
	name     string
	vals     []float64
	positive bool
}

// NewParam returns a value holder with the given constraint.
func NewParam(name string, positive bool, vals ...float64) (*Param, error) {
	p := &Param{name: name, positive: positive}
	if err := p.Set(vals...); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Param) Name() string { return p.name }

// Len reports the number of values held.
func (p *Param) Len() int { return len(p.vals) }

// Scalar returns the single held value.
func (p *Param) Scalar() float64 { return p.vals[0] }

// Values returns the held values. The slice must not be mutated; use Set.
func (p *Param) Values() []float64 { return p.vals }

// At returns the i-th held value. A scalar param broadcasts to any index.
func (p *Param) At(i int) float64 {
	if len(p.vals) == 1 {
		return p.vals[0]
	}
	return p.vals[i]
}

// Set replaces the held values, enforcing the declared constraint. The
// length of a param is fixed once constructed.
func (p *Param) Set(vals ...float64) error {
	if len(vals) == 0 {
		return &InvariantError{Op: "param " + p.name, Reason: "no values given"}
	}
	if p.vals != nil && len(vals) != len(p.vals) {
		return &ShapeError{Op: "param " + p.name, Axis: "values", Got: len(vals), Want: len(p.vals)}
	}
	if p.positive {
		for i, v := range vals {
			if v <= 0 {
				return &InvariantError{
					Op:     "param " + p.name,
					Reason: fmt.Sprintf("value %g at index %d is not positive", v, i),
				}
			}
		}
	}
	p.vals = append([]float64(nil), vals...)
	return nil
}
