package kern

// Combination composes an ordered list of child kernels under a
// reduction operator (see Add and Prod). The input dimension is inferred
// as the highest data-matrix column any child touches, and children that
// are combinations of the same operator are absorbed at construction so
// no nested same-operator combination persists.
type Combination struct {
	Kern
	children []Kernel
	names    []string
}

func newCombination(op string, children []Kernel) (Combination, error) {
	if len(children) == 0 {
		return Combination{}, &InvariantError{Op: op, Reason: "no child kernels"}
	}
	inputDim := 0
	for _, c := range children {
		if c == nil {
			return Combination{}, &InvariantError{Op: op, Reason: "nil child kernel"}
		}
		if touched := c.ActiveDims().Max() + 1; touched > inputDim {
			inputDim = touched
		}
	}
	cfg := newConfig(nil)
	base, err := newKern(op, inputDim, cfg)
	if err != nil {
		return Combination{}, err
	}
	return Combination{
		Kern:     base,
		children: children,
		names:    MakeKernelNames(children),
	}, nil
}

// Children returns the flattened child list in reduction order.
func (c *Combination) Children() []Kernel { return c.children }

// Names returns the generated child names, aligned with Children.
func (c *Combination) Names() []string { return c.names }

// OnSeparateDimensions reports whether all children act on mutually
// disjoint explicit dimension subsets. It answers conservatively: any
// child with a range selector yields false, since range overlap is not
// computed.
func (c *Combination) OnSeparateDimensions() bool {
	for _, k := range c.children {
		if k.ActiveDims().IsRange() {
			return false
		}
	}
	for i, a := range c.children {
		for _, b := range c.children[i+1:] {
			if a.ActiveDims().Overlaps(b.ActiveDims()) {
				return false
			}
		}
	}
	return true
}
