package kern

import "fmt"

// ShapeError reports an input whose dimensions do not match what a kernel
// was configured to consume. It carries the offending sizes so the caller
// can identify the mismatched axis directly.
type ShapeError struct {
	Op   string
	Axis string
	Got  int
	Want int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s has size %d, want %d", e.Op, e.Axis, e.Got, e.Want)
}

// ConfigError reports a construction or policy choice the engine does not
// support, such as an unimplemented arc-cosine order or a refused
// quadrature fallback.
type ConfigError struct {
	Op     string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// InvariantError reports a violated structural invariant, such as an
// active-dimension list whose length differs from the declared input
// dimension.
type InvariantError struct {
	Op     string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}
