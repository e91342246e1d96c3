// Package settings holds the global numerics policy shared by the
// covariance engines.
package settings

import (
	"sync"

	"go.uber.org/zap"
)

// FloatBits is the width of the scalar type used throughout the engines.
const FloatBits = 64

// QuadraturePolicy controls whether kernel expectations may fall back to
// numerical Gauss-Hermite quadrature.
type QuadraturePolicy int

const (
	// QuadratureAllow lets quadrature run silently.
	QuadratureAllow QuadraturePolicy = iota
	// QuadratureWarn lets quadrature run but logs a warning, since an
	// analytic expectation is usually preferable when one exists.
	QuadratureWarn
	// QuadratureRefuse rejects any attempt to use quadrature.
	QuadratureRefuse
)

func (p QuadraturePolicy) String() string {
	switch p {
	case QuadratureAllow:
		return "allow"
	case QuadratureWarn:
		return "warn"
	case QuadratureRefuse:
		return "refuse"
	}
	return "unknown"
}

var (
	mu     sync.RWMutex
	policy = QuadratureWarn
	logger = zap.NewNop()
)

// Quadrature returns the current quadrature policy.
func Quadrature() QuadraturePolicy {
	mu.RLock()
	defer mu.RUnlock()
	return policy
}

// SetQuadrature installs a new quadrature policy.
func SetQuadrature(p QuadraturePolicy) {
	mu.Lock()
	policy = p
	mu.Unlock()
}

// Logger returns the logger used for numerics warnings.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetLogger installs the logger used for numerics warnings. A nil logger
// resets to a no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	logger = l
	mu.Unlock()
}
