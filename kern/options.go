package kern

// Option customizes a kernel at construction time. Unknown options are
// ignored by kernels they do not apply to.
type Option func(*config)

type config struct {
	activeDims      []int
	variance        []float64
	lengthscales    []float64
	ard             bool
	period          float64
	degree          float64
	offset          float64
	biasVariance    float64
	weightVariances []float64
	ghPoints        int
}

func newConfig(opts []Option) *config {
	cfg := &config{
		variance:        []float64{1},
		lengthscales:    []float64{1},
		period:          1,
		degree:          3,
		offset:          1,
		biasVariance:    1,
		weightVariances: []float64{1},
		ghPoints:        defaultGaussHermitePoints,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithActiveDims selects explicit data-matrix columns for the kernel. The
// number of indices must equal the kernel's input dimension.
func WithActiveDims(dims ...int) Option {
	return func(c *config) { c.activeDims = append([]int(nil), dims...) }
}

// WithVariance sets the variance parameter. Kernels that support ARD
// variances accept one value per dimension.
func WithVariance(v ...float64) Option {
	return func(c *config) { c.variance = append([]float64(nil), v...) }
}

// WithLengthscales sets the lengthscale parameter. With ARD enabled a
// single value broadcasts across all dimensions.
func WithLengthscales(l ...float64) Option {
	return func(c *config) { c.lengthscales = append([]float64(nil), l...) }
}

// WithARD enables one lengthscale (or weight variance) per dimension.
func WithARD() Option {
	return func(c *config) { c.ard = true }
}

// WithPeriod sets the period of the periodic kernel.
func WithPeriod(p float64) Option {
	return func(c *config) { c.period = p }
}

// WithDegree sets the degree of the polynomial kernel.
func WithDegree(d float64) Option {
	return func(c *config) { c.degree = d }
}

// WithOffset sets the offset of the polynomial kernel.
func WithOffset(o float64) Option {
	return func(c *config) { c.offset = o }
}

// WithBiasVariance sets the bias variance of the arc-cosine kernel.
func WithBiasVariance(b float64) Option {
	return func(c *config) { c.biasVariance = b }
}

// WithWeightVariances sets the weight variances of the arc-cosine kernel.
// With ARD enabled a single value broadcasts across all dimensions.
func WithWeightVariances(w ...float64) Option {
	return func(c *config) { c.weightVariances = append([]float64(nil), w...) }
}

// WithGaussHermitePoints sets the per-kernel quadrature point count used
// by expectation fallbacks. Zero forces expectation calls to fail.
func WithGaussHermitePoints(n int) Option {
	return func(c *config) { c.ghPoints = n }
}
