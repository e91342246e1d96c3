package quad

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/kern"
)

func TestHermiteGridWeightsSumToOne(t *testing.T) {
	for _, tc := range []struct{ h, d int }{
		{3, 1}, {10, 1}, {5, 2}, {4, 3},
	} {
		nodes, weights := hermiteGrid(tc.h, tc.d)
		r, c := nodes.Dims()
		p := 1
		for i := 0; i < tc.d; i++ {
			p *= tc.h
		}
		require.Equal(t, p, r)
		require.Equal(t, tc.d, c)
		require.Len(t, weights, p)

		var sum float64
		for _, w := range weights {
			sum += w
		}
		assert.InDelta(t, 1, sum, 1e-10, "h=%d d=%d", tc.h, tc.d)
	}
}

func TestHermiteGridGaussianMoments(t *testing.T) {
	// Under x = sqrt(2) xi the rule integrates against N(0, 1):
	// the second moment is 1 and the fourth is 3.
	nodes, weights := hermiteGrid(8, 1)
	var m2, m4 float64
	for i, w := range weights {
		x := math.Sqrt2 * nodes.At(i, 0)
		m2 += w * x * x
		m4 += w * x * x * x * x
	}
	assert.InDelta(t, 1, m2, 1e-9)
	assert.InDelta(t, 3, m4, 1e-9)
}

func TestGaussianQuadMatchesMoments(t *testing.T) {
	// E[x^2] = mu^2 + sigma^2 row by row.
	mu := mat.NewDense(2, 1, []float64{0.5, -1})
	cov := kern.DiagCov(mat.NewDense(2, 1, []float64{0.04, 2.25}))
	f := func(x *mat.Dense) (*mat.Dense, error) {
		p, _ := x.Dims()
		out := mat.NewDense(p, 1, nil)
		for i := 0; i < p; i++ {
			v := x.At(i, 0)
			out.Set(i, 0, v*v)
		}
		return out, nil
	}
	got, err := gaussianQuad(f, mu, cov, 10, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.25+0.04, got.At(0, 0), 1e-9)
	assert.InDelta(t, 1+2.25, got.At(1, 0), 1e-9)
}

func TestGaussianQuadShapeChecks(t *testing.T) {
	f := func(x *mat.Dense) (*mat.Dense, error) { return x, nil }
	mu := mat.NewDense(2, 1, []float64{0, 0})

	var shapeErr *kern.ShapeError
	_, err := gaussianQuad(f, mu, kern.DiagCov(mat.NewDense(1, 1, []float64{1})), 3, 1, 1)
	assert.ErrorAs(t, err, &shapeErr)
	_, err = gaussianQuad(f, mu, kern.DiagCov(mat.NewDense(2, 2, nil)), 3, 1, 1)
	assert.ErrorAs(t, err, &shapeErr)
	_, err = gaussianQuad(f, mu, kern.DiagCov(mat.NewDense(2, 1, []float64{1, 1})), 3, 2, 1)
	assert.ErrorAs(t, err, &shapeErr)
}

func TestCholFactorJittersSemidefinite(t *testing.T) {
	// Rank-deficient covariances come up whenever a variational fit
	// collapses a dimension; the jitter retry must accept them.
	s := mat.NewSymDense(2, []float64{1, 1, 1, 1})
	l, err := cholFactor(s, 0)
	require.NoError(t, err)

	var rec mat.Dense
	rec.Mul(l, l.T())
	assert.InDelta(t, 1, rec.At(0, 0), 1e-6)
	assert.InDelta(t, 1, rec.At(1, 0), 1e-6)

	bad := mat.NewSymDense(1, []float64{-1})
	_, err = cholFactor(bad, 3)
	var invErr *kern.InvariantError
	assert.ErrorAs(t, err, &invErr)
}
