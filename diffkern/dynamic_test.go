package diffkern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/diffkern"
	"github.com/zcmail/gpkern/kern"
)

func TestDynamicMatchesStatic(t *testing.T) {
	base, err := kern.NewRBF(1)
	require.NoError(t, err)

	dyn, err := diffkern.NewDynamic(2, base, 1)
	require.NoError(t, err)
	require.Equal(t, 1, dyn.ObsDims())

	// Rows carry the coordinate and a derivative flag column.
	x := mat.NewDense(3, 2, []float64{
		0.3, 1,
		-0.5, 0,
		0.9, 2,
	})
	z := mat.NewDense(2, 2, []float64{
		0.1, 0,
		0.7, 1,
	})
	got, err := dyn.K(x, z, false)
	require.NoError(t, err)

	left := []diffkern.Descriptor{d1(0), noDerivs(1)[0], d2(0, 0)}
	right := []diffkern.Descriptor{noDerivs(1)[0], d1(0)}
	st, err := diffkern.NewStatic(1, base, left, right)
	require.NoError(t, err)
	want, err := st.K(
		mat.NewDense(3, 1, []float64{0.3, -0.5, 0.9}),
		mat.NewDense(2, 1, []float64{0.1, 0.7}), false)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want, got, 1e-10))
}

func TestDynamicTwoObservedDimensions(t *testing.T) {
	base, err := kern.NewRBF(2)
	require.NoError(t, err)

	dyn, err := diffkern.NewDynamic(4, base, 2)
	require.NoError(t, err)

	x := mat.NewDense(3, 4, []float64{
		0.2, -0.4, 0, 1,
		1.1, 0.3, 0, 0,
		-0.6, 0.8, 2, 0,
	})
	got, err := dyn.K(x, nil, false)
	require.NoError(t, err)

	left := []diffkern.Descriptor{d1(1), noDerivs(1)[0], d2(0, 0)}
	st, err := diffkern.NewStatic(2, base, left, left)
	require.NoError(t, err)
	want, err := st.K(mat.NewDense(3, 2, []float64{
		0.2, -0.4,
		1.1, 0.3,
		-0.6, 0.8,
	}), nil, false)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(want, got, 1e-10))
}

func TestDynamicKdiag(t *testing.T) {
	base, err := kern.NewRBF(1)
	require.NoError(t, err)
	dyn, err := diffkern.NewDynamic(2, base, 1)
	require.NoError(t, err)

	x := mat.NewDense(2, 2, []float64{
		0.3, 1,
		-0.5, 0,
	})
	full, err := dyn.K(x, nil, false)
	require.NoError(t, err)
	diag, err := dyn.Kdiag(x, false)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		assert.InDelta(t, full.At(i, i), diag.AtVec(i), 1e-12)
	}
}

func TestDynamicRejectsThirdOrderMask(t *testing.T) {
	base, err := kern.NewRBF(1)
	require.NoError(t, err)
	dyn, err := diffkern.NewDynamic(2, base, 1)
	require.NoError(t, err)

	var cfgErr *kern.ConfigError
	_, err = dyn.K(mat.NewDense(1, 2, []float64{0.3, 3}), nil, false)
	assert.ErrorAs(t, err, &cfgErr)

	_, err = dyn.K(mat.NewDense(1, 2, []float64{0.3, 0.5}), nil, false)
	assert.ErrorAs(t, err, &cfgErr)
}

func TestDynamicConstruction(t *testing.T) {
	base, err := kern.NewRBF(1)
	require.NoError(t, err)

	var invErr *kern.InvariantError
	_, err = diffkern.NewDynamic(2, base, 0)
	assert.ErrorAs(t, err, &invErr)

	var shapeErr *kern.ShapeError
	_, err = diffkern.NewDynamic(1, base, 1)
	assert.ErrorAs(t, err, &shapeErr)

	white, err := kern.NewWhite(1)
	require.NoError(t, err)
	var cfgErr *kern.ConfigError
	_, err = diffkern.NewDynamic(2, white, 1)
	assert.ErrorAs(t, err, &cfgErr)
}
