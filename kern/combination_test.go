package kern_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/kern"
)

func mustRBF(t *testing.T, dim int, opts ...kern.Option) *kern.RBF {
	t.Helper()
	k, err := kern.NewRBF(dim, opts...)
	require.NoError(t, err)
	return k
}

func mustLinear(t *testing.T, dim int, opts ...kern.Option) *kern.Linear {
	t.Helper()
	k, err := kern.NewLinear(dim, opts...)
	require.NoError(t, err)
	return k
}

func TestAddSumsChildren(t *testing.T) {
	a := mustRBF(t, 1, kern.WithVariance(2))
	b := mustLinear(t, 1, kern.WithVariance(0.5))
	sum, err := kern.Sum(a, b)
	require.NoError(t, err)

	x := mat.NewDense(3, 1, []float64{0, 1, -2})
	ka, err := a.K(x, nil, false)
	require.NoError(t, err)
	kb, err := b.K(x, nil, false)
	require.NoError(t, err)
	got, err := sum.K(x, nil, false)
	require.NoError(t, err)

	var want mat.Dense
	want.Add(ka, kb)
	assert.True(t, mat.EqualApprox(&want, got, 1e-12))

	da, err := a.Kdiag(x, false)
	require.NoError(t, err)
	db, err := b.Kdiag(x, false)
	require.NoError(t, err)
	gotD, err := sum.Kdiag(x, false)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, da.AtVec(i)+db.AtVec(i), gotD.AtVec(i), 1e-12)
	}
}

func TestProdMultipliesChildren(t *testing.T) {
	a := mustRBF(t, 1)
	b := mustLinear(t, 1, kern.WithVariance(3))
	prod, err := kern.Mul(a, b)
	require.NoError(t, err)

	x := mat.NewDense(3, 1, []float64{0.5, 1, -2})
	ka, err := a.K(x, nil, false)
	require.NoError(t, err)
	kb, err := b.K(x, nil, false)
	require.NoError(t, err)
	got, err := prod.K(x, nil, false)
	require.NoError(t, err)

	var want mat.Dense
	want.MulElem(ka, kb)
	assert.True(t, mat.EqualApprox(&want, got, 1e-12))
}

func TestAddFlattensNestedSums(t *testing.T) {
	a := mustRBF(t, 1)
	b := mustLinear(t, 1)
	c := mustRBF(t, 1, kern.WithVariance(2))

	inner, err := kern.Sum(a, b)
	require.NoError(t, err)
	outer, err := kern.Sum(inner, c)
	require.NoError(t, err)

	require.Len(t, outer.Children(), 3)
	assert.Equal(t, []string{"rbf_1", "linear", "rbf_2"}, outer.Names())
}

func TestProdDoesNotAbsorbSums(t *testing.T) {
	a := mustRBF(t, 1)
	b := mustLinear(t, 1)
	sum, err := kern.Sum(a, b)
	require.NoError(t, err)

	prod, err := kern.NewProd(sum, mustRBF(t, 1))
	require.NoError(t, err)
	require.Len(t, prod.Children(), 2)
	assert.Equal(t, []string{"add", "rbf"}, prod.Names())
}

func TestCombinationInfersInputDim(t *testing.T) {
	a := mustRBF(t, 1, kern.WithActiveDims(0))
	b := mustRBF(t, 1, kern.WithActiveDims(4))
	sum, err := kern.Sum(a, b)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.InputDim())
}

func TestOnSeparateDimensions(t *testing.T) {
	disjoint, err := kern.Sum(
		mustRBF(t, 1, kern.WithActiveDims(0)),
		mustRBF(t, 1, kern.WithActiveDims(1)),
	)
	require.NoError(t, err)
	assert.True(t, disjoint.OnSeparateDimensions())

	shared, err := kern.Sum(
		mustRBF(t, 2, kern.WithActiveDims(0, 1)),
		mustRBF(t, 1, kern.WithActiveDims(1)),
	)
	require.NoError(t, err)
	assert.False(t, shared.OnSeparateDimensions())

	// Range selectors answer conservatively.
	ranged, err := kern.Sum(mustRBF(t, 1), mustRBF(t, 1, kern.WithActiveDims(1)))
	require.NoError(t, err)
	assert.False(t, ranged.OnSeparateDimensions())
}

func TestCombinationSlicesPerChild(t *testing.T) {
	// Each child gathers its own columns from the shared data matrix.
	sum, err := kern.Sum(
		mustRBF(t, 1, kern.WithActiveDims(0)),
		mustLinear(t, 1, kern.WithActiveDims(1)),
	)
	require.NoError(t, err)

	x := mat.NewDense(2, 2, []float64{
		0, 2,
		1, 3,
	})
	got, err := sum.K(x, nil, false)
	require.NoError(t, err)

	rbfPart, err := mustRBF(t, 1).K(mat.NewDense(2, 1, []float64{0, 1}), nil, false)
	require.NoError(t, err)
	linPart, err := mustLinear(t, 1).K(mat.NewDense(2, 1, []float64{2, 3}), nil, false)
	require.NoError(t, err)
	var want mat.Dense
	want.Add(rbfPart, linPart)
	assert.True(t, mat.EqualApprox(&want, got, 1e-12))
}

func TestCombinationRejectsEmptyAndNil(t *testing.T) {
	var invErr *kern.InvariantError
	_, err := kern.NewAdd()
	assert.ErrorAs(t, err, &invErr)
	_, err = kern.NewProd(nil)
	assert.ErrorAs(t, err, &invErr)
}

func TestMakeKernelNamesRenamesRetroactively(t *testing.T) {
	names := kern.MakeKernelNames([]kern.Kernel{
		mustRBF(t, 1), mustLinear(t, 1), mustRBF(t, 1), mustRBF(t, 1),
	})
	assert.Equal(t, []string{"rbf_1", "linear", "rbf_2", "rbf_3"}, names)
}
