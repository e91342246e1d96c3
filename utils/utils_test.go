package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"

	"github.com/zcmail/gpkern/utils"
)

func TestConcatVecs(t *testing.T) {
	a := mat.NewVecDense(2, []float64{1, 2})
	b := mat.NewVecDense(3, []float64{3, 4, 5})
	got := utils.ConcatVecs(5, a, b)
	for i, want := range []float64{1, 2, 3, 4, 5} {
		assert.Equal(t, want, got.AtVec(i))
	}
}

func TestEye(t *testing.T) {
	got := utils.Eye(3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			assert.Equal(t, want, got.At(i, j))
		}
	}
}

func TestJoinSym(t *testing.T) {
	a := mat.NewSymDense(2, []float64{1, 2, 2, 4})
	b := mat.NewSymDense(2, []float64{5, 6, 6, 8})
	c := mat.NewDense(2, 2, []float64{9, 10, 11, 12})

	got := utils.JoinSym(a, b, c)
	want := mat.NewDense(4, 4, []float64{
		1, 2, 9, 10,
		2, 4, 11, 12,
		9, 11, 5, 6,
		10, 12, 6, 8,
	})
	assert.True(t, mat.EqualApprox(want, got, 0))
}
