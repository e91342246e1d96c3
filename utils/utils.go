package utils

import (
	"gonum.org/v1/gonum/mat"
)

// Concatenate multiple vectors.
func ConcatVecs(size int, vecs ...*mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(size, nil)
	offset := 0
	for _, vec := range vecs {
		out.SliceVec(offset, offset+vec.Len()).(*mat.VecDense).CopyVec(vec)
		offset += vec.Len()
	}
	return out
}

// Identity matrix.
func Eye(n int) *mat.Dense {
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		out.Set(i, i, 1)
	}
	return out
}

// JoinSym makes the symmetric block matrix
//
//	| a    c   |
//	| c^T  b   |
//
// where a and b are d x d symmetric and c is the d x d cross block.
func JoinSym(a, b *mat.SymDense, c *mat.Dense) *mat.SymDense {
	d := a.SymmetricDim()
	out := mat.NewSymDense(2*d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			out.SetSym(i, j, a.At(i, j))
			out.SetSym(d+i, d+j, b.At(i, j))
		}
		for j := 0; j < d; j++ {
			out.SetSym(i, d+j, c.At(i, j))
		}
	}
	return out
}
