package linalg

import (
	"math"

	"gonum.org/v1/gonum/lapack/lapack64"
	"gonum.org/v1/gonum/mat"
)

// Inverse returns the inverse of the square matrix A, which is not modified.
func Inverse(A *mat.Dense) (*mat.Dense, error) {
	return inverseWith(inversePath(), A)
}

func inverseWith(path Path, A *mat.Dense) (R *mat.Dense, err error) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc {
		panic(mat.ErrSquare)
	}
	R = mat.DenseCopyOf(A)
	if path == LAPACK {
		iPiv := make([]int, nr)
		if ok := lapack64.Getrf(R.RawMatrix(), iPiv); !ok {
			return nil, ErrSingular
		}
		work := make([]float64, nr*nc)
		if ok := lapack64.Getri(R.RawMatrix(), iPiv, work, nr*nc); !ok {
			return nil, ErrSingular
		}
		return
	}
	if err = gaussJordan(R); err != nil {
		R = nil
	}
	return
}

// gaussJordan inverts m in place with partial pivoting.
func gaussJordan(m *mat.Dense) error {
	var (
		raw  = m.RawMatrix()
		n    = raw.Rows
		perm = make([]int, n)
		row  = func(i int) []float64 { return raw.Data[i*raw.Stride : i*raw.Stride+n] }
	)
	for i := range perm {
		perm[i] = i
	}
	for col := 0; col < n; col++ {
		pivot, best := col, math.Abs(row(col)[col])
		for i := col + 1; i < n; i++ {
			if v := math.Abs(row(i)[col]); v > best {
				pivot, best = i, v
			}
		}
		if best == 0 {
			return ErrSingular
		}
		if pivot != col {
			pr, cr := row(pivot), row(col)
			for j := range pr {
				pr[j], cr[j] = cr[j], pr[j]
			}
			perm[pivot], perm[col] = perm[col], perm[pivot]
		}
		cr := row(col)
		inv := 1 / cr[col]
		cr[col] = 1
		for j := range cr {
			cr[j] *= inv
		}
		for i := 0; i < n; i++ {
			if i == col {
				continue
			}
			ri := row(i)
			f := ri[col]
			if f == 0 {
				continue
			}
			ri[col] = 0
			for j := range ri {
				ri[j] -= f * cr[j]
			}
		}
	}
	// Row swaps of the input become column swaps of the inverse.
	tmp := make([]float64, n)
	for i := 0; i < n; i++ {
		r := row(i)
		for j := 0; j < n; j++ {
			tmp[perm[j]] = r[j]
		}
		copy(r, tmp)
	}
	return nil
}
