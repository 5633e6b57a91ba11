package linalg

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// Entry is one stored value of a sparse matrix in coordinate form.
type Entry struct {
	I, J int
	V    float64
}

// SpMM returns S*B where S is the rows x cols sparse matrix holding entries.
// Duplicate coordinates are summed.
func SpMM(rows, cols int, entries []Entry, B *mat.Dense) *mat.Dense {
	return spmmWith(spmmPath(), rows, cols, entries, B)
}

func spmmWith(path Path, rows, cols int, entries []Entry, B *mat.Dense) (C *mat.Dense) {
	var (
		br, bc = B.Dims()
	)
	if cols != br {
		panic(fmt.Sprintf("spmm: dimension mismatch %dx%d * %dx%d", rows, cols, br, bc))
	}
	for _, e := range entries {
		if e.I < 0 || e.I >= rows || e.J < 0 || e.J >= cols {
			panic(fmt.Sprintf("spmm: entry (%d, %d) outside %dx%d", e.I, e.J, rows, cols))
		}
	}
	if path == Sparse {
		dok := sparse.NewDOK(rows, cols)
		for _, e := range entries {
			dok.Set(e.I, e.J, dok.At(e.I, e.J)+e.V)
		}
		S := sparse.NewCSR(rows, bc, nil, nil, nil)
		S.Mul(dok.ToCSR(), B)
		return S.ToDense()
	}
	C = mat.NewDense(rows, bc, nil)
	c, b := C.RawMatrix(), B.RawMatrix()
	for _, e := range entries {
		cRow := c.Data[e.I*c.Stride : e.I*c.Stride+bc]
		bRow := b.Data[e.J*b.Stride : e.J*b.Stride+bc]
		for j, v := range bRow {
			cRow[j] += e.V * v
		}
	}
	return
}
