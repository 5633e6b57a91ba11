package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/atconfig/parallel"
)

// Gemm returns the product A*B.
func Gemm(A, B *mat.Dense) *mat.Dense {
	return gemmWith(gemmPath(), A, B)
}

func gemmWith(path Path, A, B *mat.Dense) (C *mat.Dense) {
	var (
		ar, ac = A.Dims()
		br, bc = B.Dims()
	)
	if ac != br {
		panic(fmt.Sprintf("gemm: dimension mismatch %dx%d * %dx%d", ar, ac, br, bc))
	}
	C = mat.NewDense(ar, bc, nil)
	switch path {
	case BLAS:
		gemmBLAS(A, B, C)
	case KleidiAI:
		gemmPacked(A, B, C)
	default:
		gemmGeneric(A, B, C)
	}
	return
}

// gemmBLAS hands row blocks of C to the registered BLAS implementation.
func gemmBLAS(A, B, C *mat.Dense) {
	var (
		a, b, c = A.RawMatrix(), B.RawMatrix(), C.RawMatrix()
	)
	parallel.For(0, a.Rows, rowGrain(a.Rows), func(begin, end int) {
		aBlk := blas64.General{
			Rows: end - begin, Cols: a.Cols, Stride: a.Stride,
			Data: a.Data[begin*a.Stride:],
		}
		cBlk := blas64.General{
			Rows: end - begin, Cols: c.Cols, Stride: c.Stride,
			Data: c.Data[begin*c.Stride:],
		}
		blas64.Gemm(blas.NoTrans, blas.NoTrans, 1, aBlk, b, 0, cBlk)
	})
}

func gemmGeneric(A, B, C *mat.Dense) {
	var (
		a, b, c = A.RawMatrix(), B.RawMatrix(), C.RawMatrix()
	)
	parallel.For(0, a.Rows, rowGrain(a.Rows), func(begin, end int) {
		for i := begin; i < end; i++ {
			cRow := c.Data[i*c.Stride : i*c.Stride+c.Cols]
			for p := 0; p < a.Cols; p++ {
				aip := a.Data[i*a.Stride+p]
				if aip == 0 {
					continue
				}
				bRow := b.Data[p*b.Stride : p*b.Stride+b.Cols]
				for j, bpj := range bRow {
					cRow[j] += aip * bpj
				}
			}
		}
	})
}

// gemmPacked packs B column-major once so every output element is a
// contiguous dot product, the layout the Arm matmul kernels consume.
func gemmPacked(A, B, C *mat.Dense) {
	var (
		a, b, c = A.RawMatrix(), B.RawMatrix(), C.RawMatrix()
		k       = a.Cols
		packed  = make([]float64, b.Cols*k)
	)
	for p := 0; p < k; p++ {
		for j := 0; j < b.Cols; j++ {
			packed[j*k+p] = b.Data[p*b.Stride+j]
		}
	}
	parallel.For(0, a.Rows, rowGrain(a.Rows), func(begin, end int) {
		for i := begin; i < end; i++ {
			aRow := a.Data[i*a.Stride : i*a.Stride+k]
			for j := 0; j < b.Cols; j++ {
				c.Data[i*c.Stride+j] = dot4(aRow, packed[j*k:(j+1)*k])
			}
		}
	})
}

func dot4(x, y []float64) float64 {
	var (
		s0, s1, s2, s3 float64
		n              = len(x)
		i              int
	)
	y = y[:n]
	for ; i+4 <= n; i += 4 {
		s0 += x[i] * y[i]
		s1 += x[i+1] * y[i+1]
		s2 += x[i+2] * y[i+2]
		s3 += x[i+3] * y[i+3]
	}
	for ; i < n; i++ {
		s0 += x[i] * y[i]
	}
	return (s0 + s1) + (s2 + s3)
}
