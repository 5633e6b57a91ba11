package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
)

func Dot64(x, y []float64) float64 {
	return dot64With(dot64Path(), x, y)
}

// Dot32 follows the configured BLAS binding conventions: the CBLAS entry
// point, the f2c convention (real functions return double, so the sum is
// carried in float64), or the plain Fortran entry point.
func Dot32(x, y []float32) float32 {
	return dot32With(dot32Path(), x, y)
}

func checkLen(op string, nx, ny int) {
	if nx != ny {
		panic(fmt.Sprintf("%s: length mismatch %d != %d", op, nx, ny))
	}
}

func dot64With(path Path, x, y []float64) (sum float64) {
	checkLen("dot64", len(x), len(y))
	if len(x) == 0 {
		return
	}
	if path == BLAS {
		return blas64.Dot(
			blas64.Vector{N: len(x), Data: x, Inc: 1},
			blas64.Vector{N: len(y), Data: y, Inc: 1})
	}
	for i, v := range x {
		sum += v * y[i]
	}
	return
}

func dot32With(path Path, x, y []float32) float32 {
	checkLen("dot32", len(x), len(y))
	if len(x) == 0 {
		return 0
	}
	switch path {
	case CBLASDot, BLAS:
		return blas32.Dot(
			blas32.Vector{N: len(x), Data: x, Inc: 1},
			blas32.Vector{N: len(y), Data: y, Inc: 1})
	case F2CDot:
		var sum float64
		for i, v := range x {
			sum += float64(v) * float64(y[i])
		}
		return float32(sum)
	}
	var sum float32
	for i, v := range x {
		sum += v * y[i]
	}
	return sum
}
