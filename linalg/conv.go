package linalg

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Conv1D is the valid cross-correlation of x with kernel w at the given
// stride, the operation convolution layers compute.
func Conv1D(x, w []float64, stride int) []float64 {
	return convWith(convPath(), x, w, stride)
}

func convWith(path Path, x, w []float64, stride int) (y []float64) {
	if stride < 1 {
		panic(fmt.Sprintf("conv1d: stride %d", stride))
	}
	if len(w) == 0 || len(x) < len(w) {
		return nil
	}
	var (
		k   = len(w)
		out = (len(x)-k)/stride + 1
	)
	if path == Im2Col {
		cols := mat.NewDense(out, k, nil)
		for o := 0; o < out; o++ {
			cols.SetRow(o, x[o*stride:o*stride+k])
		}
		Y := Gemm(cols, mat.NewDense(k, 1, append([]float64(nil), w...)))
		return append([]float64(nil), Y.RawMatrix().Data...)
	}
	y = make([]float64, out)
	for o := range y {
		var s float64
		for i, wi := range w {
			s += wi * x[o*stride+i]
		}
		y[o] = s
	}
	return
}
