package linalg

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/atconfig/atconfig"
	"github.com/notargets/atconfig/parallel"
)

func randDense(rng *rand.Rand, r, c int) *mat.Dense {
	data := make([]float64, r*c)
	for i := range data {
		data[i] = rng.Float64()*2 - 1
	}
	return mat.NewDense(r, c, data)
}

func TestGemmPaths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, dims := range [][3]int{{1, 1, 1}, {3, 5, 2}, {17, 9, 33}, {64, 64, 64}} {
		A := randDense(rng, dims[0], dims[1])
		B := randDense(rng, dims[1], dims[2])
		var want mat.Dense
		want.Mul(A, B)
		for _, path := range []Path{Generic, BLAS, KleidiAI} {
			got := gemmWith(path, A, B)
			assert.True(t, mat.EqualApprox(&want, got, 1e-12), "path %s dims %v", path, dims)
		}
	}
	{
		A := mat.NewDense(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		B := mat.NewDense(3, 2, []float64{
			7, 8,
			9, 10,
			11, 12,
		})
		assert.Equal(t, []float64{58, 64, 139, 154}, Gemm(A, B).RawMatrix().Data)
	}
	assert.Panics(t, func() { Gemm(mat.NewDense(2, 3, nil), mat.NewDense(2, 3, nil)) })
}

func TestDot(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{5, 4, 3, 2, 1}
	for _, path := range []Path{Generic, BLAS} {
		assert.Equal(t, 35., dot64With(path, x, y))
		assert.Equal(t, 0., dot64With(path, nil, nil))
	}
	assert.Equal(t, 35., Dot64(x, y))

	x32 := []float32{1, 2, 3, 4, 5}
	y32 := []float32{5, 4, 3, 2, 1}
	for _, path := range []Path{Generic, BLAS, CBLASDot, F2CDot} {
		assert.Equal(t, float32(35), dot32With(path, x32, y32), "path %s", path)
	}
	assert.Equal(t, float32(35), Dot32(x32, y32))
	assert.Panics(t, func() { Dot64([]float64{1}, nil) })
}

func TestDot32F2CAccumulatesInDouble(t *testing.T) {
	// 2^24 + 1 is not representable in float32; a float32 accumulator drops
	// every trailing 1 while a double accumulator keeps them.
	x := []float32{1 << 24, 1, 1, 1, 1}
	y := []float32{1, 1, 1, 1, 1}
	assert.Equal(t, float32(1<<24+4), dot32With(F2CDot, x, y))
	assert.Equal(t, float32(1<<24), dot32With(Generic, x, y))
}

func TestInversePaths(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, n := range []int{1, 2, 5, 12} {
		A := randDense(rng, n, n)
		for i := 0; i < n; i++ {
			A.Set(i, i, A.At(i, i)+float64(n))
		}
		orig := mat.DenseCopyOf(A)
		for _, path := range []Path{Generic, LAPACK} {
			R, err := inverseWith(path, A)
			require.NoError(t, err)
			var I mat.Dense
			I.Mul(A, R)
			id := mat.NewDiagDense(n, nil)
			for i := 0; i < n; i++ {
				id.SetDiag(i, 1)
			}
			assert.True(t, mat.EqualApprox(&I, id, 1e-10), "path %s n %d", path, n)
			assert.True(t, mat.Equal(orig, A), "input modified by path %s", path)
		}
	}
	{ // Needs pivoting
		A := mat.NewDense(3, 3, []float64{
			0, 1, 0,
			0, 0, 1,
			1, 0, 0,
		})
		for _, path := range []Path{Generic, LAPACK} {
			R, err := inverseWith(path, A)
			require.NoError(t, err)
			assert.True(t, mat.EqualApprox(A.T(), R, 1e-14), "path %s", path)
		}
	}
	{ // Singular
		A := mat.NewDense(2, 2, []float64{
			1, 2,
			2, 4,
		})
		for _, path := range []Path{Generic, LAPACK} {
			_, err := inverseWith(path, A)
			assert.ErrorIs(t, err, ErrSingular, "path %s", path)
		}
	}
}

func TestSpMMPaths(t *testing.T) {
	entries := []Entry{
		{0, 0, 2}, {0, 2, 1},
		{1, 1, 3},
		{2, 0, 1}, {2, 0, 1}, // duplicates sum
	}
	B := mat.NewDense(3, 2, []float64{
		1, 2,
		3, 4,
		5, 6,
	})
	want := mat.NewDense(3, 2, []float64{
		7, 10,
		9, 12,
		2, 4,
	})
	for _, path := range []Path{Generic, Sparse} {
		got := spmmWith(path, 3, 3, entries, B)
		assert.True(t, mat.Equal(want, got), "path %s", path)
	}
	assert.Panics(t, func() { SpMM(3, 3, []Entry{{3, 0, 1}}, B) })
}

func TestConv1DPaths(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	w := []float64{1, 0, -1}
	for _, path := range []Path{Generic, Im2Col} {
		assert.Equal(t, []float64{-2, -2, -2, -2}, convWith(path, x, w, 1), "path %s", path)
		assert.Equal(t, []float64{-2, -2}, convWith(path, x, w, 2), "path %s", path)
		assert.Nil(t, convWith(path, x[:2], w, 1))
	}
	assert.Panics(t, func() { Conv1D(x, w, 0) })
}

func TestPathSelection(t *testing.T) {
	type paths struct {
		gemm, dot64, dot32, inverse, spmm, conv Path
		threads                                 int
	}
	tests := []struct {
		name string
		f    features
		want paths
	}{
		{"nothing", features{},
			paths{Generic, Generic, Generic, Generic, Generic, Generic, 8}},
		{"blas only", features{blas: true},
			paths{BLAS, BLAS, BLAS, Generic, Sparse, Generic, 8}},
		{"blas and lapack", features{blas: true, lapack: true},
			paths{BLAS, BLAS, BLAS, LAPACK, Sparse, Generic, 8}},
		{"mkl without blas", features{mkl: true},
			paths{BLAS, BLAS, Generic, LAPACK, Sparse, Generic, 8}},
		{"mkl sequential", features{mkl: true, mklSequential: true},
			paths{BLAS, BLAS, Generic, LAPACK, Sparse, Generic, 1}},
		{"sequential without mkl", features{mklSequential: true},
			paths{Generic, Generic, Generic, Generic, Generic, Generic, 8}},
		{"kleidiai over blas", features{blas: true, kleidiAI: true, armKernel: true},
			paths{KleidiAI, BLAS, BLAS, Generic, Sparse, Generic, 8}},
		{"kleidiai without arm kernel", features{blas: true, kleidiAI: true},
			paths{BLAS, BLAS, BLAS, Generic, Sparse, Generic, 8}},
		{"kleidiai alone", features{kleidiAI: true, armKernel: true},
			paths{KleidiAI, Generic, Generic, Generic, Generic, Generic, 8}},
		{"cblas dot over f2c", features{blas: true, cblasDot: true, f2c: true},
			paths{BLAS, BLAS, CBLASDot, Generic, Sparse, Generic, 8}},
		{"f2c", features{blas: true, f2c: true},
			paths{BLAS, BLAS, F2CDot, Generic, Sparse, Generic, 8}},
		{"conventions need blas", features{cblasDot: true, f2c: true},
			paths{Generic, Generic, Generic, Generic, Generic, Generic, 8}},
		{"nnpack", features{nnpack: true},
			paths{Generic, Generic, Generic, Generic, Generic, Im2Col, 8}},
		{"mkldnn", features{mkldnn: true},
			paths{Generic, Generic, Generic, Generic, Generic, Im2Col, 8}},
		{"blas without nnpack", features{blas: true, nnpack: false},
			paths{BLAS, BLAS, BLAS, Generic, Sparse, Generic, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paths{tt.f.gemm(), tt.f.dot64(), tt.f.dot32(), tt.f.inverse(),
				tt.f.spmm(), tt.f.conv(), tt.f.threads(8)}
			assert.Equal(t, tt.want, got)
			report := tt.f.report()
			require.Len(t, report, 6)
			assert.Equal(t, Op{"gemm", tt.want.gemm}, report[0])
			assert.Equal(t, Op{"conv1d", tt.want.conv}, report[5])
		})
	}
}

func TestConfiguredFeatures(t *testing.T) {
	f := configured()
	assert.Equal(t, atconfig.BuildWithBLAS(), f.blas)
	assert.Equal(t, atconfig.BuildWithLAPACK(), f.lapack)
	assert.Equal(t, atconfig.MKLEnabled(), f.mkl)
	assert.Equal(t, atconfig.MKLSequential(), f.mklSequential)
	assert.Equal(t, atconfig.KleidiAIEnabled(), f.kleidiAI)
	assert.Equal(t, atconfig.BLASF2C(), f.f2c)
	assert.Equal(t, atconfig.BLASUseCBLASDot(), f.cblasDot)
	assert.Equal(t, atconfig.NNPACKEnabled(), f.nnpack)
	assert.Equal(t, atconfig.MKLDNNEnabled(), f.mkldnn)
	assert.Equal(t, f.report(), Report())
	assert.Equal(t, f.threads(parallel.NumThreads()), Threads())
}
