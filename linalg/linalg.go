// Package linalg provides the dense and sparse kernels whose implementation
// is chosen by the capability flags in atconfig. Each operation has a fast
// path backed by an optimized library and a generic Go fallback.
package linalg

import (
	"errors"
	"runtime"

	"golang.org/x/sys/cpu"

	"github.com/notargets/atconfig/atconfig"
	"github.com/notargets/atconfig/parallel"
)

type Path string

const (
	Generic  Path = "generic"
	BLAS     Path = "blas"
	LAPACK   Path = "lapack"
	KleidiAI Path = "kleidiai"
	Sparse   Path = "sparse-blas"
	Im2Col   Path = "im2col-gemm"
	CBLASDot Path = "cblas-dot"
	F2CDot   Path = "f2c-dot"
)

var ErrSingular = errors.New("matrix is singular")

// Op names the path one operation takes in this build.
type Op struct {
	Name string
	Path Path
}

func Report() []Op {
	return configured().report()
}

// BLASImplementation names the BLAS library registered with gonum.
func BLASImplementation() string {
	if netlibLinked && atconfig.BuildWithBLAS() {
		return "netlib"
	}
	return "gonum"
}

// Threads is the parallel degree of the Go kernels, one when the
// sequential MKL variant was configured.
func Threads() int {
	return configured().threads(parallel.NumThreads())
}

// rowGrain returns the grain that spreads rows over Threads() chunks.
func rowGrain(rows int) int {
	t := Threads()
	if t <= 1 {
		return rows
	}
	return (rows + t - 1) / t
}

// features holds the flags the path selectors read.
type features struct {
	blas, lapack, mkl, mklSequential bool
	kleidiAI, armKernel              bool
	f2c, cblasDot                    bool
	nnpack, mkldnn                   bool
}

func configured() features {
	return features{
		blas:          atconfig.BuildWithBLAS(),
		lapack:        atconfig.BuildWithLAPACK(),
		mkl:           atconfig.MKLEnabled(),
		mklSequential: atconfig.MKLSequential(),
		kleidiAI:      atconfig.KleidiAIEnabled(),
		armKernel:     runtime.GOARCH == "arm64" && cpu.ARM64.HasASIMD,
		f2c:           atconfig.BLASF2C(),
		cblasDot:      atconfig.BLASUseCBLASDot(),
		nnpack:        atconfig.NNPACKEnabled(),
		mkldnn:        atconfig.MKLDNNEnabled(),
	}
}

func (f features) report() []Op {
	return []Op{
		{"gemm", f.gemm()},
		{"dot64", f.dot64()},
		{"dot32", f.dot32()},
		{"inverse", f.inverse()},
		{"spmm", f.spmm()},
		{"conv1d", f.conv()},
	}
}

func (f features) threads(n int) int {
	if f.mkl && f.mklSequential {
		return 1
	}
	return n
}

func (f features) optimizedBLAS() bool { return f.blas || f.mkl }

func (f features) gemm() Path {
	switch {
	case f.kleidiAI && f.armKernel:
		return KleidiAI
	case f.optimizedBLAS():
		return BLAS
	}
	return Generic
}

func (f features) dot64() Path {
	if f.optimizedBLAS() {
		return BLAS
	}
	return Generic
}

// dot32 only honors the binding conventions of an external BLAS.
func (f features) dot32() Path {
	switch {
	case !f.blas:
		return Generic
	case f.cblasDot:
		return CBLASDot
	case f.f2c:
		return F2CDot
	}
	return BLAS
}

func (f features) inverse() Path {
	if f.lapack || f.mkl {
		return LAPACK
	}
	return Generic
}

func (f features) spmm() Path {
	if f.optimizedBLAS() {
		return Sparse
	}
	return Generic
}

func (f features) conv() Path {
	if f.nnpack || f.mkldnn {
		return Im2Col
	}
	return Generic
}

func gemmPath() Path    { return configured().gemm() }
func dot64Path() Path   { return configured().dot64() }
func dot32Path() Path   { return configured().dot32() }
func inversePath() Path { return configured().inverse() }
func spmmPath() Path    { return configured().spmm() }
func convPath() Path    { return configured().conv() }
