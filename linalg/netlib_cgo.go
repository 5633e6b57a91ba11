//go:build cgo && netlib
// +build cgo,netlib

package linalg

/*
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
*/
import "C"

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/lapack/lapack64"
	netblas "gonum.org/v1/netlib/blas/netlib"
	netlapack "gonum.org/v1/netlib/lapack/netlib"

	"github.com/notargets/atconfig/atconfig"
)

const netlibLinked = true

func init() {
	if atconfig.BuildWithBLAS() {
		blas64.Use(netblas.Implementation{})
		blas32.Use(netblas.Implementation{})
		log.Debug().Msg("Using netlib to accelerate BLAS")
	}
	if atconfig.BuildWithLAPACK() {
		lapack64.Use(netlapack.Implementation{})
		log.Debug().Msg("Using netlib to accelerate LAPACK")
	}
}
