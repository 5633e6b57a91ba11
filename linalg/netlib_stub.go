//go:build !cgo || !netlib
// +build !cgo !netlib

package linalg

// Build with cgo and -tags netlib to register the system BLAS and LAPACK.
const netlibLinked = false
