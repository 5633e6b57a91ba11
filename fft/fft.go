// Package fft computes real-to-complex transforms through PocketFFT-class
// mixed radix plans when AT_POCKETFFT_ENABLED was configured, and through
// a direct DFT otherwise.
package fft

import (
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/notargets/atconfig/atconfig"
	"github.com/notargets/atconfig/parallel"
)

type Path string

const (
	Plan   Path = "pocketfft"
	Direct Path = "dft"
)

func Selected() Path {
	if atconfig.PocketFFTEnabled() {
		return Plan
	}
	return Direct
}

// RFFT returns the n/2+1 non-redundant coefficients of the unnormalized
// forward transform of the real sequence x.
func RFFT(x []float64) []complex128 {
	return rfftWith(Selected(), x)
}

// IRFFT inverts RFFT for a sequence of length n, scaling by 1/n.
func IRFFT(coeff []complex128, n int) []float64 {
	return irfftWith(Selected(), coeff, n)
}

// Plans keep scratch space and are not safe for concurrent use; planMu
// serializes them.
var (
	plans  sync.Map // length -> *fourier.FFT
	planMu sync.Mutex
)

func plan(n int) *fourier.FFT {
	if p, ok := plans.Load(n); ok {
		return p.(*fourier.FFT)
	}
	p, _ := plans.LoadOrStore(n, fourier.NewFFT(n))
	return p.(*fourier.FFT)
}

func rfftWith(path Path, x []float64) []complex128 {
	var (
		n = len(x)
	)
	if n == 0 {
		return nil
	}
	if path == Plan {
		planMu.Lock()
		defer planMu.Unlock()
		return plan(n).Coefficients(nil, x)
	}
	out := make([]complex128, n/2+1)
	parallel.For(0, len(out), 64, func(begin, end int) {
		for k := begin; k < end; k++ {
			var s complex128
			for t, v := range x {
				s += complex(v, 0) * twiddle(k*t, n)
			}
			out[k] = s
		}
	})
	return out
}

func irfftWith(path Path, coeff []complex128, n int) []float64 {
	if n == 0 {
		return nil
	}
	if len(coeff) != n/2+1 {
		panic("fft: coefficient count does not match length")
	}
	var out []float64
	if path == Plan {
		planMu.Lock()
		out = plan(n).Sequence(nil, coeff)
		planMu.Unlock()
	} else {
		out = make([]float64, n)
		for t := range out {
			var s float64
			for k := 0; k < n; k++ {
				// Hermitian symmetry supplies the upper half.
				var c complex128
				if k <= n/2 {
					c = coeff[k]
				} else {
					c = cmplx.Conj(coeff[n-k])
				}
				s += real(c * cmplx.Conj(twiddle(k*t, n)))
			}
			out[t] = s
		}
	}
	scale := 1 / float64(n)
	for i := range out {
		out[i] *= scale
	}
	return out
}

// twiddle is exp(-2*pi*i*m/n).
func twiddle(m, n int) complex128 {
	m %= n
	s, c := math.Sincos(-2 * math.Pi * float64(m) / float64(n))
	return complex(c, s)
}
