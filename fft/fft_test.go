package fft

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/atconfig/atconfig"
)

func TestRFFTPathsAgree(t *testing.T) {
	for _, n := range []int{1, 2, 7, 16, 45} {
		x := make([]float64, n)
		for i := range x {
			x[i] = math.Sin(float64(i)*0.7) + 0.25*float64(i%3)
		}
		direct := rfftWith(Direct, x)
		planned := rfftWith(Plan, x)
		assert.Len(t, direct, n/2+1)
		assert.Len(t, planned, n/2+1)
		for k := range direct {
			assert.InDelta(t, 0, cmplx.Abs(direct[k]-planned[k]), 1e-9, "n %d k %d", n, k)
		}
		for _, path := range []Path{Direct, Plan} {
			back := irfftWith(path, rfftWith(path, x), n)
			assert.InDeltaSlice(t, x, back, 1e-9, "path %s n %d", path, n)
		}
	}
}

func TestRFFTKnownValues(t *testing.T) {
	// A pure cosine at bin 1 of an 8 point sequence.
	x := make([]float64, 8)
	for i := range x {
		x[i] = math.Cos(2 * math.Pi * float64(i) / 8)
	}
	for _, path := range []Path{Direct, Plan} {
		c := rfftWith(path, x)
		assert.InDelta(t, 4, real(c[1]), 1e-12, "path %s", path)
		assert.InDelta(t, 0, cmplx.Abs(c[0]), 1e-12, "path %s", path)
		assert.InDelta(t, 0, cmplx.Abs(c[2]), 1e-12, "path %s", path)
	}
	assert.Nil(t, RFFT(nil))
}

func TestSelectedFollowsFlag(t *testing.T) {
	if atconfig.PocketFFTEnabled() {
		assert.Equal(t, Plan, Selected())
	} else {
		assert.Equal(t, Direct, Selected())
	}
}
