//go:build linux
// +build linux

package cmd

import (
	"github.com/hodgesds/perf-utils"
	"github.com/rs/zerolog/log"
)

// cpuCycles runs fn under a hardware cycle counter. Without perf_event
// access (containers, perf_event_paranoid) fn still runs and ok is false.
func cpuCycles(fn func() error) (cycles uint64, ok bool) {
	var ran bool
	pv, err := perf.CPUCycles(func() error {
		ran = true
		return fn()
	})
	if err != nil {
		log.Debug().Err(err).Msg("cpu cycle counter unavailable")
		if !ran {
			_ = fn()
		}
		return 0, false
	}
	return pv.Value, true
}
