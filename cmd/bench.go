/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/pkg/profile"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/atconfig/cmd/gen"
	"github.com/notargets/atconfig/fft"
	"github.com/notargets/atconfig/linalg"
	"github.com/notargets/atconfig/parallel"
)

// BenchCmd represents the bench command
var BenchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run each kernel through the path selected by the compiled-in flags",
	Long: `
Times every kernel of the linalg and fft packages on random input and reports
which implementation the build configuration selected.

atconfig bench -n 256 --profile cpu`,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			n, _       = cmd.Flags().GetInt("size")
			kind, _    = cmd.Flags().GetString("profile")
			dir, _     = cmd.Flags().GetString("profileDir")
			threads, _ = cmd.Flags().GetInt("threads")
		)
		if n < 2 {
			return fmt.Errorf("size must be at least 2, got %d", n)
		}
		switch kind {
		case "":
		case "cpu":
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(dir), profile.Quiet).Stop()
		case "mem":
			defer profile.Start(profile.MemProfile, profile.ProfilePath(dir), profile.Quiet).Stop()
		default:
			return fmt.Errorf("unknown profile %q, want cpu or mem", kind)
		}
		parallel.SetNumThreads(threads)
		bm := NewBenchmarks(n, 1)
		fmt.Fprintf(cmd.OutOrStdout(), "BLAS: %s, parallel: %s x %d, fft: %s\n",
			linalg.BLASImplementation(), parallel.Selected(), linalg.Threads(), fft.Selected())
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "OP\tPATH\tTIME\tCYCLES")
		for _, r := range bm.Run() {
			cycles := "-"
			if r.Cycles != 0 {
				cycles = fmt.Sprint(r.Cycles)
			}
			if r.Err != nil {
				log.Warn().Err(r.Err).Str("op", r.Op).Msg("kernel failed")
			}
			fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", r.Op, r.Path, r.Elapsed, cycles)
		}
		return tw.Flush()
	},
}

type BenchResult struct {
	Op      string
	Path    string
	Elapsed time.Duration
	Cycles  uint64
	Err     error
}

// Benchmarks holds the inputs shared by every kernel run.
type Benchmarks struct {
	N       int
	A, B    *mat.Dense
	X, Y    []float64
	X32     []float32
	Y32     []float32
	Entries []linalg.Entry
}

func NewBenchmarks(n int, seed int64) (bm *Benchmarks) {
	var (
		rng  = rand.New(rand.NewSource(seed))
		fill = func(m *mat.Dense) {
			raw := m.RawMatrix()
			for i := range raw.Data {
				raw.Data[i] = rng.Float64()
			}
		}
	)
	bm = &Benchmarks{
		N: n,
		A: mat.NewDense(n, n, nil),
		B: mat.NewDense(n, n, nil),
		X: make([]float64, n*n),
		Y: make([]float64, n*n),
	}
	fill(bm.A)
	fill(bm.B)
	for i := 0; i < n; i++ {
		bm.A.Set(i, i, bm.A.At(i, i)+float64(n)) // diagonally dominant
	}
	bm.X32, bm.Y32 = make([]float32, n*n), make([]float32, n*n)
	for i := range bm.X {
		bm.X[i], bm.Y[i] = rng.Float64(), rng.Float64()
		bm.X32[i], bm.Y32[i] = float32(bm.X[i]), float32(bm.Y[i])
	}
	for i := 0; i < n; i++ {
		bm.Entries = append(bm.Entries,
			linalg.Entry{I: i, J: i, V: 2},
			linalg.Entry{I: i, J: (i + 1) % n, V: -1})
	}
	return
}

// Run executes every kernel once, in Report order, followed by the FFT.
func (bm *Benchmarks) Run() (results []BenchResult) {
	kernels := map[string]func() error{
		"gemm":  func() error { linalg.Gemm(bm.A, bm.B); return nil },
		"dot64": func() error { linalg.Dot64(bm.X, bm.Y); return nil },
		"dot32": func() error { linalg.Dot32(bm.X32, bm.Y32); return nil },
		"inverse": func() error {
			_, err := linalg.Inverse(bm.A)
			return err
		},
		"spmm":   func() error { linalg.SpMM(bm.N, bm.N, bm.Entries, bm.B); return nil },
		"conv1d": func() error { linalg.Conv1D(bm.X, bm.Y[:bm.N], 1); return nil },
	}
	for _, op := range linalg.Report() {
		results = append(results, measure(op.Name, string(op.Path), kernels[op.Name]))
	}
	results = append(results, measure("rfft", string(fft.Selected()), func() error {
		fft.RFFT(bm.X)
		return nil
	}))
	return
}

func measure(op, path string, fn func() error) (r BenchResult) {
	r = BenchResult{Op: op, Path: path}
	start := time.Now()
	cycles, ok := cpuCycles(func() error {
		r.Err = fn()
		return r.Err
	})
	r.Elapsed = time.Since(start)
	if ok {
		r.Cycles = cycles
	}
	return
}

func init() {
	gen.RootCmd.AddCommand(BenchCmd)
	BenchCmd.Flags().IntP("size", "n", 128, "matrix dimension")
	BenchCmd.Flags().IntP("threads", "p", 0, "parallel degree, 0 for GOMAXPROCS")
	BenchCmd.Flags().String("profile", "", "write a cpu or mem profile")
	BenchCmd.Flags().String("profileDir", ".", "directory for the profile")
}
