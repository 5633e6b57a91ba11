package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/atconfig/cmd/gen"
	"github.com/notargets/atconfig/linalg"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	var out, stderr bytes.Buffer
	gen.RootCmd.SetOut(&out)
	gen.RootCmd.SetErr(&stderr)
	gen.RootCmd.SetArgs(args)
	err := gen.RootCmd.Execute()
	return out.String(), err
}

func TestToolHasEveryCommand(t *testing.T) {
	var names []string
	for _, c := range gen.RootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"generate", "check", "flags", "bench"})
}

func TestFlagsListing(t *testing.T) {
	out, err := run(t, "flags")
	require.NoError(t, err)
	assert.Contains(t, out, "AT_BUILD_WITH_BLAS")
	assert.Contains(t, out, "USE_BLAS")
	assert.Contains(t, out, "BuildWithBLAS()")
	assert.NotContains(t, out, "undefined")
}

func TestBenchmarksRun(t *testing.T) {
	results := NewBenchmarks(8, 1).Run()
	require.Len(t, results, len(linalg.Report())+1)
	for i, op := range linalg.Report() {
		assert.Equal(t, op.Name, results[i].Op)
		assert.Equal(t, string(op.Path), results[i].Path)
		assert.NoError(t, results[i].Err, op.Name)
	}
	assert.Equal(t, "rfft", results[len(results)-1].Op)
}
