// Command atconfig-gen writes and checks atconfig/config_gen.go. It only
// links the generator, so it builds before the generated file exists.
package main

import (
	"os"

	"github.com/notargets/atconfig/cmd/gen"
)

func main() {
	if err := gen.Execute(); err != nil {
		os.Exit(1)
	}
}
