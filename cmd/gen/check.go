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
package gen

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notargets/atconfig/configure"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated file matches the build configuration",
	Long: `
Regenerates the flag file in memory and compares it byte for byte with the
file on disk. Exits non-zero when the file is stale or missing.

atconfig check -c build/default.yaml -o atconfig/config_gen.go`,
	PreRunE: bindInputFlags,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			in    *Inputs
			fresh []byte
		)
		if in, err = loadInputs(); err != nil {
			return
		}
		if in.Output == "-" {
			return fmt.Errorf("check needs a file, not stdout")
		}
		if fresh, err = in.Generator.Check(in.Output, in.Build); err != nil {
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date (%s)\n", in.Output, configure.Digest(fresh))
		return
	},
}

func init() {
	RootCmd.AddCommand(CheckCmd)
	addInputFlags(CheckCmd.Flags())
}
