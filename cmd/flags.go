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
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/notargets/atconfig/atconfig"
	"github.com/notargets/atconfig/cmd/gen"
	"github.com/notargets/atconfig/configure"
)

// FlagsCmd represents the flags command
var FlagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "List the recognized capability flags and their compiled-in values",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPLACEHOLDER\tACCESSOR\tKIND\tVALUE")
		for _, f := range configure.Registry {
			value := "undefined"
			if c, ok := atconfig.Lookup(f.Name); ok {
				value = fmt.Sprint(c.Value)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s()\t%s\t%s\n", f.Name, f.Placeholder, f.Accessor, f.Kind, value)
		}
		return tw.Flush()
	},
}

func init() {
	gen.RootCmd.AddCommand(FlagsCmd)
}
