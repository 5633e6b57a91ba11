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
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/notargets/atconfig/configure"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Substitute a build configuration into the flag template",
	Long: `
Reads the build configuration, substitutes one value for every placeholder
of the template and writes the generated file. Every missing value is
reported and nothing is written. An unchanged output file is left untouched.

atconfig generate -c build/default.yaml -o atconfig/config_gen.go
atconfig generate -c build/default.yaml -D AT_NNPACK_ENABLED=ON -o -`,
	PreRunE: bindInputFlags,
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		var (
			in  *Inputs
			out []byte
		)
		if in, err = loadInputs(); err != nil {
			return
		}
		if out, err = in.Generator.Generate(in.Build); err != nil {
			return
		}
		if in.Output == "-" {
			_, err = cmd.OutOrStdout().Write(out)
			return
		}
		changed, err := configure.WriteFile(in.Output, out)
		if err != nil {
			return
		}
		log.Info().
			Str("output", in.Output).
			Str("digest", configure.Digest(out)).
			Bool("changed", changed).
			Msg("generated")
		return
	},
}

// Inputs gathers what generate and check need.
type Inputs struct {
	Build     *configure.BuildConfig
	Generator *configure.Generator
	Output    string
}

func addInputFlags(f *pflag.FlagSet) {
	f.StringP("build-config", "c", "", "YAML build configuration supplying the flag values")
	f.StringP("template", "t", "", "template file (default is the embedded atconfig template)")
	f.StringP("output", "o", "atconfig/config_gen.go", "generated file, - for stdout")
	f.StringSliceP("define", "D", nil, "TOKEN=VALUE assignment overriding the build configuration")
}

// bindInputFlags binds the running command's flags, so generate and check
// can share viper keys.
func bindInputFlags(cmd *cobra.Command, args []string) error {
	return viper.BindPFlags(cmd.Flags())
}

func loadInputs() (in *Inputs, err error) {
	in = &Inputs{
		Output: viper.GetString("output"),
	}
	if path := viper.GetString("build-config"); path != "" {
		if in.Build, err = configure.LoadBuildConfig(path); err != nil {
			return nil, err
		}
	} else {
		in.Build = configure.NewBuildConfig()
	}
	for _, assign := range viper.GetStringSlice("define") {
		if err = in.Build.Set(assign); err != nil {
			return nil, err
		}
	}
	if path := viper.GetString("template"); path != "" {
		if in.Generator, err = configure.LoadTemplate(path); err != nil {
			return nil, err
		}
	} else {
		in.Generator = configure.NewGenerator()
	}
	if len(in.Build.Values) == 0 {
		return nil, fmt.Errorf("no flag values: pass --build-config or --define")
	}
	if log.Debug().Enabled() {
		in.Build.Print(os.Stderr)
	}
	return
}

func init() {
	RootCmd.AddCommand(GenerateCmd)
	addInputFlags(GenerateCmd.Flags())
}
