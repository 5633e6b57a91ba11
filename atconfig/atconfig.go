//go:generate go run ../cmd/atconfig-gen generate --build-config ../build/default.yaml --output config_gen.go

// Package atconfig exposes the capability flags chosen when the build was
// configured. Each flag is a niladic predicate defined in config_gen.go,
// which `atconfig generate` writes from a build configuration:
//
//	if atconfig.BuildWithBLAS() {
//		// fast path
//	}
//
// The predicates are constant expressions, so the compiler drops the branch
// that is not taken. A checkout without config_gen.go does not compile.
package atconfig

// Flag is a configured value as seen by the generated artifact.
type Flag struct {
	Name  string
	Value int
}

func (f Flag) Enabled() bool { return f.Value == 1 }

var _ = generated

// All returns the configured flags in declaration order.
func All() []Flag {
	out := make([]Flag, len(flags))
	copy(out, flags[:])
	return out
}

func Lookup(name string) (Flag, bool) {
	for _, f := range flags {
		if f.Name == name {
			return f, true
		}
	}
	return Flag{}, false
}
