package configure

import (
	"bytes"
	"errors"
	"fmt"
	"go/format"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/cespare/xxhash/v2"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog/log"
)

//go:embed templates/config.go.in
var DefaultTemplate []byte

// Generator turns a template and a build configuration into the generated
// artifact.
type Generator struct {
	Template []byte
	Name     string // Template name used in messages
	Format   bool   // Run the output through gofmt
}

func NewGenerator() *Generator {
	return &Generator{
		Template: DefaultTemplate,
		Name:     "config.go.in",
		Format:   true,
	}
}

// LoadTemplate reads a custom template. Only templates named *.go.in are
// gofmt'ed after substitution.
func LoadTemplate(path string) (g *Generator, err error) {
	var (
		data []byte
	)
	if path, err = homedir.Expand(path); err != nil {
		return
	}
	if data, err = ioutil.ReadFile(path); err != nil {
		return
	}
	g = &Generator{
		Template: data,
		Name:     filepath.Base(path),
		Format:   strings.HasSuffix(path, ".go.in"),
	}
	return
}

// Validate checks the values feeding the template's placeholders. Problems
// that do not prevent a correct artifact are returned as warnings.
func (g *Generator) Validate(bc *BuildConfig) (warnings []string, err error) {
	var (
		tokens []string
		used   = make(map[string]bool)
	)
	if tokens, err = Placeholders(g.Template); err != nil {
		return
	}
	for _, token := range tokens {
		used[token] = true
		v, ok := bc.Values[token]
		if !ok {
			continue // reported by Substitute with line numbers
		}
		f, known := ByPlaceholder(token)
		if !known {
			f = Flag{Name: token, Placeholder: token, Domain: boolDomain()}
		}
		if !f.Allows(v) {
			return nil, fmt.Errorf("%w: %s = %d, allowed %v", ErrInvalidValue, token, v, f.Domain)
		}
		if f.Requires != "" && v == 1 {
			if req, ok := bc.Values[f.Requires]; ok && req == 0 {
				warnings = append(warnings, fmt.Sprintf("%s is enabled but %s is not", token, f.Requires))
			}
		}
	}
	for group, members := range Groups() {
		var (
			enabled []string
			present = 0
		)
		for _, m := range members {
			if v, ok := bc.Values[m]; ok && used[m] {
				present++
				if v == 1 {
					enabled = append(enabled, m)
				}
			}
		}
		if present != len(members) {
			continue
		}
		if len(enabled) != 1 {
			return nil, fmt.Errorf("%w: exactly one %s backend of %v must be enabled, got %d",
				ErrBackendConflict, group, members, len(enabled))
		}
	}
	for _, token := range bc.Tokens() {
		if !used[token] {
			warnings = append(warnings, fmt.Sprintf("%s is not used by %s", token, g.Name))
		}
	}
	return
}

// Generate validates bc and substitutes it into the template.
func (g *Generator) Generate(bc *BuildConfig) (out []byte, err error) {
	var (
		warnings []string
	)
	if warnings, err = g.Validate(bc); err != nil {
		return
	}
	for _, w := range warnings {
		log.Warn().Str("template", g.Name).Msg(w)
	}
	if out, err = Substitute(g.Template, bc.Values); err != nil {
		return
	}
	if g.Format {
		var formatted []byte
		if formatted, err = format.Source(out); err != nil {
			return nil, fmt.Errorf("%w: %s does not produce valid Go: %v", ErrMalformedTemplate, g.Name, err)
		}
		out = formatted
	}
	return
}

// Digest fingerprints generated output for reports.
func Digest(out []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(out))
}

// WriteFile replaces path with out unless it already holds the same bytes,
// so an unchanged artifact keeps its modification time.
func WriteFile(path string, out []byte) (changed bool, err error) {
	var (
		existing []byte
		tmp      *os.File
	)
	if existing, err = ioutil.ReadFile(path); err == nil && bytes.Equal(existing, out) {
		return false, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return
	}
	if err = os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	if tmp, err = ioutil.TempFile(filepath.Dir(path), "."+filepath.Base(path)+".*"); err != nil {
		return
	}
	defer os.Remove(tmp.Name())
	if _, err = tmp.Write(out); err != nil {
		tmp.Close()
		return
	}
	if err = tmp.Close(); err != nil {
		return
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return
	}
	return true, nil
}

// Check regenerates the artifact and compares it with the file at path.
// The fresh output is returned when the file is up to date.
func (g *Generator) Check(path string, bc *BuildConfig) (fresh []byte, err error) {
	var (
		existing []byte
	)
	if fresh, err = g.Generate(bc); err != nil {
		return nil, err
	}
	if existing, err = ioutil.ReadFile(path); err != nil {
		return nil, err
	}
	if bytes.Equal(fresh, existing) {
		return fresh, nil
	}
	line, want, got := firstDiff(fresh, existing)
	return nil, fmt.Errorf("%w: %s line %d: want %q, have %q", ErrStale, path, line, want, got)
}

func firstDiff(a, b []byte) (line int, la, lb string) {
	var (
		al = strings.Split(string(a), "\n")
		bl = strings.Split(string(b), "\n")
	)
	for i := 0; i < len(al) || i < len(bl); i++ {
		la, lb = "", ""
		if i < len(al) {
			la = al[i]
		}
		if i < len(bl) {
			lb = bl[i]
		}
		if la != lb || i >= len(al) || i >= len(bl) {
			return i + 1, la, lb
		}
	}
	return 0, "", ""
}
