package configure

import (
	"bytes"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
)

// Placeholders use the configure_file convention: @NAME@, NAME being an
// identifier. "@@" is a literal "@". Any other "@" is copied through.

type segment struct {
	text  []byte
	token string // Empty for literal text
	line  int
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdent(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func scan(tmpl []byte) (segs []segment, err error) {
	var (
		line  = 1
		start int
	)
	flush := func(end int) {
		if end > start {
			segs = append(segs, segment{text: tmpl[start:end], line: line})
		}
	}
	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		if c == '\n' {
			line++
			i++
			continue
		}
		if c != '@' {
			i++
			continue
		}
		j := i + 1
		if j < len(tmpl) && isIdentStart(tmpl[j]) {
			for j < len(tmpl) && isIdent(tmpl[j]) {
				j++
			}
			if j == len(tmpl) {
				err = fmt.Errorf("%w: line %d: unterminated placeholder %q",
					ErrMalformedTemplate, line, tmpl[i:j])
				return
			}
			if tmpl[j] == '@' {
				flush(i)
				segs = append(segs, segment{token: string(tmpl[i+1 : j]), line: line})
				i = j + 1
				start = i
				continue
			}
			i = j
			continue
		}
		if j < len(tmpl) && tmpl[j] == '@' {
			flush(i + 1) // keep one "@"
			i = j + 1
			start = i
			continue
		}
		i++
	}
	flush(len(tmpl))
	return
}

// Placeholders returns the distinct tokens of tmpl in order of first
// appearance.
func Placeholders(tmpl []byte) (tokens []string, err error) {
	var segs []segment
	if segs, err = scan(tmpl); err != nil {
		return
	}
	seen := make(map[string]bool)
	for _, s := range segs {
		if s.token != "" && !seen[s.token] {
			seen[s.token] = true
			tokens = append(tokens, s.token)
		}
	}
	return
}

// Substitute replaces every placeholder with its value. Every missing token
// is reported, not only the first one.
func Substitute(tmpl []byte, values map[string]int) (out []byte, err error) {
	var (
		segs    []segment
		missing []*MissingError
		buf     bytes.Buffer
		seen    = make(map[string]bool)
	)
	if segs, err = scan(tmpl); err != nil {
		return
	}
	buf.Grow(len(tmpl))
	for _, s := range segs {
		if s.token == "" {
			buf.Write(s.text)
			continue
		}
		v, ok := values[s.token]
		if !ok {
			if !seen[s.token] {
				missing = append(missing, &MissingError{Token: s.token, Line: s.line})
			}
			seen[s.token] = true
			continue
		}
		buf.WriteString(strconv.Itoa(v))
	}
	if len(missing) != 0 {
		err = newSubstitutionError(missing)
		return
	}
	out = buf.Bytes()
	return
}

// SubstitutionError carries every placeholder left without a value.
type SubstitutionError struct {
	Missing  []*MissingError
	combined error
}

func newSubstitutionError(missing []*MissingError) *SubstitutionError {
	e := &SubstitutionError{Missing: missing}
	for _, m := range missing {
		e.combined = multierr.Append(e.combined, m)
	}
	return e
}

func (e *SubstitutionError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMissingSubstitution, e.combined)
}

// Errors returns one *MissingError per missing placeholder.
func (e *SubstitutionError) Errors() []error { return multierr.Errors(e.combined) }

func (e *SubstitutionError) Unwrap() error { return ErrMissingSubstitution }

// Tokens lists the missing placeholders in template order.
func (e *SubstitutionError) Tokens() (tokens []string) {
	for _, m := range e.Missing {
		tokens = append(tokens, m.Token)
	}
	return
}
