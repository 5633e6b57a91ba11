package configure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	tokens, err := Placeholders([]byte("a @X@ b @Y_2@ c @X@"))
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "Y_2"}, tokens)

	// Stray markers are text
	tokens, err = Placeholders([]byte("mail me@example.com, @ alone, @@, @1A@"))
	require.NoError(t, err)
	assert.Empty(t, tokens)

	_, err = Placeholders([]byte("trailing @UNTERMINATED"))
	assert.True(t, errors.Is(err, ErrMalformedTemplate))
}

func TestSubstitute(t *testing.T) {
	{ // Adjacent tokens, escapes and repeated tokens
		out, err := Substitute([]byte("@A@@B@ x@@y @A@\n"), map[string]int{"A": 1, "B": 0})
		require.NoError(t, err)
		assert.Equal(t, "10 x@y 1\n", string(out))
	}
	{ // Every missing token is reported once, in template order, with its line
		tmpl := []byte("first @A@\nsecond @B@\nthird @C@ @B@\n")
		_, err := Substitute(tmpl, map[string]int{"A": 1})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrMissingSubstitution))
		var se *SubstitutionError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, []string{"B", "C"}, se.Tokens())
		assert.Equal(t, 2, se.Missing[0].Line)
		assert.Equal(t, 3, se.Missing[1].Line)
		assert.Contains(t, err.Error(), "@B@")
		assert.Contains(t, err.Error(), "@C@")
		errs := se.Errors()
		require.Len(t, errs, 2)
		for i, e := range errs {
			var me *MissingError
			require.True(t, errors.As(e, &me))
			assert.Equal(t, se.Tokens()[i], me.Token)
			assert.True(t, errors.Is(e, ErrMissingSubstitution))
		}
	}
	{ // No placeholders
		out, err := Substitute([]byte("plain"), nil)
		require.NoError(t, err)
		assert.Equal(t, "plain", string(out))
	}
}

func TestSubstituteIsDeterministic(t *testing.T) {
	values := map[string]int{}
	for i, f := range Registry {
		values[f.Placeholder] = i % 2
	}
	first, err := Substitute(DefaultTemplate, values)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Substitute(DefaultTemplate, values)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}
