package tokenize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain", "run --flag value", []string{"run", "--flag", "value"}},
		{"quoted segment", `"a b" c`, []string{"a b", "c"}},
		{"whitespace runs", "  python\t\t script.py  ", []string{"python", "script.py"}},
		{"quoted path", `python "/tmp/my dir/x.py"`, []string{"python", "/tmp/my dir/x.py"}},
		{"empty quotes dropped", `echo "" done`, []string{"echo", "done"}},
		{"closing quote ends token", `a"b c"d`, []string{"ab c", "d"}},
		{"unterminated quote closes at end", `run "foo bar`, []string{"run", "foo bar"}},
		{"newline separates", "a\nb", []string{"a", "b"}},
		{"single", "launcher", []string{"launcher"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", `""`, "\t\n"} {
		_, err := Tokenize(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, ErrEmptyCommand))

		var tokErr *TokenizeError
		require.True(t, errors.As(err, &tokErr))
		assert.Equal(t, input, tokErr.Input)
	}
}
