package input

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_DirectReader_ReadExpression(t *testing.T) {
	testCases := []struct {
		name       string
		input      string
		allowBlank bool
		expect     []string
	}{
		{
			name:   "single line",
			input:  "1 + 2\n",
			expect: []string{"1 + 2"},
		},
		{
			name:   "no trailing newline",
			input:  "1 + 2",
			expect: []string{"1 + 2"},
		},
		{
			name:   "blank lines skipped",
			input:  "1\n\n   \n2\n",
			expect: []string{"1", "2"},
		},
		{
			name:       "blank lines kept",
			input:      "1\n\n2\n",
			allowBlank: true,
			expect:     []string{"1", "", "2"},
		},
		{
			name:   "surrounding space trimmed",
			input:  "  (3)\t\n",
			expect: []string{"(3)"},
		},
		{
			name:   "empty",
			input:  "",
			expect: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := NewDirectReader(strings.NewReader(tc.input))
			r.AllowBlank(tc.allowBlank)
			defer r.Close()

			var actual []string
			for {
				line, err := r.ReadExpression()
				if err == io.EOF {
					assert.Equal("", line)
					break
				}
				if !assert.NoError(err) {
					return
				}
				actual = append(actual, line)
			}

			assert.Equal(tc.expect, actual)
		})
	}
}
