package parentsp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func id(c byte) string {
	return strings.Repeat(string(c), 40)
}

func TestRun(t *testing.T) {
	cases := []struct {
		Label string
		In    string
		Want  Parents
	}{
		{
			"root and child",
			id('b') + "@" + id('a') + "\n" + id('a') + "@",
			Parents{id('a'): nil, id('b'): {id('a')}},
		},
		{
			"merge keeps parent order",
			id('m') + "@" + id('b') + " " + id('f') + "\n",
			Parents{id('m'): {id('b'), id('f')}},
		},
		{
			"blank lines and padding",
			"\n  " + id('c') + "@" + id('b') + "  \n\n",
			Parents{id('c'): {id('b')}},
		},
		{
			"empty",
			"",
			Parents{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.Label, func(t *testing.T) {
			got, err := New(strings.NewReader(tc.In)).Run()
			require.NoError(t, err)
			assert.Equal(t, tc.Want, got)
		})
	}
}

func TestRunInvalid(t *testing.T) {
	for _, in := range []string{
		"nonsense",
		"abc@" + id('a'),
		id('a') + "@" + id('b') + "@" + id('c'),
	} {
		_, err := New(strings.NewReader(in)).Run()
		assert.Error(t, err, in)
	}
}
