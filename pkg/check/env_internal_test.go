package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_EnvBoolParsing(t *testing.T) {
	const name = "CHECKED_TEST_TOGGLE"

	cases := map[string]bool{
		"1":     true,
		"true":  true,
		"TRUE":  true,
		"0":     false,
		"false": false,
		"":      false,
		"yes":   false, // not a strconv boolean
	}

	for value, expected := range cases {
		t.Setenv(name, value)
		assert.Equal(t, expected, envBool(name), "value %q", value)
	}
}
