package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/formguard/framework/validation"
)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name   string
		tmpl   string
		params []string
		want   string
	}{
		{"no placeholders", "This field is required", nil, "This field is required"},
		{"single", "Must be at least $1 characters", []string{"4"}, "Must be at least 4 characters"},
		{"two", "Between $1 and $2", []string{"2", "8"}, "Between 2 and 8"},
		{"repeated", "$1 or $1", []string{"x"}, "x or x"},
		{"missing placeholder kept", "Between $1 and $2", []string{"2"}, "Between 2 and $2"},
		{"no params keeps all", "Min $1", nil, "Min $1"},
		{"lone dollar", "Costs $ and $1", []string{"5"}, "Costs $ and 5"},
		{"zero is not a placeholder", "$0 $1", []string{"a"}, "$0 a"},
		{"trailing dollar", "x $", []string{"a"}, "x $"},
		{
			"multi digit",
			"$10-$1",
			[]string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
			"j-a",
		},
		{"multi digit beyond params kept", "$12", []string{"a", "b"}, "$12"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validation.FormatMessage(tc.tmpl, tc.params))
		})
	}
}
