package validation

import "strings"

// FormatMessage substitutes the positional placeholders $1, $2, ... in tmpl
// with params. A placeholder without a matching parameter is kept verbatim.
// Digits are read greedily, so $10 refers to the tenth parameter.
//
//	FormatMessage("Must be between $1 and $2 characters", []string{"4", "8"})
//	// "Must be between 4 and 8 characters"
func FormatMessage(tmpl string, params []string) string {
	if len(params) == 0 || !strings.Contains(tmpl, "$") {
		return tmpl
	}

	var b strings.Builder
	b.Grow(len(tmpl))

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		if c != '$' {
			b.WriteByte(c)
			continue
		}

		j := i + 1
		n := 0
		for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' && n <= len(params) {
			n = n*10 + int(tmpl[j]-'0')
			j++
		}
		if j == i+1 || n < 1 || n > len(params) {
			b.WriteByte(c)
			continue
		}
		b.WriteString(params[n-1])
		i = j - 1
	}
	return b.String()
}
