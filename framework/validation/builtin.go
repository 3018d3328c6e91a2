package validation

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

// Built-in rule names.
const (
	RuleRequired  = "required"
	RuleMinLen    = "minLen"
	RuleMaxLen    = "maxLen"
	RuleNumber    = "number"
	RuleInteger   = "integer"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleRange     = "range"
	RuleEmail     = "email"
	RuleConfirm   = "confirm"
	RuleDifferent = "different"
	RuleAlpha     = "alpha"
	RuleAlphaNum  = "alphaNum"
	RulePattern   = "pattern"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	alphaRe    = regexp.MustCompile(`^[a-zA-Z]+$`)
	alphaNumRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

	// compiled pattern:<re> parameters
	patternCache sync.Map
)

func builtinRules() []Rule {
	return []Rule{
		{
			Name:    RuleRequired,
			Message: "This field is required",
			Check: func(value string, _ []string, _ Values) bool {
				return strings.TrimSpace(value) != ""
			},
		},
		{
			Name:    RuleMinLen,
			Message: "Must be at least $1 characters",
			Arity:   1,
			Check: func(value string, params []string, _ Values) bool {
				n, ok := parseInt(params[0])
				return ok && trimmedLen(value) >= n
			},
		},
		{
			Name:    RuleMaxLen,
			Message: "Must be at most $1 characters",
			Arity:   1,
			Check: func(value string, params []string, _ Values) bool {
				n, ok := parseInt(params[0])
				return ok && trimmedLen(value) <= n
			},
		},
		{
			Name:    RuleRange,
			Message: "Must be between $1 and $2 characters",
			Arity:   2,
			Check: func(value string, params []string, _ Values) bool {
				lo, okLo := parseInt(params[0])
				hi, okHi := parseInt(params[1])
				if !okLo || !okHi {
					return false
				}
				l := trimmedLen(value)
				return l >= lo && l <= hi
			},
		},
		{
			Name:    RuleNumber,
			Message: "Must be a number",
			Check: func(value string, _ []string, _ Values) bool {
				_, ok := parseNumber(value)
				return ok
			},
		},
		{
			Name:    RuleInteger,
			Message: "Must be a whole number",
			Check: func(value string, _ []string, _ Values) bool {
				_, ok := parseInt(value)
				return ok
			},
		},
		{
			Name:    RuleMin,
			Message: "Must be at least $1",
			Arity:   1,
			Check: func(value string, params []string, _ Values) bool {
				return compareNumbers(value, params[0], func(v, n float64) bool { return v >= n })
			},
		},
		{
			Name:    RuleMax,
			Message: "Must be at most $1",
			Arity:   1,
			Check: func(value string, params []string, _ Values) bool {
				return compareNumbers(value, params[0], func(v, n float64) bool { return v <= n })
			},
		},
		{
			Name:    RuleEmail,
			Message: "Must be a valid email address",
			Check: func(value string, _ []string, _ Values) bool {
				return emailRe.MatchString(strings.TrimSpace(value))
			},
		},
		{
			Name:    RuleConfirm,
			Message: "Must match $1",
			Arity:   1,
			Check: func(value string, params []string, values Values) bool {
				return value == values.Lookup(params[0])
			},
		},
		{
			Name:    RuleDifferent,
			Message: "Must be different from $1",
			Arity:   1,
			Check: func(value string, params []string, values Values) bool {
				return value != values.Lookup(params[0])
			},
		},
		{
			Name:    RuleAlpha,
			Message: "May only contain letters",
			Check: func(value string, _ []string, _ Values) bool {
				return alphaRe.MatchString(value)
			},
		},
		{
			Name:    RuleAlphaNum,
			Message: "May only contain letters and numbers",
			Check: func(value string, _ []string, _ Values) bool {
				return alphaNumRe.MatchString(value)
			},
		},
		{
			Name:    RulePattern,
			Message: "Has an invalid format",
			Arity:   1,
			Check: func(value string, params []string, _ Values) bool {
				re, ok := compilePattern(params[0])
				return ok && re.MatchString(value)
			},
		},
	}
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

func parseInt(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	return n, err == nil
}

// parseNumber accepts decimal and exponent notation but not NaN or infinities.
func parseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func compareNumbers(value, param string, cmp func(v, n float64) bool) bool {
	v, ok := parseNumber(value)
	if !ok {
		return false
	}
	n, ok := parseNumber(param)
	if !ok {
		return false
	}
	return cmp(v, n)
}

func compilePattern(expr string) (*regexp.Regexp, bool) {
	if cached, ok := patternCache.Load(expr); ok {
		re, _ := cached.(*regexp.Regexp)
		return re, re != nil
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		// remember bad expressions too
		patternCache.Store(expr, (*regexp.Regexp)(nil))
		return nil, false
	}
	patternCache.Store(expr, re)
	return re, true
}
