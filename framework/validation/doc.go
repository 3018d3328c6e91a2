// Package validation is a declarative field-validation engine for
// interactive forms.
//
// # Overview
//
// Each field declares a pipeline of named rules as a pipe-separated string.
// The engine compiles every pipeline once, when the Validator is built, and
// then evaluates fields as the host reports value changes or a submission.
// Errors are kept per field and per rule; exactly one message per field is
// surfaced, chosen by declaration order.
//
// # Basic Usage
//
//	form := validation.MapForm{"password": "", "confirm": ""}
//
//	v, err := validation.New(form, []validation.Field{
//	    {Name: "password", Rules: "required|minLen:5", Sync: "confirm"},
//	    {Name: "confirm", Rules: "required|confirm:password"},
//	})
//	if err != nil {
//	    // configuration error: unknown rule, arity mismatch, missing field ...
//	}
//
//	v.OnError(func(e validation.ErrorEvent) { ... })
//	v.OnSubmit(func(values validation.Values) { ... })
//
//	_ = v.Evaluate("password", "abcde")
//	msg, invalid := v.Message("confirm")
//
// Changing "password" re-evaluates "confirm" because of the Sync declaration,
// so a stale confirmation is reported even though only the password changed.
//
// # Rule strings
//
// Segments are separated by "|". A segment is a rule name, optionally
// followed by ":" and comma-separated parameters. The parameter count must
// equal the rule's arity. Parameters cannot contain "|" or ",".
//
// # Available Rules
//
//   - required          non-empty after trimming
//   - minLen:n          at least n characters (trimmed, counted in runes)
//   - maxLen:n          at most n characters
//   - range:a,b         between a and b characters, inclusive
//   - number            parses as a finite number
//   - integer           parses as an integer
//   - min:n / max:n     numeric bounds
//   - email             local@domain.tld shape
//   - confirm:field     equals the last recorded value of field
//   - different:field   differs from the last recorded value of field
//   - alpha / alphaNum  ASCII letters / letters and digits
//   - pattern:re        matches the regular expression re
//
// A rule other than "required" passes on an empty value unless the field is
// also required, so optional fields only validate once filled in.
//
// # Registry
//
// Rules live in a Registry. DefaultRegistry is shared by the whole process;
// NewBuiltinRegistry returns an isolated copy for tests. Register, SetMessage
// and SetMessages must be called before the validators that depend on the
// change are built.
package validation
