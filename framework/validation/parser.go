package validation

import (
	"fmt"
	"strings"
)

// RuleRef is one parsed step of a field pipeline, e.g. minLen:4 becomes
// {Name: "minLen", Params: ["4"]}. Params are kept as raw strings.
type RuleRef struct {
	Name   string
	Params []string
}

// String renders the reference back in rule-string form.
func (r RuleRef) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	return r.Name + ":" + strings.Join(r.Params, ",")
}

// ParseRules turns a pipe-separated rule string into an ordered pipeline.
//
//	refs, err := validation.ParseRules(reg, "required|minLen:4|maxLen:5")
//
// Every segment must name a registered rule and carry exactly the rule's
// arity in comma-separated parameters. Empty segments are not skipped: they
// name the empty rule and fail with ErrUnknownRule.
func ParseRules(reg *Registry, rules string) ([]RuleRef, error) {
	refs, _, err := parseRules(reg, rules)
	return refs, err
}

// parseRules also returns the rule definitions the references were checked
// against, index for index.
func parseRules(reg *Registry, rules string) ([]RuleRef, []Rule, error) {
	segments := strings.Split(rules, "|")
	refs := make([]RuleRef, 0, len(segments))
	defs := make([]Rule, 0, len(segments))

	for i, segment := range segments {
		ref, rule, err := parseSegment(reg, segment)
		if err != nil {
			return nil, nil, &RuleError{Segment: segment, Index: i, Err: err}
		}
		refs = append(refs, ref)
		defs = append(defs, rule)
	}
	return refs, defs, nil
}

func parseSegment(reg *Registry, segment string) (RuleRef, Rule, error) {
	// minLen:4 → name=minLen, rawParams=4
	name, rawParams, hasParams := strings.Cut(segment, ":")

	rule, err := reg.Lookup(name)
	if err != nil {
		return RuleRef{}, Rule{}, err
	}

	var params []string
	if hasParams {
		params = strings.Split(rawParams, ",")
	}

	if len(params) != rule.Arity {
		return RuleRef{}, Rule{}, fmt.Errorf("%w: %q takes %d, got %d", ErrArityMismatch, name, rule.Arity, len(params))
	}
	return RuleRef{Name: name, Params: params}, rule, nil
}
