package validator

import "strings"

// Rule is a parsed rule descriptor, e.g. "between:1,5" → {between [1 5]}.
type Rule struct {
	Name   string
	Params []string
}

// ParseRule splits a descriptor on the first ':' into the rule name and its
// parameter tail, then splits the tail on ','. A descriptor without a tail
// yields an empty parameter list. There is no escaping: parameters cannot
// contain ','.
func ParseRule(descriptor string) Rule {
	name, tail, ok := strings.Cut(descriptor, ":")
	if !ok {
		return Rule{Name: name, Params: []string{}}
	}
	return Rule{Name: name, Params: strings.Split(tail, ",")}
}

// ParseRules parses each descriptor in order.
func ParseRules(descriptors ...string) []Rule {
	rules := make([]Rule, 0, len(descriptors))
	for _, d := range descriptors {
		rules = append(rules, ParseRule(d))
	}
	return rules
}

// Param returns the i-th parameter and whether it exists.
func (r Rule) Param(i int) (string, bool) {
	if i < 0 || i >= len(r.Params) {
		return "", false
	}
	return r.Params[i], true
}

// String renders the rule back into descriptor form.
func (r Rule) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	return r.Name + ":" + strings.Join(r.Params, ",")
}

func hasRule(rules []Rule, name string) bool {
	for _, r := range rules {
		if r.Name == name {
			return true
		}
	}
	return false
}

// FieldRules binds a field name to its ordered rules.
type FieldRules struct {
	Name  string
	Rules []Rule
}

// Field declares a field together with its rule descriptors.
//
//	validator.Field("priority", "integer", "between:1,5")
func Field(name string, descriptors ...string) FieldRules {
	return FieldRules{Name: name, Rules: ParseRules(descriptors...)}
}

// RuleSet is an ordered field → rules mapping. The declared fields are also
// the whitelist for validated output. A RuleSet is immutable once built and
// safe to share between goroutines.
type RuleSet struct {
	fields []FieldRules
	index  map[string]int
}

// NewRuleSet builds a rule set preserving declaration order. Declaring the
// same field twice appends the second rule list to the first.
func NewRuleSet(fields ...FieldRules) RuleSet {
	s := RuleSet{
		fields: make([]FieldRules, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for _, f := range fields {
		s.add(f)
	}
	return s
}

func (s *RuleSet) add(f FieldRules) {
	rules := make([]Rule, len(f.Rules))
	copy(rules, f.Rules)

	if i, ok := s.index[f.Name]; ok {
		s.fields[i].Rules = append(s.fields[i].Rules, rules...)
		return
	}
	s.index[f.Name] = len(s.fields)
	s.fields = append(s.fields, FieldRules{Name: f.Name, Rules: rules})
}

// With returns a new rule set containing s followed by the given fields.
// The receiver is left untouched.
func (s RuleSet) With(fields ...FieldRules) RuleSet {
	out := NewRuleSet(s.fields...)
	for _, f := range fields {
		out.add(f)
	}
	return out
}

// Fields returns the declared field names in declaration order.
func (s RuleSet) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.Name
	}
	return names
}

// Rules returns the rules declared for field, or nil.
func (s RuleSet) Rules(field string) []Rule {
	i, ok := s.index[field]
	if !ok {
		return nil
	}
	return s.fields[i].Rules
}

// Has reports whether field is declared.
func (s RuleSet) Has(field string) bool {
	_, ok := s.index[field]
	return ok
}

// Len returns the number of declared fields.
func (s RuleSet) Len() int {
	return len(s.fields)
}
