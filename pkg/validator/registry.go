package validator

import (
	"slices"
	"sync"
)

// Built-in rule names.
const (
	RuleRequired = "required"
	RuleNullable = "nullable"
	RuleString   = "string"
	RuleInteger  = "integer"
	RuleNumeric  = "numeric"
	RuleBoolean  = "boolean"
	RuleArray    = "array"
	RuleEmail    = "email"
	RuleURL      = "url"
	RuleDate     = "date"
	RuleMin      = "min"
	RuleMax      = "max"
	RuleBetween  = "between"
	RuleIn       = "in"
)

// Registry maps rule names to checks. The zero value is not usable; create
// one with NewRegistry. Registries are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewRegistry returns a registry preloaded with the built-in rules.
func NewRegistry() *Registry {
	r := &Registry{checks: make(map[string]Check, 16)}
	for name, check := range builtinChecks() {
		r.checks[name] = check
	}
	return r
}

func builtinChecks() map[string]Check {
	return map[string]Check{
		RuleRequired: checkRequired,
		RuleNullable: checkNullable,
		RuleString:   checkString,
		RuleInteger:  checkInteger,
		RuleNumeric:  checkNumeric,
		RuleBoolean:  checkBoolean,
		RuleArray:    checkArray,
		RuleEmail:    checkEmail,
		RuleURL:      checkURL,
		RuleDate:     checkDate,
		RuleMin:      checkMin,
		RuleMax:      checkMax,
		RuleBetween:  checkBetween,
		RuleIn:       checkIn,
	}
}

// Register adds a rule or replaces an existing one with the same name.
func (r *Registry) Register(name string, check Check) error {
	if name == "" {
		return ErrEmptyRuleName
	}
	if check == nil {
		return ErrNilCheck
	}
	r.mu.Lock()
	r.checks[name] = check
	r.mu.Unlock()
	return nil
}

// MustRegister is like Register but panics on error. Intended for init-time
// registration of application rules.
func (r *Registry) MustRegister(name string, check Check) {
	if err := r.Register(name, check); err != nil {
		panic(err)
	}
}

// Lookup returns the check registered under name.
func (r *Registry) Lookup(name string) (Check, bool) {
	r.mu.RLock()
	check, ok := r.checks[name]
	r.mu.RUnlock()
	return check, ok
}

// Names returns all registered rule names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}
