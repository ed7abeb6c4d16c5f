package validator

import (
	"log/slog"
	"maps"

	"github.com/dmitrymomot/taskboard/pkg/logger"
)

// Engine evaluates rule sets against input. An Engine is immutable after New
// and safe for concurrent use; every call builds its own error collection.
type Engine struct {
	registry    *Registry
	catalog     Messages
	templates   map[string]MessageFunc
	logger      *slog.Logger
	strict      bool
	looseChoice bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the default rule registry. Nil is ignored.
func WithRegistry(r *Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.registry = r
		}
	}
}

// WithMessages adds engine-wide "field.rule" overrides. They are consulted
// after a request's own overrides and before the built-in templates.
func WithMessages(m Messages) Option {
	return func(e *Engine) {
		maps.Copy(e.catalog, m)
	}
}

// WithMessageTemplate sets the default message for a rule, typically one
// registered by the application.
func WithMessageTemplate(rule string, fn MessageFunc) Option {
	return func(e *Engine) {
		if rule != "" && fn != nil {
			e.templates[rule] = fn
		}
	}
}

// WithLogger sets the logger used to report unknown rules. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStrictRules makes unknown rule names fail with the generic message.
// By default they pass, so a typo such as "requird" silently does nothing.
func WithStrictRules() Option {
	return func(e *Engine) { e.strict = true }
}

// WithLooseChoice makes the in rule compare printed values, so the integer 2
// matches the entry "2". By default in is strict.
func WithLooseChoice() Option {
	return func(e *Engine) { e.looseChoice = true }
}

// New returns an Engine with the built-in rules and messages.
func New(opts ...Option) *Engine {
	e := &Engine{
		registry:  NewRegistry(),
		catalog:   make(Messages),
		templates: defaultTemplates(),
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the engine's rule registry for custom rule registration.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Validate checks input against rules. On success it returns the entries of
// input whose keys are declared in rules; undeclared keys are dropped. On
// failure it returns ValidationErrors holding every failing rule of every
// field, and no data.
func (e *Engine) Validate(input Input, rules RuleSet, overrides Messages) (Input, error) {
	if errs := e.collect(input, rules, overrides); !errs.IsEmpty() {
		e.logger.Debug("validation failed",
			logger.Component("validator"),
			slog.Any("fields", errs.Fields()),
		)
		return nil, errs
	}
	return whitelist(input, rules), nil
}

// collect runs one full pass over all declared fields and rules.
func (e *Engine) collect(input Input, rules RuleSet, overrides Messages) ValidationErrors {
	errs := make(ValidationErrors)

	for _, field := range rules.fields {
		value := input[field.Name]
		fv := FieldValue{Name: field.Name, Value: value, Rules: field.Rules}

		if fv.IsNil() && hasRule(field.Rules, RuleNullable) {
			continue
		}

		for _, rule := range field.Rules {
			if e.passes(fv, rule) {
				continue
			}
			errs.Add(field.Name, e.resolveMessage(field.Name, rule, overrides))
		}
	}

	return errs
}

func (e *Engine) passes(fv FieldValue, rule Rule) bool {
	if rule.Name == RuleIn && e.looseChoice {
		return checkInLoose(fv, rule.Params)
	}

	check, ok := e.registry.Lookup(rule.Name)
	if !ok {
		e.logger.Warn("unknown validation rule",
			logger.Component("validator"),
			logger.Field(fv.Name),
			logger.Rule(rule.Name),
			slog.Bool("strict", e.strict),
		)
		return !e.strict
	}
	return check(fv, rule.Params)
}

// UnknownRules returns the rule names used by rules that the engine's
// registry does not know, in first-seen order.
func (e *Engine) UnknownRules(rules RuleSet) []string {
	var unknown []string
	seen := make(map[string]bool)
	for _, field := range rules.fields {
		for _, rule := range field.Rules {
			if seen[rule.Name] {
				continue
			}
			seen[rule.Name] = true
			if _, ok := e.registry.Lookup(rule.Name); !ok {
				unknown = append(unknown, rule.Name)
			}
		}
	}
	return unknown
}

func whitelist(input Input, rules RuleSet) Input {
	out := make(Input, rules.Len())
	for _, field := range rules.fields {
		if v, ok := input[field.Name]; ok {
			out[field.Name] = v
		}
	}
	return out
}

var defaultEngine = New()

// Validate checks input against rules with the default engine.
func Validate(input Input, rules RuleSet, overrides Messages) (Input, error) {
	return defaultEngine.Validate(input, rules, overrides)
}
