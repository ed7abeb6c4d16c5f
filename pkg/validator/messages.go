package validator

import (
	"fmt"
	"strings"
)

// Messages maps "field.rule" keys to custom error messages.
type Messages map[string]string

// MessageFunc renders the default message for a rule. field is already
// humanized ("owner_id" → "owner id").
type MessageFunc func(field string, params []string) string

// MessageKey builds the override key for a field and rule.
func MessageKey(field, rule string) string {
	return field + "." + rule
}

func defaultTemplates() map[string]MessageFunc {
	return map[string]MessageFunc{
		RuleRequired: static("The %s field is required."),
		RuleString:   static("The %s field must be a string."),
		RuleInteger:  static("The %s field must be an integer."),
		RuleNumeric:  static("The %s field must be a number."),
		RuleBoolean:  static("The %s field must be true or false."),
		RuleArray:    static("The %s field must be an array."),
		RuleEmail:    static("The %s field must be a valid email address."),
		RuleURL:      static("The %s field must be a valid URL."),
		RuleDate:     static("The %s field must be a valid date."),
		RuleMin: func(field string, params []string) string {
			return fmt.Sprintf("The %s field must be at least %s.", field, param(params, 0))
		},
		RuleMax: func(field string, params []string) string {
			return fmt.Sprintf("The %s field must not be greater than %s.", field, param(params, 0))
		},
		RuleBetween: func(field string, params []string) string {
			return fmt.Sprintf("The %s field must be between %s and %s.", field, param(params, 0), param(params, 1))
		},
		RuleIn: func(field string, params []string) string {
			return fmt.Sprintf("The selected %s is invalid. Allowed values: %s.", field, strings.Join(params, ", "))
		},
	}
}

func genericMessage(field string) string {
	return fmt.Sprintf("The %s field is invalid.", field)
}

func static(format string) MessageFunc {
	return func(field string, _ []string) string {
		return fmt.Sprintf(format, field)
	}
}

func param(params []string, i int) string {
	if i < len(params) {
		return params[i]
	}
	return "?"
}

// humanize turns a field name into the form used inside messages.
func humanize(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

// resolveMessage looks up, in order: the request overrides, the engine
// catalog, the rule's template, and finally the generic message.
func (e *Engine) resolveMessage(field string, rule Rule, overrides Messages) string {
	key := MessageKey(field, rule.Name)
	if msg, ok := overrides[key]; ok {
		return msg
	}
	if msg, ok := e.catalog[key]; ok {
		return msg
	}
	if tmpl, ok := e.templates[rule.Name]; ok {
		return tmpl(humanize(field), rule.Params)
	}
	return genericMessage(humanize(field))
}
