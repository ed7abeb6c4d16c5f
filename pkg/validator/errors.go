package validator

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrUnauthorized is returned by ValidateRequest when the request's
	// Authorize gate rejects it. No rule is evaluated in that case.
	ErrUnauthorized = errors.New("validator: request is not authorized")

	// ErrEmptyRuleName is returned when registering a rule without a name.
	ErrEmptyRuleName = errors.New("validator: rule name is empty")

	// ErrNilCheck is returned when registering a rule without a check.
	ErrNilCheck = errors.New("validator: rule check is nil")

	// ErrInvalidCatalog is returned when a message catalog cannot be decoded.
	ErrInvalidCatalog = errors.New("validator: invalid message catalog")
)

// ValidationErrors maps a field name to its failure messages, in the order
// the failing rules were declared.
type ValidationErrors map[string][]string

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, field := range ve.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(ve[field], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends a message for field.
func (ve ValidationErrors) Add(field, message string) {
	ve[field] = append(ve[field], message)
}

// Has reports whether field has at least one message.
func (ve ValidationErrors) Has(field string) bool {
	return len(ve[field]) > 0
}

// Get returns all messages for field.
func (ve ValidationErrors) Get(field string) []string {
	return ve[field]
}

// First returns the first message for field, or "".
func (ve ValidationErrors) First(field string) string {
	if msgs := ve[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the names of failing fields, sorted.
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for field := range ve {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	return fields
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}

// IsAuthorizationError reports whether err is a rejected Authorize gate.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
