package validator

import "context"

// Request is implemented by form requests: types that declare the fields
// they accept and the rules applied to each.
type Request interface {
	Rules() RuleSet
}

// MessageProvider is optionally implemented by a Request to override
// messages per "field.rule" key.
type MessageProvider interface {
	Messages() Messages
}

// Authorizer is optionally implemented by a Request to gate validation.
// Requests that do not implement it are always authorized.
type Authorizer interface {
	Authorize(ctx context.Context) bool
}

// Preparer is optionally implemented by a Request to normalise input before
// the rules run. Prepare receives a copy; the caller's input is untouched.
type Preparer interface {
	Prepare(in Input) Input
}

// ValidateRequest runs the request's Authorize gate, then Prepare, then
// validates input against its rules. A rejected gate returns
// ErrUnauthorized without evaluating any rule.
func (e *Engine) ValidateRequest(ctx context.Context, req Request, input Input) (Input, error) {
	if a, ok := req.(Authorizer); ok && !a.Authorize(ctx) {
		return nil, ErrUnauthorized
	}

	if p, ok := req.(Preparer); ok {
		input = p.Prepare(input.Clone())
	}

	var overrides Messages
	if mp, ok := req.(MessageProvider); ok {
		overrides = mp.Messages()
	}

	return e.Validate(input, req.Rules(), overrides)
}

// ValidateRequest validates req with the default engine.
func ValidateRequest(ctx context.Context, req Request, input Input) (Input, error) {
	return defaultEngine.ValidateRequest(ctx, req, input)
}
