// Package validator implements form-request validation for loosely typed
// request input.
//
// Input arrives as a map of field names to raw values (strings and string
// slices from HTML forms, json.Number, bool, []any and map[string]any from
// JSON bodies). A request type declares which fields exist and which rules
// apply to each of them using a compact rule grammar:
//
//	name
//	name:param1,param2
//
// Rule sets are parsed once, when they are declared, and then evaluated as
// many times as needed.
//
// # Architecture
//
//   - Rule / RuleSet   – parsed rule descriptors and the ordered field→rules mapping
//   - Registry         – rule name → Check function; unknown names pass unless the
//     engine runs in strict mode
//   - Engine           – single pass over all fields and rules, accumulating every
//     failure into a fresh ValidationErrors value per call
//   - Messages         – "field.rule" overrides consulted before the built-in
//     message templates
//   - Request          – the contract implemented by form requests: Rules, and
//     optionally Messages, Prepare and Authorize
//
// The engine holds no per-call state, so a single Engine can validate many
// requests from concurrent goroutines.
//
// # Usage
//
//	type CreateProjectRequest struct{}
//
//	var createProjectRules = validator.NewRuleSet(
//		validator.Field("name", "required", "string", "min:3", "max:255"),
//		validator.Field("owner_id", "required", "integer"),
//	)
//
//	func (CreateProjectRequest) Rules() validator.RuleSet { return createProjectRules }
//
//	data, err := validator.ValidateRequest(ctx, CreateProjectRequest{}, input)
//	switch {
//	case errors.Is(err, validator.ErrUnauthorized):
//		// 403
//	case validator.IsValidationError(err):
//		verrs := validator.ExtractValidationErrors(err)
//		// 422 with verrs as field → messages
//	}
//
// Only fields declared in the rule set are returned in data; anything else
// present in the input is dropped.
//
// # Built-in rules
//
// required, nullable, string, integer, numeric, boolean, array, email, url,
// date, min, max, between, in.
//
// Type and format rules pass when the value is absent or nil; only required
// enforces presence. The date rule is the exception: it fails on nil unless
// the field is also marked nullable.
package validator
