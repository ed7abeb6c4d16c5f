package user

import (
	"context"
	"strings"

	"github.com/dmitrymomot/taskboard/pkg/rbac"
	"github.com/dmitrymomot/taskboard/pkg/sanitizer"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

// Gate decides whether the caller in ctx holds a permission.
type Gate interface {
	Allowed(ctx context.Context, permission string) bool
}

// createUserRules limits role to the configured role names.
func createUserRules(roles []string) validator.RuleSet {
	return validator.NewRuleSet(
		validator.Field("name", "required", "string", "max:255"),
		validator.Field("email", "required", "email", "max:255"),
		validator.Field("password", "required", "string", "min:8", "max:72"),
		validator.Field("role", "required", "string", "in:"+strings.Join(roles, ",")),
	)
}

type CreateUserRequest struct {
	gate  Gate
	rules validator.RuleSet
}

func (r CreateUserRequest) Rules() validator.RuleSet { return r.rules }

func (r CreateUserRequest) Authorize(ctx context.Context) bool {
	return r.gate.Allowed(ctx, rbac.PermUsersCreate)
}

func (CreateUserRequest) Messages() validator.Messages {
	return validator.Messages{
		"password.min": "The password must be at least 8 characters.",
		"password.max": "The password must not be longer than 72 characters.",
	}
}

func (CreateUserRequest) Prepare(in validator.Input) validator.Input {
	in.TransformString("name", sanitizer.NormalizeWhitespace)
	in.TransformString("email", sanitizer.NormalizeEmail)
	in.TransformString("role", sanitizer.Trim)
	return in
}
