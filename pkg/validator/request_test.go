package validator_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskboard/pkg/validator"
)

var createProjectRules = validator.NewRuleSet(
	validator.Field("name", "required", "string", "min:3", "max:255"),
	validator.Field("owner_id", "required", "integer"),
)

type createProjectRequest struct {
	allowed    bool
	rulesCalls *int
}

func (r createProjectRequest) Rules() validator.RuleSet {
	if r.rulesCalls != nil {
		*r.rulesCalls++
	}
	return createProjectRules
}

func (r createProjectRequest) Authorize(context.Context) bool { return r.allowed }

func (createProjectRequest) Messages() validator.Messages {
	return validator.Messages{"owner_id.required": "Pick an owner for the project."}
}

type trimmingRequest struct{}

func (trimmingRequest) Rules() validator.RuleSet {
	return validator.NewRuleSet(validator.Field("title", "required", "max:5"))
}

func (trimmingRequest) Prepare(in validator.Input) validator.Input {
	in.TransformString("title", strings.TrimSpace)
	return in
}

type plainRequest struct{}

func (plainRequest) Rules() validator.RuleSet {
	return validator.NewRuleSet(validator.Field("title", "required"))
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	t.Run("rejected gate skips validation", func(t *testing.T) {
		calls := 0
		req := createProjectRequest{allowed: false, rulesCalls: &calls}

		data, err := validator.ValidateRequest(context.Background(), req, validator.Input{})
		require.Error(t, err)
		assert.Nil(t, data)
		assert.ErrorIs(t, err, validator.ErrUnauthorized)
		assert.True(t, validator.IsAuthorizationError(err))
		assert.False(t, validator.IsValidationError(err))
		assert.Zero(t, calls)
	})

	t.Run("uses request messages", func(t *testing.T) {
		req := createProjectRequest{allowed: true}

		_, err := validator.ValidateRequest(context.Background(), req, validator.Input{"name": "Website"})
		require.Error(t, err)
		assert.False(t, validator.IsAuthorizationError(err))

		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"Pick an owner for the project."}, verrs.Get("owner_id"))
		assert.False(t, verrs.Has("name"))
	})

	t.Run("returns whitelisted data", func(t *testing.T) {
		req := createProjectRequest{allowed: true}
		input := validator.Input{"name": "Website", "owner_id": "4", "is_admin": "1"}

		data, err := validator.ValidateRequest(context.Background(), req, input)
		require.NoError(t, err)
		assert.Equal(t, validator.Input{"name": "Website", "owner_id": "4"}, data)
	})

	t.Run("prepare runs before rules on a copy", func(t *testing.T) {
		input := validator.Input{"title": "  Ship   "}

		data, err := validator.ValidateRequest(context.Background(), trimmingRequest{}, input)
		require.NoError(t, err)
		assert.Equal(t, validator.Input{"title": "Ship"}, data)
		assert.Equal(t, "  Ship   ", input["title"])

		_, err = validator.ValidateRequest(context.Background(), trimmingRequest{}, validator.Input{"title": "   "})
		assert.True(t, validator.ExtractValidationErrors(err).Has("title"))
	})

	t.Run("requests without gate are authorized", func(t *testing.T) {
		e := validator.New()
		_, err := e.ValidateRequest(context.Background(), plainRequest{}, validator.Input{"title": "Ship it"})
		assert.NoError(t, err)
	})
}

func TestValidationErrors(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		verrs := validator.ValidationErrors{}
		assert.Equal(t, "validation failed", verrs.Error())
		assert.True(t, verrs.IsEmpty())
		assert.Empty(t, verrs.First("x"))
	})

	t.Run("formats sorted fields", func(t *testing.T) {
		verrs := validator.ValidationErrors{}
		verrs.Add("title", "is required")
		verrs.Add("priority", "too high")
		verrs.Add("priority", "not an integer")

		assert.Equal(t, "validation failed: priority: too high, not an integer; title: is required", verrs.Error())
		assert.Equal(t, "too high", verrs.First("priority"))
		assert.True(t, verrs.Has("title"))
		assert.False(t, verrs.Has("name"))
	})

	t.Run("extracted through wrapping", func(t *testing.T) {
		verrs := validator.ValidationErrors{"name": {"is required"}}
		wrapped := errors.Join(errors.New("create project"), verrs)

		assert.True(t, validator.IsValidationError(wrapped))
		assert.Equal(t, verrs, validator.ExtractValidationErrors(wrapped))
		assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
		assert.Nil(t, validator.ExtractValidationErrors(nil))
		assert.False(t, validator.IsValidationError(nil))
	})
}
