package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskboard/pkg/validator"
)

func TestParseRule(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		descriptor string
		wantName   string
		wantParams []string
	}{
		{"bare name", "required", "required", []string{}},
		{"single param", "min:3", "min", []string{"3"}},
		{"two params", "between:1,5", "between", []string{"1", "5"}},
		{"list", "in:1,2,3,4,5", "in", []string{"1", "2", "3", "4", "5"}},
		{"splits on first colon only", "regex:a:b", "regex", []string{"a:b"}},
		{"empty tail", "min:", "min", []string{""}},
		{"whitespace is kept", "in:a, b", "in", []string{"a", " b"}},
		{"empty descriptor", "", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validator.ParseRule(tt.descriptor)
			assert.Equal(t, tt.wantName, r.Name)
			assert.Equal(t, tt.wantParams, r.Params)
		})
	}
}

func TestRule_String(t *testing.T) {
	t.Parallel()

	for _, d := range []string{"required", "min:3", "between:1,5", "in:a,b,c"} {
		assert.Equal(t, d, validator.ParseRule(d).String())
	}
}

func TestRule_Param(t *testing.T) {
	t.Parallel()

	r := validator.ParseRule("between:1,5")

	p, ok := r.Param(1)
	require.True(t, ok)
	assert.Equal(t, "5", p)

	_, ok = r.Param(2)
	assert.False(t, ok)

	_, ok = r.Param(-1)
	assert.False(t, ok)
}

func TestParseRules(t *testing.T) {
	t.Parallel()

	rules := validator.ParseRules("required", "string", "max:255")
	require.Len(t, rules, 3)
	assert.Equal(t, "required", rules[0].Name)
	assert.Equal(t, "string", rules[1].Name)
	assert.Equal(t, []string{"255"}, rules[2].Params)
}

func TestRuleSet(t *testing.T) {
	t.Parallel()

	t.Run("keeps declaration order", func(t *testing.T) {
		set := validator.NewRuleSet(
			validator.Field("title", "required"),
			validator.Field("priority", "integer"),
			validator.Field("assignee_id", "integer"),
		)
		assert.Equal(t, []string{"title", "priority", "assignee_id"}, set.Fields())
		assert.Equal(t, 3, set.Len())
	})

	t.Run("merges duplicate fields", func(t *testing.T) {
		set := validator.NewRuleSet(
			validator.Field("name", "required"),
			validator.Field("name", "max:10"),
		)
		assert.Equal(t, []string{"name"}, set.Fields())
		rules := set.Rules("name")
		require.Len(t, rules, 2)
		assert.Equal(t, "required", rules[0].Name)
		assert.Equal(t, "max", rules[1].Name)
	})

	t.Run("with does not mutate receiver", func(t *testing.T) {
		base := validator.NewRuleSet(validator.Field("name", "string"))
		extended := base.With(
			validator.Field("name", "required"),
			validator.Field("owner_id", "integer"),
		)

		assert.Len(t, base.Rules("name"), 1)
		assert.False(t, base.Has("owner_id"))

		assert.Len(t, extended.Rules("name"), 2)
		assert.True(t, extended.Has("owner_id"))
	})

	t.Run("unknown field", func(t *testing.T) {
		set := validator.NewRuleSet()
		assert.Nil(t, set.Rules("missing"))
		assert.False(t, set.Has("missing"))
		assert.Zero(t, set.Len())
	})
}
