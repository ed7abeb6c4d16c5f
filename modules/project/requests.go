package project

import (
	"context"

	"github.com/dmitrymomot/taskboard/pkg/rbac"
	"github.com/dmitrymomot/taskboard/pkg/sanitizer"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

// Gate decides whether the caller in ctx holds a permission.
// *rbac.Authorizer satisfies it.
type Gate interface {
	Allowed(ctx context.Context, permission string) bool
}

const statuses = "in:1,2,3,4,5"

var cleanText = sanitizer.Compose(sanitizer.RemoveControlChars, sanitizer.NormalizeWhitespace)

// prepareProject and prepareTask tidy free text before the rules see it.
func prepareProject(in validator.Input) validator.Input {
	in.TransformString("name", cleanText)
	return in
}

func prepareTask(in validator.Input) validator.Input {
	in.TransformString("title", cleanText)
	in.TransformStrings("tags", sanitizer.CleanStringSlice)
	return in
}

var (
	createProjectRules = validator.NewRuleSet(
		validator.Field("name", "required", "string", "min:3", "max:255"),
		validator.Field("description", "nullable", "string", "max:5000"),
		validator.Field("owner_id", "required", "integer", "min:1"),
		validator.Field("status_id", "integer", statuses),
		validator.Field("is_public", "boolean"),
		validator.Field("start_date", "nullable", "date"),
		validator.Field("end_date", "nullable", "date"),
	)

	updateProjectRules = validator.NewRuleSet(
		validator.Field("name", "string", "min:3", "max:255"),
		validator.Field("description", "nullable", "string", "max:5000"),
		validator.Field("owner_id", "integer", "min:1"),
		validator.Field("status_id", "integer", statuses),
		validator.Field("is_public", "boolean"),
		validator.Field("start_date", "nullable", "date"),
		validator.Field("end_date", "nullable", "date"),
	)

	taskFields = []validator.FieldRules{
		validator.Field("description", "nullable", "string", "max:10000"),
		validator.Field("status_id", "integer", statuses),
		validator.Field("priority", "integer", "between:1,5"),
		validator.Field("assignee_id", "nullable", "integer", "min:1"),
		validator.Field("sprint_id", "nullable", "integer", "min:1"),
		validator.Field("estimate_hours", "nullable", "numeric", "between:0,1000"),
		validator.Field("due_date", "nullable", "date"),
		validator.Field("tags", "nullable", "array", "max:10"),
	}

	createTaskRules = validator.NewRuleSet(
		validator.Field("title", "required", "string", "max:255"),
	).With(taskFields...)

	updateTaskRules = validator.NewRuleSet(
		validator.Field("title", "string", "min:1", "max:255"),
	).With(taskFields...)

	createSprintRules = validator.NewRuleSet(
		validator.Field("name", "required", "string", "max:100"),
		validator.Field("goal", "nullable", "string", "max:500"),
		validator.Field("start_date", "required", "date"),
		validator.Field("end_date", "required", "date"),
	)

	createMilestoneRules = validator.NewRuleSet(
		validator.Field("title", "required", "string", "max:255"),
		validator.Field("description", "nullable", "string", "max:5000"),
		validator.Field("due_date", "required", "date"),
		validator.Field("completed", "boolean"),
	)
)

type CreateProjectRequest struct{ gate Gate }

func (CreateProjectRequest) Rules() validator.RuleSet { return createProjectRules }

func (r CreateProjectRequest) Authorize(ctx context.Context) bool {
	return r.gate.Allowed(ctx, rbac.PermProjectsCreate)
}

func (CreateProjectRequest) Messages() validator.Messages {
	return validator.Messages{
		"name.required":     "Give the project a name.",
		"owner_id.required": "Pick an owner for the project.",
		"status_id.in":      "Choose one of the project statuses.",
	}
}

func (CreateProjectRequest) Prepare(in validator.Input) validator.Input { return prepareProject(in) }

type UpdateProjectRequest struct{ gate Gate }

func (UpdateProjectRequest) Prepare(in validator.Input) validator.Input { return prepareProject(in) }

func (UpdateProjectRequest) Rules() validator.RuleSet { return updateProjectRules }

func (r UpdateProjectRequest) Authorize(ctx context.Context) bool {
	return r.gate.Allowed(ctx, rbac.PermProjectsUpdate)
}

type CreateTaskRequest struct{ gate Gate }

func (CreateTaskRequest) Prepare(in validator.Input) validator.Input { return prepareTask(in) }

func (CreateTaskRequest) Rules() validator.RuleSet { return createTaskRules }

func (r CreateTaskRequest) Authorize(ctx context.Context) bool {
	return r.gate.Allowed(ctx, rbac.PermTasksCreate)
}

func (CreateTaskRequest) Messages() validator.Messages {
	return validator.Messages{
		"title.required": "A task needs a title.",
		"status_id.in":   "Choose one of the task statuses.",
	}
}

type UpdateTaskRequest struct{ gate Gate }

func (UpdateTaskRequest) Prepare(in validator.Input) validator.Input { return prepareTask(in) }

func (UpdateTaskRequest) Rules() validator.RuleSet { return updateTaskRules }

func (r UpdateTaskRequest) Authorize(ctx context.Context) bool {
	return r.gate.Allowed(ctx, rbac.PermTasksUpdate)
}

func (UpdateTaskRequest) Messages() validator.Messages {
	return validator.Messages{"status_id.in": "Choose one of the task statuses."}
}

type CreateSprintRequest struct{ gate Gate }

func (CreateSprintRequest) Prepare(in validator.Input) validator.Input {
	in.TransformString("name", cleanText)
	return in
}

func (CreateSprintRequest) Rules() validator.RuleSet { return createSprintRules }

func (r CreateSprintRequest) Authorize(ctx context.Context) bool {
	return r.gate.Allowed(ctx, rbac.PermSprintsManage)
}

type CreateMilestoneRequest struct{ gate Gate }

func (CreateMilestoneRequest) Prepare(in validator.Input) validator.Input {
	in.TransformString("title", cleanText)
	return in
}

func (CreateMilestoneRequest) Rules() validator.RuleSet { return createMilestoneRules }

func (r CreateMilestoneRequest) Authorize(ctx context.Context) bool {
	return r.gate.Allowed(ctx, rbac.PermMilestonesManage)
}
