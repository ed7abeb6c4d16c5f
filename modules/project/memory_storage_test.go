package project_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/taskboard/modules/project"
)

func TestMemoryStorage_DeleteCascades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := project.NewMemoryStorage()

	p := project.Project{Name: "Website", OwnerID: 1, StatusID: project.StatusTodo}
	require.NoError(t, s.CreateProject(ctx, &p))
	require.NoError(t, s.CreateTask(ctx, &project.Task{ProjectID: p.ID, Title: "Copy"}))
	require.NoError(t, s.CreateMilestone(ctx, &project.Milestone{ProjectID: p.ID, Title: "Beta"}))

	require.NoError(t, s.DeleteProject(ctx, p.ID))

	_, err := s.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
	_, err = s.ListTasks(ctx, p.ID)
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
	assert.ErrorIs(t, s.DeleteProject(ctx, p.ID), project.ErrProjectNotFound)
}

func TestMemoryStorage_SprintMustBelongToProject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := project.NewMemoryStorage()

	a := project.Project{Name: "A", OwnerID: 1}
	b := project.Project{Name: "B", OwnerID: 1}
	require.NoError(t, s.CreateProject(ctx, &a))
	require.NoError(t, s.CreateProject(ctx, &b))

	sprint := project.Sprint{ProjectID: a.ID, Name: "Sprint 1"}
	require.NoError(t, s.CreateSprint(ctx, &sprint))

	err := s.CreateTask(ctx, &project.Task{ProjectID: b.ID, Title: "Ship", SprintID: &sprint.ID})
	var ref *project.ReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "sprint_id", ref.Field)

	require.NoError(t, s.CreateTask(ctx, &project.Task{ProjectID: a.ID, Title: "Ship", SprintID: &sprint.ID}))
}

func TestMemoryStorage_TaskScopedToProject(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := project.NewMemoryStorage()

	a := project.Project{Name: "A", OwnerID: 1}
	b := project.Project{Name: "B", OwnerID: 1}
	require.NoError(t, s.CreateProject(ctx, &a))
	require.NoError(t, s.CreateProject(ctx, &b))

	task := project.Task{ProjectID: a.ID, Title: "Ship"}
	require.NoError(t, s.CreateTask(ctx, &task))

	_, err := s.GetTask(ctx, b.ID, task.ID)
	assert.ErrorIs(t, err, project.ErrTaskNotFound)

	got, err := s.GetTask(ctx, a.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ship", got.Title)

	projects, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Less(t, projects[0].ID, projects[1].ID)
}
