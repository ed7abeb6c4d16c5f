package project

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestFieldOfConstraint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sprint_id", fieldOfConstraint("tasks_sprint_id_fkey"))
	assert.Equal(t, "owner_id", fieldOfConstraint("projects_owner_id_fkey"))
	assert.Equal(t, "project_id", fieldOfConstraint("milestones_project_id_fkey"))
	assert.Empty(t, fieldOfConstraint("users_email_key"))
	assert.Empty(t, fieldOfConstraint("other_table_col_fkey"))
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, translate(nil, ErrTaskNotFound))
	assert.ErrorIs(t, translate(pgx.ErrNoRows, ErrTaskNotFound), ErrTaskNotFound)

	fk := func(constraint string) error {
		return &pgconn.PgError{Code: "23503", ConstraintName: constraint}
	}
	assert.ErrorIs(t, translate(fk("tasks_project_id_fkey"), ErrTaskNotFound), ErrProjectNotFound)

	var ref *ReferenceError
	assert.ErrorAs(t, translate(fk("tasks_assignee_id_fkey"), ErrTaskNotFound), &ref)
	assert.Equal(t, "assignee_id", ref.Field)

	other := errors.New("boom")
	assert.Same(t, other, translate(other, ErrTaskNotFound))
}
