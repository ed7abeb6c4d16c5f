package project

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/taskboard/pkg/pg"
)

const (
	projectColumns   = "id, name, description, owner_id, status_id, is_public, start_date, end_date, created_at, updated_at"
	taskColumns      = "id, project_id, sprint_id, assignee_id, title, description, status_id, priority, estimate_hours, due_date, tags, created_at, updated_at"
	sprintColumns    = "id, project_id, name, goal, start_date, end_date, created_at"
	milestoneColumns = "id, project_id, title, description, due_date, completed, created_at"
)

// PGStorage stores projects in PostgreSQL using the schema in internal/db.
type PGStorage struct {
	pool *pgxpool.Pool
}

func NewPGStorage(pool *pgxpool.Pool) *PGStorage {
	return &PGStorage{pool: pool}
}

// translate maps driver errors onto the package's error values.
func translate(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case pg.IsNotFoundError(err):
		return notFound
	case pg.IsForeignKeyViolationError(err):
		switch field := fieldOfConstraint(pg.ConstraintName(err)); field {
		case "":
		case "project_id":
			return ErrProjectNotFound
		default:
			return &ReferenceError{Field: field}
		}
	}
	return err
}

// fieldOfConstraint extracts the column from Postgres' default foreign key
// name, e.g. "tasks_sprint_id_fkey" yields "sprint_id".
func fieldOfConstraint(name string) string {
	name, ok := strings.CutSuffix(name, "_fkey")
	if !ok {
		return ""
	}
	for _, table := range []string{"projects_", "tasks_", "sprints_", "milestones_"} {
		if col, ok := strings.CutPrefix(name, table); ok {
			return col
		}
	}
	return ""
}

func (s *PGStorage) CreateProject(ctx context.Context, p *Project) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, owner_id, status_id, is_public, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		p.Name, p.Description, p.OwnerID, p.StatusID, p.IsPublic, p.StartDate, p.EndDate,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create project: %w", translate(err, ErrProjectNotFound))
	}
	return nil
}

func (s *PGStorage) GetProject(ctx context.Context, id int64) (Project, error) {
	rows, _ := s.pool.Query(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = $1", id)
	p, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Project])
	if err != nil {
		return Project{}, translate(err, ErrProjectNotFound)
	}
	return p, nil
}

func (s *PGStorage) ListProjects(ctx context.Context) ([]Project, error) {
	rows, _ := s.pool.Query(ctx, "SELECT "+projectColumns+" FROM projects ORDER BY id")
	projects, err := pgx.CollectRows(rows, pgx.RowToStructByName[Project])
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *PGStorage) UpdateProject(ctx context.Context, p *Project) error {
	err := s.pool.QueryRow(ctx, `
		UPDATE projects
		SET name = $2, description = $3, owner_id = $4, status_id = $5,
		    is_public = $6, start_date = $7, end_date = $8, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.OwnerID, p.StatusID, p.IsPublic, p.StartDate, p.EndDate,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update project: %w", translate(err, ErrProjectNotFound))
	}
	return nil
}

func (s *PGStorage) DeleteProject(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// sprintInProject guards against attaching a task to another project's
// sprint, which the foreign key alone allows.
func (s *PGStorage) sprintInProject(ctx context.Context, t *Task) error {
	if t.SprintID == nil {
		return nil
	}
	var ok bool
	err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM sprints WHERE id = $1 AND project_id = $2)",
		*t.SprintID, t.ProjectID,
	).Scan(&ok)
	if err != nil {
		return fmt.Errorf("check sprint: %w", err)
	}
	if !ok {
		return &ReferenceError{Field: "sprint_id"}
	}
	return nil
}

func (s *PGStorage) CreateTask(ctx context.Context, t *Task) error {
	if err := s.sprintInProject(ctx, t); err != nil {
		return err
	}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO tasks (project_id, sprint_id, assignee_id, title, description,
		                   status_id, priority, estimate_hours, due_date, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, COALESCE($10, '{}'::text[]))
		RETURNING id, created_at, updated_at`,
		t.ProjectID, t.SprintID, t.AssigneeID, t.Title, t.Description,
		t.StatusID, t.Priority, t.EstimateHours, t.DueDate, t.Tags,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create task: %w", translate(err, ErrTaskNotFound))
	}
	return nil
}

func (s *PGStorage) GetTask(ctx context.Context, projectID, taskID int64) (Task, error) {
	rows, _ := s.pool.Query(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND project_id = $2", taskID, projectID)
	t, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Task])
	if err != nil {
		return Task{}, translate(err, ErrTaskNotFound)
	}
	return t, nil
}

func (s *PGStorage) ListTasks(ctx context.Context, projectID int64) ([]Task, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	rows, _ := s.pool.Query(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE project_id = $1 ORDER BY id", projectID)
	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[Task])
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *PGStorage) UpdateTask(ctx context.Context, t *Task) error {
	if err := s.sprintInProject(ctx, t); err != nil {
		return err
	}
	err := s.pool.QueryRow(ctx, `
		UPDATE tasks
		SET sprint_id = $3, assignee_id = $4, title = $5, description = $6, status_id = $7,
		    priority = $8, estimate_hours = $9, due_date = $10,
		    tags = COALESCE($11, '{}'::text[]), updated_at = now()
		WHERE id = $1 AND project_id = $2
		RETURNING created_at, updated_at`,
		t.ID, t.ProjectID, t.SprintID, t.AssigneeID, t.Title, t.Description, t.StatusID,
		t.Priority, t.EstimateHours, t.DueDate, t.Tags,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update task: %w", translate(err, ErrTaskNotFound))
	}
	return nil
}

func (s *PGStorage) CreateSprint(ctx context.Context, sp *Sprint) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO sprints (project_id, name, goal, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		sp.ProjectID, sp.Name, sp.Goal, sp.StartDate, sp.EndDate,
	).Scan(&sp.ID, &sp.CreatedAt)
	if err != nil {
		return fmt.Errorf("create sprint: %w", translate(err, ErrProjectNotFound))
	}
	return nil
}

func (s *PGStorage) ListSprints(ctx context.Context, projectID int64) ([]Sprint, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	rows, _ := s.pool.Query(ctx,
		"SELECT "+sprintColumns+" FROM sprints WHERE project_id = $1 ORDER BY id", projectID)
	sprints, err := pgx.CollectRows(rows, pgx.RowToStructByName[Sprint])
	if err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}
	return sprints, nil
}

func (s *PGStorage) CreateMilestone(ctx context.Context, m *Milestone) error {
	err := s.pool.QueryRow(ctx, `
		INSERT INTO milestones (project_id, title, description, due_date, completed)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		m.ProjectID, m.Title, m.Description, m.DueDate, m.Completed,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create milestone: %w", translate(err, ErrProjectNotFound))
	}
	return nil
}

func (s *PGStorage) ListMilestones(ctx context.Context, projectID int64) ([]Milestone, error) {
	if err := s.projectExists(ctx, projectID); err != nil {
		return nil, err
	}
	rows, _ := s.pool.Query(ctx,
		"SELECT "+milestoneColumns+" FROM milestones WHERE project_id = $1 ORDER BY id", projectID)
	milestones, err := pgx.CollectRows(rows, pgx.RowToStructByName[Milestone])
	if err != nil {
		return nil, fmt.Errorf("list milestones: %w", err)
	}
	return milestones, nil
}

func (s *PGStorage) projectExists(ctx context.Context, id int64) error {
	var ok bool
	if err := s.pool.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)", id).Scan(&ok); err != nil {
		return fmt.Errorf("check project: %w", err)
	}
	if !ok {
		return ErrProjectNotFound
	}
	return nil
}
