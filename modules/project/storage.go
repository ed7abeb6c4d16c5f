package project

import "context"

// Storage persists projects and the records that hang off them. Get and
// Update methods return ErrProjectNotFound or ErrTaskNotFound for missing
// rows and *ReferenceError when a foreign key points nowhere.
type Storage interface {
	CreateProject(ctx context.Context, p *Project) error
	GetProject(ctx context.Context, id int64) (Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id int64) error

	CreateTask(ctx context.Context, t *Task) error
	GetTask(ctx context.Context, projectID, taskID int64) (Task, error)
	ListTasks(ctx context.Context, projectID int64) ([]Task, error)
	UpdateTask(ctx context.Context, t *Task) error

	CreateSprint(ctx context.Context, s *Sprint) error
	ListSprints(ctx context.Context, projectID int64) ([]Sprint, error)

	CreateMilestone(ctx context.Context, m *Milestone) error
	ListMilestones(ctx context.Context, projectID int64) ([]Milestone, error)
}
