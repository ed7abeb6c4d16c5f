package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/taskboard/pkg/logger"
	"github.com/dmitrymomot/taskboard/pkg/validator"
)

// Service turns validated input into stored records. Every method expects
// data already filtered by the matching form request.
type Service struct {
	store Storage
	log   *slog.Logger
}

func NewService(store Storage, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log.With(logger.Component("project"))}
}

func (s *Service) CreateProject(ctx context.Context, data validator.Input) (Project, error) {
	p := Project{
		Name:        data.String("name"),
		Description: data.StringPtr("description"),
		OwnerID:     data.Int64("owner_id"),
		StatusID:    StatusBacklog,
		IsPublic:    data.Bool("is_public"),
		StartDate:   data.TimePtr("start_date"),
		EndDate:     data.TimePtr("end_date"),
	}
	if data.Has("status_id") {
		p.StatusID = data.Int("status_id")
	}
	if err := checkDateOrder(p.StartDate, p.EndDate); err != nil {
		return Project{}, err
	}
	if err := s.store.CreateProject(ctx, &p); err != nil {
		return Project{}, referenceToValidation(err)
	}
	s.log.InfoContext(ctx, "project created", logger.ProjectID(p.ID))
	return p, nil
}

func (s *Service) GetProject(ctx context.Context, id int64) (Project, error) {
	return s.store.GetProject(ctx, id)
}

func (s *Service) ListProjects(ctx context.Context) ([]Project, error) {
	return s.store.ListProjects(ctx)
}

// UpdateProject applies only the fields present in data.
func (s *Service) UpdateProject(ctx context.Context, id int64, data validator.Input) (Project, error) {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return Project{}, err
	}
	if data.Has("name") && !data.IsNil("name") {
		p.Name = data.String("name")
	}
	if data.Has("description") {
		p.Description = data.StringPtr("description")
	}
	if data.Has("owner_id") && !data.IsNil("owner_id") {
		p.OwnerID = data.Int64("owner_id")
	}
	if data.Has("status_id") && !data.IsNil("status_id") {
		p.StatusID = data.Int("status_id")
	}
	if data.Has("is_public") && !data.IsNil("is_public") {
		p.IsPublic = data.Bool("is_public")
	}
	if data.Has("start_date") {
		p.StartDate = data.TimePtr("start_date")
	}
	if data.Has("end_date") {
		p.EndDate = data.TimePtr("end_date")
	}
	if err := checkDateOrder(p.StartDate, p.EndDate); err != nil {
		return Project{}, err
	}
	if err := s.store.UpdateProject(ctx, &p); err != nil {
		return Project{}, referenceToValidation(err)
	}
	s.log.InfoContext(ctx, "project updated", logger.ProjectID(p.ID))
	return p, nil
}

func (s *Service) DeleteProject(ctx context.Context, id int64) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "project deleted", logger.ProjectID(id))
	return nil
}

func (s *Service) CreateTask(ctx context.Context, projectID int64, data validator.Input) (Task, error) {
	t := Task{
		ProjectID: projectID,
		StatusID:  StatusBacklog,
		Priority:  DefaultPriority,
		Tags:      []string{},
	}
	applyTask(&t, data)
	if err := s.store.CreateTask(ctx, &t); err != nil {
		return Task{}, referenceToValidation(err)
	}
	s.log.InfoContext(ctx, "task created", logger.ProjectID(projectID), logger.TaskID(t.ID))
	return t, nil
}

func (s *Service) ListTasks(ctx context.Context, projectID int64) ([]Task, error) {
	return s.store.ListTasks(ctx, projectID)
}

// UpdateTask applies only the fields present in data.
func (s *Service) UpdateTask(ctx context.Context, projectID, taskID int64, data validator.Input) (Task, error) {
	t, err := s.store.GetTask(ctx, projectID, taskID)
	if err != nil {
		return Task{}, err
	}
	applyTask(&t, data)
	if err := s.store.UpdateTask(ctx, &t); err != nil {
		return Task{}, referenceToValidation(err)
	}
	s.log.InfoContext(ctx, "task updated", logger.ProjectID(projectID), logger.TaskID(t.ID))
	return t, nil
}

func applyTask(t *Task, data validator.Input) {
	if data.Has("title") && !data.IsNil("title") {
		t.Title = data.String("title")
	}
	if data.Has("description") {
		t.Description = data.StringPtr("description")
	}
	if data.Has("status_id") && !data.IsNil("status_id") {
		t.StatusID = data.Int("status_id")
	}
	if data.Has("priority") && !data.IsNil("priority") {
		t.Priority = data.Int("priority")
	}
	if data.Has("assignee_id") {
		t.AssigneeID = data.Int64Ptr("assignee_id")
	}
	if data.Has("sprint_id") {
		t.SprintID = data.Int64Ptr("sprint_id")
	}
	if data.Has("estimate_hours") {
		t.EstimateHours = data.Float64Ptr("estimate_hours")
	}
	if data.Has("due_date") {
		t.DueDate = data.TimePtr("due_date")
	}
	if data.Has("tags") {
		t.Tags = data.Strings("tags")
		if t.Tags == nil {
			t.Tags = []string{}
		}
	}
}

func (s *Service) CreateSprint(ctx context.Context, projectID int64, data validator.Input) (Sprint, error) {
	sp := Sprint{
		ProjectID: projectID,
		Name:      data.String("name"),
		Goal:      data.StringPtr("goal"),
		StartDate: data.Time("start_date"),
		EndDate:   data.Time("end_date"),
	}
	if err := checkDateOrder(&sp.StartDate, &sp.EndDate); err != nil {
		return Sprint{}, err
	}
	if err := s.store.CreateSprint(ctx, &sp); err != nil {
		return Sprint{}, err
	}
	s.log.InfoContext(ctx, "sprint created", logger.ProjectID(projectID), slog.Int64("sprint_id", sp.ID))
	return sp, nil
}

func (s *Service) ListSprints(ctx context.Context, projectID int64) ([]Sprint, error) {
	return s.store.ListSprints(ctx, projectID)
}

func (s *Service) CreateMilestone(ctx context.Context, projectID int64, data validator.Input) (Milestone, error) {
	m := Milestone{
		ProjectID:   projectID,
		Title:       data.String("title"),
		Description: data.StringPtr("description"),
		DueDate:     data.Time("due_date"),
		Completed:   data.Bool("completed"),
	}
	if err := s.store.CreateMilestone(ctx, &m); err != nil {
		return Milestone{}, err
	}
	s.log.InfoContext(ctx, "milestone created", logger.ProjectID(projectID), slog.Int64("milestone_id", m.ID))
	return m, nil
}

func (s *Service) ListMilestones(ctx context.Context, projectID int64) ([]Milestone, error) {
	return s.store.ListMilestones(ctx, projectID)
}

// checkDateOrder rejects an end date before the start date. Either side
// may be unset.
func checkDateOrder(start, end *time.Time) error {
	if start == nil || end == nil || !end.Before(*start) {
		return nil
	}
	return validator.ValidationErrors{
		"end_date": {"The end date must be a date after or equal to the start date."},
	}
}

// referenceToValidation turns a *ReferenceError into a field error.
func referenceToValidation(err error) error {
	var ref *ReferenceError
	if !errors.As(err, &ref) {
		return err
	}
	return validator.ValidationErrors{
		ref.Field: {fmt.Sprintf("The selected %s is invalid.", strings.ReplaceAll(ref.Field, "_", " "))},
	}
}
