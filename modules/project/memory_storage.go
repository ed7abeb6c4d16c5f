package project

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStorage keeps everything in process. Owner and assignee IDs are
// not checked against users; sprint IDs are checked against the project.
type MemoryStorage struct {
	mu         sync.RWMutex
	seq        int64
	now        func() time.Time
	projects   map[int64]Project
	tasks      map[int64]Task
	sprints    map[int64]Sprint
	milestones map[int64]Milestone
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		now:        func() time.Time { return time.Now().UTC() },
		projects:   make(map[int64]Project),
		tasks:      make(map[int64]Task),
		sprints:    make(map[int64]Sprint),
		milestones: make(map[int64]Milestone),
	}
}

func (s *MemoryStorage) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *MemoryStorage) CreateProject(_ context.Context, p *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextID()
	p.CreatedAt = s.now()
	p.UpdatedAt = p.CreatedAt
	s.projects[p.ID] = *p
	return nil
}

func (s *MemoryStorage) GetProject(_ context.Context, id int64) (Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return Project{}, ErrProjectNotFound
	}
	return p, nil
}

func (s *MemoryStorage) ListProjects(context.Context) ([]Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedByID(s.projects, func(p Project) int64 { return p.ID }, nil), nil
}

func (s *MemoryStorage) UpdateProject(_ context.Context, p *Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.projects[p.ID]
	if !ok {
		return ErrProjectNotFound
	}
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = s.now()
	s.projects[p.ID] = *p
	return nil
}

// DeleteProject removes the project and everything attached to it.
func (s *MemoryStorage) DeleteProject(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return ErrProjectNotFound
	}
	delete(s.projects, id)
	for k, t := range s.tasks {
		if t.ProjectID == id {
			delete(s.tasks, k)
		}
	}
	for k, sp := range s.sprints {
		if sp.ProjectID == id {
			delete(s.sprints, k)
		}
	}
	for k, m := range s.milestones {
		if m.ProjectID == id {
			delete(s.milestones, k)
		}
	}
	return nil
}

func (s *MemoryStorage) checkTaskRefs(t *Task) error {
	if _, ok := s.projects[t.ProjectID]; !ok {
		return ErrProjectNotFound
	}
	if t.SprintID != nil {
		sp, ok := s.sprints[*t.SprintID]
		if !ok || sp.ProjectID != t.ProjectID {
			return &ReferenceError{Field: "sprint_id"}
		}
	}
	return nil
}

func (s *MemoryStorage) CreateTask(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkTaskRefs(t); err != nil {
		return err
	}
	t.ID = s.nextID()
	t.CreatedAt = s.now()
	t.UpdatedAt = t.CreatedAt
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryStorage) GetTask(_ context.Context, projectID, taskID int64) (Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[taskID]
	if !ok || t.ProjectID != projectID {
		return Task{}, ErrTaskNotFound
	}
	return t, nil
}

func (s *MemoryStorage) ListTasks(_ context.Context, projectID int64) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.projects[projectID]; !ok {
		return nil, ErrProjectNotFound
	}
	return sortedByID(s.tasks, func(t Task) int64 { return t.ID }, func(t Task) bool {
		return t.ProjectID == projectID
	}), nil
}

func (s *MemoryStorage) UpdateTask(_ context.Context, t *Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.tasks[t.ID]
	if !ok || current.ProjectID != t.ProjectID {
		return ErrTaskNotFound
	}
	if err := s.checkTaskRefs(t); err != nil {
		return err
	}
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = s.now()
	s.tasks[t.ID] = *t
	return nil
}

func (s *MemoryStorage) CreateSprint(_ context.Context, sp *Sprint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[sp.ProjectID]; !ok {
		return ErrProjectNotFound
	}
	sp.ID = s.nextID()
	sp.CreatedAt = s.now()
	s.sprints[sp.ID] = *sp
	return nil
}

func (s *MemoryStorage) ListSprints(_ context.Context, projectID int64) ([]Sprint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.projects[projectID]; !ok {
		return nil, ErrProjectNotFound
	}
	return sortedByID(s.sprints, func(sp Sprint) int64 { return sp.ID }, func(sp Sprint) bool {
		return sp.ProjectID == projectID
	}), nil
}

func (s *MemoryStorage) CreateMilestone(_ context.Context, m *Milestone) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[m.ProjectID]; !ok {
		return ErrProjectNotFound
	}
	m.ID = s.nextID()
	m.CreatedAt = s.now()
	s.milestones[m.ID] = *m
	return nil
}

func (s *MemoryStorage) ListMilestones(_ context.Context, projectID int64) ([]Milestone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.projects[projectID]; !ok {
		return nil, ErrProjectNotFound
	}
	return sortedByID(s.milestones, func(m Milestone) int64 { return m.ID }, func(m Milestone) bool {
		return m.ProjectID == projectID
	}), nil
}

func sortedByID[T any](items map[int64]T, id func(T) int64, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
	return out
}
