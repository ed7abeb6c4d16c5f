package project

import "time"

// Task and project workflow states. Stored as status_id.
const (
	StatusBacklog    = 1
	StatusTodo       = 2
	StatusInProgress = 3
	StatusReview     = 4
	StatusDone       = 5
)

// Default priority for tasks created without one, on a 1 (low) to 5 scale.
const DefaultPriority = 3

type Project struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description" db:"description"`
	OwnerID     int64      `json:"owner_id" db:"owner_id"`
	StatusID    int        `json:"status_id" db:"status_id"`
	IsPublic    bool       `json:"is_public" db:"is_public"`
	StartDate   *time.Time `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date" db:"end_date"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type Task struct {
	ID            int64      `json:"id" db:"id"`
	ProjectID     int64      `json:"project_id" db:"project_id"`
	SprintID      *int64     `json:"sprint_id" db:"sprint_id"`
	AssigneeID    *int64     `json:"assignee_id" db:"assignee_id"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description" db:"description"`
	StatusID      int        `json:"status_id" db:"status_id"`
	Priority      int        `json:"priority" db:"priority"`
	EstimateHours *float64   `json:"estimate_hours" db:"estimate_hours"`
	DueDate       *time.Time `json:"due_date" db:"due_date"`
	Tags          []string   `json:"tags" db:"tags"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type Sprint struct {
	ID        int64     `json:"id" db:"id"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	Name      string    `json:"name" db:"name"`
	Goal      *string   `json:"goal" db:"goal"`
	StartDate time.Time `json:"start_date" db:"start_date"`
	EndDate   time.Time `json:"end_date" db:"end_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type Milestone struct {
	ID          int64     `json:"id" db:"id"`
	ProjectID   int64     `json:"project_id" db:"project_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description" db:"description"`
	DueDate     time.Time `json:"due_date" db:"due_date"`
	Completed   bool      `json:"completed" db:"completed"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
