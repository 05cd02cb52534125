package entity

import (
	"time"

	"github.com/google/uuid"
)

// MilestoneStatus enumerates milestone lifecycle states.
type MilestoneStatus string

const (
	MilestoneActive    MilestoneStatus = "active"
	MilestoneCompleted MilestoneStatus = "completed"
	MilestoneArchived  MilestoneStatus = "archived"
)

// IsValid reports whether s is a known milestone status.
func (s MilestoneStatus) IsValid() bool {
	return s == MilestoneActive || s == MilestoneCompleted || s == MilestoneArchived
}

// SprintStatus enumerates sprint lifecycle states.
type SprintStatus string

const (
	SprintPlanned   SprintStatus = "planned"
	SprintActive    SprintStatus = "active"
	SprintCompleted SprintStatus = "completed"
)

// IsValid reports whether s is a known sprint status.
func (s SprintStatus) IsValid() bool {
	return s == SprintPlanned || s == SprintActive || s == SprintCompleted
}

// TaskStatus enumerates task lifecycle states. TaskDone is terminal.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// IsValid reports whether s is a known task status.
func (s TaskStatus) IsValid() bool {
	return s == TaskTodo || s == TaskInProgress || s == TaskDone
}

// Milestone is a long-lived planning goal that sprints roll up to.
type Milestone struct {
	ID          uuid.UUID
	UserID      string
	Title       string
	Description string
	TargetDate  *string // YYYY-MM-DD
	Status      MilestoneStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sprint is a time-boxed iteration, optionally attached to a milestone.
type Sprint struct {
	ID           uuid.UUID
	UserID       string
	MilestoneID  *uuid.UUID
	Title        string
	Description  string
	StartDate    string // YYYY-MM-DD
	EndDate      string // YYYY-MM-DD
	Status       SprintStatus
	TargetPoints *int32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Task is a unit of planned work, optionally attached to a sprint and
// optionally mirrored from an external issue tracker.
type Task struct {
	ID               uuid.UUID
	UserID           string
	SprintID         *uuid.UUID
	Title            string
	Description      string
	Status           TaskStatus
	StoryPoints      *int32
	StoryPointSystem *string // fibonacci, tshirt or linear
	ExternalID       *string
	ExternalSource   *string
	ExternalURL      *string
	TargetDate       *string // YYYY-MM-DD
	CompletedAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
