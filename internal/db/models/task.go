package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for task model
const (
	// TaskStatusField is the field name for task status
	TaskStatusField = "status"
	// TaskCompletedAtField is the field name for the completion stamp
	TaskCompletedAtField = "completed_at"
)

// TaskStatus represents the current state of a task
type TaskStatus string

// Task status constants
const (
	// TaskStatusUnknown represents an unknown or invalid task status
	TaskStatusUnknown TaskStatus = "unknown"
	// TaskStatusNotStarted indicates the task has not been picked up yet
	TaskStatusNotStarted TaskStatus = "not_started"
	// TaskStatusInProgress indicates the task is being worked on
	TaskStatusInProgress TaskStatus = "in_progress"
	// TaskStatusOnHold indicates the task is paused
	TaskStatusOnHold TaskStatus = "on_hold"
	// TaskStatusBlocked indicates the task cannot proceed
	TaskStatusBlocked TaskStatus = "blocked"
	// TaskStatusUserTesting indicates the task is in user acceptance testing
	TaskStatusUserTesting TaskStatus = "user_testing"
	// TaskStatusUpdate indicates the task is receiving follow-up changes
	TaskStatusUpdate TaskStatus = "update"
	// TaskStatusCompleted indicates the task is done; this is one-way
	TaskStatusCompleted TaskStatus = "completed"
)

// taskStatusNames holds every valid status string for parsing
var taskStatusNames = []TaskStatus{
	TaskStatusNotStarted,
	TaskStatusInProgress,
	TaskStatusOnHold,
	TaskStatusBlocked,
	TaskStatusUserTesting,
	TaskStatusUpdate,
	TaskStatusCompleted,
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus converts a string to a TaskStatus type
func ParseTaskStatus(str string) (TaskStatus, error) {
	for _, status := range taskStatusNames {
		if str == string(status) {
			return status, nil
		}
	}
	return TaskStatusUnknown, fmt.Errorf("invalid task status: %s", str)
}

// UnmarshalJSON implements json.Unmarshaler for TaskStatus
func (s *TaskStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseTaskStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// MarshalJSON implements json.Marshaler for TaskStatus
func (s *TaskStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// TaskType discriminates plain tasks from risk and issue items
type TaskType string

// Task type constants
const (
	// TaskTypePlain represents an ordinary work item
	TaskTypePlain TaskType = "task"
	// TaskTypeRisk represents a BLOCKED item; an active one is required
	// before a project may move to the blocked status
	TaskTypeRisk TaskType = "risk"
	// TaskTypeIssue represents a tracked issue
	TaskTypeIssue TaskType = "issue"
)

// ParseTaskType converts a string to a TaskType
func ParseTaskType(str string) (TaskType, error) {
	switch str {
	case string(TaskTypePlain), "":
		return TaskTypePlain, nil
	case string(TaskTypeRisk):
		return TaskTypeRisk, nil
	case string(TaskTypeIssue):
		return TaskTypeIssue, nil
	default:
		return TaskTypePlain, fmt.Errorf("invalid task type: %s", str)
	}
}

// Severity represents the severity of a risk or issue item
type Severity string

// Severity constants
const (
	// SeverityCritical is the highest severity
	SeverityCritical Severity = "critical"
	// SeverityHigh is high severity
	SeverityHigh Severity = "high"
	// SeverityMedium is medium severity
	SeverityMedium Severity = "medium"
	// SeverityLow is the lowest severity
	SeverityLow Severity = "low"
)

// ParseSeverity converts a string to a Severity
func ParseSeverity(str string) (Severity, error) {
	switch str {
	case string(SeverityCritical):
		return SeverityCritical, nil
	case string(SeverityHigh):
		return SeverityHigh, nil
	case string(SeverityMedium):
		return SeverityMedium, nil
	case string(SeverityLow):
		return SeverityLow, nil
	default:
		return SeverityLow, fmt.Errorf("invalid severity: %s", str)
	}
}

// Task represents a unit of work belonging to exactly one project. Risk and
// issue items reuse the same table with a discriminating Type and a Severity.
type Task struct {
	gorm.Model
	ProjectID    uint       `json:"project_id" gorm:"not null;index"`
	Title        string     `json:"title" gorm:"not null;index"`
	Status       TaskStatus `json:"status" gorm:"not null;index"`
	Type         TaskType   `json:"type" gorm:"not null;default:task;index"`
	Severity     Severity   `json:"severity,omitempty"`
	AssigneeID   *uint      `json:"assignee_id,omitempty" gorm:"index"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	TimeSpent    *float64   `json:"time_spent,omitempty"`
	TimeSaved    *float64   `json:"time_saved,omitempty"`
	Comments     string     `json:"comments,omitempty" gorm:"type:text"`
	Requirements string     `json:"requirements,omitempty" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at" gorm:"index"`
}

// MarshalJSON implements the json.Marshaler interface for Task
func (t Task) MarshalJSON() ([]byte, error) {
	type Alias Task // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(t))
}

// IsActiveRisk reports whether the task is a risk item that has not been
// completed. Projects may only be blocked while one of these exists.
func (t *Task) IsActiveRisk() bool {
	return t.Type == TaskTypeRisk && t.Status != TaskStatusCompleted
}

// IsOverdue reports whether the task has a deadline in the past and is not
// completed
func (t *Task) IsOverdue(now time.Time) bool {
	return t.Deadline != nil && t.Deadline.Before(now) && t.Status != TaskStatusCompleted
}

// Validate ensures that the task data is valid
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if t.ProjectID == 0 {
		return fmt.Errorf("task must belong to a project")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new task
func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.Status == "" {
		t.Status = TaskStatusNotStarted
	}
	if t.Type == "" {
		t.Type = TaskTypePlain
	}
	return t.Validate()
}
