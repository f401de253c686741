package handlers

import (
	"fmt"
	"time"

	"github.com/crewline/crewline/internal/db/models"
)

// TaskCreateParams defines the parameters for creating a task
type TaskCreateParams struct {
	ProjectID    uint       `json:"project_id"`
	Title        string     `json:"title"`
	Type         string     `json:"type,omitempty"`
	Severity     string     `json:"severity,omitempty"`
	AssigneeID   *uint      `json:"assignee_id,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Comments     string     `json:"comments,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
}

// Validate validates the parameters for creating a task
func (p TaskCreateParams) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("task title is required")
	}
	if p.ProjectID == 0 {
		return fmt.Errorf("project_id is required")
	}
	taskType := models.TaskTypePlain
	if p.Type != "" {
		var err error
		taskType, err = models.ParseTaskType(p.Type)
		if err != nil {
			return err
		}
	}
	if p.Severity != "" {
		if taskType == models.TaskTypePlain {
			return fmt.Errorf("severity only applies to risk and issue items")
		}
		if _, err := models.ParseSeverity(p.Severity); err != nil {
			return err
		}
	}
	return nil
}

// ToModel builds the task row from the params
func (p TaskCreateParams) ToModel() models.Task {
	task := models.Task{
		ProjectID:    p.ProjectID,
		Title:        p.Title,
		AssigneeID:   p.AssigneeID,
		Deadline:     p.Deadline,
		Comments:     p.Comments,
		Requirements: p.Requirements,
	}
	if p.Type != "" {
		task.Type, _ = models.ParseTaskType(p.Type)
	}
	if p.Severity != "" {
		task.Severity, _ = models.ParseSeverity(p.Severity)
	}
	return task
}

// TaskUpdateParams defines the partial field set accepted by the task update
// endpoint
type TaskUpdateParams struct {
	Title        *string    `json:"title,omitempty"`
	Severity     *string    `json:"severity,omitempty"`
	AssigneeID   *uint      `json:"assignee_id,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Comments     *string    `json:"comments,omitempty"`
	Requirements *string    `json:"requirements,omitempty"`
}

// Validate validates the parameters for updating a task
func (p TaskUpdateParams) Validate() error {
	if p.Title != nil && *p.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if p.Severity != nil {
		if _, err := models.ParseSeverity(*p.Severity); err != nil {
			return err
		}
	}
	return nil
}

// Fields returns the partial update map for the repository
func (p TaskUpdateParams) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Title != nil {
		fields["title"] = *p.Title
	}
	if p.Severity != nil {
		severity, _ := models.ParseSeverity(*p.Severity)
		fields["severity"] = severity
	}
	if p.AssigneeID != nil {
		fields["assignee_id"] = *p.AssigneeID
	}
	if p.Deadline != nil {
		fields["deadline"] = *p.Deadline
	}
	if p.Comments != nil {
		fields["comments"] = *p.Comments
	}
	if p.Requirements != nil {
		fields["requirements"] = *p.Requirements
	}
	return fields
}

// TaskStatusParams defines the parameters for a task status change
type TaskStatusParams struct {
	Status string `json:"status"`
}

// TaskCompleteParams defines the parameters finishing the complete-task flow
type TaskCompleteParams struct {
	TimeSpent *float64 `json:"time_spent,omitempty"`
	TimeSaved *float64 `json:"time_saved,omitempty"`
}
