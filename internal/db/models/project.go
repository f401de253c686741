package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Field names for project model
const (
	// ProjectStatusField is the field name for project status
	ProjectStatusField = "status"
	// ProjectUsedHoursField is the field name for the accumulated hours baseline
	ProjectUsedHoursField = "used_hours"
	// ProjectTimerStartField is the field name for the running-timer start stamp
	ProjectTimerStartField = "timer_start_time"
	// ProjectCompletedAtField is the field name for the completion stamp
	ProjectCompletedAtField = "completed_at"
	// ProjectOverageReasonField is the field name for the overage reason text
	ProjectOverageReasonField = "overage_reason"
	// ProjectCompletionNoteField is the field name for the not-satisfied reason text
	ProjectCompletionNoteField = "completion_note"
	// ProjectCompletionToolsField is the field name for the captured tool list
	ProjectCompletionToolsField = "completion_tools"
)

// ProjectStatus represents the current state of a project
type ProjectStatus string

// Project status constants
const (
	// ProjectStatusUnknown represents an unknown or invalid project status
	ProjectStatusUnknown ProjectStatus = "unknown"
	// ProjectStatusNotStarted indicates no work has been logged yet
	ProjectStatusNotStarted ProjectStatus = "not_started"
	// ProjectStatusStarted indicates the project is in active delivery
	ProjectStatusStarted ProjectStatus = "started"
	// ProjectStatusUserTesting indicates the project is in user acceptance testing
	ProjectStatusUserTesting ProjectStatus = "user_testing"
	// ProjectStatusUpdate indicates the project is receiving post-delivery updates
	ProjectStatusUpdate ProjectStatus = "update"
	// ProjectStatusBlocked indicates the project is blocked by an active risk
	ProjectStatusBlocked ProjectStatus = "blocked"
	// ProjectStatusCompleted indicates the project finished normally
	ProjectStatusCompleted ProjectStatus = "completed"
	// ProjectStatusCompletedBlocked indicates the project was closed while blocked
	ProjectStatusCompletedBlocked ProjectStatus = "completed_blocked"
	// ProjectStatusCompletedNotSatisfied indicates the project was closed with an unsatisfied outcome
	ProjectStatusCompletedNotSatisfied ProjectStatus = "completed_not_satisfied"
)

// projectStatusNames holds every valid status string for parsing
var projectStatusNames = []ProjectStatus{
	ProjectStatusNotStarted,
	ProjectStatusStarted,
	ProjectStatusUserTesting,
	ProjectStatusUpdate,
	ProjectStatusBlocked,
	ProjectStatusCompleted,
	ProjectStatusCompletedBlocked,
	ProjectStatusCompletedNotSatisfied,
}

// String returns the string representation of the project status
func (s ProjectStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status is one of the completed variants
func (s ProjectStatus) IsTerminal() bool {
	switch s {
	case ProjectStatusCompleted, ProjectStatusCompletedBlocked, ProjectStatusCompletedNotSatisfied:
		return true
	default:
		return false
	}
}

// ParseProjectStatus converts a string to a ProjectStatus type
func ParseProjectStatus(str string) (ProjectStatus, error) {
	for _, status := range projectStatusNames {
		if str == string(status) {
			return status, nil
		}
	}
	return ProjectStatusUnknown, fmt.Errorf("invalid project status: %s", str)
}

// UnmarshalJSON implements json.Unmarshaler for ProjectStatus
func (s *ProjectStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	status, err := ParseProjectStatus(str)
	if err != nil {
		return err
	}

	*s = status
	return nil
}

// MarshalJSON implements json.Marshaler for ProjectStatus
func (s *ProjectStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// RiskLevel represents the assessed delivery risk of a project
type RiskLevel string

// Risk level constants
const (
	// RiskLevelLow indicates low delivery risk
	RiskLevelLow RiskLevel = "low"
	// RiskLevelMedium indicates medium delivery risk
	RiskLevelMedium RiskLevel = "medium"
	// RiskLevelHigh indicates high delivery risk
	RiskLevelHigh RiskLevel = "high"
)

// ParseRiskLevel converts a string to a RiskLevel type
func ParseRiskLevel(str string) (RiskLevel, error) {
	switch str {
	case string(RiskLevelLow):
		return RiskLevelLow, nil
	case string(RiskLevelMedium):
		return RiskLevelMedium, nil
	case string(RiskLevelHigh):
		return RiskLevelHigh, nil
	default:
		return RiskLevelLow, fmt.Errorf("invalid risk level: %s", str)
	}
}

// Project represents a tracked project. A project with a ParentID is a
// sub-project contributing Weight percent toward its parent's progress; a
// project that other rows point at is a parent and its displayed hours are
// the rollup of its direct children.
type Project struct {
	gorm.Model
	Code            string        `json:"code" gorm:"not null;uniqueIndex"`
	Name            string        `json:"name" gorm:"not null;index"`
	Description     string        `json:"description" gorm:"type:text"`
	Status          ProjectStatus `json:"status" gorm:"not null;index"`
	ParentID        *uint         `json:"parent_id,omitempty" gorm:"index"`
	Weight          int           `json:"weight"`
	AllocatedHours  float64       `json:"allocated_hours"`
	UsedHours       float64       `json:"used_hours"`
	AdditionalHours float64       `json:"additional_hours"`
	// TimerStartTime is the raw persisted timer stamp. Legacy rows carry
	// offset-naive space-separated datetimes, so it stays a string and is
	// only interpreted by the tracking accumulator.
	TimerStartTime *string    `json:"timer_start_time,omitempty" gorm:"type:varchar(40)"`
	MilestoneDate  *time.Time `json:"milestone_date,omitempty"`
	RiskLevel      RiskLevel  `json:"risk_level" gorm:"not null;default:low"`
	OverageReason  string     `json:"overage_reason,omitempty" gorm:"type:text"`
	// CompletionNote holds the reason captured by the not-satisfied
	// completion flow.
	CompletionNote string `json:"completion_note,omitempty" gorm:"type:text"`
	// CompletionTools holds the comma-separated tool list captured by the
	// select-tools flow before user testing.
	CompletionTools string `json:"completion_tools,omitempty" gorm:"type:text"`
	LeadID      *uint      `json:"lead_id,omitempty" gorm:"index"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Tasks       []Task     `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`
	CreatedAt   time.Time  `json:"created_at" gorm:"index"`
}

// MarshalJSON implements the json.Marshaler interface for Project
func (p Project) MarshalJSON() ([]byte, error) {
	type Alias Project // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(p))
}

// IsChild reports whether the project is a sub-project of another project
func (p *Project) IsChild() bool {
	return p.ParentID != nil
}

// SafeUsedHours returns the persisted hours baseline clamped to >= 0
func (p *Project) SafeUsedHours() float64 {
	if p.UsedHours < 0 {
		return 0
	}
	return p.UsedHours
}

// Validate ensures that the project data is valid
func (p *Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if p.Weight < 0 || p.Weight > 100 {
		return fmt.Errorf("project weight must be between 0 and 100")
	}
	if p.AllocatedHours < 0 {
		return fmt.Errorf("allocated hours cannot be negative")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new project
func (p *Project) BeforeCreate(_ *gorm.DB) error {
	if p.Status == "" {
		p.Status = ProjectStatusNotStarted
	}
	if p.RiskLevel == "" {
		p.RiskLevel = RiskLevelLow
	}
	return p.Validate()
}
