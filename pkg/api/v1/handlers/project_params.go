package handlers

import (
	"fmt"
	"time"

	"github.com/crewline/crewline/internal/db/models"
)

// ProjectCreateParams defines the parameters for creating a project
type ProjectCreateParams struct {
	Code           string     `json:"code,omitempty"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	ParentID       *uint      `json:"parent_id,omitempty"`
	Weight         int        `json:"weight,omitempty"`
	AllocatedHours float64    `json:"allocated_hours,omitempty"`
	MilestoneDate  *time.Time `json:"milestone_date,omitempty"`
	RiskLevel      string     `json:"risk_level,omitempty"`
	LeadID         *uint      `json:"lead_id,omitempty"`
}

// Validate validates the parameters for creating a project
func (p ProjectCreateParams) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("project name is required")
	}
	if p.Weight < 0 || p.Weight > 100 {
		return fmt.Errorf("project weight must be between 0 and 100")
	}
	if p.AllocatedHours < 0 {
		return fmt.Errorf("allocated hours cannot be negative")
	}
	if p.RiskLevel != "" {
		if _, err := models.ParseRiskLevel(p.RiskLevel); err != nil {
			return err
		}
	}
	return nil
}

// ToModel builds the project row from the params
func (p ProjectCreateParams) ToModel() models.Project {
	project := models.Project{
		Code:           p.Code,
		Name:           p.Name,
		Description:    p.Description,
		ParentID:       p.ParentID,
		Weight:         p.Weight,
		AllocatedHours: p.AllocatedHours,
		MilestoneDate:  p.MilestoneDate,
		LeadID:         p.LeadID,
	}
	if p.RiskLevel != "" {
		project.RiskLevel, _ = models.ParseRiskLevel(p.RiskLevel)
	}
	return project
}

// ProjectUpdateParams defines the partial field set accepted by the project
// update endpoint. Only non-nil fields are written.
type ProjectUpdateParams struct {
	Name            *string    `json:"name,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Weight          *int       `json:"weight,omitempty"`
	AllocatedHours  *float64   `json:"allocated_hours,omitempty"`
	AdditionalHours *float64   `json:"additional_hours,omitempty"`
	MilestoneDate   *time.Time `json:"milestone_date,omitempty"`
	RiskLevel       *string    `json:"risk_level,omitempty"`
	OverageReason   *string    `json:"overage_reason,omitempty"`
	LeadID          *uint      `json:"lead_id,omitempty"`
}

// Validate validates the parameters for updating a project
func (p ProjectUpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if p.Weight != nil && (*p.Weight < 0 || *p.Weight > 100) {
		return fmt.Errorf("project weight must be between 0 and 100")
	}
	if p.AllocatedHours != nil && *p.AllocatedHours < 0 {
		return fmt.Errorf("allocated hours cannot be negative")
	}
	if p.RiskLevel != nil {
		if _, err := models.ParseRiskLevel(*p.RiskLevel); err != nil {
			return err
		}
	}
	return nil
}

// Fields returns the partial update map for the repository
func (p ProjectUpdateParams) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	if p.Weight != nil {
		fields["weight"] = *p.Weight
	}
	if p.AllocatedHours != nil {
		fields["allocated_hours"] = *p.AllocatedHours
	}
	if p.AdditionalHours != nil {
		fields["additional_hours"] = *p.AdditionalHours
	}
	if p.MilestoneDate != nil {
		fields["milestone_date"] = *p.MilestoneDate
	}
	if p.RiskLevel != nil {
		level, _ := models.ParseRiskLevel(*p.RiskLevel)
		fields["risk_level"] = level
	}
	if p.OverageReason != nil {
		fields[models.ProjectOverageReasonField] = *p.OverageReason
	}
	if p.LeadID != nil {
		fields["lead_id"] = *p.LeadID
	}
	return fields
}

// ProjectStatusParams defines the parameters for a project status change
type ProjectStatusParams struct {
	Status string `json:"status"`
}

// Validate validates the parameters for a project status change
func (p ProjectStatusParams) Validate() error {
	_, err := models.ParseProjectStatus(p.Status)
	return err
}

// NotSatisfiedParams defines the parameters finishing the not-satisfied flow
type NotSatisfiedParams struct {
	Reason string `json:"reason"`
}

// CompletionToolsParams defines the parameters finishing the select-tools flow
type CompletionToolsParams struct {
	Tools []string `json:"tools"`
}

// CascadeCompleteParams defines the parameters finishing the complete-parent
// flow; ChildID is the sub-project that triggered the cascade
type CascadeCompleteParams struct {
	ChildID uint `json:"child_id"`
}

// Validate validates the cascade parameters
func (p CascadeCompleteParams) Validate() error {
	if p.ChildID == 0 {
		return fmt.Errorf("child_id is required")
	}
	return nil
}
