package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// LeaveType represents the category of a leave entry
type LeaveType string

// Leave type constants
const (
	// LeaveTypeAnnual is planned annual leave
	LeaveTypeAnnual LeaveType = "annual"
	// LeaveTypeSick is sick leave
	LeaveTypeSick LeaveType = "sick"
	// LeaveTypeUnpaid is unpaid leave
	LeaveTypeUnpaid LeaveType = "unpaid"
)

// ParseLeaveType converts a string to a LeaveType
func ParseLeaveType(str string) (LeaveType, error) {
	switch str {
	case string(LeaveTypeAnnual):
		return LeaveTypeAnnual, nil
	case string(LeaveTypeSick):
		return LeaveTypeSick, nil
	case string(LeaveTypeUnpaid):
		return LeaveTypeUnpaid, nil
	default:
		return LeaveTypeAnnual, fmt.Errorf("invalid leave type: %s", str)
	}
}

// Leave represents a staff leave entry
type Leave struct {
	gorm.Model
	StaffID   uint      `json:"staff_id" gorm:"not null;index"`
	Type      LeaveType `json:"type" gorm:"not null;default:annual"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	Notes     string    `json:"notes,omitempty" gorm:"type:text"`
}

// Validate ensures that the leave entry is valid
func (l *Leave) Validate() error {
	if l.StaffID == 0 {
		return fmt.Errorf("leave must belong to a staff member")
	}
	if l.EndDate.Before(l.StartDate) {
		return fmt.Errorf("leave end date cannot be before start date")
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a new leave entry
func (l *Leave) BeforeCreate(_ *gorm.DB) error {
	if l.Type == "" {
		l.Type = LeaveTypeAnnual
	}
	return l.Validate()
}
