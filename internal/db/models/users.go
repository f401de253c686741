package models

import (
	"encoding/json"
	"fmt"
	"math"

	"gorm.io/gorm"
)

// StaffRole represents the rank of a staff member in the organisation
type StaffRole int

// Staff role constants, ordered from most to least privileged
const (
	// RoleMD is the managing director
	RoleMD StaffRole = iota
	// RoleDirector is a company director
	RoleDirector
	// RoleAdminManager is an administrative manager
	RoleAdminManager
	// RoleOperationManager is an operations manager
	RoleOperationManager
	// RoleSuperLeader is a cross-team leader
	RoleSuperLeader
	// RoleTeamLeader leads a single team
	RoleTeamLeader
	// RoleSubTeamLeader leads a sub-team
	RoleSubTeamLeader
	// RoleStaff is a regular staff member
	RoleStaff
)

// staffRoleNames maps each role to its wire representation
var staffRoleNames = []string{
	"md",
	"director",
	"admin_manager",
	"operation_manager",
	"super_leader",
	"team_leader",
	"sub_team_leader",
	"staff",
}

func (r StaffRole) String() string {
	if int(r) < 0 || int(r) >= len(staffRoleNames) {
		return "staff"
	}
	return staffRoleNames[r]
}

// IsAdmin reports whether the role belongs to the admin tier
func (r StaffRole) IsAdmin() bool {
	switch r {
	case RoleMD, RoleDirector, RoleAdminManager, RoleOperationManager, RoleSuperLeader:
		return true
	default:
		return false
	}
}

// IsLeader reports whether the role belongs to the leader tier. Every admin
// role is also a leader.
func (r StaffRole) IsLeader() bool {
	return r.IsAdmin() || r == RoleTeamLeader || r == RoleSubTeamLeader
}

// ParseStaffRole converts a string representation of a staff role to StaffRole
func ParseStaffRole(str string) (StaffRole, error) {
	for i, role := range staffRoleNames {
		if role == str {
			return StaffRole(i), nil
		}
	}
	return RoleStaff, fmt.Errorf("invalid staff role: %s", str)
}

// MarshalJSON implements json.Marshaler for StaffRole
func (r StaffRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON implements json.Unmarshaler for StaffRole
func (r *StaffRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	role, err := ParseStaffRole(str)
	if err != nil {
		return err
	}

	*r = role
	return nil
}

// User represents a staff member
type User struct {
	gorm.Model
	Username string    `json:"username" gorm:"not null;unique"`
	Email    string    `json:"email" gorm:""`
	Role     StaffRole `json:"role" gorm:"index"`
}

// MarshalJSON implements the json.Marshaler interface for User
func (u User) MarshalJSON() ([]byte, error) {
	type Alias User // Create an alias to avoid infinite recursion
	return json.Marshal(Alias(u))
}

// AdminID represents the special ID for the seeded admin user
const AdminID uint = math.MaxUint32
