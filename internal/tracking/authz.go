package tracking

import (
	"github.com/crewline/crewline/internal/db/models"
)

// Action is a management action gated by role
type Action string

// Management actions
const (
	// ActionCompleteProject covers transitions to completed and completed-not-satisfied
	ActionCompleteProject Action = "complete_project"
	// ActionDeleteProject is deleting a project
	ActionDeleteProject Action = "delete_project"
	// ActionDeleteStaff is deleting a staff member
	ActionDeleteStaff Action = "delete_staff"
	// ActionChangeStatus covers every other project status transition,
	// including blocked and completed-blocked
	ActionChangeStatus Action = "change_status"
	// ActionEditProject is editing project fields
	ActionEditProject Action = "edit_project"
	// ActionManageRiskItems is creating or editing risk and issue items
	ActionManageRiskItems Action = "manage_risk_items"
	// ActionEditOwnTask is editing the comments/requirements of one's own task
	ActionEditOwnTask Action = "edit_own_task"
	// ActionAddStoreItem is adding store items
	ActionAddStoreItem Action = "add_store_item"
	// ActionViewOwnLeave is viewing one's own leave entries
	ActionViewOwnLeave Action = "view_own_leave"
)

// ActionForStatus maps a requested project status to the action tier that
// gates it.
func ActionForStatus(newStatus models.ProjectStatus) Action {
	switch newStatus {
	case models.ProjectStatusCompleted, models.ProjectStatusCompletedNotSatisfied:
		return ActionCompleteProject
	default:
		return ActionChangeStatus
	}
}

// CanManage reports whether a user with the given role may perform the action
// on the project. The project may be nil for actions that are not scoped to
// one. A user always passes the admin-or-lead tier on a project they lead,
// whatever their role.
func CanManage(role models.StaffRole, action Action, project *models.Project, userID uint) bool {
	switch action {
	case ActionCompleteProject, ActionDeleteProject, ActionDeleteStaff:
		return role.IsAdmin()

	case ActionChangeStatus, ActionEditProject:
		return role.IsAdmin() || isLead(project, userID)

	case ActionManageRiskItems:
		return role.IsLeader()

	case ActionEditOwnTask, ActionAddStoreItem, ActionViewOwnLeave:
		return userID != 0

	default:
		return false
	}
}

func isLead(project *models.Project, userID uint) bool {
	return project != nil && project.LeadID != nil && userID != 0 && *project.LeadID == userID
}
