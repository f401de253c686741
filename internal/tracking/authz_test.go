package tracking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crewline/crewline/internal/db/models"
)

func TestActionForStatus(t *testing.T) {
	require.Equal(t, ActionCompleteProject, ActionForStatus(models.ProjectStatusCompleted))
	require.Equal(t, ActionCompleteProject, ActionForStatus(models.ProjectStatusCompletedNotSatisfied))
	require.Equal(t, ActionChangeStatus, ActionForStatus(models.ProjectStatusBlocked))
	require.Equal(t, ActionChangeStatus, ActionForStatus(models.ProjectStatusCompletedBlocked))
	require.Equal(t, ActionChangeStatus, ActionForStatus(models.ProjectStatusStarted))
}

func TestCanManageAdminOnlyTier(t *testing.T) {
	p := project(1, models.ProjectStatusStarted)

	adminRoles := []models.StaffRole{
		models.RoleMD, models.RoleDirector, models.RoleAdminManager,
		models.RoleOperationManager, models.RoleSuperLeader,
	}
	for _, role := range adminRoles {
		require.True(t, CanManage(role, ActionCompleteProject, &p, 9), role.String())
		require.True(t, CanManage(role, ActionDeleteProject, &p, 9), role.String())
		require.True(t, CanManage(role, ActionDeleteStaff, nil, 9), role.String())
	}

	for _, role := range []models.StaffRole{models.RoleTeamLeader, models.RoleSubTeamLeader, models.RoleStaff} {
		require.False(t, CanManage(role, ActionCompleteProject, &p, 9), role.String())
		require.False(t, CanManage(role, ActionDeleteProject, &p, 9), role.String())
	}
}

func TestCanManageLeadOverrideDoesNotReachAdminTier(t *testing.T) {
	p := project(1, models.ProjectStatusStarted)
	p.LeadID = uintPtr(9)

	// Leading the project does not grant admin-only actions.
	require.False(t, CanManage(models.RoleStaff, ActionCompleteProject, &p, 9))
	require.False(t, CanManage(models.RoleStaff, ActionDeleteProject, &p, 9))
}

func TestCanManageAdminOrLeadTier(t *testing.T) {
	p := project(1, models.ProjectStatusStarted)
	p.LeadID = uintPtr(9)

	t.Run("admin passes", func(t *testing.T) {
		require.True(t, CanManage(models.RoleDirector, ActionChangeStatus, &p, 2))
		require.True(t, CanManage(models.RoleDirector, ActionEditProject, &p, 2))
	})

	t.Run("the project lead passes whatever their role", func(t *testing.T) {
		require.True(t, CanManage(models.RoleStaff, ActionChangeStatus, &p, 9))
		require.True(t, CanManage(models.RoleStaff, ActionEditProject, &p, 9))
	})

	t.Run("non-lead staff fails", func(t *testing.T) {
		require.False(t, CanManage(models.RoleStaff, ActionChangeStatus, &p, 2))
		require.False(t, CanManage(models.RoleTeamLeader, ActionEditProject, &p, 2))
	})

	t.Run("project without a lead", func(t *testing.T) {
		q := project(2, models.ProjectStatusStarted)
		require.False(t, CanManage(models.RoleStaff, ActionChangeStatus, &q, 9))
	})
}

func TestCanManageLeaderTier(t *testing.T) {
	require.True(t, CanManage(models.RoleTeamLeader, ActionManageRiskItems, nil, 1))
	require.True(t, CanManage(models.RoleSubTeamLeader, ActionManageRiskItems, nil, 1))
	require.True(t, CanManage(models.RoleMD, ActionManageRiskItems, nil, 1))
	require.False(t, CanManage(models.RoleStaff, ActionManageRiskItems, nil, 1))
}

func TestCanManageAuthenticatedTier(t *testing.T) {
	require.True(t, CanManage(models.RoleStaff, ActionEditOwnTask, nil, 1))
	require.True(t, CanManage(models.RoleStaff, ActionAddStoreItem, nil, 1))
	require.True(t, CanManage(models.RoleStaff, ActionViewOwnLeave, nil, 1))
	require.False(t, CanManage(models.RoleStaff, ActionEditOwnTask, nil, 0))
}
