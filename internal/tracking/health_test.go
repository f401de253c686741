package tracking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/crewline/crewline/internal/db/models"
)

func TestDetailHealthPolicy(t *testing.T) {
	policy := DetailHealthPolicy{}

	tests := []struct {
		name    string
		status  models.ProjectStatus
		percent float64
		prog    int
		behind  bool
		want    Health
	}{
		{name: "completed is green regardless", status: models.ProjectStatusCompleted, percent: 400, prog: 10, behind: true, want: HealthGreen},
		{name: "blocked is red regardless", status: models.ProjectStatusBlocked, percent: 10, prog: 90, want: HealthRed},
		{name: "not started is green regardless", status: models.ProjectStatusNotStarted, percent: 200, behind: true, want: HealthGreen},
		{name: "overage dominates deviation", status: models.ProjectStatusStarted, percent: 150, prog: 80, want: HealthRed},
		{name: "nan percent behind", status: models.ProjectStatusStarted, percent: math.NaN(), behind: true, want: HealthRed},
		{name: "nan percent on track", status: models.ProjectStatusStarted, percent: math.NaN(), want: HealthGreen},
		{name: "zero percent behind", status: models.ProjectStatusStarted, percent: 0, behind: true, want: HealthRed},
		{name: "zero percent on track", status: models.ProjectStatusStarted, percent: 0, want: HealthGreen},
		{name: "deviation over 25", status: models.ProjectStatusStarted, percent: 60, prog: 30, want: HealthRed},
		{name: "deviation over 10", status: models.ProjectStatusStarted, percent: 40, prog: 25, want: HealthYellow},
		{name: "small deviation behind on tasks", status: models.ProjectStatusStarted, percent: 30, prog: 25, behind: true, want: HealthYellow},
		{name: "small deviation on track", status: models.ProjectStatusStarted, percent: 30, prog: 25, want: HealthGreen},
		{name: "usage behind progress", status: models.ProjectStatusStarted, percent: 20, prog: 60, want: HealthGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project(1, tt.status)
			require.Equal(t, tt.want, policy.Evaluate(&p, tt.prog, tt.percent, tt.behind))
		})
	}
}

func TestSummaryHealthPolicy(t *testing.T) {
	policy := SummaryHealthPolicy{}

	tests := []struct {
		name   string
		status models.ProjectStatus
		behind bool
		want   Health
	}{
		{name: "overdue task is red", status: models.ProjectStatusStarted, behind: true, want: HealthRed},
		{name: "overdue dominates phase", status: models.ProjectStatusUserTesting, behind: true, want: HealthRed},
		{name: "user testing is yellow", status: models.ProjectStatusUserTesting, want: HealthYellow},
		{name: "update is yellow", status: models.ProjectStatusUpdate, want: HealthYellow},
		{name: "started is green", status: models.ProjectStatusStarted, want: HealthGreen},
		{name: "completed is green", status: models.ProjectStatusCompleted, want: HealthGreen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project(1, tt.status)
			require.Equal(t, tt.want, policy.Evaluate(&p, 0, 0, tt.behind))
		})
	}
}

func TestHoursUsagePercent(t *testing.T) {
	require.True(t, math.IsNaN(HoursUsagePercent(0, 10)))
	require.True(t, math.IsNaN(HoursUsagePercent(-1, 10)))
	require.InDelta(t, 50.0, HoursUsagePercent(40, 20), 1e-9)
	require.InDelta(t, 150.0, HoursUsagePercent(40, 60), 1e-9)
}

func TestIsBehindOnTasks(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	parent := project(1, models.ProjectStatusStarted)
	child := childProject(2, 1, models.ProjectStatusStarted, 100)
	other := project(3, models.ProjectStatusStarted)
	all := []models.Project{parent, child, other}

	t.Run("no tasks", func(t *testing.T) {
		require.False(t, IsBehindOnTasks(&parent, all, nil, now))
	})

	t.Run("overdue completed task does not count", func(t *testing.T) {
		tk := task(1, models.TaskStatusCompleted)
		tk.Deadline = &past
		require.False(t, IsBehindOnTasks(&parent, all, []models.Task{tk}, now))
	})

	t.Run("future deadline does not count", func(t *testing.T) {
		tk := task(1, models.TaskStatusInProgress)
		tk.Deadline = &future
		require.False(t, IsBehindOnTasks(&parent, all, []models.Task{tk}, now))
	})

	t.Run("overdue task on child counts against parent", func(t *testing.T) {
		tk := task(2, models.TaskStatusInProgress)
		tk.Deadline = &past
		require.True(t, IsBehindOnTasks(&parent, all, []models.Task{tk}, now))
	})

	t.Run("overdue task on unrelated project does not count", func(t *testing.T) {
		tk := task(3, models.TaskStatusInProgress)
		tk.Deadline = &past
		require.False(t, IsBehindOnTasks(&parent, all, []models.Task{tk}, now))
	})
}
