package tracking

import (
	"math"
	"time"

	"github.com/crewline/crewline/internal/db/models"
)

// Health is a traffic-light project health status
type Health string

// Health constants
const (
	// HealthRed signals the project needs intervention
	HealthRed Health = "red"
	// HealthYellow signals the project needs attention
	HealthYellow Health = "yellow"
	// HealthGreen signals the project is on track
	HealthGreen Health = "green"
)

// HealthPolicy derives a traffic-light status for a project. Two policies
// exist because the detail and portfolio views grade projects differently;
// they are deliberately kept separate rather than merged (see DESIGN.md).
type HealthPolicy interface {
	// Name identifies the policy in logs and responses
	Name() string
	// Evaluate derives the health of a project given its computed progress,
	// its used-vs-allocated hours percentage (NaN when no hours are
	// allocated) and whether any task under it is overdue.
	Evaluate(project *models.Project, progress int, hoursUsagePercent float64, behindOnTasks bool) Health
}

// DetailHealthPolicy is the policy used by the project detail and project
// list views. Budget overage always dominates; otherwise the deviation of
// hours usage ahead of progress sets the band.
type DetailHealthPolicy struct{}

// Name implements HealthPolicy
func (DetailHealthPolicy) Name() string { return "detail" }

// Evaluate implements HealthPolicy
func (DetailHealthPolicy) Evaluate(project *models.Project, progress int, hoursUsagePercent float64, behindOnTasks bool) Health {
	switch project.Status {
	case models.ProjectStatusCompleted:
		return HealthGreen
	case models.ProjectStatusBlocked:
		return HealthRed
	case models.ProjectStatusNotStarted:
		return HealthGreen
	}

	if hoursUsagePercent > 100 {
		return HealthRed
	}

	// No budget or no time logged yet: only the task signal is available.
	if math.IsNaN(hoursUsagePercent) || hoursUsagePercent == 0 {
		if behindOnTasks {
			return HealthRed
		}
		return HealthGreen
	}

	deviation := hoursUsagePercent - float64(progress)
	switch {
	case deviation > 25:
		return HealthRed
	case deviation > 10:
		return HealthYellow
	case behindOnTasks:
		return HealthYellow
	default:
		return HealthGreen
	}
}

// SummaryHealthPolicy is the simpler policy used by the executive summary
// view: overdue work is red, user-testing and update phases are yellow,
// everything else is green.
type SummaryHealthPolicy struct{}

// Name implements HealthPolicy
func (SummaryHealthPolicy) Name() string { return "summary" }

// Evaluate implements HealthPolicy
func (SummaryHealthPolicy) Evaluate(project *models.Project, _ int, _ float64, behindOnTasks bool) Health {
	if behindOnTasks {
		return HealthRed
	}
	switch project.Status {
	case models.ProjectStatusUserTesting, models.ProjectStatusUpdate:
		return HealthYellow
	default:
		return HealthGreen
	}
}

// HoursUsagePercent returns used hours as a percentage of allocated hours,
// or NaN when nothing is allocated.
func HoursUsagePercent(allocated, used float64) float64 {
	if allocated <= 0 {
		return math.NaN()
	}
	return used / allocated * 100
}

// IsBehindOnTasks reports whether any task under the project has a deadline
// in the past and is not completed. For a parent project the tasks of all
// direct children count too.
func IsBehindOnTasks(project *models.Project, projects []models.Project, tasks []models.Task, now time.Time) bool {
	ids := map[uint]bool{project.ID: true}
	for _, child := range Children(projects, project.ID) {
		ids[child.ID] = true
	}
	for i := range tasks {
		if ids[tasks[i].ProjectID] && tasks[i].IsOverdue(now) {
			return true
		}
	}
	return false
}
