package tracking

import (
	"math"

	"github.com/crewline/crewline/internal/db/models"
)

// TasksOf returns the tasks belonging to the given project id.
func TasksOf(tasks []models.Task, projectID uint) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// Progress computes the 0-100 progress percentage of a project.
//
// A completed project is always 100 and a not-started one always 0,
// regardless of children or tasks. A parent earns the weight of each
// completed child and nothing for incomplete ones; a leaf earns the rounded
// share of its completed tasks. The result is clamped to 100 so
// over-allocated child weights cannot push it past that.
//
// cache memoizes results by project id within one evaluation pass; pass nil
// to skip memoization.
func Progress(project *models.Project, projects []models.Project, tasks []models.Task, cache map[uint]int) int {
	if cache != nil {
		if v, ok := cache[project.ID]; ok {
			return v
		}
	}

	value := computeProgress(project, projects, tasks)
	if value > 100 {
		value = 100
	}

	if cache != nil {
		cache[project.ID] = value
	}
	return value
}

func computeProgress(project *models.Project, projects []models.Project, tasks []models.Task) int {
	switch project.Status {
	case models.ProjectStatusCompleted:
		return 100
	case models.ProjectStatusNotStarted:
		return 0
	}

	children := Children(projects, project.ID)
	if len(children) > 0 {
		// Binary credit only: an incomplete child contributes nothing,
		// however far along its own progress is.
		total := 0
		for i := range children {
			if children[i].Status == models.ProjectStatusCompleted {
				total += children[i].Weight
			}
		}
		return total
	}

	projectTasks := TasksOf(tasks, project.ID)
	if len(projectTasks) == 0 {
		return 0
	}
	done := 0
	for i := range projectTasks {
		if projectTasks[i].Status == models.TaskStatusCompleted {
			done++
		}
	}
	return int(math.Round(100 * float64(done) / float64(len(projectTasks))))
}
