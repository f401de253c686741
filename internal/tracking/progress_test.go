package tracking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/crewline/crewline/internal/db/models"
)

func project(id uint, status models.ProjectStatus) models.Project {
	p := models.Project{Status: status}
	p.ID = id
	return p
}

func childProject(id, parentID uint, status models.ProjectStatus, weight int) models.Project {
	p := project(id, status)
	p.ParentID = &parentID
	p.Weight = weight
	return p
}

func task(projectID uint, status models.TaskStatus) models.Task {
	return models.Task{ProjectID: projectID, Title: "t", Status: status}
}

func TestProgressCompletedIsAlways100(t *testing.T) {
	p := project(1, models.ProjectStatusCompleted)
	// Even with zero completed children the status wins.
	children := []models.Project{
		p,
		childProject(2, 1, models.ProjectStatusStarted, 50),
		childProject(3, 1, models.ProjectStatusStarted, 50),
	}
	require.Equal(t, 100, Progress(&p, children, nil, nil))
}

func TestProgressNotStartedIsZero(t *testing.T) {
	p := project(1, models.ProjectStatusNotStarted)
	tasks := []models.Task{task(1, models.TaskStatusCompleted)}
	require.Equal(t, 0, Progress(&p, []models.Project{p}, tasks, nil))
}

func TestProgressParentSumsCompletedChildWeights(t *testing.T) {
	p := project(1, models.ProjectStatusStarted)
	all := []models.Project{
		p,
		childProject(2, 1, models.ProjectStatusCompleted, 30),
		childProject(3, 1, models.ProjectStatusStarted, 50),
		childProject(4, 1, models.ProjectStatusCompleted, 20),
	}
	require.Equal(t, 50, Progress(&p, all, nil, nil))
}

func TestProgressParentClampsOverallocatedWeights(t *testing.T) {
	p := project(1, models.ProjectStatusStarted)
	all := []models.Project{
		p,
		childProject(2, 1, models.ProjectStatusCompleted, 70),
		childProject(3, 1, models.ProjectStatusCompleted, 60),
	}
	require.Equal(t, 100, Progress(&p, all, nil, nil))
}

func TestProgressIncompleteChildGetsNoPartialCredit(t *testing.T) {
	p := project(1, models.ProjectStatusStarted)
	// Child 2 has all its tasks done but is not marked completed.
	all := []models.Project{p, childProject(2, 1, models.ProjectStatusStarted, 100)}
	tasks := []models.Task{task(2, models.TaskStatusCompleted)}
	require.Equal(t, 0, Progress(&p, all, tasks, nil))
}

func TestProgressLeafTaskRatio(t *testing.T) {
	tests := []struct {
		name  string
		tasks []models.Task
		want  int
	}{
		{name: "no tasks", tasks: nil, want: 0},
		{name: "half done", tasks: []models.Task{
			task(1, models.TaskStatusCompleted),
			task(1, models.TaskStatusInProgress),
		}, want: 50},
		{name: "one of three rounds", tasks: []models.Task{
			task(1, models.TaskStatusCompleted),
			task(1, models.TaskStatusNotStarted),
			task(1, models.TaskStatusNotStarted),
		}, want: 33},
		{name: "two of three rounds up", tasks: []models.Task{
			task(1, models.TaskStatusCompleted),
			task(1, models.TaskStatusCompleted),
			task(1, models.TaskStatusNotStarted),
		}, want: 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := project(1, models.ProjectStatusStarted)
			require.Equal(t, tt.want, Progress(&p, []models.Project{p}, tt.tasks, nil))
		})
	}
}

func TestProgressIgnoresOtherProjectsTasks(t *testing.T) {
	p := project(1, models.ProjectStatusStarted)
	tasks := []models.Task{
		task(1, models.TaskStatusCompleted),
		task(9, models.TaskStatusNotStarted),
		task(9, models.TaskStatusNotStarted),
	}
	require.Equal(t, 100, Progress(&p, []models.Project{p}, tasks, nil))
}

func TestProgressMemoizationIsIdempotent(t *testing.T) {
	p := project(1, models.ProjectStatusStarted)
	all := []models.Project{
		p,
		childProject(2, 1, models.ProjectStatusCompleted, 40),
		childProject(3, 1, models.ProjectStatusStarted, 60),
	}

	cache := map[uint]int{}
	first := Progress(&p, all, nil, cache)
	second := Progress(&p, all, nil, cache)
	require.Equal(t, first, second)
	require.Equal(t, 40, second)
	require.Equal(t, 40, cache[1])
}
