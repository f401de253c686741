package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/internal/db/repos"
	"github.com/crewline/crewline/internal/logger"
	"github.com/crewline/crewline/internal/tracking"
)

// stampLayout is the legacy persisted timer stamp format: offset-naive local
// time with a space separator.
const stampLayout = "2006-01-02 15:04:05"

// missingRefPlaceholder is shown when a referenced row no longer exists
const missingRefPlaceholder = "N/A"

// Actor identifies the user performing a mutation
type Actor struct {
	ID   uint             `json:"id"`
	Role models.StaffRole `json:"role"`
}

// ProjectView is a project row enriched with every derived value the
// dashboard renders. All views read these numbers from here so the three
// surfaces cannot drift apart.
type ProjectView struct {
	models.Project
	Progress       int             `json:"progress"`
	Health         tracking.Health `json:"health"`
	DisplayedAlloc float64         `json:"displayed_allocated_hours"`
	DisplayedUsed  float64         `json:"displayed_used_hours"`
	TimerRunning   bool            `json:"timer_running"`
	LeadName       string          `json:"lead_name"`
}

// Project handles project-related operations
type Project struct {
	repo     *repos.ProjectRepository
	taskRepo *repos.TaskRepository
	userRepo *repos.UserRepository
	health   tracking.HealthPolicy
	now      func() time.Time
}

// NewProjectService creates a new instance of the project service
func NewProjectService(repo *repos.ProjectRepository, taskRepo *repos.TaskRepository, userRepo *repos.UserRepository) *Project {
	return &Project{
		repo:     repo,
		taskRepo: taskRepo,
		userRepo: userRepo,
		health:   tracking.DetailHealthPolicy{},
		now:      time.Now,
	}
}

// Create creates a new project, generating a short code when none is given
func (s *Project) Create(ctx context.Context, project *models.Project) error {
	if project.Code == "" {
		project.Code = uuid.NewString()[:8]
	}
	return s.repo.Create(ctx, project)
}

// Get retrieves a project by ID
func (s *Project) Get(ctx context.Context, id uint) (*models.Project, error) {
	return s.repo.Get(ctx, id)
}

// GetByCode retrieves a project by its short code
func (s *Project) GetByCode(ctx context.Context, code string) (*models.Project, error) {
	return s.repo.GetByCode(ctx, code)
}

// List retrieves all projects with pagination
func (s *Project) List(ctx context.Context, opts *models.ListOptions) ([]models.Project, error) {
	return s.repo.List(ctx, opts)
}

// Update applies a partial field set to a project
func (s *Project) Update(ctx context.Context, id uint, fields map[string]interface{}, actor Actor) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tracking.CanManage(actor.Role, tracking.ActionEditProject, project, actor.ID) {
		return nil, ErrNotAuthorized
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

// Delete deletes a project
func (s *Project) Delete(ctx context.Context, id uint, actor Actor) error {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !tracking.CanManage(actor.Role, tracking.ActionDeleteProject, project, actor.ID) {
		return ErrNotAuthorized
	}
	return s.repo.Delete(ctx, id)
}

// View returns the derived view of one project
func (s *Project) View(ctx context.Context, id uint) (*ProjectView, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	projects, tasks, users, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	view := s.buildView(project, projects, tasks, users, map[uint]int{}, s.now())
	return &view, nil
}

// ListViews returns the derived views of every project in one evaluation
// pass, sharing the progress memo across the whole hierarchy.
func (s *Project) ListViews(ctx context.Context) ([]ProjectView, error) {
	projects, tasks, users, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	cache := map[uint]int{}
	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		views = append(views, s.buildView(&projects[i], projects, tasks, users, cache, now))
	}
	return views, nil
}

func (s *Project) loadAll(ctx context.Context) ([]models.Project, []models.Task, []models.User, error) {
	projects, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	users, err := s.userRepo.GetUsers(ctx, nil)
	if err != nil {
		// A missing member list only degrades the lead column.
		logger.Warnf("failed to load users for project views: %v", err)
		users = nil
	}
	return projects, tasks, users, nil
}

func (s *Project) buildView(project *models.Project, projects []models.Project, tasks []models.Task, users []models.User, cache map[uint]int, now time.Time) ProjectView {
	progress := tracking.Progress(project, projects, tasks, cache)
	alloc := tracking.AllocatedHours(project, projects)
	used := tracking.UsedHours(project, projects, now)
	behind := tracking.IsBehindOnTasks(project, projects, tasks, now)
	usage := tracking.HoursUsagePercent(alloc, used)

	return ProjectView{
		Project:        *project,
		Progress:       progress,
		Health:         s.health.Evaluate(project, progress, usage, behind),
		DisplayedAlloc: alloc,
		DisplayedUsed:  used,
		TimerRunning:   project.TimerStartTime != nil && *project.TimerStartTime != "",
		LeadName:       leadName(project, users),
	}
}

func leadName(project *models.Project, users []models.User) string {
	if project.LeadID == nil {
		return missingRefPlaceholder
	}
	for i := range users {
		if users[i].ID == *project.LeadID {
			return users[i].Username
		}
	}
	return missingRefPlaceholder
}

// StartTimer starts the live timer on a project. The first start moves a
// not-started project to started.
func (s *Project) StartTimer(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.TimerStartTime != nil && *project.TimerStartTime != "" {
		return nil, ErrTimerAlreadyRunning
	}

	fields := map[string]interface{}{
		models.ProjectTimerStartField: s.now().Format(stampLayout),
	}
	if project.Status == models.ProjectStatusNotStarted {
		fields[models.ProjectStatusField] = models.ProjectStatusStarted
	}
	return s.repo.UpdateFields(ctx, id, fields)
}

// HoldTimer stops the live timer, folding the elapsed session into the
// persisted baseline. Now is captured once and used for both the elapsed
// computation and the new baseline so the displayed value and the stored
// value cannot drift.
func (s *Project) HoldTimer(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.TimerStartTime == nil || *project.TimerStartTime == "" {
		return nil, ErrTimerNotRunning
	}

	now := s.now()
	elapsed := tracking.ElapsedSession(project.TimerStartTime, now)
	baseline := project.SafeUsedHours() + elapsed.Hours()

	return s.repo.UpdateFields(ctx, id, map[string]interface{}{
		models.ProjectUsedHoursField:  baseline,
		models.ProjectTimerStartField: nil,
	})
}

// RequestStatusChange routes a requested status change through the
// authorization policy and the transition guard. Apply effects are persisted
// before returning; reroute and reject effects are returned untouched so the
// caller can open the right follow-up flow or show the reason.
func (s *Project) RequestStatusChange(ctx context.Context, id uint, newStatus models.ProjectStatus, actor Actor) (tracking.Effect, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return tracking.Effect{}, err
	}

	if !tracking.CanManage(actor.Role, tracking.ActionForStatus(newStatus), project, actor.ID) {
		return tracking.Effect{}, ErrNotAuthorized
	}

	projects, err := s.repo.ListAll(ctx)
	if err != nil {
		return tracking.Effect{}, err
	}
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return tracking.Effect{}, err
	}

	effect := tracking.RequestProjectTransition(project, newStatus, projects, tasks)
	if effect.Kind != tracking.EffectApply {
		return effect, nil
	}

	if _, err := s.applyStatus(ctx, id, newStatus, effect.StampCompletion); err != nil {
		return tracking.Effect{}, err
	}
	return effect, nil
}

// CompleteNotSatisfied finishes the not-satisfied reason-capture flow
func (s *Project) CompleteNotSatisfied(ctx context.Context, id uint, reason string, actor Actor) (*models.Project, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, ErrReasonRequired
	}
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tracking.CanManage(actor.Role, tracking.ActionCompleteProject, project, actor.ID) {
		return nil, ErrNotAuthorized
	}
	return s.repo.UpdateFields(ctx, id, map[string]interface{}{
		models.ProjectStatusField:         models.ProjectStatusCompletedNotSatisfied,
		models.ProjectCompletionNoteField: reason,
		models.ProjectCompletedAtField:    s.now(),
	})
}

// CompleteBlocked finishes the completed-blocked confirmation flow
func (s *Project) CompleteBlocked(ctx context.Context, id uint, actor Actor) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tracking.CanManage(actor.Role, tracking.ActionChangeStatus, project, actor.ID) {
		return nil, ErrNotAuthorized
	}
	return s.repo.UpdateFields(ctx, id, map[string]interface{}{
		models.ProjectStatusField:      models.ProjectStatusCompletedBlocked,
		models.ProjectCompletedAtField: s.now(),
	})
}

// SubmitCompletionTools finishes the select-tools flow and moves the project
// to user testing
func (s *Project) SubmitCompletionTools(ctx context.Context, id uint, tools []string, actor Actor) (*models.Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tracking.CanManage(actor.Role, tracking.ActionChangeStatus, project, actor.ID) {
		return nil, ErrNotAuthorized
	}
	return s.repo.UpdateFields(ctx, id, map[string]interface{}{
		models.ProjectStatusField:          models.ProjectStatusUserTesting,
		models.ProjectCompletionToolsField: strings.Join(tools, ","),
	})
}

// CompleteCascade finishes the complete-parent confirmation flow: the child
// that triggered the cascade is completed first, then the parent, each
// revalidated by the guard.
func (s *Project) CompleteCascade(ctx context.Context, parentID, childID uint, actor Actor) (*models.Project, error) {
	parent, err := s.repo.Get(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if !tracking.CanManage(actor.Role, tracking.ActionCompleteProject, parent, actor.ID) {
		return nil, ErrNotAuthorized
	}

	if _, err := s.applyStatus(ctx, childID, models.ProjectStatusCompleted, true); err != nil {
		return nil, err
	}

	projects, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	effect := tracking.RequestProjectTransition(parent, models.ProjectStatusCompleted, projects, nil)
	if effect.Kind == tracking.EffectReject {
		return nil, &RejectionError{Reason: effect.Reason}
	}
	return s.applyStatus(ctx, parentID, models.ProjectStatusCompleted, true)
}

func (s *Project) applyStatus(ctx context.Context, id uint, status models.ProjectStatus, stamp bool) (*models.Project, error) {
	fields := map[string]interface{}{
		models.ProjectStatusField: status,
	}
	if stamp {
		fields[models.ProjectCompletedAtField] = s.now()
	}
	return s.repo.UpdateFields(ctx, id, fields)
}
