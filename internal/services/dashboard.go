package services

import (
	"context"
	"sort"
	"time"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/internal/db/repos"
	"github.com/crewline/crewline/internal/logger"
	"github.com/crewline/crewline/internal/tracking"
)

// SummaryRow is one project line of the executive summary view. It is graded
// by the summary health policy, which is intentionally simpler than the one
// the detail views use.
type SummaryRow struct {
	ProjectID uint                 `json:"project_id"`
	Code      string               `json:"code"`
	Name      string               `json:"name"`
	Status    models.ProjectStatus `json:"status"`
	Progress  int                  `json:"progress"`
	Health    tracking.Health      `json:"health"`
	LeadName  string               `json:"lead_name"`
}

// LeadStats aggregates delivery figures per project lead for the performance
// analytics view.
type LeadStats struct {
	LeadID         uint    `json:"lead_id"`
	LeadName       string  `json:"lead_name"`
	Projects       int     `json:"projects"`
	Completed      int     `json:"completed"`
	AllocatedHours float64 `json:"allocated_hours"`
	UsedHours      float64 `json:"used_hours"`
}

// Dashboard produces the derived reporting views
type Dashboard struct {
	projectRepo *repos.ProjectRepository
	taskRepo    *repos.TaskRepository
	userRepo    *repos.UserRepository
	summary     tracking.HealthPolicy
	now         func() time.Time
}

// NewDashboardService creates a new instance of the dashboard service
func NewDashboardService(projectRepo *repos.ProjectRepository, taskRepo *repos.TaskRepository, userRepo *repos.UserRepository) *Dashboard {
	return &Dashboard{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		summary:     tracking.SummaryHealthPolicy{},
		now:         time.Now,
	}
}

// Summary returns the executive summary: one row per top-level project
func (s *Dashboard) Summary(ctx context.Context) ([]SummaryRow, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetUsers(ctx, nil)
	if err != nil {
		logger.Warnf("failed to load users for dashboard summary: %v", err)
	}

	now := s.now()
	cache := map[uint]int{}
	rows := make([]SummaryRow, 0, len(projects))
	for i := range projects {
		p := &projects[i]
		if p.IsChild() {
			continue
		}
		behind := tracking.IsBehindOnTasks(p, projects, tasks, now)
		rows = append(rows, SummaryRow{
			ProjectID: p.ID,
			Code:      p.Code,
			Name:      p.Name,
			Status:    p.Status,
			Progress:  tracking.Progress(p, projects, tasks, cache),
			Health:    s.summary.Evaluate(p, 0, 0, behind),
			LeadName:  leadName(p, users),
		})
	}
	return rows, nil
}

// Analytics returns per-lead delivery figures across all projects
func (s *Dashboard) Analytics(ctx context.Context) ([]LeadStats, error) {
	projects, err := s.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.GetUsers(ctx, nil)
	if err != nil {
		logger.Warnf("failed to load users for lead analytics: %v", err)
	}

	now := s.now()
	byLead := map[uint]*LeadStats{}
	for i := range projects {
		p := &projects[i]
		if p.LeadID == nil {
			continue
		}
		stats, ok := byLead[*p.LeadID]
		if !ok {
			stats = &LeadStats{LeadID: *p.LeadID, LeadName: leadName(p, users)}
			byLead[*p.LeadID] = stats
		}
		stats.Projects++
		if p.Status.IsTerminal() {
			stats.Completed++
		}
		// Hours go through the accumulator rollup so a parent's stale stored
		// fields never surface here. A child whose parent has the same lead is
		// already covered by the parent's rollup.
		if !parentSharesLead(p, projects) {
			stats.AllocatedHours += tracking.AllocatedHours(p, projects)
			stats.UsedHours += tracking.UsedHours(p, projects, now)
		}
	}

	out := make([]LeadStats, 0, len(byLead))
	for _, stats := range byLead {
		out = append(out, *stats)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeadID < out[j].LeadID })
	return out, nil
}

// parentSharesLead reports whether a sub-project's direct parent is led by
// the same person.
func parentSharesLead(p *models.Project, projects []models.Project) bool {
	if p.ParentID == nil || p.LeadID == nil {
		return false
	}
	for i := range projects {
		if projects[i].ID == *p.ParentID {
			return projects[i].LeadID != nil && *projects[i].LeadID == *p.LeadID
		}
	}
	return false
}
