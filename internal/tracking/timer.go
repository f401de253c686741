// Package tracking implements the derived project reporting rules: live time
// accounting, progress roll-up, RAG health evaluation, status-transition
// guarding and role-based management checks. Everything here is a pure
// function of the persisted rows plus an explicit now, so every view reads
// the same numbers.
package tracking

import (
	"strings"
	"time"

	"github.com/crewline/crewline/internal/db/models"
)

// stampLayouts are the offset-naive datetime layouts accepted for persisted
// timer stamps, tried in order after separator normalization.
var stampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseStamp parses a persisted timestamp. Legacy rows store offset-naive
// local datetimes with either a 'T' or a space separator; both are accepted
// and interpreted as local time. Full RFC3339 instants are accepted too.
func ParseStamp(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	s = strings.Replace(s, " ", "T", 1)

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	var lastErr error
	for _, layout := range stampLayouts {
		t, err := time.ParseInLocation(layout, s, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ElapsedSession returns how long the running timer has been active. A nil or
// malformed stamp counts as no running timer, and a stamp in the future
// clamps to zero so displayed hours never go negative.
func ElapsedSession(timerStart *string, now time.Time) time.Duration {
	if timerStart == nil || strings.TrimSpace(*timerStart) == "" {
		return 0
	}
	start, err := ParseStamp(*timerStart)
	if err != nil {
		return 0
	}
	elapsed := now.Sub(start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// TotalUsed returns the hours a project has consumed: the persisted baseline
// clamped to >= 0 plus the live session, if a timer is running.
func TotalUsed(baselineHours float64, timerStart *string, now time.Time) float64 {
	if baselineHours < 0 {
		baselineHours = 0
	}
	return baselineHours + ElapsedSession(timerStart, now).Hours()
}

// Children returns the direct sub-projects of the given project id.
func Children(projects []models.Project, parentID uint) []models.Project {
	var children []models.Project
	for _, p := range projects {
		if p.ParentID != nil && *p.ParentID == parentID {
			children = append(children, p)
		}
	}
	return children
}

// UsedHours returns the displayed used hours for a project. For a parent this
// is the sum over its direct children; the parent's own baseline and timer
// are ignored.
func UsedHours(project *models.Project, projects []models.Project, now time.Time) float64 {
	children := Children(projects, project.ID)
	if len(children) == 0 {
		return TotalUsed(project.UsedHours, project.TimerStartTime, now)
	}
	var total float64
	for i := range children {
		total += TotalUsed(children[i].UsedHours, children[i].TimerStartTime, now)
	}
	return total
}

// AllocatedHours returns the displayed hours budget for a project, rolled up
// over direct children for a parent.
func AllocatedHours(project *models.Project, projects []models.Project) float64 {
	children := Children(projects, project.ID)
	if len(children) == 0 {
		return project.AllocatedHours
	}
	var total float64
	for i := range children {
		total += children[i].AllocatedHours
	}
	return total
}
