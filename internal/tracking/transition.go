package tracking

import (
	"github.com/crewline/crewline/internal/db/models"
)

// User-facing rejection messages. The wording is load-bearing: the dashboard
// shows these verbatim.
const (
	// MsgBlockedRequiresRisk is shown when blocking a project with no active risk item
	MsgBlockedRequiresRisk = "A project can only be blocked if there is an active BLOCKED item (a risk) associated with it. Please create one first."
	// MsgParentHasIncompleteChildren is shown when completing a parent with incomplete sub-projects
	MsgParentHasIncompleteChildren = "All sub-projects must be completed before this project can be completed."
	// MsgTaskNeedsAssignee is shown when moving an unassigned task off not-started
	MsgTaskNeedsAssignee = "Please assign this task to a team member before changing its status from 'Not started'."
	// MsgTaskCompletedFinal is shown when reopening a completed task
	MsgTaskCompletedFinal = "A completed task cannot be reopened."
)

// EffectKind discriminates transition-guard outcomes
type EffectKind string

// Effect kinds
const (
	// EffectNoop means the requested status equals the current one
	EffectNoop EffectKind = "noop"
	// EffectApply means the change may be persisted immediately
	EffectApply EffectKind = "apply"
	// EffectReroute means the change requires a follow-up flow first
	EffectReroute EffectKind = "reroute"
	// EffectReject means the change violates a guard rule
	EffectReject EffectKind = "reject"
)

// Modal identifies the follow-up flow a rerouted transition must go through
type Modal string

// Modal constants
const (
	// ModalSelectTools asks which completion tools were used before user testing
	ModalSelectTools Modal = "select_tools"
	// ModalCompleteParent confirms cascading completion onto the parent project
	ModalCompleteParent Modal = "complete_parent"
	// ModalNotSatisfiedReason captures the reason for a not-satisfied completion
	ModalNotSatisfiedReason Modal = "not_satisfied_reason"
	// ModalCompletedBlocked confirms closing a project while blocked
	ModalCompletedBlocked Modal = "completed_blocked_confirm"
	// ModalCompleteTask captures time spent/saved before completing a task
	ModalCompleteTask Modal = "complete_task"
)

// Effect is the outcome of a requested status transition. Apply may carry
// StampCompletion; Reroute carries the modal to open, the id it is scoped to
// and, for cascaded parent completion, the child that triggered it; Reject
// carries the user-facing reason.
type Effect struct {
	Kind            EffectKind `json:"kind"`
	Modal           Modal      `json:"modal,omitempty"`
	TargetID        uint       `json:"target_id,omitempty"`
	TriggerID       uint       `json:"trigger_id,omitempty"`
	Reason          string     `json:"reason,omitempty"`
	StampCompletion bool       `json:"-"`
}

func apply() Effect               { return Effect{Kind: EffectApply} }
func applyStamped() Effect        { return Effect{Kind: EffectApply, StampCompletion: true} }
func reject(reason string) Effect { return Effect{Kind: EffectReject, Reason: reason} }
func reroute(m Modal, target uint) Effect {
	return Effect{Kind: EffectReroute, Modal: m, TargetID: target}
}

// RequestProjectTransition validates a requested project status change
// against the hierarchy and returns the effect the caller must carry out.
// It never mutates anything.
func RequestProjectTransition(project *models.Project, newStatus models.ProjectStatus, projects []models.Project, tasks []models.Task) Effect {
	if newStatus == project.Status {
		return Effect{Kind: EffectNoop}
	}

	switch newStatus {
	case models.ProjectStatusUserTesting:
		if project.IsChild() && siblingsCompleted(project, projects) {
			return reroute(ModalSelectTools, project.ID)
		}
		return apply()

	case models.ProjectStatusCompleted:
		children := Children(projects, project.ID)
		if len(children) > 0 {
			for i := range children {
				if children[i].Status != models.ProjectStatusCompleted {
					return reject(MsgParentHasIncompleteChildren)
				}
			}
		}
		if project.IsChild() && siblingsCompleted(project, projects) {
			// Completing the last open sibling: route to the parent's
			// completion confirmation instead of completing the child alone.
			e := reroute(ModalCompleteParent, *project.ParentID)
			e.TriggerID = project.ID
			return e
		}
		return applyStamped()

	case models.ProjectStatusBlocked:
		if !hasActiveRisk(project, projects, tasks) {
			return reject(MsgBlockedRequiresRisk)
		}
		return apply()

	case models.ProjectStatusCompletedNotSatisfied:
		return reroute(ModalNotSatisfiedReason, project.ID)

	case models.ProjectStatusCompletedBlocked:
		return reroute(ModalCompletedBlocked, project.ID)

	default:
		return apply()
	}
}

// RequestTaskTransition validates a requested task status change.
func RequestTaskTransition(task *models.Task, newStatus models.TaskStatus) Effect {
	if newStatus == task.Status {
		return Effect{Kind: EffectNoop}
	}

	if task.Status == models.TaskStatusCompleted {
		return reject(MsgTaskCompletedFinal)
	}

	// Blocked is the one status an unassigned task may move to.
	if task.Status == models.TaskStatusNotStarted && task.AssigneeID == nil && newStatus != models.TaskStatusBlocked {
		return reject(MsgTaskNeedsAssignee)
	}

	if newStatus == models.TaskStatusCompleted {
		return reroute(ModalCompleteTask, task.ID)
	}
	return apply()
}

// siblingsCompleted reports whether every sibling of the project, other than
// the project itself, is completed.
func siblingsCompleted(project *models.Project, projects []models.Project) bool {
	if project.ParentID == nil {
		return false
	}
	for i := range projects {
		p := &projects[i]
		if p.ID == project.ID || p.ParentID == nil || *p.ParentID != *project.ParentID {
			continue
		}
		if p.Status != models.ProjectStatusCompleted {
			return false
		}
	}
	return true
}

// hasActiveRisk reports whether an active risk item exists under the project
// or any of its direct children.
func hasActiveRisk(project *models.Project, projects []models.Project, tasks []models.Task) bool {
	ids := map[uint]bool{project.ID: true}
	for _, child := range Children(projects, project.ID) {
		ids[child.ID] = true
	}
	for i := range tasks {
		if ids[tasks[i].ProjectID] && tasks[i].IsActiveRisk() {
			return true
		}
	}
	return false
}
