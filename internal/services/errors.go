package services

import "errors"

// Sentinel errors surfaced to the API layer
var (
	// ErrNotAuthorized means the acting user's role does not permit the action
	ErrNotAuthorized = errors.New("not authorized to perform this action")
	// ErrTimerAlreadyRunning means a start was requested while a timer is active
	ErrTimerAlreadyRunning = errors.New("a timer is already running for this project")
	// ErrTimerNotRunning means a hold was requested with no active timer
	ErrTimerNotRunning = errors.New("no timer is running for this project")
	// ErrReasonRequired means the not-satisfied flow was submitted without a reason
	ErrReasonRequired = errors.New("a reason is required to complete a project as not satisfied")
)

// RejectionError carries the user-facing reason of a transition-guard
// rejection. No state changes when one is returned.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}
