// Package handlers provides HTTP request handling
package handlers

// Common error messages
const (
	ErrMsgInvalidReqBody = "Invalid request body"
	ErrMsgInvalidID      = "Invalid id"
	ErrMsgUnauthorized   = "Missing or unknown user identity"
	ErrMsgForbidden      = "You are not allowed to perform this action"
)

// Project error messages
const (
	ErrMsgProjNameRequired  = "Project name is required"
	ErrMsgProjNotFound      = "Project not found"
	ErrMsgProjCreateFailed  = "Failed to create project"
	ErrMsgProjListFailed    = "Failed to list projects"
	ErrMsgProjUpdateFailed  = "Failed to update project"
	ErrMsgProjDeleteFailed  = "Failed to delete project"
	ErrMsgProjStatusInvalid = "Invalid project status"
	ErrMsgProjTimerFailed   = "Failed to update project timer"
	ErrMsgProjStatusFailed  = "Failed to change project status"
	ErrMsgProjViewFailed    = "Failed to build project view"
)

// Task error messages
const (
	ErrMsgTaskTitleRequired = "Task title is required"
	ErrMsgTaskNotFound      = "Task not found"
	ErrMsgTaskCreateFailed  = "Failed to create task"
	ErrMsgTaskListFailed    = "Failed to list tasks"
	ErrMsgTaskUpdateFailed  = "Failed to update task"
	ErrMsgTaskDeleteFailed  = "Failed to delete task"
	ErrMsgTaskStatusInvalid = "Invalid task status"
)

// User error messages
const (
	ErrMsgUsernameRequired = "Username is required"
	ErrMsgUserNotFound     = "User not found"
	ErrMsgCreateUserFailed = "Failed to create user"
	ErrMsgGetUsersFailed   = "Failed to get users"
	ErrMsgDeleteUserFailed = "Failed to delete user"
)

// Leave error messages
const (
	ErrMsgLeaveCreateFailed = "Failed to create leave entry"
	ErrMsgLeaveListFailed   = "Failed to list leave entries"
	ErrMsgLeaveDeleteFailed = "Failed to delete leave entry"
)

// Dashboard error messages
const (
	ErrMsgSummaryFailed   = "Failed to build executive summary"
	ErrMsgAnalyticsFailed = "Failed to build performance analytics"
)
