// Package routes defines the API routes and URL structure
package routes

import (
	"fmt"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/crewline/crewline/pkg/api/v1/handlers"
)

/*

To keep this file organized, routes should be organized in the following way:

1. Smallest scope first (i.e. project routes before dashboard routes)
2. Order routes in GET, POST, PUT, DELETE order.
	a. Within this ordering, param urls (ie /:id) should go last, otherwise fiber will interpret the route slug as that param.
3. For clarity, naming should match the action (i.e. GetProject, DeleteProject)

*/

// API base configuration
const (
	// DefaultPort is the default port for the API
	DefaultPort = "8080"
	// APIv1Prefix is the prefix for all API endpoints
	APIv1Prefix = "/api/v1"
)

// DefaultBaseURL is the default base URL for the API
var DefaultBaseURL = fmt.Sprintf("http://localhost:%s", DefaultPort)

// Route names for lookup
const (
	// Health check
	HealthCheck = "HealthCheck"

	// Project routes
	GetProjects          = "GetProjects"
	GetProjectViews      = "GetProjectViews"
	GetProject           = "GetProject"
	GetProjectView       = "GetProjectView"
	GetProjectTasks      = "GetProjectTasks"
	CreateProject        = "CreateProject"
	UpdateProject        = "UpdateProject"
	DeleteProject        = "DeleteProject"
	ChangeProjectStatus  = "ChangeProjectStatus"
	StartProjectTimer    = "StartProjectTimer"
	HoldProjectTimer     = "HoldProjectTimer"
	CompleteNotSatisfied = "CompleteNotSatisfied"
	CompleteBlocked      = "CompleteBlocked"
	SubmitTools          = "SubmitTools"
	CompleteCascade      = "CompleteCascade"

	// Task routes
	GetTask          = "GetTask"
	CreateTask       = "CreateTask"
	UpdateTask       = "UpdateTask"
	DeleteTask       = "DeleteTask"
	ChangeTaskStatus = "ChangeTaskStatus"
	CompleteTask     = "CompleteTask"

	// User routes
	GetUsers    = "GetUsers"
	GetUserByID = "GetUserByID"
	CreateUser  = "CreateUser"
	DeleteUser  = "DeleteUser"

	// Leave routes
	GetStaffLeave = "GetStaffLeave"
	CreateLeave   = "CreateLeave"
	DeleteLeave   = "DeleteLeave"

	// Dashboard routes
	GetSummary   = "GetSummary"
	GetAnalytics = "GetAnalytics"
)

// RegisterRoutes configures all the v1 routes
//
// NOTE: route ordering is important because routes will try and match in the
// order they are registered.
func RegisterRoutes(app *fiber.App, api *handlers.APIHandler) {
	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	}).Name(HealthCheck)

	// API v1 routes
	v1 := app.Group(APIv1Prefix)

	// Project endpoints
	projects := v1.Group("/projects")
	projects.Get("/", api.ListProjects).Name(GetProjects)
	projects.Get("/views", api.ListProjectViews).Name(GetProjectViews)
	projects.Get("/:id", api.GetProject).Name(GetProject)
	projects.Get("/:id/view", api.GetProjectView).Name(GetProjectView)
	projects.Get("/:id/tasks", api.ListProjectTasks).Name(GetProjectTasks)
	projects.Post("/", api.CreateProject).Name(CreateProject)
	projects.Post("/:id/status", api.ChangeProjectStatus).Name(ChangeProjectStatus)
	projects.Post("/:id/timer/start", api.StartProjectTimer).Name(StartProjectTimer)
	projects.Post("/:id/timer/hold", api.HoldProjectTimer).Name(HoldProjectTimer)
	projects.Post("/:id/complete/not-satisfied", api.CompleteProjectNotSatisfied).Name(CompleteNotSatisfied)
	projects.Post("/:id/complete/blocked", api.CompleteProjectBlocked).Name(CompleteBlocked)
	projects.Post("/:id/complete/tools", api.SubmitCompletionTools).Name(SubmitTools)
	projects.Post("/:id/complete/cascade", api.CompleteProjectCascade).Name(CompleteCascade)
	projects.Put("/:id", api.UpdateProject).Name(UpdateProject)
	projects.Delete("/:id", api.DeleteProject).Name(DeleteProject)

	// Task endpoints
	tasks := v1.Group("/tasks")
	tasks.Get("/:id", api.GetTask).Name(GetTask)
	tasks.Post("/", api.CreateTask).Name(CreateTask)
	tasks.Post("/:id/status", api.ChangeTaskStatus).Name(ChangeTaskStatus)
	tasks.Post("/:id/complete", api.CompleteTask).Name(CompleteTask)
	tasks.Put("/:id", api.UpdateTask).Name(UpdateTask)
	tasks.Delete("/:id", api.DeleteTask).Name(DeleteTask)

	// User endpoints
	users := v1.Group("/users")
	users.Get("/", api.GetUsers).Name(GetUsers)
	users.Get("/:id", api.GetUserByID).Name(GetUserByID)
	users.Get("/:id/leave", api.ListStaffLeave).Name(GetStaffLeave)
	users.Post("/", api.CreateUser).Name(CreateUser)
	users.Delete("/:id", api.DeleteUser).Name(DeleteUser)

	// Leave endpoints
	leave := v1.Group("/leave")
	leave.Post("/", api.CreateLeave).Name(CreateLeave)
	leave.Delete("/:id", api.DeleteLeave).Name(DeleteLeave)

	// Dashboard endpoints
	dashboard := v1.Group("/dashboard")
	dashboard.Get("/summary", api.GetSummary).Name(GetSummary)
	dashboard.Get("/analytics", api.GetAnalytics).Name(GetAnalytics)
}
