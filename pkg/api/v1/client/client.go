// Package client provides a typed HTTP client for the crewline API
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/internal/services"
	"github.com/crewline/crewline/internal/tracking"
	"github.com/crewline/crewline/pkg/api/v1/handlers"
	"github.com/crewline/crewline/pkg/api/v1/routes"
)

// DefaultTimeout is the default request timeout
const DefaultTimeout = 30 * time.Second

// Options configures the API client
type Options struct {
	// BaseURL is the server address, e.g. http://localhost:8080
	BaseURL string
	// Timeout bounds each request
	Timeout time.Duration
	// UserID identifies the acting user; sent on every request
	UserID uint
}

// DefaultOptions returns the default client options
func DefaultOptions() *Options {
	return &Options{
		BaseURL: routes.DefaultBaseURL,
		Timeout: DefaultTimeout,
	}
}

// Client is a typed HTTP client for the crewline API
type Client struct {
	baseURL string
	userID  uint
	http    *http.Client
}

// NewClient creates a new API client
func NewClient(opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: opts.BaseURL,
		userID:  opts.UserID,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// APIError is a non-2xx response from the server
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userID != 0 {
		req.Header.Set(handlers.HeaderUserID, strconv.FormatUint(uint64(c.userID), 10))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// HealthCheck verifies the server is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// CreateProject creates a project
func (c *Client) CreateProject(ctx context.Context, params handlers.ProjectCreateParams) (*models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPost, routes.APIv1Prefix+"/projects", params, &project)
	return &project, err
}

// GetProject retrieves a project by id
func (c *Client) GetProject(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/projects/%d", routes.APIv1Prefix, id), nil, &project)
	return &project, err
}

// GetProjectView retrieves the derived view of a project
func (c *Client) GetProjectView(ctx context.Context, id uint) (*services.ProjectView, error) {
	var view services.ProjectView
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/projects/%d/view", routes.APIv1Prefix, id), nil, &view)
	return &view, err
}

// ListProjectViews retrieves the derived views of every project
func (c *Client) ListProjectViews(ctx context.Context) ([]services.ProjectView, error) {
	var views []services.ProjectView
	err := c.do(ctx, http.MethodGet, routes.APIv1Prefix+"/projects/views", nil, &views)
	return views, err
}

// ChangeProjectStatus requests a guarded project status change
func (c *Client) ChangeProjectStatus(ctx context.Context, id uint, status models.ProjectStatus) (*tracking.Effect, error) {
	var effect tracking.Effect
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/projects/%d/status", routes.APIv1Prefix, id),
		handlers.ProjectStatusParams{Status: status.String()}, &effect)
	return &effect, err
}

// StartProjectTimer starts the live timer on a project
func (c *Client) StartProjectTimer(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/projects/%d/timer/start", routes.APIv1Prefix, id), nil, &project)
	return &project, err
}

// HoldProjectTimer stops the live timer on a project
func (c *Client) HoldProjectTimer(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/projects/%d/timer/hold", routes.APIv1Prefix, id), nil, &project)
	return &project, err
}

// ListProjectTasks retrieves the tasks of a project
func (c *Client) ListProjectTasks(ctx context.Context, projectID uint) ([]models.Task, error) {
	var tasks []models.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/projects/%d/tasks", routes.APIv1Prefix, projectID), nil, &tasks)
	return tasks, err
}

// CreateTask creates a task, risk or issue item
func (c *Client) CreateTask(ctx context.Context, params handlers.TaskCreateParams) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPost, routes.APIv1Prefix+"/tasks", params, &task)
	return &task, err
}

// ChangeTaskStatus requests a guarded task status change
func (c *Client) ChangeTaskStatus(ctx context.Context, id uint, status models.TaskStatus) (*tracking.Effect, error) {
	var effect tracking.Effect
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/tasks/%d/status", routes.APIv1Prefix, id),
		handlers.TaskStatusParams{Status: status.String()}, &effect)
	return &effect, err
}

// CompleteTask finishes the complete-task flow
func (c *Client) CompleteTask(ctx context.Context, id uint, params handlers.TaskCompleteParams) (*models.Task, error) {
	var task models.Task
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("%s/tasks/%d/complete", routes.APIv1Prefix, id), params, &task)
	return &task, err
}

// GetSummary retrieves the executive summary rows
func (c *Client) GetSummary(ctx context.Context) ([]services.SummaryRow, error) {
	var rows []services.SummaryRow
	err := c.do(ctx, http.MethodGet, routes.APIv1Prefix+"/dashboard/summary", nil, &rows)
	return rows, err
}

// GetAnalytics retrieves the per-lead performance analytics
func (c *Client) GetAnalytics(ctx context.Context) ([]services.LeadStats, error) {
	var stats []services.LeadStats
	err := c.do(ctx, http.MethodGet, routes.APIv1Prefix+"/dashboard/analytics", nil, &stats)
	return stats, err
}
