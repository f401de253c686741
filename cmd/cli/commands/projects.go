package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/pkg/api/v1/handlers"
)

// Flag names
const (
	flagName      = "name"
	flagCode      = "code"
	flagParentID  = "parent-id"
	flagWeight    = "weight"
	flagAllocated = "allocated-hours"
	flagLeadID    = "lead-id"
	flagProjectID = "id"
	flagStatus    = "status"
)

// projectOutput represents the filtered output for a project
type projectOutput struct {
	ID     uint   `json:"id"`
	Code   string `json:"code"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// projectViewOutput represents the filtered output for a project view
type projectViewOutput struct {
	ID       uint    `json:"id"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Progress int     `json:"progress"`
	Health   string  `json:"health"`
	AllocHrs float64 `json:"allocated_hours"`
	UsedHrs  float64 `json:"used_hours"`
	Timer    bool    `json:"timer_running"`
	Lead     string  `json:"lead_name"`
}

// effectOutput represents the outcome of a status change request
type effectOutput struct {
	Kind     string `json:"kind"`
	Modal    string `json:"modal,omitempty"`
	TargetID uint   `json:"target_id,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func init() {
	projectsCmd.AddCommand(createProjectCmd)
	projectsCmd.AddCommand(getProjectCmd)
	projectsCmd.AddCommand(viewProjectCmd)
	projectsCmd.AddCommand(listProjectViewsCmd)
	projectsCmd.AddCommand(changeProjectStatusCmd)
	projectsCmd.AddCommand(startTimerCmd)
	projectsCmd.AddCommand(holdTimerCmd)

	// Add flags for create
	createProjectCmd.Flags().StringP(flagName, "n", "", "Project name")
	createProjectCmd.Flags().String(flagCode, "", "Project code (generated when omitted)")
	createProjectCmd.Flags().Uint(flagParentID, 0, "Parent project ID for sub-projects")
	createProjectCmd.Flags().Int(flagWeight, 0, "Weight of a sub-project within its parent (0-100)")
	createProjectCmd.Flags().Float64(flagAllocated, 0, "Allocated hours")
	createProjectCmd.Flags().Uint(flagLeadID, 0, "Project lead user ID")
	if err := createProjectCmd.MarkFlagRequired(flagName); err != nil {
		panic(fmt.Errorf("failed to mark name flag as required for create project command: %w", err))
	}

	// Add flags for get
	getProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	_ = getProjectCmd.MarkFlagRequired(flagProjectID)

	// Add flags for view
	viewProjectCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	_ = viewProjectCmd.MarkFlagRequired(flagProjectID)

	// Add flags for status
	changeProjectStatusCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	changeProjectStatusCmd.Flags().String(flagStatus, "", "Requested status")
	_ = changeProjectStatusCmd.MarkFlagRequired(flagProjectID)
	_ = changeProjectStatusCmd.MarkFlagRequired(flagStatus)

	// Add flags for timer commands
	startTimerCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	_ = startTimerCmd.MarkFlagRequired(flagProjectID)
	holdTimerCmd.Flags().UintP(flagProjectID, "i", 0, "Project ID")
	_ = holdTimerCmd.MarkFlagRequired(flagProjectID)
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var createProjectCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		name, err := cmd.Flags().GetString(flagName)
		if err != nil {
			return fmt.Errorf("error getting name flag: %w", err)
		}
		code, err := cmd.Flags().GetString(flagCode)
		if err != nil {
			return fmt.Errorf("error getting code flag: %w", err)
		}
		weight, err := cmd.Flags().GetInt(flagWeight)
		if err != nil {
			return fmt.Errorf("error getting weight flag: %w", err)
		}
		allocated, err := cmd.Flags().GetFloat64(flagAllocated)
		if err != nil {
			return fmt.Errorf("error getting allocated-hours flag: %w", err)
		}

		params := handlers.ProjectCreateParams{
			Name:           name,
			Code:           code,
			Weight:         weight,
			AllocatedHours: allocated,
		}
		if parentID, _ := cmd.Flags().GetUint(flagParentID); parentID != 0 {
			params.ParentID = &parentID
		}
		if leadID, _ := cmd.Flags().GetUint(flagLeadID); leadID != 0 {
			params.LeadID = &leadID
		}

		// Call the API client
		project, err := apiClient.CreateProject(context.Background(), params)
		if err != nil {
			return fmt.Errorf("error creating project: %w", err)
		}

		output := projectOutput{
			ID:     project.ID,
			Code:   project.Code,
			Name:   project.Name,
			Status: project.Status.String(),
		}
		return printJSON(output)
	},
}

var getProjectCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a specific project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}
		if projectID == 0 {
			return fmt.Errorf("project ID must be a positive number")
		}

		project, err := apiClient.GetProject(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error getting project: %w", err)
		}

		output := projectOutput{
			ID:     project.ID,
			Code:   project.Code,
			Name:   project.Name,
			Status: project.Status.String(),
		}
		return printJSON(output)
	},
}

var viewProjectCmd = &cobra.Command{
	Use:   "view",
	Short: "Get the derived view of a project (progress, health, hours)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}
		if projectID == 0 {
			return fmt.Errorf("project ID must be a positive number")
		}

		view, err := apiClient.GetProjectView(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error getting project view: %w", err)
		}

		output := projectViewOutput{
			ID:       view.ID,
			Code:     view.Code,
			Name:     view.Name,
			Status:   view.Status.String(),
			Progress: view.Progress,
			Health:   string(view.Health),
			AllocHrs: view.DisplayedAlloc,
			UsedHrs:  view.DisplayedUsed,
			Timer:    view.TimerRunning,
			Lead:     view.LeadName,
		}
		return printJSON(output)
	},
}

var listProjectViewsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the derived views of all projects",
	RunE: func(_ *cobra.Command, _ []string) error {
		views, err := apiClient.ListProjectViews(context.Background())
		if err != nil {
			return fmt.Errorf("error listing project views: %w", err)
		}

		output := struct {
			Projects []projectViewOutput `json:"projects"`
		}{
			Projects: make([]projectViewOutput, len(views)),
		}
		for i, view := range views {
			output.Projects[i] = projectViewOutput{
				ID:       view.ID,
				Code:     view.Code,
				Name:     view.Name,
				Status:   view.Status.String(),
				Progress: view.Progress,
				Health:   string(view.Health),
				AllocHrs: view.DisplayedAlloc,
				UsedHrs:  view.DisplayedUsed,
				Timer:    view.TimerRunning,
				Lead:     view.LeadName,
			}
		}
		return printJSON(output)
	},
}

var changeProjectStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Request a project status change",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}
		status, err := cmd.Flags().GetString(flagStatus)
		if err != nil {
			return fmt.Errorf("error getting status flag: %w", err)
		}
		parsed, err := models.ParseProjectStatus(status)
		if err != nil {
			return err
		}

		effect, err := apiClient.ChangeProjectStatus(context.Background(), projectID, parsed)
		if err != nil {
			return fmt.Errorf("error changing project status: %w", err)
		}

		output := effectOutput{
			Kind:     string(effect.Kind),
			Modal:    string(effect.Modal),
			TargetID: effect.TargetID,
			Reason:   effect.Reason,
		}
		return printJSON(output)
	},
}

var startTimerCmd = &cobra.Command{
	Use:   "timer-start",
	Short: "Start the live timer on a project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}

		project, err := apiClient.StartProjectTimer(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error starting timer: %w", err)
		}

		fmt.Printf("Timer started on project '%s'\n", project.Code)
		return nil
	},
}

var holdTimerCmd = &cobra.Command{
	Use:   "timer-hold",
	Short: "Stop the live timer on a project and bank the elapsed hours",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}

		project, err := apiClient.HoldProjectTimer(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error holding timer: %w", err)
		}

		fmt.Printf("Timer held on project '%s'; used hours now %.2f\n", project.Code, project.SafeUsedHours())
		return nil
	},
}

// printJSON pretty prints the response
func printJSON(v interface{}) error {
	prettyJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("error formatting response: %w", err)
	}
	fmt.Println(string(prettyJSON))
	return nil
}

// GetProjectsCmd returns the projects command
func GetProjectsCmd() *cobra.Command {
	return projectsCmd
}
