package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/crewline/crewline/internal/db/models"
	"github.com/crewline/crewline/pkg/api/v1/handlers"
)

// Task flag names
const (
	flagTaskID        = "id"
	flagTaskProjectID = "project-id"
	flagTaskTitle     = "title"
	flagTaskType      = "type"
	flagTaskSeverity  = "severity"
	flagTaskAssignee  = "assignee-id"
	flagTaskStatus    = "status"
	flagTimeSpent     = "time-spent"
	flagTimeSaved     = "time-saved"
)

// taskOutput represents the filtered output for a task
type taskOutput struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Status   string `json:"status"`
	Severity string `json:"severity,omitempty"`
	Created  string `json:"created_at"`
}

// taskListOutput represents the filtered output for a list of tasks
type taskListOutput struct {
	Tasks []taskOutput `json:"tasks"`
}

func init() {
	tasksCmd.AddCommand(createTaskCmd)
	tasksCmd.AddCommand(listTasksCmd)
	tasksCmd.AddCommand(changeTaskStatusCmd)
	tasksCmd.AddCommand(completeTaskCmd)

	// Add flags for create
	createTaskCmd.Flags().UintP(flagTaskProjectID, "p", 0, "Project ID the item belongs to")
	createTaskCmd.Flags().StringP(flagTaskTitle, "t", "", "Item title")
	createTaskCmd.Flags().String(flagTaskType, "task", "Item type (task, risk, issue)")
	createTaskCmd.Flags().String(flagTaskSeverity, "", "Severity for risk and issue items")
	createTaskCmd.Flags().Uint(flagTaskAssignee, 0, "Assignee user ID")
	_ = createTaskCmd.MarkFlagRequired(flagTaskProjectID)
	_ = createTaskCmd.MarkFlagRequired(flagTaskTitle)

	// Add flags for list
	listTasksCmd.Flags().UintP(flagTaskProjectID, "p", 0, "Project ID to list items for")
	_ = listTasksCmd.MarkFlagRequired(flagTaskProjectID)

	// Add flags for status
	changeTaskStatusCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	changeTaskStatusCmd.Flags().String(flagTaskStatus, "", "Requested status")
	_ = changeTaskStatusCmd.MarkFlagRequired(flagTaskID)
	_ = changeTaskStatusCmd.MarkFlagRequired(flagTaskStatus)

	// Add flags for complete
	completeTaskCmd.Flags().UintP(flagTaskID, "i", 0, "Task ID")
	completeTaskCmd.Flags().Float64(flagTimeSpent, 0, "Hours spent on the item")
	completeTaskCmd.Flags().Float64(flagTimeSaved, 0, "Hours saved by resolving the item")
	_ = completeTaskCmd.MarkFlagRequired(flagTaskID)
}

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks, risks and issues",
}

var createTaskCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task, risk or issue item",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagTaskProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}
		title, err := cmd.Flags().GetString(flagTaskTitle)
		if err != nil {
			return fmt.Errorf("error getting title flag: %w", err)
		}
		taskType, err := cmd.Flags().GetString(flagTaskType)
		if err != nil {
			return fmt.Errorf("error getting type flag: %w", err)
		}
		severity, err := cmd.Flags().GetString(flagTaskSeverity)
		if err != nil {
			return fmt.Errorf("error getting severity flag: %w", err)
		}

		params := handlers.TaskCreateParams{
			ProjectID: projectID,
			Title:     title,
			Type:      taskType,
			Severity:  severity,
		}
		if assigneeID, _ := cmd.Flags().GetUint(flagTaskAssignee); assigneeID != 0 {
			params.AssigneeID = &assigneeID
		}

		task, err := apiClient.CreateTask(context.Background(), params)
		if err != nil {
			return fmt.Errorf("error creating task: %w", err)
		}

		return printJSON(newTaskOutput(task))
	},
}

var listTasksCmd = &cobra.Command{
	Use:   "list",
	Short: "List the items of a project",
	RunE: func(cmd *cobra.Command, _ []string) error {
		projectID, err := cmd.Flags().GetUint(flagTaskProjectID)
		if err != nil {
			return fmt.Errorf("error getting project ID flag: %w", err)
		}
		if projectID == 0 {
			return fmt.Errorf("project ID must be a positive number")
		}

		tasks, err := apiClient.ListProjectTasks(context.Background(), projectID)
		if err != nil {
			return fmt.Errorf("error listing tasks: %w", err)
		}

		output := taskListOutput{
			Tasks: make([]taskOutput, len(tasks)),
		}
		for i := range tasks {
			output.Tasks[i] = newTaskOutput(&tasks[i])
		}
		return printJSON(output)
	},
}

var changeTaskStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Request a task status change",
	RunE: func(cmd *cobra.Command, _ []string) error {
		taskID, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}
		status, err := cmd.Flags().GetString(flagTaskStatus)
		if err != nil {
			return fmt.Errorf("error getting status flag: %w", err)
		}
		parsed, err := models.ParseTaskStatus(status)
		if err != nil {
			return err
		}

		effect, err := apiClient.ChangeTaskStatus(context.Background(), taskID, parsed)
		if err != nil {
			return fmt.Errorf("error changing task status: %w", err)
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

var completeTaskCmd = &cobra.Command{
	Use:   "complete",
	Short: "Complete a task and record its time figures",
	RunE: func(cmd *cobra.Command, _ []string) error {
		taskID, err := cmd.Flags().GetUint(flagTaskID)
		if err != nil {
			return fmt.Errorf("error getting task ID flag: %w", err)
		}

		params := handlers.TaskCompleteParams{}
		if cmd.Flags().Changed(flagTimeSpent) {
			timeSpent, _ := cmd.Flags().GetFloat64(flagTimeSpent)
			params.TimeSpent = &timeSpent
		}
		if cmd.Flags().Changed(flagTimeSaved) {
			timeSaved, _ := cmd.Flags().GetFloat64(flagTimeSaved)
			params.TimeSaved = &timeSaved
		}

		task, err := apiClient.CompleteTask(context.Background(), taskID, params)
		if err != nil {
			return fmt.Errorf("error completing task: %w", err)
		}

		fmt.Printf("Task %d ('%s') completed\n", task.ID, task.Title)
		return nil
	},
}

// newTaskOutput filters a task row down to the CLI output fields
func newTaskOutput(task *models.Task) taskOutput {
	out := taskOutput{
		ID:      task.ID,
		Title:   task.Title,
		Type:    string(task.Type),
		Status:  task.Status.String(),
		Created: task.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if task.Type != models.TaskTypePlain {
		out.Severity = string(task.Severity)
	}
	return out
}

// GetTasksCmd returns the tasks command
func GetTasksCmd() *cobra.Command {
	return tasksCmd
}
