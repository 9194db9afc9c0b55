package cli

import (
	"aurum-cli/internal/mutate"
	"aurum-cli/internal/nav"
	"aurum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksSetStatusCmd(app))
	cmd.AddCommand(newTasksCompleteCmd(app))
	cmd.AddCommand(newTasksTagsCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var projectID, name, description, priority, due string
	var estimated float64
	var tags []string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task under a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if projectID == "" {
				projectID = nav.Resolve(db).ProjectID
			}

			pr, err := store.ParsePriority(priority)
			if err != nil {
				return writeErr(cmd, err)
			}
			p := mutate.CreateTaskParams{
				ProjectID:      projectID,
				Name:           name,
				Description:    description,
				Priority:       pr,
				EstimatedHours: estimated,
				Tags:           tags,
			}
			if due != "" {
				dt, err := parseDueDate(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.DueDate = dt
			}

			task, err := mutate.CreateTask(db, nextIDFn(s, db), p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("task.create", task.ID, task)
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Parent project id (defaults to the navigation context)")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|urgent)")
	cmd.Flags().Float64Var(&estimated, "estimate", 0, "Estimated hours")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var projectID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks (optionally scoped to a project)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if projectID == "" {
				projectID = nav.Resolve(db).ProjectID
			}

			tasks := db.Tasks
			if projectID != "" {
				if _, ok := db.FindProject(projectID); !ok {
					return writeErr(cmd, errNotFound("project", projectID))
				}
				tasks = db.TasksOf(projectID)
			}
			if status != "" {
				st, err := store.ParseTaskStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				filtered := tasks[:0:0]
				for _, t := range tasks {
					if t.Status == st {
						filtered = append(filtered, t)
					}
				}
				tasks = filtered
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Scope to this project (defaults to the navigation context)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status (todo|in_progress|completed|cancelled)")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, ok := db.FindTask(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			out := map[string]any{"task": task}
			if project, ok := db.FindProject(task.ProjectID); ok {
				out["project"] = map[string]any{"id": project.ID, "name": project.Name}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var projectID, name, description, priority, due string
	var estimated float64
	var clearDue bool
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update task fields (move with --project)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var p mutate.UpdateTaskParams
			if cmd.Flags().Changed("project") {
				p.ProjectID = &projectID
			}
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("description") {
				p.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				pr, err := store.ParsePriority(priority)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.Priority = &pr
			}
			if cmd.Flags().Changed("estimate") {
				p.EstimatedHours = &estimated
			}
			if cmd.Flags().Changed("due") {
				dt, err := parseDueDate(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.DueDate = dt
			}
			if cmd.Flags().Changed("tag") {
				p.Tags = tags
			}
			p.ClearDue = clearDue

			task, err := mutate.UpdateTask(db, args[0], p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("task.update", task.ID, task)
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Move to this project")
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&description, "description", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|urgent)")
	cmd.Flags().Float64Var(&estimated, "estimate", 0, "Estimated hours")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replace tags (repeatable)")
	return cmd
}

func setTaskStatus(cmd *cobra.Command, app *App, id, status string) error {
	db, s, err := loadDB(app)
	if err != nil {
		return writeErr(cmd, err)
	}

	st, err := store.ParseTaskStatus(status)
	if err != nil {
		return writeErr(cmd, err)
	}
	res, err := mutate.SetTaskStatus(db, id, st)
	if err != nil {
		return writeErr(cmd, err)
	}
	if res.Changed {
		if err := s.Save(db); err != nil {
			return writeErr(cmd, err)
		}
		_ = s.AppendEvent("task.set_status", res.Task.ID, res.EventPayload)
	}
	return writeOut(cmd, app, map[string]any{"data": map[string]any{
		"task":    res.Task,
		"changed": res.Changed,
	}})
}

func newTasksSetStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-status <task-id> <status>",
		Short: "Transition a task's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTaskStatus(cmd, app, args[0], args[1])
		},
	}
	return cmd
}

func newTasksCompleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Mark a task completed (shortcut for set-status completed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return setTaskStatus(cmd, app, args[0], "completed")
		},
	}
	return cmd
}

func newTasksTagsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Tag commands",
	}
	cmd.AddCommand(newTasksTagsAddCmd(app))
	cmd.AddCommand(newTasksTagsRemoveCmd(app))
	return cmd
}

func newTasksTagsAddCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <task-id> <tag>...",
		Short: "Add tags to a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := mutate.AddTaskTags(db, args[0], args[1:])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("task.update", task.ID, task)
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
	return cmd
}

func newTasksTagsRemoveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <task-id> <tag>...",
		Short: "Remove tags from a task",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := mutate.RemoveTaskTags(db, args[0], args[1:])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("task.update", task.ID, task)
			return writeOut(cmd, app, map[string]any{"data": task})
		},
	}
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			task, err := mutate.DeleteTask(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("task.delete", task.ID, task)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": task}})
		},
	}
	return cmd
}
