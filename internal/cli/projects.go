package cli

import (
	"aurum-cli/internal/metrics"
	"aurum-cli/internal/mutate"
	"aurum-cli/internal/nav"
	"aurum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsShowCmd(app))
	cmd.AddCommand(newProjectsUpdateCmd(app))
	cmd.AddCommand(newProjectsAttachCmd(app))
	cmd.AddCommand(newProjectsDeleteCmd(app))
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var areaID, name, description, status, priority, due string
	var impact int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project under an area",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if areaID == "" {
				areaID = nav.Resolve(db).AreaID
			}

			st, err := store.ParseProjectStatus(status)
			if err != nil {
				return writeErr(cmd, err)
			}
			pr, err := store.ParsePriority(priority)
			if err != nil {
				return writeErr(cmd, err)
			}
			p := mutate.CreateProjectParams{
				AreaID:      areaID,
				Name:        name,
				Description: description,
				Status:      st,
				Priority:    pr,
				ImpactScore: impact,
			}
			if due != "" {
				dt, err := parseDueDate(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.DueDate = dt
			}

			project, err := mutate.CreateProject(db, nextIDFn(s, db), p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("project.create", project.ID, project)
			return writeOut(cmd, app, map[string]any{"data": project})
		},
	}

	cmd.Flags().StringVar(&areaID, "area", "", "Parent area id (defaults to the navigation context)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&status, "status", "", "Status (planning|active|paused|completed|cancelled)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|urgent)")
	cmd.Flags().IntVar(&impact, "impact", 0, "Impact score (0-10)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or RFC3339)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var areaID, status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects (optionally scoped to an area)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if areaID == "" {
				areaID = nav.Resolve(db).AreaID
			}

			projects := db.Projects
			if areaID != "" {
				if _, ok := db.FindArea(areaID); !ok {
					return writeErr(cmd, errNotFound("area", areaID))
				}
				projects = db.ProjectsOf(areaID)
			}
			if status != "" {
				st, err := store.ParseProjectStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				filtered := projects[:0:0]
				for _, p := range projects {
					if p.Status == st {
						filtered = append(filtered, p)
					}
				}
				projects = filtered
			}
			return writeOut(cmd, app, map[string]any{"data": projects})
		},
	}

	cmd.Flags().StringVar(&areaID, "area", "", "Scope to this area (defaults to the navigation context)")
	cmd.Flags().StringVar(&status, "status", "", "Filter by status")
	return cmd
}

func newProjectsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show a project with its tasks and progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			project, ok := db.FindProject(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("project", args[0]))
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"project":  project,
				"progress": metrics.ProjectProgress(db, project.ID),
				"tasks":    db.TasksOf(project.ID),
			}})
		},
	}
	return cmd
}

func newProjectsUpdateCmd(app *App) *cobra.Command {
	var areaID, name, description, status, priority, due string
	var impact int
	var clearDue bool

	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Update project fields (move with --area)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var p mutate.UpdateProjectParams
			if cmd.Flags().Changed("area") {
				p.AreaID = &areaID
			}
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("description") {
				p.Description = &description
			}
			if cmd.Flags().Changed("status") {
				st, err := store.ParseProjectStatus(status)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.Status = &st
			}
			if cmd.Flags().Changed("priority") {
				pr, err := store.ParsePriority(priority)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.Priority = &pr
			}
			if cmd.Flags().Changed("impact") {
				p.ImpactScore = &impact
			}
			if cmd.Flags().Changed("due") {
				dt, err := parseDueDate(due)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.DueDate = dt
			}
			p.ClearDue = clearDue

			project, err := mutate.UpdateProject(db, args[0], p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("project.update", project.ID, project)
			return writeOut(cmd, app, map[string]any{"data": project})
		},
	}

	cmd.Flags().StringVar(&areaID, "area", "", "Move to this area")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&description, "description", "", "Project description")
	cmd.Flags().StringVar(&status, "status", "", "Status (planning|active|paused|completed|cancelled)")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low|medium|high|urgent)")
	cmd.Flags().IntVar(&impact, "impact", 0, "Impact score (0-10)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD or RFC3339)")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "Remove the due date")
	return cmd
}

func newProjectsAttachCmd(app *App) *cobra.Command {
	var name, mime string
	var size int64

	cmd := &cobra.Command{
		Use:   "attach <project-id>",
		Short: "Record a file attachment on a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			project, att, err := mutate.AddAttachment(db, nextIDFn(s, db), args[0], name, mime, size)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("project.attach", project.ID, att)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"project":    project,
				"attachment": att,
			}})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Attachment file name")
	cmd.Flags().StringVar(&mime, "mime", "application/octet-stream", "MIME type")
	cmd.Flags().Int64Var(&size, "size", 0, "File size in bytes")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			project, cascade, err := mutate.DeleteProject(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("project.delete", project.ID, map[string]any{
				"project": project,
				"cascade": cascade,
			})
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"deleted": project,
				"cascade": cascade,
			}})
		},
	}
	return cmd
}
