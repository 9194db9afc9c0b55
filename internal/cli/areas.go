package cli

import (
	"aurum-cli/internal/metrics"
	"aurum-cli/internal/mutate"
	"aurum-cli/internal/nav"

	"github.com/spf13/cobra"
)

func newAreasCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "areas",
		Short: "Area commands (focus areas within a pillar)",
	}
	cmd.AddCommand(newAreasCreateCmd(app))
	cmd.AddCommand(newAreasListCmd(app))
	cmd.AddCommand(newAreasShowCmd(app))
	cmd.AddCommand(newAreasUpdateCmd(app))
	cmd.AddCommand(newAreasDeleteCmd(app))
	return cmd
}

func newAreasCreateCmd(app *App) *cobra.Command {
	var pillarID, name, description, icon, color string
	var sortOrder int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an area under a pillar",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			// Default the parent from the current navigation context.
			if pillarID == "" {
				pillarID = nav.Resolve(db).PillarID
			}

			area, err := mutate.CreateArea(db, nextIDFn(s, db), mutate.CreateAreaParams{
				PillarID:    pillarID,
				Name:        name,
				Description: description,
				Icon:        icon,
				Color:       color,
				SortOrder:   sortOrder,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("area.create", area.ID, area)
			return writeOut(cmd, app, map[string]any{"data": area})
		},
	}

	cmd.Flags().StringVar(&pillarID, "pillar", "", "Parent pillar id (defaults to the navigation context)")
	cmd.Flags().StringVar(&name, "name", "", "Area name")
	cmd.Flags().StringVar(&description, "description", "", "Area description")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon (emoji)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().IntVar(&sortOrder, "sort-order", 0, "Sort position")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newAreasListCmd(app *App) *cobra.Command {
	var pillarID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List areas (optionally scoped to a pillar)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if pillarID == "" {
				pillarID = nav.Resolve(db).PillarID
			}
			if pillarID == "" {
				return writeOut(cmd, app, map[string]any{"data": db.Areas})
			}
			if _, ok := db.FindPillar(pillarID); !ok {
				return writeErr(cmd, errNotFound("pillar", pillarID))
			}
			return writeOut(cmd, app, map[string]any{"data": db.AreasOf(pillarID)})
		},
	}

	cmd.Flags().StringVar(&pillarID, "pillar", "", "Scope to this pillar (defaults to the navigation context)")
	return cmd
}

func newAreasShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <area-id>",
		Short: "Show an area with its projects and health score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			area, ok := db.FindArea(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("area", args[0]))
			}

			projects := db.ProjectsOf(area.ID)
			projectViews := make([]map[string]any, 0, len(projects))
			for _, p := range projects {
				projectViews = append(projectViews, map[string]any{
					"project":  p,
					"progress": metrics.ProjectProgress(db, p.ID),
					"tasks":    len(db.TasksOf(p.ID)),
				})
			}

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"area":        area,
				"healthScore": metrics.AreaHealth(db, area.ID),
				"projects":    projectViews,
			}})
		},
	}
	return cmd
}

func newAreasUpdateCmd(app *App) *cobra.Command {
	var pillarID, name, description, icon, color string
	var sortOrder int

	cmd := &cobra.Command{
		Use:   "update <area-id>",
		Short: "Update area fields (move with --pillar)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var p mutate.UpdateAreaParams
			if cmd.Flags().Changed("pillar") {
				p.PillarID = &pillarID
			}
			if cmd.Flags().Changed("name") {
				p.Name = &name
			}
			if cmd.Flags().Changed("description") {
				p.Description = &description
			}
			if cmd.Flags().Changed("icon") {
				p.Icon = &icon
			}
			if cmd.Flags().Changed("color") {
				p.Color = &color
			}
			if cmd.Flags().Changed("sort-order") {
				p.SortOrder = &sortOrder
			}

			area, err := mutate.UpdateArea(db, args[0], p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("area.update", area.ID, area)
			return writeOut(cmd, app, map[string]any{"data": area})
		},
	}

	cmd.Flags().StringVar(&pillarID, "pillar", "", "Move to this pillar")
	cmd.Flags().StringVar(&name, "name", "", "Area name")
	cmd.Flags().StringVar(&description, "description", "", "Area description")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon (emoji)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().IntVar(&sortOrder, "sort-order", 0, "Sort position")
	return cmd
}

func newAreasDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <area-id>",
		Short: "Delete an area and every descendant project and task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			area, cascade, err := mutate.DeleteArea(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("area.delete", area.ID, map[string]any{
				"area":    area,
				"cascade": cascade,
			})
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"deleted": area,
				"cascade": cascade,
			}})
		},
	}
	return cmd
}
