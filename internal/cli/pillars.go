package cli

import (
	"aurum-cli/internal/metrics"
	"aurum-cli/internal/mutate"
	"aurum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newPillarsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pillars",
		Short: "Pillar commands (top-level life domains)",
	}
	cmd.AddCommand(newPillarsCreateCmd(app))
	cmd.AddCommand(newPillarsListCmd(app))
	cmd.AddCommand(newPillarsShowCmd(app))
	cmd.AddCommand(newPillarsUpdateCmd(app))
	cmd.AddCommand(newPillarsDeleteCmd(app))
	return cmd
}

func newPillarsCreateCmd(app *App) *cobra.Command {
	var name, description, icon, color string
	var sortOrder int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a pillar",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			pillar, err := mutate.CreatePillar(db, nextIDFn(s, db), mutate.CreatePillarParams{
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
			_ = s.AppendEvent("pillar.create", pillar.ID, pillar)
			return writeOut(cmd, app, map[string]any{"data": pillar})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pillar name")
	cmd.Flags().StringVar(&description, "description", "", "Pillar description")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon (emoji)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().IntVar(&sortOrder, "sort-order", 0, "Sort position")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newPillarsListCmd(app *App) *cobra.Command {
	var withMetrics bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pillars",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !withMetrics {
				return writeOut(cmd, app, map[string]any{"data": db.Pillars})
			}
			out := make([]map[string]any, 0, len(db.Pillars))
			for _, p := range db.Pillars {
				m, _ := metrics.GetPillarMetrics(db, p.ID)
				out = append(out, map[string]any{"pillar": p, "metrics": m})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}

	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Include derived health metrics")
	return cmd
}

func newPillarsShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <pillar-id>",
		Short: "Show a pillar with its areas and derived metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			pillar, ok := db.FindPillar(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("pillar", args[0]))
			}
			m, _ := metrics.GetPillarMetrics(db, pillar.ID)

			areas := db.AreasOf(pillar.ID)
			areaViews := make([]map[string]any, 0, len(areas))
			for _, a := range areas {
				areaViews = append(areaViews, map[string]any{
					"area":        a,
					"healthScore": metrics.AreaHealth(db, a.ID),
					"projects":    len(db.ProjectsOf(a.ID)),
				})
			}

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"pillar":  pillar,
				"metrics": m,
				"areas":   areaViews,
			}})
		},
	}
	return cmd
}

func newPillarsUpdateCmd(app *App) *cobra.Command {
	var name, description, icon, color string
	var sortOrder int

	cmd := &cobra.Command{
		Use:   "update <pillar-id>",
		Short: "Update pillar fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var p mutate.UpdatePillarParams
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

			pillar, err := mutate.UpdatePillar(db, args[0], p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("pillar.update", pillar.ID, pillar)
			return writeOut(cmd, app, map[string]any{"data": pillar})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Pillar name")
	cmd.Flags().StringVar(&description, "description", "", "Pillar description")
	cmd.Flags().StringVar(&icon, "icon", "", "Display icon (emoji)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().IntVar(&sortOrder, "sort-order", 0, "Sort position")
	return cmd
}

func newPillarsDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <pillar-id>",
		Short: "Delete a pillar and every descendant area, project, and task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			pillar, cascade, err := mutate.DeletePillar(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("pillar.delete", pillar.ID, map[string]any{
				"pillar":  pillar,
				"cascade": cascade,
			})
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"deleted": pillar,
				"cascade": cascade,
			}})
		},
	}
	return cmd
}

// nextIDFn adapts Store.NextID to the mutate-layer callback shape.
func nextIDFn(s store.Store, db *store.DB) func(prefix string) string {
	return func(prefix string) string { return s.NextID(db, prefix) }
}
