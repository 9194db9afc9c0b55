package cli

import (
	"aurum-cli/internal/nav"

	"github.com/spf13/cobra"
)

func newNavCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nav",
		Short: "Navigation context (drill-down selection)",
	}
	cmd.AddCommand(newNavShowCmd(app))
	cmd.AddCommand(newNavToCmd(app))
	cmd.AddCommand(newNavResetCmd(app))
	return cmd
}

func newNavShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current (validated) navigation context",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			resolved := nav.Resolve(db)
			// Persist the cleanup if validation dropped a stale selection.
			if resolved != db.Context {
				db.Context = resolved
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent("nav.resolve", "nav-context", resolved)
			}

			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"context":    resolved,
				"level":      nav.ContextLevel(resolved).String(),
				"breadcrumb": nav.Breadcrumb(db),
			}})
		},
	}
	return cmd
}

func newNavToCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "to <pillar-id|area-id|project-id>",
		Short: "Drill into a pillar, area, or project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			id := args[0]
			// Try each level; the id prefix usually disambiguates, but we
			// fall through so opaque ids still work.
			err = nav.ToPillar(db, id)
			if err != nil {
				err = nav.ToArea(db, id)
			}
			if err != nil {
				err = nav.ToProject(db, id)
			}
			if err != nil {
				return writeErr(cmd, errNotFound("pillar/area/project", id))
			}

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("nav.to", id, db.Context)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"context":    db.Context,
				"level":      nav.ContextLevel(db.Context).String(),
				"breadcrumb": nav.Breadcrumb(db),
			}})
		},
	}
	return cmd
}

func newNavResetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the navigation context (back to all pillars)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			nav.Reset(db)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("nav.reset", "nav-context", db.Context)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"context": db.Context,
				"level":   nav.ContextLevel(db.Context).String(),
			}})
		},
	}
	return cmd
}
