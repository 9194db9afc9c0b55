package cli

import (
	"aurum-cli/internal/nav"
	"aurum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show local Aurum DB status",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			evs, err := store.ReadEvents(s.Dir, 0)
			if err != nil {
				return writeErr(cmd, err)
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":      s.Dir,
					"context":  nav.Resolve(db),
					"pillars":  len(db.Pillars),
					"areas":    len(db.Areas),
					"projects": len(db.Projects),
					"tasks":    len(db.Tasks),
					"captures": len(db.Captures),
					"journal":  len(db.Journal),
					"events":   len(evs),
				},
			})
		},
	}
	return cmd
}
