package cli

import (
	"aurum-cli/internal/nav"
	"aurum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check hierarchy integrity (orphans, broken back-refs, stale context)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			problems := store.CheckIntegrity(db)

			fixed := 0
			if fix && len(problems) > 0 {
				// The only auto-fixable class is stale navigation context;
				// orphans need a human decision about where they belong.
				resolved := nav.Resolve(db)
				if resolved != db.Context {
					db.Context = resolved
					if err := s.Save(db); err != nil {
						return writeErr(cmd, err)
					}
					_ = s.AppendEvent("nav.resolve", "nav-context", resolved)
					fixed++
					problems = store.CheckIntegrity(db)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"ok":       len(problems) == 0,
					"problems": problems,
					"fixed":    fixed,
				},
			})
		},
	}

	cmd.Flags().BoolVar(&fix, "fix", false, "Repair what can be repaired automatically")
	return cmd
}
