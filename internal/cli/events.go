package cli

import (
	"aurum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	var entityID string
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Read the append-only event log",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var evs []any
			if entityID != "" {
				es, err := store.ReadEventsForEntity(s.Dir, entityID, limit)
				if err != nil {
					return writeErr(cmd, err)
				}
				for _, e := range es {
					evs = append(evs, e)
				}
			} else {
				es, err := store.ReadEvents(s.Dir, limit)
				if err != nil {
					return writeErr(cmd, err)
				}
				for _, e := range es {
					evs = append(evs, e)
				}
			}
			if evs == nil {
				evs = []any{}
			}
			return writeOut(cmd, app, map[string]any{"data": evs})
		},
	}

	cmd.Flags().StringVar(&entityID, "entity", "", "Only events for this entity id")
	cmd.Flags().IntVar(&limit, "limit", 0, "Max events to return (0 = all)")
	return cmd
}
