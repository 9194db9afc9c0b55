package cli

import (
	"strings"

	"aurum-cli/internal/model"
	"aurum-cli/internal/mutate"
	"aurum-cli/internal/nav"
	"aurum-cli/internal/store"

	"github.com/spf13/cobra"
)

func newCaptureCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Quick capture inbox (capture now, categorize later)",
	}
	cmd.AddCommand(newCaptureAddCmd(app))
	cmd.AddCommand(newCaptureListCmd(app))
	cmd.AddCommand(newCaptureShowCmd(app))
	cmd.AddCommand(newCaptureCategorizeCmd(app))
	cmd.AddCommand(newCaptureConvertCmd(app))
	cmd.AddCommand(newCaptureDeleteCmd(app))
	return cmd
}

func newCaptureAddCmd(app *App) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "add <content>...",
		Short: "Capture a thought into the inbox",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			k, err := store.ParseCaptureKind(kind)
			if err != nil {
				return writeErr(cmd, err)
			}
			item, err := mutate.AddCapture(db, nextIDFn(s, db), strings.Join(args, " "), k)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("capture.add", item.ID, item)
			return writeOut(cmd, app, map[string]any{
				"data": item,
				"_hints": []string{
					"aurum capture categorize " + item.ID + " --pillar <pillar-id>",
					"aurum capture convert " + item.ID + " --project <project-id>",
				},
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Capture kind (note|idea|todo)")
	return cmd
}

func newCaptureListCmd(app *App) *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List inbox items",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items := db.Captures
			if state != "" {
				st := model.CaptureState(strings.ToLower(strings.TrimSpace(state)))
				switch st {
				case model.CaptureCaptured, model.CaptureCategorized, model.CaptureConverted:
				default:
					return writeErr(cmd, errNotFound("capture state", state))
				}
				filtered := items[:0:0]
				for _, it := range items {
					if it.State == st {
						filtered = append(filtered, it)
					}
				}
				items = filtered
			}
			return writeOut(cmd, app, map[string]any{"data": items})
		},
	}

	cmd.Flags().StringVar(&state, "state", "", "Filter by state (captured|categorized|converted)")
	return cmd
}

func newCaptureShowCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <capture-id>",
		Short: "Show an inbox item (with its converted task, if any)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			item, ok := db.FindCapture(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("capture", args[0]))
			}
			out := map[string]any{"capture": item}
			if item.TaskID != nil {
				if task, ok := db.FindTask(*item.TaskID); ok {
					out["task"] = task
				}
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	}
	return cmd
}

func newCaptureCategorizeCmd(app *App) *cobra.Command {
	var pillarHint, areaHint string

	cmd := &cobra.Command{
		Use:   "categorize <capture-id>",
		Short: "Attach pillar/area hints to an inbox item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			item, err := mutate.CategorizeCapture(db, args[0], pillarHint, areaHint)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("capture.categorize", item.ID, item)
			return writeOut(cmd, app, map[string]any{"data": item})
		},
	}

	cmd.Flags().StringVar(&pillarHint, "pillar", "", "Suggested pillar id")
	cmd.Flags().StringVar(&areaHint, "area", "", "Suggested area id")
	return cmd
}

func newCaptureConvertCmd(app *App) *cobra.Command {
	var projectID, name, priority string

	cmd := &cobra.Command{
		Use:   "convert <capture-id>",
		Short: "Convert an inbox item into a real task",
		Args:  cobra.ExactArgs(1),
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

			res, err := mutate.ConvertCapture(db, nextIDFn(s, db), args[0], mutate.ConvertCaptureParams{
				ProjectID: projectID,
				Name:      name,
				Priority:  pr,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("task.create", res.Task.ID, res.Task)
			_ = s.AppendEvent("capture.convert", res.Capture.ID, map[string]any{
				"capture": res.Capture,
				"taskId":  res.Task.ID,
			})
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"capture": res.Capture,
					"task":    res.Task,
				},
				"_hints": []string{
					"aurum tasks show " + res.Task.ID,
				},
			})
		},
	}

	cmd.Flags().StringVar(&projectID, "project", "", "Target project id (defaults to the navigation context)")
	cmd.Flags().StringVar(&name, "name", "", "Task name (defaults to the capture's first line)")
	cmd.Flags().StringVar(&priority, "priority", "", "Task priority (low|medium|high|urgent)")
	return cmd
}

func newCaptureDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <capture-id>",
		Short: "Discard an inbox item (converted tasks are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			item, err := mutate.DeleteCapture(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("capture.delete", item.ID, item)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": item}})
		},
	}
	return cmd
}
