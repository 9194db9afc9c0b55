package cli

import (
	"fmt"

	"aurum-cli/internal/mutate"
	"aurum-cli/internal/store"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newJournalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Journal commands (markdown entries with a mood)",
	}
	cmd.AddCommand(newJournalAddCmd(app))
	cmd.AddCommand(newJournalListCmd(app))
	cmd.AddCommand(newJournalShowCmd(app))
	cmd.AddCommand(newJournalUpdateCmd(app))
	cmd.AddCommand(newJournalDeleteCmd(app))
	return cmd
}

func newJournalAddCmd(app *App) *cobra.Command {
	var title, content, mood string
	var tags []string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Write a journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			m, err := store.ParseMood(mood)
			if err != nil {
				return writeErr(cmd, err)
			}
			entry, err := mutate.CreateJournalEntry(db, nextIDFn(s, db), mutate.CreateJournalParams{
				Title:   title,
				Content: content,
				Mood:    m,
				Tags:    tags,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("journal.create", entry.ID, entry)
			return writeOut(cmd, app, map[string]any{"data": entry})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Entry title")
	cmd.Flags().StringVar(&content, "content", "", "Entry body (markdown)")
	cmd.Flags().StringVar(&mood, "mood", "", "Mood (optimistic|inspired|reflective|challenging)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag (repeatable)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newJournalListCmd(app *App) *cobra.Command {
	var mood string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entries := db.Journal
			if mood != "" {
				m, err := store.ParseMood(mood)
				if err != nil {
					return writeErr(cmd, err)
				}
				filtered := entries[:0:0]
				for _, e := range entries {
					if e.Mood == m {
						filtered = append(filtered, e)
					}
				}
				entries = filtered
			}
			return writeOut(cmd, app, map[string]any{"data": entries})
		},
	}

	cmd.Flags().StringVar(&mood, "mood", "", "Filter by mood")
	return cmd
}

func newJournalShowCmd(app *App) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "show <entry-id>",
		Short: "Show a journal entry (--render for terminal markdown)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entry, ok := db.FindJournalEntry(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("journal entry", args[0]))
			}
			if !render {
				return writeOut(cmd, app, map[string]any{"data": entry})
			}

			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle("auto"),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				return writeErr(cmd, err)
			}
			out, err := r.Render("# " + entry.Title + "\n\n" + entry.Content)
			if err != nil {
				return writeErr(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&render, "render", false, "Render the entry as terminal markdown instead of JSON")
	return cmd
}

func newJournalUpdateCmd(app *App) *cobra.Command {
	var title, content, mood string
	var tags []string

	cmd := &cobra.Command{
		Use:   "update <entry-id>",
		Short: "Update a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			var p mutate.UpdateJournalParams
			if cmd.Flags().Changed("title") {
				p.Title = &title
			}
			if cmd.Flags().Changed("content") {
				p.Content = &content
			}
			if cmd.Flags().Changed("mood") {
				m, err := store.ParseMood(mood)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.Mood = &m
			}
			if cmd.Flags().Changed("tag") {
				p.Tags = tags
			}

			entry, err := mutate.UpdateJournalEntry(db, args[0], p)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("journal.update", entry.ID, entry)
			return writeOut(cmd, app, map[string]any{"data": entry})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Entry title")
	cmd.Flags().StringVar(&content, "content", "", "Entry body (markdown)")
	cmd.Flags().StringVar(&mood, "mood", "", "Mood (optimistic|inspired|reflective|challenging)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "Replace tags (repeatable)")
	return cmd
}

func newJournalDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <entry-id>",
		Short: "Delete a journal entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entry, err := mutate.DeleteJournalEntry(db, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent("journal.delete", entry.ID, entry)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": entry}})
		},
	}
	return cmd
}
