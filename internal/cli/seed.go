package cli

import (
	"errors"
	"time"

	"aurum-cli/internal/model"
	"aurum-cli/internal/mutate"

	"github.com/spf13/cobra"
)

// newSeedCmd populates an empty workspace with a demo hierarchy so the TUI
// and dashboard have something to show on first run.
func newSeedCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the workspace with demo data",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if len(db.Pillars) > 0 && !force {
				return writeErr(cmd, errors.New("workspace is not empty (use --force to seed anyway)"))
			}

			nextID := nextIDFn(s, db)
			now := time.Now().UTC()
			due := func(days int) *time.Time {
				t := now.AddDate(0, 0, days)
				return &t
			}

			type seedTask struct {
				name, desc string
				status     model.TaskStatus
				priority   model.Priority
				due        *time.Time
			}
			type seedProject struct {
				name, desc string
				status     model.ProjectStatus
				priority   model.Priority
				due        *time.Time
				tasks      []seedTask
			}
			type seedArea struct {
				name, desc string
				projects   []seedProject
			}
			type seedPillar struct {
				name, desc, icon, color string
				areas                   []seedArea
			}

			pillars := []seedPillar{
				{
					name: "Health & Fitness", desc: "Physical and mental well-being", icon: "💪", color: "#22C55E",
					areas: []seedArea{{
						name: "Fitness", desc: "Training and endurance",
						projects: []seedProject{
							{
								name: "Marathon Training", desc: "Train for and complete a full marathon",
								status: model.ProjectActive, priority: model.PriorityHigh, due: due(120),
								tasks: []seedTask{
									{"Create training schedule", "Design 16-week marathon training plan", model.TaskCompleted, model.PriorityHigh, due(-7)},
									{"Buy running shoes", "Get proper running shoes for training", model.TaskInProgress, model.PriorityMedium, due(3)},
									{"Complete week 1 training", "3 runs totaling 15 miles", model.TaskTodo, model.PriorityHigh, due(7)},
									{"Morning run - 5 miles", "Easy pace training run", model.TaskTodo, model.PriorityHigh, due(0)},
								},
							},
							{
								name: "Nutrition Optimization", desc: "Develop and maintain healthy eating habits",
								status: model.ProjectPlanning, priority: model.PriorityMedium, due: due(90),
							},
						},
					}},
				},
				{
					name: "Career & Finance", desc: "Professional growth and financial stability", icon: "💼", color: "#3B82F6",
					areas: []seedArea{{
						name: "Professional Growth", desc: "Skills and advancement",
						projects: []seedProject{
							{
								name: "Skills Certification", desc: "Obtain industry certification to advance career",
								status: model.ProjectActive, priority: model.PriorityHigh, due: due(180),
								tasks: []seedTask{
									{"Research certification requirements", "Study exam format and requirements", model.TaskCompleted, model.PriorityHigh, due(-14)},
									{"Purchase study materials", "Buy books and online course", model.TaskInProgress, model.PriorityMedium, due(2)},
									{"Study Chapter 1-3", "Complete first three chapters", model.TaskTodo, model.PriorityHigh, due(10)},
								},
							},
							{
								name: "Emergency Fund", desc: "Build 6-month emergency fund",
								status: model.ProjectPlanning, priority: model.PriorityMedium, due: due(365),
							},
						},
					}},
				},
				{
					name: "Personal Growth", desc: "Learning, skills, and self-development", icon: "🧠", color: "#F4B400",
					areas: []seedArea{{
						name: "Mind", desc: "Mindfulness and learning",
						projects: []seedProject{
							{
								name: "Mindfulness Practice", desc: "Establish daily meditation and mindfulness routine",
								status: model.ProjectActive, priority: model.PriorityHigh, due: due(60),
								tasks: []seedTask{
									{"Set up meditation space", "Create quiet, comfortable meditation area", model.TaskCompleted, model.PriorityMedium, due(-3)},
									{"Download meditation app", "Install and set up guided meditation app", model.TaskInProgress, model.PriorityLow, due(1)},
									{"Meditate for 7 days", "Complete 10-minute daily meditation", model.TaskTodo, model.PriorityHigh, due(7)},
								},
							},
							{
								name: "Language Learning", desc: "Achieve conversational fluency in Spanish",
								status: model.ProjectPlanning, priority: model.PriorityLow, due: due(300),
							},
						},
					}},
				},
			}

			var created struct {
				Pillars  int `json:"pillars"`
				Areas    int `json:"areas"`
				Projects int `json:"projects"`
				Tasks    int `json:"tasks"`
				Captures int `json:"captures"`
				Journal  int `json:"journal"`
			}

			for i, sp := range pillars {
				pillar, err := mutate.CreatePillar(db, nextID, mutate.CreatePillarParams{
					Name: sp.name, Description: sp.desc, Icon: sp.icon, Color: sp.color, SortOrder: i + 1,
				})
				if err != nil {
					return writeErr(cmd, err)
				}
				created.Pillars++
				for j, sa := range sp.areas {
					area, err := mutate.CreateArea(db, nextID, mutate.CreateAreaParams{
						PillarID: pillar.ID, Name: sa.name, Description: sa.desc, SortOrder: j + 1,
					})
					if err != nil {
						return writeErr(cmd, err)
					}
					created.Areas++
					for _, pp := range sa.projects {
						project, err := mutate.CreateProject(db, nextID, mutate.CreateProjectParams{
							AreaID: area.ID, Name: pp.name, Description: pp.desc,
							Status: pp.status, Priority: pp.priority, DueDate: pp.due,
						})
						if err != nil {
							return writeErr(cmd, err)
						}
						created.Projects++
						for _, tt := range pp.tasks {
							task, err := mutate.CreateTask(db, nextID, mutate.CreateTaskParams{
								ProjectID: project.ID, Name: tt.name, Description: tt.desc,
								Priority: tt.priority, DueDate: tt.due,
							})
							if err != nil {
								return writeErr(cmd, err)
							}
							if tt.status != model.TaskTodo {
								if _, err := mutate.SetTaskStatus(db, task.ID, tt.status); err != nil {
									return writeErr(cmd, err)
								}
							}
							created.Tasks++
						}
					}
				}
			}

			if _, err := mutate.AddCapture(db, nextID, "Look into a standing desk", model.CaptureIdea); err != nil {
				return writeErr(cmd, err)
			}
			created.Captures++

			if _, err := mutate.CreateJournalEntry(db, nextID, mutate.CreateJournalParams{
				Title:   "Getting started",
				Content: "Set up my pillars today. Starting with **health**, career, and growth.",
				Mood:    model.MoodOptimistic,
				Tags:    []string{"setup"},
			}); err != nil {
				return writeErr(cmd, err)
			}
			created.Journal++

			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			ws := app.Workspace
			if ws == "" {
				ws = "default"
			}
			_ = s.AppendEvent("workspace.seed", ws, created)
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Seed even if the workspace already has pillars")
	return cmd
}
