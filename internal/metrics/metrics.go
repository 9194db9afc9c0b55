// Package metrics computes the derived scores of the hierarchy. Nothing
// here is ever persisted; every score is recomputed from leaf tasks on
// read so a score can never drift from the tree it describes.
package metrics

import (
	"math"
	"time"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

type TaskCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

func countTasks(tasks []model.Task) TaskCounts {
	c := TaskCounts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == model.TaskCompleted {
			c.Completed++
		}
	}
	return c
}

// score is round(completed/total*100); 0 when there are no tasks.
func score(c TaskCounts) int {
	if c.Total == 0 {
		return 0
	}
	return int(math.Round(float64(c.Completed) / float64(c.Total) * 100))
}

// ProjectProgress is the completion percentage of a project's tasks.
func ProjectProgress(db *store.DB, projectID string) int {
	return score(countTasks(db.TasksOf(projectID)))
}

// AreaHealth is the completion percentage over all leaf tasks below an
// area; 0 when nothing below it has tasks.
func AreaHealth(db *store.DB, areaID string) int {
	return score(countTasks(db.TasksUnderArea(areaID)))
}

// PillarHealth is the completion percentage over all leaf tasks below a
// pillar.
func PillarHealth(db *store.DB, pillarID string) int {
	return score(countTasks(db.TasksUnderPillar(pillarID)))
}

// StreakDays counts consecutive days, ending today, on which at least one
// task under the pillar was completed.
func StreakDays(db *store.DB, pillarID string, now time.Time) int {
	byDay := map[string]bool{}
	for _, t := range db.TasksUnderPillar(pillarID) {
		if t.CompletedAt == nil {
			continue
		}
		byDay[t.CompletedAt.UTC().Format("2006-01-02")] = true
	}
	streak := 0
	day := now.UTC()
	for byDay[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

type PillarMetrics struct {
	PillarID    string `json:"pillarId"`
	Name        string `json:"name"`
	Areas       int    `json:"areas"`
	Projects    int    `json:"projects"`
	Tasks       int    `json:"tasks"`
	Completed   int    `json:"completed"`
	HealthScore int    `json:"healthScore"`
	StreakDays  int    `json:"streakDays"`
}

func GetPillarMetrics(db *store.DB, pillarID string) (PillarMetrics, bool) {
	pillar, ok := db.FindPillar(pillarID)
	if !ok {
		return PillarMetrics{}, false
	}
	m := PillarMetrics{PillarID: pillar.ID, Name: pillar.Name}
	m.Areas = len(db.AreasOf(pillar.ID))
	for _, a := range db.AreasOf(pillar.ID) {
		m.Projects += len(db.ProjectsOf(a.ID))
	}
	c := countTasks(db.TasksUnderPillar(pillar.ID))
	m.Tasks = c.Total
	m.Completed = c.Completed
	m.HealthScore = score(c)
	m.StreakDays = StreakDays(db, pillar.ID, time.Now())
	return m, true
}

type DashboardStats struct {
	Pillars        int             `json:"pillars"`
	Areas          int             `json:"areas"`
	Projects       int             `json:"projects"`
	Tasks          int             `json:"tasks"`
	Completed      int             `json:"completed"`
	Overdue        int             `json:"overdue"`
	InboxPending   int             `json:"inboxPending"`
	JournalEntries int             `json:"journalEntries"`
	PillarHealth   []PillarMetrics `json:"pillarHealth"`
}

// Dashboard aggregates the workspace into one stats object. It never
// fails: on an internal panic it degrades to zero-filled stats so a
// damaged workspace still renders a dashboard.
func Dashboard(db *store.DB) (stats DashboardStats) {
	defer func() {
		if r := recover(); r != nil {
			stats = DashboardStats{PillarHealth: []PillarMetrics{}}
		}
	}()

	now := time.Now().UTC()
	stats = DashboardStats{
		Pillars:        len(db.Pillars),
		Areas:          len(db.Areas),
		Projects:       len(db.Projects),
		JournalEntries: len(db.Journal),
		PillarHealth:   []PillarMetrics{},
	}
	c := countTasks(db.Tasks)
	stats.Tasks = c.Total
	stats.Completed = c.Completed
	for _, t := range db.Tasks {
		if t.DueDate == nil || t.Status == model.TaskCompleted || t.Status == model.TaskCancelled {
			continue
		}
		if t.DueDate.Before(now) {
			stats.Overdue++
		}
	}
	for _, item := range db.Captures {
		if item.State != model.CaptureConverted {
			stats.InboxPending++
		}
	}
	for _, p := range db.Pillars {
		if m, ok := GetPillarMetrics(db, p.ID); ok {
			stats.PillarHealth = append(stats.PillarHealth, m)
		}
	}
	return stats
}
