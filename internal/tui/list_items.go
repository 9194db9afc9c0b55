package tui

import (
	"fmt"
	"strings"

	"aurum-cli/internal/metrics"
	"aurum-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = title
	// We render our own global header + footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(true)
	// Bubble list defaults to quitting on ESC; in Aurum ESC is "back".
	l.KeyMap.Quit.SetKeys("q")
	// Emacs-style navigation aliases.
	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	cursorUpKeys = append(cursorUpKeys, "ctrl+p")
	l.KeyMap.CursorUp.SetKeys(cursorUpKeys...)

	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	cursorDownKeys = append(cursorDownKeys, "ctrl+n")
	l.KeyMap.CursorDown.SetKeys(cursorDownKeys...)
	return l
}

type pillarItem struct {
	pillar  model.Pillar
	metrics metrics.PillarMetrics
}

func (i pillarItem) FilterValue() string { return i.pillar.Name }

func (i pillarItem) Title() string {
	name := i.pillar.Name
	if i.pillar.Icon != "" {
		name = i.pillar.Icon + " " + name
	}
	return name
}

func (i pillarItem) Description() string {
	return fmt.Sprintf("%s %3d%%  %d areas  %d tasks",
		healthBar(i.metrics.HealthScore, 10), i.metrics.HealthScore, i.metrics.Areas, i.metrics.Tasks)
}

type areaItem struct {
	area   model.Area
	health int
}

func (i areaItem) FilterValue() string { return i.area.Name }

func (i areaItem) Title() string {
	name := i.area.Name
	if i.area.Icon != "" {
		name = i.area.Icon + " " + name
	}
	return name
}

func (i areaItem) Description() string {
	return fmt.Sprintf("%s %3d%%", healthBar(i.health, 10), i.health)
}

type projectItem struct {
	project  model.Project
	progress int
}

func (i projectItem) FilterValue() string { return i.project.Name }

func (i projectItem) Title() string { return i.project.Name }

func (i projectItem) Description() string {
	parts := []string{
		fmt.Sprintf("%s %3d%%", healthBar(i.progress, 10), i.progress),
		string(i.project.Status),
		string(i.project.Priority),
	}
	if i.project.DueDate != nil {
		parts = append(parts, metaDueStyle.Render("due "+i.project.DueDate.Format("2006-01-02")))
	}
	return strings.Join(parts, "  ")
}

type taskItem struct {
	task model.Task
}

func (i taskItem) FilterValue() string { return i.task.Name }

func (i taskItem) Title() string {
	box := "[ ]"
	switch i.task.Status {
	case model.TaskCompleted:
		box = "[x]"
	case model.TaskInProgress:
		box = "[~]"
	case model.TaskCancelled:
		box = "[-]"
	}
	return box + " " + i.task.Name
}

func (i taskItem) Description() string {
	parts := []string{string(i.task.Status), string(i.task.Priority)}
	if i.task.DueDate != nil {
		parts = append(parts, metaDueStyle.Render("due "+i.task.DueDate.Format("2006-01-02")))
	}
	if len(i.task.Tags) > 0 {
		parts = append(parts, "#"+strings.Join(i.task.Tags, " #"))
	}
	return strings.Join(parts, "  ")
}
