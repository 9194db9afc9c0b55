package store

import (
	"fmt"
	"strings"

	"aurum-cli/internal/model"
)

func ParseTaskStatus(s string) (model.TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo":
		return model.TaskTodo, nil
	case "in_progress", "in-progress", "doing":
		return model.TaskInProgress, nil
	case "completed", "done":
		return model.TaskCompleted, nil
	case "cancelled", "canceled":
		return model.TaskCancelled, nil
	default:
		return "", fmt.Errorf("invalid task status: %q (expected todo|in_progress|completed|cancelled)", s)
	}
}

func ParseProjectStatus(s string) (model.ProjectStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "planning":
		return model.ProjectPlanning, nil
	case "active":
		return model.ProjectActive, nil
	case "paused":
		return model.ProjectPaused, nil
	case "completed":
		return model.ProjectCompleted, nil
	case "cancelled", "canceled":
		return model.ProjectCancelled, nil
	default:
		return "", fmt.Errorf("invalid project status: %q (expected planning|active|paused|completed|cancelled)", s)
	}
}

func ParsePriority(s string) (model.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "medium":
		return model.PriorityMedium, nil
	case "low":
		return model.PriorityLow, nil
	case "high":
		return model.PriorityHigh, nil
	case "urgent":
		return model.PriorityUrgent, nil
	default:
		return "", fmt.Errorf("invalid priority: %q (expected low|medium|high|urgent)", s)
	}
}

func ParseMood(s string) (model.Mood, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reflective":
		return model.MoodReflective, nil
	case "optimistic":
		return model.MoodOptimistic, nil
	case "inspired":
		return model.MoodInspired, nil
	case "challenging":
		return model.MoodChallenging, nil
	default:
		return "", fmt.Errorf("invalid mood: %q (expected optimistic|inspired|reflective|challenging)", s)
	}
}

func ParseCaptureKind(s string) (model.CaptureKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "note":
		return model.CaptureNote, nil
	case "idea":
		return model.CaptureIdea, nil
	case "todo", "task":
		return model.CaptureTodo, nil
	default:
		return "", fmt.Errorf("invalid capture kind: %q (expected note|idea|todo)", s)
	}
}

// NormalizeTags trims, de-duplicates, and strips leading '#' from tags.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := map[string]bool{}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		t = strings.TrimPrefix(t, "#")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
