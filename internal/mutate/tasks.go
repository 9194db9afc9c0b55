package mutate

import (
	"strings"
	"time"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

type CreateTaskParams struct {
	ProjectID      string
	Name           string
	Description    string
	Priority       model.Priority
	EstimatedHours float64
	DueDate        *time.Time
	Tags           []string
}

func CreateTask(db *store.DB, nextID func(prefix string) string, p CreateTaskParams) (model.Task, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return model.Task{}, ErrEmptyName
	}
	projectID := strings.TrimSpace(p.ProjectID)
	if _, ok := db.FindProject(projectID); !ok {
		return model.Task{}, NotFoundError{Kind: "project", ID: projectID}
	}
	priority := p.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	now := time.Now().UTC()
	task := model.Task{
		ID:             nextID("task"),
		ProjectID:      projectID,
		Name:           name,
		Description:    strings.TrimSpace(p.Description),
		Status:         model.TaskTodo,
		Priority:       priority,
		EstimatedHours: p.EstimatedHours,
		DueDate:        p.DueDate,
		Tags:           store.NormalizeTags(p.Tags),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	db.Tasks = append(db.Tasks, task)
	db.InvalidateIndexes()
	return task, nil
}

type UpdateTaskParams struct {
	ProjectID      *string
	Name           *string
	Description    *string
	Priority       *model.Priority
	EstimatedHours *float64
	DueDate        *time.Time
	ClearDue       bool
	Tags           []string
}

// UpdateTask merges the provided fields into the task. Moving a task to
// another project re-validates the target at the time of the move.
func UpdateTask(db *store.DB, id string, p UpdateTaskParams) (*model.Task, error) {
	task, ok := db.FindTask(strings.TrimSpace(id))
	if !ok {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	if p.ProjectID != nil {
		pid := strings.TrimSpace(*p.ProjectID)
		if _, ok := db.FindProject(pid); !ok {
			return nil, NotFoundError{Kind: "project", ID: pid}
		}
		task.ProjectID = pid
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		task.Name = name
	}
	if p.Description != nil {
		task.Description = strings.TrimSpace(*p.Description)
	}
	if p.Priority != nil {
		task.Priority = *p.Priority
	}
	if p.EstimatedHours != nil {
		task.EstimatedHours = *p.EstimatedHours
	}
	if p.ClearDue {
		task.DueDate = nil
	} else if p.DueDate != nil {
		task.DueDate = p.DueDate
	}
	if p.Tags != nil {
		task.Tags = store.NormalizeTags(p.Tags)
	}
	task.UpdatedAt = time.Now().UTC()
	// Cached copies in the per-project index would otherwise keep the old
	// field values.
	db.InvalidateIndexes()
	return task, nil
}

type SetStatusResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetTaskStatus transitions a task's status. Completing stamps
// CompletedAt; leaving completed clears it. Callers are responsible for
// saving db and appending the task.set_status event.
func SetTaskStatus(db *store.DB, id string, status model.TaskStatus) (SetStatusResult, error) {
	task, ok := db.FindTask(strings.TrimSpace(id))
	if !ok {
		return SetStatusResult{}, NotFoundError{Kind: "task", ID: id}
	}
	prev := task.Status
	if prev == status {
		return SetStatusResult{Task: task, Changed: false}, nil
	}

	now := time.Now().UTC()
	task.Status = status
	switch status {
	case model.TaskCompleted:
		task.CompletedAt = &now
	default:
		task.CompletedAt = nil
	}
	task.UpdatedAt = now
	db.InvalidateIndexes()

	return SetStatusResult{
		Task:    task,
		Changed: true,
		EventPayload: map[string]any{
			"from": string(prev),
			"to":   string(status),
		},
	}, nil
}

func AddTaskTags(db *store.DB, id string, tags []string) (*model.Task, error) {
	task, ok := db.FindTask(strings.TrimSpace(id))
	if !ok {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	task.Tags = store.NormalizeTags(append(append([]string{}, task.Tags...), tags...))
	task.UpdatedAt = time.Now().UTC()
	db.InvalidateIndexes()
	return task, nil
}

func RemoveTaskTags(db *store.DB, id string, tags []string) (*model.Task, error) {
	task, ok := db.FindTask(strings.TrimSpace(id))
	if !ok {
		return nil, NotFoundError{Kind: "task", ID: id}
	}
	drop := toSet(store.NormalizeTags(tags))
	var kept []string
	for _, t := range task.Tags {
		if drop[t] {
			continue
		}
		kept = append(kept, t)
	}
	task.Tags = kept
	task.UpdatedAt = time.Now().UTC()
	db.InvalidateIndexes()
	return task, nil
}

func DeleteTask(db *store.DB, id string) (model.Task, error) {
	id = strings.TrimSpace(id)
	task, ok := db.FindTask(id)
	if !ok {
		return model.Task{}, NotFoundError{Kind: "task", ID: id}
	}
	removed := *task
	db.Tasks = deleteByID(db.Tasks, func(t model.Task) string { return t.ID }, map[string]bool{id: true})
	db.InvalidateIndexes()
	return removed, nil
}
