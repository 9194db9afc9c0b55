package mutate

import (
	"strings"
	"time"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

// AddCapture files a freeform item into the quick-capture inbox. The item
// lives outside the hierarchy until it is converted.
func AddCapture(db *store.DB, nextID func(prefix string) string, content string, kind model.CaptureKind) (model.CaptureItem, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return model.CaptureItem{}, ErrEmptyName
	}
	if kind == "" {
		kind = model.CaptureNote
	}
	item := model.CaptureItem{
		ID:         nextID("cap"),
		Content:    content,
		Kind:       kind,
		State:      model.CaptureCaptured,
		CapturedAt: time.Now().UTC(),
	}
	db.Captures = append(db.Captures, item)
	return item, nil
}

// CategorizeCapture attaches pillar/area hints. Allowed from captured or
// categorized (hints can be revised); a converted item is immutable.
func CategorizeCapture(db *store.DB, id, pillarHint, areaHint string) (*model.CaptureItem, error) {
	item, ok := db.FindCapture(strings.TrimSpace(id))
	if !ok {
		return nil, NotFoundError{Kind: "capture", ID: id}
	}
	if item.State == model.CaptureConverted {
		return nil, CaptureStateError{ID: item.ID, From: string(item.State), Op: "categorize"}
	}
	item.SuggestedPillar = strings.TrimSpace(pillarHint)
	item.SuggestedArea = strings.TrimSpace(areaHint)
	item.State = model.CaptureCategorized
	return item, nil
}

type ConvertCaptureParams struct {
	ProjectID string
	// Name overrides the task name; defaults to the capture's first line.
	Name     string
	Priority model.Priority
}

type ConvertResult struct {
	Capture *model.CaptureItem
	Task    model.Task
}

// ConvertCapture turns an inbox item into a real Task under a project and
// stamps the back-reference. This is the genuine conversion the original
// UI only simulated: after conversion the task exists in the hierarchy and
// the capture cannot be re-converted.
func ConvertCapture(db *store.DB, nextID func(prefix string) string, id string, p ConvertCaptureParams) (ConvertResult, error) {
	item, ok := db.FindCapture(strings.TrimSpace(id))
	if !ok {
		return ConvertResult{}, NotFoundError{Kind: "capture", ID: id}
	}
	if item.State == model.CaptureConverted {
		return ConvertResult{}, CaptureStateError{ID: item.ID, From: string(item.State), Op: "convert"}
	}

	name := strings.TrimSpace(p.Name)
	if name == "" {
		name, _, _ = strings.Cut(item.Content, "\n")
		name = strings.TrimSpace(name)
	}

	task, err := CreateTask(db, nextID, CreateTaskParams{
		ProjectID:   p.ProjectID,
		Name:        name,
		Description: item.Content,
		Priority:    p.Priority,
	})
	if err != nil {
		return ConvertResult{}, err
	}

	now := time.Now().UTC()
	taskID := task.ID
	item.TaskID = &taskID
	item.State = model.CaptureConverted
	item.ProcessedAt = &now

	return ConvertResult{Capture: item, Task: task}, nil
}

func DeleteCapture(db *store.DB, id string) (model.CaptureItem, error) {
	id = strings.TrimSpace(id)
	item, ok := db.FindCapture(id)
	if !ok {
		return model.CaptureItem{}, NotFoundError{Kind: "capture", ID: id}
	}
	removed := *item
	db.Captures = deleteByID(db.Captures, func(c model.CaptureItem) string { return c.ID }, map[string]bool{id: true})
	return removed, nil
}
