package mutate

import (
	"strings"
	"time"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

type CreateAreaParams struct {
	PillarID    string
	Name        string
	Description string
	Icon        string
	Color       string
	SortOrder   int
}

// CreateArea validates the parent pillar at insert time; an area can never
// enter the store pointing at a pillar that does not exist.
func CreateArea(db *store.DB, nextID func(prefix string) string, p CreateAreaParams) (model.Area, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return model.Area{}, ErrEmptyName
	}
	pillarID := strings.TrimSpace(p.PillarID)
	if _, ok := db.FindPillar(pillarID); !ok {
		return model.Area{}, NotFoundError{Kind: "pillar", ID: pillarID}
	}
	now := time.Now().UTC()
	area := model.Area{
		ID:          nextID("area"),
		PillarID:    pillarID,
		Name:        name,
		Description: strings.TrimSpace(p.Description),
		Icon:        strings.TrimSpace(p.Icon),
		Color:       strings.TrimSpace(p.Color),
		SortOrder:   p.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	db.Areas = append(db.Areas, area)
	db.InvalidateIndexes()
	return area, nil
}

type UpdateAreaParams struct {
	PillarID    *string
	Name        *string
	Description *string
	Icon        *string
	Color       *string
	SortOrder   *int
}

func UpdateArea(db *store.DB, id string, p UpdateAreaParams) (*model.Area, error) {
	area, ok := db.FindArea(strings.TrimSpace(id))
	if !ok {
		return nil, NotFoundError{Kind: "area", ID: id}
	}
	if p.PillarID != nil {
		pid := strings.TrimSpace(*p.PillarID)
		if _, ok := db.FindPillar(pid); !ok {
			return nil, NotFoundError{Kind: "pillar", ID: pid}
		}
		area.PillarID = pid
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		area.Name = name
	}
	if p.Description != nil {
		area.Description = strings.TrimSpace(*p.Description)
	}
	if p.Icon != nil {
		area.Icon = strings.TrimSpace(*p.Icon)
	}
	if p.Color != nil {
		area.Color = strings.TrimSpace(*p.Color)
	}
	if p.SortOrder != nil {
		area.SortOrder = *p.SortOrder
	}
	area.UpdatedAt = time.Now().UTC()
	// Cached copies in the per-pillar index would otherwise keep the old
	// field values.
	db.InvalidateIndexes()
	return area, nil
}

// DeleteArea removes an area and its projects and tasks.
func DeleteArea(db *store.DB, id string) (model.Area, CascadeResult, error) {
	id = strings.TrimSpace(id)
	area, ok := db.FindArea(id)
	if !ok {
		return model.Area{}, CascadeResult{}, NotFoundError{Kind: "area", ID: id}
	}
	removed := *area

	var res CascadeResult
	for _, p := range db.ProjectsOf(id) {
		res.RemovedProjects = append(res.RemovedProjects, p.ID)
		for _, t := range db.TasksOf(p.ID) {
			res.RemovedTasks = append(res.RemovedTasks, t.ID)
		}
	}

	projectSet := toSet(res.RemovedProjects)
	taskSet := toSet(res.RemovedTasks)

	db.Areas = deleteByID(db.Areas, func(a model.Area) string { return a.ID }, map[string]bool{id: true})
	db.Projects = deleteByID(db.Projects, func(p model.Project) string { return p.ID }, projectSet)
	db.Tasks = deleteByID(db.Tasks, func(t model.Task) string { return t.ID }, taskSet)
	db.InvalidateIndexes()

	clearContext(db, nil, map[string]bool{id: true}, projectSet)
	return removed, res, nil
}
