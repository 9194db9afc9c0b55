package mutate

import (
	"strings"
	"time"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

type CreatePillarParams struct {
	Name        string
	Description string
	Icon        string
	Color       string
	SortOrder   int
}

func CreatePillar(db *store.DB, nextID func(prefix string) string, p CreatePillarParams) (model.Pillar, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return model.Pillar{}, ErrEmptyName
	}
	now := time.Now().UTC()
	pillar := model.Pillar{
		ID:          nextID("pill"),
		Name:        name,
		Description: strings.TrimSpace(p.Description),
		Icon:        strings.TrimSpace(p.Icon),
		Color:       strings.TrimSpace(p.Color),
		SortOrder:   p.SortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	db.Pillars = append(db.Pillars, pillar)
	db.InvalidateIndexes()
	return pillar, nil
}

type UpdatePillarParams struct {
	Name        *string
	Description *string
	Icon        *string
	Color       *string
	SortOrder   *int
}

func UpdatePillar(db *store.DB, id string, p UpdatePillarParams) (*model.Pillar, error) {
	pillar, ok := db.FindPillar(strings.TrimSpace(id))
	if !ok {
		return nil, NotFoundError{Kind: "pillar", ID: id}
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		pillar.Name = name
	}
	if p.Description != nil {
		pillar.Description = strings.TrimSpace(*p.Description)
	}
	if p.Icon != nil {
		pillar.Icon = strings.TrimSpace(*p.Icon)
	}
	if p.Color != nil {
		pillar.Color = strings.TrimSpace(*p.Color)
	}
	if p.SortOrder != nil {
		pillar.SortOrder = *p.SortOrder
	}
	pillar.UpdatedAt = time.Now().UTC()
	db.InvalidateIndexes()
	return pillar, nil
}

// CascadeResult lists everything removed by a delete, the deleted root
// first in its own field. Callers use it to append per-entity events.
type CascadeResult struct {
	RemovedAreas    []string `json:"removedAreas,omitempty"`
	RemovedProjects []string `json:"removedProjects,omitempty"`
	RemovedTasks    []string `json:"removedTasks,omitempty"`
}

// DeletePillar removes a pillar and every descendant area, project, and
// task. The persisted navigation context is cleared eagerly when it points
// into the removed subtree.
func DeletePillar(db *store.DB, id string) (model.Pillar, CascadeResult, error) {
	id = strings.TrimSpace(id)
	pillar, ok := db.FindPillar(id)
	if !ok {
		return model.Pillar{}, CascadeResult{}, NotFoundError{Kind: "pillar", ID: id}
	}
	removed := *pillar

	var res CascadeResult
	for _, a := range db.AreasOf(id) {
		res.RemovedAreas = append(res.RemovedAreas, a.ID)
		for _, p := range db.ProjectsOf(a.ID) {
			res.RemovedProjects = append(res.RemovedProjects, p.ID)
			for _, t := range db.TasksOf(p.ID) {
				res.RemovedTasks = append(res.RemovedTasks, t.ID)
			}
		}
	}

	areaSet := toSet(res.RemovedAreas)
	projectSet := toSet(res.RemovedProjects)
	taskSet := toSet(res.RemovedTasks)

	db.Pillars = deleteByID(db.Pillars, func(p model.Pillar) string { return p.ID }, map[string]bool{id: true})
	db.Areas = deleteByID(db.Areas, func(a model.Area) string { return a.ID }, areaSet)
	db.Projects = deleteByID(db.Projects, func(p model.Project) string { return p.ID }, projectSet)
	db.Tasks = deleteByID(db.Tasks, func(t model.Task) string { return t.ID }, taskSet)
	db.InvalidateIndexes()

	clearContext(db, map[string]bool{id: true}, areaSet, projectSet)
	return removed, res, nil
}

func toSet(ids []string) map[string]bool {
	out := map[string]bool{}
	for _, id := range ids {
		out[id] = true
	}
	return out
}

func deleteByID[T any](xs []T, idOf func(T) string, drop map[string]bool) []T {
	if len(drop) == 0 {
		return xs
	}
	out := xs[:0]
	for _, x := range xs {
		if drop[idOf(x)] {
			continue
		}
		out = append(out, x)
	}
	return out
}

func clearContext(db *store.DB, pillars, areas, projects map[string]bool) {
	if pillars[db.Context.PillarID] {
		db.Context.PillarID = ""
		db.Context.AreaID = ""
		db.Context.ProjectID = ""
		return
	}
	if areas[db.Context.AreaID] {
		db.Context.AreaID = ""
		db.Context.ProjectID = ""
		return
	}
	if projects[db.Context.ProjectID] {
		db.Context.ProjectID = ""
	}
}
