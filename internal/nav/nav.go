// Package nav manages the drill-down hierarchy context: the currently
// selected pillar/area/project that scopes navigation and filtered views.
//
// The context is persisted with the workspace state but is never trusted
// on read: Resolve re-validates every id against the live store, so a
// selection can never outlive the entity it points at.
package nav

import (
	"fmt"
	"strings"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// Level is the depth of the current selection.
type Level int

const (
	LevelNone Level = iota
	LevelPillar
	LevelArea
	LevelProject
)

func (l Level) String() string {
	switch l {
	case LevelPillar:
		return "pillar"
	case LevelArea:
		return "area"
	case LevelProject:
		return "project"
	default:
		return "none"
	}
}

func ContextLevel(ctx model.HierarchyContext) Level {
	switch {
	case strings.TrimSpace(ctx.ProjectID) != "":
		return LevelProject
	case strings.TrimSpace(ctx.AreaID) != "":
		return LevelArea
	case strings.TrimSpace(ctx.PillarID) != "":
		return LevelPillar
	default:
		return LevelNone
	}
}

// ToPillar selects a pillar and clears any deeper selection.
func ToPillar(db *store.DB, pillarID string) error {
	pillarID = strings.TrimSpace(pillarID)
	if _, ok := db.FindPillar(pillarID); !ok {
		return NotFoundError{Kind: "pillar", ID: pillarID}
	}
	db.Context = model.HierarchyContext{PillarID: pillarID}
	return nil
}

// ToArea selects an area; the pillar selection is derived from the area's
// actual parent so the composed context is always consistent.
func ToArea(db *store.DB, areaID string) error {
	areaID = strings.TrimSpace(areaID)
	area, ok := db.FindArea(areaID)
	if !ok {
		return NotFoundError{Kind: "area", ID: areaID}
	}
	db.Context = model.HierarchyContext{PillarID: area.PillarID, AreaID: areaID}
	return nil
}

// ToProject selects a project, deriving the area and pillar from the live
// tree.
func ToProject(db *store.DB, projectID string) error {
	projectID = strings.TrimSpace(projectID)
	project, ok := db.FindProject(projectID)
	if !ok {
		return NotFoundError{Kind: "project", ID: projectID}
	}
	ctx := model.HierarchyContext{ProjectID: projectID, AreaID: project.AreaID}
	if area, ok := db.FindArea(project.AreaID); ok {
		ctx.PillarID = area.PillarID
	}
	db.Context = ctx
	return nil
}

// Reset returns to the top level.
func Reset(db *store.DB) {
	db.Context = model.HierarchyContext{}
}

// Resolve validates the persisted context against the live store and
// returns a context guaranteed to reference existing, correctly-parented
// entities. A dangling id truncates the selection at that level. Resolve
// does not mutate db; callers that want the cleaned context persisted
// assign the result back.
func Resolve(db *store.DB) model.HierarchyContext {
	var out model.HierarchyContext

	pid := strings.TrimSpace(db.Context.PillarID)
	if pid == "" {
		return out
	}
	if _, ok := db.FindPillar(pid); !ok {
		return out
	}
	out.PillarID = pid

	aid := strings.TrimSpace(db.Context.AreaID)
	if aid == "" {
		return out
	}
	area, ok := db.FindArea(aid)
	if !ok || area.PillarID != pid {
		return out
	}
	out.AreaID = aid

	prid := strings.TrimSpace(db.Context.ProjectID)
	if prid == "" {
		return out
	}
	project, ok := db.FindProject(prid)
	if !ok || project.AreaID != aid {
		return out
	}
	out.ProjectID = prid
	return out
}

type Crumb struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Breadcrumb renders the resolved context as an ordered trail.
func Breadcrumb(db *store.DB) []Crumb {
	ctx := Resolve(db)
	out := []Crumb{}
	if ctx.PillarID != "" {
		if p, ok := db.FindPillar(ctx.PillarID); ok {
			out = append(out, Crumb{Kind: "pillar", ID: p.ID, Name: p.Name})
		}
	}
	if ctx.AreaID != "" {
		if a, ok := db.FindArea(ctx.AreaID); ok {
			out = append(out, Crumb{Kind: "area", ID: a.ID, Name: a.Name})
		}
	}
	if ctx.ProjectID != "" {
		if p, ok := db.FindProject(ctx.ProjectID); ok {
			out = append(out, Crumb{Kind: "project", ID: p.ID, Name: p.Name})
		}
	}
	return out
}
