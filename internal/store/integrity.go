package store

import (
	"fmt"
	"strings"
)

// Problem is one referential-integrity finding. Kind is a stable machine
// id; Detail is a human explanation.
type Problem struct {
	Kind     string `json:"kind"`
	EntityID string `json:"entityId,omitempty"`
	Detail   string `json:"detail"`
}

// CheckIntegrity scans the hierarchy for broken parent references,
// capture back-reference breaks, and stale navigation context. The mutate
// layer validates parents at insert time, so findings here indicate either
// an external writer or a bug.
func CheckIntegrity(db *DB) []Problem {
	var out []Problem
	if db == nil {
		return out
	}

	for _, a := range db.Areas {
		if _, ok := db.FindPillar(a.PillarID); !ok {
			out = append(out, Problem{
				Kind:     "area.orphan",
				EntityID: a.ID,
				Detail:   fmt.Sprintf("area %s references missing pillar %s", a.ID, a.PillarID),
			})
		}
	}
	for _, p := range db.Projects {
		if _, ok := db.FindArea(p.AreaID); !ok {
			out = append(out, Problem{
				Kind:     "project.orphan",
				EntityID: p.ID,
				Detail:   fmt.Sprintf("project %s references missing area %s", p.ID, p.AreaID),
			})
		}
	}
	for _, t := range db.Tasks {
		if _, ok := db.FindProject(t.ProjectID); !ok {
			out = append(out, Problem{
				Kind:     "task.orphan",
				EntityID: t.ID,
				Detail:   fmt.Sprintf("task %s references missing project %s", t.ID, t.ProjectID),
			})
		}
	}

	for _, c := range db.Captures {
		switch c.State {
		case "converted":
			if c.TaskID == nil || strings.TrimSpace(*c.TaskID) == "" {
				out = append(out, Problem{
					Kind:     "capture.missing_task_ref",
					EntityID: c.ID,
					Detail:   fmt.Sprintf("capture %s is converted but has no task back-reference", c.ID),
				})
				continue
			}
			if _, ok := db.FindTask(*c.TaskID); !ok {
				out = append(out, Problem{
					Kind:     "capture.dangling_task_ref",
					EntityID: c.ID,
					Detail:   fmt.Sprintf("capture %s references missing task %s", c.ID, *c.TaskID),
				})
			}
		default:
			if c.TaskID != nil && strings.TrimSpace(*c.TaskID) != "" {
				out = append(out, Problem{
					Kind:     "capture.premature_task_ref",
					EntityID: c.ID,
					Detail:   fmt.Sprintf("capture %s has a task back-reference but state %q", c.ID, c.State),
				})
			}
		}
	}

	if id := strings.TrimSpace(db.Context.PillarID); id != "" {
		if _, ok := db.FindPillar(id); !ok {
			out = append(out, Problem{
				Kind:     "nav.stale_pillar",
				EntityID: id,
				Detail:   fmt.Sprintf("navigation context references missing pillar %s", id),
			})
		}
	}
	if id := strings.TrimSpace(db.Context.AreaID); id != "" {
		if _, ok := db.FindArea(id); !ok {
			out = append(out, Problem{
				Kind:     "nav.stale_area",
				EntityID: id,
				Detail:   fmt.Sprintf("navigation context references missing area %s", id),
			})
		}
	}
	if id := strings.TrimSpace(db.Context.ProjectID); id != "" {
		if _, ok := db.FindProject(id); !ok {
			out = append(out, Problem{
				Kind:     "nav.stale_project",
				EntityID: id,
				Detail:   fmt.Sprintf("navigation context references missing project %s", id),
			})
		}
	}

	return out
}
