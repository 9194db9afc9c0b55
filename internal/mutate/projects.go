package mutate

import (
	"strings"
	"time"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

type CreateProjectParams struct {
	AreaID      string
	Name        string
	Description string
	Status      model.ProjectStatus
	Priority    model.Priority
	ImpactScore int
	DueDate     *time.Time
}

func CreateProject(db *store.DB, nextID func(prefix string) string, p CreateProjectParams) (model.Project, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return model.Project{}, ErrEmptyName
	}
	areaID := strings.TrimSpace(p.AreaID)
	if _, ok := db.FindArea(areaID); !ok {
		return model.Project{}, NotFoundError{Kind: "area", ID: areaID}
	}
	status := p.Status
	if status == "" {
		status = model.ProjectPlanning
	}
	priority := p.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	now := time.Now().UTC()
	project := model.Project{
		ID:          nextID("proj"),
		AreaID:      areaID,
		Name:        name,
		Description: strings.TrimSpace(p.Description),
		Status:      status,
		Priority:    priority,
		ImpactScore: p.ImpactScore,
		DueDate:     p.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	db.Projects = append(db.Projects, project)
	db.InvalidateIndexes()
	return project, nil
}

type UpdateProjectParams struct {
	AreaID      *string
	Name        *string
	Description *string
	Status      *model.ProjectStatus
	Priority    *model.Priority
	ImpactScore *int
	DueDate     *time.Time
	ClearDue    bool
}

func UpdateProject(db *store.DB, id string, p UpdateProjectParams) (*model.Project, error) {
	project, ok := db.FindProject(strings.TrimSpace(id))
	if !ok {
		return nil, NotFoundError{Kind: "project", ID: id}
	}
	if p.AreaID != nil {
		aid := strings.TrimSpace(*p.AreaID)
		if _, ok := db.FindArea(aid); !ok {
			return nil, NotFoundError{Kind: "area", ID: aid}
		}
		project.AreaID = aid
	}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		project.Name = name
	}
	if p.Description != nil {
		project.Description = strings.TrimSpace(*p.Description)
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
	if p.Priority != nil {
		project.Priority = *p.Priority
	}
	if p.ImpactScore != nil {
		project.ImpactScore = *p.ImpactScore
	}
	if p.ClearDue {
		project.DueDate = nil
	} else if p.DueDate != nil {
		project.DueDate = p.DueDate
	}
	project.UpdatedAt = time.Now().UTC()
	// Cached copies in the per-area index would otherwise keep the old
	// field values.
	db.InvalidateIndexes()
	return project, nil
}

// AddAttachment records attachment metadata on a project. Aurum never
// touches the referenced bytes.
func AddAttachment(db *store.DB, nextID func(prefix string) string, projectID, name, mime string, size int64) (*model.Project, model.Attachment, error) {
	project, ok := db.FindProject(strings.TrimSpace(projectID))
	if !ok {
		return nil, model.Attachment{}, NotFoundError{Kind: "project", ID: projectID}
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.Attachment{}, ErrEmptyName
	}
	att := model.Attachment{
		ID:      nextID("att"),
		Name:    name,
		Mime:    strings.TrimSpace(mime),
		Size:    size,
		AddedAt: time.Now().UTC(),
	}
	project.Attachments = append(project.Attachments, att)
	project.UpdatedAt = att.AddedAt
	db.InvalidateIndexes()
	return project, att, nil
}

// DeleteProject removes a project and its tasks.
func DeleteProject(db *store.DB, id string) (model.Project, CascadeResult, error) {
	id = strings.TrimSpace(id)
	project, ok := db.FindProject(id)
	if !ok {
		return model.Project{}, CascadeResult{}, NotFoundError{Kind: "project", ID: id}
	}
	removed := *project

	var res CascadeResult
	for _, t := range db.TasksOf(id) {
		res.RemovedTasks = append(res.RemovedTasks, t.ID)
	}
	taskSet := toSet(res.RemovedTasks)

	db.Projects = deleteByID(db.Projects, func(p model.Project) string { return p.ID }, map[string]bool{id: true})
	db.Tasks = deleteByID(db.Tasks, func(t model.Task) string { return t.ID }, taskSet)
	db.InvalidateIndexes()

	clearContext(db, nil, nil, map[string]bool{id: true})
	return removed, res, nil
}
