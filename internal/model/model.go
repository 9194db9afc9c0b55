package model

import "time"

type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectPaused    ProjectStatus = "paused"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Pillar is a top-level life domain (e.g. Health, Career).
// Health scores are derived on read; they are never persisted.
type Pillar struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Area is a sub-domain grouping within a Pillar.
type Area struct {
	ID          string    `json:"id"`
	PillarID    string    `json:"pillarId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	SortOrder   int       `json:"sortOrder"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Attachment is file metadata attached to a project. Aurum stores metadata
// only; the bytes live wherever the user keeps them.
type Attachment struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Mime    string    `json:"mime,omitempty"`
	Size    int64     `json:"size,omitempty"`
	AddedAt time.Time `json:"addedAt"`
}

type Project struct {
	ID          string        `json:"id"`
	AreaID      string        `json:"areaId"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      ProjectStatus `json:"status"`
	Priority    Priority      `json:"priority"`
	ImpactScore int           `json:"impactScore,omitempty"`
	DueDate     *time.Time    `json:"dueDate,omitempty"`
	Attachments []Attachment  `json:"attachments,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

type Task struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"projectId"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         TaskStatus `json:"status"`
	Priority       Priority   `json:"priority"`
	EstimatedHours float64    `json:"estimatedHours,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	CompletedAt    *time.Time `json:"completedAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// CaptureState is the quick-capture lifecycle. Items enter as captured,
// optionally gain pillar/area hints (categorized), and end as converted
// once a real Task exists for them.
type CaptureState string

const (
	CaptureCaptured    CaptureState = "captured"
	CaptureCategorized CaptureState = "categorized"
	CaptureConverted   CaptureState = "converted"
)

type CaptureKind string

const (
	CaptureNote CaptureKind = "note"
	CaptureIdea CaptureKind = "idea"
	CaptureTodo CaptureKind = "todo"
)

type CaptureItem struct {
	ID              string       `json:"id"`
	Content         string       `json:"content"`
	Kind            CaptureKind  `json:"kind"`
	State           CaptureState `json:"state"`
	SuggestedPillar string       `json:"suggestedPillar,omitempty"`
	SuggestedArea   string       `json:"suggestedArea,omitempty"`

	// TaskID back-references the Task produced by conversion.
	TaskID *string `json:"taskId,omitempty"`

	CapturedAt  time.Time  `json:"capturedAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

type Mood string

const (
	MoodOptimistic  Mood = "optimistic"
	MoodInspired    Mood = "inspired"
	MoodReflective  Mood = "reflective"
	MoodChallenging Mood = "challenging"
)

type JournalEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Mood      Mood      `json:"mood"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HierarchyContext is the drill-down selection used to scope navigation.
// Empty ids mean "no selection at that level". An area selection implies a
// pillar selection, and a project selection implies both.
type HierarchyContext struct {
	PillarID  string `json:"pillarId,omitempty"`
	AreaID    string `json:"areaId,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
}

type Event struct {
	ID       string    `json:"id"`
	TS       time.Time `json:"ts"`
	Type     string    `json:"type"`
	EntityID string    `json:"entityId"`
	Payload  any       `json:"payload"`
}
