package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"aurum-cli/internal/model"
)

const localDirName = ".aurum"

// DB is the in-memory hierarchy state. Entities live in flat tables keyed
// by id (Pillar -> Area -> Project -> Task via parent-id references); the
// tree shape is derived, never nested in storage.
type DB struct {
	Version int                    `json:"version"`
	Context model.HierarchyContext `json:"context"`
	NextIDs map[string]int         `json:"nextIds"`

	Pillars  []model.Pillar       `json:"pillars"`
	Areas    []model.Area         `json:"areas"`
	Projects []model.Project      `json:"projects"`
	Tasks    []model.Task         `json:"tasks"`
	Captures []model.CaptureItem  `json:"captures"`
	Journal  []model.JournalEntry `json:"journal"`

	// Derived child indexes for per-parent lookups. Not persisted; rebuilt
	// lazily and invalidated by structural mutations.
	idxBuilt          bool                       `json:"-"`
	idxAreasByPillar  map[string][]model.Area    `json:"-"`
	idxProjectsByArea map[string][]model.Project `json:"-"`
	idxTasksByProject map[string][]model.Task    `json:"-"`
}

// Store addresses one workspace directory on disk.
type Store struct {
	Dir string
}

func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, localDirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, localDirName), nil
}

func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

// localDir is where the SQLite state lives. When Dir already points at an
// `.aurum` dir (fixtures, discovery) it is used directly.
func (s Store) localDir() string {
	dir := filepath.Clean(s.Dir)
	if filepath.Base(dir) == localDirName {
		return dir
	}
	return filepath.Join(dir, localDirName)
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.localDir(), 0o755)
}

// StatePath is the on-disk SQLite file backing this workspace.
func (s Store) StatePath() string {
	return s.sqlitePath()
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	return s.loadSQLite(context.Background())
}

func (s Store) Save(db *DB) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	return s.saveSQLite(context.Background(), db)
}

func (s Store) AppendEvent(typ, entityID string, payload any) error {
	return s.appendEventSQLite(context.Background(), typ, entityID, payload)
}

// NextID returns prefix-<suffix> with a random suffix, retrying on the
// (unlikely) collision. NextIDs remains as a sequential fallback only.
func (s Store) NextID(db *DB, prefix string) string {
	for i := 0; i < 50; i++ {
		id, err := newRandomID(prefix)
		if err != nil {
			break
		}
		if !idExists(db, id) {
			return id
		}
	}
	if db.NextIDs == nil {
		db.NextIDs = map[string]int{}
	}
	db.NextIDs[prefix]++
	return fmt.Sprintf("%s-%d", prefix, db.NextIDs[prefix])
}

func (db *DB) FindPillar(id string) (*model.Pillar, bool) {
	for i := range db.Pillars {
		if db.Pillars[i].ID == id {
			return &db.Pillars[i], true
		}
	}
	return nil, false
}

func (db *DB) FindArea(id string) (*model.Area, bool) {
	for i := range db.Areas {
		if db.Areas[i].ID == id {
			return &db.Areas[i], true
		}
	}
	return nil, false
}

func (db *DB) FindProject(id string) (*model.Project, bool) {
	for i := range db.Projects {
		if db.Projects[i].ID == id {
			return &db.Projects[i], true
		}
	}
	return nil, false
}

func (db *DB) FindTask(id string) (*model.Task, bool) {
	for i := range db.Tasks {
		if db.Tasks[i].ID == id {
			return &db.Tasks[i], true
		}
	}
	return nil, false
}

func (db *DB) FindCapture(id string) (*model.CaptureItem, bool) {
	for i := range db.Captures {
		if db.Captures[i].ID == id {
			return &db.Captures[i], true
		}
	}
	return nil, false
}

func (db *DB) FindJournalEntry(id string) (*model.JournalEntry, bool) {
	for i := range db.Journal {
		if db.Journal[i].ID == id {
			return &db.Journal[i], true
		}
	}
	return nil, false
}

func (db *DB) ensureIndexes() {
	if db == nil || db.idxBuilt {
		return
	}
	db.idxAreasByPillar = map[string][]model.Area{}
	db.idxProjectsByArea = map[string][]model.Project{}
	db.idxTasksByProject = map[string][]model.Task{}

	for _, a := range db.Areas {
		pid := strings.TrimSpace(a.PillarID)
		if pid == "" {
			continue
		}
		db.idxAreasByPillar[pid] = append(db.idxAreasByPillar[pid], a)
	}
	for _, p := range db.Projects {
		aid := strings.TrimSpace(p.AreaID)
		if aid == "" {
			continue
		}
		db.idxProjectsByArea[aid] = append(db.idxProjectsByArea[aid], p)
	}
	for _, t := range db.Tasks {
		pid := strings.TrimSpace(t.ProjectID)
		if pid == "" {
			continue
		}
		db.idxTasksByProject[pid] = append(db.idxTasksByProject[pid], t)
	}

	db.idxBuilt = true
}

// InvalidateIndexes drops the derived child indexes. The mutate layer calls
// this after any structural change (create/delete/move).
func (db *DB) InvalidateIndexes() {
	if db == nil {
		return
	}
	db.idxBuilt = false
	db.idxAreasByPillar = nil
	db.idxProjectsByArea = nil
	db.idxTasksByProject = nil
}

func (db *DB) AreasOf(pillarID string) []model.Area {
	if db == nil {
		return nil
	}
	db.ensureIndexes()
	return db.idxAreasByPillar[strings.TrimSpace(pillarID)]
}

func (db *DB) ProjectsOf(areaID string) []model.Project {
	if db == nil {
		return nil
	}
	db.ensureIndexes()
	return db.idxProjectsByArea[strings.TrimSpace(areaID)]
}

func (db *DB) TasksOf(projectID string) []model.Task {
	if db == nil {
		return nil
	}
	db.ensureIndexes()
	return db.idxTasksByProject[strings.TrimSpace(projectID)]
}

// TasksUnderArea flattens all leaf tasks below an area.
func (db *DB) TasksUnderArea(areaID string) []model.Task {
	var out []model.Task
	for _, p := range db.ProjectsOf(areaID) {
		out = append(out, db.TasksOf(p.ID)...)
	}
	return out
}

// TasksUnderPillar flattens all leaf tasks below a pillar.
func (db *DB) TasksUnderPillar(pillarID string) []model.Task {
	var out []model.Task
	for _, a := range db.AreasOf(pillarID) {
		out = append(out, db.TasksUnderArea(a.ID)...)
	}
	return out
}
