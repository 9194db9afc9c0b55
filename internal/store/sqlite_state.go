package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"aurum-cli/internal/model"
)

func (s Store) loadSQLite(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return nil, err
	}
	return loadStateFromSQLite(ctx, db)
}

func (s Store) saveSQLite(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrateSQLiteState(ctx, db); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	meta := map[string]string{
		"version":            strconv.Itoa(st.Version),
		"context_pillar_id":  strings.TrimSpace(st.Context.PillarID),
		"context_area_id":    strings.TrimSpace(st.Context.AreaID),
		"context_project_id": strings.TrimSpace(st.Context.ProjectID),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	// Replace-all strategy: simple and safe for a single-writer local store.
	tables := []string{"pillars", "areas", "projects", "tasks", "captures", "journal"}
	for _, t := range tables {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, p := range st.Pillars {
		raw, _ := json.Marshal(p)
		if _, err := tx.ExecContext(ctx, `INSERT INTO pillars(id, name, sort_order, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.SortOrder, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, a := range st.Areas {
		raw, _ := json.Marshal(a)
		if _, err := tx.ExecContext(ctx, `INSERT INTO areas(id, pillar_id, name, sort_order, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
			a.ID, a.PillarID, a.Name, a.SortOrder, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, p := range st.Projects {
		raw, _ := json.Marshal(p)
		due := ""
		if p.DueDate != nil {
			due = p.DueDate.UTC().Format("2006-01-02")
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO projects(id, area_id, name, status, priority, due_date, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.AreaID, p.Name, string(p.Status), string(p.Priority), due, string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, t := range st.Tasks {
		raw, _ := json.Marshal(t)
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.UTC().Format("2006-01-02")
		}
		tagsJSON, _ := json.Marshal(t.Tags)
		if _, err := tx.ExecContext(ctx, `INSERT INTO tasks(
			id, project_id, name, status, priority,
			due_date, tags_json,
			json, updated_at_unixms
		) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, t.ProjectID, t.Name, string(t.Status), string(t.Priority),
			due, string(tagsJSON),
			string(raw), nowMs,
		); err != nil {
			return err
		}
	}
	for _, c := range st.Captures {
		raw, _ := json.Marshal(c)
		taskID := ""
		if c.TaskID != nil {
			taskID = strings.TrimSpace(*c.TaskID)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO captures(id, state, kind, task_id, captured_at_unixms, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?)`,
			c.ID, string(c.State), string(c.Kind), taskID, c.CapturedAt.UTC().UnixMilli(), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, j := range st.Journal {
		raw, _ := json.Marshal(j)
		if _, err := tx.ExecContext(ctx, `INSERT INTO journal(id, mood, created_at_unixms, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			j.ID, string(j.Mood), j.CreatedAt.UTC().UnixMilli(), string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS pillars (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS areas (
			id TEXT PRIMARY KEY,
			pillar_id TEXT NOT NULL,
			name TEXT NOT NULL,
			sort_order INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_areas_pillar ON areas(pillar_id);`,
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			area_id TEXT NOT NULL,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			due_date TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_projects_area ON projects(area_id);`,
		`CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);`,
		`CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			priority TEXT NOT NULL,
			due_date TEXT NOT NULL,
			tags_json TEXT NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project_id);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(due_date);`,
		`CREATE TABLE IF NOT EXISTS captures (
			id TEXT PRIMARY KEY,
			state TEXT NOT NULL,
			kind TEXT NOT NULL,
			task_id TEXT NOT NULL,
			captured_at_unixms INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_captures_state ON captures(state);`,
		`CREATE TABLE IF NOT EXISTS journal (
			id TEXT PRIMARY KEY,
			mood TEXT NOT NULL,
			created_at_unixms INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_created ON journal(created_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func loadStateFromSQLite(ctx context.Context, db *sql.DB) (*DB, error) {
	out := &DB{Version: 1, NextIDs: map[string]int{}}

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	out.Context = model.HierarchyContext{
		PillarID:  readMeta("context_pillar_id"),
		AreaID:    readMeta("context_area_id"),
		ProjectID: readMeta("context_project_id"),
	}

	if xs, err := readJSONRows[model.Pillar](ctx, db, `SELECT json FROM pillars ORDER BY sort_order, id`); err == nil {
		out.Pillars = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Area](ctx, db, `SELECT json FROM areas ORDER BY sort_order, id`); err == nil {
		out.Areas = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Project](ctx, db, `SELECT json FROM projects ORDER BY id`); err == nil {
		out.Projects = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.Task](ctx, db, `SELECT json FROM tasks ORDER BY id`); err == nil {
		out.Tasks = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.CaptureItem](ctx, db, `SELECT json FROM captures ORDER BY captured_at_unixms, id`); err == nil {
		out.Captures = xs
	} else {
		return nil, err
	}
	if xs, err := readJSONRows[model.JournalEntry](ctx, db, `SELECT json FROM journal ORDER BY created_at_unixms, id`); err == nil {
		out.Journal = xs
	} else {
		return nil, err
	}

	// Keep nil slices empty for stable callers.
	if out.Pillars == nil {
		out.Pillars = []model.Pillar{}
	}
	if out.Areas == nil {
		out.Areas = []model.Area{}
	}
	if out.Projects == nil {
		out.Projects = []model.Project{}
	}
	if out.Tasks == nil {
		out.Tasks = []model.Task{}
	}
	if out.Captures == nil {
		out.Captures = []model.CaptureItem{}
	}
	if out.Journal == nil {
		out.Journal = []model.JournalEntry{}
	}

	return out, nil
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
