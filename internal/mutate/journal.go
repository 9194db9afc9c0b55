package mutate

import (
	"strings"
	"time"

	"aurum-cli/internal/model"
	"aurum-cli/internal/store"
)

type CreateJournalParams struct {
	Title   string
	Content string
	Mood    model.Mood
	Tags    []string
}

func CreateJournalEntry(db *store.DB, nextID func(prefix string) string, p CreateJournalParams) (model.JournalEntry, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return model.JournalEntry{}, ErrEmptyName
	}
	mood := p.Mood
	if mood == "" {
		mood = model.MoodReflective
	}
	now := time.Now().UTC()
	entry := model.JournalEntry{
		ID:        nextID("note"),
		Title:     title,
		Content:   p.Content,
		Mood:      mood,
		Tags:      store.NormalizeTags(p.Tags),
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.Journal = append(db.Journal, entry)
	return entry, nil
}

type UpdateJournalParams struct {
	Title   *string
	Content *string
	Mood    *model.Mood
	Tags    []string
}

func UpdateJournalEntry(db *store.DB, id string, p UpdateJournalParams) (*model.JournalEntry, error) {
	entry, ok := db.FindJournalEntry(strings.TrimSpace(id))
	if !ok {
		return nil, NotFoundError{Kind: "journal entry", ID: id}
	}
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return nil, ErrEmptyName
		}
		entry.Title = title
	}
	if p.Content != nil {
		entry.Content = *p.Content
	}
	if p.Mood != nil {
		entry.Mood = *p.Mood
	}
	if p.Tags != nil {
		entry.Tags = store.NormalizeTags(p.Tags)
	}
	entry.UpdatedAt = time.Now().UTC()
	return entry, nil
}

func DeleteJournalEntry(db *store.DB, id string) (model.JournalEntry, error) {
	id = strings.TrimSpace(id)
	entry, ok := db.FindJournalEntry(id)
	if !ok {
		return model.JournalEntry{}, NotFoundError{Kind: "journal entry", ID: id}
	}
	removed := *entry
	db.Journal = deleteByID(db.Journal, func(j model.JournalEntry) string { return j.ID }, map[string]bool{id: true})
	return removed, nil
}
