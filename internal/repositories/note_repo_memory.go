package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"notes/internal/models"

	"github.com/google/uuid"
)

// InMemoryNoteRepository is an in-memory implementation of NoteRepository.
type InMemoryNoteRepository struct {
	notes map[string]models.Note
	order []string // note IDs in insertion order
	mu    sync.RWMutex
}

// NewInMemoryNoteRepository creates a new instance of InMemoryNoteRepository.
func NewInMemoryNoteRepository() *InMemoryNoteRepository {
	return &InMemoryNoteRepository{
		notes: make(map[string]models.Note),
	}
}

// Create adds a new note.
func (r *InMemoryNoteRepository) Create(_ context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if _, ok := r.notes[note.ID]; ok {
		return fmt.Errorf("note with ID %s: %w", note.ID, ErrAlreadyExists)
	}
	if note.CreatedOn.IsZero() {
		note.CreatedOn = time.Now()
	}
	if note.Seq == 0 {
		note.Seq = nextNoteSeq()
	}
	r.notes[note.ID] = *note
	r.order = append(r.order, note.ID)
	return nil
}

// GetByID returns a note owned by userID.
func (r *InMemoryNoteRepository) GetByID(_ context.Context, id, userID string) (*models.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	note, ok := r.notes[id]
	if !ok || note.UserID != userID {
		return nil, fmt.Errorf("note with ID %s: %w", id, ErrNotFound)
	}
	return &note, nil
}

// ListByUser returns all notes owned by userID in insertion order.
func (r *InMemoryNoteRepository) ListByUser(_ context.Context, userID string) ([]models.Note, error) {
	return r.filter(func(n models.Note) bool { return n.UserID == userID }), nil
}

// Search returns the notes owned by userID whose title or content contains query, ignoring case.
func (r *InMemoryNoteRepository) Search(_ context.Context, userID, query string) ([]models.Note, error) {
	q := strings.ToLower(query)
	return r.filter(func(n models.Note) bool {
		return n.UserID == userID &&
			(strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q))
	}), nil
}

// Update modifies an existing note.
func (r *InMemoryNoteRepository) Update(_ context.Context, note *models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.notes[note.ID]
	if !ok || existing.UserID != note.UserID {
		return fmt.Errorf("note with ID %s not found for update: %w", note.ID, ErrNotFound)
	}
	existing.Title = note.Title
	existing.Content = note.Content
	existing.IsPinned = note.IsPinned
	r.notes[note.ID] = existing
	return nil
}

// Delete removes a note owned by userID.
func (r *InMemoryNoteRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	note, ok := r.notes[id]
	if !ok || note.UserID != userID {
		return fmt.Errorf("note with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	delete(r.notes, id)
	for i, noteID := range r.order {
		if noteID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *InMemoryNoteRepository) filter(keep func(models.Note) bool) []models.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	noteList := make([]models.Note, 0)
	for _, id := range r.order {
		if n := r.notes[id]; keep(n) {
			noteList = append(noteList, n)
		}
	}
	return noteList
}
