package repositories

import (
	"context"
	"sync/atomic"
	"time"

	"notes/internal/models"
)

// NoteRepository defines the interface for note data access.
// Every lookup is scoped by the owning user's ID.
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	GetByID(ctx context.Context, id, userID string) (*models.Note, error)
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)
	Search(ctx context.Context, userID, query string) ([]models.Note, error)
	Update(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id, userID string) error
}

var lastNoteSeq atomic.Int64

// nextNoteSeq returns a strictly increasing value for models.Note.Seq.
func nextNoteSeq() int64 {
	for {
		last := lastNoteSeq.Load()
		next := time.Now().UnixNano()
		if next <= last {
			next = last + 1
		}
		if lastNoteSeq.CompareAndSwap(last, next) {
			return next
		}
	}
}
