package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"notes/internal/models"
	"notes/internal/repositories"

	"go.uber.org/zap"
)

// ErrNoteNotFound is returned when a note does not exist or is owned by someone else.
var ErrNoteNotFound = errors.New("note not found")

// Routing keys of the note lifecycle events.
const (
	EventNoteCreated = "note.created"
	EventNoteUpdated = "note.updated"
	EventNotePinned  = "note.pinned"
	EventNoteDeleted = "note.deleted"
)

// NotesExchange is the broker exchange note events are published to.
const NotesExchange = "notes"

// EventPublisher publishes a message body under a routing key.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// NoteEvent is the message published for every note mutation.
type NoteEvent struct {
	Event  string    `json:"event"`
	NoteID string    `json:"noteId"`
	UserID string    `json:"userId"`
	At     time.Time `json:"at"`
}

// NoteService handles business logic related to notes. All operations are
// scoped to the owning user.
type NoteService struct {
	repo      repositories.NoteRepository
	publisher EventPublisher // may be nil
}

// NewNoteService creates a new NoteService. publisher may be nil, in which
// case no events are published.
func NewNoteService(repo repositories.NoteRepository, publisher EventPublisher) *NoteService {
	return &NoteService{
		repo:      repo,
		publisher: publisher,
	}
}

// AddNote creates a new unpinned note owned by userID.
func (s *NoteService) AddNote(ctx context.Context, userID, title, content string) (*models.Note, error) {
	note := &models.Note{
		Title:   title,
		Content: content,
		UserID:  userID,
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}
	s.publish(EventNoteCreated, note)
	return note, nil
}

// EditNote replaces the title and/or content of a note. Empty values leave the
// current field unchanged.
func (s *NoteService) EditNote(ctx context.Context, noteID, userID, title, content string) (*models.Note, error) {
	note, err := s.get(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		note.Title = title
	}
	if content != "" {
		note.Content = content
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	s.publish(EventNoteUpdated, note)
	return note, nil
}

// SetPinned sets the pinned flag of a note.
func (s *NoteService) SetPinned(ctx context.Context, noteID, userID string, pinned bool) (*models.Note, error) {
	note, err := s.get(ctx, noteID, userID)
	if err != nil {
		return nil, err
	}

	note.IsPinned = pinned
	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}
	s.publish(EventNotePinned, note)
	return note, nil
}

// ListNotes returns every note owned by userID.
func (s *NoteService) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	return s.repo.ListByUser(ctx, userID)
}

// SearchNotes returns the notes of userID whose title or content contains query.
func (s *NoteService) SearchNotes(ctx context.Context, userID, query string) ([]models.Note, error) {
	return s.repo.Search(ctx, userID, query)
}

// DeleteNote removes a note owned by userID.
func (s *NoteService) DeleteNote(ctx context.Context, noteID, userID string) error {
	note, err := s.get(ctx, noteID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, noteID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNoteNotFound
		}
		return err
	}
	s.publish(EventNoteDeleted, note)
	return nil
}

func (s *NoteService) get(ctx context.Context, noteID, userID string) (*models.Note, error) {
	note, err := s.repo.GetByID(ctx, noteID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note %s: %w", noteID, err)
	}
	return note, nil
}

// publish sends a lifecycle event. Failures are logged and never fail the request.
func (s *NoteService) publish(event string, note *models.Note) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(NoteEvent{
		Event:  event,
		NoteID: note.ID,
		UserID: note.UserID,
		At:     time.Now().UTC(),
	})
	if err != nil {
		zap.L().Warn("failed to marshal note event", zap.String("event", event), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(NotesExchange, event, body); err != nil {
		zap.L().Warn("failed to publish note event",
			zap.String("event", event),
			zap.String("note_id", note.ID),
			zap.Error(err),
		)
	}
}
