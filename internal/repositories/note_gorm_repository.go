package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"notes/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// likeEscape is the escape character used in LIKE patterns. A backslash is not
// portable: MySQL already treats it as a string-literal escape.
const likeEscape = "!"

var likeReplacer = strings.NewReplacer(
	likeEscape, likeEscape+likeEscape,
	"%", likeEscape+"%",
	"_", likeEscape+"_",
)

// GORMNoteRepository is a GORM implementation of NoteRepository.
type GORMNoteRepository struct {
	db *gorm.DB
}

// NewGORMNoteRepository creates a new instance of GORMNoteRepository.
func NewGORMNoteRepository(db *gorm.DB) *GORMNoteRepository {
	return &GORMNoteRepository{
		db: db,
	}
}

// Create creates a new note in the database.
func (r *GORMNoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.Seq == 0 {
		note.Seq = nextNoteSeq()
	}
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

// GetByID retrieves a note owned by userID.
func (r *GORMNoteRepository) GetByID(ctx context.Context, id, userID string) (*models.Note, error) {
	var note models.Note
	err := r.db.WithContext(ctx).First(&note, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("note with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get note by ID %s: %w", id, err)
	}
	return &note, nil
}

// ListByUser retrieves all notes owned by userID in creation order.
func (r *GORMNoteRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_on ASC, seq ASC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list notes for user %s: %w", userID, err)
	}
	return notes, nil
}

// Search retrieves the notes owned by userID whose title or content contains
// query, ignoring case. The query is matched literally.
func (r *GORMNoteRepository) Search(ctx context.Context, userID, query string) ([]models.Note, error) {
	pattern := "%" + likeReplacer.Replace(strings.ToLower(query)) + "%"
	cond := "LOWER(%s) LIKE ? ESCAPE '" + likeEscape + "'"

	notes := make([]models.Note, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(r.db.Where(fmt.Sprintf(cond, "title"), pattern).Or(fmt.Sprintf(cond, "content"), pattern)).
		Order("created_on ASC, seq ASC").
		Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search notes for user %s: %w", userID, err)
	}
	return notes, nil
}

// Update writes the mutable fields of note back to the database.
func (r *GORMNoteRepository) Update(ctx context.Context, note *models.Note) error {
	// A map is used so that zero values (an unpinned note) are written too.
	res := r.db.WithContext(ctx).
		Model(&models.Note{}).
		Where("id = ? AND user_id = ?", note.ID, note.UserID).
		Updates(map[string]interface{}{
			"title":     note.Title,
			"content":   note.Content,
			"is_pinned": note.IsPinned,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to update note %s: %w", note.ID, res.Error)
	}
	return nil
}

// Delete removes a note owned by userID.
func (r *GORMNoteRepository) Delete(ctx context.Context, id, userID string) error {
	res := r.db.WithContext(ctx).Delete(&models.Note{}, "id = ? AND user_id = ?", id, userID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("note with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
