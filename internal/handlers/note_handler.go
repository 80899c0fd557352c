package handlers

import (
	"errors"

	"notes/internal/middleware"
	"notes/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NoteHandler handles HTTP requests for notes. Every route requires authentication.
type NoteHandler struct {
	service  *services.NoteService
	validate *validator.Validate
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(service *services.NoteService) *NoteHandler {
	return &NoteHandler{
		service:  service,
		validate: newValidator(),
	}
}

// RegisterRoutes registers the note routes behind the auth middleware.
func (h *NoteHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/add-note", auth, h.HandleAddNote)
	router.Put("/edit-note/:noteId", auth, h.HandleEditNote)
	router.Get("/get-all-notes", auth, h.HandleGetAllNotes)
	router.Delete("/delete-note/:noteId", auth, h.HandleDeleteNote)
	router.Put("/update-note-pinned/:noteId", auth, h.HandleUpdatePinned)
	router.Get("/search-notes", auth, h.HandleSearchNotes)
}

// AddNoteRequest represents the request body for creating a note.
type AddNoteRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

var addNoteMessages = map[string]string{
	"title":   "Title is required",
	"content": "Content is required",
}

// EditNoteRequest represents the request body for editing a note.
type EditNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// PinNoteRequest represents the request body for pinning or unpinning a note.
type PinNoteRequest struct {
	IsPinned bool `json:"isPinned"`
}

func noteNotFound(c *fiber.Ctx, status int) error {
	return c.Status(status).JSON(fiber.Map{
		"error":   true,
		"message": "Note not found",
	})
}

// HandleAddNote creates a note owned by the authenticated user.
func (h *NoteHandler) HandleAddNote(c *fiber.Ctx) error {
	var req AddNoteRequest
	if err := parseBody(c, &req); err != nil {
		zap.L().Debug("error parsing add-note request body", zap.Error(err))
		return invalidBody(c)
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": validationMessage(err, addNoteMessages),
		})
	}

	userID := middleware.CurrentUserID(c)
	note, err := h.service.AddNote(c.UserContext(), userID, req.Title, req.Content)
	if err != nil {
		zap.L().Error("error saving note", zap.String("user_id", userID), zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"note":    note,
		"message": "Note added successfully",
	})
}

// HandleEditNote replaces the supplied fields of a note.
func (h *NoteHandler) HandleEditNote(c *fiber.Ctx) error {
	noteID := c.Params("noteId")
	var req EditNoteRequest
	if err := parseBody(c, &req); err != nil {
		zap.L().Debug("error parsing edit-note request body", zap.Error(err))
		return invalidBody(c)
	}

	if req.Title == "" && req.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "No changes provided",
		})
	}

	note, err := h.service.EditNote(c.UserContext(), noteID, middleware.CurrentUserID(c), req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			return noteNotFound(c, fiber.StatusBadRequest)
		}
		zap.L().Error("error updating note", zap.String("note_id", noteID), zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"note":    note,
		"message": "Note updated successfully",
	})
}

// HandleGetAllNotes lists every note of the authenticated user.
func (h *NoteHandler) HandleGetAllNotes(c *fiber.Ctx) error {
	notes, err := h.service.ListNotes(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		zap.L().Error("error listing notes", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"notes":   notes,
		"message": "All notes retrieved successfully",
	})
}

// HandleDeleteNote deletes a note of the authenticated user.
func (h *NoteHandler) HandleDeleteNote(c *fiber.Ctx) error {
	noteID := c.Params("noteId")
	if err := h.service.DeleteNote(c.UserContext(), noteID, middleware.CurrentUserID(c)); err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			return noteNotFound(c, fiber.StatusNotFound)
		}
		zap.L().Error("error deleting note", zap.String("note_id", noteID), zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Note deleted successfully",
	})
}

// HandleUpdatePinned sets the pinned flag of a note. false is a valid value.
func (h *NoteHandler) HandleUpdatePinned(c *fiber.Ctx) error {
	noteID := c.Params("noteId")
	var req PinNoteRequest
	if err := parseBody(c, &req); err != nil {
		zap.L().Debug("error parsing update-note-pinned request body", zap.Error(err))
		return invalidBody(c)
	}

	note, err := h.service.SetPinned(c.UserContext(), noteID, middleware.CurrentUserID(c), req.IsPinned)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			return noteNotFound(c, fiber.StatusBadRequest)
		}
		zap.L().Error("error pinning note", zap.String("note_id", noteID), zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"note":    note,
		"message": "Note updated successfully",
	})
}

// HandleSearchNotes returns the notes whose title or content contains the query.
func (h *NoteHandler) HandleSearchNotes(c *fiber.Ctx) error {
	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Search query is required",
		})
	}

	notes, err := h.service.SearchNotes(c.UserContext(), middleware.CurrentUserID(c), query)
	if err != nil {
		zap.L().Error("error searching notes", zap.Error(err))
		return internalError(c)
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"notes":   notes,
		"message": "Notes matching the search query retrived successfully", // spelling kept for existing clients
	})
}
