package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/notequiz-backend/internal/http/response"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/services"
)

type NotesHandler struct {
	log   *logger.Logger
	notes services.NotesService
}

func NewNotesHandler(log *logger.Logger, notes services.NotesService) *NotesHandler {
	return &NotesHandler{log: log.With("handler", "NotesHandler"), notes: notes}
}

// POST /api/upload-notes (multipart: file)
func (h *NotesHandler) Upload(c *gin.Context) {
	fh, data, ok := readUpload(c)
	if !ok {
		return
	}
	text, err := h.notes.ExtractNotes(c.Request.Context(), fh.Filename, data)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"text": text})
}
