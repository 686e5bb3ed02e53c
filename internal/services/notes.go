package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/yungbote/notequiz-backend/internal/platform/apierr"
	"github.com/yungbote/notequiz-backend/internal/platform/extract"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
)

// NotesService extracts text from a one-off upload. Nothing is stored.
type NotesService interface {
	ExtractNotes(ctx context.Context, fileName string, data []byte) (string, error)
}

type notesService struct {
	log *logger.Logger
}

func NewNotesService(log *logger.Logger) NotesService {
	return &notesService{log: log.With("service", "NotesService")}
}

func (s *notesService) ExtractNotes(ctx context.Context, fileName string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apierr.BadRequest("missing_file", "No file uploaded")
	}
	switch extract.Detect(fileName, "", data) {
	case extract.KindPDF, extract.KindDOCX:
	default:
		return "", apierr.BadRequest("unsupported_file_type", "Unsupported file type")
	}

	text, err := extract.Text(fileName, "", data)
	if err != nil {
		if errors.Is(err, extract.ErrNoText) {
			// a valid document without a text layer is not an error for the caller
			return "", nil
		}
		s.log.Warn("Notes extraction failed", "file_name", fileName, "error", err)
		return "", apierr.New(http.StatusInternalServerError, "extraction_failed", err).
			WithMessage("Internal server error").
			WithDetails(err.Error())
	}
	return text, nil
}
