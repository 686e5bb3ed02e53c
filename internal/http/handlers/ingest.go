package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/notequiz-backend/internal/http/response"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/services"
)

type IngestHandler struct {
	log       *logger.Logger
	ingestion services.IngestionService
}

func NewIngestHandler(log *logger.Logger, ingestion services.IngestionService) *IngestHandler {
	return &IngestHandler{log: log.With("handler", "IngestHandler"), ingestion: ingestion}
}

// POST /api/ingest (multipart: file, userId)
func (h *IngestHandler) Upload(c *gin.Context) {
	fh, data, ok := readUpload(c)
	if !ok {
		return
	}
	userID, ok := resolveUser(c, c.PostForm("userId"))
	if !ok {
		return
	}

	file, err := h.ingestion.Ingest(c.Request.Context(), services.IngestInput{
		UserID:      userID,
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        data,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "file": file})
}

// GET /api/ingest
func (h *IngestHandler) List(c *gin.Context) {
	userID, ok := resolveUser(c, c.Query("userId"))
	if !ok {
		return
	}
	files, err := h.ingestion.ListFiles(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "files": files})
}

// POST /api/ingest/:id/extract
func (h *IngestHandler) Extract(c *gin.Context) {
	userID, ok := resolveUser(c, c.Query("userId"))
	if !ok {
		return
	}
	fileID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || fileID <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_file_id", errors.New("invalid file id"))
		return
	}
	text, err := h.ingestion.ExtractFile(c.Request.Context(), userID, fileID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"success": true, "fileId": fileID, "text": text})
}

// readUpload pulls the "file" part fully into memory. The body is already
// capped by the request size limit.
func readUpload(c *gin.Context) (*multipart.FileHeader, []byte, bool) {
	fh, err := c.FormFile("file")
	if err != nil {
		switch {
		case isTooLarge(err):
			response.RespondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", errors.New("file too large"))
		case errors.Is(err, http.ErrMissingFile):
			response.RespondError(c, http.StatusBadRequest, "missing_file", errors.New("No file provided"))
		default:
			response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		}
		return nil, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return nil, nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_multipart_form", err)
		return nil, nil, false
	}
	return fh, data, true
}
