package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/data/repos"
	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/apierr"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
	"github.com/yungbote/notequiz-backend/internal/platform/extract"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/platform/objectstore"
)

// AllowedContentTypes are the declared MIME types accepted for upload.
var AllowedContentTypes = map[string]bool{
	extract.MIMEPDF:  true,
	extract.MIMEText: true,
	extract.MIMEDOC:  true,
	extract.MIMEDOCX: true,
}

const (
	previewChars        = 1000
	pdfPlaceholder      = "PDF content - to be extracted when needed"
	documentPlaceholder = "DOCX content - to be extracted when needed"
)

type IngestInput struct {
	UserID      string
	FileName    string
	ContentType string
	Body        []byte
}

type IngestedFile struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	UploadedAt    time.Time `json:"uploadedAt"`
	ExtractedText string    `json:"extractedText"`
}

type IngestionService interface {
	Ingest(ctx context.Context, in IngestInput) (*IngestedFile, error)
	ListFiles(ctx context.Context, userID string) ([]*types.UserFile, error)
	ExtractFile(ctx context.Context, userID string, fileID int64) (string, error)
}

type ingestionService struct {
	db      *gorm.DB
	log     *logger.Logger
	files   repos.UserFileRepo
	pending repos.PendingBlobRepo
	store   objectstore.Store
	metrics *observability.Metrics
	now     func() time.Time
}

func NewIngestionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	files repos.UserFileRepo,
	pending repos.PendingBlobRepo,
	store objectstore.Store,
	metrics *observability.Metrics,
) IngestionService {
	serviceLog := baseLog.With("service", "IngestionService")
	return &ingestionService{
		db:      db,
		log:     serviceLog,
		files:   files,
		pending: pending,
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

func (s *ingestionService) Ingest(ctx context.Context, in IngestInput) (*IngestedFile, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, apierr.BadRequest("missing_user", "User ID is required")
	}
	if strings.TrimSpace(in.FileName) == "" || in.Body == nil {
		return nil, apierr.BadRequest("missing_file", "No file provided")
	}
	contentType := normalizeContentType(in.ContentType)
	if !AllowedContentTypes[contentType] {
		s.metrics.IncIngestion("rejected")
		return nil, apierr.BadRequest("invalid_file_type", "Invalid file type. Only PDF, TXT, DOC, and DOCX files are allowed.")
	}

	dbc := dbctx.Background(ctx)
	key := BuildStorageKey(in.UserID, s.now(), in.FileName)

	if _, err := s.pending.Create(dbc, &types.PendingBlob{UserID: in.UserID, StorageKey: key}); err != nil {
		s.metrics.IncIngestion("error")
		return nil, apierr.Upstream("upload_failed", "Failed to upload file", fmt.Errorf("record pending blob: %w", err))
	}

	if err := s.store.Upload(ctx, key, contentType, bytes.NewReader(in.Body)); err != nil {
		s.metrics.IncIngestion("error")
		s.log.Error("Blob upload failed", "user_id", in.UserID, "storage_key", key, "error", err)
		if _, derr := s.pending.DeleteByStorageKey(dbc, key); derr != nil {
			s.log.Warn("Failed to clear pending blob after upload failure", "storage_key", key, "error", derr)
		}
		return nil, apierr.Upstream("upload_failed", "Failed to upload file", err)
	}

	row := &types.UserFile{
		UserID:      in.UserID,
		FileName:    in.FileName,
		FileURL:     s.store.PublicURL(key),
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   int64(len(in.Body)),
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := dbc.InTx(tx)
		if _, err := s.files.Create(txc, row); err != nil {
			return fmt.Errorf("insert user file: %w", err)
		}
		if _, err := s.pending.DeleteByStorageKey(txc, key); err != nil {
			return fmt.Errorf("clear pending blob: %w", err)
		}
		return nil
	})
	if err != nil {
		s.metrics.IncIngestion("error")
		s.log.Error("File metadata insert failed", "user_id", in.UserID, "storage_key", key, "error", err)
		s.compensate(ctx, key)
		return nil, apierr.Upstream("metadata_save_failed", "Failed to save file metadata", err)
	}

	s.metrics.IncIngestion("success")
	s.log.Info("File ingested", "user_id", in.UserID, "file_id", row.ID, "content_type", contentType, "size_bytes", row.SizeBytes)
	return &IngestedFile{
		ID:            row.ID,
		Name:          row.FileName,
		URL:           row.FileURL,
		UploadedAt:    row.UploadedAt,
		ExtractedText: uploadPreview(contentType, in.Body),
	}, nil
}

// compensate removes a blob whose metadata never landed. When the delete
// fails the outbox row stays for the reconciler.
func (s *ingestionService) compensate(ctx context.Context, key string) {
	if err := s.store.Delete(ctx, key); err != nil {
		s.metrics.IncCompensation("failed")
		s.log.Error("Compensating blob delete failed; left for reconciler", "storage_key", key, "error", err)
		return
	}
	s.metrics.IncCompensation("deleted")
	if _, err := s.pending.DeleteByStorageKey(dbctx.Background(ctx), key); err != nil {
		s.log.Warn("Failed to clear pending blob after compensation", "storage_key", key, "error", err)
	}
}

func (s *ingestionService) ListFiles(ctx context.Context, userID string) ([]*types.UserFile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apierr.BadRequest("missing_user", "User ID is required")
	}
	rows, err := s.files.ListByUserID(dbctx.Background(ctx), userID)
	if err != nil {
		s.log.Error("Failed to list files", "user_id", userID, "error", err)
		return nil, apierr.Upstream("files_load_failed", "Failed to fetch files", err)
	}
	if rows == nil {
		rows = []*types.UserFile{}
	}
	return rows, nil
}

// ExtractFile downloads a stored file and returns its full text.
func (s *ingestionService) ExtractFile(ctx context.Context, userID string, fileID int64) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", apierr.BadRequest("missing_user", "User ID is required")
	}
	row, err := s.files.GetByIDForUser(dbctx.Background(ctx), fileID, userID)
	if err != nil {
		return "", apierr.Upstream("files_load_failed", "Failed to fetch file", err)
	}
	if row == nil {
		return "", apierr.NotFound("file_not_found", "File not found")
	}

	data, err := s.store.Download(ctx, row.StorageKey)
	if err != nil {
		if errors.Is(err, objectstore.ErrNotFound) {
			return "", apierr.NotFound("file_not_found", "File not found")
		}
		return "", apierr.Upstream("download_failed", "Failed to download file", err)
	}

	if extract.Detect(row.FileName, row.ContentType, data) == extract.KindDOC {
		return "", apierr.BadRequest("unsupported_file_type", "Legacy Word documents are not supported")
	}
	text, err := extract.Text(row.FileName, row.ContentType, data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			return "", apierr.BadRequest("unsupported_file_type", "Unsupported file type")
		}
		s.log.Warn("Text extraction failed", "file_id", fileID, "error", err)
		return "", apierr.New(http.StatusInternalServerError, "extraction_failed", err).
			WithMessage("Failed to extract text").
			WithDetails(err.Error())
	}
	return text, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9.-]`)

// SanitizeFileName replaces every character outside [A-Za-z0-9.-] with '_'.
func SanitizeFileName(name string) string {
	return unsafeKeyChars.ReplaceAllString(name, "_")
}

// BuildStorageKey returns "<userID>/<unix millis>_<sanitized name>".
func BuildStorageKey(userID string, at time.Time, fileName string) string {
	return fmt.Sprintf("%s/%d_%s", userID, at.UnixMilli(), SanitizeFileName(fileName))
}

func normalizeContentType(ct string) string {
	ct = strings.ToLower(strings.TrimSpace(ct))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	return ct
}

func uploadPreview(contentType string, body []byte) string {
	switch contentType {
	case extract.MIMEText:
		return firstRunes(extract.PlainText(body), previewChars)
	case extract.MIMEPDF:
		return pdfPlaceholder
	default:
		return documentPlaceholder
	}
}

func firstRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
