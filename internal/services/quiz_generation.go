package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	types "github.com/yungbote/notequiz-backend/internal/domain"
	"github.com/yungbote/notequiz-backend/internal/data/repos"
	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/apierr"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/platform/openai"
)

var (
	ErrQuizMalformed     = errors.New("model output is not valid JSON")
	ErrQuizQuestionCount = errors.New("model output does not contain exactly 10 questions")
	ErrQuizQuestionShape = errors.New("model output contains an invalid question")
)

type GenerateQuizInput struct {
	UserID  string
	Topic   string
	Notes   string
	FileIDs []int64
}

type GeneratedQuiz struct {
	QuizID    int64            `json:"quizId"`
	Questions []types.Question `json:"questions"`
	Topic     string           `json:"topic"`
}

type QuizGenerationService interface {
	Generate(ctx context.Context, in GenerateQuizInput) (*GeneratedQuiz, error)
}

type quizGenerationService struct {
	log      *logger.Logger
	attempts repos.QuizAttemptRepo
	files    repos.UserFileRepo
	llm      openai.Client
	metrics  *observability.Metrics
}

func NewQuizGenerationService(
	log *logger.Logger,
	attempts repos.QuizAttemptRepo,
	files repos.UserFileRepo,
	llm openai.Client,
	metrics *observability.Metrics,
) QuizGenerationService {
	serviceLog := log.With("service", "QuizGenerationService")
	return &quizGenerationService{
		log:      serviceLog,
		attempts: attempts,
		files:    files,
		llm:      llm,
		metrics:  metrics,
	}
}

func (s *quizGenerationService) Generate(ctx context.Context, in GenerateQuizInput) (*GeneratedQuiz, error) {
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, apierr.BadRequest("missing_topic", "Topic is required")
	}
	if strings.TrimSpace(in.UserID) == "" {
		return nil, apierr.BadRequest("missing_user", "User is required")
	}

	// Once issued, the model call and the insert run to completion even if the
	// client goes away.
	ctx = context.WithoutCancel(ctx)
	started := time.Now()

	prompt := BuildQuizPrompt(topic, in.Notes, s.fileContext(ctx, in.UserID, in.FileIDs))

	raw, err := s.llm.GenerateText(ctx, QuizSystemPrompt, prompt)
	if err != nil {
		s.metrics.IncQuizGeneration("model_error")
		s.log.Error("Quiz model call failed", "user_id", in.UserID, "error", err)
		return nil, apierr.Upstream("model_call_failed", "Failed to generate quiz", err)
	}

	questions, err := ParseQuizResponse(raw)
	if err != nil {
		code, msg := "quiz_parse_failed", "Failed to parse quiz questions"
		switch {
		case errors.Is(err, ErrQuizQuestionCount):
			code, msg = "quiz_invalid_count", "Invalid quiz format: expected 10 questions"
		case errors.Is(err, ErrQuizQuestionShape):
			code, msg = "quiz_invalid_question", "Invalid quiz format: malformed question"
		}
		s.metrics.IncQuizGeneration("invalid_output")
		s.log.Warn("Quiz model output rejected", "user_id", in.UserID, "code", code, "error", err)
		return nil, apierr.New(http.StatusInternalServerError, code, err).
			WithMessage(msg).
			WithDetails(raw)
	}

	encoded, err := types.EncodeQuestions(questions)
	if err != nil {
		s.metrics.IncQuizGeneration("save_error")
		return nil, apierr.Upstream("quiz_save_failed", "Failed to save quiz", err)
	}
	attempt, err := s.attempts.Create(dbctx.Background(ctx), &types.QuizAttempt{
		UserID:         in.UserID,
		Topic:          topic,
		Questions:      encoded,
		Score:          0,
		TotalQuestions: types.QuestionsPerQuiz,
	})
	if err != nil {
		s.metrics.IncQuizGeneration("save_error")
		s.log.Error("Failed to save quiz attempt", "user_id", in.UserID, "error", err)
		return nil, apierr.Upstream("quiz_save_failed", "Failed to save quiz", err)
	}

	s.metrics.IncQuizGeneration("success")
	s.log.Info("Quiz generated",
		"user_id", in.UserID,
		"quiz_id", attempt.ID,
		"file_count", len(in.FileIDs),
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return &GeneratedQuiz{QuizID: attempt.ID, Questions: questions, Topic: topic}, nil
}

// fileContext names the caller's uploaded materials. Lookup failures only cost
// the clause.
func (s *quizGenerationService) fileContext(ctx context.Context, userID string, ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	rows, err := s.files.GetByIDsForUser(dbctx.Background(ctx), ids, userID)
	if err != nil {
		s.log.Warn("File lookup for quiz context failed", "user_id", userID, "error", err)
		return ""
	}
	names := make([]string, 0, len(rows))
	for _, f := range rows {
		if f != nil {
			names = append(names, f.FileName)
		}
	}
	return FileContextClause(names)
}

// ParseQuizResponse turns raw model output into exactly QuestionsPerQuiz
// validated questions. Errors wrap ErrQuizMalformed, ErrQuizQuestionCount or
// ErrQuizQuestionShape.
func ParseQuizResponse(raw string) ([]types.Question, error) {
	cleaned := []byte(stripCodeFences(raw))

	var items []json.RawMessage
	if err := json.Unmarshal(cleaned, &items); err != nil {
		if json.Valid(cleaned) {
			return nil, fmt.Errorf("%w: top-level value is not an array", ErrQuizQuestionCount)
		}
		return nil, fmt.Errorf("%w: %v", ErrQuizMalformed, err)
	}
	if len(items) != types.QuestionsPerQuiz {
		return nil, fmt.Errorf("%w: got %d", ErrQuizQuestionCount, len(items))
	}

	out := make([]types.Question, 0, len(items))
	ids := make([]int, 0, len(items))
	for i, item := range items {
		q, id, err := decodeQuestion(item)
		if err != nil {
			return nil, fmt.Errorf("%w: question %d: %v", ErrQuizQuestionShape, i+1, err)
		}
		out = append(out, q)
		ids = append(ids, id)
	}

	if !isOrdinalSet(ids) {
		for i := range out {
			out[i].ID = i + 1
		}
	}
	return out, nil
}

func decodeQuestion(item json.RawMessage) (types.Question, int, error) {
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(item))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return types.Question{}, 0, fmt.Errorf("not an object")
	}

	text, _ := fields["question"].(string)
	if strings.TrimSpace(text) == "" {
		return types.Question{}, 0, fmt.Errorf("missing question text")
	}

	rawOpts, ok := fields["options"].([]any)
	if !ok || len(rawOpts) != types.OptionsPerQuestion {
		return types.Question{}, 0, fmt.Errorf("options must be %d strings", types.OptionsPerQuestion)
	}
	options := make([]string, 0, len(rawOpts))
	for _, o := range rawOpts {
		s, ok := o.(string)
		if !ok {
			return types.Question{}, 0, fmt.Errorf("options must be %d strings", types.OptionsPerQuestion)
		}
		options = append(options, s)
	}

	num, ok := fields["correctAnswer"].(json.Number)
	if !ok {
		return types.Question{}, 0, fmt.Errorf("correctAnswer must be an integer")
	}
	answer, err := num.Int64()
	if err != nil {
		return types.Question{}, 0, fmt.Errorf("correctAnswer must be an integer")
	}
	if answer < 0 || answer >= types.OptionsPerQuestion {
		return types.Question{}, 0, fmt.Errorf("correctAnswer %d out of range", answer)
	}

	explanation := ""
	if v, present := fields["explanation"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return types.Question{}, 0, fmt.Errorf("explanation must be a string")
		}
		explanation = s
	}

	id := 0
	if n, ok := fields["id"].(json.Number); ok {
		if v, err := n.Int64(); err == nil {
			id = int(v)
		}
	}

	return types.Question{
		ID:            id,
		Question:      text,
		Options:       options,
		CorrectAnswer: int(answer),
		Explanation:   explanation,
	}, id, nil
}

func isOrdinalSet(ids []int) bool {
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		if id < 1 || id > len(ids) || seen[id] {
			return false
		}
		seen[id] = true
	}
	return true
}

// stripCodeFences removes a surrounding ```json ... ``` block if present.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// language tag, if any, sits on the fence line
		if tag := strings.TrimSpace(s[:nl]); tag == "" || !strings.ContainsAny(tag, "[{") {
			s = s[nl+1:]
		}
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
