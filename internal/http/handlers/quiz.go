package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/yungbote/notequiz-backend/internal/http/response"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/services"
)

type QuizHandler struct {
	log        *logger.Logger
	generation services.QuizGenerationService
	scoring    services.QuizScoringService
}

func NewQuizHandler(log *logger.Logger, generation services.QuizGenerationService, scoring services.QuizScoringService) *QuizHandler {
	return &QuizHandler{
		log:        log.With("handler", "QuizHandler"),
		generation: generation,
		scoring:    scoring,
	}
}

type generateQuizRequest struct {
	UserID  string  `json:"userId"`
	Topic   string  `json:"topic" binding:"required"`
	Notes   string  `json:"notes"`
	FileIDs []int64 `json:"fileIds" binding:"omitempty,dive,gt=0"`
}

type submitAnswersRequest struct {
	UserID  string         `json:"userId"`
	QuizID  int64          `json:"quizId" binding:"required,gt=0"`
	Answers map[string]*int `json:"answers" binding:"required"`
}

// POST /api/generate
func (h *QuizHandler) Generate(c *gin.Context) {
	var req generateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_topic", errors.New("topic is required"))
		return
	}
	if strings.TrimSpace(req.Notes) == "" && len(req.FileIDs) == 0 {
		response.RespondError(c, http.StatusBadRequest, "missing_notes", errors.New("notes or fileIds are required"))
		return
	}

	quiz, err := h.generation.Generate(c.Request.Context(), services.GenerateQuizInput{
		UserID:  userID,
		Topic:   req.Topic,
		Notes:   req.Notes,
		FileIDs: req.FileIDs,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success":   true,
		"quizId":    quiz.QuizID,
		"questions": quiz.Questions,
		"topic":     quiz.Topic,
	})
}

// PUT /api/generate
func (h *QuizHandler) Submit(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		respondBindError(c, err)
		return
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		respondBindError(c, err)
		return
	}
	if _, ok := probe["score"]; ok {
		response.RespondError(c, http.StatusBadRequest, "score_not_accepted", errors.New("score is computed by the server; submit answers instead"))
		return
	}

	var req submitAnswersRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		respondBindError(c, err)
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := resolveUser(c, req.UserID)
	if !ok {
		return
	}

	answers := make(map[int]int, len(req.Answers))
	for k, v := range req.Answers {
		ordinal, err := strconv.Atoi(strings.TrimSpace(k))
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_answers", errors.New("answers must be keyed by question id"))
			return
		}
		// null means skipped
		if v == nil {
			continue
		}
		answers[ordinal] = *v
	}

	scored, err := h.scoring.Submit(c.Request.Context(), services.SubmitAnswersInput{
		QuizID:  req.QuizID,
		UserID:  userID,
		Answers: answers,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success":        true,
		"quiz":           scored.Quiz,
		"score":          scored.Score,
		"totalQuestions": scored.TotalQuestions,
		"results":        scored.Results,
	})
}
