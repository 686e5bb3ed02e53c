package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/notequiz-backend/internal/http/response"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/services"
)

type HistoryHandler struct {
	log     *logger.Logger
	history services.HistoryService
}

func NewHistoryHandler(log *logger.Logger, history services.HistoryService) *HistoryHandler {
	return &HistoryHandler{log: log.With("handler", "HistoryHandler"), history: history}
}

// GET /api/history
func (h *HistoryHandler) List(c *gin.Context) {
	userID, ok := resolveUser(c, c.Query("userId"))
	if !ok {
		return
	}
	out, err := h.history.History(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success": true,
		"quizzes": out.Quizzes,
		"stats":   out.Stats,
	})
}

// DELETE /api/history?quizId=
func (h *HistoryHandler) Delete(c *gin.Context) {
	userID, ok := resolveUser(c, c.Query("userId"))
	if !ok {
		return
	}
	quizID, err := strconv.ParseInt(strings.TrimSpace(c.Query("quizId")), 10, 64)
	if err != nil || quizID <= 0 {
		response.RespondError(c, http.StatusBadRequest, "missing_quiz_id", errors.New("quizId is required"))
		return
	}
	n, err := h.history.Delete(c.Request.Context(), quizID, userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"success": true,
		"message": "Quiz attempt deleted successfully",
		"deleted": n,
	})
}
