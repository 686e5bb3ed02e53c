package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/yungbote/notequiz-backend/internal/http/response"
	"github.com/yungbote/notequiz-backend/internal/platform/ctxutil"
)

// resolveUser returns the authenticated caller. A client-supplied userId is
// accepted only when it names the same user.
func resolveUser(c *gin.Context, claimed string) (string, bool) {
	userID := ctxutil.UserID(c.Request.Context())
	if userID == "" {
		response.RespondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
		return "", false
	}
	claimed = strings.TrimSpace(claimed)
	if claimed != "" && claimed != userID {
		response.RespondError(c, http.StatusForbidden, "user_mismatch", errors.New("userId does not match the authenticated user"))
		return "", false
	}
	return userID, true
}

// respondBindError renders request decoding and validation failures.
func respondBindError(c *gin.Context, err error) {
	if isTooLarge(err) {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "payload_too_large", errors.New("request body too large"))
		return
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		parts := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			parts = append(parts, describeFieldError(fe))
		}
		response.RespondError(c, http.StatusBadRequest, "invalid_request", errors.New(strings.Join(parts, "; ")))
		return
	}
	response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
}

func describeFieldError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	// multipart parsing flattens the reader error into text
	return err != nil && strings.Contains(err.Error(), "request body too large")
}
