package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/notequiz-backend/internal/platform/apierr"
)

// ErrorBody is the error shape every endpoint returns.
type ErrorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// RespondError writes err using its apierr status and code when it has them,
// otherwise status and code as given.
func RespondError(c *gin.Context, status int, code string, err error) {
	var ae *apierr.Error
	if errors.As(err, &ae) {
		RespondAPIError(c, ae)
		return
	}
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg, Code: code})
}

func RespondAPIError(c *gin.Context, ae *apierr.Error) {
	status := ae.Status
	if status == 0 {
		status = http.StatusInternalServerError
	}
	msg := ae.Message
	if msg == "" {
		msg = ae.Error()
	}
	_ = c.Error(ae)
	c.AbortWithStatusJSON(status, ErrorBody{Error: msg, Code: ae.Code, Details: ae.Details})
}

// RespondServiceError maps any service error through apierr.From.
func RespondServiceError(c *gin.Context, err error) {
	RespondAPIError(c, apierr.From(err))
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
