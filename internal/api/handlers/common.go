package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/api/middleware"
	"github.com/yoockh/languageclub/internal/utils"
)

type APIError struct {
	Error   bool       `json:"error"`
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// writeError renders err and attaches it to the context so the request
// logger reports it.
func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	_ = c.Error(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Error:   true,
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Error:   true,
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func badRequest(c *gin.Context, op string, err error) {
	writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
}

// callerEmail is the email claim of the verified token, or "" when absent.
func callerEmail(c *gin.Context) string {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return ""
	}
	return id.Email()
}

// selfScope reports whether the caller may read records owned by email.
// It writes the 403 itself when not.
func selfScope(c *gin.Context, op, email string) bool {
	if callerEmail(c) != email {
		writeError(c, utils.E(utils.CodeForbidden, op, "Forbidden Access!", nil))
		return false
	}
	return true
}
