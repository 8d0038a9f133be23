package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/auth"
	"github.com/yoockh/languageclub/internal/utils"
)

type AuthHandler struct {
	issuer *auth.Issuer
}

func NewAuthHandler(issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// IssueToken signs whatever JSON object the client posts. The client is
// trusted to assert its own email.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	const op = "AuthHandler.IssueToken"

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, op, err)
		return
	}
	if payload == nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "payload must be a JSON object", nil))
		return
	}

	token, err := h.issuer.Issue(payload)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
