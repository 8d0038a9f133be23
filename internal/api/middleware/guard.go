package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/metrics"
	"github.com/yoockh/languageclub/internal/utils"
)

// Guard inspects a request before its handler runs. Returning nil lets the
// request continue; any error is terminal and becomes the response.
type Guard func(c *gin.Context) error

type apiError struct {
	Error   bool       `json:"error"`
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

// Gate adapts a Guard to a gin handler. name labels denials in metrics.
func Gate(name string, g Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := g(c); err != nil {
			status := utils.HTTPStatus(err)
			metrics.RecordDenial(name, strconv.Itoa(status))
			_ = c.Error(err)
			abortWithError(c, status, err)
			return
		}
		c.Next()
	}
}

// Chain turns an ordered guard list into gin handlers ending in h.
func Chain(h gin.HandlerFunc, gates ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(gates)+1)
	out = append(out, gates...)
	return append(out, h)
}

func abortWithError(c *gin.Context, status int, err error) {
	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.AbortWithStatusJSON(status, apiError{Error: true, Code: ae.Code, Message: ae.Message})
		return
	}
	c.AbortWithStatusJSON(status, apiError{
		Error:   true,
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}
