package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/auth"
	"github.com/yoockh/languageclub/internal/utils"
)

// Context keys set by VerifyJWT.
const (
	CtxIdentity = "decoded"
	CtxEmail    = "email"
)

const msgUnauthorized = "Unauthorized Access"

// VerifyJWT rejects requests without a valid bearer token and attaches the
// decoded identity to the context. The token is the second whitespace
// separated field of the Authorization header; the scheme word is not checked.
func VerifyJWT(v *auth.Verifier) Guard {
	return func(c *gin.Context) error {
		const op = "VerifyJWT"

		header := c.GetHeader("Authorization")
		if header == "" {
			return utils.E(utils.CodeUnauthorized, op, msgUnauthorized, nil)
		}

		var raw string
		if fields := strings.Fields(header); len(fields) > 1 {
			raw = fields[1]
		}

		id, err := v.Verify(raw)
		if err != nil {
			return utils.E(utils.CodeUnauthorized, op, msgUnauthorized, err)
		}

		c.Set(CtxIdentity, id)
		c.Set(CtxEmail, id.Email())
		return nil
	}
}

// IdentityFrom returns the identity attached by VerifyJWT.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(CtxIdentity)
	if !ok {
		return nil, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}
