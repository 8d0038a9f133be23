package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/utils"
)

const msgForbidden = "Forbidden Access"

// RoleLookup is the identity store as seen by the role guards.
type RoleLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// RequireRole must run after VerifyJWT. It looks the caller up on every
// request; a missing record and a different role both yield 403.
func RequireRole(users RoleLookup, role models.UserRole) Guard {
	return func(c *gin.Context) error {
		const op = "RequireRole"

		id, ok := IdentityFrom(c)
		if !ok || id.Email() == "" {
			return utils.E(utils.CodeForbidden, op, msgForbidden, nil)
		}

		u, err := users.FindByEmail(c.Request.Context(), id.Email())
		if errors.Is(err, utils.ErrNotFound) {
			return utils.E(utils.CodeForbidden, op, msgForbidden, err)
		}
		if err != nil {
			return utils.StoreError(op, "failed to look up user role", err)
		}
		if !u.HasRole(role) {
			return utils.E(utils.CodeForbidden, op, msgForbidden, nil)
		}
		return nil
	}
}

func RequireAdmin(users RoleLookup) Guard { return RequireRole(users, models.RoleAdmin) }

func RequireInstructor(users RoleLookup) Guard { return RequireRole(users, models.RoleInstructor) }
