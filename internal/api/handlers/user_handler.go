package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/services"
)

type UserHandler struct {
	svc services.UserService
}

func NewUserHandler(svc services.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

func (h *UserHandler) Create(c *gin.Context) {
	var u models.User
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, "UserHandler.Create", err)
		return
	}

	res, existed, err := h.svc.Register(c.Request.Context(), &u)
	if err != nil {
		writeError(c, err)
		return
	}
	if existed {
		c.JSON(http.StatusOK, gin.H{"message": "User already exists!"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Instructors(c *gin.Context) {
	out, err := h.svc.ListInstructors(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) MakeAdmin(c *gin.Context)      { h.promote(c, models.RoleAdmin) }
func (h *UserHandler) MakeInstructor(c *gin.Context) { h.promote(c, models.RoleInstructor) }

func (h *UserHandler) promote(c *gin.Context, role models.UserRole) {
	res, err := h.svc.Promote(c.Request.Context(), c.Param("id"), role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *UserHandler) IsAdmin(c *gin.Context)      { h.roleCheck(c, models.RoleAdmin) }
func (h *UserHandler) IsInstructor(c *gin.Context) { h.roleCheck(c, models.RoleInstructor) }

// roleCheck answers whether the caller holds role. Asking about anyone else is
// not an error, the answer is just false. Both checks use the "admin" key.
func (h *UserHandler) roleCheck(c *gin.Context, role models.UserRole) {
	email := c.Param("email")
	if callerEmail(c) != email {
		c.JSON(http.StatusOK, gin.H{"admin": false})
		return
	}

	ok, err := h.svc.HasRole(c.Request.Context(), email, role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": ok})
}
