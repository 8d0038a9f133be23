package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/services"
	"github.com/yoockh/languageclub/internal/utils"
)

type CartHandler struct {
	svc services.CartService
}

func NewCartHandler(svc services.CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

// Add stores the posted item; it is owned by the caller when no email is given.
func (h *CartHandler) Add(c *gin.Context) {
	var item models.CartItem
	if err := c.ShouldBindJSON(&item); err != nil {
		badRequest(c, "CartHandler.Add", err)
		return
	}
	if item.Email == "" {
		item.Email = callerEmail(c)
	}

	res, err := h.svc.Add(c.Request.Context(), &item)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CartHandler) List(c *gin.Context) {
	const op = "CartHandler.List"

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, []models.CartItem{})
		return
	}
	if !selfScope(c, op, email) {
		return
	}

	out, err := h.svc.ListByEmail(c.Request.Context(), email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CartHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if utils.IsCode(err, utils.CodeNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *CartHandler) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
