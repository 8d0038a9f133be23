package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/services"
	"github.com/yoockh/languageclub/internal/utils"
)

type ClassHandler struct {
	svc services.ClassService
}

func NewClassHandler(svc services.ClassService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

func (h *ClassHandler) Add(c *gin.Context) {
	var cl models.Class
	if err := c.ShouldBindJSON(&cl); err != nil {
		badRequest(c, "ClassHandler.Add", err)
		return
	}
	res, err := h.svc.Add(c.Request.Context(), &cl)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ClassHandler) ListAll(c *gin.Context) {
	h.list(c, h.svc.ListAll)
}

func (h *ClassHandler) ListCatalog(c *gin.Context) {
	h.list(c, h.svc.ListCatalog)
}

func (h *ClassHandler) ListPopular(c *gin.Context) {
	h.list(c, h.svc.ListPopular)
}

// ListForInstructor filters by ?email= when present.
func (h *ClassHandler) ListForInstructor(c *gin.Context) {
	out, err := h.svc.ListForInstructor(c.Request.Context(), c.Query("email"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ClassHandler) list(c *gin.Context, fn func(ctx context.Context) ([]models.Class, error)) {
	out, err := fn(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Get renders null for an unknown id.
func (h *ClassHandler) Get(c *gin.Context) {
	cl, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if utils.IsCode(err, utils.CodeNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *ClassHandler) Delete(c *gin.Context) {
	res, err := h.svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ClassHandler) Update(c *gin.Context) {
	var d models.ClassDetails
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, "ClassHandler.Update", err)
		return
	}
	h.write(c, func(ctx context.Context, id string) (*models.UpdateResult, error) {
		return h.svc.UpdateDetails(ctx, id, d)
	})
}

func (h *ClassHandler) Approve(c *gin.Context) { h.write(c, h.svc.Approve) }
func (h *ClassHandler) Deny(c *gin.Context)    { h.write(c, h.svc.Deny) }

type feedbackRequest struct {
	Feedback string `json:"feedback"`
}

func (h *ClassHandler) Feedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ClassHandler.Feedback", err)
		return
	}
	h.write(c, func(ctx context.Context, id string) (*models.UpdateResult, error) {
		return h.svc.SetFeedback(ctx, id, req.Feedback)
	})
}

func (h *ClassHandler) write(c *gin.Context, fn func(ctx context.Context, id string) (*models.UpdateResult, error)) {
	res, err := fn(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
