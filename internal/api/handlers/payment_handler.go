package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/languageclub/internal/models"
	"github.com/yoockh/languageclub/internal/services"
	"github.com/yoockh/languageclub/internal/utils"
)

type PaymentHandler struct {
	svc services.PaymentService
}

func NewPaymentHandler(svc services.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

type intentRequest struct {
	Price *float64 `json:"price"`
}

func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	const op = "PaymentHandler.CreateIntent"

	var req intentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, op, err)
		return
	}
	if req.Price == nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "price is required", nil))
		return
	}

	secret, err := h.svc.CreateIntent(c.Request.Context(), *req.Price)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": secret})
}

func (h *PaymentHandler) Record(c *gin.Context) {
	var p models.Payment
	if err := c.ShouldBindJSON(&p); err != nil {
		badRequest(c, "PaymentHandler.Record", err)
		return
	}
	if p.Email == "" {
		p.Email = callerEmail(c)
	}

	res, err := h.svc.Record(c.Request.Context(), &p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *PaymentHandler) List(c *gin.Context) {
	const op = "PaymentHandler.List"

	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusOK, []models.Payment{})
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
