package payment

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photodesk/internal/domain"
	"photodesk/internal/pkg/response"
)

type Handler struct {
	service *Service
	loggerf func(format string, args ...interface{})
}

func NewHandler(service *Service, loggerf func(format string, args ...interface{})) *Handler {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Handler{service: service, loggerf: loggerf}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/webhook", h.Webhook)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/card", h.CreateCardPayment)
	rg.POST("/payments/bank-transfer", h.SubmitBankTransfer)
	rg.GET("/payments/:id", h.GetPayment)
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments/:id/verify", h.VerifyBankTransfer)
	rg.POST("/payments/:id/refund", h.Refund)
}

func (h *Handler) CreateCardPayment(c *gin.Context) {
	var req CreateCardPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	owner, ok := ownerFromRequest(req.OwnerRequest)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "exactly one of booking_id or selection_id is required")
		return
	}
	p, secret, err := h.service.CreateCardPayment(c.Request.Context(), owner, req.Amount, req.Metadata)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, CardPaymentResponse{
		PaymentID:    p.ID,
		IntentID:     p.IntentID,
		ClientSecret: secret,
		Status:       string(p.Status),
	})
}

func (h *Handler) SubmitBankTransfer(c *gin.Context) {
	var req BankTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	owner, ok := ownerFromRequest(req.OwnerRequest)
	if !ok {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "exactly one of booking_id or selection_id is required")
		return
	}
	p, err := h.service.SubmitBankTransfer(c.Request.Context(), owner, req.Amount, req.ProofURL, req.BankDetails)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payment id")
		return
	}
	p, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) VerifyBankTransfer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payment id")
		return
	}
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	verifierID := c.GetInt64("user_id")
	p, err := h.service.VerifyBankTransfer(c.Request.Context(), id, req.Approved, verifierID, req.Notes)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Refund(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid payment id")
		return
	}
	var req RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	p, err := h.service.Refund(c.Request.Context(), id, req.Amount, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Webhook receives the provider's event envelope. The body must reach
// signature verification raw and untransformed, so it is read before any
// binding machinery touches the request.
func (h *Handler) Webhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unreadable body")
		return
	}
	signature := c.GetHeader("Stripe-Signature")

	if err := h.service.HandleWebhook(c.Request.Context(), rawBody, signature); err != nil {
		h.loggerf("level=error msg=webhook handling failed err=%v", err)
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"received": true})
}

func ownerFromRequest(req OwnerRequest) (domain.OwnerRef, bool) {
	switch {
	case req.BookingID != nil && req.SelectionID == nil:
		return domain.BookingOwner(*req.BookingID), true
	case req.SelectionID != nil && req.BookingID == nil:
		return domain.SelectionOwner(*req.SelectionID), true
	}
	return domain.OwnerRef{}, false
}
