package download

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"photodesk/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/downloads/:token", h.ResolveByToken)
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/selections", h.CreateSelection)
	rg.GET("/selections/:id", h.GetSelection)
}

func (h *Handler) RegisterStaffRoutes(rg *gin.RouterGroup) {
	rg.POST("/selections/:id/approve", h.Approve)
	rg.POST("/selections/:id/reject", h.Reject)
	rg.POST("/selections/:id/complete", h.Complete)
}

func (h *Handler) CreateSelection(c *gin.Context) {
	var req CreateSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	sel, err := h.service.CreateSelection(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, sel)
}

func (h *Handler) GetSelection(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sel, err := h.service.GetSelection(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sel)
}

func (h *Handler) ResolveByToken(c *gin.Context) {
	sel, err := h.service.ResolveByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPublic(sel))
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req ApproveSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	approverID := c.GetInt64("user_id")
	sel, err := h.service.Approve(c.Request.Context(), id, approverID, req.Note)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sel)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req RejectSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	sel, err := h.service.Reject(c.Request.Context(), id, req.Reason)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sel)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sel, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, sel)
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid selection id")
		return 0, false
	}
	return id, true
}
