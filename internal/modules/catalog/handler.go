package catalog

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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/catalog/services", h.ListServices)
	rg.GET("/catalog/packages", h.ListPackages)
	rg.GET("/catalog/addons", h.ListAddOns)
}

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.service.ListServices(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list services")
		return
	}
	response.Success(c, http.StatusOK, services)
}

func (h *Handler) ListPackages(c *gin.Context) {
	serviceID, _ := strconv.ParseInt(c.Query("service_id"), 10, 64)
	packages, err := h.service.ListPackages(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list packages")
		return
	}
	response.Success(c, http.StatusOK, packages)
}

func (h *Handler) ListAddOns(c *gin.Context) {
	serviceID, _ := strconv.ParseInt(c.Query("service_id"), 10, 64)
	addOns, err := h.service.ListAddOns(c.Request.Context(), serviceID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to list add-ons")
		return
	}
	response.Success(c, http.StatusOK, addOns)
}
