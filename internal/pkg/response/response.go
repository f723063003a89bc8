// Package response renders the JSON envelope shared by every handler:
// {"success":true,"data":...} or {"success":false,"error":{code,message}}.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"photodesk/internal/domain"
)

type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *errBody    `json:"error,omitempty"`
}

type errBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, envelope{Success: true, Data: data})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, envelope{Success: false, Error: &errBody{Code: code, Message: message}})
}

// FromError maps the workflow error taxonomy onto HTTP responses. Anything
// outside the taxonomy is a 500 with a generic message.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrExpired):
		Error(c, http.StatusGone, "EXPIRED", err.Error())
	case errors.Is(err, domain.ErrCatalogReference):
		Error(c, http.StatusBadRequest, "CATALOG_REFERENCE", err.Error())
	case errors.Is(err, domain.ErrInvalidTransition):
		Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, domain.ErrInvalidState):
		Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	case errors.Is(err, domain.ErrSignature):
		Error(c, http.StatusBadRequest, "INVALID_SIGNATURE", "webhook signature verification failed")
	case errors.Is(err, domain.ErrValidation):
		Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		Error(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
