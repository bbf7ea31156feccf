package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rohityadav8366/service-provider-platform/internal/domain"
)

// Body is the response envelope every endpoint uses.
type Body struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

func OK(c *gin.Context, status int, msg string, data any) {
	c.JSON(status, Body{Success: true, Message: msg, Data: data})
}

// Fail maps a domain error to its HTTP status in one place. Unexpected causes
// are never exposed; the client sees a generic message only.
func Fail(c *gin.Context, err error) {
	msg := "an unexpected error occurred"
	var fields map[string]string

	kind := domain.KindOf(err)
	var de *domain.Error
	if kind != domain.KindUnexpected && errors.As(err, &de) {
		msg = de.Message
		fields = de.Fields
	}

	c.AbortWithStatusJSON(StatusOf(kind), Body{Success: false, Message: msg, Errors: fields})
}

func StatusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindDuplicate:
		return http.StatusConflict
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindInvalidCredentials, domain.KindInvalidToken:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
