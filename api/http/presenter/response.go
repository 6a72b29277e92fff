package presenter

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/screening/pkg/apperr"
)

type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Fail renders err by its apperr kind. Unclassified errors become a 500
// without leaking details.
func Fail(c *fiber.Ctx, err error) error {
	e, ok := apperr.As(err)
	if !ok {
		return Error(c, http.StatusInternalServerError, "internal error")
	}
	return JSON(c, StatusOf(e.Kind), ErrorResponse{Message: e.Message, Code: e.Code, Fields: e.Fields})
}

func StatusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindTransient:
		return http.StatusServiceUnavailable
	case apperr.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
