// Package response maps domain errors to stable HTTP responses so client code
// can branch on status without parsing messages.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gearshare/service-rental/internal/domain"
)

// ErrorBody is the JSON error payload.
type ErrorBody struct {
	Error string `json:"error"`
}

// Success writes a 200 with the given payload.
func Success(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, payload)
}

// Created writes a 201 with the given payload.
func Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, payload)
}

// NoContent writes a 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest writes a 400 with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// Error writes the status matching the domain error kind. Validation and
// not-available map to 400, not-found to 404, forbidden to 403, conflict to
// 409; anything else is a 500 with a generic body.
func Error(c *gin.Context, err error) {
	switch domain.KindOf(err) {
	case domain.KindValidation, domain.KindNotAvailable:
		c.JSON(http.StatusBadRequest, ErrorBody{Error: err.Error()})
	case domain.KindNotFound:
		c.JSON(http.StatusNotFound, ErrorBody{Error: err.Error()})
	case domain.KindForbidden:
		c.JSON(http.StatusForbidden, ErrorBody{Error: err.Error()})
	case domain.KindConflict:
		c.JSON(http.StatusConflict, ErrorBody{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: "internal server error"})
	}
}
