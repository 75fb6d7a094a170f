// Package handler exposes the HTTP surface. Every route except health and
// metrics identifies the acting user through the X-Sharer-User-Id header.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gearshare/service-rental/internal/domain"
)

// parseOffsetParams extracts the optional from and size query parameters.
// Absent parameters stay nil; the offset-to-page translation and the
// partial-pair rule live downstream.
func parseOffsetParams(c *gin.Context) (from, size *int, err error) {
	if raw, ok := c.GetQuery("from"); ok {
		v, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, nil, domain.NewValidationError("from query parameter must be an integer")
		}
		from = &v
	}
	if raw, ok := c.GetQuery("size"); ok {
		v, convErr := strconv.Atoi(raw)
		if convErr != nil {
			return nil, nil, domain.NewValidationError("size query parameter must be an integer")
		}
		size = &v
	}
	return from, size, nil
}
