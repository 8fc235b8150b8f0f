package handler

import (
	"net/http"

	"upkiip/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// PlaceholderHandler serves the role-gated routes whose business logic is
// not built yet. They return static bodies but still run the full session
// and role middleware chain.
type PlaceholderHandler struct{}

// NewPlaceholderHandler creates a new PlaceholderHandler instance
func NewPlaceholderHandler() *PlaceholderHandler {
	return &PlaceholderHandler{}
}

// Placeholder returns a handler answering with a static section banner.
func (h *PlaceholderHandler) Placeholder(section string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return response.Success(c, http.StatusOK, map[string]any{
			"section": section,
			"status":  "not implemented yet",
		}, "")
	}
}

// HealthCheck reports service liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "upkiip-backend",
	}, "")
}
