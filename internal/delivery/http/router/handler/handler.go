// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	"feria/internal/delivery/http/middleware"
	"feria/internal/delivery/http/response"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck reports liveness for load balancers and uptime probes.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// actorID returns the authenticated caller's id stored by the auth middleware.
func actorID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)

	return id, ok
}

// pathUUID parses a UUID path parameter, answering a 400 on malformed input.
func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, response.BadRequest(c, "INVALID_ID", "El identificador no es válido")
	}

	return id, nil
}
