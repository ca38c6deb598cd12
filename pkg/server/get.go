package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"plotlines/pkg/schema"
)

func (s *Server) handleGetRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service":  "Plotlines Story API",
		"status":   "ok",
		"provider": s.config.AIProvider,
		"model":    s.config.Model(),
	})
}

// GET /api/schema
func (s *Server) handleGetSchema(c echo.Context) error {
	return c.JSON(http.StatusOK, schema.StoryParametersSchema)
}
