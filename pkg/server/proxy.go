package server

import (
	"io"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"

	"plotlines/pkg/illustration"
)

// GET /api/image-proxy?src=
func (s *Server) handleGetImageProxy(c echo.Context) error {
	src := c.QueryParam("src")
	u, err := url.Parse(src)
	if src == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return c.String(http.StatusBadRequest, "Invalid src")
	}

	req, err := http.NewRequestWithContext(c.Request().Context(), http.MethodGet, u.String(), nil)
	if err != nil {
		return c.String(http.StatusBadRequest, "Invalid src")
	}
	req.Header.Set("User-Agent", illustration.UserAgent)

	resp, err := s.Relay.Do(req)
	if err != nil {
		log.Warn("image relay failed", "src", src, "error", err)
		return c.String(http.StatusBadGateway, "Proxy error")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return c.String(resp.StatusCode, "Upstream error")
	}

	contentType := resp.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if cache := resp.Header.Get("Cache-Control"); cache != "" {
		c.Response().Header().Set("Cache-Control", cache)
	}
	return c.Stream(http.StatusOK, contentType, resp.Body)
}
