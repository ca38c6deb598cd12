package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// requestLogger logs every request with charmbracelet/log, at a level chosen
// by the response status.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			res := c.Response()

			err := next(c)
			if err != nil {
				// let echo write the response so the status below is final
				c.Error(err)
			}

			fields := []any{
				"method", req.Method,
				"uri", req.RequestURI,
				"status", res.Status,
				"latency", time.Since(start),
				"remote_ip", c.RealIP(),
			}
			if id := res.Header().Get(echo.HeaderXRequestID); id != "" {
				fields = append(fields, "request_id", id)
			}

			switch n := res.Status; {
			case err != nil:
				log.Error("handler error", append(fields, "error", err)...)
			case n >= http.StatusInternalServerError:
				log.Error("server error", fields...)
			case n >= http.StatusBadRequest:
				log.Warn("client error", fields...)
			default:
				log.Info("request", fields...)
			}
			return nil
		}
	}
}
