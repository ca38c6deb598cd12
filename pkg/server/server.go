package server

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"plotlines/pkg/config"
	"plotlines/pkg/illustration"
	"plotlines/pkg/schema"
)

// StoryDeriver turns validated parameters into story text.
type StoryDeriver interface {
	Derive(ctx context.Context, p schema.StoryParameters) (*schema.StoryDraft, error)
}

// IllustrationResolver finds an image for a set of search terms.
type IllustrationResolver interface {
	Resolve(ctx context.Context, terms []string, fallback string) schema.Illustration
}

type Server struct {
	Echo     *echo.Echo
	Deriver  StoryDeriver
	Resolver IllustrationResolver
	Proxier  illustration.Proxier
	Relay    *http.Client
	Ctx      context.Context

	config *config.Config
}

func NewServer(ctx context.Context, cfg *config.Config, deriver StoryDeriver, resolver IllustrationResolver) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = schema.NewValidator()

	e.Use(middleware.RequestID())
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		Echo:     e,
		Deriver:  deriver,
		Resolver: resolver,
		Proxier: illustration.Proxier{
			PublicOrigin: cfg.PublicAPIOrigin,
			Placeholder:  illustration.Placeholder{BaseURL: cfg.PlaceholderURL},
		},
		Relay:  &http.Client{Timeout: cfg.ProxyTimeout},
		Ctx:    ctx,
		config: cfg,
	}

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.Echo.GET("/", s.handleGetRoot)
	s.Echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := s.Echo.Group("/api")
	api.POST("/generate-story", s.handlePostGenerateStory)
	api.GET("/image-proxy", s.handleGetImageProxy)
	api.GET("/schema", s.handleGetSchema)
}

func (s *Server) Start(addr string) error {
	log.Info("server listening", "addr", addr, "env", s.config.Env, "provider", s.config.AIProvider)
	return s.Echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("shutting down server")
	return s.Echo.Shutdown(ctx)
}
