package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
	"github.com/segmentio/ksuid"
	"golang.org/x/sync/errgroup"

	"plotlines/pkg/illustration"
	"plotlines/pkg/schema"
	"plotlines/pkg/story"
	"plotlines/pkg/utils"
)

// POST /api/generate-story
func (s *Server) handlePostGenerateStory(c echo.Context) error {
	var req schema.StoryParameters
	if err := c.Bind(&req); err != nil {
		log.Error("invalid JSON in /api/generate-story", "error", err)
		return c.JSON(http.StatusBadRequest, utils.ErrJSON("invalid json"))
	}
	req.Normalize()

	if err := c.Validate(&req); err != nil {
		body := utils.ErrJSON("invalid story parameters")
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			body["details"] = verr.Fields
		}
		log.Warn("rejected story parameters", "error", err)
		return c.JSON(http.StatusBadRequest, body)
	}

	log.Info("generating story", "name", req.CharacterName, "category", req.StoryCategory, "activity", req.SpecificActivity)
	ctx := c.Request().Context()

	draft, err := s.Deriver.Derive(ctx, req)
	if err != nil {
		kind := story.Kind(err)
		log.Error("failed to generate story", "kind", kind, "error", err)
		body := map[string]any{"error": "Failed to generate story"}
		if s.config.IsDev() {
			body["details"] = map[string]string{"message": err.Error(), "kind": kind}
		}
		return c.JSON(http.StatusInternalServerError, body)
	}

	return c.JSON(http.StatusOK, s.assemble(ctx, c.Request(), req, draft))
}

// assemble resolves the cover and the ten step illustrations concurrently.
// Each lookup owns its slot, so completion order does not matter.
func (s *Server) assemble(ctx context.Context, r *http.Request, p schema.StoryParameters, draft *schema.StoryDraft) schema.GeneratedStory {
	out := schema.GeneratedStory{
		ID:         "story-" + ksuid.New().String(),
		Title:      story.Title(p),
		Story:      draft.Text(),
		StepImages: make([]schema.StoryStep, len(draft.Steps)),
		Request:    p,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	g, gctx := errgroup.WithContext(illustration.WithLookups(ctx))
	g.SetLimit(max(1, s.config.ImageConcurrency))

	g.Go(func() error {
		terms := draft.CoverTerms
		if len(terms) == 0 {
			terms = []string{p.SpecificActivity, p.MotivatingInterest}
		}
		cover := s.Proxier.Rewrite(r, s.Resolver.Resolve(gctx, terms, "Cartoon illustration of "+p.SpecificActivity))
		out.ImageURL, out.ImageAttribution = cover.URL, cover.Attribution
		return nil
	})

	for i := range draft.Steps {
		text := draft.StepText(i)
		out.StepImages[i] = schema.StoryStep{StepNumber: i + 1, StepText: text}
		g.Go(func() error {
			terms := draft.Terms(i)
			if len(terms) == 0 {
				terms = []string{text}
			}
			ill := s.Proxier.Rewrite(r, s.Resolver.Resolve(gctx, terms, text))
			out.StepImages[i].ImageURL, out.StepImages[i].Attribution = ill.URL, ill.Attribution
			return nil
		})
	}
	_ = g.Wait()

	return out
}
