package illustration

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/log"

	"plotlines/pkg/flight"
	"plotlines/pkg/metrics"
	"plotlines/pkg/schema"
	"plotlines/pkg/utils"
)

// Resolver tries its providers in order for every candidate query and falls
// back to a placeholder. It never fails.
type Resolver struct {
	providers   []Provider
	placeholder Placeholder
}

func NewResolver(placeholder Placeholder, providers ...Provider) *Resolver {
	return &Resolver{providers: providers, placeholder: placeholder}
}

// Placeholder returns the resolver's placeholder builder.
func (r *Resolver) Placeholder() Placeholder {
	return r.placeholder
}

// Candidates cleans and dedupes terms, keeping their order, and puts all
// terms combined ahead of each individual term.
func Candidates(terms []string) []string {
	seen := make(map[string]bool, len(terms)+1)
	var uniq []string
	for _, term := range terms {
		term = utils.CollapseSpace(term)
		if term == "" || seen[term] {
			continue
		}
		seen[term] = true
		uniq = append(uniq, term)
	}
	if len(uniq) < 2 {
		return uniq
	}
	return append([]string{strings.Join(uniq, " ")}, uniq...)
}

// Resolve returns the first image any provider finds for any candidate built
// from terms. When nothing is found the placeholder for fallback is returned,
// or for the first term when fallback is empty.
func (r *Resolver) Resolve(ctx context.Context, terms []string, fallback string) schema.Illustration {
	candidates := Candidates(terms)
	for _, query := range candidates {
		for _, p := range r.providers {
			ill, err := search(ctx, p, query)
			switch {
			case errors.Is(err, ErrNoResult):
				metrics.IllustrationLookups.WithLabelValues(p.Name(), "miss").Inc()
				log.Debug("no image found", "provider", p.Name(), "query", query)
			case err != nil:
				metrics.IllustrationLookups.WithLabelValues(p.Name(), "error").Inc()
				log.Debug("image provider failed", "provider", p.Name(), "query", query, "error", err)
			case ill == nil || ill.URL == "" || r.placeholder.IsPlaceholder(ill.URL):
				metrics.IllustrationLookups.WithLabelValues(p.Name(), "miss").Inc()
			default:
				metrics.IllustrationLookups.WithLabelValues(p.Name(), "hit").Inc()
				return *ill
			}
		}
	}

	label := utils.CollapseSpace(fallback)
	if label == "" && len(candidates) > 0 {
		// candidates[0] is the combined query when there are several terms
		label = candidates[min(1, len(candidates)-1)]
	}
	metrics.IllustrationLookups.WithLabelValues("placeholder", "hit").Inc()
	return schema.Illustration{URL: r.placeholder.URL(label)}
}

type lookupKey struct {
	provider, query string
}

type lookupsKey struct{}

// WithLookups returns a context under which Resolve shares the answer of
// identical provider searches. Scope it to one story.
func WithLookups(ctx context.Context) context.Context {
	return context.WithValue(ctx, lookupsKey{}, flight.NewGroup[lookupKey, *schema.Illustration]())
}

func search(ctx context.Context, p Provider, query string) (*schema.Illustration, error) {
	g, ok := ctx.Value(lookupsKey{}).(*flight.Group[lookupKey, *schema.Illustration])
	if !ok {
		return p.Search(ctx, query)
	}
	return g.Do(lookupKey{p.Name(), query}, func() (*schema.Illustration, error) {
		return p.Search(ctx, query)
	})
}
