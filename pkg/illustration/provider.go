// Package illustration resolves short text queries to freely licensed images,
// falling back to a generated placeholder so a story slot is never empty.
package illustration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"plotlines/pkg/schema"
)

// UserAgent is sent on every outbound image request.
const UserAgent = "PlotlinesBot/1.0"

// ErrNoResult is returned by a Provider that answered but found nothing usable.
var ErrNoResult = errors.New("no image found")

// Provider searches one image source.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) (*schema.Illustration, error)
}

// StatusError is a non-2xx answer from an image source.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

func getJSON(ctx context.Context, client *http.Client, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Code: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
