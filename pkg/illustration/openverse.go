package illustration

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"plotlines/pkg/schema"
)

// Openverse searches the Openverse image catalogue for commercially usable
// illustrations.
type Openverse struct {
	BaseURL string
	Client  *http.Client
}

func NewOpenverse(baseURL string, client *http.Client) *Openverse {
	return &Openverse{BaseURL: strings.TrimSuffix(baseURL, "/"), Client: client}
}

func (o *Openverse) Name() string { return "openverse" }

type openverseResponse struct {
	Results []struct {
		Title     string `json:"title"`
		Creator   string `json:"creator"`
		URL       string `json:"url"`
		Thumbnail string `json:"thumbnail"`
	} `json:"results"`
}

func (o *Openverse) Search(ctx context.Context, query string) (*schema.Illustration, error) {
	params := url.Values{
		"q":            {query},
		"page_size":    {"1"},
		"license_type": {"commercial"},
		"mature":       {"false"},
		"category":     {"illustration"},
	}

	var resp openverseResponse
	if err := getJSON(ctx, o.Client, o.BaseURL+"/v1/images/?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, ErrNoResult
	}

	result := resp.Results[0]
	src := result.Thumbnail
	if src == "" {
		src = result.URL
	}
	if src == "" {
		return nil, ErrNoResult
	}

	var attribution string
	switch {
	case result.Creator != "" && result.Title != "":
		attribution = result.Title + " – " + result.Creator + " (via Openverse)"
	case result.Creator != "":
		attribution = result.Creator + " (via Openverse)"
	case result.Title != "":
		attribution = result.Title + " (via Openverse)"
	default:
		attribution = "Image (via Openverse)"
	}

	return &schema.Illustration{URL: src, Attribution: attribution}, nil
}
