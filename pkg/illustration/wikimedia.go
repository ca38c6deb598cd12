package illustration

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"plotlines/pkg/schema"
	"plotlines/pkg/utils"
)

// Wikimedia searches Wikimedia Commons through the MediaWiki action API.
type Wikimedia struct {
	BaseURL string
	Client  *http.Client
}

func NewWikimedia(baseURL string, client *http.Client) *Wikimedia {
	return &Wikimedia{BaseURL: strings.TrimSuffix(baseURL, "/"), Client: client}
}

func (w *Wikimedia) Name() string { return "wikimedia" }

type metaValue struct {
	Value string `json:"value"`
}

type wikimediaResponse struct {
	Query struct {
		Pages map[string]struct {
			Index     int `json:"index"`
			ImageInfo []struct {
				URL         string `json:"url"`
				ThumbURL    string `json:"thumburl"`
				ExtMetadata struct {
					Artist           metaValue `json:"Artist"`
					Credit           metaValue `json:"Credit"`
					LicenseShortName metaValue `json:"LicenseShortName"`
				} `json:"extmetadata"`
			} `json:"imageinfo"`
		} `json:"pages"`
	} `json:"query"`
}

func (w *Wikimedia) Search(ctx context.Context, query string) (*schema.Illustration, error) {
	params := url.Values{
		"action":     {"query"},
		"format":     {"json"},
		"origin":     {"*"},
		"generator":  {"search"},
		"gsrlimit":   {"1"},
		"gsrsearch":  {query},
		"prop":       {"imageinfo"},
		"iiprop":     {"url|extmetadata"},
		"iiurlwidth": {"1200"},
	}

	var resp wikimediaResponse
	if err := getJSON(ctx, w.Client, w.BaseURL+"/w/api.php?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	// pages is keyed by page id; the search rank lives in index
	first, found := -1, false
	var key string
	for k, page := range resp.Query.Pages {
		if !found || page.Index < first {
			first, key, found = page.Index, k, true
		}
	}
	if !found || len(resp.Query.Pages[key].ImageInfo) == 0 {
		return nil, ErrNoResult
	}

	info := resp.Query.Pages[key].ImageInfo[0]
	src := info.ThumbURL
	if src == "" {
		src = info.URL
	}
	if src == "" {
		return nil, ErrNoResult
	}

	credit := stripHTML(info.ExtMetadata.Artist.Value)
	if credit == "" {
		credit = stripHTML(info.ExtMetadata.Credit.Value)
	}
	var parts []string
	if credit != "" {
		parts = append(parts, credit)
	}
	if license := strings.TrimSpace(info.ExtMetadata.LicenseShortName.Value); license != "" {
		parts = append(parts, "("+license+")")
	}
	attribution := strings.Join(parts, " ")
	if attribution == "" {
		attribution = "Wikimedia Commons"
	}

	return &schema.Illustration{URL: src, Attribution: attribution}, nil
}

// stripHTML returns the text content of an HTML fragment with whitespace
// collapsed. Entities are decoded.
func stripHTML(fragment string) string {
	if !strings.Contains(fragment, "<") && !strings.Contains(fragment, "&") {
		return utils.CollapseSpace(fragment)
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return utils.CollapseSpace(b.String())
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}
