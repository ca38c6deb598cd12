package illustration

import (
	"net/url"
	"strings"

	"plotlines/pkg/utils"
)

const placeholderLabelLen = 40

// Placeholder builds placehold.co style image URLs that render their label.
type Placeholder struct {
	BaseURL string
}

// URL returns the placeholder for label, cut to 40 characters. An empty
// label renders "Image".
func (p Placeholder) URL(label string) string {
	label = utils.TruncateRunes(label, placeholderLabelLen)
	if label == "" {
		label = "Image"
	}
	return p.BaseURL + "?text=" + strings.ReplaceAll(url.QueryEscape(label), "+", "%20")
}

// IsPlaceholder reports whether u was produced by this placeholder host.
func (p Placeholder) IsPlaceholder(u string) bool {
	return p.BaseURL != "" && strings.HasPrefix(u, p.BaseURL)
}
