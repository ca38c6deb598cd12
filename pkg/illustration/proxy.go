package illustration

import (
	"net/http"
	"net/url"
	"strings"

	"plotlines/pkg/schema"
)

// ProxyPath is the relay endpoint that resolved images are routed through.
const ProxyPath = "/api/image-proxy"

// Proxier rewrites image URLs so browsers load them through the relay.
type Proxier struct {
	// PublicOrigin overrides the origin derived from the request.
	PublicOrigin string
	Placeholder  Placeholder
}

// Origin returns the scheme and host the caller reached this service on,
// honouring X-Forwarded-Proto and X-Forwarded-Host.
func (p Proxier) Origin(r *http.Request) string {
	if p.PublicOrigin != "" {
		return p.PublicOrigin
	}
	proto := firstValue(r.Header.Get("X-Forwarded-Proto"))
	if proto == "" {
		proto = "http"
		if r.TLS != nil {
			proto = "https"
		}
	}
	host := firstValue(r.Header.Get("X-Forwarded-Host"))
	if host == "" {
		host = r.Host
	}
	return proto + "://" + host
}

// Rewrite routes ill through the relay. Placeholders are left as they are.
func (p Proxier) Rewrite(r *http.Request, ill schema.Illustration) schema.Illustration {
	if ill.URL == "" || p.Placeholder.IsPlaceholder(ill.URL) {
		return ill
	}
	ill.URL = p.Origin(r) + ProxyPath + "?src=" + url.QueryEscape(ill.URL)
	return ill
}

func firstValue(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}
