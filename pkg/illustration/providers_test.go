package illustration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonServer(t *testing.T, path string, body string, check func(r *http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		if check != nil {
			check(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenverseSearch(t *testing.T) {
	srv := jsonServer(t, "/v1/images/", `{"results":[{"title":"Train","creator":"Ada","url":"https://ov.example/full.png","thumbnail":"https://ov.example/thumb.png"}]}`,
		func(r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "cartoon train", q.Get("q"))
			assert.Equal(t, "1", q.Get("page_size"))
			assert.Equal(t, "illustration", q.Get("category"))
			assert.Equal(t, "commercial", q.Get("license_type"))
			assert.Equal(t, "false", q.Get("mature"))
			assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		})

	ill, err := NewOpenverse(srv.URL+"/", srv.Client()).Search(context.Background(), "cartoon train")
	require.NoError(t, err)
	assert.Equal(t, "https://ov.example/thumb.png", ill.URL)
	assert.Equal(t, "Train – Ada (via Openverse)", ill.Attribution)
}

func TestOpenverseSearch_Attribution(t *testing.T) {
	srv := jsonServer(t, "/v1/images/", `{"results":[{"url":"https://ov.example/full.png"}]}`, nil)

	ill, err := NewOpenverse(srv.URL, srv.Client()).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "https://ov.example/full.png", ill.URL)
	assert.Equal(t, "Image (via Openverse)", ill.Attribution)
}

func TestOpenverseSearch_Failures(t *testing.T) {
	empty := jsonServer(t, "/v1/images/", `{"results":[]}`, nil)
	_, err := NewOpenverse(empty.URL, empty.Client()).Search(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoResult)

	broken := jsonServer(t, "/v1/images/", `not json`, nil)
	_, err = NewOpenverse(broken.URL, broken.Client()).Search(context.Background(), "x")
	assert.ErrorContains(t, err, "failed to decode response")

	missing := jsonServer(t, "/elsewhere", `{}`, nil)
	_, err = NewOpenverse(missing.URL, missing.Client()).Search(context.Background(), "x")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestWikimediaSearch(t *testing.T) {
	body := `{"query":{"pages":{
		"99":{"index":2,"imageinfo":[{"url":"https://wm.example/second.png"}]},
		"12":{"index":1,"imageinfo":[{"url":"https://wm.example/full.png","thumburl":"https://wm.example/thumb.png",
			"extmetadata":{"Artist":{"value":"<a href=\"//commons\">Jane &amp; Co</a>"},"LicenseShortName":{"value":"CC BY-SA 4.0"}}}]}
	}}}`
	srv := jsonServer(t, "/w/api.php", body, func(r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "search", q.Get("generator"))
		assert.Equal(t, "soap", q.Get("gsrsearch"))
		assert.Equal(t, "url|extmetadata", q.Get("iiprop"))
		assert.Equal(t, "1200", q.Get("iiurlwidth"))
	})

	ill, err := NewWikimedia(srv.URL, srv.Client()).Search(context.Background(), "soap")
	require.NoError(t, err)
	assert.Equal(t, "https://wm.example/thumb.png", ill.URL)
	assert.Equal(t, "Jane & Co (CC BY-SA 4.0)", ill.Attribution)
}

func TestWikimediaSearch_CreditFallback(t *testing.T) {
	body := `{"query":{"pages":{"1":{"index":1,"imageinfo":[{"url":"https://wm.example/a.png","extmetadata":{"Credit":{"value":"<span>Own work</span>"}}}]}}}}`
	srv := jsonServer(t, "/w/api.php", body, nil)

	ill, err := NewWikimedia(srv.URL, srv.Client()).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Own work", ill.Attribution)

	bare := jsonServer(t, "/w/api.php", `{"query":{"pages":{"1":{"index":1,"imageinfo":[{"url":"https://wm.example/a.png"}]}}}}`, nil)
	ill, err = NewWikimedia(bare.URL, bare.Client()).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Wikimedia Commons", ill.Attribution)
}

func TestWikimediaSearch_NoPages(t *testing.T) {
	srv := jsonServer(t, "/w/api.php", `{"batchcomplete":""}`, nil)
	_, err := NewWikimedia(srv.URL, srv.Client()).Search(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoResult)
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "plain text", stripHTML("  plain   text "))
	assert.Equal(t, "User:Bob Own work", stripHTML(`<a href="x">User:Bob</a><br/>Own work`))
	assert.Equal(t, "Tom & Jerry", stripHTML("Tom &amp; Jerry"))
}
