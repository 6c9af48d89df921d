package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/dailyword/config"
	"github.com/gaurav-prasanna/dailyword/core"
	"github.com/gaurav-prasanna/dailyword/core/daily"
)

const versePayload = `{"verse":{"details":{"text":"The Lord is my shepherd; I shall not want.","reference":"Psalm 23:1","verselink":"https://example.org/ps23"}}}`

// stubFetcher returns a fixed body or error and counts calls.
type stubFetcher struct {
	body  string
	err   error
	calls atomic.Int32
}

func (f *stubFetcher) Fetch(_ context.Context, url string) (*core.FetchResult, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &core.FetchResult{URL: url, StatusCode: http.StatusOK, Body: f.body}, nil
}

func newTestServer(t *testing.T, f core.Fetcher) (*Server, *httptest.Server) {
	t.Helper()
	cfg := config.Default()
	cfg.Variant = "verse"
	cfg.Render.Locale = "en"
	cfg.Render.Timezone = "UTC"

	clock := func() time.Time { return time.Date(2026, time.October, 18, 9, 0, 0, 0, time.UTC) }
	svc := daily.New(cfg, f).WithClock(clock)

	s, err := New(cfg, svc, zerolog.Nop())
	require.NoError(t, err)
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func get(t *testing.T, url string, header map[string]string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, &stubFetcher{body: versePayload})
	resp, body := get(t, ts.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "OK", body)
}

func TestWidgetJSONIsCached(t *testing.T) {
	f := &stubFetcher{body: versePayload}
	_, ts := newTestServer(t, f)

	resp, body := get(t, ts.URL+"/widget.json", map[string]string{"Origin": "https://www.notion.so"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "Psalm 23:1", got["reference"])
	assert.Equal(t, "The Lord is my shepherd; I shall not want.", got["text"])
	assert.Equal(t, "Sunday, October 18, 2026", got["date"])
	assert.Equal(t, true, got["ok"])

	get(t, ts.URL+"/widget.txt", nil)
	assert.Equal(t, int32(1), f.calls.Load())
}

func TestWidgetFormats(t *testing.T) {
	_, ts := newTestServer(t, &stubFetcher{body: versePayload})

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{"/widget", "text/html; charset=utf-8", "Psalm 23:1"},
		{"/widget.md", "text/markdown; charset=utf-8", "Psalm 23:1"},
		{"/widget.txt", "text/plain; charset=utf-8", "The Lord is my shepherd"},
		{"/widget.pdf", "application/pdf", "%PDF"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, ts.URL+tt.path, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.contentType, resp.Header.Get("Content-Type"))
			assert.Contains(t, body, tt.contains)
		})
	}
}

func TestWidgetUnknownVariant(t *testing.T) {
	_, ts := newTestServer(t, &stubFetcher{body: versePayload})
	resp, body := get(t, ts.URL+"/widget.json?variant=psalm", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "unknown variant")
}

func TestWidgetFallbackWhenSourcesFail(t *testing.T) {
	f := &stubFetcher{err: errors.New("connection refused")}
	s, ts := newTestServer(t, f)

	resp, body := get(t, ts.URL+"/widget.json", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, false, got["ok"])
	assert.Equal(t, "Indisponível no momento", got["reference"])
	assert.Equal(t, "Falha de rede/CORS.", got["status"])

	// The failure is cached too; a refresh replaces it once sources recover.
	calls := f.calls.Load()
	get(t, ts.URL+"/widget.json", nil)
	assert.Equal(t, calls, f.calls.Load())

	f.err = nil
	f.body = versePayload
	s.Refresh(context.Background())
	w, err := s.Widget(context.Background(), core.VariantVerse)
	require.NoError(t, err)
	assert.True(t, w.OK)
	assert.Equal(t, "Psalm 23:1", w.Reference)
}

func TestNewRejectsBadCron(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RefreshCron = "every day"
	_, err := New(cfg, daily.New(cfg, &stubFetcher{}), zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.refresh_cron")
}
