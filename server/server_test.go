package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"landing_page_studio/generator"
	"landing_page_studio/pages"
)

type testEnv struct {
	srv    *httptest.Server
	store  *pages.SQLiteStore
	server *Server
}

func newTestServer(t *testing.T, llm generator.LLMClient) *testEnv {
	t.Helper()
	store, err := pages.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	agent, err := generator.NewAgent(llm, generator.WithLogger(logger))
	require.NoError(t, err)
	s, err := New(agent, store, logger)
	require.NoError(t, err)

	srv := httptest.NewServer(s.Routes())
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, store: store, server: s}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, e.srv.URL+path, r)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

type snapshotJSON struct {
	SessionID string                  `json:"session_id"`
	View      string                  `json:"view"`
	State     string                  `json:"state"`
	Content   *generator.ContentModel `json:"content"`
	CurrentID string                  `json:"current_id"`
	Unsaved   bool                    `json:"unsaved"`
	Messages  []messageView           `json:"messages"`
	Pages     []pages.Record          `json:"pages"`
	Payload   string                  `json:"payload"`
}

func (e *testEnv) newSession(t *testing.T) snapshotJSON {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/sessions", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	snap := decode[snapshotJSON](t, resp)
	require.NotEmpty(t, snap.SessionID)
	return snap
}

func TestServer_SessionLifecycle(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})

	snap := env.newSession(t)
	assert.Equal(t, "chat", snap.View)
	assert.Equal(t, "idle", snap.State)
	require.Len(t, snap.Messages, 1)
	assert.Contains(t, snap.Messages[0].HTML, "<p>")

	resp := env.do(t, http.MethodPost, "/api/sessions/"+snap.SessionID+"/messages", submitReq{Text: "We sell payment infrastructure for online businesses"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[snapshotJSON](t, resp)

	assert.Equal(t, "valid", got.Payload)
	assert.Equal(t, "preview", got.View)
	require.NotNil(t, got.Content)
	assert.Equal(t, generator.ThemeFintech, got.Content.Theme)
	assert.NotEmpty(t, got.CurrentID)
	require.Len(t, got.Pages, 1)
	require.Len(t, got.Messages, 3)
	assert.NotContains(t, got.Messages[2].Text, generator.Sentinel)

	resp = env.do(t, http.MethodPut, "/api/sessions/"+snap.SessionID+"/theme", themeReq{Theme: "saas"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[snapshotJSON](t, resp)
	assert.Equal(t, generator.ThemeSaaS, got.Content.Theme)

	rec, err := env.store.Get(context.Background(), got.CurrentID)
	require.NoError(t, err)
	assert.Equal(t, generator.ThemeSaaS, rec.Theme)

	resp = env.do(t, http.MethodPost, "/api/sessions/"+snap.SessionID+"/new", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[snapshotJSON](t, resp)
	assert.Nil(t, got.Content)
	assert.Empty(t, got.CurrentID)
	assert.Equal(t, "chat", got.View)

	resp = env.do(t, http.MethodPost, "/api/sessions/"+snap.SessionID+"/select", selectReq{ID: rec.ID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[snapshotJSON](t, resp)
	assert.Equal(t, rec.ID, got.CurrentID)
	assert.Equal(t, "preview", got.View)
}

func TestServer_UnknownSession(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})
	resp := env.do(t, http.MethodGet, "/api/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_IdleSessionsEvicted(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})
	var clock atomic.Int64
	clock.Store(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).UnixNano())
	advance := func(d time.Duration) { clock.Add(int64(d)) }
	env.server.store.mu.Lock()
	env.server.store.now = func() time.Time { return time.Unix(0, clock.Load()) }
	env.server.store.mu.Unlock()

	idle := decode[snapshotJSON](t, env.do(t, http.MethodPost, "/api/sessions", nil)).SessionID
	active := decode[snapshotJSON](t, env.do(t, http.MethodPost, "/api/sessions", nil)).SessionID

	advance(SessionIdleTTL - time.Minute)
	resp := env.do(t, http.MethodGet, "/api/sessions/"+active, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	advance(2 * time.Minute)
	assert.Equal(t, 1, env.server.store.prune(SessionIdleTTL))
	assert.Equal(t, 1, env.server.store.count())

	resp = env.do(t, http.MethodGet, "/api/sessions/"+idle, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/sessions/"+active, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_EmptyMessage(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})
	snap := env.newSession(t)

	resp := env.do(t, http.MethodPost, "/api/sessions/"+snap.SessionID+"/messages", submitReq{Text: "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

type blockingLLM struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingLLM) Complete(ctx context.Context, _ generator.Prompt) (string, error) {
	b.once.Do(func() { close(b.started) })
	select {
	case <-b.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return "Tell me more.", nil
}

func TestServer_BusySession(t *testing.T) {
	llm := &blockingLLM{started: make(chan struct{}), release: make(chan struct{})}
	env := newTestServer(t, llm)
	snap := env.newSession(t)
	path := "/api/sessions/" + snap.SessionID + "/messages"

	done := make(chan int, 1)
	go func() {
		data, _ := json.Marshal(submitReq{Text: "first"})
		resp, err := http.Post(env.srv.URL+path, "application/json", bytes.NewReader(data))
		if err != nil {
			done <- 0
			return
		}
		_ = resp.Body.Close()
		done <- resp.StatusCode
	}()
	<-llm.started

	resp := env.do(t, http.MethodPost, path, submitReq{Text: "second"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/sessions/"+snap.SessionID, nil)
	assert.Equal(t, "awaiting_completion", decode[snapshotJSON](t, resp).State)

	close(llm.release)
	assert.Equal(t, http.StatusOK, <-done)
}

func TestServer_EditRequiresContent(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})
	snap := env.newSession(t)

	resp := env.do(t, http.MethodPut, "/api/sessions/"+snap.SessionID+"/theme", themeReq{Theme: "saas"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	env.do(t, http.MethodPost, "/api/sessions/"+snap.SessionID+"/messages", submitReq{Text: "an online shop"})

	resp = env.do(t, http.MethodPut, "/api/sessions/"+snap.SessionID+"/theme", themeReq{Theme: "neon"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	bad := generator.ContentModel{CompanyName: "only a name", Theme: generator.ThemeDefault}
	resp = env.do(t, http.MethodPut, "/api/sessions/"+snap.SessionID+"/content", bad)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_PagesAPI(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})
	ctx := context.Background()

	resp := env.do(t, http.MethodGet, "/api/pages", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]pages.Record](t, resp))

	rec, err := env.store.Create(ctx, pages.Fields{
		CompanyName: "Acme", Tagline: "Tag", Description: "Desc", HeroTitle: "Hero",
		HeroSubtitle: "Sub", Features: []generator.Feature{{Title: "Speed", Description: "Fast"}},
		CTA: "Go", Theme: generator.ThemeSaaS,
	})
	require.NoError(t, err)

	resp = env.do(t, http.MethodGet, "/api/pages/"+rec.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Acme", decode[pages.Record](t, resp).CompanyName)

	resp = env.do(t, http.MethodGet, "/api/pages/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/pages/missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodDelete, "/api/pages/"+rec.ID, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_, err = env.store.Get(ctx, rec.ID)
	assert.ErrorIs(t, err, pages.ErrNotFound)
}

func TestServer_ExportETag(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})
	rec, err := env.store.Create(context.Background(), pages.Fields{
		CompanyName: "Acme", Tagline: "Tag", Description: "Desc", HeroTitle: "Hero",
		HeroSubtitle: "Sub", Features: []generator.Feature{{Title: "Speed", Description: "Fast"}},
		CTA: "Go", Theme: generator.ThemeSaaS,
	})
	require.NoError(t, err)
	path := "/api/pages/" + rec.ID + "/export?format=html"

	resp := env.do(t, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html"))
	etag := resp.Header.Get("ETag")
	require.NotEmpty(t, etag)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Speed", doc.Find(".feature-card h3").Text())

	req, err := http.NewRequest(http.MethodGet, env.srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", etag)
	cached, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer cached.Body.Close()
	assert.Equal(t, http.StatusNotModified, cached.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/pages/"+rec.ID+"/export?format=component&download=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEqual(t, etag, resp.Header.Get("ETag"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "AcmeLandingPage.jsx")

	resp = env.do(t, http.MethodGet, "/api/pages/"+rec.ID+"/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServer_SessionExportNeedsContent(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})
	snap := env.newSession(t)

	resp := env.do(t, http.MethodGet, "/api/sessions/"+snap.SessionID+"/export", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestServer_ServesUI(t *testing.T) {
	env := newTestServer(t, generator.MockLLM{})
	resp := env.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "Landing Page Studio", doc.Find("title").Text())
}

func TestMdToHTML(t *testing.T) {
	out, err := mdToHTML("**bold** <script>alert(1)</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}
