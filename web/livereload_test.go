// ABOUTME: Tests for the live-reload hub and the content watcher that drives it.
// ABOUTME: Uses real websocket connections against httptest servers and a temp content directory.
package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/2389-research/coursesite/content"
	"github.com/2389-research/coursesite/site"
	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLiveReloadServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	srv, err := NewServer(ServerConfig{
		Site:       newTestSite(t, site.Options{LiveReload: LiveReloadPath}),
		Logger:     logger,
		LiveReload: true,
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LiveReloadPath
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestLiveReloadBroadcast(t *testing.T) {
	srv, ts := newLiveReloadServer(t)
	a := dial(t, ts)
	b := dial(t, ts)

	require.Eventually(t, func() bool { return srv.Hub().Len() == 2 }, 2*time.Second, 10*time.Millisecond)

	assert.Equal(t, 2, srv.Hub().Broadcast("rev-1"))

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg ReloadMessage
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, ReloadMessage{Type: "reload", Revision: "rev-1"}, msg)
	}
}

func TestLiveReloadClientDisconnect(t *testing.T) {
	srv, ts := newLiveReloadServer(t)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return srv.Hub().Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return srv.Hub().Len() == 0 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, srv.Hub().Broadcast("rev-2"))
}

func TestLiveReloadHubClose(t *testing.T) {
	srv, ts := newLiveReloadServer(t)
	conn := dial(t, ts)
	require.Eventually(t, func() bool { return srv.Hub().Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	srv.Hub().Close()
	assert.Equal(t, 0, srv.Hub().Len())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
}

func TestLiveReloadScriptAndMetrics(t *testing.T) {
	srv, ts := newLiveReloadServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	rec := get(t, srv, http.MethodGet, "/")
	assert.Contains(t, rec.Body.String(), "new WebSocket(")

	rec = get(t, srv, http.MethodGet, "/metrics")
	assert.Contains(t, rec.Body.String(), "coursesite_livereload_clients 0")
}

func TestLiveReloadRejectsPlainHTTP(t *testing.T) {
	srv, _ := newLiveReloadServer(t)
	rec := get(t, srv, http.MethodGet, LiveReloadPath)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type recordingBroadcaster struct {
	revisions chan string
}

func (r *recordingBroadcaster) Broadcast(revision string) int {
	r.revisions <- revision
	return 1
}

func TestWatcherBroadcastsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.md")
	require.NoError(t, os.WriteFile(path, []byte("# Home\n"), 0o644))

	lib, err := content.Open(content.Options{Dir: dir, CacheTTL: time.Minute})
	require.NoError(t, err)
	_, err = lib.Doc("index")
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	rec := &recordingBroadcaster{revisions: make(chan string, 4)}
	w := NewWatcher(lib, rec, 10*time.Millisecond, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Let the watcher take its initial fingerprint before editing.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte("# Home\n\nEdited\n"), 0o644))
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	select {
	case rev := <-rec.revisions:
		_, err := ulid.Parse(rev)
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not broadcast")
	}

	out, err := lib.Doc("index")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Edited")

	cancel()
	assert.True(t, errors.Is(<-done, context.Canceled))
}

func TestWatcherQuietWithoutChanges(t *testing.T) {
	lib := content.NewLibrary(fstest.MapFS{"index.md": {Data: []byte("# Home\n")}}, true, "", 0)
	logger, _ := test.NewNullLogger()
	rec := &recordingBroadcaster{revisions: make(chan string, 1)}
	w := NewWatcher(lib, rec, 5*time.Millisecond, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, w.Run(ctx), context.DeadlineExceeded)
	assert.Empty(t, rec.revisions)
}

func TestFingerprint(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fsys := fstest.MapFS{
		"index.md":   {Data: []byte("a"), ModTime: base},
		"courses.md": {Data: []byte("b"), ModTime: base},
	}

	first, err := Fingerprint(fsys)
	require.NoError(t, err)
	again, err := Fingerprint(fsys)
	require.NoError(t, err)
	assert.Equal(t, first, again)

	fsys["index.md"] = &fstest.MapFile{Data: []byte("a"), ModTime: base.Add(time.Second)}
	touched, err := Fingerprint(fsys)
	require.NoError(t, err)
	assert.NotEqual(t, first, touched)

	fsys["extra.md"] = &fstest.MapFile{Data: []byte("c"), ModTime: base}
	added, err := Fingerprint(fsys)
	require.NoError(t, err)
	assert.NotEqual(t, touched, added)
}
