package feed_test

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aserowy/htmx-playground/modules/feed"
	"github.com/aserowy/htmx-playground/pkg/broadcast"
	"github.com/aserowy/htmx-playground/pkg/notifications"
)

var discard = slog.New(slog.DiscardHandler)

func toast(n notifications.Notification) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="toast %s">%s</div>`, n.Severity, templ.EscapeString(n.Message))
		return err
	})
}

type heartbeatCounter struct{ n atomic.Int64 }

func (c *heartbeatCounter) Heartbeat() { c.n.Add(1) }

type stream struct {
	hub    *broadcast.Hub[notifications.Notification]
	clock  *clockwork.FakeClock
	beats  *heartbeatCounter
	resp   *http.Response
	reader *bufio.Reader
	cancel context.CancelFunc
}

func openStream(t *testing.T) *stream {
	t.Helper()

	hub := broadcast.NewHub[notifications.Notification]()
	clock := clockwork.NewFakeClock()
	beats := &heartbeatCounter{}

	h := feed.NewHandler(hub, feed.NewRenderer(toast), feed.Config{Heartbeat: 5 * time.Second},
		feed.WithLogger(discard),
		feed.WithClock(clock),
		feed.WithHeartbeatObserver(beats),
	)
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { _ = hub.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, hub.SubscriberCount(), "subscribed before headers are sent")

	return &stream{
		hub:    hub,
		clock:  clock,
		beats:  beats,
		resp:   resp,
		reader: bufio.NewReader(resp.Body),
		cancel: cancel,
	}
}

// frame reads up to and including the blank line ending the next frame.
func (s *stream) frame(t *testing.T) string {
	t.Helper()

	type result struct {
		frame string
		err   error
	}
	done := make(chan result, 1)
	go func() {
		var sb strings.Builder
		for {
			line, err := s.reader.ReadString('\n')
			if line == "\n" && sb.Len() == 0 {
				// blank lines between frames
				continue
			}
			sb.WriteString(line)
			if err != nil || line == "\n" {
				done <- result{sb.String(), err}
				return
			}
		}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		return res.frame
	case <-time.After(2 * time.Second):
		require.FailNow(t, "no frame received")
		return ""
	}
}

func (s *stream) waitForTimer(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.clock.BlockUntilContext(ctx, 1))
}

func TestStreamHeaders(t *testing.T) {
	t.Parallel()

	s := openStream(t)
	assert.Equal(t, "text/event-stream", s.resp.Header.Get("Content-Type"))
	assert.Equal(t, "no-cache", s.resp.Header.Get("Cache-Control"))
	assert.Equal(t, "no", s.resp.Header.Get("X-Accel-Buffering"))
}

func TestStreamNotification(t *testing.T) {
	t.Parallel()

	s := openStream(t)
	n := notifications.Success("Entry created: hello")

	delivered, err := s.hub.Publish(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, 1, delivered)

	assert.Equal(t,
		"event: notification\nid: "+n.ID.String()+"\ndata: <div class=\"toast success\">Entry created: hello</div>\n\n",
		s.frame(t),
	)
}

func TestStreamHeartbeat(t *testing.T) {
	t.Parallel()

	s := openStream(t)

	s.waitForTimer(t)
	s.clock.Advance(5 * time.Second)
	assert.Equal(t, "event: heartbeat\ndata: keep-alive\n\n", s.frame(t))

	s.waitForTimer(t)
	s.clock.Advance(5 * time.Second)
	assert.Equal(t, "event: heartbeat\ndata: keep-alive\n\n", s.frame(t))

	assert.Eventually(t, func() bool { return s.beats.n.Load() == 2 }, time.Second, 10*time.Millisecond)
}

func TestStreamMultiLineFragment(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub[notifications.Notification]()
	t.Cleanup(func() { _ = hub.Close() })

	multiLine := notifications.RendererFunc(func(_ context.Context, n notifications.Notification) (string, error) {
		return "<div>\r\n" + n.Message + "\n</div>", nil
	})
	h := feed.NewHandler(hub, multiLine, feed.Config{}, feed.WithLogger(discard))
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	s := &stream{hub: hub, resp: resp, reader: bufio.NewReader(resp.Body)}
	n := notifications.Success("hello")
	_, err = hub.Publish(context.Background(), n)
	require.NoError(t, err)

	assert.Equal(t, "event: notification\nid: "+n.ID.String()+"\ndata: <div>\ndata: hello\ndata: </div>\n\n", s.frame(t))
}

func TestStreamRenderFailure(t *testing.T) {
	t.Parallel()

	s := openStream(t)
	n := notifications.New(notifications.Severity(42), "mystery")

	_, err := s.hub.Publish(context.Background(), n)
	require.NoError(t, err)

	assert.Equal(t, "event: notification\nid: "+n.ID.String()+"\ndata: "+notifications.FallbackFragment+"\n\n", s.frame(t))
}

func TestStreamClientDisconnect(t *testing.T) {
	t.Parallel()

	s := openStream(t)
	s.cancel()

	assert.Eventually(t, func() bool { return s.hub.SubscriberCount() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStreamEndsWhenHubCloses(t *testing.T) {
	t.Parallel()

	s := openStream(t)
	n := notifications.Success("last words")
	_, err := s.hub.Publish(context.Background(), n)
	require.NoError(t, err)
	require.NoError(t, s.hub.Close())

	assert.Contains(t, s.frame(t), "last words")

	rest, err := io.ReadAll(s.reader)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(string(rest)))
}

type plainWriter struct {
	header http.Header
	code   int
}

func (w *plainWriter) Header() http.Header         { return w.header }
func (w *plainWriter) Write(b []byte) (int, error) { return len(b), nil }
func (w *plainWriter) WriteHeader(code int)        { w.code = code }

func TestStreamingUnsupported(t *testing.T) {
	t.Parallel()

	hub := broadcast.NewHub[notifications.Notification]()
	h := feed.NewHandler(hub, feed.NewRenderer(toast), feed.Config{}, feed.WithLogger(discard))

	w := &plainWriter{header: http.Header{}}
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/notifications", nil))

	assert.Equal(t, http.StatusInternalServerError, w.code)
	assert.NotEqual(t, "text/event-stream", w.header.Get("Content-Type"))
	assert.Equal(t, 0, hub.SubscriberCount())
}

func TestRenderer(t *testing.T) {
	t.Parallel()

	r := feed.NewRenderer(toast)

	t.Run("every severity renders", func(t *testing.T) {
		t.Parallel()

		for _, sev := range notifications.Severities() {
			got, err := r.Render(context.Background(), notifications.New(sev, "a < b"))
			require.NoError(t, err, sev.String())
			assert.Equal(t, `<div class="toast `+sev.String()+`">a &lt; b</div>`, got)
		}
	})

	t.Run("unknown severity", func(t *testing.T) {
		t.Parallel()

		_, err := r.Render(context.Background(), notifications.New(notifications.Severity(0), "x"))
		assert.ErrorIs(t, err, notifications.ErrUnknownSeverity)
	})

	t.Run("view error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		failing := feed.NewRenderer(func(notifications.Notification) templ.Component {
			return templ.ComponentFunc(func(context.Context, io.Writer) error { return boom })
		})

		_, err := failing.Render(context.Background(), notifications.Success("x"))
		assert.ErrorIs(t, err, boom)
	})
}
