package entries_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aserowy/htmx-playground/modules/entries"
	"github.com/aserowy/htmx-playground/pkg/broadcast"
	"github.com/aserowy/htmx-playground/pkg/notifications"
)

var discard = slog.New(slog.DiscardHandler)

type fixture struct {
	hub  *broadcast.Hub[notifications.Notification]
	sub  *broadcast.Subscription[notifications.Notification]
	repo *entries.MemoryRepository
	svc  *entries.Service
}

func newFixture(t *testing.T, cfg entries.Config, opts ...entries.ServiceOption) *fixture {
	t.Helper()

	hub := broadcast.NewHub[notifications.Notification]()
	t.Cleanup(func() { _ = hub.Close() })

	repo := entries.NewDemoRepository()
	notifier := notifications.NewNotifier(hub, notifications.WithNotifierLogger(discard))
	opts = append([]entries.ServiceOption{entries.WithLogger(discard)}, opts...)

	return &fixture{
		hub:  hub,
		sub:  hub.Subscribe(context.Background()),
		repo: repo,
		svc:  entries.NewService(cfg, repo, notifier, opts...),
	}
}

func (f *fixture) next(t *testing.T) notifications.Notification {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	msg, err := f.sub.Recv(ctx)
	require.NoError(t, err)
	return msg.Data
}

func (f *fixture) assertNothingPublished(t *testing.T) {
	t.Helper()

	_, err := f.sub.TryRecv()
	assert.ErrorIs(t, err, broadcast.ErrEmpty{})
}

type failingRepo struct {
	entries.Repository
	err error
}

func (r failingRepo) Create(context.Context, string) (entries.Entry, error) {
	return entries.Entry{}, r.err
}

func (r failingRepo) Delete(context.Context, uuid.UUID) error {
	return r.err
}

func (r failingRepo) List(context.Context) ([]entries.Entry, error) {
	return nil, r.err
}

func TestServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("publishes success", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.DefaultConfig())

		entry, err := f.svc.Create(context.Background(), "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello", entry.Content)
		assert.NotEqual(t, uuid.Nil, entry.ID)

		n := f.next(t)
		assert.Equal(t, notifications.SeveritySuccess, n.Severity)
		assert.Equal(t, "Entry created: hello", n.Message)
		assert.NotEqual(t, entry.ID, n.ID, "notifications carry their own id")

		list, err := f.repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, list, 3)
		assert.Equal(t, entry, list[2])
	})

	t.Run("succeeds without subscribers", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.DefaultConfig())
		require.NoError(t, f.sub.Close())

		_, err := f.svc.Create(context.Background(), "nobody listens")
		assert.NoError(t, err)
	})

	t.Run("succeeds after the hub closed", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.DefaultConfig())
		require.NoError(t, f.hub.Close())

		_, err := f.svc.Create(context.Background(), "late")
		assert.NoError(t, err)
	})

	t.Run("repository failure publishes error", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub[notifications.Notification]()
		sub := hub.Subscribe(context.Background())
		boom := errors.New("disk full")
		svc := entries.NewService(entries.DefaultConfig(), failingRepo{err: boom},
			notifications.NewNotifier(hub, notifications.WithNotifierLogger(discard)),
			entries.WithLogger(discard),
		)

		_, err := svc.Create(context.Background(), "hello")
		assert.ErrorIs(t, err, entries.ErrRepository)
		assert.ErrorIs(t, err, boom)

		msg, err := sub.TryRecv()
		require.NoError(t, err)
		assert.Equal(t, notifications.SeverityError, msg.Data.Severity)
		assert.Contains(t, msg.Data.Message, "Failed to create entry")
	})
}

func TestServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("publishes success by default", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.DefaultConfig())
		list, err := f.repo.List(context.Background())
		require.NoError(t, err)
		id := list[0].ID

		require.NoError(t, f.svc.Delete(context.Background(), id))

		n := f.next(t)
		assert.Equal(t, notifications.SeveritySuccess, n.Severity)
		assert.Equal(t, "Entry deleted: "+id.String(), n.Message)

		list, err = f.repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "more content...", list[0].Content)
	})

	t.Run("configured severity", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.Config{DeleteSeverity: notifications.SeverityError})
		require.NoError(t, f.svc.Delete(context.Background(), uuid.New()))
		assert.Equal(t, notifications.SeverityError, f.next(t).Severity)
	})

	t.Run("invalid severity falls back to success", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.Config{})
		require.NoError(t, f.svc.Delete(context.Background(), uuid.New()))
		assert.Equal(t, notifications.SeveritySuccess, f.next(t).Severity)
	})

	t.Run("unknown id is not an error", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.DefaultConfig())
		assert.NoError(t, f.svc.Delete(context.Background(), uuid.New()))
	})

	t.Run("repository failure publishes error", func(t *testing.T) {
		t.Parallel()

		hub := broadcast.NewHub[notifications.Notification]()
		sub := hub.Subscribe(context.Background())
		svc := entries.NewService(entries.DefaultConfig(), failingRepo{err: errors.New("locked")},
			notifications.NewNotifier(hub, notifications.WithNotifierLogger(discard)),
			entries.WithLogger(discard),
		)

		id := uuid.New()
		assert.ErrorIs(t, svc.Delete(context.Background(), id), entries.ErrRepository)

		msg, err := sub.TryRecv()
		require.NoError(t, err)
		assert.Equal(t, notifications.SeverityError, msg.Data.Severity)
		assert.Equal(t, "Failed to delete entry: "+id.String(), msg.Data.Message)
	})
}

func TestServiceList(t *testing.T) {
	t.Parallel()

	t.Run("demo entries", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.DefaultConfig())
		list, err := f.svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "content...", list[0].Content)
		assert.Equal(t, "more content...", list[1].Content)
		f.assertNothingPublished(t)
	})

	t.Run("waits for the configured delay", func(t *testing.T) {
		t.Parallel()

		clock := clockwork.NewFakeClock()
		f := newFixture(t, entries.Config{ListDelay: 3 * time.Second}, entries.WithClock(clock))

		type result struct {
			list []entries.Entry
			err  error
		}
		done := make(chan result, 1)
		go func() {
			list, err := f.svc.List(context.Background())
			done <- result{list, err}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, clock.BlockUntilContext(ctx, 1))

		clock.Advance(2 * time.Second)
		select {
		case <-done:
			require.Fail(t, "list returned before the delay elapsed")
		default:
		}

		clock.Advance(time.Second)
		select {
		case res := <-done:
			require.NoError(t, res.err)
			assert.Len(t, res.list, 2)
		case <-time.After(time.Second):
			require.Fail(t, "list did not return")
		}
	})

	t.Run("delay honours cancellation", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, entries.Config{ListDelay: time.Hour}, entries.WithClock(clockwork.NewFakeClock()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.svc.List(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("repository failure", func(t *testing.T) {
		t.Parallel()

		svc := entries.NewService(entries.DefaultConfig(), failingRepo{err: errors.New("gone")},
			notifications.NewNotifier(notifications.NoOpPublisher{}), entries.WithLogger(discard))

		_, err := svc.List(context.Background())
		assert.ErrorIs(t, err, entries.ErrRepository)
	})
}

func TestParseID(t *testing.T) {
	t.Parallel()

	id := uuid.New()

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "canonical", input: id.String(), valid: true},
		{name: "upper case", input: "6BA7B810-9DAD-11D1-80B4-00C04FD430C8", valid: true},
		{name: "not a uuid", input: "not-a-uuid"},
		{name: "empty", input: ""},
		{name: "truncated", input: id.String()[:35]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := entries.ParseID(tt.input)
			if tt.valid {
				require.NoError(t, err)
				assert.NotEqual(t, uuid.Nil, got)
				return
			}
			assert.ErrorIs(t, err, entries.ErrMalformedIdentifier)
			assert.Equal(t, uuid.Nil, got)
		})
	}
}

func TestMemoryRepositoryHonoursContext(t *testing.T) {
	t.Parallel()

	repo := entries.NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = repo.Create(ctx, "x")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, repo.Delete(ctx, uuid.New()), context.Canceled)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}
