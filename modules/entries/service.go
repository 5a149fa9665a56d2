package entries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/aserowy/htmx-playground/pkg/logger"
	"github.com/aserowy/htmx-playground/pkg/notifications"
)

// Service manages entries and announces every change to connected clients.
// Announcements are best effort: a failed publish never fails the operation.
type Service struct {
	cfg      Config
	repo     Repository
	notifier *notifications.Notifier
	logger   *slog.Logger
	clock    clockwork.Clock
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithLogger sets the logger for the Service.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces the clock used for the list delay.
func WithClock(c clockwork.Clock) ServiceOption {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// NewService creates an entry service. An invalid cfg.DeleteSeverity falls
// back to success.
func NewService(cfg Config, repo Repository, notifier *notifications.Notifier, opts ...ServiceOption) *Service {
	if !cfg.DeleteSeverity.Valid() {
		cfg.DeleteSeverity = notifications.SeveritySuccess
	}

	s := &Service{
		cfg:      cfg,
		repo:     repo,
		notifier: notifier,
		logger:   slog.Default(),
		clock:    clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns all entries after the configured delay.
// It returns ctx.Err() when ctx ends while waiting.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	if s.cfg.ListDelay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.clock.After(s.cfg.ListDelay):
		}
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list: %w", ErrRepository, err)
	}
	return entries, nil
}

// Create stores a new entry and publishes a success notification.
func (s *Service) Create(ctx context.Context, content string) (Entry, error) {
	entry, err := s.repo.Create(ctx, content)
	if err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to create entry", logger.Error(err))
		s.notifier.Notify(ctx, notifications.Error("Failed to create entry: "+content))
		return Entry{}, fmt.Errorf("%w: create: %w", ErrRepository, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "entry created", logger.EntryID(entry.ID))
	s.notifier.Notify(ctx, notifications.Success("Entry created: "+entry.Content))

	return entry, nil
}

// Delete removes the entry with id and publishes a notification with the
// configured delete severity.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.LogAttrs(ctx, slog.LevelError, "failed to delete entry",
			logger.EntryID(id),
			logger.Error(err),
		)
		s.notifier.Notify(ctx, notifications.Error("Failed to delete entry: "+id.String()))
		return fmt.Errorf("%w: delete: %w", ErrRepository, err)
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "entry deleted", logger.EntryID(id))
	s.notifier.Notify(ctx, notifications.New(s.cfg.DeleteSeverity, "Entry deleted: "+id.String()))

	return nil
}
