package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/citycopy"
)

// Ensure LoggingContentStore implements citycopy.ContentStore.
var _ citycopy.ContentStore = (*LoggingContentStore)(nil)

// LoggingContentStore wraps a ContentStore with debug logging.
type LoggingContentStore struct {
	next   citycopy.ContentStore
	logger *slog.Logger
}

// NewLoggingContentStore creates a new LoggingContentStore.
func NewLoggingContentStore(next citycopy.ContentStore, logger *slog.Logger) *LoggingContentStore {
	return &LoggingContentStore{next: next, logger: logger}
}

// FindContentBySlug delegates to the wrapped store and logs hit or miss.
func (s *LoggingContentStore) FindContentBySlug(ctx context.Context, slug string) (bundle *citycopy.ContentBundle, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"slug", slug,
			"hit", err == nil,
			"duration", time.Since(begin),
		}
		if err != nil && citycopy.ErrorCode(err) != citycopy.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		s.logger.Debug("content lookup", attrs...)
	}(time.Now())
	return s.next.FindContentBySlug(ctx, slug)
}

// FindContents delegates to the wrapped store.
func (s *LoggingContentStore) FindContents(ctx context.Context, filter citycopy.ContentFilter) ([]*citycopy.ContentBundle, error) {
	return s.next.FindContents(ctx, filter)
}

// UpsertContent delegates to the wrapped store and logs the write.
func (s *LoggingContentStore) UpsertContent(ctx context.Context, bundle *citycopy.ContentBundle) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("content upsert",
			"slug", bundle.LocalitySlug,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpsertContent(ctx, bundle)
}

// DeleteContent delegates to the wrapped store and logs the deletion.
func (s *LoggingContentStore) DeleteContent(ctx context.Context, slug string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("content delete",
			"slug", slug,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteContent(ctx, slug)
}
