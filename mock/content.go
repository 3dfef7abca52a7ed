package mock

import (
	"context"

	"github.com/fwojciec/citycopy"
)

var _ citycopy.ContentStore = (*ContentStore)(nil)

// ContentStore is a mock implementation of citycopy.ContentStore.
type ContentStore struct {
	FindContentBySlugFn func(ctx context.Context, slug string) (*citycopy.ContentBundle, error)
	FindContentsFn      func(ctx context.Context, filter citycopy.ContentFilter) ([]*citycopy.ContentBundle, error)
	UpsertContentFn     func(ctx context.Context, bundle *citycopy.ContentBundle) error
	DeleteContentFn     func(ctx context.Context, slug string) error
}

func (s *ContentStore) FindContentBySlug(ctx context.Context, slug string) (*citycopy.ContentBundle, error) {
	return s.FindContentBySlugFn(ctx, slug)
}

func (s *ContentStore) FindContents(ctx context.Context, filter citycopy.ContentFilter) ([]*citycopy.ContentBundle, error) {
	return s.FindContentsFn(ctx, filter)
}

func (s *ContentStore) UpsertContent(ctx context.Context, bundle *citycopy.ContentBundle) error {
	return s.UpsertContentFn(ctx, bundle)
}

func (s *ContentStore) DeleteContent(ctx context.Context, slug string) error {
	return s.DeleteContentFn(ctx, slug)
}
