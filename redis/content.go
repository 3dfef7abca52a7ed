package redis

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/fwojciec/citycopy"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by ContentStore.
const DefaultPrefix = "citycopy"

// Compile-time interface verification.
var _ citycopy.ContentStore = (*ContentStore)(nil)

// ContentStore implements citycopy.ContentStore using Redis.
// Each bundle is one JSON string key; a set indexes the stored slugs.
type ContentStore struct {
	client *redis.Client
	prefix string
}

// NewContentStore creates a new ContentStore. An empty prefix selects
// DefaultPrefix.
func NewContentStore(client *redis.Client, prefix string) *ContentStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &ContentStore{client: client, prefix: prefix}
}

func (s *ContentStore) key(slug string) string {
	return fmt.Sprintf("%s:content:%s", s.prefix, slug)
}

func (s *ContentStore) indexKey() string {
	return s.prefix + ":contents"
}

// FindContentBySlug retrieves the bundle stored for a locality.
func (s *ContentStore) FindContentBySlug(ctx context.Context, slug string) (*citycopy.ContentBundle, error) {
	data, err := s.client.Get(ctx, s.key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, citycopy.Errorf(citycopy.ENOTFOUND, "content for %q not found", slug)
	}
	if err != nil {
		return nil, err
	}
	return decodeBundle(data, slug)
}

// FindContents retrieves bundles matching the filter, newest first.
func (s *ContentStore) FindContents(ctx context.Context, filter citycopy.ContentFilter) ([]*citycopy.ContentBundle, error) {
	slugs, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, err
	}

	bundles := []*citycopy.ContentBundle{}
	if len(slugs) == 0 {
		return bundles, nil
	}

	keys := make([]string, len(slugs))
	for i, slug := range slugs {
		keys[i] = s.key(slug)
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Deleted between SMEMBERS and MGET.
			continue
		}
		bundle, err := decodeBundle([]byte(raw), slugs[i])
		if err != nil {
			return nil, err
		}
		if filter.Province != nil && bundle.Province != *filter.Province {
			continue
		}
		bundles = append(bundles, bundle)
	}

	slices.SortFunc(bundles, func(a, b *citycopy.ContentBundle) int {
		if c := b.GeneratedAt.Compare(a.GeneratedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.LocalitySlug, b.LocalitySlug)
	})

	return paginate(bundles, filter.Limit, filter.Offset), nil
}

// UpsertContent writes the bundle, replacing any value stored for the slug.
// A zero GeneratedAt is set to the current time.
func (s *ContentStore) UpsertContent(ctx context.Context, bundle *citycopy.ContentBundle) error {
	if err := bundle.Validate(); err != nil {
		return err
	}
	if bundle.GeneratedAt.IsZero() {
		bundle.GeneratedAt = time.Now().UTC()
	}
	bundle.Normalize()

	data, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to encode content: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(bundle.LocalitySlug), data, 0)
		pipe.SAdd(ctx, s.indexKey(), bundle.LocalitySlug)
		return nil
	})
	return err
}

// DeleteContent removes the bundle stored for a locality.
func (s *ContentStore) DeleteContent(ctx context.Context, slug string) error {
	var del *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.key(slug))
		pipe.SRem(ctx, s.indexKey(), slug)
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return citycopy.Errorf(citycopy.ENOTFOUND, "content for %q not found", slug)
	}
	return nil
}

func decodeBundle(data []byte, slug string) (*citycopy.ContentBundle, error) {
	var bundle citycopy.ContentBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode content for %q: %w", slug, err)
	}
	bundle.Normalize()
	return &bundle, nil
}

func paginate(bundles []*citycopy.ContentBundle, limit, offset int) []*citycopy.ContentBundle {
	if offset > 0 {
		if offset >= len(bundles) {
			return []*citycopy.ContentBundle{}
		}
		bundles = bundles[offset:]
	}
	if limit > 0 && limit < len(bundles) {
		bundles = bundles[:limit]
	}
	return bundles
}
