package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/fwojciec/citycopy"
	ccredis "github.com/fwojciec/citycopy/redis"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) (*ccredis.ContentStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return ccredis.NewContentStore(client, ""), mr
}

func newBundle(slug, province string, day int) *citycopy.ContentBundle {
	return &citycopy.ContentBundle{
		LocalitySlug:  slug,
		LocalityName:  slug,
		Province:      province,
		IntroText:     "Intro " + slug,
		LocalBenefits: []string{"uno", "dos"},
		Testimonial:   citycopy.Testimonial{Text: "Genial", Author: "Ana", Neighborhood: "Centro"},
		FAQs:          []citycopy.FAQ{{Question: "¿Sí?", Answer: "Sí."}},
		GeneratedAt:   time.Date(2026, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewClient_ContentTest(t *testing.T) {
	t.Parallel()

	t.Run("requires address", func(t *testing.T) {
		t.Parallel()

		_, err := ccredis.NewClient(ccredis.Config{})

		require.ErrorIs(t, err, ccredis.ErrEmptyAddress)
	})

	t.Run("connects to server", func(t *testing.T) {
		t.Parallel()

		mr := miniredis.RunT(t)

		client, err := ccredis.NewClient(ccredis.Config{Address: mr.Addr()})

		require.NoError(t, err)
		require.NoError(t, client.Close())
	})
}

func TestContentStore_UpsertContent(t *testing.T) {
	t.Parallel()

	t.Run("stores bundle under prefixed key", func(t *testing.T) {
		t.Parallel()

		store, mr := setupStore(t)
		ctx := context.Background()

		require.NoError(t, store.UpsertContent(ctx, newBundle("elche", "Alicante", 1)))

		assert.True(t, mr.Exists("citycopy:content:elche"))
		found, err := store.FindContentBySlug(ctx, "elche")
		require.NoError(t, err)
		assert.Equal(t, "Intro elche", found.IntroText)
		assert.Equal(t, []string{"uno", "dos"}, found.LocalBenefits)
		assert.True(t, found.GeneratedAt.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("replaces existing bundle entirely", func(t *testing.T) {
		t.Parallel()

		store, _ := setupStore(t)
		ctx := context.Background()
		require.NoError(t, store.UpsertContent(ctx, newBundle("elche", "Alicante", 1)))

		require.NoError(t, store.UpsertContent(ctx, &citycopy.ContentBundle{
			LocalitySlug: "elche",
			IntroText:    "Nuevo",
		}))

		found, err := store.FindContentBySlug(ctx, "elche")
		require.NoError(t, err)
		assert.Equal(t, "Nuevo", found.IntroText)
		assert.Equal(t, citycopy.Testimonial{}, found.Testimonial)
		assert.Equal(t, []string{}, found.LocalBenefits)
		assert.Empty(t, found.Province)
	})

	t.Run("returns error for invalid bundle", func(t *testing.T) {
		t.Parallel()

		store, _ := setupStore(t)

		err := store.UpsertContent(context.Background(), &citycopy.ContentBundle{})

		assert.Equal(t, citycopy.EINVALID, citycopy.ErrorCode(err))
	})

	t.Run("returns error when server is unavailable", func(t *testing.T) {
		t.Parallel()

		store, mr := setupStore(t)
		mr.Close()

		err := store.UpsertContent(context.Background(), newBundle("elche", "Alicante", 1))

		require.Error(t, err)
	})
}

func TestContentStore_FindContentBySlug(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing slug", func(t *testing.T) {
		t.Parallel()

		store, _ := setupStore(t)

		_, err := store.FindContentBySlug(context.Background(), "nowhere")

		assert.Equal(t, citycopy.ENOTFOUND, citycopy.ErrorCode(err))
	})
}

func TestContentStore_FindContents(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T) *ccredis.ContentStore {
		t.Helper()
		store, _ := setupStore(t)
		ctx := context.Background()
		require.NoError(t, store.UpsertContent(ctx, newBundle("elche", "Alicante", 1)))
		require.NoError(t, store.UpsertContent(ctx, newBundle("alicante", "Alicante", 2)))
		require.NoError(t, store.UpsertContent(ctx, newBundle("murcia", "Murcia", 3)))
		return store
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		store := seed(t)

		bundles, err := store.FindContents(context.Background(), citycopy.ContentFilter{})

		require.NoError(t, err)
		require.Len(t, bundles, 3)
		assert.Equal(t, "murcia", bundles[0].LocalitySlug)
		assert.Equal(t, "elche", bundles[2].LocalitySlug)
	})

	t.Run("filters by province and paginates", func(t *testing.T) {
		t.Parallel()

		store := seed(t)
		province := "Alicante"

		bundles, err := store.FindContents(context.Background(), citycopy.ContentFilter{Province: &province, Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, bundles, 1)
		assert.Equal(t, "elche", bundles[0].LocalitySlug)
	})

	t.Run("returns empty slice when offset exceeds results", func(t *testing.T) {
		t.Parallel()

		store := seed(t)

		bundles, err := store.FindContents(context.Background(), citycopy.ContentFilter{Offset: 10})

		require.NoError(t, err)
		assert.Empty(t, bundles)
	})
}

func TestContentStore_DeleteContent(t *testing.T) {
	t.Parallel()

	t.Run("removes bundle and index entry", func(t *testing.T) {
		t.Parallel()

		store, mr := setupStore(t)
		ctx := context.Background()
		require.NoError(t, store.UpsertContent(ctx, newBundle("elche", "Alicante", 1)))

		require.NoError(t, store.DeleteContent(ctx, "elche"))

		assert.False(t, mr.Exists("citycopy:content:elche"))
		bundles, err := store.FindContents(ctx, citycopy.ContentFilter{})
		require.NoError(t, err)
		assert.Empty(t, bundles)
	})

	t.Run("returns ENOTFOUND for missing slug", func(t *testing.T) {
		t.Parallel()

		store, _ := setupStore(t)

		err := store.DeleteContent(context.Background(), "nowhere")

		assert.Equal(t, citycopy.ENOTFOUND, citycopy.ErrorCode(err))
	})
}
