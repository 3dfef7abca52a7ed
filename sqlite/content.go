package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/citycopy"
)

// Compile-time interface verification.
var _ citycopy.ContentStore = (*ContentStore)(nil)

const contentColumns = `slug, locality_name, province, intro_text, local_benefits,
	local_info, challenges, testimonial, faqs, generated_at`

// ContentStore implements citycopy.ContentStore using SQLite.
type ContentStore struct {
	db *DB
}

// NewContentStore creates a new ContentStore.
func NewContentStore(db *DB) *ContentStore {
	return &ContentStore{db: db}
}

// FindContentBySlug retrieves the bundle stored for a locality.
func (s *ContentStore) FindContentBySlug(ctx context.Context, slug string) (*citycopy.ContentBundle, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+contentColumns+" FROM contents WHERE slug = ?", slug)

	bundle, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, citycopy.Errorf(citycopy.ENOTFOUND, "content for %q not found", slug)
	}
	if err != nil {
		return nil, err
	}
	return bundle, nil
}

// FindContents retrieves bundles matching the filter, newest first.
func (s *ContentStore) FindContents(ctx context.Context, filter citycopy.ContentFilter) ([]*citycopy.ContentBundle, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + contentColumns + " FROM contents WHERE 1=1")

	if filter.Province != nil {
		query.WriteString(" AND province = ?")
		args = append(args, *filter.Province)
	}

	query.WriteString(" ORDER BY generated_at DESC, slug ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bundles := []*citycopy.ContentBundle{}
	for rows.Next() {
		bundle, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, bundle)
	}

	return bundles, rows.Err()
}

// UpsertContent inserts the bundle or replaces every column of the row
// with the same slug. A zero GeneratedAt is set to the current time.
func (s *ContentStore) UpsertContent(ctx context.Context, bundle *citycopy.ContentBundle) error {
	if err := bundle.Validate(); err != nil {
		return err
	}
	if bundle.GeneratedAt.IsZero() {
		bundle.GeneratedAt = time.Now().UTC()
	}
	bundle.Normalize()

	benefits, err := encodeJSON(bundle.LocalBenefits, "local_benefits")
	if err != nil {
		return err
	}
	info, err := encodeJSON(bundle.LocalInfo, "local_info")
	if err != nil {
		return err
	}
	challenges, err := encodeJSON(bundle.Challenges, "challenges")
	if err != nil {
		return err
	}
	testimonial, err := encodeJSON(bundle.Testimonial, "testimonial")
	if err != nil {
		return err
	}
	faqs, err := encodeJSON(bundle.FAQs, "faqs")
	if err != nil {
		return err
	}
	hash, err := contentHash(bundle)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO contents (`+contentColumns+`, content_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			locality_name = excluded.locality_name,
			province = excluded.province,
			intro_text = excluded.intro_text,
			local_benefits = excluded.local_benefits,
			local_info = excluded.local_info,
			challenges = excluded.challenges,
			testimonial = excluded.testimonial,
			faqs = excluded.faqs,
			generated_at = excluded.generated_at,
			content_hash = excluded.content_hash
	`, bundle.LocalitySlug, bundle.LocalityName, bundle.Province, bundle.IntroText,
		benefits, info, challenges, testimonial, faqs,
		bundle.GeneratedAt.UTC().Format(timestampFormat), hash)

	return err
}

// ContentHash returns the stored content hash for a locality. The hash
// changes whenever a regeneration produces different copy.
func (s *ContentStore) ContentHash(ctx context.Context, slug string) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, "SELECT content_hash FROM contents WHERE slug = ?", slug).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", citycopy.Errorf(citycopy.ENOTFOUND, "content for %q not found", slug)
	}
	return hash, err
}

// DeleteContent removes the bundle stored for a locality.
func (s *ContentStore) DeleteContent(ctx context.Context, slug string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM contents WHERE slug = ?", slug)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return citycopy.Errorf(citycopy.ENOTFOUND, "content for %q not found", slug)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner) (*citycopy.ContentBundle, error) {
	var bundle citycopy.ContentBundle
	var benefits, info, challenges, testimonial, faqs, generatedAt string

	if err := row.Scan(&bundle.LocalitySlug, &bundle.LocalityName, &bundle.Province, &bundle.IntroText,
		&benefits, &info, &challenges, &testimonial, &faqs, &generatedAt); err != nil {
		return nil, err
	}

	if err := decodeJSON(benefits, &bundle.LocalBenefits, "local_benefits"); err != nil {
		return nil, err
	}
	if err := decodeJSON(info, &bundle.LocalInfo, "local_info"); err != nil {
		return nil, err
	}
	if err := decodeJSON(challenges, &bundle.Challenges, "challenges"); err != nil {
		return nil, err
	}
	if err := decodeJSON(testimonial, &bundle.Testimonial, "testimonial"); err != nil {
		return nil, err
	}
	if err := decodeJSON(faqs, &bundle.FAQs, "faqs"); err != nil {
		return nil, err
	}

	var err error
	bundle.GeneratedAt, err = parseTimestamp(generatedAt, "generated_at")
	if err != nil {
		return nil, err
	}

	bundle.Normalize()
	return &bundle, nil
}
