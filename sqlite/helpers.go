package sqlite

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/citycopy"
)

// timestampFormat is RFC3339 with a fixed-width fraction so that stored
// timestamps sort correctly as text.
const timestampFormat = "2006-01-02T15:04:05.000000000Z07:00"

// parseTimestamp parses an RFC3339 timestamp, naming the field on failure.
func parseTimestamp(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses when values are > 0.
// SQLite only accepts OFFSET after LIMIT, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit <= 0 && offset <= 0 {
		return
	}
	if limit <= 0 {
		limit = -1
	}
	query.WriteString(" LIMIT ?")
	*args = append(*args, limit)
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// encodeJSON serializes a column value stored as JSON text.
func encodeJSON(v any, fieldName string) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", fieldName, err)
	}
	return string(b), nil
}

// decodeJSON parses a JSON text column into v.
func decodeJSON(value string, v any, fieldName string) error {
	if err := json.Unmarshal([]byte(value), v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", fieldName, err)
	}
	return nil
}

// contentHash fingerprints the generated copy. Slug and timestamp are
// excluded so identical regenerations hash the same.
func contentHash(bundle *citycopy.ContentBundle) (string, error) {
	c := *bundle
	c.LocalitySlug = ""
	c.GeneratedAt = time.Time{}
	b, err := json.Marshal(&c)
	if err != nil {
		return "", fmt.Errorf("failed to hash content: %w", err)
	}
	return strconv.FormatUint(xxhash.Sum64(b), 16), nil
}
