// Package pagination implements keyset cursors over calendar-dated rows.
package pagination

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 31
	MaxLimit     = 366
)

const dateLayout = "2006-01-02"

// ErrInvalidCursor is returned for cursors this package did not produce.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor points at the last row of a page. Pages are ordered by date
// descending, then id descending.
type Cursor struct {
	Date time.Time
	ID   uuid.UUID
}

// NewCursor builds a cursor after the row with the given day and id.
func NewCursor(date time.Time, id uuid.UUID) Cursor {
	return Cursor{
		Date: time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		ID:   id,
	}
}

// Encode renders the cursor as an opaque URL-safe token.
func (c Cursor) Encode() string {
	raw := c.Date.Format(dateLayout) + "|" + c.ID.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token from Encode. An empty token yields a nil cursor.
func DecodeCursor(encoded string) (*Cursor, error) {
	if encoded == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	datePart, idPart, ok := strings.Cut(string(data), "|")
	if !ok {
		return nil, ErrInvalidCursor
	}
	date, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	id, err := uuid.Parse(idPart)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}

	return &Cursor{Date: date, ID: id}, nil
}

// NormalizeLimit clamps limit to 1..MaxLimit, using DefaultLimit when unset.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}
