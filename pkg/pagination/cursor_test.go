package pagination

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorEncodeDecode(t *testing.T) {
	id := uuid.New()
	cursor := NewCursor(time.Date(2024, 3, 14, 18, 30, 0, 0, time.UTC), id)

	decoded, err := DecodeCursor(cursor.Encode())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded == nil {
		t.Fatalf("decoded cursor is nil")
	}
	if decoded.ID != id {
		t.Fatalf("id mismatch: %s", decoded.ID)
	}
	if want := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC); !decoded.Date.Equal(want) {
		t.Fatalf("date = %s, want %s", decoded.Date, want)
	}
}

func TestDecodeCursorInvalid(t *testing.T) {
	enc := func(s string) string { return base64.RawURLEncoding.EncodeToString([]byte(s)) }

	tests := map[string]string{
		"not base64":   "bad!=base64",
		"no separator": enc("2024-03-14"),
		"bad date":     enc("14.03.2024|" + uuid.NewString()),
		"bad id":       enc("2024-03-14|not-a-uuid"),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeCursor(in)
			if !errors.Is(err, ErrInvalidCursor) {
				t.Fatalf("DecodeCursor(%q) = %v, want ErrInvalidCursor", in, err)
			}
		})
	}
}

func TestDecodeCursorEmpty(t *testing.T) {
	cursor, err := DecodeCursor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cursor != nil {
		t.Fatalf("expected nil cursor, got %+v", cursor)
	}
}

func TestNormalizeLimit(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, DefaultLimit},
		{-10, DefaultLimit},
		{MaxLimit + 1, MaxLimit},
		{50, 50},
	}

	for _, tt := range tests {
		if got := NormalizeLimit(tt.in); got != tt.want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
