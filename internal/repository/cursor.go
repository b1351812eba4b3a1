package repository

import (
	"encoding/base64"
	"fmt"
	"time"

	"socialfeed/internal/models"
)

// Cursors are opaque to clients: the encoded creation timestamp of the
// last item of the previous page.

func EncodeCursor(t time.Time) string {
	return base64.URLEncoding.EncodeToString([]byte(t.UTC().Format(time.RFC3339Nano)))
}

func DecodeCursor(cursor string) (time.Time, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cursor: %w", models.ErrValidation)
	}

	t, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid cursor: %w", models.ErrValidation)
	}

	return t, nil
}
