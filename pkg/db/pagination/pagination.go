// Package pagination implements opaque cursor pagination for list endpoints.
// Tokens are URL-safe base64 over a small JSON cursor; callers fetch one row
// beyond the page size to detect whether more results remain.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size,default=10" validate:"gte=1,lte=250"`
}

// Cursor marks the last row of a page. ID is the tie-breaker for rows
// sharing a created_at timestamp.
type Cursor struct {
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(c Cursor) (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encode cursor: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeCursor(token string) (*Cursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	return &c, nil
}

// BuildCursorPageInfo derives page metadata from a result set fetched with
// limit+1 rows. extractCursor returns the token for the last row of the page.
func BuildCursorPageInfo[T any](rows []*T, limit int32, extractCursor func(*T) string) *PageInfo {
	if len(rows) == 0 {
		return &PageInfo{}
	}

	info := &PageInfo{HasMore: len(rows) > int(limit)}
	if info.HasMore {
		rows = rows[:limit]
	}
	info.NextPageToken = extractCursor(rows[len(rows)-1])
	return info
}
