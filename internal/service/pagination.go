package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/xanke/disney-sns/internal/models"
)

// Page size bounds.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxOffset bounds Index*Limit so the row offset cannot overflow.
	MaxOffset = math.MaxInt32
)

// Page is a zero-based offset page.
type Page struct {
	Limit int
	Index int
}

// Offset is the number of rows to skip.
func (p Page) Offset() int {
	return p.Index * p.Limit
}

// ParsePage reads raw limit/page query values. Empty values take the
// defaults; anything non-numeric or negative is a validation error rather
// than a silent fallback. Limits above MaxPageSize are capped; a page whose
// offset would exceed MaxOffset is rejected.
func ParsePage(limitRaw, pageRaw string, defaultLimit int) (Page, error) {
	p := Page{Limit: defaultLimit}
	if p.Limit <= 0 {
		p.Limit = DefaultPageSize
	}

	if s := strings.TrimSpace(limitRaw); s != "" {
		limit, err := strconv.Atoi(s)
		if err != nil || limit <= 0 {
			return Page{}, models.NewValidationError("limit must be a positive integer")
		}
		p.Limit = limit
	}
	if s := strings.TrimSpace(pageRaw); s != "" {
		index, err := strconv.Atoi(s)
		if err != nil || index < 0 {
			return Page{}, models.NewValidationError("page must be a non-negative integer")
		}
		p.Index = index
	}

	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	if p.Index > MaxOffset/p.Limit {
		return Page{}, models.NewValidationError("page is out of range")
	}
	return p, nil
}
