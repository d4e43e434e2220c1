// Package listing implements the session-backed filter, sort and
// pagination protocol shared by every list view.
package listing

import (
	"math"
	"regexp"
	"strconv"
)

const (
	// DefaultLimit is the page size used until the client picks one.
	DefaultLimit = 4
	// LastPage is the sentinel offset meaning "jump to the last page".
	LastPage = -1
)

// Limits are the page sizes the UI offers.
var Limits = []int{4, 8, 16}

var intPattern = regexp.MustCompile(`^-?[0-9]+$`)

// ParseInt parses a strictly numeric string, returning def otherwise.
// Garbage never errors a listing, it just falls back.
func ParseInt(s string, def int) int {
	if !intPattern.MatchString(s) {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// Page is the resolved pagination window for one request.
type Page struct {
	Count  int // total pages, always >= 1
	Offset int // 1-based page number, clamped into [1, Count]
	Limit  int
}

// RowOffset is the number of rows to skip for the resolved page.
func (p Page) RowOffset() int {
	return (p.Offset - 1) * p.Limit
}

// Resolve computes the page count and clamps the requested page number.
// Zero matching rows still yields one (empty) page, out-of-range
// requests snap to the nearest valid page instead of erroring, and the
// LastPage sentinel resolves to the final page.
func Resolve(total int64, limit, requested int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	count := int(math.Ceil(float64(total) / float64(limit)))
	if count < 1 {
		count = 1
	}

	offset := requested
	if offset > 1 {
		if offset > count {
			offset = count
		}
	} else if offset == LastPage {
		offset = count
	} else {
		offset = 1
	}

	return Page{Count: count, Offset: offset, Limit: limit}
}

// ResolveLimit picks the effective page size: an explicit positive
// request value wins (and the caller persists it), otherwise the
// session-stored value, otherwise DefaultLimit.
func ResolveLimit(requested, stored int) int {
	if requested > 0 {
		return requested
	}
	if stored > 0 {
		return stored
	}
	return DefaultLimit
}
