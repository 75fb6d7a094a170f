// Package pagination serves arbitrary (from, size) windows out of a
// page-oriented query source whose native page length is fixed at query time.
//
// The source only answers "give me page N of size S". A requested window
// rarely aligns to a page boundary, so the adapter requests native pages
// sized exactly like the window and either serves the window from a single
// page (when from is a multiple of size) or stitches it from two adjacent
// pages, discarding the leading rows that fall before the window.
package pagination

import (
	"fmt"

	"github.com/gearshare/service-rental/internal/domain"
)

// Request is a validated (from, size) window: from is a zero-based offset,
// size the maximum number of rows to return.
type Request struct {
	From int
	Size int
}

// Parse validates optional pagination parameters. Both absent means unpaged
// (nil Request, nil error). Exactly one present is a validation failure:
// partial pagination parameters are never accepted.
func Parse(from, size *int) (*Request, error) {
	if from == nil && size == nil {
		return nil, nil
	}
	if from == nil || size == nil {
		return nil, domain.NewValidationError("missing pagination parameter: from and size must be provided together")
	}
	if *from < 0 {
		return nil, domain.NewValidationError(fmt.Sprintf("from must not be negative, got %d", *from))
	}
	if *size < 1 {
		return nil, domain.NewValidationError(fmt.Sprintf("size must be positive, got %d", *size))
	}
	return &Request{From: *from, Size: *size}, nil
}

// FetchPageFunc retrieves native page number page (zero-based) of exactly
// size rows, or fewer when the underlying data is exhausted, preserving the
// predicate's native ordering.
type FetchPageFunc[T any] func(page, size int) ([]T, error)

// FetchWindow returns rows [from, from+size) of the ordered result set behind
// fetch. When the window starts on a native page boundary a single fetch
// suffices; otherwise the window straddles two native pages, which are
// stitched together and trimmed to the exact window.
func FetchWindow[T any](req Request, fetch FetchPageFunc[T]) ([]T, error) {
	page := req.From / req.Size
	remainder := req.From % req.Size

	rows, err := fetch(page, req.Size)
	if err != nil {
		return nil, err
	}

	if remainder != 0 {
		next, err := fetch(page+1, req.Size)
		if err != nil {
			return nil, err
		}
		rows = append(rows, next...)
		if remainder >= len(rows) {
			return []T{}, nil
		}
		rows = rows[remainder:]
	}

	if len(rows) > req.Size {
		rows = rows[:req.Size]
	}
	return rows, nil
}
