package opendata

import (
	"context"

	"github.com/openshelf/branch-events/internal/domain"
)

// PageFetcher retrieves one page at the given offset.
type PageFetcher func(ctx context.Context, offset, limit int) (Page, error)

// Result is a full record set assembled from sequential page fetches.
// Truncated reports that the hard cap stopped iteration before the
// source was exhausted; callers should treat such a set as potentially
// incomplete.
type Result struct {
	Records   []domain.RawRecord
	Truncated bool
}

// FetchAll drives a bounded sequential fetch loop: pages are requested
// one at a time, each only after the previous completes, so at most one
// request is in flight against the source. Iteration ends when a page
// comes back short (end of data) or the next offset would exceed
// hardCap. A failing page fetch propagates unchanged — no retries.
func FetchAll(ctx context.Context, fetch PageFetcher, pageSize, hardCap int) (Result, error) {
	if pageSize <= 0 {
		pageSize = 100
	}

	var out Result
	for offset := 0; ; offset += pageSize {
		if hardCap > 0 && offset >= hardCap {
			out.Truncated = true
			return out, nil
		}
		page, err := fetch(ctx, offset, pageSize)
		if err != nil {
			return Result{}, err
		}
		out.Records = append(out.Records, page.Records...)
		if len(page.Records) < pageSize {
			return out, nil
		}
	}
}
