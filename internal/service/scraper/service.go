package scraper

import (
	"context"

	"auditorcrawler/internal/domain/entity"
	"auditorcrawler/internal/service/scraper/param"
)

// ScraperService runs the scrape against one live browser session. The
// session is shared mutable state, so every operation here is strictly
// sequential; parallel extraction would need one session per worker.
type ScraperService interface {
	// PrepareSession navigates to the site's entry page and dismisses
	// the disclaimer overlay if one appears. A missing overlay is not
	// an error; a failed launch or navigation is.
	PrepareSession(ctx context.Context) error
	// ScrapeParcel extracts one parcel's record. It never fails as a
	// whole: fields whose page elements cannot be read come back nil.
	ScrapeParcel(ctx context.Context, parcelNumber string) *entity.ParcelRecord
	// RunWindows scrapes parcelNumbers[StartOffset:] in fixed-size
	// windows, flushing each window to its own output file before the
	// next window starts.
	RunWindows(ctx context.Context, parcelNumbers []string, params *param.Batch) error
	// CollectParcelNumbers scrapes the advanced-search results listing
	// for parcel numbers, in listing order.
	CollectParcelNumbers(ctx context.Context) ([]string, error)
}
