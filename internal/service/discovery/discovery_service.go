// Package discovery collects the parcel identifier list from the
// auditor's advanced-search results listing. The listing is plain HTML,
// so it goes through the static collector instead of a browser session.
package discovery

import (
	"fmt"

	"auditorcrawler/internal/infra/crawler/collector"
	"auditorcrawler/internal/infra/persistence/csvstore"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Listing rows alternate between two row classes; the parcel number is
// the row's first cell.
const (
	listingRowSelector            = "tr.rowstyle"
	listingAlternatingRowSelector = "tr.alternatingrowstyle"
	parcelCellSelector            = "td:nth-of-type(1)"
)

type DiscoveryService interface {
	// CollectParcelNumbers visits the results listing and returns the
	// parcel numbers it carries, in listing order per row class.
	CollectParcelNumbers(resultsURL string) ([]string, error)
	// SaveParcelNumbers persists the collected list where the batch
	// scraper expects its input.
	SaveParcelNumbers(path string, parcelNumbers []string) error
}

type discoveryService struct {
	collyCrawler collector.CollyCrawler
	logger       *zap.Logger
}

func InitDiscoveryService(collyCrawler collector.CollyCrawler, logger *zap.Logger) DiscoveryService {
	return &discoveryService{
		collyCrawler: collyCrawler,
		logger:       logger,
	}
}

func (ds *discoveryService) CollectParcelNumbers(resultsURL string) ([]string, error) {
	var parcelNumbers []string
	var visitErr error

	appendRow := func(e *colly.HTMLElement) {
		parcelNumber := e.ChildText(parcelCellSelector)
		if parcelNumber == "" {
			return
		}
		parcelNumbers = append(parcelNumbers, parcelNumber)
	}
	ds.collyCrawler.OnHTML(listingRowSelector, appendRow)
	ds.collyCrawler.OnHTML(listingAlternatingRowSelector, appendRow)
	ds.collyCrawler.OnError(func(r *colly.Response, err error) {
		visitErr = err
	})

	if err := ds.collyCrawler.Visit(resultsURL); err != nil {
		return nil, err
	}
	ds.collyCrawler.Wait()
	if visitErr != nil {
		return nil, fmt.Errorf("fetch search results: %w", visitErr)
	}

	ds.logger.Info("collected parcel numbers",
		zap.Int("count", len(parcelNumbers)), zap.String("url", resultsURL))
	return parcelNumbers, nil
}

func (ds *discoveryService) SaveParcelNumbers(path string, parcelNumbers []string) error {
	if err := csvstore.WriteParcelNumbers(path, parcelNumbers); err != nil {
		return fmt.Errorf("save parcel numbers: %w", err)
	}
	ds.logger.Info("saved parcel numbers",
		zap.Int("count", len(parcelNumbers)), zap.String("file", path))
	return nil
}
