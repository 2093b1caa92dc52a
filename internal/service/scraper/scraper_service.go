package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auditorcrawler/internal/domain/entity"
	"auditorcrawler/internal/domain/model"
	"auditorcrawler/internal/infra/crawler/chrome"
	"auditorcrawler/internal/infra/persistence/csvstore"
	"auditorcrawler/internal/infra/persistence/es"
	"auditorcrawler/internal/service/scraper/param"

	"go.uber.org/zap"
)

type scraperService struct {
	chromeCrawler chrome.ChromeCrawler
	windowWriter  *csvstore.WindowWriter
	// typedEsClient is nil when the Elasticsearch mirror is disabled
	typedEsClient es.TypedEsClient[*model.ParcelDoc]
	site          *param.Site
	logger        *zap.Logger
}

func InitScraperService(
	chromeCrawler chrome.ChromeCrawler,
	windowWriter *csvstore.WindowWriter,
	typedEsClient es.TypedEsClient[*model.ParcelDoc],
	site *param.Site,
	logger *zap.Logger,
) ScraperService {
	return &scraperService{
		chromeCrawler: chromeCrawler,
		windowWriter:  windowWriter,
		typedEsClient: typedEsClient,
		site:          site,
		logger:        logger,
	}
}

func (ss *scraperService) PrepareSession(ctx context.Context) error {
	entryURL := fmt.Sprintf(ss.site.ParcelURLFormat, "")
	if err := ss.chromeCrawler.InitAndNavigate(entryURL); err != nil {
		return fmt.Errorf("open session at %s: %w", entryURL, err)
	}
	if err := ss.site.PageLoad.Wait(ctx); err != nil {
		return err
	}

	// The disclaimer only shows on some entry points
	if err := ss.chromeCrawler.Click(ss.site.DisclaimerButtonID); err != nil {
		ss.logger.Info("disclaimer button not found, continuing", zap.Error(err))
	}
	return nil
}

func (ss *scraperService) ScrapeParcel(ctx context.Context, parcelNumber string) *entity.ParcelRecord {
	record := &entity.ParcelRecord{ParcelNumber: parcelNumber}

	parcelURL := fmt.Sprintf(ss.site.ParcelURLFormat, parcelNumber)
	if err := ss.chromeCrawler.Navigate(parcelURL); err != nil {
		ss.logger.Warn("navigate to parcel page failed",
			zap.String("parcel", parcelNumber), zap.Error(err))
		return record
	}
	if err := ss.site.PageLoad.Wait(ctx); err != nil {
		return record
	}

	// Base sub-view is the landing tab
	record.Address = ss.readLabel(parcelNumber, addressID)

	if ss.switchTab(ctx, parcelNumber, valuationTabToken) {
		record.AppraisedValue = ss.readLabel(parcelNumber, valuationID)
	}

	if ss.switchTab(ctx, parcelNumber, residentialTabToken) {
		if residential := ss.readResidential(parcelNumber); residential != nil {
			record.NumStories = residential[0]
			record.YearBuilt = residential[1]
			record.NumBedrooms = residential[2]
			record.NumFullBaths = residential[3]
			record.NumHalfBaths = residential[4]
			record.LivingArea = residential[5]
			record.Basement = residential[6]
			record.BasementArea = residential[7]
		}
	}

	return record
}

// readLabel reads one label's text; a failed lookup degrades to nil.
func (ss *scraperService) readLabel(parcelNumber, id string) *string {
	text, err := ss.chromeCrawler.ElementText(id)
	if err != nil {
		ss.logger.Debug("field lookup failed",
			zap.String("parcel", parcelNumber), zap.String("id", id), zap.Error(err))
		return nil
	}
	return &text
}

// readResidential reads the residential labels as one batch: if any
// lookup fails the whole batch is nil and the remaining lookups are
// skipped. The sub-view is treated as atomic.
func (ss *scraperService) readResidential(parcelNumber string) []*string {
	values := make([]*string, 0, len(residentialIDs))
	for _, id := range residentialIDs {
		text, err := ss.chromeCrawler.ElementText(id)
		if err != nil {
			ss.logger.Debug("residential batch lookup failed",
				zap.String("parcel", parcelNumber), zap.String("id", id), zap.Error(err))
			return nil
		}
		values = append(values, &text)
	}
	return values
}

// switchTab fires the sub-view's menu postback and waits out the render.
func (ss *scraperService) switchTab(ctx context.Context, parcelNumber, token string) bool {
	if err := ss.chromeCrawler.Eval(tabScript(token)); err != nil {
		ss.logger.Debug("tab switch failed",
			zap.String("parcel", parcelNumber), zap.String("tab", token), zap.Error(err))
		return false
	}
	if err := ss.site.TabRender.Wait(ctx); err != nil {
		return false
	}
	return true
}

func (ss *scraperService) RunWindows(ctx context.Context, parcelNumbers []string, params *param.Batch) error {
	for offset := params.StartOffset; offset < len(parcelNumbers); offset += params.WindowSize {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(offset+params.WindowSize, len(parcelNumbers))
		window := parcelNumbers[offset:end]

		startTime := time.Now()
		records := make([]*entity.ParcelRecord, 0, len(window))
		for _, parcelNumber := range window {
			records = append(records, ss.ScrapeParcel(ctx, parcelNumber))
		}
		elapsed := time.Since(startTime)

		path, err := ss.windowWriter.WriteWindow(offset, records)
		if err != nil {
			return fmt.Errorf("write window at offset %d: %w", offset, err)
		}

		if ss.typedEsClient != nil {
			ss.indexWindow(ctx, records)
		}

		ss.logger.Info("window complete",
			zap.Int("offset", offset),
			zap.Int("records", len(records)),
			zap.Float64("minutes", elapsed.Minutes()),
			zap.String("file", path))
	}
	return nil
}

// indexWindow mirrors a window into Elasticsearch. Failures are logged
// and swallowed: the CSV file already on disk is the durable output.
func (ss *scraperService) indexWindow(ctx context.Context, records []*entity.ParcelRecord) {
	docs := make([]*model.ParcelDoc, 0, len(records))
	for _, record := range records {
		docs = append(docs, record.ToDocument())
	}

	reqCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	if err := ss.typedEsClient.BulkIndexDocsWithID(reqCtx, docs); err != nil {
		ss.logger.Error("bulk index window", zap.Error(err))
		return
	}
	count, err := ss.typedEsClient.CountDocs(reqCtx)
	if err != nil {
		ss.logger.Warn("count mirrored docs", zap.Error(err))
		return
	}
	ss.logger.Info("mirror index size", zap.Int64("docs", count))
}

func (ss *scraperService) CollectParcelNumbers(ctx context.Context) ([]string, error) {
	if err := ss.chromeCrawler.Navigate(ss.site.SearchResultsURL); err != nil {
		return nil, fmt.Errorf("navigate to search results: %w", err)
	}
	if err := ss.site.PageLoad.Wait(ctx); err != nil {
		return nil, err
	}

	evenRows, err := ss.chromeCrawler.ElementsTextByClass(listingRowClass)
	if err != nil {
		return nil, fmt.Errorf("read listing rows: %w", err)
	}
	oddRows, err := ss.chromeCrawler.ElementsTextByClass(listingAlternatingRowClass)
	if err != nil {
		return nil, fmt.Errorf("read alternating listing rows: %w", err)
	}

	rows := append(evenRows, oddRows...)
	parcelNumbers := make([]string, 0, len(rows))
	for _, row := range rows {
		fields := strings.Fields(row)
		if len(fields) == 0 {
			continue
		}
		parcelNumbers = append(parcelNumbers, fields[0])
	}
	return parcelNumbers, nil
}
