package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"auditorcrawler/internal/config"
	"auditorcrawler/internal/domain/model"
	"auditorcrawler/internal/infra/crawler/chrome"
	"auditorcrawler/internal/infra/persistence/csvstore"
	"auditorcrawler/internal/infra/persistence/es"
	"auditorcrawler/internal/logging"
	"auditorcrawler/internal/pathutil"
	"auditorcrawler/internal/service/scraper"
	"auditorcrawler/internal/service/scraper/param"

	"go.uber.org/zap"
)

//go:embed appconfig/appconfig.json
var appConfig []byte

func main() {
	appcfg, err := config.ParseConfig(appConfig)
	if err != nil {
		log.Fatalf("parse config: %v", err)
	}
	logger, err := logging.New("info")
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync()

	// run owns the browser session; keeping fatal exits outside it
	// guarantees the session closes on every path out of the loop.
	if err := run(appcfg, logger); err != nil {
		logger.Fatal("scrape failed", zap.Error(err))
	}
}

func run(appcfg *config.Config, logger *zap.Logger) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	projectRoot, err := pathutil.FindProjectRoot(cwd, appcfg.Scrape.ProjectName)
	if err != nil {
		return err
	}
	dataDir := filepath.Join(projectRoot, appcfg.Scrape.DataDir)

	parcelNumbers, err := csvstore.LoadParcelNumbers(filepath.Join(dataDir, appcfg.Scrape.ParcelNumbersFile))
	if err != nil {
		return err
	}
	logger.Info("loaded parcel numbers",
		zap.Int("count", len(parcelNumbers)),
		zap.Int("start_offset", appcfg.Scrape.StartOffset))

	ctx := context.Background()

	var chromeCrawler chrome.ChromeCrawler
	switch appcfg.Scrape.Backend {
	case config.BackendChromedp:
		chromeCrawler = chrome.InitChromedpCrawler(ctx, appcfg)
	case config.BackendRod:
		chromeCrawler, err = chrome.InitRodCrawler(appcfg)
		if err != nil {
			return fmt.Errorf("init rod crawler: %w", err)
		}
	}
	defer chromeCrawler.Close()

	var esClient es.TypedEsClient[*model.ParcelDoc]
	if appcfg.Elasticsearch.Enabled {
		esClient, err = es.InitTypedEsClient[*model.ParcelDoc](appcfg, logger)
		if err != nil {
			return fmt.Errorf("init elasticsearch client: %w", err)
		}
		if err := esClient.CreateIndexWithMapping(ctx); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	site := &param.Site{
		SearchResultsURL:   appcfg.Auditor.SearchResultsURL,
		ParcelURLFormat:    appcfg.Auditor.ParcelURLFormat,
		DisclaimerButtonID: appcfg.Auditor.DisclaimerButtonID,
		PageLoad:           chrome.FixedDelay(time.Duration(appcfg.Auditor.PageLoadSeconds) * time.Second),
		TabRender:          chrome.FixedDelay(time.Duration(appcfg.Auditor.TabRenderSeconds) * time.Second),
	}
	service := scraper.InitScraperService(
		chromeCrawler, csvstore.NewWindowWriter(dataDir), esClient, site, logger)

	if err := service.PrepareSession(ctx); err != nil {
		return err
	}
	return service.RunWindows(ctx, parcelNumbers, &param.Batch{
		WindowSize:  appcfg.Scrape.WindowSize,
		StartOffset: appcfg.Scrape.StartOffset,
	})
}
