package main

import (
	_ "embed"
	"log"
	"os"
	"path/filepath"

	"auditorcrawler/internal/config"
	"auditorcrawler/internal/infra/crawler/collector"
	"auditorcrawler/internal/logging"
	"auditorcrawler/internal/pathutil"
	"auditorcrawler/internal/service/discovery"

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

	cwd, err := os.Getwd()
	if err != nil {
		logger.Fatal("resolve working directory", zap.Error(err))
	}
	projectRoot, err := pathutil.FindProjectRoot(cwd, appcfg.Scrape.ProjectName)
	if err != nil {
		logger.Fatal("resolve project root", zap.Error(err))
	}

	service := discovery.InitDiscoveryService(collector.InitCollyCrawler(appcfg), logger)

	parcelNumbers, err := service.CollectParcelNumbers(appcfg.Auditor.SearchResultsURL)
	if err != nil {
		logger.Fatal("collect parcel numbers", zap.Error(err))
	}

	outPath := filepath.Join(projectRoot, appcfg.Scrape.DataDir, appcfg.Scrape.ParcelNumbersFile)
	if err := service.SaveParcelNumbers(outPath, parcelNumbers); err != nil {
		logger.Fatal("save parcel numbers", zap.Error(err))
	}
}
