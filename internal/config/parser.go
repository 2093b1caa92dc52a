package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

const (
	BackendChromedp = "chromedp"
	BackendRod      = "rod"
)

func ParseConfig(byteConfig []byte) (*Config, error) {
	var cfg Config
	err := json.Unmarshal(byteConfig, &cfg)
	if err != nil {
		return nil, err
	}
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	if cfg.Chromedp.UserDataDir != "" {
		absPath, err := filepath.Abs(cfg.Chromedp.UserDataDir)
		if err != nil {
			return nil, err
		}
		cfg.Chromedp.UserDataDir = absPath
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.Scrape.Backend {
	case BackendChromedp, BackendRod:
	default:
		return fmt.Errorf("unknown scrape backend: %q", cfg.Scrape.Backend)
	}
	if cfg.Scrape.WindowSize <= 0 {
		return fmt.Errorf("scrape window_size must be positive, got %d", cfg.Scrape.WindowSize)
	}
	if cfg.Scrape.StartOffset < 0 {
		return fmt.Errorf("scrape start_offset must not be negative, got %d", cfg.Scrape.StartOffset)
	}
	if cfg.Auditor.ParcelURLFormat == "" {
		return fmt.Errorf("auditor parcel_url_format is required")
	}
	return nil
}
