package collector

import (
	"fmt"
	"time"

	"auditorcrawler/internal/config"

	"github.com/gocolly/colly/v2"
)

type collyCrawler struct {
	colly *colly.Collector
}

func InitCollyCrawler(cfg *config.Config) CollyCrawler {
	var opts []colly.CollectorOption
	opts = append(opts,
		colly.MaxDepth(cfg.Colly.MaxDepth),
		colly.UserAgent(cfg.Colly.UserAgent),
		colly.AllowedDomains(cfg.Colly.AllowedDomains...),
	)
	if cfg.Colly.IgnoreRobotsTxt {
		opts = append(opts, colly.IgnoreRobotsTxt())
	}
	c := colly.NewCollector(opts...)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Delay:       time.Duration(cfg.Colly.Delay) * time.Second,
		RandomDelay: time.Duration(cfg.Colly.RandomDelay) * time.Second,
	})
	return &collyCrawler{
		colly: c,
	}
}

func (c *collyCrawler) Visit(url string) error {
	if err := c.colly.Visit(url); err != nil {
		return fmt.Errorf("visit %s: %w", url, err)
	}
	return nil
}

func (c *collyCrawler) Wait() {
	c.colly.Wait()
}

func (c *collyCrawler) OnHTML(selector string, callback func(e *colly.HTMLElement)) {
	c.colly.OnHTML(selector, callback)
}

func (c *collyCrawler) OnError(callback func(r *colly.Response, err error)) {
	c.colly.OnError(callback)
}
