package chrome

import (
	"context"
	"fmt"
	"time"

	"auditorcrawler/internal/config"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
)

// lookupTimeout bounds a single element lookup. chromedp blocks until the
// selector matches, and a missing label must surface as an error instead
// of stalling the run.
const lookupTimeout = 3 * time.Second

type chromedpCrawler struct {
	allocCtx      context.Context
	allocCtxFuc   context.CancelFunc
	pageCtx       context.Context
	pageCtxFuc    context.CancelFunc
	timeoutCtxFuc context.CancelFunc
}

func InitChromedpCrawler(ctx context.Context, cfg *config.Config) ChromeCrawler {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Chromedp.Headless),
		chromedp.Flag("disable-blink-features", cfg.Chromedp.DisableBlinkFeatures),
		chromedp.Flag("incognito", cfg.Chromedp.Incognito),
		chromedp.Flag("disable-dev-shm-usage", cfg.Chromedp.DisableDevShmUsage),
		chromedp.Flag("no-sandbox", cfg.Chromedp.NoSandbox),
		chromedp.UserDataDir(cfg.Chromedp.UserDataDir),
		chromedp.UserAgent(cfg.Chromedp.UserAgent),
	)
	lifeTime := time.Duration(cfg.Chromedp.LifeTime) * time.Second
	if lifeTime <= 0 {
		lifeTime = 24 * time.Hour
	}
	timeoutCtx, cancelTimeout := context.WithTimeout(ctx, lifeTime)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(timeoutCtx, opts...)
	pageCtx, cancelPage := chromedp.NewContext(allocCtx)

	return &chromedpCrawler{
		allocCtx:      allocCtx,
		allocCtxFuc:   cancelAlloc,
		pageCtx:       pageCtx,
		pageCtxFuc:    cancelPage,
		timeoutCtxFuc: cancelTimeout,
	}
}

func (cc *chromedpCrawler) Close() {
	cc.pageCtxFuc()
	cc.allocCtxFuc()
	cc.timeoutCtxFuc()
}

func (cc *chromedpCrawler) InitAndNavigate(url string) error {
	return chromedp.Run(cc.pageCtx,
		network.Enable(),
		chromedp.Navigate(url),
	)
}

func (cc *chromedpCrawler) Navigate(url string) error {
	return chromedp.Run(cc.pageCtx, chromedp.Navigate(url))
}

func (cc *chromedpCrawler) ElementText(id string) (string, error) {
	lookupCtx, cancel := context.WithTimeout(cc.pageCtx, lookupTimeout)
	defer cancel()

	var text string
	if err := chromedp.Run(lookupCtx, chromedp.Text("#"+id, &text, chromedp.ByID)); err != nil {
		return "", fmt.Errorf("read text of element %q: %w", id, err)
	}
	return text, nil
}

func (cc *chromedpCrawler) ElementsTextByClass(class string) ([]string, error) {
	lookupCtx, cancel := context.WithTimeout(cc.pageCtx, lookupTimeout)
	defer cancel()

	js := fmt.Sprintf(
		`Array.from(document.getElementsByClassName(%q)).map(function(el) { return el.innerText; })`,
		class)
	var texts []string
	if err := chromedp.Run(lookupCtx, chromedp.Evaluate(js, &texts)); err != nil {
		return nil, fmt.Errorf("read elements of class %q: %w", class, err)
	}
	return texts, nil
}

func (cc *chromedpCrawler) Click(id string) error {
	lookupCtx, cancel := context.WithTimeout(cc.pageCtx, lookupTimeout)
	defer cancel()

	if err := chromedp.Run(lookupCtx, chromedp.Click("#"+id, chromedp.ByID)); err != nil {
		return fmt.Errorf("click element %q: %w", id, err)
	}
	return nil
}

func (cc *chromedpCrawler) Eval(js string) error {
	if err := chromedp.Run(cc.pageCtx, chromedp.Evaluate(js, nil)); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}
