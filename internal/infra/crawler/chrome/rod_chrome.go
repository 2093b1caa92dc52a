package chrome

import (
	"fmt"

	"auditorcrawler/internal/config"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

type rodCrawler struct {
	browser *rod.Browser
	page    *rod.Page
}

func InitRodCrawler(cfg *config.Config) (ChromeCrawler, error) {
	l := launcher.New().
		Headless(cfg.Rod.Headless).
		Leakless(cfg.Rod.Leakless)
	if cfg.Rod.Bin != "" {
		l = l.Bin(cfg.Rod.Bin)
	}
	if cfg.Rod.UserDataDir != "" {
		l = l.UserDataDir(cfg.Rod.UserDataDir)
	}
	if cfg.Rod.DisableBlinkFeatures != "" {
		l = l.Set("disable-blink-features", cfg.Rod.DisableBlinkFeatures)
	}
	if cfg.Rod.UserAgent != "" {
		l = l.Set("user-agent", cfg.Rod.UserAgent)
	}
	if cfg.Rod.Incognito {
		l = l.Set("incognito")
	}
	if cfg.Rod.DisableDevShmUsage {
		l = l.Set("disable-dev-shm-usage")
	}
	if cfg.Rod.NoSandbox {
		l = l.Set("no-sandbox")
	}

	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(url)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect to browser: %w", err)
	}
	return &rodCrawler{browser: browser}, nil
}

func (rc *rodCrawler) Close() {
	rc.browser.MustClose()
}

func (rc *rodCrawler) InitAndNavigate(url string) error {
	page, err := stealth.Page(rc.browser)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	rc.page = page
	return rc.Navigate(url)
}

func (rc *rodCrawler) Navigate(url string) error {
	if err := rc.page.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return rc.page.WaitLoad()
}

func (rc *rodCrawler) ElementText(id string) (string, error) {
	el, err := rc.page.Timeout(lookupTimeout).Element("#" + id)
	if err != nil {
		return "", fmt.Errorf("find element %q: %w", id, err)
	}
	text, err := el.Text()
	if err != nil {
		return "", fmt.Errorf("read text of element %q: %w", id, err)
	}
	return text, nil
}

func (rc *rodCrawler) ElementsTextByClass(class string) ([]string, error) {
	els, err := rc.page.Timeout(lookupTimeout).Elements("." + class)
	if err != nil {
		return nil, fmt.Errorf("find elements of class %q: %w", class, err)
	}
	texts := make([]string, 0, len(els))
	for _, el := range els {
		text, err := el.Text()
		if err != nil {
			return nil, fmt.Errorf("read text of class %q element: %w", class, err)
		}
		texts = append(texts, text)
	}
	return texts, nil
}

func (rc *rodCrawler) Click(id string) error {
	el, err := rc.page.Timeout(lookupTimeout).Element("#" + id)
	if err != nil {
		return fmt.Errorf("find element %q: %w", id, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click element %q: %w", id, err)
	}
	return nil
}

func (rc *rodCrawler) Eval(js string) error {
	if _, err := rc.page.Eval(`() => { ` + js + ` }`); err != nil {
		return fmt.Errorf("evaluate script: %w", err)
	}
	return nil
}
