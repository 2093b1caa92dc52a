package collector

import (
	"github.com/gocolly/colly/v2"
)

// CollyCrawler wraps the static-HTML collector used by the discovery
// phase; the parcel detail pages need a real browser, the search results
// listing does not.
type CollyCrawler interface {
	Visit(url string) error
	Wait()
	OnHTML(selector string, callback func(e *colly.HTMLElement))
	OnError(callback func(r *colly.Response, err error))
}
