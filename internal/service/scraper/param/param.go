package param

import (
	"auditorcrawler/internal/infra/crawler/chrome"
)

// Site describes the auditor website the scraper drives: where to go and
// how long to wait for its asynchronous renders.
type Site struct {
	// SearchResultsURL is the advanced-search listing used by discovery.
	SearchResultsURL string
	// ParcelURLFormat takes one %s, the parcel number.
	ParcelURLFormat    string
	DisclaimerButtonID string
	// PageLoad runs after a full navigation, TabRender after an in-page
	// tab switch; neither page transition exposes a completion signal.
	PageLoad  chrome.WaitStrategy
	TabRender chrome.WaitStrategy
}

// Batch configures one window run over the parcel identifier list.
type Batch struct {
	WindowSize int `json:"window_size"`
	// StartOffset resumes an interrupted run; windows before it are
	// assumed to be on disk already.
	StartOffset int `json:"start_offset"`
}
