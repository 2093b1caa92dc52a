package chrome

// ChromeCrawler drives one live browser page against the auditor's site.
// Every call mutates the page's navigation state in place, so a single
// instance must stay on a single goroutine for its whole lifetime.
type ChromeCrawler interface {
	InitAndNavigate(url string) error
	Navigate(url string) error
	ElementText(id string) (string, error)
	ElementsTextByClass(class string) ([]string, error)
	Click(id string) error
	Eval(js string) error
	Close()
}
