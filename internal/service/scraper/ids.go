package scraper

import "fmt"

// The detail page is an ASP.NET form whose labels get template-generated
// element IDs per sub-view, so the whole field table derives from one
// format string instead of eleven hardcoded IDs.
const labelIDFormat = "ContentPlaceHolder1_%s_fvData%s_%s"

func labelID(view, dataView, label string) string {
	return fmt.Sprintf(labelIDFormat, view, dataView, label)
}

var (
	addressID   = labelID("Base", "Profile", "AddressLabel")
	valuationID = labelID("Valuation", "Valuation", "Label1")

	// residentialIDs is read in order; the batch is all-or-nothing, so
	// order only affects which lookup trips the failure.
	residentialIDs = []string{
		labelID("Residential", "Residential", "Label2"),                  // stories
		labelID("Residential", "Residential", "YearBuiltLabel"),          // year built
		labelID("Residential", "Residential", "NumberOfBedroomsLabel"),   // bedrooms
		labelID("Residential", "Residential", "NumberOfFullBathsLabel"),  // full baths
		labelID("Residential", "Residential", "NumberOfHalfBathsLabel"),  // half baths
		labelID("Residential", "Residential", "FinishedLivingAreaLabel"), // living area
		labelID("Residential", "Residential", "Label1"),                  // basement
		labelID("Residential", "Residential", "Label4"),                  // basement area
	}
)

// Sub-views switch via the form's menu postback, not via URL changes.
const (
	tabScriptFormat     = "__doPostBack('ctl00$ContentPlaceHolder1$mnuData','%s')"
	valuationTabToken   = "2"
	residentialTabToken = "8"
)

func tabScript(token string) string {
	return fmt.Sprintf(tabScriptFormat, token)
}

// Listing rows on the search results page alternate between two row
// classes; the parcel number is the first cell of each row.
const (
	listingRowClass            = "rowstyle"
	listingAlternatingRowClass = "alternatingrowstyle"
)
