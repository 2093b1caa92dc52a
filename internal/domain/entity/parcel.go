package entity

import (
	"auditorcrawler/internal/domain/model"
)

// Crawlable is the extension point for scraped entities that can be
// mirrored into the document store. D is the document type.
type Crawlable[D model.Document] interface {
	*ParcelRecord
	ToDocument() D
}

// Crawlable itself is constraint-only; assert the method set separately.
var _ interface{ ToDocument() *model.ParcelDoc } = (*ParcelRecord)(nil)

// ParcelRecord is one scraped parcel. ParcelNumber is the lookup key and
// is always set; every other field is nil when the page element backing
// it could not be read. Records are never mutated after assembly.
type ParcelRecord struct {
	ParcelNumber   string  `json:"parcelNumber"`
	Address        *string `json:"address"`
	AppraisedValue *string `json:"appraisedValue"`
	NumStories     *string `json:"numStories"`
	YearBuilt      *string `json:"yearBuilt"`
	NumBedrooms    *string `json:"numBedrooms"`
	NumFullBaths   *string `json:"numFullBaths"`
	NumHalfBaths   *string `json:"numHalfBaths"`
	LivingArea     *string `json:"livingArea"`
	Basement       *string `json:"basement"`
	BasementArea   *string `json:"basementArea"`
}

// CSVHeader returns the eleven column names in record order.
func CSVHeader() []string {
	return []string{
		"parcelNumber",
		"address",
		"appraisedValue",
		"numStories",
		"yearBuilt",
		"numBedrooms",
		"numFullBaths",
		"numHalfBaths",
		"livingArea",
		"basement",
		"basementArea",
	}
}

// CSVRow renders the record as one CSV row in header order. A nil field
// becomes an empty cell.
func (pr *ParcelRecord) CSVRow() []string {
	return []string{
		pr.ParcelNumber,
		deref(pr.Address),
		deref(pr.AppraisedValue),
		deref(pr.NumStories),
		deref(pr.YearBuilt),
		deref(pr.NumBedrooms),
		deref(pr.NumFullBaths),
		deref(pr.NumHalfBaths),
		deref(pr.LivingArea),
		deref(pr.Basement),
		deref(pr.BasementArea),
	}
}

func (pr *ParcelRecord) ToDocument() *model.ParcelDoc {
	return &model.ParcelDoc{
		ParcelNumber:   pr.ParcelNumber,
		Address:        deref(pr.Address),
		AppraisedValue: deref(pr.AppraisedValue),
		NumStories:     deref(pr.NumStories),
		YearBuilt:      deref(pr.YearBuilt),
		NumBedrooms:    deref(pr.NumBedrooms),
		NumFullBaths:   deref(pr.NumFullBaths),
		NumHalfBaths:   deref(pr.NumHalfBaths),
		LivingArea:     deref(pr.LivingArea),
		Basement:       deref(pr.Basement),
		BasementArea:   deref(pr.BasementArea),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
