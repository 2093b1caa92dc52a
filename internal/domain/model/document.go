package model

import (
	"github.com/elastic/go-elasticsearch/v9/typedapi/types"
)

// Document is the contract the document store needs from anything it
// indexes: a stable ID, a target index and the index's type mapping.
type Document interface {
	*ParcelDoc
	GetID() string
	GetIndex() string
	GetTypeMapping() *types.TypeMapping
}

// ParcelDoc is the Elasticsearch projection of a scraped parcel record.
// Nil record fields flatten to empty strings so the mapping stays uniform.
type ParcelDoc struct {
	ParcelNumber   string `json:"parcelNumber"`
	Address        string `json:"address"`
	AppraisedValue string `json:"appraisedValue"`
	NumStories     string `json:"numStories"`
	YearBuilt      string `json:"yearBuilt"`
	NumBedrooms    string `json:"numBedrooms"`
	NumFullBaths   string `json:"numFullBaths"`
	NumHalfBaths   string `json:"numHalfBaths"`
	LivingArea     string `json:"livingArea"`
	Basement       string `json:"basement"`
	BasementArea   string `json:"basementArea"`
}

func (d *ParcelDoc) GetID() string {
	return d.ParcelNumber
}

func (d *ParcelDoc) GetIndex() string {
	return "parcel-records"
}

func (d *ParcelDoc) GetTypeMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"parcelNumber":   types.NewKeywordProperty(),
			"address":        types.NewTextProperty(),
			"appraisedValue": types.NewKeywordProperty(),
			"numStories":     types.NewKeywordProperty(),
			"yearBuilt":      types.NewKeywordProperty(),
			"numBedrooms":    types.NewKeywordProperty(),
			"numFullBaths":   types.NewKeywordProperty(),
			"numHalfBaths":   types.NewKeywordProperty(),
			"livingArea":     types.NewKeywordProperty(),
			"basement":       types.NewKeywordProperty(),
			"basementArea":   types.NewKeywordProperty(),
		},
	}
}
