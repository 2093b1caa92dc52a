package es

import (
	"context"

	"auditorcrawler/internal/domain/model"
)

// TypedEsClient is the optional mirror of scraped windows into
// Elasticsearch. CSV files stay the durable output; this client only has
// to create the index, bulk-load documents and report the index size
// after a window lands.
type TypedEsClient[D model.Document] interface {
	CreateIndexWithMapping(ctx context.Context) error
	BulkIndexDocsWithID(ctx context.Context, docs []D) error
	CountDocs(ctx context.Context) (int64, error)
}
