package interfaces

import (
	"context"
	"io"
)

// IDocumentStore abstracts the object storage bucket that holds quote
// documents. Every object for a quote lives under the "<quoteID>/" prefix,
// which is what the retention sweep enumerates and deletes.
type IDocumentStore interface {
	Upload(ctx context.Context, quoteID, filename string, body io.Reader, contentType string) (url string, err error)
	ListKeys(ctx context.Context, quoteID string) ([]string, error)
	DeleteKeys(ctx context.Context, keys []string) error
}
