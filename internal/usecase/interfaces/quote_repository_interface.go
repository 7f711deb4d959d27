package interfaces

import (
	"context"
	"time"

	"sigorta_portal/internal/domain/entities"
)

// QuoteFilter narrows the quote listing. Zero value means "everything".
// OwnerID is set by the use case when the caller is an agent.
type QuoteFilter struct {
	Status  entities.QuoteStatus
	OwnerID string
}

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Contract notes:
//   - Reads return a zero-value Quote (empty ID) when nothing matches; the
//     use case maps that to its not-found error.
//   - List returns quotes ordered by creation time, most recent first. The
//     ordering is part of the contract, not an implementation detail.
//   - TransitionStatus performs a conditional write that only succeeds while
//     the quote is still pending; transitioned=false with a non-zero Quote
//     means the quote was already resolved.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]entities.Quote, error)
	TransitionStatus(ctx context.Context, id string, to entities.QuoteStatus) (q entities.Quote, transitioned bool, err error)
	UpdatePremiums(ctx context.Context, id string, gross, net, commission float64) (entities.Quote, error)
	SetDocument(ctx context.Context, id, url string, uploadedAt time.Time) (entities.Quote, error)
	ClearDocument(ctx context.Context, id string) error
}
