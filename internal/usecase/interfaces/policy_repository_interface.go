package interfaces

import (
	"context"
	"errors"
	"time"

	"sigorta_portal/internal/domain/entities"
)

// Conflict outcomes of the issuance transaction. The repository translates
// storage-level condition failures into these so the use case can keep its
// error taxonomy storage-agnostic.
var (
	ErrPolicyNumberTaken  = errors.New("policy number already in use")
	ErrQuoteAlreadyLinked = errors.New("quote already linked to a policy")
)

// IPolicyRepository abstracts DynamoDB persistence for Policy.
//
// Issue must atomically create the policy record and stamp the policy number
// onto the parent quote: both writes land or neither does. Concurrent issuers
// for the same quote serialize on the quote's policy_number attribute, so at
// most one call ever succeeds.

type IPolicyRepository interface {
	Issue(ctx context.Context, p entities.Policy) (entities.Policy, error)
	GetByID(ctx context.Context, id string) (entities.Policy, error)
	List(ctx context.Context, ownerID string) ([]entities.Policy, error)
	ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]entities.Policy, error)
}
