package interfaces

import (
	"context"

	"sigorta_portal/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for the user profile rows
// kept alongside the identity platform's accounts.
type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByID(ctx context.Context, id string) (entities.User, error)
}
