package interfaces

import (
	"context"

	"sigorta_portal/internal/domain/entities"
)

// NewAccount is what admin provisioning sends to the identity platform.
type NewAccount struct {
	Email    string
	Password string
	FullName string
	Role     entities.Role
}

// IIdentityProvider abstracts the identity platform's admin surface. Only the
// provisioning use case talks to it, and only with the admin service
// credential; role assignment never travels through a client-writable field.
type IIdentityProvider interface {
	CreateUser(ctx context.Context, account NewAccount) (userID string, err error)
}
