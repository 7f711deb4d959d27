package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidAccountInput = errors.New("invalid account input")
	ErrInvalidRole         = errors.New("invalid role")
	ErrIdentityUnavailable = errors.New("identity provider not configured")
)

// IProvisioningUseCase creates portal accounts. Role assignment is a
// dedicated admin-only command: the role travels to the identity platform's
// admin API once, at creation, and is never a client-writable field after
// that.

type IProvisioningUseCase interface {
	CreateUser(ctx context.Context, actor entities.Actor, account interfaces.NewAccount, phone string) (entities.User, error)
}

type ProvisioningUseCase struct {
	identity interfaces.IIdentityProvider
	users    interfaces.IUserRepository
	audit    interfaces.IActivityLogRepository
	log      *zap.Logger
}

var _ IProvisioningUseCase = (*ProvisioningUseCase)(nil)

func NewProvisioningUseCase(identity interfaces.IIdentityProvider, users interfaces.IUserRepository, audit interfaces.IActivityLogRepository, log *zap.Logger) *ProvisioningUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProvisioningUseCase{identity: identity, users: users, audit: audit, log: log}
}

func (u *ProvisioningUseCase) CreateUser(ctx context.Context, actor entities.Actor, account interfaces.NewAccount, phone string) (entities.User, error) {
	if actor.Role != entities.RoleAdmin {
		return entities.User{}, ErrForbidden
	}

	account.Email = strings.TrimSpace(account.Email)
	account.FullName = strings.TrimSpace(account.FullName)
	if account.Email == "" || account.Password == "" || account.FullName == "" {
		return entities.User{}, ErrInvalidAccountInput
	}
	if !account.Role.Valid() {
		return entities.User{}, ErrInvalidRole
	}
	if u.identity == nil {
		u.log.Error("identity provider not configured")
		return entities.User{}, ErrIdentityUnavailable
	}

	userID, err := u.identity.CreateUser(ctx, account)
	if err != nil {
		return entities.User{}, err
	}

	user := entities.User{
		ID:        userID,
		Email:     account.Email,
		Role:      account.Role,
		FullName:  account.FullName,
		Phone:     strings.TrimSpace(phone),
		CreatedAt: time.Now().UTC(),
	}
	created, err := u.users.Create(ctx, user)
	if err != nil {
		// The auth account exists but the profile row does not; surface the
		// error so an operator can reconcile.
		u.log.Error("user profile insert failed after identity creation",
			zap.String("user_id", userID), zap.Error(err))
		return entities.User{}, err
	}

	if u.audit != nil {
		entry := entities.ActivityLog{
			ID:         uuid.NewString(),
			UserID:     actor.UserID,
			Action:     "user_created",
			EntityType: "user",
			EntityID:   created.ID,
			Details:    map[string]any{"role": string(created.Role)},
			CreatedAt:  time.Now().UTC(),
		}
		if err := u.audit.Append(ctx, entry); err != nil {
			u.log.Warn("activity log append failed",
				zap.String("action", "user_created"), zap.Error(err))
		}
	}
	return created, nil
}
