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
	ErrPolicyNotFound        = errors.New("policy not found")
	ErrInvalidPolicyID       = errors.New("invalid policy id")
	ErrInvalidPolicyNumber   = errors.New("invalid policy number")
	ErrQuoteNotApproved      = errors.New("quote is not approved")
	ErrPolicyAlreadyIssued   = errors.New("quote already has a policy")
	ErrDuplicatePolicyNumber = errors.New("policy number already in use")
	ErrInvalidDateRange      = errors.New("start date must precede end date")
)

// IPolicyUseCase converts approved quotes into policies.
//
// IssuePolicy preconditions, each with its own error so callers can tell
// business-rule violations apart:
//   - caller is staff/admin                  -> ErrForbidden
//   - quote exists                           -> ErrQuoteNotFound
//   - quote status is approved               -> ErrQuoteNotApproved
//   - quote has no policy yet                -> ErrPolicyAlreadyIssued
//   - policy number non-empty and unused     -> ErrInvalidPolicyNumber / ErrDuplicatePolicyNumber
//   - start date strictly before end date    -> ErrInvalidDateRange

type IPolicyUseCase interface {
	IssuePolicy(ctx context.Context, actor entities.Actor, quoteID, policyNumber string, startDate, endDate time.Time) (entities.Policy, error)
	GetPolicy(ctx context.Context, actor entities.Actor, id string) (entities.Policy, error)
	ListPolicies(ctx context.Context, actor entities.Actor) ([]entities.Policy, error)
}

type PolicyUseCase struct {
	repo      interfaces.IPolicyRepository
	quoteRepo interfaces.IQuoteRepository
	audit     interfaces.IActivityLogRepository
	log       *zap.Logger
}

var _ IPolicyUseCase = (*PolicyUseCase)(nil)

func NewPolicyUseCase(repo interfaces.IPolicyRepository, quoteRepo interfaces.IQuoteRepository, audit interfaces.IActivityLogRepository, log *zap.Logger) *PolicyUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &PolicyUseCase{repo: repo, quoteRepo: quoteRepo, audit: audit, log: log}
}

func (u *PolicyUseCase) IssuePolicy(ctx context.Context, actor entities.Actor, quoteID, policyNumber string, startDate, endDate time.Time) (entities.Policy, error) {
	if !actor.Role.CanReview() {
		return entities.Policy{}, ErrForbidden
	}
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.Policy{}, ErrInvalidQuoteID
	}
	policyNumber = strings.TrimSpace(policyNumber)
	if policyNumber == "" {
		return entities.Policy{}, ErrInvalidPolicyNumber
	}
	if !startDate.Before(endDate) {
		return entities.Policy{}, ErrInvalidDateRange
	}

	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		return entities.Policy{}, err
	}
	if q.ID == "" {
		return entities.Policy{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusApproved {
		return entities.Policy{}, ErrQuoteNotApproved
	}
	if q.PolicyNumber != "" {
		return entities.Policy{}, ErrPolicyAlreadyIssued
	}

	p := entities.Policy{
		ID:           uuid.NewString(),
		QuoteID:      q.ID,
		UserID:       q.UserID,
		PolicyNumber: policyNumber,
		Status:       entities.PolicyStatusActive,
		StartDate:    startDate,
		EndDate:      endDate,
		CreatedAt:    time.Now().UTC(),
	}

	// The repository issues policy + quote link in one transaction; the
	// precondition re-checks there decide concurrent races.
	created, err := u.repo.Issue(ctx, p)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrPolicyNumberTaken):
			return entities.Policy{}, ErrDuplicatePolicyNumber
		case errors.Is(err, interfaces.ErrQuoteAlreadyLinked):
			return entities.Policy{}, ErrPolicyAlreadyIssued
		}
		return entities.Policy{}, err
	}

	u.log.Info("policy issued",
		zap.String("policy_id", created.ID),
		zap.String("quote_id", created.QuoteID),
		zap.String("policy_number", created.PolicyNumber))
	u.logActivity(ctx, actor, "policy_issued", "policy", created.ID, map[string]any{
		"quote_id":      created.QuoteID,
		"policy_number": created.PolicyNumber,
	})
	return created, nil
}

func (u *PolicyUseCase) GetPolicy(ctx context.Context, actor entities.Actor, id string) (entities.Policy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Policy{}, ErrInvalidPolicyID
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Policy{}, err
	}
	if p.ID == "" {
		return entities.Policy{}, ErrPolicyNotFound
	}
	if !actor.Role.CanReview() && p.UserID != actor.UserID {
		return entities.Policy{}, ErrForbidden
	}
	return p, nil
}

func (u *PolicyUseCase) ListPolicies(ctx context.Context, actor entities.Actor) ([]entities.Policy, error) {
	ownerID := ""
	if !actor.Role.CanReview() {
		ownerID = actor.UserID
	}
	return u.repo.List(ctx, ownerID)
}

func (u *PolicyUseCase) logActivity(ctx context.Context, actor entities.Actor, action, entityType, entityID string, details map[string]any) {
	if u.audit == nil {
		return
	}
	entry := entities.ActivityLog{
		ID:         uuid.NewString(),
		UserID:     actor.UserID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
	}
	if err := u.audit.Append(ctx, entry); err != nil {
		u.log.Warn("activity log append failed",
			zap.String("action", action),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}
