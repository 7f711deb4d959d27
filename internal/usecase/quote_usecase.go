package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrForbidden         = errors.New("caller is not allowed to perform this operation")
	ErrQuoteNotFound     = errors.New("quote not found")
	ErrInvalidTransition = errors.New("quote is not pending")
	ErrInvalidQuoteID    = errors.New("invalid quote id")
	ErrInvalidQuoteInput = errors.New("invalid quote input")
	ErrInvalidStatus     = errors.New("invalid status filter")
	ErrInvalidPremiums   = errors.New("invalid premium figures")
	ErrInvalidDocument   = errors.New("invalid document upload")
)

// CreateQuoteInput carries the business fields captured at quote creation.
// Everything here is immutable after creation except the premium figures,
// which staff may fill in later.
type CreateQuoteInput struct {
	FullName       string
	BirthDate      string
	Company        string
	Date           string
	ChassisNumber  string
	PlateNumber    string
	IdentityNumber string
	DocumentNumber string
	VehicleType    string
	Type           string
	Issuer         string
	RelatedPerson  string
	Agency         string
	CardInfo       string
	AdditionalInfo string
	GrossPremium   float64
	NetPremium     float64
	Commission     float64
}

// IQuoteUseCase exposes the quote lifecycle.
//
// Role rules:
//   - Agents create quotes and see only their own.
//   - Staff/admin see everything and own the pending -> approved/rejected
//     transition. Agents attempting a transition fail with ErrForbidden
//     before the quote is even loaded.

type IQuoteUseCase interface {
	CreateQuote(ctx context.Context, actor entities.Actor, in CreateQuoteInput) (entities.Quote, error)
	GetQuote(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error)
	ListQuotes(ctx context.Context, actor entities.Actor, status entities.QuoteStatus) ([]entities.Quote, error)
	ApproveQuote(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error)
	RejectQuote(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error)
	UpdatePremiums(ctx context.Context, actor entities.Actor, id string, gross, net, commission float64) (entities.Quote, error)
	AttachDocument(ctx context.Context, actor entities.Actor, id, filename, contentType string, body io.Reader) (entities.Quote, error)
}

type QuoteUseCase struct {
	repo      interfaces.IQuoteRepository
	documents interfaces.IDocumentStore
	audit     interfaces.IActivityLogRepository
	log       *zap.Logger
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, documents interfaces.IDocumentStore, audit interfaces.IActivityLogRepository, log *zap.Logger) *QuoteUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuoteUseCase{repo: repo, documents: documents, audit: audit, log: log}
}

func (u *QuoteUseCase) CreateQuote(ctx context.Context, actor entities.Actor, in CreateQuoteInput) (entities.Quote, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if in.FullName == "" {
		return entities.Quote{}, ErrInvalidQuoteInput
	}

	now := time.Now().UTC()
	q := entities.Quote{
		ID:             uuid.NewString(),
		UserID:         actor.UserID,
		Status:         entities.QuoteStatusPending,
		FullName:       in.FullName,
		BirthDate:      in.BirthDate,
		Company:        in.Company,
		Date:           in.Date,
		ChassisNumber:  in.ChassisNumber,
		PlateNumber:    in.PlateNumber,
		IdentityNumber: in.IdentityNumber,
		DocumentNumber: in.DocumentNumber,
		VehicleType:    in.VehicleType,
		Type:           in.Type,
		Issuer:         in.Issuer,
		RelatedPerson:  in.RelatedPerson,
		Agency:         in.Agency,
		CardInfo:       in.CardInfo,
		AdditionalInfo: in.AdditionalInfo,
		GrossPremium:   in.GrossPremium,
		NetPremium:     in.NetPremium,
		Commission:     in.Commission,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := u.repo.Create(ctx, q)
	if err != nil {
		return entities.Quote{}, err
	}

	u.logActivity(ctx, actor, "quote_created", "quote", created.ID, map[string]any{
		"full_name":    created.FullName,
		"plate_number": created.PlateNumber,
	})
	return created, nil
}

func (u *QuoteUseCase) GetQuote(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if !canReadQuote(actor, q) {
		return entities.Quote{}, ErrForbidden
	}
	return q, nil
}

func (u *QuoteUseCase) ListQuotes(ctx context.Context, actor entities.Actor, status entities.QuoteStatus) ([]entities.Quote, error) {
	if status != "" {
		switch status {
		case entities.QuoteStatusPending, entities.QuoteStatusApproved, entities.QuoteStatusRejected:
		default:
			return nil, ErrInvalidStatus
		}
	}

	filter := interfaces.QuoteFilter{Status: status}
	if !actor.Role.CanReview() {
		filter.OwnerID = actor.UserID
	}
	// The repository guarantees created_at descending order.
	return u.repo.List(ctx, filter)
}

func (u *QuoteUseCase) ApproveQuote(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error) {
	return u.transition(ctx, actor, id, entities.QuoteStatusApproved)
}

func (u *QuoteUseCase) RejectQuote(ctx context.Context, actor entities.Actor, id string) (entities.Quote, error) {
	return u.transition(ctx, actor, id, entities.QuoteStatusRejected)
}

func (u *QuoteUseCase) transition(ctx context.Context, actor entities.Actor, id string, to entities.QuoteStatus) (entities.Quote, error) {
	// Role check runs before anything touches storage: an agent gets
	// ErrForbidden even for a quote that is already resolved or missing.
	if !actor.Role.CanReview() {
		return entities.Quote{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, transitioned, err := u.repo.TransitionStatus(ctx, id, to)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if !transitioned {
		// Concurrent reviewers serialize on the conditional write; the loser
		// lands here with the quote already in a terminal state.
		return entities.Quote{}, ErrInvalidTransition
	}

	u.logActivity(ctx, actor, "quote_"+string(to), "quote", q.ID, nil)
	return q, nil
}

func (u *QuoteUseCase) UpdatePremiums(ctx context.Context, actor entities.Actor, id string, gross, net, commission float64) (entities.Quote, error) {
	if !actor.Role.CanReview() {
		return entities.Quote{}, ErrForbidden
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	if gross < 0 || net < 0 || commission < 0 {
		return entities.Quote{}, ErrInvalidPremiums
	}

	q, err := u.repo.UpdatePremiums(ctx, id, gross, net, commission)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

func (u *QuoteUseCase) AttachDocument(ctx context.Context, actor entities.Actor, id, filename, contentType string, body io.Reader) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}
	filename = strings.TrimSpace(filename)
	if filename == "" || body == nil {
		return entities.Quote{}, ErrInvalidDocument
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	if !canReadQuote(actor, q) {
		return entities.Quote{}, ErrForbidden
	}

	url, err := u.documents.Upload(ctx, q.ID, filename, body, contentType)
	if err != nil {
		return entities.Quote{}, err
	}

	// URL and timestamp are set together; the retention sweep clears them
	// together.
	updated, err := u.repo.SetDocument(ctx, q.ID, url, time.Now().UTC())
	if err != nil {
		return entities.Quote{}, err
	}
	if updated.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}

	u.logActivity(ctx, actor, "quote_document_uploaded", "quote", q.ID, map[string]any{"filename": filename})
	return updated, nil
}

func canReadQuote(actor entities.Actor, q entities.Quote) bool {
	if actor.Role.CanReview() {
		return true
	}
	return q.UserID == actor.UserID
}

// logActivity is fire-and-forget: audit failures never fail the operation
// that triggered them.
func (u *QuoteUseCase) logActivity(ctx context.Context, actor entities.Actor, action, entityType, entityID string, details map[string]any) {
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
