package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"sigorta_portal/internal/domain/entities"
	"sigorta_portal/internal/usecase/interfaces"
	mock_interfaces "sigorta_portal/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestPolicyUseCase_IssuePolicy(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	t.Run("agent forbidden", func(t *testing.T) {
		uc := NewPolicyUseCase(nil, nil, nil, nil)
		_, err := uc.IssuePolicy(context.Background(), agentActor, "q-1", "POL-1", start, end)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("missing policy number", func(t *testing.T) {
		uc := NewPolicyUseCase(nil, nil, nil, nil)
		_, err := uc.IssuePolicy(context.Background(), staffActor, "q-1", "  ", start, end)
		if !errors.Is(err, ErrInvalidPolicyNumber) {
			t.Fatalf("expected ErrInvalidPolicyNumber, got %v", err)
		}
	})

	t.Run("start equal to end", func(t *testing.T) {
		uc := NewPolicyUseCase(nil, nil, nil, nil)
		_, err := uc.IssuePolicy(context.Background(), staffActor, "q-1", "POL-1", start, start)
		if !errors.Is(err, ErrInvalidDateRange) {
			t.Fatalf("expected ErrInvalidDateRange, got %v", err)
		}
	})

	t.Run("quote not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewPolicyUseCase(nil, quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, nil)

		_, err := uc.IssuePolicy(context.Background(), staffActor, "q-1", "POL-1", start, end)
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})

	t.Run("quote not approved", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewPolicyUseCase(nil, quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusPending}, nil)

		_, err := uc.IssuePolicy(context.Background(), staffActor, "q-1", "POL-1", start, end)
		if !errors.Is(err, ErrQuoteNotApproved) {
			t.Fatalf("expected ErrQuoteNotApproved, got %v", err)
		}
	})

	t.Run("quote already has a policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		uc := NewPolicyUseCase(nil, quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved, PolicyNumber: "POL-0"}, nil)

		_, err := uc.IssuePolicy(context.Background(), staffActor, "q-1", "POL-1", start, end)
		if !errors.Is(err, ErrPolicyAlreadyIssued) {
			t.Fatalf("expected ErrPolicyAlreadyIssued, got %v", err)
		}
	})

	t.Run("duplicate policy number from transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		policyRepo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(policyRepo, quoteRepo, nil, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)
		policyRepo.EXPECT().Issue(gomock.Any(), gomock.Any()).
			Return(entities.Policy{}, interfaces.ErrPolicyNumberTaken)

		_, err := uc.IssuePolicy(context.Background(), staffActor, "q-1", "POL-1", start, end)
		if !errors.Is(err, ErrDuplicatePolicyNumber) {
			t.Fatalf("expected ErrDuplicatePolicyNumber, got %v", err)
		}
	})

	t.Run("concurrent issuance loses the race", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		policyRepo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(policyRepo, quoteRepo, nil, nil)

		// Precheck passes but another issuer wins between read and write; the
		// transaction's own condition reports the conflict.
		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").
			Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusApproved}, nil)
		policyRepo.EXPECT().Issue(gomock.Any(), gomock.Any()).
			Return(entities.Policy{}, interfaces.ErrQuoteAlreadyLinked)

		_, err := uc.IssuePolicy(context.Background(), staffActor, "q-1", "POL-1", start, end)
		if !errors.Is(err, ErrPolicyAlreadyIssued) {
			t.Fatalf("expected ErrPolicyAlreadyIssued, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		quoteRepo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		policyRepo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		audit := mock_interfaces.NewMockIActivityLogRepository(ctrl)
		uc := NewPolicyUseCase(policyRepo, quoteRepo, audit, nil)

		quoteRepo.EXPECT().GetByID(gomock.Any(), "q-1").
			Return(entities.Quote{ID: "q-1", UserID: "agent-1", Status: entities.QuoteStatusApproved}, nil)
		policyRepo.EXPECT().Issue(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.Policy) (entities.Policy, error) {
				if p.QuoteID != "q-1" {
					t.Fatalf("expected quote q-1, got %s", p.QuoteID)
				}
				if p.UserID != "agent-1" {
					t.Fatalf("expected owner agent-1, got %s", p.UserID)
				}
				if p.Status != entities.PolicyStatusActive {
					t.Fatalf("expected active status, got %s", p.Status)
				}
				return p, nil
			})
		audit.EXPECT().Append(gomock.Any(), gomock.Any()).Return(nil)

		p, err := uc.IssuePolicy(context.Background(), staffActor, "q-1", "POL-1", start, end)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.PolicyNumber != "POL-1" {
			t.Fatalf("expected POL-1, got %s", p.PolicyNumber)
		}
	})
}

func TestPolicyUseCase_GetPolicy(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc := NewPolicyUseCase(nil, nil, nil, nil)
		_, err := uc.GetPolicy(context.Background(), staffActor, " ")
		if !errors.Is(err, ErrInvalidPolicyID) {
			t.Fatalf("expected ErrInvalidPolicyID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		policyRepo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(policyRepo, nil, nil, nil)

		policyRepo.EXPECT().GetByID(gomock.Any(), "p-1").Return(entities.Policy{}, nil)

		_, err := uc.GetPolicy(context.Background(), staffActor, "p-1")
		if !errors.Is(err, ErrPolicyNotFound) {
			t.Fatalf("expected ErrPolicyNotFound, got %v", err)
		}
	})

	t.Run("agent cannot read another agent's policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		policyRepo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(policyRepo, nil, nil, nil)

		policyRepo.EXPECT().GetByID(gomock.Any(), "p-1").
			Return(entities.Policy{ID: "p-1", UserID: "agent-2"}, nil)

		_, err := uc.GetPolicy(context.Background(), agentActor, "p-1")
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("owner reads own policy", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		policyRepo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(policyRepo, nil, nil, nil)

		policyRepo.EXPECT().GetByID(gomock.Any(), "p-1").
			Return(entities.Policy{ID: "p-1", UserID: agentActor.UserID}, nil)

		p, err := uc.GetPolicy(context.Background(), agentActor, "p-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.ID != "p-1" {
			t.Fatalf("expected p-1, got %s", p.ID)
		}
	})
}

func TestPolicyUseCase_ListPolicies(t *testing.T) {
	t.Run("agent listing is scoped to owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		policyRepo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(policyRepo, nil, nil, nil)

		policyRepo.EXPECT().List(gomock.Any(), agentActor.UserID).Return([]entities.Policy{{ID: "p-1"}}, nil)

		policies, err := uc.ListPolicies(context.Background(), agentActor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(policies) != 1 {
			t.Fatalf("expected 1 policy, got %d", len(policies))
		}
	})

	t.Run("staff listing is unscoped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		policyRepo := mock_interfaces.NewMockIPolicyRepository(ctrl)
		uc := NewPolicyUseCase(policyRepo, nil, nil, nil)

		policyRepo.EXPECT().List(gomock.Any(), "").Return(nil, nil)

		if _, err := uc.ListPolicies(context.Background(), staffActor); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
