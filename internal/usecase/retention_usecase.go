package usecase

import (
	"context"
	"time"

	"sigorta_portal/internal/metrics"
	"sigorta_portal/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// DefaultRetentionWindow is how long an issued policy keeps its source
// document before the sweep purges it.
const DefaultRetentionWindow = time.Hour

// RetentionCandidateFailure records one candidate the sweep could not fully
// process. The sweep keeps going; nothing here aborts the batch.
type RetentionCandidateFailure struct {
	QuoteID string `json:"quote_id"`
	Stage   string `json:"stage"`
	Reason  string `json:"reason"`
}

// RetentionSummary is the outcome of one sweep invocation.
type RetentionSummary struct {
	CleanedQuoteIDs []string                    `json:"cleaned_quote_ids"`
	Failures        []RetentionCandidateFailure `json:"failures,omitempty"`
}

// IRetentionUseCase is the idempotent entry point an external scheduler
// drives on a fixed cadence.

type IRetentionUseCase interface {
	RunRetentionSweep(ctx context.Context) (RetentionSummary, error)
}

// RetentionUseCase purges uploaded documents from quotes whose policy has
// outlived the retention window.
//
// Per candidate, in order:
//  1. clear the quote's document pointer (both fields, one write); this is
//     the durable intent, committed before any blob is touched;
//  2. enumerate and delete the blobs under the quote's prefix;
//  3. record the outcome.
//
// A blob deletion that fails after the pointer is cleared leaves an orphaned
// object and is not retried: the next run's selection predicate (non-null
// document pointer) no longer matches the quote. Accepted at-most-once
// cleanup, surfaced through logs and the failure counter.
type RetentionUseCase struct {
	policyRepo interfaces.IPolicyRepository
	quoteRepo  interfaces.IQuoteRepository
	documents  interfaces.IDocumentStore
	window     time.Duration
	log        *zap.Logger
}

var _ IRetentionUseCase = (*RetentionUseCase)(nil)

func NewRetentionUseCase(policyRepo interfaces.IPolicyRepository, quoteRepo interfaces.IQuoteRepository, documents interfaces.IDocumentStore, window time.Duration, log *zap.Logger) *RetentionUseCase {
	if window <= 0 {
		window = DefaultRetentionWindow
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RetentionUseCase{
		policyRepo: policyRepo,
		quoteRepo:  quoteRepo,
		documents:  documents,
		window:     window,
		log:        log,
	}
}

func (u *RetentionUseCase) RunRetentionSweep(ctx context.Context) (RetentionSummary, error) {
	cutoff := time.Now().UTC().Add(-u.window)

	policies, err := u.policyRepo.ListCreatedBefore(ctx, cutoff)
	if err != nil {
		return RetentionSummary{}, err
	}

	summary := RetentionSummary{}
	for _, p := range policies {
		quote, err := u.quoteRepo.GetByID(ctx, p.QuoteID)
		if err != nil {
			u.log.Error("retention: loading quote failed",
				zap.String("quote_id", p.QuoteID), zap.Error(err))
			summary.Failures = append(summary.Failures, RetentionCandidateFailure{
				QuoteID: p.QuoteID, Stage: "load", Reason: err.Error(),
			})
			metrics.RetentionFailuresTotal.WithLabelValues("load").Inc()
			continue
		}
		if quote.ID == "" || !quote.HasDocument() {
			// Already cleaned (or never had a document); this is what makes
			// back-to-back runs select nothing the second time.
			continue
		}

		if err := u.quoteRepo.ClearDocument(ctx, quote.ID); err != nil {
			u.log.Error("retention: clearing document pointer failed",
				zap.String("quote_id", quote.ID), zap.Error(err))
			summary.Failures = append(summary.Failures, RetentionCandidateFailure{
				QuoteID: quote.ID, Stage: "clear", Reason: err.Error(),
			})
			metrics.RetentionFailuresTotal.WithLabelValues("clear").Inc()
			continue
		}

		if err := u.deleteBlobs(ctx, quote.ID); err != nil {
			// Pointer already cleared; the blob is an accepted orphan.
			u.log.Warn("retention: blob deletion failed, orphan left behind",
				zap.String("quote_id", quote.ID), zap.Error(err))
			summary.Failures = append(summary.Failures, RetentionCandidateFailure{
				QuoteID: quote.ID, Stage: "storage", Reason: err.Error(),
			})
			metrics.RetentionFailuresTotal.WithLabelValues("storage").Inc()
			continue
		}

		u.log.Info("retention: quote cleaned", zap.String("quote_id", quote.ID))
		summary.CleanedQuoteIDs = append(summary.CleanedQuoteIDs, quote.ID)
		metrics.RetentionQuotesCleanedTotal.Inc()
	}

	u.log.Info("retention sweep finished",
		zap.Int("candidates", len(policies)),
		zap.Int("cleaned", len(summary.CleanedQuoteIDs)),
		zap.Int("failed", len(summary.Failures)))
	return summary, nil
}

func (u *RetentionUseCase) deleteBlobs(ctx context.Context, quoteID string) error {
	keys, err := u.documents.ListKeys(ctx, quoteID)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return u.documents.DeleteKeys(ctx, keys)
}
