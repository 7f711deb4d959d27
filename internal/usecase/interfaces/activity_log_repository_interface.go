package interfaces

import (
	"context"

	"sigorta_portal/internal/domain/entities"
)

// IActivityLogRepository is the append-only audit sink. Callers treat it as
// fire-and-forget: append failures never fail the originating operation.
type IActivityLogRepository interface {
	Append(ctx context.Context, entry entities.ActivityLog) error
}
