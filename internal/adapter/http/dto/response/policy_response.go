package response

import (
	"time"

	"sigorta_portal/internal/domain/entities"
)

type PolicyResponse struct {
	ID           string    `json:"id"`
	QuoteID      string    `json:"quote_id"`
	UserID       string    `json:"user_id"`
	PolicyNumber string    `json:"policy_number"`
	Status       string    `json:"status"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromPolicy(p entities.Policy) PolicyResponse {
	return PolicyResponse{
		ID:           p.ID,
		QuoteID:      p.QuoteID,
		UserID:       p.UserID,
		PolicyNumber: p.PolicyNumber,
		Status:       string(p.Status),
		StartDate:    p.StartDate.Format("2006-01-02"),
		EndDate:      p.EndDate.Format("2006-01-02"),
		CreatedAt:    p.CreatedAt,
	}
}

func FromPolicies(policies []entities.Policy) []PolicyResponse {
	out := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		out = append(out, FromPolicy(p))
	}
	return out
}
