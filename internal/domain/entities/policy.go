package entities

import "time"

// PolicyStatus represents the contractual state of an issued policy.
//
// The service only ever creates policies as active; expired/cancelled are
// maintained by external back-office processes.

type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

// Policy is an issued insurance contract derived from exactly one approved quote.
//
// Storage model (DynamoDB):
//   - PK: id
//   - a guard item keyed "number#<policy_number>" shares the table and makes
//     the policy number globally unique (written in the same transaction).
//
// Invariants:
//   - QuoteID is set at creation and immutable; one policy per quote.
//   - PolicyNumber matches the number recorded on the parent quote.
//   - StartDate strictly precedes EndDate.
type Policy struct {
	ID           string       `json:"id"`
	QuoteID      string       `json:"quote_id"`
	UserID       string       `json:"user_id"`
	PolicyNumber string       `json:"policy_number"`
	Status       PolicyStatus `json:"status"`
	StartDate    time.Time    `json:"start_date"`
	EndDate      time.Time    `json:"end_date"`
	CreatedAt    time.Time    `json:"created_at"`
}
