package request

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidPolicyDates = errors.New("invalid policy dates")

const policyDateLayout = "2006-01-02"

// IssuePolicyRequest converts an approved quote into a policy. Dates arrive
// as calendar days (the coverage period granularity the portal works with).
type IssuePolicyRequest struct {
	QuoteID      string `json:"quote_id" binding:"required"`
	PolicyNumber string `json:"policy_number" binding:"required"`
	StartDate    string `json:"start_date" binding:"required"`
	EndDate      string `json:"end_date" binding:"required"`
}

func (r IssuePolicyRequest) ResolveQuoteID() string {
	return strings.TrimSpace(r.QuoteID)
}

func (r IssuePolicyRequest) ResolvePolicyNumber() string {
	return strings.TrimSpace(r.PolicyNumber)
}

func (r IssuePolicyRequest) ResolveDates() (start, end time.Time, err error) {
	start, err = time.Parse(policyDateLayout, strings.TrimSpace(r.StartDate))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPolicyDates
	}
	end, err = time.Parse(policyDateLayout, strings.TrimSpace(r.EndDate))
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPolicyDates
	}
	return start, end, nil
}
