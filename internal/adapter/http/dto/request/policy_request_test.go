package request

import (
	"errors"
	"testing"
	"time"
)

func TestIssuePolicyRequest_ResolveQuoteIDAndPolicyNumber(t *testing.T) {
	r := IssuePolicyRequest{QuoteID: " q-1 ", PolicyNumber: " POL-1 "}
	if got := r.ResolveQuoteID(); got != "q-1" {
		t.Fatalf("expected q-1, got %q", got)
	}
	if got := r.ResolvePolicyNumber(); got != "POL-1" {
		t.Fatalf("expected POL-1, got %q", got)
	}
}

func TestIssuePolicyRequest_ResolveDates(t *testing.T) {
	r := IssuePolicyRequest{StartDate: " 2026-09-01 ", EndDate: "2027-09-01"}
	start, end, err := r.ResolveDates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC); !start.Equal(want) {
		t.Fatalf("expected %v, got %v", want, start)
	}
	if want := time.Date(2027, 9, 1, 0, 0, 0, 0, time.UTC); !end.Equal(want) {
		t.Fatalf("expected %v, got %v", want, end)
	}

	r2 := IssuePolicyRequest{StartDate: "01/09/2026", EndDate: "2027-09-01"}
	if _, _, err := r2.ResolveDates(); !errors.Is(err, ErrInvalidPolicyDates) {
		t.Fatalf("expected ErrInvalidPolicyDates, got %v", err)
	}

	r3 := IssuePolicyRequest{StartDate: "2026-09-01", EndDate: "yarin"}
	if _, _, err := r3.ResolveDates(); !errors.Is(err, ErrInvalidPolicyDates) {
		t.Fatalf("expected ErrInvalidPolicyDates, got %v", err)
	}
}
