package entities

import "time"

// QuoteStatus represents the review lifecycle of a quote.
//
// Domain notes:
//   - A quote starts pending and is resolved by staff exactly once.
//   - Approved and rejected are terminal; there is no path back, and no
//     approved -> rejected path. The repository enforces this with a
//     conditional write, not just the use case.

type QuoteStatus string

const (
	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusApproved QuoteStatus = "approved"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// Quote is the vehicle-insurance quote request persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (status-index): status / created_at (range), serves the ordered
//     status-filtered listing.
//
// Nullability:
//   - PolicyNumber is empty until a policy is issued, then set exactly once.
//   - DocumentURL and DocumentUploadedAt are set together at upload time and
//     cleared together by the retention sweep.
type Quote struct {
	ID     string      `json:"id"`
	UserID string      `json:"user_id"`
	Status QuoteStatus `json:"status"`

	FullName       string `json:"full_name"`
	BirthDate      string `json:"birth_date,omitempty"`
	Company        string `json:"company,omitempty"`
	Date           string `json:"date,omitempty"`
	ChassisNumber  string `json:"chassis_number,omitempty"`
	PlateNumber    string `json:"plate_number,omitempty"`
	IdentityNumber string `json:"identity_number,omitempty"`
	DocumentNumber string `json:"document_number,omitempty"`
	VehicleType    string `json:"vehicle_type,omitempty"`
	Type           string `json:"type,omitempty"`
	Issuer         string `json:"issuer,omitempty"`
	RelatedPerson  string `json:"related_person,omitempty"`
	Agency         string `json:"agency,omitempty"`
	CardInfo       string `json:"card_info,omitempty"`
	AdditionalInfo string `json:"additional_info,omitempty"`

	GrossPremium float64 `json:"gross_premium,omitempty"`
	NetPremium   float64 `json:"net_premium,omitempty"`
	Commission   float64 `json:"commission,omitempty"`

	PolicyNumber string `json:"policy_number,omitempty"`

	DocumentURL        string     `json:"document_url,omitempty"`
	DocumentUploadedAt *time.Time `json:"document_uploaded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasDocument reports whether the quote still carries a document pointer.
func (q Quote) HasDocument() bool {
	return q.DocumentURL != ""
}
