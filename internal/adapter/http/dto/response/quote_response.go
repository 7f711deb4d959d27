package response

import (
	"time"

	"sigorta_portal/internal/domain/entities"
)

type QuoteResponse struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	Status string `json:"status"`

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

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                 q.ID,
		UserID:             q.UserID,
		Status:             string(q.Status),
		FullName:           q.FullName,
		BirthDate:          q.BirthDate,
		Company:            q.Company,
		Date:               q.Date,
		ChassisNumber:      q.ChassisNumber,
		PlateNumber:        q.PlateNumber,
		IdentityNumber:     q.IdentityNumber,
		DocumentNumber:     q.DocumentNumber,
		VehicleType:        q.VehicleType,
		Type:               q.Type,
		Issuer:             q.Issuer,
		RelatedPerson:      q.RelatedPerson,
		Agency:             q.Agency,
		CardInfo:           q.CardInfo,
		AdditionalInfo:     q.AdditionalInfo,
		GrossPremium:       q.GrossPremium,
		NetPremium:         q.NetPremium,
		Commission:         q.Commission,
		PolicyNumber:       q.PolicyNumber,
		DocumentURL:        q.DocumentURL,
		DocumentUploadedAt: q.DocumentUploadedAt,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
	}
}

func FromQuotes(quotes []entities.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, FromQuote(q))
	}
	return out
}
