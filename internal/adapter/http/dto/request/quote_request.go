package request

// CreateQuoteRequest is the payload agents submit from the quote form. Only
// the customer name is mandatory; everything else mirrors the optional form
// fields.
type CreateQuoteRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	BirthDate      string  `json:"birth_date"`
	Company        string  `json:"company"`
	Date           string  `json:"date"`
	ChassisNumber  string  `json:"chassis_number"`
	PlateNumber    string  `json:"plate_number"`
	IdentityNumber string  `json:"identity_number"`
	DocumentNumber string  `json:"document_number"`
	VehicleType    string  `json:"vehicle_type"`
	Type           string  `json:"type"`
	Issuer         string  `json:"issuer"`
	RelatedPerson  string  `json:"related_person"`
	Agency         string  `json:"agency"`
	CardInfo       string  `json:"card_info"`
	AdditionalInfo string  `json:"additional_info"`
	GrossPremium   float64 `json:"gross_premium"`
	NetPremium     float64 `json:"net_premium"`
	Commission     float64 `json:"commission"`
}

// UpdatePremiumsRequest is the staff-side premium correction payload.
type UpdatePremiumsRequest struct {
	GrossPremium float64 `json:"gross_premium"`
	NetPremium   float64 `json:"net_premium"`
	Commission   float64 `json:"commission"`
}
