package domain

import "time"

// CompanyProfile holds the contact details shown on the storefront. Empty
// fields fall back to configured defaults.
type CompanyProfile struct {
	SupportEmail string    `json:"supportEmail"`
	Facebook     string    `json:"facebook"`
	Instagram    string    `json:"instagram"`
	LinkedIn     string    `json:"linkedin"`
	YouTube      string    `json:"youtube"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
