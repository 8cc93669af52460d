package dto

import "github.com/shopspring/decimal"

type ProductRequest struct {
	SKU         string          `json:"sku" validate:"required,max=64"`
	Name        string          `json:"name" validate:"required,max=255"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images" validate:"dive,required"`
	Category    string          `json:"category" validate:"max=100"`
}

// SettingsResponse is the public storefront configuration.
type SettingsResponse struct {
	SupportEmail string            `json:"supportEmail"`
	Social       map[string]string `json:"social"`
}

type CompanyProfileRequest struct {
	SupportEmail string `json:"supportEmail" validate:"omitempty,email"`
	Facebook     string `json:"facebook" validate:"omitempty,url"`
	Instagram    string `json:"instagram" validate:"omitempty,url"`
	LinkedIn     string `json:"linkedin" validate:"omitempty,url"`
	YouTube      string `json:"youtube" validate:"omitempty,url"`
}
