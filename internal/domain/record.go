package domain

import "time"

type RecordKind string

const (
	KindEnquiry RecordKind = "enquiry"
	KindOrder   RecordKind = "order"
)

// Submitter is the profile snapshot taken from the customer at submission time.
type Submitter struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	GSTNumber   string `json:"gstNumber"`
	CompanyName string `json:"companyName"`
	Address     string `json:"address"`
}

type RecordItem struct {
	Product  CatalogItem `json:"product"`
	Quantity int         `json:"quantity"`
}

// Record is a submitted enquiry or order. Items and CustomItems are a copy of
// the cart taken at submission; only Status and UpdatedAt change afterwards.
type Record struct {
	ID          string       `json:"id"`
	HumanID     string       `json:"humanId"`
	Kind        RecordKind   `json:"kind"`
	User        Submitter    `json:"user"`
	Status      Status       `json:"status"`
	Items       []RecordItem `json:"items"`
	CustomItems []CustomCoil `json:"customItems"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
