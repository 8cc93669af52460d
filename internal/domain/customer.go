package domain

import "time"

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
)

func (s CustomerStatus) IsValid() bool {
	return s == CustomerActive || s == CustomerInactive
}

type Customer struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       string         `json:"phone"`
	GSTNumber   string         `json:"gstNumber"`
	CompanyName string         `json:"companyName"`
	Address     string         `json:"address"`
	Role        Role           `json:"role"`
	Status      CustomerStatus `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Snapshot copies the profile fields stored on a submitted enquiry or order.
func (c Customer) Snapshot() Submitter {
	return Submitter{
		UserID:      c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		GSTNumber:   c.GSTNumber,
		CompanyName: c.CompanyName,
		Address:     c.Address,
	}
}
