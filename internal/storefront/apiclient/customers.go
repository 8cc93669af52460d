package apiclient

import (
	"context"
	"net/http"

	"coilworks/internal/domain"
	"coilworks/internal/dto"
)

func (c *Client) ListCustomers(ctx context.Context, token, adminID string) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	if err := c.do(ctx, "list customers", http.MethodGet, "/customers/"+escape(adminID), token, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (c *Client) SetCustomerStatus(ctx context.Context, token, adminID, customerID string, status domain.CustomerStatus) (*domain.Customer, error) {
	var customer domain.Customer
	req := dto.CustomerStatusRequest{AdminID: adminID, UpdateID: customerID, Status: status}
	if err := c.do(ctx, "set customer status", http.MethodPut, "/customers/status", token, req, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, token, id string) error {
	return c.do(ctx, "delete customer", http.MethodDelete, "/customers/"+escape(id), token, nil, nil)
}
