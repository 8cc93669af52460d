package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"coilworks/internal/domain"
	"coilworks/internal/errors"
)

const selectUsers = `
	SELECT id, name, email, phone, gstNumber, companyName, address, role, status, createdAt, updatedAt
	FROM Users`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := scanCustomer(r.db.QueryRowContext(ctx, selectUsers+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}
	return customer, nil
}

// ListExcept returns every account but excludeID, newest first.
func (r *MySQLRepository) ListExcept(ctx context.Context, excludeID string) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, selectUsers+" WHERE id <> ? ORDER BY createdAt DESC, id", excludeID)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		customers = append(customers, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating user rows: %w", err)
	}

	return customers, nil
}

func (r *MySQLRepository) UpdateStatus(ctx context.Context, id string, status domain.CustomerStatus, updatedAt time.Time) error {
	result, err := r.db.ExecContext(ctx, `UPDATE Users SET status = ?, updatedAt = ? WHERE id = ?`, string(status), updatedAt, id)
	if err != nil {
		return fmt.Errorf("updating user status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}

	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM Users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}

	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCustomer(row scanner) (*domain.Customer, error) {
	var c domain.Customer
	var role, status string
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.GSTNumber, &c.CompanyName, &c.Address,
		&role, &status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Role = domain.Role(role)
	c.Status = domain.CustomerStatus(status)
	return &c, nil
}
