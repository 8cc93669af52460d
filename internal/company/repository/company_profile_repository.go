package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"coilworks/internal/domain"
	apperrors "coilworks/internal/errors"
)

// The profile is a single row.
const profileID = 1

type MySQLCompanyProfileRepository struct {
	db *sql.DB
}

func NewMySQLCompanyProfileRepository(db *sql.DB) *MySQLCompanyProfileRepository {
	return &MySQLCompanyProfileRepository{db: db}
}

func (r *MySQLCompanyProfileRepository) Find(ctx context.Context) (*domain.CompanyProfile, error) {
	query := `
		SELECT supportEmail, facebook, instagram, linkedin, youtube, updatedAt
		FROM CompanyProfile
		WHERE id = ?
	`

	var profile domain.CompanyProfile
	err := r.db.QueryRowContext(ctx, query, profileID).Scan(
		&profile.SupportEmail, &profile.Facebook, &profile.Instagram,
		&profile.LinkedIn, &profile.YouTube, &profile.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("company profile not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying company profile: %w", err)
	}

	return &profile, nil
}

func (r *MySQLCompanyProfileRepository) Save(ctx context.Context, profile domain.CompanyProfile) error {
	query := `
		INSERT INTO CompanyProfile (id, supportEmail, facebook, instagram, linkedin, youtube)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			supportEmail = VALUES(supportEmail),
			facebook = VALUES(facebook),
			instagram = VALUES(instagram),
			linkedin = VALUES(linkedin),
			youtube = VALUES(youtube)
	`

	_, err := r.db.ExecContext(ctx, query, profileID,
		profile.SupportEmail, profile.Facebook, profile.Instagram, profile.LinkedIn, profile.YouTube,
	)
	if err != nil {
		return fmt.Errorf("saving company profile: %w", err)
	}
	return nil
}
