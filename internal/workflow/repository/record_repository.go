package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"coilworks/internal/domain"
	"coilworks/internal/errors"
)

// MySQLRecordRepository stores one record kind in its own table. Item
// snapshots are kept as JSON columns and never rewritten after insert.
type MySQLRecordRepository struct {
	db    *sql.DB
	table string
	kind  domain.RecordKind
}

func NewMySQLEnquiryRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db, table: "Enquiries", kind: domain.KindEnquiry}
}

func NewMySQLOrderRepository(db *sql.DB) *MySQLRecordRepository {
	return &MySQLRecordRepository{db: db, table: "Orders", kind: domain.KindOrder}
}

func (r *MySQLRecordRepository) Insert(ctx context.Context, record *domain.Record) error {
	submitter, err := json.Marshal(record.User)
	if err != nil {
		return fmt.Errorf("encoding submitter: %w", err)
	}
	items, err := json.Marshal(record.Items)
	if err != nil {
		return fmt.Errorf("encoding items: %w", err)
	}
	customItems, err := json.Marshal(record.CustomItems)
	if err != nil {
		return fmt.Errorf("encoding custom items: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, humanId, userId, submitter, status, items, customItems, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, r.table)

	_, err = r.db.ExecContext(ctx, query,
		record.ID, record.HumanID, record.User.UserID, submitter, string(record.Status),
		items, customItems, record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", r.kind, err)
	}

	return nil
}

func (r *MySQLRecordRepository) FindByID(ctx context.Context, id string) (*domain.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, humanId, submitter, status, items, customItems, createdAt, updatedAt
		FROM %s
		WHERE id = ? OR humanId = ?`, r.table)

	record, err := r.scan(r.db.QueryRowContext(ctx, query, id, id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", r.kind, id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying %s by id: %w", r.kind, err)
	}

	return record, nil
}

func (r *MySQLRecordRepository) FindAll(ctx context.Context) ([]domain.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, humanId, submitter, status, items, customItems, createdAt, updatedAt
		FROM %s
		ORDER BY createdAt DESC`, r.table)

	return r.query(ctx, query)
}

func (r *MySQLRecordRepository) FindByUser(ctx context.Context, userID string) ([]domain.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, humanId, submitter, status, items, customItems, createdAt, updatedAt
		FROM %s
		WHERE userId = ?
		ORDER BY createdAt DESC`, r.table)

	return r.query(ctx, query, userID)
}

func (r *MySQLRecordRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, updatedAt time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET status = ?, updatedAt = ? WHERE id = ?`, r.table)

	result, err := r.db.ExecContext(ctx, query, string(status), updatedAt, id)
	if err != nil {
		return fmt.Errorf("updating %s status: %w", r.kind, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errors.NewNotFoundError(fmt.Sprintf("%s with id %s not found", r.kind, id))
	}

	return nil
}

func (r *MySQLRecordRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s records: %w", r.kind, err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		record, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", r.kind, err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", r.kind, err)
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *MySQLRecordRepository) scan(row scanner) (*domain.Record, error) {
	var (
		record                        domain.Record
		status                        string
		submitter, items, customItems []byte
	)
	err := row.Scan(
		&record.ID, &record.HumanID, &submitter, &status, &items, &customItems,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(submitter, &record.User); err != nil {
		return nil, fmt.Errorf("decoding submitter: %w", err)
	}
	if err := json.Unmarshal(items, &record.Items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	if err := json.Unmarshal(customItems, &record.CustomItems); err != nil {
		return nil, fmt.Errorf("decoding custom items: %w", err)
	}
	record.Kind = r.kind
	record.Status = domain.Status(status)

	return &record, nil
}
