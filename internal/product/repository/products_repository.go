package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"coilworks/internal/domain"
	"coilworks/internal/errors"
)

const duplicateEntry = 1062

const selectProducts = `
	SELECT id, sku, name, description, price, images, category, createdAt, updatedAt
	FROM Products`

type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

// FindAll lists products ordered by name. An empty category or search term
// does not filter; search matches name, SKU and description.
func (r *MySQLRepository) FindAll(ctx context.Context, category, search string) ([]domain.CatalogItem, error) {
	var conditions []string
	var args []interface{}

	if category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, category)
	}
	if search != "" {
		like := "%" + search + "%"
		conditions = append(conditions, "(name LIKE ? OR sku LIKE ? OR description LIKE ?)")
		args = append(args, like, like, like)
	}

	query := selectProducts
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name, id"

	return r.query(ctx, query, args...)
}

func (r *MySQLRepository) FindByID(ctx context.Context, id string) (*domain.CatalogItem, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, selectProducts+" WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFoundError(fmt.Sprintf("product with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying product by id: %w", err)
	}
	return product, nil
}

// FindByIDs returns the products that exist among ids. Missing ids are
// silently skipped.
func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.CatalogItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args = append(args, id)
	}

	query := fmt.Sprintf("%s WHERE id IN (%s) ORDER BY name, id", selectProducts, strings.Join(placeholders, ", "))
	return r.query(ctx, query, args...)
}

func (r *MySQLRepository) Insert(ctx context.Context, product *domain.CatalogItem) error {
	images, err := json.Marshal(nonNil(product.Images))
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO Products (id, sku, name, description, price, images, category, createdAt, updatedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID, product.SKU, product.Name, product.Description, product.Price.StringFixed(2),
		images, product.Category, product.CreatedAt, product.UpdatedAt,
	)
	if isDuplicate(err) {
		return errors.NewConflictError(fmt.Sprintf("product with sku %s already exists", product.SKU))
	}
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

func (r *MySQLRepository) Update(ctx context.Context, product *domain.CatalogItem) error {
	images, err := json.Marshal(nonNil(product.Images))
	if err != nil {
		return fmt.Errorf("encoding images: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE Products
		SET sku = ?, name = ?, description = ?, price = ?, images = ?, category = ?, updatedAt = ?
		WHERE id = ?`,
		product.SKU, product.Name, product.Description, product.Price.StringFixed(2),
		images, product.Category, product.UpdatedAt, product.ID,
	)
	if isDuplicate(err) {
		return errors.NewConflictError(fmt.Sprintf("product with sku %s already exists", product.SKU))
	}
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}

	// MySQL reports 0 for an update that changes nothing, so confirm the row exists.
	if rowsAffected == 0 {
		if _, err := r.FindByID(ctx, product.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *MySQLRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.CatalogItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.CatalogItem
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row scanner) (*domain.CatalogItem, error) {
	var p domain.CatalogItem
	var images []byte
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &images, &p.Category,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(images) > 0 {
		if err := json.Unmarshal(images, &p.Images); err != nil {
			return nil, fmt.Errorf("decoding images of product %s: %w", p.ID, err)
		}
	}
	p.Images = nonNil(p.Images)

	return &p, nil
}

func isDuplicate(err error) bool {
	var mysqlErr *mysql.MySQLError
	return stderrors.As(err, &mysqlErr) && mysqlErr.Number == duplicateEntry
}

func nonNil(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
