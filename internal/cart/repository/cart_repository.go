package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"coilworks/internal/domain"
)

// MySQLRepository keeps one server-side cart per user. position records
// first insertion so reads come back in the order the user built the cart.
type MySQLRepository struct {
	db *sql.DB
}

func NewMySQLRepository(db *sql.DB) *MySQLRepository {
	return &MySQLRepository{db: db}
}

func (r *MySQLRepository) UpsertItem(ctx context.Context, userID, productID string, quantity int, position int64) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO CartItems (userId, productId, quantity, position)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE quantity = VALUES(quantity)`,
		userID, productID, quantity, position,
	)
	if err != nil {
		return fmt.Errorf("upserting cart item: %w", err)
	}
	return nil
}

func (r *MySQLRepository) UpsertCustomCoil(ctx context.Context, userID string, coil domain.CustomCoil, position int64) error {
	config, err := json.Marshal(coil)
	if err != nil {
		return fmt.Errorf("encoding custom coil: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO CartCustomCoils (userId, coilType, config, quantity, position)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE config = VALUES(config), quantity = VALUES(quantity)`,
		userID, coil.Key(), config, coil.Quantity, position,
	)
	if err != nil {
		return fmt.Errorf("upserting custom coil: %w", err)
	}
	return nil
}

// DeleteItem removes a product from the cart. Deleting an absent item is not
// an error.
func (r *MySQLRepository) DeleteItem(ctx context.Context, userID, productID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM CartItems WHERE userId = ? AND productId = ?`, userID, productID)
	if err != nil {
		return fmt.Errorf("deleting cart item: %w", err)
	}
	return nil
}

// Replace swaps the stored cart for state inside one transaction.
func (r *MySQLRepository) Replace(ctx context.Context, userID string, state domain.CartState) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM CartItems WHERE userId = ?`, userID); err != nil {
		return fmt.Errorf("clearing cart items: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM CartCustomCoils WHERE userId = ?`, userID); err != nil {
		return fmt.Errorf("clearing custom coils: %w", err)
	}

	for i, item := range state.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO CartItems (userId, productId, quantity, position) VALUES (?, ?, ?, ?)`,
			userID, item.ProductID, item.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("inserting cart item %s: %w", item.ProductID, err)
		}
	}

	for i, coil := range state.CustomCoils {
		config, err := json.Marshal(coil)
		if err != nil {
			return fmt.Errorf("encoding custom coil: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO CartCustomCoils (userId, coilType, config, quantity, position) VALUES (?, ?, ?, ?, ?)`,
			userID, coil.Key(), config, coil.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("inserting custom coil %s: %w", coil.Key(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cart: %w", err)
	}
	return nil
}

// Find loads the user's cart with display fields joined from Products. Items
// whose product no longer exists are skipped.
func (r *MySQLRepository) Find(ctx context.Context, userID string) (domain.CartState, error) {
	state := domain.CartState{Items: []domain.CartLineItem{}, CustomCoils: []domain.CustomCoil{}}

	rows, err := r.db.QueryContext(ctx, `
		SELECT c.productId, c.quantity, p.name, p.description, p.images, p.sku, p.category
		FROM CartItems c
		JOIN Products p ON p.id = c.productId
		WHERE c.userId = ?
		ORDER BY c.position, c.productId`, userID)
	if err != nil {
		return state, fmt.Errorf("querying cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartLineItem
		var images []byte
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.Name, &item.Description, &images, &item.SKU, &item.Category); err != nil {
			return state, fmt.Errorf("scanning cart item row: %w", err)
		}
		if len(images) > 0 {
			if err := json.Unmarshal(images, &item.Images); err != nil {
				return state, fmt.Errorf("decoding images of product %s: %w", item.ProductID, err)
			}
		}
		state.Items = append(state.Items, item)
	}
	if err := rows.Err(); err != nil {
		return state, fmt.Errorf("iterating cart item rows: %w", err)
	}

	coilRows, err := r.db.QueryContext(ctx, `
		SELECT config, quantity
		FROM CartCustomCoils
		WHERE userId = ?
		ORDER BY position, coilType`, userID)
	if err != nil {
		return state, fmt.Errorf("querying custom coils: %w", err)
	}
	defer coilRows.Close()

	for coilRows.Next() {
		var coil domain.CustomCoil
		var config []byte
		var quantity int
		if err := coilRows.Scan(&config, &quantity); err != nil {
			return state, fmt.Errorf("scanning custom coil row: %w", err)
		}
		if err := json.Unmarshal(config, &coil); err != nil {
			return state, fmt.Errorf("decoding custom coil: %w", err)
		}
		coil.Quantity = quantity
		state.CustomCoils = append(state.CustomCoils, coil)
	}
	if err := coilRows.Err(); err != nil {
		return state, fmt.Errorf("iterating custom coil rows: %w", err)
	}

	return state, nil
}
