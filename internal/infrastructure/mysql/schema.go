package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables in creation order. Dropping or truncating should go in reverse.
var Tables = []string{"CompanyProfile", "Users", "Products", "CartItems", "CartCustomCoils", "Enquiries", "Orders"}

var schema = []struct {
	name  string
	query string
}{
	{"CompanyProfile", `
	CREATE TABLE IF NOT EXISTS CompanyProfile (
		id TINYINT NOT NULL PRIMARY KEY,
		supportEmail VARCHAR(150) NOT NULL DEFAULT '',
		facebook VARCHAR(255) NOT NULL DEFAULT '',
		instagram VARCHAR(255) NOT NULL DEFAULT '',
		linkedin VARCHAR(255) NOT NULL DEFAULT '',
		youtube VARCHAR(255) NOT NULL DEFAULT '',
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`},
	{"Users", `
	CREATE TABLE IF NOT EXISTS Users (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(150) NOT NULL,
		email VARCHAR(150) NOT NULL UNIQUE,
		phone VARCHAR(30) NOT NULL DEFAULT '',
		gstNumber VARCHAR(20) NOT NULL DEFAULT '',
		companyName VARCHAR(150) NOT NULL DEFAULT '',
		address VARCHAR(255) NOT NULL DEFAULT '',
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		status VARCHAR(20) NOT NULL DEFAULT 'active',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_role (role)
	)`},
	{"Products", `
	CREATE TABLE IF NOT EXISTS Products (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		sku VARCHAR(64) NOT NULL UNIQUE,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price DECIMAL(12,2) NOT NULL DEFAULT 0.00,
		images JSON NOT NULL,
		category VARCHAR(100) NOT NULL DEFAULT '',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_category (category)
	)`},
	{"CartItems", `
	CREATE TABLE IF NOT EXISTS CartItems (
		userId VARCHAR(36) NOT NULL,
		productId VARCHAR(36) NOT NULL,
		quantity INT NOT NULL,
		position BIGINT NOT NULL DEFAULT 0,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (userId, productId)
	)`},
	{"CartCustomCoils", `
	CREATE TABLE IF NOT EXISTS CartCustomCoils (
		userId VARCHAR(36) NOT NULL,
		coilType VARCHAR(100) NOT NULL,
		config JSON NOT NULL,
		quantity INT NOT NULL,
		position BIGINT NOT NULL DEFAULT 0,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (userId, coilType)
	)`},
	{"Enquiries", recordTable("Enquiries")},
	{"Orders", recordTable("Orders")},
}

func recordTable(name string) string {
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		humanId VARCHAR(32) NOT NULL UNIQUE,
		userId VARCHAR(36) NOT NULL,
		submitter JSON NOT NULL,
		status VARCHAR(20) NOT NULL,
		items JSON NOT NULL,
		customItems JSON NOT NULL,
		createdAt DATETIME(3) NOT NULL,
		updatedAt DATETIME(3) NOT NULL,
		INDEX idx_user (userId),
		INDEX idx_status (status)
	)`, name)
}

// Migrate creates any missing tables.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, tbl := range schema {
		if _, err := db.ExecContext(ctx, tbl.query); err != nil {
			return fmt.Errorf("creating table %s: %w", tbl.name, err)
		}
	}
	return nil
}
