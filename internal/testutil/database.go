package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"coilworks/internal/config"
	"coilworks/internal/infrastructure/mysql"
)

// SetupTestDB opens the MySQL test database at localhost:3306/coilworks_test
// and skips the test when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := mysql.DSN(config.DatabaseConfig{
		Host: "localhost",
		Port: 3306,
		User: "root",
		Name: "coilworks_test",
	})
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties every table and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	for i := len(mysql.Tables) - 1; i >= 0; i-- {
		table := mysql.Tables[i]
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema used by the repositories.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if err := mysql.Migrate(context.Background(), db); err != nil {
		t.Logf("failed to create tables: %v", err)
	}
}
