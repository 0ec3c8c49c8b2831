package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"testing"
	"time"

	"ventas/internal/config"
	"ventas/internal/infrastructure/mysql"

	"go.uber.org/zap"
)

// TestDatabaseConfig points at the integration database. It expects a MySQL
// instance on localhost:3306 with a 'ventas_test' schema unless overridden
// through TEST_DB_* variables.
func TestDatabaseConfig() config.DatabaseConfig {
	port := 3306
	if p, err := strconv.Atoi(os.Getenv("TEST_DB_PORT")); err == nil {
		port = p
	}

	return config.DatabaseConfig{
		Host:            envOr("TEST_DB_HOST", "localhost"),
		Port:            port,
		User:            envOr("TEST_DB_USER", "root"),
		Password:        os.Getenv("TEST_DB_PASSWORD"),
		Name:            envOr("TEST_DB_NAME", "ventas_test"),
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
		TxTimeout:       5 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// SetupTestDB connects to the integration database and brings the schema up
// to date. The test is skipped when no database is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := TestDatabaseConfig()
	db, err := mysql.NewConnection(cfg)
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	migrator, err := mysql.NewMigrator(cfg, zap.NewNop())
	if err != nil {
		db.Close()
		t.Fatalf("failed to prepare migrations: %v", err)
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		db.Close()
		t.Fatalf("failed to apply migrations: %v", err)
	}

	return db
}

// CleanupTestDB empties every table, children first, and closes db.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"Invoices", "OrderDetails", "Orders", "Articles", "Employees", "Companies", "Users"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM `%s`", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// InsertCompanyWithEmployee creates a company and one employee of it and
// returns both ids.
func InsertCompanyWithEmployee(t *testing.T, db *sql.DB, companyName string) (companyID, employeeID int64) {
	t.Helper()

	result, err := db.Exec("INSERT INTO `Companies` (`name`) VALUES (?)", companyName)
	if err != nil {
		t.Fatalf("failed to insert company: %v", err)
	}
	companyID, _ = result.LastInsertId()

	result, err = db.Exec("INSERT INTO `Employees` (`name`, `salary`, `companyId`) VALUES (?, ?, ?)",
		companyName+" employee", "1000.00", companyID)
	if err != nil {
		t.Fatalf("failed to insert employee: %v", err)
	}
	employeeID, _ = result.LastInsertId()

	return companyID, employeeID
}

// InsertArticle creates an article owned by companyID and returns its id.
func InsertArticle(t *testing.T, db *sql.DB, companyID int64, name string) int64 {
	t.Helper()

	result, err := db.Exec("INSERT INTO `Articles` (`name`, `value`, `companyId`) VALUES (?, ?, ?)",
		name, "10.00", companyID)
	if err != nil {
		t.Fatalf("failed to insert article: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}
