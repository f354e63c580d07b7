package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. It expects a MySQL
// instance on localhost:3306 with a database named 'kingflex_test' and skips
// the test when none is reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/kingflex_test?parseTime=true&loc=Local"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders", "Products", "Users"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the tables the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createUsersTable := `
	CREATE TABLE IF NOT EXISTS Users (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(100) NOT NULL,
		email VARCHAR(150) NOT NULL,
		passwordHash VARCHAR(255) NOT NULL,
		companyName VARCHAR(255),
		role VARCHAR(20) NOT NULL DEFAULT 'user',
		isVerified TINYINT(1) NOT NULL DEFAULT 0,
		verificationCode VARCHAR(10),
		verificationCodeExpires DATETIME,
		resetPasswordCode VARCHAR(10),
		resetPasswordExpires DATETIME,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_username (username),
		UNIQUE KEY uq_email (email)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS Products (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		detail TEXT,
		unit VARCHAR(50) NOT NULL,
		type VARCHAR(20) NOT NULL,
		createdBy INT UNSIGNED NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		INDEX idx_type (type)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderNumber VARCHAR(20) NOT NULL,
		companyName VARCHAR(255) NOT NULL,
		contactName VARCHAR(100) NOT NULL,
		phone VARCHAR(30) NOT NULL,
		email VARCHAR(150) NOT NULL,
		deliveryAddress VARCHAR(255) NOT NULL,
		deliveryDate DATETIME NOT NULL,
		deliveryTime VARCHAR(50) NOT NULL,
		craneTruck VARCHAR(5) NOT NULL,
		note TEXT,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		createdBy INT UNSIGNED,
		isGuestOrder TINYINT(1) NOT NULL DEFAULT 0,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_order_number (orderNumber),
		INDEX idx_created_by (createdBy),
		INDEX idx_created_at (createdAt)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		name VARCHAR(255) NOT NULL,
		detail TEXT,
		quantity DECIMAL(10,2) NOT NULL,
		uom VARCHAR(50) NOT NULL,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"Users", createUsersTable},
		{"Products", createProductsTable},
		{"Orders", createOrdersTable},
		{"OrderItems", createOrderItemsTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Fatalf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
