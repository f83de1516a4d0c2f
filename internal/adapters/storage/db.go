package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// SQLDB is the subset of *sql.DB the stores need. Keeping it an interface
// lets tests substitute an in-memory database.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// Compile-time check that *sql.DB satisfies SQLDB.
var _ SQLDB = (*sql.DB)(nil)

// Supported driver names.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// TimeLayout is the storage format for datetime columns. It is what the
// legacy rows already contain, and both drivers round-trip it as text.
const TimeLayout = "2006-01-02 15:04:05"

// Sentinel errors shared by all stores.
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate key")
)

// autoIncrement maps driver to its auto-increment primary key column syntax,
// the only DDL fragment the two dialects disagree on.
var autoIncrement = map[string]string{
	DriverMySQL:  "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY",
	DriverSQLite: "INTEGER PRIMARY KEY AUTOINCREMENT",
}

// Schema returns the CREATE TABLE statements for the given driver.
func Schema(driver string) ([]string, error) {
	autoPK, ok := autoIncrement[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS clients_login (
			id %s,
			username VARCHAR(50) NOT NULL,
			email VARCHAR(254) NOT NULL,
			password VARCHAR(100) NOT NULL,
			role VARCHAR(20) NOT NULL,
			CONSTRAINT uq_clients_login_username UNIQUE (username),
			CONSTRAINT uq_clients_login_email UNIQUE (email)
		)`, autoPK),
		`CREATE TABLE IF NOT EXISTS studentregister (
			studentID VARCHAR(50) NOT NULL PRIMARY KEY,
			FirstName VARCHAR(50) NOT NULL,
			LastName VARCHAR(50) NOT NULL,
			ContactNum VARCHAR(15),
			Email VARCHAR(254) NOT NULL,
			DOB VARCHAR(10) NOT NULL,
			Address VARCHAR(255),
			ParentName VARCHAR(100),
			ParentTelNum VARCHAR(15),
			Relationship VARCHAR(50),
			PhotoPath VARCHAR(255),
			QRPath VARCHAR(255),
			CONSTRAINT uq_studentregister_email UNIQUE (Email)
		)`,
		`CREATE TABLE IF NOT EXISTS teacherregister (
			TeacherID VARCHAR(50) NOT NULL PRIMARY KEY,
			FirstName VARCHAR(50) NOT NULL,
			LastName VARCHAR(50) NOT NULL,
			Subject VARCHAR(100) NOT NULL,
			Email VARCHAR(254) NOT NULL,
			ContactNumber VARCHAR(15)
		)`,
		`CREATE TABLE IF NOT EXISTS classregister (
			ClassID VARCHAR(50) NOT NULL PRIMARY KEY,
			ClassName VARCHAR(100) NOT NULL,
			ClassSubject VARCHAR(100) NOT NULL,
			ClassBatch VARCHAR(50) NOT NULL,
			ClassPrice DOUBLE NOT NULL,
			TeacherID VARCHAR(50) NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS studentclasses (
			StudentID VARCHAR(50) NOT NULL,
			ClassID VARCHAR(50) NOT NULL,
			RegisterDate VARCHAR(19) NOT NULL,
			CONSTRAINT uq_studentclasses UNIQUE (StudentID, ClassID)
		)`,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS payment (
			PaymentID %s,
			StudentID VARCHAR(50) NOT NULL,
			ClassID VARCHAR(50) NOT NULL,
			Payment DOUBLE NOT NULL,
			Year INT NOT NULL,
			Month INT NOT NULL,
			PaymentDate VARCHAR(19) NOT NULL
		)`, autoPK),
		`CREATE TABLE IF NOT EXISTS outbox (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			action_type VARCHAR(30) NOT NULL,
			payload TEXT NOT NULL,
			status VARCHAR(20) NOT NULL,
			attempts INT NOT NULL,
			max_attempts INT NOT NULL,
			last_attempted_at VARCHAR(35),
			created_at VARCHAR(35) NOT NULL,
			external_id VARCHAR(100),
			error_message TEXT
		)`,
	}, nil
}

// InitDB creates the schema if it does not exist yet.
// PRE: db is a reachable connection for the named driver
// POST: All tables exist
func InitDB(db *sql.DB, driver string) error {
	stmts, err := Schema(driver)
	if err != nil {
		return err
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure from
// either supported driver. The constraint is the source of truth for
// duplicate detection; pre-checks in orchestrators only improve messages.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// UniqueField guesses which natural key a unique violation hit, for
// field-specific conflict messages. Returns "" when unknown.
func UniqueField(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ToLower(err.Error())
	for _, field := range []string{"studentid", "username", "email", "contactnum"} {
		if strings.Contains(msg, field) {
			return field
		}
	}
	if strings.Contains(msg, "studentclasses") {
		return "enrollment"
	}
	return ""
}

// DuplicateError wraps a driver unique-violation error as ErrDuplicate,
// preserving the field hint.
func DuplicateError(err error) error {
	if field := UniqueField(err); field != "" {
		return fmt.Errorf("%w: %s", ErrDuplicate, field)
	}
	return ErrDuplicate
}
