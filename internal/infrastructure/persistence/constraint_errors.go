package persistence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/futurevend/backend/internal/domain/integrity"
	"github.com/futurevend/backend/internal/domain/shared"
)

// Postgres SQLSTATE codes of integrity constraint violations
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// SQLite reports violations as text without the constraint name
const (
	sqliteUniquePrefix = "UNIQUE constraint failed: "
	sqliteForeignKey   = "FOREIGN KEY constraint failed"
)

// kindTables maps record kinds to their tables
var kindTables = map[integrity.Kind]string{
	integrity.KindCustomer:       "customers",
	integrity.KindPaymentDevice:  "payment_devices",
	integrity.KindVendingDevice:  "vending_devices",
	integrity.KindVendingProduct: "vending_products",
	integrity.KindDevice:         "devices",
	integrity.KindTransaction:    "transactions",
}

// uniqueConflict reports whether err is a unique violation of one of kind's rules,
// and returns the same ALREADY_EXISTS error the application check produces.
func uniqueConflict(kind integrity.Kind, err error) (*shared.DomainError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != pgUniqueViolation {
			return nil, false
		}
		if c, ok := integrity.ConstraintByName(pgErr.ConstraintName); ok {
			return c.Conflict(), true
		}
		return shared.ErrAlreadyExists, true
	}

	msg := err.Error()
	i := strings.Index(msg, sqliteUniquePrefix)
	if i < 0 {
		return nil, false
	}
	// "UNIQUE constraint failed: customers.tenant_id, customers.tax_number"
	for _, col := range strings.Split(msg[i+len(sqliteUniquePrefix):], ",") {
		table, column, ok := strings.Cut(strings.TrimSpace(col), ".")
		if !ok || table != kindTables[kind] {
			continue
		}
		if c, ok := integrity.ConstraintFor(kind, integrity.Field(column)); ok {
			return c.Conflict(), true
		}
	}
	return shared.ErrAlreadyExists, true
}

// foreignKeyViolation reports whether err is a foreign key violation and returns
// the constraint name when the database provides one.
func foreignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName, pgErr.Code == pgForeignKeyViolation
	}
	return "", strings.Contains(err.Error(), sqliteForeignKey)
}

// translateSaveError maps a failed insert or update of kind to a domain error.
// A foreign key failure means a referenced record vanished after it was checked.
func translateSaveError(kind integrity.Kind, err error) error {
	if err == nil {
		return nil
	}
	if conflict, ok := uniqueConflict(kind, err); ok {
		return conflict
	}
	if _, ok := foreignKeyViolation(err); ok {
		return shared.NewNotFoundError("Referenced record not found")
	}
	return fmt.Errorf("save %s: %w", kind, err)
}

// translateDeleteError maps a failed delete of kind to a domain error.
// A foreign key failure is the database-level twin of the deletion guard.
func translateDeleteError(kind integrity.Kind, err error) error {
	if err == nil {
		return nil
	}
	if name, ok := foreignKeyViolation(err); ok {
		if dep, found := integrity.DependencyByConstraint(name); found {
			return dep.Block()
		}
		if dep, found := integrity.DependencyFor(kind); found {
			return dep.Block()
		}
		return shared.ErrReferentialBlock
	}
	return fmt.Errorf("delete %s: %w", kind, err)
}
