package dberrors

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// PostgreSQL SQLSTATE codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsNoRows reports whether err means a single-row query matched nothing,
// for either driver.
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}

// UniqueViolation reports whether err is a unique constraint violation and,
// if so, returns a target describing it: the constraint name on PostgreSQL
// (e.g. "users_username_key") or "table.column" on SQLite (e.g.
// "users.username").
func UniqueViolation(err error) (target string, ok bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName, true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
		// Message format: "UNIQUE constraint failed: users.username"
		_, cols, _ := strings.Cut(sqliteErr.Error(), "failed: ")
		return cols, true
	}

	return "", false
}

// IsDuplicateOn reports whether err is a unique violation on column of table,
// matching either driver's naming.
func IsDuplicateOn(err error, table, column string) bool {
	target, ok := UniqueViolation(err)
	if !ok {
		return false
	}
	return target == table+"_"+column+"_key" || strings.Contains(target, table+"."+column)
}

// IsForeignKeyViolation reports whether err is a foreign key violation
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return true
	}

	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
}
