// Package store wraps gorm queries for each table. Every store is built on a
// *gorm.DB which may be a transaction, so callers compose them inside
// db.Transaction.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrDuplicate = errors.New("duplicate record")

func translate(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
