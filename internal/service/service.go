package service

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service implements the lease lifecycle, rent ledger and maintenance
// workflow against a relational store. Every multi-row cascade runs inside
// one transaction; partial application is treated as a bug, never a
// degraded mode.
type Service struct {
	db *gorm.DB
}

// New creates a Service bound to the given database handle.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DB exposes the underlying handle for read-only handler queries.
func (s *Service) DB() *gorm.DB {
	return s.db
}

// lockForUpdate applies a row-level lock for check-then-act sequences.
// SQLite has no FOR UPDATE and serializes writers on its own.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// dateOnly truncates a timestamp to its calendar date in UTC. Lease and
// payment dates carry no time-of-day component.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// today returns the current calendar date.
func today() time.Time {
	return dateOnly(time.Now().UTC())
}

// isUniqueViolation matches unique-index violations across the postgres and
// sqlite drivers without importing either.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
