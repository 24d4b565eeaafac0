package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the shared persistence plumbing for domain repositories:
// binding queries to a request context and rebinding to a transaction.
type Base struct {
	conn *gorm.DB
}

// NewBase constructs a Base backed by the provided GORM connection.
func NewBase(conn *gorm.DB) Base {
	return Base{conn: conn}
}

// DB returns the connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.conn
	}
	return b.conn.WithContext(ctx)
}

// WithTx returns a Base bound to the given transaction. A nil tx keeps
// the current connection, so callers can pass through optional
// transactions without branching.
func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{conn: tx}
}
