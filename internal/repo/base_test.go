package repo

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	return conn
}

func TestBaseDBBindsContext(t *testing.T) {
	conn := newTestDB(t)
	base := NewBase(conn)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	bound := base.DB(ctx)
	if bound == nil || bound.Statement == nil {
		t.Fatalf("expected statement after WithContext")
	}
	if bound.Statement.Context != ctx {
		t.Fatalf("expected context to flow through, got %v", bound.Statement.Context)
	}

	if base.DB(nil) != conn {
		t.Fatalf("expected nil context to return raw connection")
	}
}

func TestBaseWithTxRebinds(t *testing.T) {
	conn := newTestDB(t)
	base := NewBase(conn)

	tx := conn.Begin()
	defer tx.Rollback()

	rebound := base.WithTx(tx)
	if rebound.conn != tx {
		t.Fatalf("expected transaction-bound connection")
	}

	if base.WithTx(nil).conn != conn {
		t.Fatalf("expected nil tx to keep current connection")
	}
}
