package db

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestOpenAppliesPragmasOnEveryConnection(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "pragmas.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer database.Close()

	database.SetMaxOpenConns(3)
	conns := make([]interface{ Close() error }, 0, 3)
	for i := 0; i < 3; i++ {
		conn, err := database.Conn(t.Context())
		if err != nil {
			t.Fatalf("conn %d: %v", i, err)
		}
		conns = append(conns, conn)

		var fk int
		if err := conn.QueryRowContext(t.Context(), `PRAGMA foreign_keys`).Scan(&fk); err != nil {
			t.Fatalf("read foreign_keys: %v", err)
		}
		if fk != 1 {
			t.Fatalf("conn %d foreign_keys = %d, want 1", i, fk)
		}

		var mode string
		if err := conn.QueryRowContext(t.Context(), `PRAGMA journal_mode`).Scan(&mode); err != nil {
			t.Fatalf("read journal_mode: %v", err)
		}
		if !strings.EqualFold(mode, "wal") {
			t.Fatalf("conn %d journal_mode = %q, want wal", i, mode)
		}
	}
	for _, c := range conns {
		c.Close()
	}
}
