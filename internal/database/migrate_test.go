package database

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsEmbedded_UpDownPairs(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	if len(ups) == 0 {
		t.Fatal("expected at least one up migration")
	}
	for name := range ups {
		if !downs[name] {
			t.Errorf("migration %s has no down file", name)
		}
	}
}

func TestMigrationsEmbedded_ContactTable(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/000001_create_contact_messages.up.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	sql := string(data)
	for _, col := range []string{"id", "name", "email", "message", "created_at"} {
		if !strings.Contains(sql, col) {
			t.Errorf("migration missing column %q", col)
		}
	}
	if !strings.Contains(sql, "DEFAULT NOW()") {
		t.Error("created_at must default to NOW()")
	}
}

func TestNewMigrator_InvalidURL(t *testing.T) {
	if _, err := NewMigrator("not-a-url"); err == nil {
		t.Error("expected error for invalid database URL")
	}
}
