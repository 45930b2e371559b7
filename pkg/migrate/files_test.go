package migrate

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 4, 11, 8, 30, 0, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Order Notes!", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if filepath.Base(path) != "20250411083000_add_order_notes.sql" {
		t.Fatalf("unexpected filename %s", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "-- rollback add_order_notes") {
		t.Fatalf("unexpected template:\n%s", data)
	}

	if _, err := CreateSQLMigration(dir, "add order notes", now); err == nil {
		t.Fatal("expected duplicate migration error")
	}
	if _, err := CreateSQLMigration(dir, "!!!", now); err == nil {
		t.Fatal("expected error for empty sanitized name")
	}
	if err := ValidateDir(dir); err != nil {
		t.Fatalf("generated migration should validate: %v", err)
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"bad-name.sql":               "-- +goose Up\n-- +goose Down\n",
		"20250101000000_no_down.sql": "-- +goose Up\nSELECT 1;\n",
		"20250101000000_unbalanced.sql": "-- +goose Up\n-- +goose StatementBegin\nSELECT 1;\n" +
			"-- +goose Down\n",
	}
	for name, body := range cases {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := ValidateDir(dir); err == nil {
			t.Fatalf("expected %s to fail validation", name)
		}
	}
}

func TestValidateShippedMigrations(t *testing.T) {
	if err := ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations invalid: %v", err)
	}
}

func TestParseVersion(t *testing.T) {
	if v, err := parseVersion("20250410000000"); err != nil || v != 20250410000000 {
		t.Fatalf("unexpected result %d, %v", v, err)
	}
	for _, bad := range []string{"2025", "2025041000000x", ""} {
		if _, err := parseVersion(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestEmbeddedMigrationsMatchDisk(t *testing.T) {
	embeddedFiles, err := fs.Glob(Migrations(), "*.sql")
	if err != nil {
		t.Fatalf("glob embedded: %v", err)
	}
	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	if err != nil {
		t.Fatalf("glob disk: %v", err)
	}
	if len(embeddedFiles) == 0 || len(embeddedFiles) != len(onDisk) {
		t.Fatalf("embedded %v does not match disk %v", embeddedFiles, onDisk)
	}
}

func TestNewRunnerRequiresDB(t *testing.T) {
	if _, err := NewRunner(nil, Migrations()); err == nil {
		t.Fatal("expected error without db")
	}
}
