package db

import (
	"context"
	"errors"
	"testing"

	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testModel struct {
	ID   int
	Name string `gorm:"uniqueIndex"`
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("failed to get sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := conn.AutoMigrate(&testModel{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return conn
}

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	db := newTestDB(t)
	client := NewFromGorm(db)

	ctx := context.Background()
	if err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&testModel{Name: "committed"}).Error
	}); err != nil {
		t.Fatalf("WithTx commit failed: %v", err)
	}

	var count int64
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 record, got %d", count)
	}

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&testModel{Name: "rolled"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	if err == nil {
		t.Fatal("expected WithTx to return an error")
	}
	if err := db.Model(&testModel{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed after rollback: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected rollback to leave 1 record, got %d", count)
	}
}

func TestPing(t *testing.T) {
	client := NewFromGorm(newTestDB(t))
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}

func TestClassifySQLiteUniqueViolation(t *testing.T) {
	db := newTestDB(t)
	if err := db.Create(&testModel{Name: "dup"}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}
	err := db.Create(&testModel{Name: "dup"}).Error
	if err == nil {
		t.Fatal("expected unique violation")
	}
	if !IsUniqueViolation(err, "") {
		t.Fatalf("expected unique violation, got %v", err)
	}
	if !pkgerrors.IsCode(Classify(err, "insert"), pkgerrors.CodeIntegrity) {
		t.Fatalf("expected integrity code for %v", err)
	}
}

func TestClassifyDriverErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want pkgerrors.Code
	}{
		{name: "pgconn fk", err: &pgconn.PgError{Code: "23503"}, want: pkgerrors.CodeIntegrity},
		{name: "pq check", err: &pq.Error{Code: "23514"}, want: pkgerrors.CodeIntegrity},
		{name: "pgconn connection", err: &pgconn.PgError{Code: "08006"}, want: pkgerrors.CodeStorage},
		{name: "gorm translated", err: gorm.ErrForeignKeyViolated, want: pkgerrors.CodeIntegrity},
		{name: "plain", err: errors.New("connection reset"), want: pkgerrors.CodeStorage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pkgerrors.CodeOf(Classify(tc.err, "op"))
			if got != tc.want {
				t.Fatalf("expected %s got %s", tc.want, got)
			}
		})
	}
}

func TestClassifyKeepsTypedErrors(t *testing.T) {
	typed := pkgerrors.New(pkgerrors.CodeNotFound, "wood stock 9 not found")
	if got := Classify(typed, "op"); got != error(typed) {
		t.Fatalf("expected typed error to pass through, got %v", got)
	}
	if Classify(nil, "op") != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestClassifyAttachesViolation(t *testing.T) {
	err := &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "door_line_items_wood_stock_id_fkey",
		TableName:      "door_line_items",
	}
	typed := pkgerrors.As(Classify(err, "insert door item"))
	if typed == nil {
		t.Fatal("expected typed error")
	}
	v, ok := typed.Details().(Violation)
	if !ok {
		t.Fatalf("expected violation details, got %#v", typed.Details())
	}
	if v.Constraint != "door_line_items_wood_stock_id_fkey" || v.SQLState != "23503" {
		t.Fatalf("unexpected violation %+v", v)
	}
}

func TestSQLiteDSNEnablesForeignKeys(t *testing.T) {
	cases := map[string]string{
		"quotes.db":                   "quotes.db?_foreign_keys=1",
		"file:q?mode=memory":          "file:q?mode=memory&_foreign_keys=1",
		"quotes.db?_fk=0":             "quotes.db?_fk=0",
		"quotes.db?_foreign_keys=off": "quotes.db?_foreign_keys=off",
	}
	for in, want := range cases {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}
