package repo

import (
	"context"
	"errors"

	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// WithTx rebinds the base to tx. A nil tx keeps the current connection.
func (b Base) WithTx(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// FindByID loads one row by primary key. A missing row becomes a NOT_FOUND
// error naming label; other failures are returned untouched.
func FindByID[T any](ctx context.Context, b Base, label string, id any, preloads ...string) (*T, error) {
	var out T
	q := b.DB(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	if err := q.First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "%s %v not found", label, id)
		}
		return nil, err
	}
	return &out, nil
}
