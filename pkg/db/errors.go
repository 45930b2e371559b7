package db

import (
	"errors"
	"strings"

	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const integrityClass = "23"

// IsUniqueViolation reports whether the provided error references a unique
// violation. When constraintName is provided, the helper looks for the
// constraint text in the error message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	if constraintName != "" {
		return strings.Contains(err.Error(), constraintName)
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if code, ok := sqlState(err); ok {
		return code == "23505"
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "UNIQUE constraint failed")
}

// IsIntegrityViolation reports whether err is a constraint failure raised by
// the database (SQLSTATE class 23 or the sqlite equivalent).
func IsIntegrityViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) ||
		errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	if code, ok := sqlState(err); ok {
		return strings.HasPrefix(code, integrityClass)
	}
	return strings.Contains(err.Error(), "constraint failed")
}

// Classify maps a persistence failure onto the error taxonomy. Already typed
// errors pass through unchanged.
func Classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	if IsIntegrityViolation(err) {
		wrapped := pkgerrors.Wrap(pkgerrors.CodeIntegrity, err, msg)
		if info, ok := violationOf(err); ok {
			wrapped = wrapped.WithDetails(info)
		}
		return wrapped
	}
	return pkgerrors.Wrap(pkgerrors.CodeStorage, err, msg)
}

// Violation names the constraint a postgres statement tripped.
type Violation struct {
	SQLState   string `json:"sqlstate"`
	Constraint string `json:"constraint,omitempty"`
	Table      string `json:"table,omitempty"`
	Column     string `json:"column,omitempty"`
}

func violationOf(err error) (Violation, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return Violation{
			SQLState:   pgErr.Code,
			Constraint: pgErr.ConstraintName,
			Table:      pgErr.TableName,
			Column:     pgErr.ColumnName,
		}, true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return Violation{
			SQLState:   string(pqErr.Code),
			Constraint: pqErr.Constraint,
			Table:      pqErr.Table,
			Column:     pqErr.Column,
		}, true
	}
	return Violation{}, false
}

func sqlState(err error) (string, bool) {
	v, ok := violationOf(err)
	return v.SQLState, ok
}
