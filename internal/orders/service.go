package orders

import (
	"context"
	"fmt"

	"github.com/doorsanddrawers/quote-backend/internal/customers"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes order reads and total maintenance.
type Service interface {
	Get(ctx context.Context, id uint) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, kind enums.OrderKind) ([]models.Order, error)
	Recalculate(ctx context.Context, id uint) (*models.Order, error)
	SetTaxAmount(ctx context.Context, id uint, tax decimal.Decimal) (*models.Order, error)
	ConvertToOrder(ctx context.Context, id uint) (*models.Order, error)
}

type service struct {
	repo      Repository
	customers customers.Repository
	tx        txRunner
	logg      *logger.Logger
}

// NewService builds an orders service with the required dependencies.
func NewService(repo Repository, customerRepo customers.Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if customerRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, customers: customerRepo, tx: tx, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "load order")
	}
	return order, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID uuid.UUID, kind enums.OrderKind) ([]models.Order, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if kind != "" && !kind.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order kind %q", kind)
	}
	orders, err := s.repo.ListByCustomer(ctx, customerID, kind)
	if err != nil {
		return nil, db.Classify(err, "list orders")
	}
	return orders, nil
}

func (s *service) Recalculate(ctx context.Context, id uint) (*models.Order, error) {
	return s.update(ctx, id, func(*models.Order) {})
}

// SetTaxAmount stores an externally computed tax and recomputes the total.
func (s *service) SetTaxAmount(ctx context.Context, id uint, tax decimal.Decimal) (*models.Order, error) {
	if tax.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tax amount cannot be negative")
	}
	return s.update(ctx, id, func(o *models.Order) {
		o.TaxAmount = tax.Round(2)
	})
}

// ConvertToOrder confirms a quote, keeping its number and totals.
func (s *service) ConvertToOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loaded, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !loaded.IsQuote {
			return pkgerrors.Newf(pkgerrors.CodeValidation, "order %d is not a quote", id)
		}
		if err := repo.MarkConfirmed(ctx, loaded); err != nil {
			return err
		}
		order = loaded
		return nil
	})
	if err != nil {
		return nil, db.Classify(err, "convert quote")
	}
	s.logg.Info(s.logg.WithOrderID(ctx, order.ID), "quote converted to order")
	return order, nil
}

func (s *service) update(ctx context.Context, id uint, mutate func(*models.Order)) (*models.Order, error) {
	var order *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		loaded, err := repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		adj, err := s.customers.WithTx(tx).FindAdjustments(ctx, loaded.CustomerID)
		if err != nil {
			return err
		}
		mutate(loaded)
		if _, err := CalculateTotals(loaded, adj); err != nil {
			return err
		}
		if err := repo.SaveTotals(ctx, loaded); err != nil {
			return err
		}
		order = loaded
		return nil
	})
	if err != nil {
		return nil, db.Classify(err, "recalculate order")
	}
	s.logg.Info(s.logg.WithOrderID(ctx, order.ID), "order totals recalculated")
	return order, nil
}
