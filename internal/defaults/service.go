package defaults

import (
	"context"
	"fmt"

	"github.com/doorsanddrawers/quote-backend/internal/catalog"
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

// Service resolves and mutates per-customer defaults.
type Service interface {
	Globals(ctx context.Context) (Globals, error)
	Door(ctx context.Context, customerID uuid.UUID) (EffectiveDoor, error)
	Drawer(ctx context.Context, customerID uuid.UUID) (EffectiveDrawer, error)
	Effective(ctx context.Context, customerID uuid.UUID, itemType enums.ItemType) (map[string]any, error)
	RailSize(ctx context.Context, customerID uuid.UUID, rail string) (decimal.Decimal, error)
	SetOverride(ctx context.Context, customerID uuid.UUID, family enums.ItemType, field string, value any) error
}

type service struct {
	customers customers.Repository
	catalog   catalog.Repository
	globals   GlobalsRepository
	tx        txRunner
	logg      *logger.Logger
}

// NewService builds a defaults service with the required dependencies.
func NewService(customerRepo customers.Repository, cat catalog.Repository, globals GlobalsRepository, tx txRunner, logg *logger.Logger) (Service, error) {
	if customerRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if globals == nil {
		return nil, fmt.Errorf("globals repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		customers: customerRepo,
		catalog:   cat,
		globals:   globals,
		tx:        tx,
		logg:      logg,
	}, nil
}

func (s *service) Globals(ctx context.Context) (Globals, error) {
	g, err := LoadGlobals(ctx, s.globals)
	if err != nil {
		return Globals{}, db.Classify(err, "load global defaults")
	}
	return g, nil
}

func (s *service) resolverFor(ctx context.Context, customerID uuid.UUID) (*Resolver, *models.Customer, error) {
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, nil, db.Classify(err, "load customer")
	}
	g, err := s.Globals(ctx)
	if err != nil {
		return nil, nil, err
	}
	r, err := NewResolver(s.catalog, g, s.logg)
	if err != nil {
		return nil, nil, err
	}
	return r, customer, nil
}

func (s *service) Door(ctx context.Context, customerID uuid.UUID) (EffectiveDoor, error) {
	r, customer, err := s.resolverFor(ctx, customerID)
	if err != nil {
		return EffectiveDoor{}, err
	}
	out, err := r.Door(ctx, customer.DoorDefaults)
	if err != nil {
		return EffectiveDoor{}, db.Classify(err, "resolve door defaults")
	}
	return out, nil
}

func (s *service) Drawer(ctx context.Context, customerID uuid.UUID) (EffectiveDrawer, error) {
	r, customer, err := s.resolverFor(ctx, customerID)
	if err != nil {
		return EffectiveDrawer{}, err
	}
	out, err := r.Drawer(ctx, customer.DrawerDefaults)
	if err != nil {
		return EffectiveDrawer{}, db.Classify(err, "resolve drawer defaults")
	}
	return out, nil
}

func (s *service) Effective(ctx context.Context, customerID uuid.UUID, itemType enums.ItemType) (map[string]any, error) {
	switch itemType {
	case enums.ItemTypeDoor:
		d, err := s.Door(ctx, customerID)
		if err != nil {
			return nil, err
		}
		return d.Fields(), nil
	case enums.ItemTypeDrawer:
		d, err := s.Drawer(ctx, customerID)
		if err != nil {
			return nil, err
		}
		return d.Fields(), nil
	}
	return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "item type %q has no defaults", itemType)
}

func (s *service) RailSize(ctx context.Context, customerID uuid.UUID, rail string) (decimal.Decimal, error) {
	r, customer, err := s.resolverFor(ctx, customerID)
	if err != nil {
		return decimal.Zero, err
	}
	if _, ok := r.Globals().Rail(rail); !ok {
		return decimal.Zero, pkgerrors.Newf(pkgerrors.CodeValidation, "unknown rail %q", rail)
	}
	return r.Rail(ctx, customer.DoorDefaults, rail), nil
}

func (s *service) SetOverride(ctx context.Context, customerID uuid.UUID, family enums.ItemType, field string, value any) error {
	if !family.HasOverrides() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "item type %q has no defaults", family)
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.customers.WithTx(tx)
		customer, err := repo.FindByID(ctx, customerID)
		if err != nil {
			return err
		}
		if family == enums.ItemTypeDrawer {
			if err := applyDrawerOverride(&customer.DrawerDefaults, field, value); err != nil {
				return err
			}
			return repo.UpdateDrawerDefaults(ctx, customerID, customer.DrawerDefaults)
		}
		g, err := LoadGlobals(ctx, s.globals.WithTx(tx))
		if err != nil {
			return err
		}
		if err := applyDoorOverride(&customer.DoorDefaults, g, field, value); err != nil {
			return err
		}
		return repo.UpdateDoorDefaults(ctx, customerID, customer.DoorDefaults)
	})
	if err != nil {
		return db.Classify(err, "save customer defaults")
	}
	s.logg.Info(s.logg.WithFields(s.logg.WithCustomerID(ctx, customerID.String()), map[string]any{
		"family": family.String(),
		"field":  field,
	}), "customer default updated")
	return nil
}
