package cart

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/doorsanddrawers/quote-backend/internal/catalog"
	"github.com/doorsanddrawers/quote-backend/internal/customers"
	"github.com/doorsanddrawers/quote-backend/internal/defaults"
	"github.com/doorsanddrawers/quote-backend/internal/orders"
	"github.com/doorsanddrawers/quote-backend/internal/pricing"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/doorsanddrawers/quote-backend/pkg/metrics"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes session cart operations and the finalize transaction.
type Service interface {
	Get(ctx context.Context, sessionID string) (*Cart, error)
	SelectCustomer(ctx context.Context, sessionID string, customerID uuid.UUID) (*Cart, error)
	Add(ctx context.Context, sessionID string, spec pricing.LineItemSpec) (*Preview, error)
	Remove(ctx context.Context, sessionID string, index int) (bool, error)
	Clear(ctx context.Context, sessionID string) error
	Finalize(ctx context.Context, sessionID string, header Header) (*models.Order, error)
}

// Deps groups the collaborators of the cart service.
type Deps struct {
	Store     Store
	Customers customers.Repository
	Catalog   catalog.Repository
	Globals   defaults.GlobalsRepository
	Orders    orders.Repository
	Tx        txRunner
	Metrics   *metrics.FinalizeMetrics
	Logger    *logger.Logger
}

type service struct {
	store     Store
	customers customers.Repository
	catalog   catalog.Repository
	globals   defaults.GlobalsRepository
	orders    orders.Repository
	tx        txRunner
	metrics   *metrics.FinalizeMetrics
	logg      *logger.Logger
	now       func() time.Time
}

// NewService builds a cart service. Metrics are optional.
func NewService(deps Deps) (Service, error) {
	if deps.Store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if deps.Customers == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if deps.Catalog == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if deps.Globals == nil {
		return nil, fmt.Errorf("globals repository required")
	}
	if deps.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if deps.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:     deps.Store,
		customers: deps.Customers,
		catalog:   deps.Catalog,
		globals:   deps.Globals,
		orders:    deps.Orders,
		tx:        deps.Tx,
		metrics:   deps.Metrics,
		logg:      deps.Logger,
		now:       time.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	c, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "load cart")
	}
	return c, nil
}

// SelectCustomer attaches a customer and snapshots their billing address.
func (s *service) SelectCustomer(ctx context.Context, sessionID string, customerID uuid.UUID) (*Cart, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, db.Classify(err, "load customer")
	}
	id := customer.ID
	billing := customer.BillingAddress
	c.CustomerID = &id
	c.BillingAddress = &billing
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithCustomerID(s.logg.WithSessionID(ctx, sessionID), id.String()), "cart customer selected")
	return c, nil
}

// Add validates and prices an entry against the selected customer's
// defaults, then appends it to the cart as supplied. Defaults are applied
// again at finalize.
func (s *service) Add(ctx context.Context, sessionID string, spec pricing.LineItemSpec) (*Preview, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	doorOverrides, drawerOverrides, err := s.overridesFor(ctx, c)
	if err != nil {
		return nil, err
	}
	g, err := defaults.LoadGlobals(ctx, s.globals)
	if err != nil {
		return nil, db.Classify(err, "load global defaults")
	}
	p, err := newPreparer(s.catalog, g, doorOverrides, drawerOverrides, s.logg)
	if err != nil {
		return nil, err
	}
	prepared, err := p.prepare(ctx, spec)
	if err != nil {
		return nil, db.Classify(err, "apply defaults")
	}
	if err := prepared.Validate(); err != nil {
		return nil, err
	}
	quote, err := p.pricer.Price(ctx, prepared)
	if err != nil {
		return nil, db.Classify(err, "price line item")
	}

	c.Items = append(c.Items, spec)
	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	s.logg.Debug(s.logg.WithFields(s.logg.WithSessionID(ctx, sessionID), map[string]any{
		"item_type":  spec.Type.String(),
		"unit_price": quote.UnitPrice.StringFixed(2),
	}), "cart item added")
	return &Preview{Index: len(c.Items) - 1, Spec: prepared, Quote: quote}, nil
}

// Remove drops the entry at index. An out-of-range index is a no-op that
// reports false.
func (s *service) Remove(ctx context.Context, sessionID string, index int) (bool, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return false, err
	}
	if index < 0 || index >= len(c.Items) {
		s.logg.Warn(s.logg.WithFields(s.logg.WithSessionID(ctx, sessionID), map[string]any{
			"index": index,
			"items": len(c.Items),
		}), "cart remove index out of range")
		return false, nil
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	if err := s.save(ctx, c); err != nil {
		return false, err
	}
	return true, nil
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id required")
	}
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "clear cart")
	}
	return nil
}

func (s *service) save(ctx context.Context, c *Cart) error {
	if err := s.store.Save(ctx, c); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeStorage, err, "save cart")
	}
	return nil
}

func (s *service) overridesFor(ctx context.Context, c *Cart) (types.DoorOverrides, types.DrawerOverrides, error) {
	if c.CustomerID == nil {
		return types.DoorOverrides{}, types.DrawerOverrides{}, nil
	}
	customer, err := s.customers.FindByID(ctx, *c.CustomerID)
	if err != nil {
		return types.DoorOverrides{}, types.DrawerOverrides{}, db.Classify(err, "load customer")
	}
	return customer.DoorDefaults, customer.DrawerDefaults, nil
}

// preparer fills cart entries from one customer's effective defaults and
// prices them against the same catalog view.
type preparer struct {
	resolver *defaults.Resolver
	pricer   *pricing.Pricer
	doors    types.DoorOverrides
	drawers  types.DrawerOverrides

	door   *defaults.EffectiveDoor
	drawer *defaults.EffectiveDrawer
}

func newPreparer(cat catalog.Repository, g defaults.Globals, doors types.DoorOverrides, drawers types.DrawerOverrides, logg *logger.Logger) (*preparer, error) {
	resolver, err := defaults.NewResolver(cat, g, logg)
	if err != nil {
		return nil, err
	}
	pricer, err := pricing.NewPricer(cat, g.Drawer, logg)
	if err != nil {
		return nil, err
	}
	return &preparer{resolver: resolver, pricer: pricer, doors: doors, drawers: drawers}, nil
}

// prepare returns a copy of spec with defaults applied. Effective
// configurations are resolved once per family.
func (p *preparer) prepare(ctx context.Context, spec pricing.LineItemSpec) (pricing.LineItemSpec, error) {
	switch spec.Type {
	case enums.ItemTypeDoor:
		if spec.Door == nil {
			return spec, nil
		}
		if p.door == nil {
			eff, err := p.resolver.Door(ctx, p.doors)
			if err != nil {
				return spec, err
			}
			p.door = &eff
		}
		door := *spec.Door
		door.ApplyDefaults(*p.door)
		spec.Door = &door
	case enums.ItemTypeDrawer:
		if spec.Drawer == nil {
			return spec, nil
		}
		if p.drawer == nil {
			eff, err := p.resolver.Drawer(ctx, p.drawers)
			if err != nil {
				return spec, err
			}
			p.drawer = &eff
		}
		drawer := *spec.Drawer
		drawer.ApplyDefaults(*p.drawer)
		spec.Drawer = &drawer
	}
	return spec, nil
}
