package cart

import (
	"context"
	"fmt"
	"strconv"

	"github.com/doorsanddrawers/quote-backend/internal/defaults"
	"github.com/doorsanddrawers/quote-backend/internal/orders"
	"github.com/doorsanddrawers/quote-backend/internal/pricing"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/validate"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Finalize converts the session cart into a persisted order in one
// transaction. Any failure rolls back every row and leaves the cart intact;
// the cart is cleared only after commit.
func (s *service) Finalize(ctx context.Context, sessionID string, header Header) (*models.Order, error) {
	started := s.now()
	ctx = s.logg.WithSessionID(ctx, sessionID)
	kind := orderKind(header.IsQuote)

	order, items, err := s.finalize(ctx, sessionID, header)
	if err != nil {
		code := pkgerrors.CodeOf(err)
		s.metrics.IncFailure(string(code))
		logCtx := s.logg.WithField(ctx, "error_code", string(code))
		if pkgerrors.MetadataFor(code).Retryable {
			s.logg.Error(logCtx, "cart finalize failed", err)
		} else {
			s.logg.Warn(s.logg.WithField(logCtx, "error", err.Error()), "cart finalize rejected")
		}
		return nil, err
	}
	s.metrics.ObserveDuration(kind.String(), s.now().Sub(started))
	s.metrics.IncSuccess(kind.String(), items)

	ctx = s.logg.WithOrderID(ctx, order.ID)
	if err := s.store.Clear(ctx, sessionID); err != nil {
		s.logg.Error(ctx, "clear cart after finalize", err)
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_number": *order.OrderNumber,
		"items":        items,
		"total":        order.Total.StringFixed(2),
	}), "cart finalized")
	return order, nil
}

func (s *service) finalize(ctx context.Context, sessionID string, header Header) (*models.Order, int, error) {
	c, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}
	if c.IsEmpty() {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}
	if err := validate.Struct(header); err != nil {
		return nil, 0, err
	}
	if c.CustomerID == nil || *c.CustomerID != header.CustomerID {
		return nil, 0, pkgerrors.New(pkgerrors.CodeCustomerMismatch, "order customer does not match the cart customer")
	}

	var order *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		customerRepo := s.customers.WithTx(tx)
		customer, err := customerRepo.FindByID(ctx, header.CustomerID)
		if err != nil {
			return err
		}
		adj, err := customerRepo.FindAdjustments(ctx, customer.ID)
		if err != nil {
			return err
		}
		g, err := defaults.LoadGlobals(ctx, s.globals.WithTx(tx))
		if err != nil {
			return err
		}
		p, err := newPreparer(s.catalog.WithTx(tx), g, customer.DoorDefaults, customer.DrawerDefaults, s.logg)
		if err != nil {
			return err
		}
		prepared, err := prepareAll(ctx, p, c.Items)
		if err != nil {
			return err
		}

		repo := s.orders.WithTx(tx)
		created, err := repo.Create(ctx, s.orderHeader(c, customer, header))
		if err != nil {
			return err
		}
		if err := repo.AssignNumber(ctx, created); err != nil {
			return err
		}
		for i, spec := range prepared {
			quote, err := p.pricer.Price(ctx, spec)
			if err != nil {
				return priceItemError(err, i)
			}
			if err := createItem(ctx, repo, created, i, spec, quote); err != nil {
				return err
			}
		}
		if _, err := orders.CalculateTotals(created, adj); err != nil {
			return err
		}
		if err := repo.SaveTotals(ctx, created); err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, 0, db.Classify(err, "finalize cart")
	}
	return order, len(c.Items), nil
}

// prepareAll applies defaults to every entry and validates the results,
// reporting every invalid entry at once.
func prepareAll(ctx context.Context, p *preparer, items []pricing.LineItemSpec) ([]pricing.LineItemSpec, error) {
	out := make([]pricing.LineItemSpec, 0, len(items))
	var errs error
	details := map[string]any{}
	for i, item := range items {
		spec, err := p.prepare(ctx, item)
		if err != nil {
			return nil, err
		}
		if err := spec.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("item %d: %w", i, err))
			key := fmt.Sprintf("items[%d]", i)
			if typed := pkgerrors.As(err); typed != nil && typed.Details() != nil {
				details[key] = typed.Details()
			} else {
				details[key] = err.Error()
			}
			continue
		}
		out = append(out, spec)
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs,
			fmt.Sprintf("%d cart item(s) invalid", len(multierr.Errors(errs)))).WithDetails(details)
	}
	return out, nil
}

func (s *service) orderHeader(c *Cart, customer *models.Customer, header Header) *models.Order {
	billing := customer.BillingAddress
	switch {
	case header.BillingAddress != nil:
		billing = *header.BillingAddress
	case c.BillingAddress != nil:
		billing = *c.BillingAddress
	}
	date := header.OrderDate
	if date.IsZero() {
		date = s.now()
	}
	return &models.Order{
		CustomerID:     customer.ID,
		IsQuote:        header.IsQuote,
		OrderDate:      date.UTC(),
		BillingAddress: billing,
		Notes:          header.Notes,
		TaxAmount:      header.TaxAmount.Round(2),
	}
}

func createItem(ctx context.Context, repo orders.Repository, order *models.Order, position int, spec pricing.LineItemSpec, quote pricing.Quote) error {
	base := models.LineItemBase{
		OrderID:      order.ID,
		Position:     position,
		Quantity:     spec.Quantity,
		PricePerUnit: quote.UnitPrice,
		CustomPrice:  quote.Mode == enums.PriceModeCustom,
		Notes:        spec.Notes,
	}
	switch spec.Type {
	case enums.ItemTypeDoor:
		item, err := doorItem(base, *spec.Door)
		if err != nil {
			return err
		}
		if err := repo.CreateDoorItem(ctx, item); err != nil {
			return err
		}
		order.DoorItems = append(order.DoorItems, *item)
	case enums.ItemTypeDrawer:
		item, err := drawerItem(base, *spec.Drawer)
		if err != nil {
			return err
		}
		if err := repo.CreateDrawerItem(ctx, item); err != nil {
			return err
		}
		order.DrawerItems = append(order.DrawerItems, *item)
	case enums.ItemTypeOther:
		item := &models.GenericLineItem{
			LineItemBase: base,
			Name:         spec.Other.Name,
			Description:  spec.Other.Description,
		}
		if err := repo.CreateGenericItem(ctx, item); err != nil {
			return err
		}
		order.GenericItems = append(order.GenericItems, *item)
	default:
		return pkgerrors.Newf(pkgerrors.CodeValidation, "unknown item type %q", spec.Type)
	}
	return nil
}

func doorItem(base models.LineItemBase, door pricing.DoorSpec) (*models.DoorLineItem, error) {
	var errs error
	parse := func(field, raw string) decimal.Decimal {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return d
	}
	item := &models.DoorLineItem{
		LineItemBase:     base,
		WoodStockID:      door.WoodStockID,
		EdgeProfileID:    door.EdgeProfileID,
		PanelRiseID:      door.PanelRiseID,
		StyleID:          door.StyleID,
		Width:            parse("width", door.Width),
		Height:           parse("height", door.Height),
		RailTop:          parse("rail_top", door.RailTop),
		RailBottom:       parse("rail_bottom", door.RailBottom),
		RailLeft:         parse("rail_left", door.RailLeft),
		RailRight:        parse("rail_right", door.RailRight),
		InteriorRailSize: parse("interior_rail_size", door.InteriorRailSize),
		SandEdge:         door.SandEdge != nil && *door.SandEdge,
		SandCrossGrain:   door.SandCrossGrain != nil && *door.SandCrossGrain,
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid door dimensions")
	}
	return item, nil
}

func drawerItem(base models.LineItemBase, drawer pricing.DrawerSpec) (*models.DrawerLineItem, error) {
	var errs error
	parse := func(field, raw string) decimal.Decimal {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return d
	}
	item := &models.DrawerLineItem{
		LineItemBase: base,
		WoodStockID:  drawer.WoodStockID,
		EdgeTypeID:   drawer.EdgeTypeID,
		BottomID:     drawer.BottomID,
		Width:        parse("width", drawer.Width),
		Height:       parse("height", drawer.Height),
		Depth:        parse("depth", drawer.Depth),
		Undermount:   drawer.Undermount != nil && *drawer.Undermount,
		Finishing:    drawer.Finishing != nil && *drawer.Finishing,
	}
	if errs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid drawer dimensions")
	}
	return item, nil
}

func orderKind(isQuote bool) enums.OrderKind {
	if isQuote {
		return enums.OrderKindQuote
	}
	return enums.OrderKindConfirmed
}

// priceItemError keeps the pricing error code and tags it with the cart index.
func priceItemError(err error, index int) error {
	typed := pkgerrors.As(err)
	if typed == nil {
		return db.Classify(err, fmt.Sprintf("price item %d", index))
	}
	details := map[string]string{"item_index": strconv.Itoa(index)}
	if inner, ok := typed.Details().(map[string]string); ok {
		for k, v := range inner {
			details[k] = v
		}
	}
	return pkgerrors.Wrap(typed.Code(), err, fmt.Sprintf("price item %d", index)).WithDetails(details)
}
