package orders

import (
	"context"
	"fmt"

	"github.com/doorsanddrawers/quote-backend/internal/repo"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	base repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.WithTx(tx)}
}

// Create inserts the order header only; line items are created separately.
func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order == nil {
		return nil, fmt.Errorf("order is required")
	}
	if err := r.base.DB(ctx).Omit("DoorItems", "DrawerItems", "GenericItems").Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// AssignNumber derives the public number from the generated key.
func (r *repository) AssignNumber(ctx context.Context, order *models.Order) error {
	if order == nil || order.ID == 0 {
		return fmt.Errorf("persisted order is required")
	}
	number := models.NumberFor(order.Kind(), order.OrderDate, order.ID)
	if err := r.base.DB(ctx).Model(order).Update("order_number", number).Error; err != nil {
		return err
	}
	order.OrderNumber = &number
	return nil
}

func (r *repository) CreateDoorItem(ctx context.Context, item *models.DoorLineItem) error {
	return r.base.DB(ctx).Create(item).Error
}

func (r *repository) CreateDrawerItem(ctx context.Context, item *models.DrawerLineItem) error {
	return r.base.DB(ctx).Create(item).Error
}

func (r *repository) CreateGenericItem(ctx context.Context, item *models.GenericLineItem) error {
	return r.base.DB(ctx).Create(item).Error
}

// SaveTotals writes the computed amounts without touching line items.
func (r *repository) SaveTotals(ctx context.Context, order *models.Order) error {
	return r.base.DB(ctx).Model(order).Updates(map[string]any{
		"discount_amount":  order.DiscountAmount,
		"surcharge_amount": order.SurchargeAmount,
		"shipping_amount":  order.ShippingAmount,
		"tax_amount":       order.TaxAmount,
		"subtotal":         order.Subtotal,
		"total":            order.Total,
	}).Error
}

// MarkConfirmed turns a quote into a confirmed order. The order number is kept.
func (r *repository) MarkConfirmed(ctx context.Context, order *models.Order) error {
	if err := r.base.DB(ctx).Model(order).Update("is_quote", false).Error; err != nil {
		return err
	}
	order.IsQuote = false
	return nil
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	return repo.FindByID[models.Order](ctx, r.base, "order", id, itemPreloads()...)
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID, kind enums.OrderKind) ([]models.Order, error) {
	var orders []models.Order
	q := r.base.DB(ctx).Where("customer_id = ?", customerID)
	switch kind {
	case enums.OrderKindQuote:
		q = q.Where("is_quote = ?", true)
	case enums.OrderKindConfirmed:
		q = q.Where("is_quote = ?", false)
	}
	for _, p := range itemPreloads() {
		q = q.Preload(p)
	}
	if err := q.Order("order_date DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func itemPreloads() []string {
	return []string{"DoorItems", "DrawerItems", "GenericItems"}
}
