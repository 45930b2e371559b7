package cart

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/doorsanddrawers/quote-backend/internal/catalog"
	"github.com/doorsanddrawers/quote-backend/internal/customers"
	"github.com/doorsanddrawers/quote-backend/internal/defaults"
	"github.com/doorsanddrawers/quote-backend/internal/orders"
	"github.com/doorsanddrawers/quote-backend/internal/pricing"
	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/db/dbtest"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/logger"
	"github.com/doorsanddrawers/quote-backend/pkg/metrics"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const session = "session-1"

var orderDate = time.Date(2025, 4, 10, 15, 0, 0, 0, time.UTC)

type cartFixture struct {
	conn     *gorm.DB
	kv       *memoryKV
	store    *RedisStore
	svc      Service
	orders   orders.Repository
	customer *models.Customer

	oak         *models.WoodStock
	shaker      *models.Style
	drawerWood  *models.DrawerWoodStock
	drawerFloor *models.DrawerBottomSize
}

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func boolPtr(v bool) *bool { return &v }

func newCartFixture(t *testing.T, doors types.DoorOverrides, withAdjustments bool) cartFixture {
	t.Helper()
	ctx := context.Background()
	conn := dbtest.Open(t)

	f := cartFixture{conn: conn, kv: newMemoryKV()}
	f.oak = &models.WoodStock{Name: "Oak", RaisedPanelPrice: dec("7.50"), FlatPanelPrice: dec("6.00")}
	require.NoError(t, conn.Create(f.oak).Error)
	panel := &models.PanelType{Name: "Raised Panel"}
	require.NoError(t, conn.Create(panel).Error)
	f.shaker = &models.Style{Name: "Shaker", PanelTypeID: panel.ID, Price: dec("10.00")}
	require.NoError(t, conn.Create(f.shaker).Error)
	f.drawerWood = &models.DrawerWoodStock{Name: "Maple", Price: dec("5.00")}
	require.NoError(t, conn.Create(f.drawerWood).Error)
	f.drawerFloor = &models.DrawerBottomSize{Name: "1/4 Ply", Thickness: dec("0.25"), Price: dec("3.00")}
	require.NoError(t, conn.Create(f.drawerFloor).Error)
	require.NoError(t, conn.Create(&models.DrawerSettings{UndermountCharge: dec("2.50"), FinishCharge: dec("11.00")}).Error)

	customerRepo := customers.NewRepository(conn)
	customer, err := customerRepo.Create(ctx, &models.Customer{
		CompanyName:    "Acme Cabinets",
		BillingAddress: types.BillingAddress{Name: "Acme", Line1: "1 Main St", City: "Dayton", State: "OH", PostalCode: "45402"},
		DoorDefaults:   doors,
	})
	require.NoError(t, err)
	if withAdjustments {
		require.NoError(t, customerRepo.SaveAdjustments(ctx, &models.CustomerAdjustments{
			CustomerID:    customer.ID,
			DiscountType:  enums.AdjustmentTypePercent,
			DiscountValue: dec("15"),
			SurchargeType: enums.AdjustmentTypeFixed,
			ShippingType:  enums.AdjustmentTypeFixed,
			ShippingValue: dec("20"),
		}))
	}
	f.customer = customer

	store, err := NewRedisStore(f.kv, time.Hour)
	require.NoError(t, err)
	f.store = store
	f.orders = orders.NewRepository(conn)
	svc, err := NewService(Deps{
		Store:     store,
		Customers: customerRepo,
		Catalog:   catalog.NewRepository(conn),
		Globals:   defaults.NewGlobalsRepository(conn),
		Orders:    f.orders,
		Tx:        db.NewFromGorm(conn),
		Metrics:   metrics.NewFinalizeMetrics(prometheus.NewRegistry()),
		Logger:    logger.New(logger.Options{Output: io.Discard}),
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f cartFixture) door(qty int) pricing.LineItemSpec {
	return pricing.LineItemSpec{
		Type:     enums.ItemTypeDoor,
		Quantity: qty,
		Door: &pricing.DoorSpec{
			WoodStockID: f.oak.ID,
			StyleID:     f.shaker.ID,
			Width:       "15.5",
			Height:      "24",
		},
	}
}

func (f cartFixture) drawer(qty int) pricing.LineItemSpec {
	return pricing.LineItemSpec{
		Type:     enums.ItemTypeDrawer,
		Quantity: qty,
		Drawer: &pricing.DrawerSpec{
			WoodStockID: f.drawerWood.ID,
			BottomID:    f.drawerFloor.ID,
			Width:       "18",
			Height:      "4",
			Depth:       "21",
			Undermount:  boolPtr(true),
		},
	}
}

func other(qty int, price string) pricing.LineItemSpec {
	return pricing.LineItemSpec{
		Type:         enums.ItemTypeOther,
		Quantity:     qty,
		PricePerUnit: price,
		Other:        &pricing.OtherSpec{Name: "Hinge set"},
	}
}

func (f cartFixture) header() Header {
	return Header{
		CustomerID: f.customer.ID,
		IsQuote:    true,
		OrderDate:  orderDate,
		TaxAmount:  dec("5.25"),
	}
}

func (f cartFixture) seedCart(t *testing.T, items ...pricing.LineItemSpec) {
	t.Helper()
	id := f.customer.ID
	require.NoError(t, f.store.Save(context.Background(), &Cart{SessionID: session, CustomerID: &id, Items: items}))
}

func (f cartFixture) countRows(t *testing.T) int64 {
	t.Helper()
	var total int64
	for _, model := range []any{&models.Order{}, &models.DoorLineItem{}, &models.DrawerLineItem{}, &models.GenericLineItem{}} {
		var n int64
		require.NoError(t, f.conn.Model(model).Count(&n).Error)
		total += n
	}
	return total
}

func TestFinalizeEmptyCartPersistsNothing(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	ctx := context.Background()
	_, err := f.svc.SelectCustomer(ctx, session, f.customer.ID)
	require.NoError(t, err)

	_, err = f.svc.Finalize(ctx, session, f.header())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, int64(0), f.countRows(t))
}

func TestFinalizeCustomerMismatch(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	f.seedCart(t, other(1, "4.00"))

	h := f.header()
	h.CustomerID = uuid.New()
	_, err := f.svc.Finalize(context.Background(), session, h)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeCustomerMismatch))
	assert.False(t, pkgerrors.MetadataFor(pkgerrors.CodeOf(err)).Retryable)
	assert.Equal(t, int64(0), f.countRows(t))
}

func TestFinalizeWithoutSelectedCustomerIsMismatch(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	_, err := f.svc.Add(context.Background(), session, other(1, "4.00"))
	require.NoError(t, err)

	_, err = f.svc.Finalize(context.Background(), session, f.header())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeCustomerMismatch))
}

func TestFinalizeUnknownWoodStockRollsBack(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	bad := f.door(1)
	bad.Door.WoodStockID = 999
	f.seedCart(t, f.door(1), bad)

	_, err := f.svc.Finalize(context.Background(), session, f.header())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
	assert.Equal(t, int64(0), f.countRows(t), "no order or line item rows survive")

	c, err := f.svc.Get(context.Background(), session)
	require.NoError(t, err)
	assert.Len(t, c.Items, 2, "cart is left intact for retry")
}

func TestFinalizeRejectsZeroCalculatedPrice(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	require.NoError(t, f.conn.Model(f.oak).Updates(map[string]any{
		"raised_panel_price": decimal.Zero,
		"flat_panel_price":   decimal.Zero,
	}).Error)
	require.NoError(t, f.conn.Model(f.shaker).Update("price", decimal.Zero).Error)
	f.seedCart(t, other(1, "4.00"), f.door(2))

	_, err := f.svc.Finalize(context.Background(), session, f.header())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), err.Error())
	assert.Contains(t, err.Error(), "price item 1")
	details, ok := pkgerrors.As(err).Details().(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "1", details["item_index"])
	assert.Equal(t, "0.00", details["unit_price"])
	assert.Equal(t, int64(0), f.countRows(t), "no zero priced line item is stored")

	c, err := f.svc.Get(context.Background(), session)
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
}

func TestFinalizeMissingAdjustments(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, false)
	f.seedCart(t, other(1, "4.00"))

	_, err := f.svc.Finalize(context.Background(), session, f.header())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeMissingDefaults))
	assert.Equal(t, int64(0), f.countRows(t))
}

func TestFinalizeReportsEveryInvalidItem(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	zeroQty := other(0, "4.00")
	unnamed := other(1, "4.00")
	unnamed.Other = &pricing.OtherSpec{}
	f.seedCart(t, zeroQty, f.door(1), unnamed)

	_, err := f.svc.Finalize(context.Background(), session, f.header())
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Contains(t, details, "items[0]")
	assert.Contains(t, details, "items[2]")
	assert.NotContains(t, details, "items[1]")
	assert.Contains(t, typed.Message(), "2 cart item(s) invalid")
	assert.Equal(t, int64(0), f.countRows(t))
}

func TestFinalizeRejectsNegativeTax(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	f.seedCart(t, other(1, "4.00"))
	h := f.header()
	h.TaxAmount = dec("-1")

	_, err := f.svc.Finalize(context.Background(), session, h)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	assert.Equal(t, int64(0), f.countRows(t))
}

func TestFinalizeComputesTotalsAndClearsCart(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	ctx := context.Background()
	_, err := f.svc.SelectCustomer(ctx, session, f.customer.ID)
	require.NoError(t, err)

	preview, err := f.svc.Add(ctx, session, f.door(3))
	require.NoError(t, err)
	assert.Equal(t, "25.00", preview.Quote.UnitPrice.StringFixed(2))
	assert.Equal(t, "75.00", preview.Quote.Total.StringFixed(2))
	_, err = f.svc.Add(ctx, session, f.drawer(2))
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, session, other(1, "4.00"))
	require.NoError(t, err)

	order, err := f.svc.Finalize(ctx, session, f.header())
	require.NoError(t, err)
	require.NotNil(t, order.OrderNumber)
	assert.True(t, strings.HasPrefix(*order.OrderNumber, "QTE-20250410-"), *order.OrderNumber)
	assert.Equal(t, "15.00", order.DiscountAmount.StringFixed(2))
	assert.Equal(t, "0.00", order.SurchargeAmount.StringFixed(2))
	assert.Equal(t, "20.00", order.ShippingAmount.StringFixed(2))
	assert.Equal(t, "105.00", order.Subtotal.StringFixed(2))
	assert.Equal(t, "110.25", order.Total.StringFixed(2))

	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.DoorItems, 1)
	require.Len(t, stored.DrawerItems, 1)
	require.Len(t, stored.GenericItems, 1)
	door := stored.DoorItems[0]
	assert.Equal(t, 0, door.Position)
	assert.Equal(t, 3, door.Quantity)
	assert.True(t, door.PricePerUnit.Equal(dec("25")))
	assert.True(t, door.RailTop.Equal(dec("2.5")), "blank rails take the global default")
	assert.True(t, door.InteriorRailSize.Equal(dec("1")))
	assert.Equal(t, 1, stored.DrawerItems[0].Position)
	assert.True(t, stored.DrawerItems[0].Undermount)
	assert.True(t, stored.DrawerItems[0].PricePerUnit.Equal(dec("10.5")))
	assert.Equal(t, 2, stored.GenericItems[0].Position)
	assert.True(t, stored.Total.Equal(dec("110.25")))
	assert.Equal(t, "Acme", stored.BillingAddress.Name)

	c, err := f.svc.Get(ctx, session)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "cart cleared after commit")
}

func TestFinalizeAppliesCustomerDefaults(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture(t, types.DoorOverrides{}, true)
	require.NoError(t, customers.NewRepository(f.conn).UpdateDoorDefaults(ctx, f.customer.ID, types.DoorOverrides{
		WoodStock: types.Set(f.oak.ID),
		Style:     types.Set(f.shaker.ID),
		RailTop:   types.Set("3"),
		SandEdge:  types.Set(true),
	}))
	_, err := f.svc.SelectCustomer(ctx, session, f.customer.ID)
	require.NoError(t, err)

	spec := pricing.LineItemSpec{
		Type:     enums.ItemTypeDoor,
		Quantity: 1,
		Door:     &pricing.DoorSpec{Width: "12", Height: "30", RailLeft: "2.75"},
	}
	preview, err := f.svc.Add(ctx, session, spec)
	require.NoError(t, err)
	assert.Equal(t, f.oak.ID, preview.Spec.Door.WoodStockID)
	assert.Equal(t, "25.00", preview.Quote.UnitPrice.StringFixed(2))

	order, err := f.svc.Finalize(ctx, session, f.header())
	require.NoError(t, err)
	stored, err := f.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.DoorItems, 1)
	door := stored.DoorItems[0]
	assert.Equal(t, f.oak.ID, door.WoodStockID)
	assert.Equal(t, f.shaker.ID, door.StyleID)
	assert.True(t, door.RailTop.Equal(dec("3")))
	assert.True(t, door.RailLeft.Equal(dec("2.75")), "explicit dimensions win over defaults")
	assert.True(t, door.RailBottom.Equal(dec("2.5")))
	assert.True(t, door.SandEdge)
}

func TestFinalizeCustomPriceIsPersisted(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	custom := f.door(2)
	custom.CustomPrice = true
	custom.PricePerUnit = "40.125"
	fallback := f.door(1)
	fallback.CustomPrice = true
	fallback.PricePerUnit = "0"
	f.seedCart(t, custom, fallback)

	order, err := f.svc.Finalize(context.Background(), session, f.header())
	require.NoError(t, err)
	require.Len(t, order.DoorItems, 2)
	assert.True(t, order.DoorItems[0].CustomPrice)
	assert.Equal(t, "40.13", order.DoorItems[0].PricePerUnit.StringFixed(2))
	assert.False(t, order.DoorItems[1].CustomPrice)
	assert.Equal(t, "25.00", order.DoorItems[1].PricePerUnit.StringFixed(2))
}

func TestFinalizeSucceedsWhenCartClearFails(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	f.seedCart(t, other(1, "4.00"))
	f.kv.failDel = true

	h := f.header()
	h.IsQuote = false
	order, err := f.svc.Finalize(context.Background(), session, h)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(*order.OrderNumber, "ORD-"))
	assert.Equal(t, int64(2), f.countRows(t))
}

func TestAddRejectsInvalidEntry(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	ctx := context.Background()

	_, err := f.svc.Add(ctx, session, pricing.LineItemSpec{Type: enums.ItemTypeDoor, Quantity: 1, Drawer: f.drawer(1).Drawer})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	bad := f.door(1)
	bad.Door.StyleID = 404
	_, err = f.svc.Add(ctx, session, bad)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))

	c, err := f.svc.Get(ctx, session)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestRemoveOutOfRangeIsNoOp(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	ctx := context.Background()
	_, err := f.svc.Add(ctx, session, other(1, "4.00"))
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, session, other(2, "6.00"))
	require.NoError(t, err)

	removed, err := f.svc.Remove(ctx, session, 5)
	require.NoError(t, err)
	assert.False(t, removed)
	removed, err = f.svc.Remove(ctx, session, -1)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = f.svc.Remove(ctx, session, 0)
	require.NoError(t, err)
	assert.True(t, removed)
	c, err := f.svc.Get(ctx, session)
	require.NoError(t, err)
	require.Len(t, c.Items, 1)
	assert.Equal(t, "6.00", c.Items[0].PricePerUnit)
}

func TestSelectCustomerSnapshotsBilling(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	c, err := f.svc.SelectCustomer(context.Background(), session, f.customer.ID)
	require.NoError(t, err)
	require.NotNil(t, c.CustomerID)
	assert.Equal(t, f.customer.ID, *c.CustomerID)
	require.NotNil(t, c.BillingAddress)
	assert.True(t, c.BillingAddress.Matches(f.customer.BillingAddress))

	_, err = f.svc.SelectCustomer(context.Background(), session, uuid.New())
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeNotFound))
}

func TestServiceRequiresSessionID(t *testing.T) {
	f := newCartFixture(t, types.DoorOverrides{}, true)
	_, err := f.svc.Get(context.Background(), " ")
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}
