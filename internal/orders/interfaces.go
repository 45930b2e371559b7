package orders

import (
	"context"

	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for orders and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	AssignNumber(ctx context.Context, order *models.Order) error
	CreateDoorItem(ctx context.Context, item *models.DoorLineItem) error
	CreateDrawerItem(ctx context.Context, item *models.DrawerLineItem) error
	CreateGenericItem(ctx context.Context, item *models.GenericLineItem) error
	SaveTotals(ctx context.Context, order *models.Order) error
	MarkConfirmed(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, kind enums.OrderKind) ([]models.Order, error)
}
