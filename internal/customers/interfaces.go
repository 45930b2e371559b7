package customers

import (
	"context"

	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for customers and their terms.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	FindAdjustments(ctx context.Context, customerID uuid.UUID) (*models.CustomerAdjustments, error)
	SaveAdjustments(ctx context.Context, adjustments *models.CustomerAdjustments) error
	UpdateDoorDefaults(ctx context.Context, customerID uuid.UUID, overrides types.DoorOverrides) error
	UpdateDrawerDefaults(ctx context.Context, customerID uuid.UUID, overrides types.DrawerOverrides) error
}
