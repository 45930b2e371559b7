package catalog

import (
	"context"

	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository is the read-only by-id lookup over priced reference entities.
// Every lookup returns a NOT_FOUND error when the id does not exist.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	WoodStock(ctx context.Context, id uint) (*models.WoodStock, error)
	EdgeProfile(ctx context.Context, id uint) (*models.EdgeProfile, error)
	PanelRise(ctx context.Context, id uint) (*models.PanelRise, error)
	Style(ctx context.Context, id uint) (*models.Style, error)
	DrawerWoodStock(ctx context.Context, id uint) (*models.DrawerWoodStock, error)
	DrawerEdgeType(ctx context.Context, id uint) (*models.DrawerEdgeType, error)
	DrawerBottomSize(ctx context.Context, id uint) (*models.DrawerBottomSize, error)
}
