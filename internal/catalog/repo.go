package catalog

import (
	"context"

	"github.com/doorsanddrawers/quote-backend/internal/repo"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	base repo.Base
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.WithTx(tx)}
}

func (r *repository) WoodStock(ctx context.Context, id uint) (*models.WoodStock, error) {
	return repo.FindByID[models.WoodStock](ctx, r.base, "wood stock", id)
}

func (r *repository) EdgeProfile(ctx context.Context, id uint) (*models.EdgeProfile, error) {
	return repo.FindByID[models.EdgeProfile](ctx, r.base, "edge profile", id)
}

func (r *repository) PanelRise(ctx context.Context, id uint) (*models.PanelRise, error) {
	return repo.FindByID[models.PanelRise](ctx, r.base, "panel rise", id)
}

// Style loads the style together with its panel type.
func (r *repository) Style(ctx context.Context, id uint) (*models.Style, error) {
	return repo.FindByID[models.Style](ctx, r.base, "style", id, "PanelType")
}

func (r *repository) DrawerWoodStock(ctx context.Context, id uint) (*models.DrawerWoodStock, error) {
	return repo.FindByID[models.DrawerWoodStock](ctx, r.base, "drawer wood stock", id)
}

func (r *repository) DrawerEdgeType(ctx context.Context, id uint) (*models.DrawerEdgeType, error) {
	return repo.FindByID[models.DrawerEdgeType](ctx, r.base, "drawer edge type", id)
}

func (r *repository) DrawerBottomSize(ctx context.Context, id uint) (*models.DrawerBottomSize, error) {
	return repo.FindByID[models.DrawerBottomSize](ctx, r.base, "drawer bottom size", id)
}
