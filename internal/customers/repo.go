package customers

import (
	"context"
	"fmt"

	"github.com/doorsanddrawers/quote-backend/internal/repo"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/types"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	base repo.Base
}

// NewRepository builds a customers repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{base: r.base.WithTx(tx)}
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) (*models.Customer, error) {
	if customer == nil {
		return nil, fmt.Errorf("customer is required")
	}
	if err := r.base.DB(ctx).Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return repo.FindByID[models.Customer](ctx, r.base, "customer", id)
}

func (r *repository) FindAdjustments(ctx context.Context, customerID uuid.UUID) (*models.CustomerAdjustments, error) {
	var adj models.CustomerAdjustments
	err := r.base.DB(ctx).Where("customer_id = ?", customerID).Limit(1).Find(&adj).Error
	if err != nil {
		return nil, err
	}
	if adj.CustomerID == uuid.Nil {
		return nil, pkgerrors.Newf(pkgerrors.CodeMissingDefaults, "no adjustments configured for customer %s", customerID)
	}
	return &adj, nil
}

func (r *repository) SaveAdjustments(ctx context.Context, adjustments *models.CustomerAdjustments) error {
	if adjustments == nil {
		return fmt.Errorf("adjustments are required")
	}
	return r.base.DB(ctx).Save(adjustments).Error
}

func (r *repository) UpdateDoorDefaults(ctx context.Context, customerID uuid.UUID, overrides types.DoorOverrides) error {
	return r.updateColumn(ctx, customerID, "door_defaults", overrides)
}

func (r *repository) UpdateDrawerDefaults(ctx context.Context, customerID uuid.UUID, overrides types.DrawerOverrides) error {
	return r.updateColumn(ctx, customerID, "drawer_defaults", overrides)
}

func (r *repository) updateColumn(ctx context.Context, customerID uuid.UUID, column string, value any) error {
	res := r.base.DB(ctx).Model(&models.Customer{}).Where("id = ?", customerID).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "customer %s not found", customerID)
	}
	return nil
}
