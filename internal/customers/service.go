package customers

import (
	"context"
	"fmt"

	"github.com/doorsanddrawers/quote-backend/pkg/db"
	"github.com/doorsanddrawers/quote-backend/pkg/db/models"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/doorsanddrawers/quote-backend/pkg/validate"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service exposes the customer terms used when quoting.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	Adjustments(ctx context.Context, customerID uuid.UUID) (*models.CustomerAdjustments, error)
	SaveAdjustments(ctx context.Context, input AdjustmentsInput) (*models.CustomerAdjustments, error)
}

// AdjustmentsInput is the raw discount, surcharge and shipping configuration.
type AdjustmentsInput struct {
	CustomerID     uuid.UUID `json:"customer_id" validate:"required"`
	DiscountType   string    `json:"discount_type" validate:"required,oneof=PERCENT FIXED"`
	DiscountValue  string    `json:"discount_value" validate:"decimal_gte0"`
	SurchargeType  string    `json:"surcharge_type" validate:"required,oneof=PERCENT FIXED"`
	SurchargeValue string    `json:"surcharge_value" validate:"decimal_gte0"`
	ShippingType   string    `json:"shipping_type" validate:"required,oneof=PERCENT FIXED"`
	ShippingValue  string    `json:"shipping_value" validate:"decimal_gte0"`
}

type service struct {
	repo Repository
}

// NewService builds a customers service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, db.Classify(err, "load customer")
	}
	return customer, nil
}

func (s *service) Adjustments(ctx context.Context, customerID uuid.UUID) (*models.CustomerAdjustments, error) {
	adj, err := s.repo.FindAdjustments(ctx, customerID)
	if err != nil {
		return nil, db.Classify(err, "load customer adjustments")
	}
	return adj, nil
}

func (s *service) SaveAdjustments(ctx context.Context, input AdjustmentsInput) (*models.CustomerAdjustments, error) {
	adj, err := input.ToModel()
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, input.CustomerID); err != nil {
		return nil, db.Classify(err, "load customer")
	}
	if err := s.repo.SaveAdjustments(ctx, adj); err != nil {
		return nil, db.Classify(err, "save customer adjustments")
	}
	return adj, nil
}

// ToModel validates the input and converts it into the persisted form.
// Percentages above 100 are rejected per field.
func (in AdjustmentsInput) ToModel() (*models.CustomerAdjustments, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	adj := &models.CustomerAdjustments{CustomerID: in.CustomerID}
	details := map[string]string{}
	var err error
	adj.DiscountType, adj.DiscountValue, err = parseAdjustment(in.DiscountType, in.DiscountValue)
	if err != nil {
		details["discount_value"] = err.Error()
	}
	adj.SurchargeType, adj.SurchargeValue, err = parseAdjustment(in.SurchargeType, in.SurchargeValue)
	if err != nil {
		details["surcharge_value"] = err.Error()
	}
	adj.ShippingType, adj.ShippingValue, err = parseAdjustment(in.ShippingType, in.ShippingValue)
	if err != nil {
		details["shipping_value"] = err.Error()
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "percentage cannot exceed 100").WithDetails(details)
	}
	return adj, nil
}

var maxPercent = decimal.NewFromInt(100)

func parseAdjustment(rawType, rawValue string) (enums.AdjustmentType, decimal.Decimal, error) {
	typ, err := enums.ParseAdjustmentType(rawType)
	if err != nil {
		return "", decimal.Zero, err
	}
	value, err := decimal.NewFromString(rawValue)
	if err != nil {
		return "", decimal.Zero, err
	}
	if typ == enums.AdjustmentTypePercent && value.GreaterThan(maxPercent) {
		return "", decimal.Zero, fmt.Errorf("percentage cannot exceed 100")
	}
	return typ, value, nil
}
