package main

import (
	"github.com/doorsanddrawers/quote-backend/internal/customers"
	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	resetOverride bool
	adjustments   customers.AdjustmentsInput
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Show and edit per-customer door and drawer defaults",
}

var defaultsShowCmd = &cobra.Command{
	Use:   "show [customer-id] [door|drawer]",
	Short: "Print the effective defaults for an item family",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseCustomerID(args[0])
		if err != nil {
			return err
		}
		family, err := parseFamily(args[1])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		fields, err := container.Defaults.Effective(ctx, customerID, family)
		if err != nil {
			return err
		}
		return printJSON(fields)
	},
}

var defaultsSetCmd = &cobra.Command{
	Use:   "set [customer-id] [door|drawer] [field] [value]",
	Short: "Override one default field, or reset it with --reset",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseCustomerID(args[0])
		if err != nil {
			return err
		}
		family, err := parseFamily(args[1])
		if err != nil {
			return err
		}
		var value any
		switch {
		case resetOverride:
		case len(args) == 4:
			value = args[3]
		default:
			return pkgerrors.New(pkgerrors.CodeValidation, "value required unless --reset is given")
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		if err := container.Defaults.SetOverride(ctx, customerID, family, args[2], value); err != nil {
			return err
		}
		fields, err := container.Defaults.Effective(ctx, customerID, family)
		if err != nil {
			return err
		}
		return printJSON(fields)
	},
}

var adjustmentsCmd = &cobra.Command{
	Use:   "adjustments [customer-id]",
	Short: "Set a customer's discount, surcharge and shipping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseCustomerID(args[0])
		if err != nil {
			return err
		}
		input := adjustments
		input.CustomerID = customerID
		ctx, cancel := opContext(cmd)
		defer cancel()
		saved, err := container.Customers.SaveAdjustments(ctx, input)
		if err != nil {
			return err
		}
		return printJSON(saved)
	},
}

func init() {
	defaultsSetCmd.Flags().BoolVar(&resetOverride, "reset", false, "clear the override and fall back to the global default")
	defaultsCmd.AddCommand(defaultsShowCmd)
	defaultsCmd.AddCommand(defaultsSetCmd)

	f := adjustmentsCmd.Flags()
	f.StringVar(&adjustments.DiscountType, "discount-type", string(enums.AdjustmentTypePercent), "PERCENT or FIXED")
	f.StringVar(&adjustments.DiscountValue, "discount", "0", "discount value")
	f.StringVar(&adjustments.SurchargeType, "surcharge-type", string(enums.AdjustmentTypePercent), "PERCENT or FIXED")
	f.StringVar(&adjustments.SurchargeValue, "surcharge", "0", "surcharge value")
	f.StringVar(&adjustments.ShippingType, "shipping-type", string(enums.AdjustmentTypeFixed), "PERCENT or FIXED")
	f.StringVar(&adjustments.ShippingValue, "shipping", "0", "shipping value")
}

func parseFamily(raw string) (enums.ItemType, error) {
	family := enums.ItemType(raw)
	if !family.HasOverrides() {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "item family must be door or drawer, got %q", raw)
	}
	return family, nil
}
