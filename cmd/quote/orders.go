package main

import (
	"strconv"

	"github.com/doorsanddrawers/quote-backend/pkg/enums"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var listKind string

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Read and maintain persisted quotes and orders",
}

var orderGetCmd = &cobra.Command{
	Use:   "get [order-id]",
	Short: "Print an order with its line items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseOrderID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		order, err := container.Orders.Get(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(order)
	},
}

var orderListCmd = &cobra.Command{
	Use:   "list [customer-id]",
	Short: "List a customer's quotes and orders",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseCustomerID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		orders, err := container.Orders.ListByCustomer(ctx, customerID, enums.OrderKind(listKind))
		if err != nil {
			return err
		}
		return printJSON(orders)
	},
}

var orderRecalcCmd = &cobra.Command{
	Use:   "recalc [order-id]",
	Short: "Recompute totals from stored items and current adjustments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseOrderID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		order, err := container.Orders.Recalculate(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(order)
	},
}

var orderTaxCmd = &cobra.Command{
	Use:   "tax [order-id] [amount]",
	Short: "Set the tax amount and recompute totals",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseOrderID(args[0])
		if err != nil {
			return err
		}
		tax, err := decimal.NewFromString(args[1])
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tax amount")
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		order, err := container.Orders.SetTaxAmount(ctx, id, tax)
		if err != nil {
			return err
		}
		return printJSON(order)
	},
}

var orderConvertCmd = &cobra.Command{
	Use:   "convert [order-id]",
	Short: "Turn a quote into a confirmed order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseOrderID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		order, err := container.Orders.ConvertToOrder(ctx, id)
		if err != nil {
			return err
		}
		return printJSON(order)
	},
}

func init() {
	orderListCmd.Flags().StringVar(&listKind, "kind", "", "filter by kind: quote|confirmed")

	orderCmd.AddCommand(orderGetCmd)
	orderCmd.AddCommand(orderListCmd)
	orderCmd.AddCommand(orderRecalcCmd)
	orderCmd.AddCommand(orderTaxCmd)
	orderCmd.AddCommand(orderConvertCmd)
}

func parseOrderID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid order id %q", raw)
	}
	return uint(id), nil
}
