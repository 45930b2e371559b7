package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/doorsanddrawers/quote-backend/internal/cart"
	"github.com/doorsanddrawers/quote-backend/internal/pricing"
	pkgerrors "github.com/doorsanddrawers/quote-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	finalizeConfirmed bool
	finalizeDate      string
	finalizeNotes     string
	finalizeTax       string
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Inspect and edit the session cart",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if sessionID == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "--session is required")
		}
		return rootCmd.PersistentPreRunE(cmd, args)
	},
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the cart",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		c, err := container.Cart.Get(ctx, sessionID)
		if err != nil {
			return err
		}
		return printJSON(c)
	},
}

var cartSelectCmd = &cobra.Command{
	Use:   "select [customer-id]",
	Short: "Select the customer the cart is priced for",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		customerID, err := parseCustomerID(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		c, err := container.Cart.SelectCustomer(ctx, sessionID, customerID)
		if err != nil {
			return err
		}
		return printJSON(c)
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add [item.json|-]",
	Short: "Price a line item and append it to the cart",
	Long: `Reads one line item as JSON from a file, or from stdin when the
argument is "-", and prints the priced preview.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, err := readItem(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		preview, err := container.Cart.Add(ctx, sessionID, spec)
		if err != nil {
			return err
		}
		return printJSON(preview)
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove [index]",
	Short: "Remove the item at a zero based index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid index")
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		removed, err := container.Cart.Remove(ctx, sessionID, index)
		if err != nil {
			return err
		}
		return printJSON(map[string]bool{"removed": removed})
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Drop every item and the selected customer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := opContext(cmd)
		defer cancel()
		return container.Cart.Clear(ctx, sessionID)
	},
}

var cartFinalizeCmd = &cobra.Command{
	Use:   "finalize [customer-id]",
	Short: "Persist the cart as a quote or order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		header, err := finalizeHeader(args[0])
		if err != nil {
			return err
		}
		ctx, cancel := opContext(cmd)
		defer cancel()
		order, err := container.Cart.Finalize(ctx, sessionID, header)
		if err != nil {
			return err
		}
		return printJSON(order)
	},
}

func init() {
	cartFinalizeCmd.Flags().BoolVar(&finalizeConfirmed, "order", false, "create a confirmed order instead of a quote")
	cartFinalizeCmd.Flags().StringVar(&finalizeDate, "date", "", "order date (YYYY-MM-DD), defaults to today")
	cartFinalizeCmd.Flags().StringVar(&finalizeNotes, "notes", "", "order notes")
	cartFinalizeCmd.Flags().StringVar(&finalizeTax, "tax", "0", "tax amount")

	cartCmd.AddCommand(cartShowCmd)
	cartCmd.AddCommand(cartSelectCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
	cartCmd.AddCommand(cartFinalizeCmd)
}

func readItem(path string) (pricing.LineItemSpec, error) {
	var spec pricing.LineItemSpec
	in := os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return spec, fmt.Errorf("open item file: %w", err)
		}
		defer f.Close()
		in = f
	}
	dec := json.NewDecoder(in)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return spec, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid line item json")
	}
	return spec, nil
}

func finalizeHeader(rawCustomer string) (cart.Header, error) {
	customerID, err := parseCustomerID(rawCustomer)
	if err != nil {
		return cart.Header{}, err
	}
	tax, err := decimal.NewFromString(finalizeTax)
	if err != nil {
		return cart.Header{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid tax amount")
	}
	header := cart.Header{
		CustomerID: customerID,
		IsQuote:    !finalizeConfirmed,
		Notes:      finalizeNotes,
		TaxAmount:  tax,
	}
	if finalizeDate != "" {
		date, err := time.Parse(time.DateOnly, finalizeDate)
		if err != nil {
			return cart.Header{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order date")
		}
		header.OrderDate = date
	}
	return header, nil
}
