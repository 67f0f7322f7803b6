package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/storefront/internal/usecase"
)

var flagClearAfter bool

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Build the WhatsApp order link for the current cart",
	Long: `Checkout prints the order summary, the message text and a wa.me link
that opens the chat with the message prefilled. Nothing is sent from here.`,
	Args: cobra.NoArgs,
	RunE: runCheckout,
}

func init() {
	checkoutCmd.Flags().BoolVar(&flagClearAfter, "clear", false, "empty the cart after building the link")
}

func runCheckout(cmd *cobra.Command, _ []string) error {
	s := current
	order, err := s.checkout.Place(s.cart.Items())
	if errors.Is(err, usecase.ErrEmptyCart) {
		return userError{err: err}
	}
	if err != nil {
		return err
	}
	s.log.Infof(s.ctx, "checkout lines=%d total=%.0f", len(order.Quote.Items), order.Quote.Total)

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(order); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, order.Message)
		fmt.Fprintln(out)
		fmt.Fprintln(out, order.Link)
	}

	if flagClearAfter {
		return s.cart.Clear(s.ctx)
	}
	return nil
}
