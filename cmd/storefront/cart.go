package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Gunvolt24/storefront/internal/domain"
)

var flagQty float64

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the local cart",
}

var cartListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show cart lines and subtotal",
	Args:  cobra.NoArgs,
	RunE:  runCartList,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a catalog product to the cart",
	Long: `Add looks the product up in the catalog and adds it to the cart.
Adding a product already in the cart increases its quantity.

Example:
  storefront cart add sk-01
  storefront cart add sk-01 --qty 3`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartSetCmd = &cobra.Command{
	Use:   "set <product-id> <quantity>",
	Short: "Set the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartSet,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <product-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	Args:  cobra.NoArgs,
	RunE:  runCartClear,
}

func init() {
	cartAddCmd.Flags().Float64Var(&flagQty, "qty", 1, "quantity to add")

	cartCmd.AddCommand(cartListCmd)
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartClearCmd)
}

func runCartList(cmd *cobra.Command, _ []string) error {
	return printCart(cmd.OutOrStdout(), current)
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	s := current
	catalog, err := s.catalog()
	if err != nil {
		return err
	}
	p, err := catalog.Product(s.ctx, args[0])
	if err != nil {
		return fmt.Errorf("lookup product: %w", err)
	}
	if p == nil {
		return userErrorf("product %q not found", args[0])
	}
	if err := s.cart.Add(s.ctx, p.Ref(), flagQty); err != nil {
		return err
	}
	s.log.Infof(s.ctx, "cart add id=%s qty=%v", p.ID, flagQty)
	return printCart(cmd.OutOrStdout(), s)
}

func runCartSet(cmd *cobra.Command, args []string) error {
	s := current
	if !inCart(s.cart.Items(), args[0]) {
		return userErrorf("product %q is not in the cart", args[0])
	}
	if err := s.cart.SetQuantity(s.ctx, args[0], domain.ParseQuantity(args[1])); err != nil {
		return err
	}
	return printCart(cmd.OutOrStdout(), s)
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	s := current
	if err := s.cart.Remove(s.ctx, args[0]); err != nil {
		return err
	}
	return printCart(cmd.OutOrStdout(), s)
}

func runCartClear(cmd *cobra.Command, _ []string) error {
	s := current
	if err := s.cart.Clear(s.ctx); err != nil {
		return err
	}
	return printCart(cmd.OutOrStdout(), s)
}

func inCart(items []domain.CartItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

type cartView struct {
	Items   []domain.CartItem  `json:"items"`
	Summary domain.CartSummary `json:"summary"`
}

func printCart(w io.Writer, s *session) error {
	items := s.cart.Items()
	if flagJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cartView{Items: items, Summary: domain.Summarize(items)})
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(w, "El carrito está vacío")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPRODUCTO\tCANT.\tTOTAL")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", it.ID, it.Name, it.Quantity, s.money.Format(it.LineTotal()))
	}
	sum := domain.Summarize(items)
	fmt.Fprintf(tw, "\t\t%d\t%s\n", sum.Count, s.money.Format(sum.Subtotal))
	return tw.Flush()
}
