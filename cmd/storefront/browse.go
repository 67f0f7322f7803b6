package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Gunvolt24/storefront/internal/transport/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive catalog",
	Long: `Browse opens the full-screen catalog: categories, groups and subcategories
on the left, the current page of products in the middle and the cart on the right.

Press ? inside the browser for the key bindings.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, _ []string) error {
	s := current
	catalog, err := s.catalog()
	if err != nil {
		return err
	}

	model := tui.New(s.ctx, tui.Deps{
		Catalog:  catalog,
		Cart:     s.cart,
		Checkout: s.checkout,
		Money:    s.money,
		Log:      s.log,
		PageSize: s.cfg.Catalog.PageSize,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(s.ctx))
	if _, err := p.Run(); err != nil {
		return err
	}

	sum := s.cart.Summary()
	cmd.Printf("Carrito: %d productos, %s\n", sum.Count, s.money.Format(sum.Subtotal))
	return nil
}
