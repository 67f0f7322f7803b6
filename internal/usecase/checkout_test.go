package usecase_test

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/money"
)

var checkoutCfg = usecase.CheckoutConfig{Phone: "573202507109", ShippingBase: 12000, FreeShippingFrom: 150000}

func TestCheckout_Quote(t *testing.T) {
	co := usecase.NewCheckout(checkoutCfg, money.NewFormatter(money.DefaultLocale))

	q := co.Quote([]domain.CartItem{{ID: "a", Name: "Serum", UnitPrice: 40000, Quantity: 2}})
	if q.Subtotal != 80000 || q.Shipping != 12000 || q.Total != 92000 || q.FreeShipping {
		t.Fatalf("below threshold: %+v", q)
	}

	q = co.Quote([]domain.CartItem{{ID: "a", Name: "Serum", UnitPrice: 75000, Quantity: 2}})
	if q.Shipping != 0 || q.Total != 150000 || !q.FreeShipping {
		t.Fatalf("threshold is inclusive: %+v", q)
	}
}

func TestCheckout_Place(t *testing.T) {
	m := money.NewFormatter(money.DefaultLocale)
	co := usecase.NewCheckout(checkoutCfg, m)

	order, err := co.Place([]domain.CartItem{
		{ID: "a", Name: "Serum", UnitPrice: 40000, Quantity: 2},
		{ID: "b", Name: "Tónico", UnitPrice: 15000, Quantity: 1},
	})
	if err != nil {
		t.Fatalf("place: %v", err)
	}

	wantLines := []string{
		"• Serum x2 = " + m.Format(80000),
		"• Tónico x1 = " + m.Format(15000),
		"Subtotal: " + m.Format(95000),
		"Envío: " + m.Format(12000),
		"Total: " + m.Format(107000),
	}
	for _, line := range wantLines {
		if !strings.Contains(order.Message, line) {
			t.Fatalf("message lacks %q:\n%s", line, order.Message)
		}
	}

	if !strings.HasPrefix(order.Link, "https://wa.me/573202507109?text=") {
		t.Fatalf("unexpected link: %s", order.Link)
	}
	if strings.Contains(order.Link, "+") || !strings.Contains(order.Link, "%20") {
		t.Fatalf("spaces must be encoded as %%20: %s", order.Link)
	}
	u, err := url.Parse(order.Link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	if got := u.Query().Get("text"); got != order.Message {
		t.Fatalf("link must round-trip the message:\n%q\n%q", got, order.Message)
	}
}

func TestCheckout_FreeShippingMessage(t *testing.T) {
	co := usecase.NewCheckout(checkoutCfg, money.NewFormatter(money.DefaultLocale))
	order, err := co.Place([]domain.CartItem{{ID: "a", Name: "Kit", UnitPrice: 200000, Quantity: 1}})
	if err != nil {
		t.Fatalf("place: %v", err)
	}
	if !strings.Contains(order.Message, "Envío: Gratis") {
		t.Fatalf("free shipping must read Gratis:\n%s", order.Message)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	co := usecase.NewCheckout(checkoutCfg, money.NewFormatter(money.DefaultLocale))
	if _, err := co.Place(nil); !errors.Is(err, usecase.ErrEmptyCart) {
		t.Fatalf("want ErrEmptyCart, got %v", err)
	}
}
