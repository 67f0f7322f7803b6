package usecase

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/pkg/money"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutConfig — номер получателя заказов и правила доставки.
type CheckoutConfig struct {
	Phone            string
	ShippingBase     float64
	FreeShippingFrom float64
}

// Quote — расчёт заказа.
type Quote struct {
	Items        []domain.CartItem `json:"items"`
	Subtotal     float64           `json:"subtotal"`
	Shipping     float64           `json:"shipping"`
	Total        float64           `json:"total"`
	FreeShipping bool              `json:"free_shipping"`
}

// Order — готовое сообщение и ссылка для передачи заказа в мессенджер.
type Order struct {
	Quote   Quote  `json:"quote"`
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Checkout — оформление заказа без сервера: только расчёт и ссылка wa.me.
type Checkout struct {
	cfg   CheckoutConfig
	money *money.Formatter
}

func NewCheckout(cfg CheckoutConfig, formatter *money.Formatter) *Checkout {
	return &Checkout{cfg: cfg, money: formatter}
}

// Quote — доставка бесплатна, начиная с порога FreeShippingFrom.
func (c *Checkout) Quote(items []domain.CartItem) Quote {
	subtotal := domain.Summarize(items).Subtotal
	q := Quote{Items: items, Subtotal: subtotal, Shipping: c.cfg.ShippingBase}
	if subtotal >= c.cfg.FreeShippingFrom {
		q.Shipping = 0
		q.FreeShipping = true
	}
	q.Total = q.Subtotal + q.Shipping
	return q
}

// Message — текст заказа.
func (c *Checkout) Message(q Quote) string {
	var b strings.Builder
	b.WriteString("Hola 👋 Quiero hacer este pedido:\n\n")
	for _, it := range q.Items {
		fmt.Fprintf(&b, "• %s x%d = %s\n", it.Name, it.Quantity, c.money.Format(it.LineTotal()))
	}
	shipping := "Gratis"
	if !q.FreeShipping {
		shipping = c.money.Format(q.Shipping)
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\nEnvío: %s\nTotal: %s\n\n",
		c.money.Format(q.Subtotal), shipping, c.money.Format(q.Total))
	b.WriteString("¿Me confirmas disponibilidad y tiempo de entrega?")
	return b.String()
}

// Link — https://wa.me/<phone>?text=<сообщение>; пробелы кодируются как %20.
func (c *Checkout) Link(message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + c.cfg.Phone + "?text=" + text
}

// Place — расчёт, сообщение и ссылка по позициям корзины.
func (c *Checkout) Place(items []domain.CartItem) (Order, error) {
	if len(items) == 0 {
		return Order{}, ErrEmptyCart
	}
	q := c.Quote(items)
	msg := c.Message(q)
	return Order{Quote: q, Message: msg, Link: c.Link(msg)}, nil
}
