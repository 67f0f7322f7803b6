package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/gin-gonic/gin"
)

// maxCheckoutLines — предел позиций в одном запросе расчёта.
const maxCheckoutLines = 100

type checkoutLine struct {
	ID       string  `json:"id" binding:"required"`
	Quantity float64 `json:"quantity"`
}

type checkoutRequest struct {
	Items []checkoutLine `json:"items" binding:"dive"`
}

// postCheckout — расчёт заказа и ссылка wa.me по позициям клиента.
// Имена и цены берутся из каталога; повторы id складываются, количество приводится как в корзине.
func (h *Handler) postCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body: " + err.Error()})
		return
	}
	if len(req.Items) > maxCheckoutLines {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many items"})
		return
	}

	var (
		items []domain.CartItem
		index = make(map[string]int, len(req.Items))
	)
	for _, line := range req.Items {
		qty := domain.CoerceSetQuantity(line.Quantity)
		if qty == 0 {
			continue
		}
		if i, ok := index[line.ID]; ok {
			items[i].Quantity += qty
			continue
		}

		p, err := h.catalog.Product(ctx, line.ID)
		if err != nil {
			h.internalError(c, "Product", err)
			return
		}
		if p == nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown product", "id": line.ID})
			return
		}
		index[line.ID] = len(items)
		items = append(items, domain.CartItem{ID: p.ID, Name: p.Name, UnitPrice: p.Price, Image: p.Image, Quantity: qty})
	}

	order, err := h.checkout.Place(items)
	if errors.Is(err, usecase.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.internalError(c, "Checkout", err)
		return
	}
	c.JSON(http.StatusOK, order)
}
