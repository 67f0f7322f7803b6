package domain

import (
	"math"
	"strconv"
	"strings"
)

// maxQuantity — верхняя граница количества после приведения (защита от переполнения int).
const maxQuantity = math.MaxInt32

// CartItem — позиция корзины. В корзине не больше одной позиции на ID.
type CartItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// LineTotal — стоимость позиции.
func (i CartItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// ProductRef — данные товара, достаточные для позиции корзины.
type ProductRef struct {
	ID        string
	Name      string
	UnitPrice float64
	Image     string
}

// CartSummary — производные агрегаты корзины.
type CartSummary struct {
	Count    int     `json:"count"`
	Subtotal float64 `json:"subtotal"`
}

// Summarize — пересчёт агрегатов по списку позиций.
func Summarize(items []CartItem) CartSummary {
	var s CartSummary
	for _, it := range items {
		s.Count += it.Quantity
		s.Subtotal += it.LineTotal()
	}
	return s
}

// CoerceAddQuantity — max(1, floor(q or 1)): 0, NaN и бесконечности дают 1.
func CoerceAddQuantity(q float64) int {
	if q == 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return 1
	}
	f := math.Floor(q)
	if f < 1 {
		return 1
	}
	if f > maxQuantity {
		return maxQuantity
	}
	return int(f)
}

// CoerceSetQuantity — floor(q or 0): NaN и бесконечности дают 0 (позиция удаляется).
func CoerceSetQuantity(q float64) int {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0
	}
	f := math.Floor(q)
	if f <= 0 {
		return 0
	}
	if f > maxQuantity {
		return maxQuantity
	}
	return int(f)
}

// ParseQuantity — разбор количества из пользовательского ввода; мусор даёт NaN.
func ParseQuantity(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
