package domain

import "time"

// Product — строка удалённой таблицы products.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Category    Category  `json:"category"`
	Group       string    `json:"group"`
	Subgroup    string    `json:"subgroup"`
	Image       string    `json:"image,omitempty"`
	IsNew       bool      `json:"is_new"`
	OnSale      bool      `json:"on_sale"`
	PriceBefore *float64  `json:"price_before,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// DiscountPercent — скидка в процентах (0, если цены "до" нет или она не выше текущей).
func (p *Product) DiscountPercent() int {
	if p.PriceBefore == nil {
		return 0
	}
	before := *p.PriceBefore
	if before <= 0 || p.Price >= before {
		return 0
	}
	return int((before-p.Price)/before*100 + 0.5)
}

// Ref — ссылка на товар для добавления в корзину.
func (p *Product) Ref() ProductRef {
	return ProductRef{ID: p.ID, Name: p.Name, UnitPrice: p.Price, Image: p.Image}
}

// ResultPage — страница результатов выборки и точное число строк под фильтром.
type ResultPage struct {
	Items []Product `json:"items"`
	Total int       `json:"total"`
}

// Clone — глубокая копия страницы.
func (r ResultPage) Clone() ResultPage {
	out := ResultPage{Total: r.Total}
	if r.Items != nil {
		out.Items = make([]Product, len(r.Items))
		for i := range r.Items {
			out.Items[i] = r.Items[i].clone()
		}
	}
	return out
}

func (p Product) clone() Product {
	if p.PriceBefore != nil {
		v := *p.PriceBefore
		p.PriceBefore = &v
	}
	return p
}

// HomeFeed — витрина главной страницы: новинки и товары со скидкой.
type HomeFeed struct {
	Latest []Product `json:"latest"`
	OnSale []Product `json:"on_sale"`
}
