package rest

import (
	"errors"
	"net/http"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/httpx"
	"github.com/gin-gonic/gin"
)

type categoryDTO struct {
	Slug        domain.Category `json:"slug"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Groups      []groupDTO      `json:"groups"`
}

type groupDTO struct {
	Name     string   `json:"name"`
	Subitems []string `json:"subitems"`
}

func (h *Handler) listCategories(c *gin.Context) {
	defs := domain.Categories()
	out := make([]categoryDTO, 0, len(defs))
	for _, d := range defs {
		dto := categoryDTO{Slug: d.Slug, Title: d.Title, Description: d.Description}
		for _, g := range d.GroupNames() {
			subs, _ := d.Subitems(g)
			dto.Groups = append(dto.Groups, groupDTO{Name: g, Subitems: subs})
		}
		out = append(out, dto)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) getHome(c *gin.Context) {
	feed, err := h.catalog.Home(c.Request.Context())
	if err != nil {
		h.internalError(c, "Home", err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// getCatalog — состояние движка восстанавливается из запроса:
// /api/catalog/:category?group=&subitem=&page=. Страница за пределами ограничивается.
func (h *Handler) getCatalog(c *gin.Context) {
	facet := domain.FacetState{
		Category:      domain.Category(c.Param("category")),
		ActiveGroup:   httpx.QueryOr(c, "group", domain.All),
		ActiveSubitem: httpx.QueryOr(c, "subitem", domain.All),
	}

	engine := usecase.NewCatalogEngine(h.catalog, h.log, h.pageSize)
	view := engine.Restore(c.Request.Context(), facet, httpx.ParsePage(c))

	switch {
	case view.Err == nil:
		c.JSON(http.StatusOK, view)
	case errors.Is(view.Err, domain.ErrUnknownCategory):
		c.JSON(http.StatusNotFound, gin.H{"error": view.Err.Error()})
	case errors.Is(view.Err, domain.ErrUnknownGroup), errors.Is(view.Err, domain.ErrUnknownSubitem):
		c.JSON(http.StatusBadRequest, gin.H{"error": view.Err.Error()})
	default:
		// выборка не удалась: движок уже залогировал ошибку
		c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
	}
}

type productResponse struct {
	Product         *domain.Product  `json:"product"`
	DiscountPercent int              `json:"discount_percent"`
	Related         []domain.Product `json:"related"`
}

func (h *Handler) getProduct(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "empty id"})
		return
	}

	p, err := h.catalog.Product(ctx, id)
	if err != nil {
		h.internalError(c, "Product", err)
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	related, err := h.catalog.Related(ctx, p)
	if err != nil {
		// карточка важнее блока похожих
		h.log.Warnf(ctx, "Related failed id=%s err=%v", id, err)
		related = nil
	}
	if related == nil {
		related = []domain.Product{}
	}
	c.JSON(http.StatusOK, productResponse{Product: p, DiscountPercent: p.DiscountPercent(), Related: related})
}
