package usecase

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// DefaultPageSize — размер страницы каталога.
const DefaultPageSize = 12

// CatalogView — снимок состояния движка для отрисовки.
type CatalogView struct {
	Facet       domain.FacetState   `json:"facet"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Groups      []string            `json:"groups"`
	Subitems    []string            `json:"subitems"`
	Paging      domain.PageState    `json:"paging"`
	Items       []domain.Product    `json:"items"`
	PageNumbers []int               `json:"page_numbers"`
	Breadcrumbs []domain.Breadcrumb `json:"breadcrumbs"`

	// Err — ошибка последней выборки или недопустимого перехода; состояние при этом согласовано.
	Err error `json:"-"`
	// Stale — результат этого вызова отброшен, так как его обогнал более новый переход.
	Stale bool `json:"-"`
}

// CatalogEngine — конечный автомат фасетов и пагинации каталога.
// Каждый переход синхронно выполняет выборку и возвращает итоговый вид.
// Выборки идут без удержания мьютекса; устаревшие результаты отбрасываются по поколению.
type CatalogEngine struct {
	exec     ports.QueryExecutor
	log      ports.Logger
	pageSize int

	mu         sync.Mutex
	def        domain.CategoryDef
	facet      domain.FacetState
	page       int
	totalCount int
	items      []domain.Product
	lastErr    error
	gen        uint64
}

func NewCatalogEngine(exec ports.QueryExecutor, log ports.Logger, pageSize int) *CatalogEngine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &CatalogEngine{
		exec:     exec,
		log:      log,
		pageSize: pageSize,
		page:     1,
		items:    []domain.Product{},
	}
}

// SelectCategory — новая категория: группа и подгруппа сбрасываются в All, страница в 1.
func (e *CatalogEngine) SelectCategory(ctx context.Context, c domain.Category) CatalogView {
	def, ok := domain.LookupCategory(c)
	if !ok {
		return e.reject(fmt.Errorf("%w: %q", domain.ErrUnknownCategory, c))
	}
	e.mu.Lock()
	e.def = def
	e.facet = domain.NewFacetState(c)
	e.page = 1
	return e.loadLocked(ctx)
}

// SelectGroup — группа категории или All; подгруппа сбрасывается в All.
func (e *CatalogEngine) SelectGroup(ctx context.Context, group string) CatalogView {
	e.mu.Lock()
	if e.def.Slug == "" {
		e.mu.Unlock()
		return e.reject(errNoCategory)
	}
	if group != domain.All && !e.def.HasGroup(group) {
		e.mu.Unlock()
		return e.reject(fmt.Errorf("%w: %q", domain.ErrUnknownGroup, group))
	}
	e.facet.ActiveGroup = group
	e.facet.ActiveSubitem = domain.All
	e.page = 1
	return e.loadLocked(ctx)
}

// SelectSubitem — подгруппа. Пока группа All, значение хранится, но в фильтр не попадает.
func (e *CatalogEngine) SelectSubitem(ctx context.Context, subitem string) CatalogView {
	e.mu.Lock()
	if e.def.Slug == "" {
		e.mu.Unlock()
		return e.reject(errNoCategory)
	}
	if subitem != domain.All && e.facet.GroupApplied() {
		subs, _ := e.def.Subitems(e.facet.ActiveGroup)
		if !slices.Contains(subs, subitem) {
			e.mu.Unlock()
			return e.reject(fmt.Errorf("%w: %q", domain.ErrUnknownSubitem, subitem))
		}
	}
	e.facet.ActiveSubitem = subitem
	e.page = 1
	return e.loadLocked(ctx)
}

// PrevPage — на первой странице ничего не делает.
func (e *CatalogEngine) PrevPage(ctx context.Context) CatalogView {
	e.mu.Lock()
	if e.def.Slug == "" || e.page <= 1 {
		v := e.viewLocked()
		e.mu.Unlock()
		return v
	}
	e.page--
	return e.loadLocked(ctx)
}

// NextPage — на последней странице ничего не делает.
func (e *CatalogEngine) NextPage(ctx context.Context) CatalogView {
	e.mu.Lock()
	if e.def.Slug == "" || e.page >= e.totalPagesLocked() {
		v := e.viewLocked()
		e.mu.Unlock()
		return v
	}
	e.page++
	return e.loadLocked(ctx)
}

// GoToPage — переход на страницу p, ограниченную диапазоном [1, totalPages].
func (e *CatalogEngine) GoToPage(ctx context.Context, p int) CatalogView {
	e.mu.Lock()
	if e.def.Slug == "" {
		e.mu.Unlock()
		return e.reject(errNoCategory)
	}
	e.page = clamp(p, 1, e.totalPagesLocked())
	return e.loadLocked(ctx)
}

// HandleBreadcrumb — клик по крошке. home=true означает уход со страницы каталога.
func (e *CatalogEngine) HandleBreadcrumb(ctx context.Context, action domain.CrumbAction) (view CatalogView, home bool) {
	switch action {
	case domain.CrumbHome:
		return e.View(), true
	case domain.CrumbCategory:
		return e.SelectGroup(ctx, domain.All), false
	case domain.CrumbGroup:
		return e.SelectSubitem(ctx, domain.All), false
	default:
		// крошка подгруппы — текущая позиция
		return e.View(), false
	}
}

// Restore — восстановить состояние целиком (для вызывающих без собственного состояния, например HTTP).
// Страница за пределами диапазона ограничивается после первой выборки.
func (e *CatalogEngine) Restore(ctx context.Context, facet domain.FacetState, page int) CatalogView {
	def, ok := domain.LookupCategory(facet.Category)
	if !ok {
		return e.reject(fmt.Errorf("%w: %q", domain.ErrUnknownCategory, facet.Category))
	}
	if facet.ActiveGroup == "" {
		facet.ActiveGroup = domain.All
	}
	if facet.ActiveSubitem == "" {
		facet.ActiveSubitem = domain.All
	}
	if facet.ActiveGroup != domain.All && !def.HasGroup(facet.ActiveGroup) {
		return e.reject(fmt.Errorf("%w: %q", domain.ErrUnknownGroup, facet.ActiveGroup))
	}
	if facet.SubitemApplied() {
		subs, _ := def.Subitems(facet.ActiveGroup)
		if !slices.Contains(subs, facet.ActiveSubitem) {
			return e.reject(fmt.Errorf("%w: %q", domain.ErrUnknownSubitem, facet.ActiveSubitem))
		}
	}

	e.mu.Lock()
	e.def = def
	e.facet = facet
	e.page = max(page, 1)
	return e.loadLocked(ctx)
}

// Reload — повторить текущую выборку (после инвалидации кэша).
func (e *CatalogEngine) Reload(ctx context.Context) CatalogView {
	e.mu.Lock()
	if e.def.Slug == "" {
		e.mu.Unlock()
		return e.reject(errNoCategory)
	}
	return e.loadLocked(ctx)
}

// View — текущее состояние без выборки.
func (e *CatalogEngine) View() CatalogView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

var errNoCategory = fmt.Errorf("%w: no category selected", domain.ErrUnknownCategory)

// loadLocked — выборка текущей страницы. Вызывается под мьютексом и отпускает его.
// Поколение фиксируется вместе с переходом: если за время выборки
// состояние сменилось, результат отбрасывается.
func (e *CatalogEngine) loadLocked(ctx context.Context) CatalogView {
	e.gen++
	gen := e.gen
	facet, page := e.facet, e.page
	e.mu.Unlock()

	retried := false
	for {
		res, err := e.exec.Fetch(ctx, domain.CacheKeyCatalogPage(facet, page, e.pageSize), e.query(facet, page))

		e.mu.Lock()
		if e.gen != gen {
			v := e.viewLocked()
			v.Stale = true
			e.mu.Unlock()
			return v
		}

		if err != nil {
			e.log.Errorf(ctx, "catalog page load failed category=%s group=%s subitem=%s page=%d err=%v",
				facet.Category, facet.ActiveGroup, facet.ActiveSubitem, page, err)
			e.items = []domain.Product{}
			e.totalCount = 0
			e.lastErr = err
			e.page = clamp(e.page, 1, e.totalPagesLocked())
			v := e.viewLocked()
			e.mu.Unlock()
			return v
		}

		// Страница вне диапазона: один повтор с последней страницей,
		// до его ответа состояние движка не меняется.
		if totalPages := domain.TotalPages(res.Total, e.pageSize); page > totalPages && !retried {
			retried = true
			page = totalPages
			e.mu.Unlock()
			continue
		}

		e.items = res.Items
		if e.items == nil {
			e.items = []domain.Product{}
		}
		e.totalCount = res.Total
		e.lastErr = nil
		e.page = min(page, e.totalPagesLocked())

		v := e.viewLocked()
		e.mu.Unlock()
		return v
	}
}

func (e *CatalogEngine) query(f domain.FacetState, page int) domain.Query {
	return domain.Query{
		Filters: f.Filters(),
		OrderBy: domain.NewestFirst,
		Offset:  (page - 1) * e.pageSize,
		Limit:   e.pageSize,
	}
}

func (e *CatalogEngine) totalPagesLocked() int {
	return domain.TotalPages(e.totalCount, e.pageSize)
}

// reject — недопустимый переход: состояние не меняется, выборки нет.
func (e *CatalogEngine) reject(err error) CatalogView {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.viewLocked()
	v.Err = err
	return v
}

func (e *CatalogEngine) viewLocked() CatalogView {
	totalPages := e.totalPagesLocked()
	v := CatalogView{
		Facet:       e.facet,
		Title:       e.def.Title,
		Description: e.def.Description,
		Groups:      e.def.GroupNames(),
		Paging: domain.PageState{
			Page:       e.page,
			PageSize:   e.pageSize,
			TotalCount: e.totalCount,
			TotalPages: totalPages,
		},
		Items:       slices.Clone(e.items),
		PageNumbers: domain.PageNumbers(totalPages),
		Err:         e.lastErr,
	}
	if e.facet.GroupApplied() {
		v.Subitems, _ = e.def.Subitems(e.facet.ActiveGroup)
	}
	if e.def.Slug != "" {
		v.Breadcrumbs = domain.Breadcrumbs(e.facet, e.def.Title)
	}
	return v
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
