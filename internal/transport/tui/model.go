// Package tui — терминальная витрина: каталог с фасетами и пагинацией, корзина и оформление заказа.
package tui

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
	"github.com/Gunvolt24/storefront/internal/usecase"
	"github.com/Gunvolt24/storefront/pkg/money"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type pane int

const (
	paneCategories pane = iota
	paneGroups
	paneSubitems
	paneProducts
	paneCart
	paneCount
)

// allLabel — подпись пункта "без фильтра" в списках групп и подгрупп.
const allLabel = "Todos"

// Deps — зависимости витрины.
type Deps struct {
	Catalog  ports.CatalogReadService
	Cart     *usecase.CartStore
	Checkout *usecase.Checkout
	Money    *money.Formatter
	Log      ports.Logger
	PageSize int
}

// Model — состояние экрана. Движок и корзина общие для всех копий Model.
type Model struct {
	ctx    context.Context
	deps   Deps
	engine *usecase.CatalogEngine
	keys   keyMap
	styles styles
	help   help.Model
	qty    textinput.Model

	focus   pane
	cursor  [paneCount]int
	view    usecase.CatalogView
	home    domain.HomeFeed
	order   *usecase.Order
	editing bool
	loading bool
	status  string
	width   int
	height  int
}

type (
	viewMsg struct{ view usecase.CatalogView }
	homeMsg struct {
		feed domain.HomeFeed
		err  error
	}
	cartMsg struct {
		status string
		err    error
	}
)

func New(ctx context.Context, d Deps) Model {
	ti := textinput.New()
	ti.Placeholder = "cantidad"
	ti.CharLimit = 6
	ti.Width = 8

	return Model{
		ctx:    ctx,
		deps:   d,
		engine: usecase.NewCatalogEngine(d.Catalog, d.Log, d.PageSize),
		keys:   defaultKeys(),
		styles: defaultStyles(),
		help:   help.New(),
		qty:    ti,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadHome()
}

func (m Model) loadHome() tea.Cmd {
	ctx, catalog := m.ctx, m.deps.Catalog
	return func() tea.Msg {
		feed, err := catalog.Home(ctx)
		return homeMsg{feed: feed, err: err}
	}
}

// engineCmd — переход движка вне цикла отрисовки; движок сам отбрасывает устаревшие ответы.
func (m Model) engineCmd(fn func(context.Context) usecase.CatalogView) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg { return viewMsg{view: fn(ctx)} }
}

func (m Model) cartCmd(status string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg { return cartMsg{status: status, err: fn(ctx)} }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case homeMsg:
		if msg.err != nil {
			m.status = "no se pudo cargar la portada: " + msg.err.Error()
			return m, nil
		}
		m.home = msg.feed
		return m, nil

	case viewMsg:
		if msg.view.Stale {
			return m, nil
		}
		m.loading = false
		m.view = msg.view
		m.status = ""
		if msg.view.Err != nil {
			m.status = msg.view.Err.Error()
		}
		m.clampCursors()
		return m, nil

	case cartMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = "carrito: " + msg.err.Error()
		}
		m.clampCursors()
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.qty.Blur()
		return m, nil
	case tea.KeyEnter:
		m.editing = false
		m.qty.Blur()
		item, ok := m.selectedCartItem()
		if !ok {
			return m, nil
		}
		qty := domain.ParseQuantity(m.qty.Value())
		return m, m.cartCmd("cantidad actualizada", func(ctx context.Context) error {
			return m.deps.Cart.SetQuantity(ctx, item.ID, qty)
		})
	}
	var cmd tea.Cmd
	m.qty, cmd = m.qty.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.NextPane):
		m.focus = (m.focus + 1) % paneCount
	case key.Matches(msg, m.keys.PrevPane):
		m.focus = (m.focus + paneCount - 1) % paneCount
	case key.Matches(msg, m.keys.Up):
		if m.cursor[m.focus] > 0 {
			m.cursor[m.focus]--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor[m.focus] < m.paneLen(m.focus)-1 {
			m.cursor[m.focus]++
		}
	case key.Matches(msg, m.keys.Select):
		return m.activate()
	case key.Matches(msg, m.keys.PrevPage):
		return m, m.engineCmd(m.engine.PrevPage)
	case key.Matches(msg, m.keys.NextPage):
		return m, m.engineCmd(m.engine.NextPage)
	case key.Matches(msg, m.keys.Reload):
		if m.view.Facet.Category == "" {
			return m, m.loadHome()
		}
		return m, m.engineCmd(m.engine.Reload)
	case key.Matches(msg, m.keys.Back):
		return m.breadcrumbUp()
	case key.Matches(msg, m.keys.Checkout):
		return m.checkout()
	case key.Matches(msg, m.keys.ClearCart):
		m.order = nil
		return m, m.cartCmd("carrito vacío", m.deps.Cart.Clear)
	}

	if m.focus == paneCart {
		return m.updateCartKeys(msg)
	}
	return m, nil
}

func (m Model) updateCartKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.selectedCartItem()
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Inc):
		return m, m.cartCmd("", func(ctx context.Context) error {
			return m.deps.Cart.SetQuantity(ctx, item.ID, float64(item.Quantity+1))
		})
	case key.Matches(msg, m.keys.Dec):
		return m, m.cartCmd("", func(ctx context.Context) error {
			return m.deps.Cart.SetQuantity(ctx, item.ID, float64(item.Quantity-1))
		})
	case key.Matches(msg, m.keys.Remove):
		return m, m.cartCmd(item.Name+" eliminado", func(ctx context.Context) error {
			return m.deps.Cart.Remove(ctx, item.ID)
		})
	case key.Matches(msg, m.keys.EditQty):
		m.editing = true
		m.qty.SetValue(strconv.Itoa(item.Quantity))
		m.qty.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// activate — enter в текущей панели.
func (m Model) activate() (tea.Model, tea.Cmd) {
	i := m.cursor[m.focus]
	switch m.focus {
	case paneCategories:
		defs := domain.Categories()
		if i >= len(defs) {
			return m, nil
		}
		slug := defs[i].Slug
		m.loading = true
		m.cursor[paneGroups], m.cursor[paneSubitems], m.cursor[paneProducts] = 0, 0, 0
		return m, m.engineCmd(func(ctx context.Context) usecase.CatalogView {
			return m.engine.SelectCategory(ctx, slug)
		})
	case paneGroups:
		group := m.optionAt(m.view.Groups, i)
		if m.view.Facet.Category == "" {
			return m, nil
		}
		m.loading = true
		m.cursor[paneSubitems], m.cursor[paneProducts] = 0, 0
		return m, m.engineCmd(func(ctx context.Context) usecase.CatalogView {
			return m.engine.SelectGroup(ctx, group)
		})
	case paneSubitems:
		if !m.view.Facet.GroupApplied() {
			return m, nil
		}
		sub := m.optionAt(m.view.Subitems, i)
		m.loading = true
		m.cursor[paneProducts] = 0
		return m, m.engineCmd(func(ctx context.Context) usecase.CatalogView {
			return m.engine.SelectSubitem(ctx, sub)
		})
	case paneProducts:
		items := m.products()
		if i >= len(items) {
			return m, nil
		}
		p := items[i]
		m.order = nil
		return m, m.cartCmd(p.Name+" agregado al carrito", func(ctx context.Context) error {
			return m.deps.Cart.Add(ctx, p.Ref(), 1)
		})
	}
	return m, nil
}

// breadcrumbUp — переход по предпоследней крошке (на уровень вверх).
func (m Model) breadcrumbUp() (tea.Model, tea.Cmd) {
	crumbs := m.view.Breadcrumbs
	if len(crumbs) < 2 {
		return m, nil
	}
	action := crumbs[len(crumbs)-2].Action
	if action == domain.CrumbHome {
		m.view = usecase.CatalogView{}
		m.focus = paneCategories
		return m, m.loadHome()
	}
	return m, m.engineCmd(func(ctx context.Context) usecase.CatalogView {
		v, _ := m.engine.HandleBreadcrumb(ctx, action)
		return v
	})
}

func (m Model) checkout() (tea.Model, tea.Cmd) {
	order, err := m.deps.Checkout.Place(m.deps.Cart.Items())
	if err != nil {
		m.order = nil
		m.status = err.Error()
		return m, nil
	}
	m.order = &order
	m.status = fmt.Sprintf("pedido listo: %s", m.deps.Money.Format(order.Quote.Total))
	return m, nil
}

// optionAt — i-й пункт списка с ведущим "All".
func (m Model) optionAt(options []string, i int) string {
	if i <= 0 || i > len(options) {
		return domain.All
	}
	return options[i-1]
}

// products — товары страницы каталога или новинки портады, если категория не выбрана.
func (m Model) products() []domain.Product {
	if m.view.Facet.Category == "" {
		return m.home.Latest
	}
	return m.view.Items
}

func (m Model) selectedCartItem() (domain.CartItem, bool) {
	items := m.deps.Cart.Items()
	i := m.cursor[paneCart]
	if i < 0 || i >= len(items) {
		return domain.CartItem{}, false
	}
	return items[i], true
}

func (m Model) paneLen(p pane) int {
	switch p {
	case paneCategories:
		return len(domain.Categories())
	case paneGroups:
		return len(m.view.Groups) + 1
	case paneSubitems:
		return len(m.view.Subitems) + 1
	case paneProducts:
		return len(m.products())
	case paneCart:
		return len(m.deps.Cart.Items())
	}
	return 0
}

func (m *Model) clampCursors() {
	for p := pane(0); p < paneCount; p++ {
		n := m.paneLen(p)
		if m.cursor[p] >= n {
			m.cursor[p] = max(n-1, 0)
		}
	}
}
