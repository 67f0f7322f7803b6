package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Tienda"))
	b.WriteString("  ")
	b.WriteString(m.renderCrumbs())
	b.WriteString("\n\n")

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPane(paneCategories, "Categorías", m.categoryLines()),
		m.renderPane(paneGroups, "Grupos", withAll(m.view.Groups)),
		m.renderPane(paneSubitems, "Subcategorías", withAll(m.view.Subitems)),
	)
	center := m.renderPane(paneProducts, m.productsTitle(), m.productLines())
	right := m.renderPane(paneCart, m.cartTitle(), m.cartLines())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, center, right))
	b.WriteString("\n")

	if m.view.Facet.Category != "" {
		b.WriteString(m.renderPager())
		b.WriteString("\n")
	}
	if m.editing {
		b.WriteString("Cantidad: ")
		b.WriteString(m.qty.View())
		b.WriteString("\n")
	}
	if m.order != nil {
		b.WriteString(m.renderOrder())
	}
	if m.status != "" {
		st := m.styles.Subtle
		if m.view.Err != nil {
			st = m.styles.Error
		}
		b.WriteString(st.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m Model) renderPane(p pane, title string, lines []string) string {
	st := m.styles.Pane
	if m.focus == p {
		st = m.styles.FocusPane
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	for i, line := range lines {
		b.WriteByte('\n')
		if m.focus == p && i == m.cursor[p] {
			b.WriteString(m.styles.Selected.Render("> " + line))
			continue
		}
		b.WriteString("  " + line)
	}
	if len(lines) == 0 {
		b.WriteString("\n" + m.styles.Subtle.Render("(vacío)"))
	}
	return st.Render(b.String())
}

func (m Model) renderCrumbs() string {
	crumbs := m.view.Breadcrumbs
	if len(crumbs) == 0 {
		return m.styles.Subtle.Render(domain.HomeLabel)
	}
	parts := make([]string, len(crumbs))
	for i, c := range crumbs {
		if i == len(crumbs)-1 {
			parts[i] = m.styles.Active.Render(c.Label)
			continue
		}
		parts[i] = m.styles.Subtle.Render(c.Label)
	}
	return strings.Join(parts, " / ")
}

func (m Model) renderPager() string {
	p := m.view.Paging
	nums := make([]string, len(m.view.PageNumbers))
	for i, n := range m.view.PageNumbers {
		s := strconv.Itoa(n)
		if n == p.Page {
			s = m.styles.Active.Render("[" + s + "]")
		}
		nums[i] = s
	}
	status := fmt.Sprintf("Página %d de %d · %d productos", p.Page, p.TotalPages, p.TotalCount)
	if m.loading {
		status += " · cargando…"
	}
	return strings.Join(nums, " ") + "  " + m.styles.Subtle.Render(status)
}

func (m Model) renderOrder() string {
	q := m.order.Quote
	var b strings.Builder
	fmt.Fprintf(&b, "Subtotal: %s\n", m.deps.Money.Format(q.Subtotal))
	if q.FreeShipping {
		b.WriteString("Envío: " + m.styles.Price.Render("gratis") + "\n")
	} else {
		fmt.Fprintf(&b, "Envío: %s\n", m.deps.Money.Format(q.Shipping))
	}
	fmt.Fprintf(&b, "Total: %s\n", m.styles.Price.Render(m.deps.Money.Format(q.Total)))
	b.WriteString("Enviar pedido: " + m.order.Link + "\n")
	return b.String()
}

func (m Model) categoryLines() []string {
	defs := domain.Categories()
	out := make([]string, len(defs))
	for i, d := range defs {
		out[i] = d.Title
		if d.Slug == m.view.Facet.Category {
			out[i] = m.styles.Active.Render(d.Title)
		}
	}
	return out
}

func (m Model) productsTitle() string {
	if m.view.Facet.Category == "" {
		return "Novedades"
	}
	return m.view.Title
}

func (m Model) productLines() []string {
	items := m.products()
	out := make([]string, len(items))
	for i := range items {
		p := &items[i]
		line := p.Name + "  " + m.styles.Price.Render(m.deps.Money.Format(p.Price))
		if pct := p.DiscountPercent(); pct > 0 {
			line += " " + m.styles.Sale.Render(m.deps.Money.Format(*p.PriceBefore))
			line += fmt.Sprintf(" -%d%%", pct)
		}
		out[i] = line
	}
	return out
}

func (m Model) cartTitle() string {
	s := m.deps.Cart.Summary()
	return fmt.Sprintf("Carrito (%d) %s", s.Count, m.deps.Money.Format(s.Subtotal))
}

func (m Model) cartLines() []string {
	items := m.deps.Cart.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = fmt.Sprintf("%s x%d  %s", it.Name, it.Quantity, m.deps.Money.Format(it.LineTotal()))
	}
	return out
}

func withAll(options []string) []string {
	out := make([]string, 0, len(options)+1)
	out = append(out, allLabel)
	return append(out, options...)
}
