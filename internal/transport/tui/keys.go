package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	Select    key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	Back      key.Binding
	Inc       key.Binding
	Dec       key.Binding
	Remove    key.Binding
	EditQty   key.Binding
	ClearCart key.Binding
	Checkout  key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select / add to cart")),
		PrevPage:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		Back:      key.NewBinding(key.WithKeys("backspace", "b"), key.WithHelp("b", "breadcrumb up")),
		Inc:       key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "qty +1")),
		Dec:       key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "qty -1")),
		Remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		EditQty:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit qty")),
		ClearCart: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "clear cart")),
		Checkout:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "checkout")),
		Reload:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Select, k.PrevPage, k.NextPage, k.Checkout, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPane, k.PrevPane},
		{k.Select, k.PrevPage, k.NextPage, k.Back, k.Reload},
		{k.Inc, k.Dec, k.EditQty, k.Remove, k.ClearCart},
		{k.Checkout, k.Help, k.Quit},
	}
}
