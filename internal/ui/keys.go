package ui

import "github.com/charmbracelet/bubbles/key"

// Key bindings
var keys = struct {
	Quit      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Enter     key.Binding
	Escape    key.Binding
	Search    key.Binding
	Refresh   key.Binding
	AddToCart key.Binding
	Wishlist  key.Binding
	Sort      key.Binding
	NextChip  key.Binding
	PrevChip  key.Binding
	NextGroup key.Binding
	PrevGroup key.Binding
	Increase  key.Binding
	Decrease  key.Binding
	Remove    key.Binding
	Checkout  key.Binding
	ClearSort key.Binding
	Add       key.Binding
	Edit      key.Binding
	Confirm   key.Binding
}{
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next screen")),
	PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev screen")),
	Up:        key.NewBinding(key.WithKeys("k", "up")),
	Down:      key.NewBinding(key.WithKeys("j", "down")),
	NextPage:  key.NewBinding(key.WithKeys("n", "right", "l"), key.WithHelp("n", "next page")),
	PrevPage:  key.NewBinding(key.WithKeys("p", "left", "h"), key.WithHelp("p", "prev page")),
	Enter:     key.NewBinding(key.WithKeys("enter")),
	Escape:    key.NewBinding(key.WithKeys("esc")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	AddToCart: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to cart")),
	Wishlist:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wishlist")),
	Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
	NextChip:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	PrevChip:  key.NewBinding(key.WithKeys("F")),
	NextGroup: key.NewBinding(key.WithKeys("]"), key.WithHelp("[ ]", "section")),
	PrevGroup: key.NewBinding(key.WithKeys("[")),
	Increase:  key.NewBinding(key.WithKeys("+", "=")),
	Decrease:  key.NewBinding(key.WithKeys("-")),
	Remove:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
	Checkout:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "checkout")),
	ClearSort: key.NewBinding(key.WithKeys("0")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Confirm:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
}

// sortColumnKey maps the number keys 1-9 to a column index.
func sortColumnKey(s string) (int, bool) {
	if len(s) != 1 || s[0] < '1' || s[0] > '9' {
		return 0, false
	}
	return int(s[0] - '1'), true
}
