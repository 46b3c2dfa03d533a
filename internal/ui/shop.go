package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/storefront/internal/cart"
	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/tableview"
)

// shopScreen is a category page: category tabs, sub-category chips, a sort
// dropdown and a paged product list.
type shopScreen struct {
	categories []catalog.Category
	cat        int
	sorts      []catalog.SortOption
	sortIdx    int
	ctrl       *tableview.Controller[catalog.Product]
	all        []catalog.Product
	cursor     int
	detail     bool
}

func newShopScreen(pageSize int) *shopScreen {
	s := &shopScreen{
		categories: catalog.DefaultCategories(),
		sorts:      catalog.SortOptions(),
		// Category switches go back to page 1 through SetFilter; a
		// background reload keeps the shopper's page.
		ctrl: tableview.New(catalog.ProductColumns(), catalog.ProductTags, tableview.Options{
			PageSize: pageSize,
		}),
	}
	s.ctrl.SetLoading(true)
	return s
}

func (s *shopScreen) category() catalog.Category { return s.categories[s.cat] }

// loaded applies a product load, keeping the category's products only.
func (s *shopScreen) loaded(all []catalog.Product, err error) {
	prev, had := s.selected()
	if err == nil {
		s.all = all
	}
	s.ctrl.Loaded(s.inCategory(), err)
	s.cursor = followCursor(s.ctrl.Snapshot().Items, prev, had, s.cursor)
}

// setProducts replaces the product list after a local change.
func (s *shopScreen) setProducts(all []catalog.Product) {
	prev, had := s.selected()
	s.all = all
	s.ctrl.SetRecords(s.inCategory())
	s.cursor = followCursor(s.ctrl.Snapshot().Items, prev, had, s.cursor)
}

func (s *shopScreen) inCategory() []catalog.Product {
	return tableview.Filter(s.all, catalog.ProductCategoryTag, s.category().Name, "")
}

// selectCategory switches category, resetting chip, sort, and page.
func (s *shopScreen) selectCategory(i int) {
	n := len(s.categories)
	s.cat = ((i % n) + n) % n
	s.sortIdx = 0
	s.ctrl.SetRecords(s.inCategory())
	s.ctrl.SetFilter(tableview.DefaultAllFilter)
	s.ctrl.ClearSort()
	s.cursor = 0
	s.detail = false
}

// cycleChip moves the sub-category chip by step.
func (s *shopScreen) cycleChip(step int) {
	subs := s.category().SubCategories
	cur := 0
	for i, sub := range subs {
		if sub == s.ctrl.Snapshot().ActiveFilter {
			cur = i
		}
	}
	next := ((cur+step)%len(subs) + len(subs)) % len(subs)
	s.ctrl.SetFilter(subs[next])
	s.cursor = 0
}

// cycleSort picks the next "Sort By" option.
func (s *shopScreen) cycleSort() {
	s.sortIdx = (s.sortIdx + 1) % len(s.sorts)
	s.ctrl.SetSortSpec(s.sorts[s.sortIdx].Spec)
	s.cursor = 0
}

func (s *shopScreen) selected() (catalog.Product, bool) {
	items := s.ctrl.Snapshot().Items
	if s.cursor < 0 || s.cursor >= len(items) {
		return catalog.Product{}, false
	}
	return items[s.cursor], true
}

// followCursor returns the row of prev on the new page, or cursor clamped
// into the page when prev is no longer on it.
func followCursor(items []catalog.Product, prev catalog.Product, had bool, cursor int) int {
	if had {
		for i, p := range items {
			if p.ID == prev.ID {
				return i
			}
		}
	}
	return min(cursor, max(len(items)-1, 0))
}

// handleKey applies navigation keys. Cart and wishlist keys are left to
// the app.
func (s *shopScreen) handleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, keys.NextGroup):
		s.selectCategory(s.cat + 1)
	case key.Matches(msg, keys.PrevGroup):
		s.selectCategory(s.cat - 1)
	case key.Matches(msg, keys.NextChip):
		s.cycleChip(1)
	case key.Matches(msg, keys.PrevChip):
		s.cycleChip(-1)
	case key.Matches(msg, keys.Sort):
		s.cycleSort()
	case key.Matches(msg, keys.NextPage):
		s.ctrl.NextPage()
		s.cursor = 0
	case key.Matches(msg, keys.PrevPage):
		s.ctrl.PrevPage()
		s.cursor = 0
	case key.Matches(msg, keys.Down):
		if s.cursor < len(s.ctrl.Snapshot().Items)-1 {
			s.cursor++
		}
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, keys.Enter):
		s.detail = !s.detail
	default:
		return false
	}
	return true
}

func (s *shopScreen) view(spin string, c *cart.Cart, w *cart.Wishlist, width int) string {
	snap := s.ctrl.Snapshot()
	var b strings.Builder

	tabs := make([]string, len(s.categories))
	for i, cat := range s.categories {
		if i == s.cat {
			tabs[i] = TabActive.Render(cat.Title)
		} else {
			tabs[i] = TabInactive.Render(cat.Title)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(renderChips(s.category().SubCategories, snap.ActiveFilter))
	b.WriteString(StatusBarText.Render("   Sort by: "))
	b.WriteString(StatusBarKey.Render(s.sorts[s.sortIdx].Label))
	b.WriteString("\n\n")

	b.WriteString(renderProductPage(snap, s.cursor, spin, c, w, width))
	if s.detail {
		if p, ok := s.selected(); ok {
			b.WriteString("\n")
			b.WriteString(renderProductDetail(p, width))
		}
	}
	return b.String()
}

// searchScreen is free-text search across every product.
type searchScreen struct {
	ctrl    *tableview.Controller[catalog.Product]
	input   textinput.Model
	cursor  int
	focused bool
}

func newSearchScreen(pageSize int) *searchScreen {
	input := textinput.New()
	input.Prompt = "Search: "
	input.Placeholder = "netflix, windows, sports..."
	input.CharLimit = 64
	input.Width = 40

	s := &searchScreen{
		ctrl: tableview.New(catalog.ProductColumns(), nil, tableview.Options{
			PageSize: pageSize,
		}).WithMatcher(catalog.MatchProduct),
		input: input,
	}
	s.ctrl.SetLoading(true)
	return s
}

func (s *searchScreen) capturing() bool { return s.focused }

// loaded applies a product load, keeping the page and the selected product.
func (s *searchScreen) loaded(all []catalog.Product, err error) {
	prev, had := s.selected()
	s.ctrl.Loaded(all, err)
	s.cursor = followCursor(s.ctrl.Snapshot().Items, prev, had, s.cursor)
}

// setProducts replaces the product list after a local change.
func (s *searchScreen) setProducts(all []catalog.Product) {
	prev, had := s.selected()
	s.ctrl.SetRecords(all)
	s.cursor = followCursor(s.ctrl.Snapshot().Items, prev, had, s.cursor)
}

func (s *searchScreen) focus() tea.Cmd {
	s.focused = true
	return s.input.Focus()
}

func (s *searchScreen) selected() (catalog.Product, bool) {
	items := s.ctrl.Snapshot().Items
	if s.cursor < 0 || s.cursor >= len(items) {
		return catalog.Product{}, false
	}
	return items[s.cursor], true
}

func (s *searchScreen) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if s.focused {
		switch {
		case key.Matches(msg, keys.Escape), key.Matches(msg, keys.Enter):
			s.focused = false
			s.input.Blur()
			return true, nil
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		if s.input.Value() != s.ctrl.Snapshot().Query {
			s.ctrl.SetQuery(s.input.Value())
			s.cursor = 0
		}
		return true, cmd
	}

	switch {
	case key.Matches(msg, keys.Search):
		return true, s.focus()
	case key.Matches(msg, keys.NextPage):
		s.ctrl.NextPage()
		s.cursor = 0
	case key.Matches(msg, keys.PrevPage):
		s.ctrl.PrevPage()
		s.cursor = 0
	case key.Matches(msg, keys.Down):
		if s.cursor < len(s.ctrl.Snapshot().Items)-1 {
			s.cursor++
		}
	case key.Matches(msg, keys.Up):
		if s.cursor > 0 {
			s.cursor--
		}
	default:
		return false, nil
	}
	return true, nil
}

func (s *searchScreen) view(spin string, c *cart.Cart, w *cart.Wishlist, width int) string {
	snap := s.ctrl.Snapshot()
	var b strings.Builder
	b.WriteString(FilterBar.Render(s.input.View()))
	if snap.Query != "" {
		b.WriteString(FilterBarCount.Render(fmt.Sprintf(" %d results for %q", snap.FilteredCount, snap.Query)))
	}
	b.WriteString("\n\n")
	b.WriteString(renderProductPage(snap, s.cursor, spin, c, w, width))
	return b.String()
}

// renderProductPage draws one page of products with a pager, or the
// loading, error, or empty placeholder.
func renderProductPage(snap tableview.Snapshot[catalog.Product], cursor int, spin string, c *cart.Cart, w *cart.Wishlist, width int) string {
	switch {
	case snap.Loading:
		return HelpStyle.Render(spin + " Loading products...")
	case snap.Err != nil && snap.TotalCount == 0:
		return ErrorStyle.Render("Could not load products: " + snap.Err.Error())
	case snap.FilteredCount == 0:
		return HelpStyle.Render(emptyText)
	}

	var b strings.Builder
	for i, p := range snap.Items {
		b.WriteString(renderProductLine(p, i == cursor, c, w, width))
		b.WriteString("\n")
	}
	b.WriteString(renderPager(snap.PageIndex, snap.TotalPages, snap.FilteredCount))
	return b.String()
}

// renderProductLine renders a single product row.
func renderProductLine(p catalog.Product, selected bool, c *cart.Cart, w *cart.Wishlist, width int) string {
	nameWidth := max(width-40, 20)
	name := truncate(p.Name, nameWidth)
	pad := strings.Repeat(" ", max(nameWidth-utf8.RuneCountInString(name), 0))

	style := NormalItem
	if selected {
		style = SelectedItem
	}
	line := style.Render(name+pad) + " " + formatPrice(p)

	if p.Stock <= 0 {
		line += Badge.Render("out of stock")
	}
	if c != nil && c.Contains(p.ID) {
		line += Badge.Render(fmt.Sprintf("in cart ×%d", c.Quantity(p.ID)))
	}
	if w != nil && w.Contains(p.ID) {
		line += Badge.Render("♥")
	}
	return line
}

// formatPrice renders the price with the original price and discount badge
// when discounted.
func formatPrice(p catalog.Product) string {
	s := Price.Render(money(p.Price))
	if d := p.DiscountPercent(); d > 0 {
		s += " " + OldPrice.Render(money(p.OriginalPrice)) + " " + Discount.Render(fmt.Sprintf("-%d%%", d))
	}
	return s
}

// renderProductDetail draws the detail panel with description and features.
func renderProductDetail(p catalog.Product, width int) string {
	var b strings.Builder
	b.WriteString(Title.Render(p.Name))
	b.WriteString("\n")
	b.WriteString(formatPrice(p))
	b.WriteString(StatusBarText.Render(fmt.Sprintf("   %s · %d in stock", p.Category, p.Stock)))
	b.WriteString("\n")
	if p.Description != "" {
		b.WriteString(lipgloss.NewStyle().Width(max(width-6, 20)).Render(p.Description))
		b.WriteString("\n")
	}
	for _, f := range p.Features {
		b.WriteString(StatusBarKey.Render("• "+f.Title) + " " + StatusBarText.Render(f.Desc))
		b.WriteString("\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

// money formats an amount in rupees.
func money(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("₹%d", int64(v))
	}
	return fmt.Sprintf("₹%.2f", v)
}

// truncate shortens s to n runes with an ellipsis.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
