package ui

import (
	"fmt"
	"strings"

	"github.com/abelbrown/storefront/internal/cart"
	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/checkout"
)

// listCursor is a cursor over a short list that can shrink under it.
type listCursor struct{ pos int }

func (l *listCursor) move(delta, n int) {
	l.pos = max(0, min(l.pos+delta, n-1))
}

func (l *listCursor) clamp(n int) {
	if l.pos >= n {
		l.pos = max(n-1, 0)
	}
}

// renderCart draws the cart lines and the totals box.
func renderCart(c *cart.Cart, products map[int64]catalog.Product, cursor int, width int) string {
	lines := checkout.Lines(c, products)
	if len(lines) == 0 {
		return HelpStyle.Render("Your cart is empty. Press tab to go shopping.")
	}

	var b strings.Builder
	nameWidth := max(width-36, 20)
	for i, l := range lines {
		style := NormalItem
		if i == cursor {
			style = SelectedItem
		}
		name := truncate(l.Name, nameWidth)
		name += strings.Repeat(" ", max(nameWidth-len([]rune(name)), 0))
		fmt.Fprintf(&b, "%s %s × %d = %s\n",
			style.Render(name),
			StatusBarText.Render(money(l.UnitPrice)),
			l.Quantity,
			Price.Render(money(l.Subtotal())))
	}
	b.WriteString("\n")
	b.WriteString(renderTotals(checkout.ComputeTotals(lines)))
	return b.String()
}

// renderTotals draws the order summary box.
func renderTotals(t checkout.Totals) string {
	body := fmt.Sprintf("Subtotal  %s\nShipping  %s\nTotal     %s",
		money(t.Subtotal), money(t.Shipping), Price.Render(money(t.Total)))
	return Panel.Render(body)
}

// renderWishlist draws the saved products.
func renderWishlist(w *cart.Wishlist, c *cart.Cart, products map[int64]catalog.Product, cursor int, width int) string {
	items := wishlistProducts(w, products)
	if len(items) == 0 {
		return HelpStyle.Render("Your wishlist is empty. Press w on a product to save it.")
	}
	var b strings.Builder
	for i, p := range items {
		b.WriteString(renderProductLine(p, i == cursor, c, nil, width))
		b.WriteString("\n")
	}
	return b.String()
}

// wishlistProducts resolves wishlist IDs to products, skipping unknown ones.
func wishlistProducts(w *cart.Wishlist, products map[int64]catalog.Product) []catalog.Product {
	var out []catalog.Product
	for _, id := range w.IDs() {
		if p, ok := products[id]; ok {
			out = append(out, p)
		}
	}
	return out
}
