package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/tableview"
)

type adminTab int

const (
	adminProducts adminTab = iota
	adminOrders
	adminUsers
	adminDashboard
)

var adminTabNames = []string{"Products", "Orders", "Users", "Dashboard"}

// adminScreen is the back office: three tables and a dashboard, plus the
// add/edit form and delete confirmation that open over them.
type adminScreen struct {
	tab      adminTab
	products *tableScreen[catalog.Product]
	orders   *tableScreen[catalog.Order]
	users    *tableScreen[catalog.User]
	form     *adminForm
	confirm  *pendingDelete
}

// pendingDelete is a delete waiting for y.
type pendingDelete struct {
	label     string
	user      bool
	productID int64
	userID    string
}

func newAdminScreen(pageSize int, resetOnRefresh bool) *adminScreen {
	opts := tableview.Options{PageSize: pageSize, ResetPageOnReplace: resetOnRefresh}

	productChips := []string{tableview.DefaultAllFilter}
	for _, c := range catalog.DefaultCategories() {
		productChips = append(productChips, c.Name)
	}
	orderChips := []string{tableview.DefaultAllFilter}
	for _, st := range catalog.OrderStatuses() {
		orderChips = append(orderChips, string(st))
	}
	userChips := []string{tableview.DefaultAllFilter, string(catalog.RoleAdmin), string(catalog.RoleCustomer)}

	a := &adminScreen{
		products: newTableScreen(
			tableview.New(catalog.ProductColumns(), catalog.ProductCategoryTag, opts).WithMatcher(catalog.MatchProduct),
			productRow, productChips),
		orders: newTableScreen(
			tableview.New(catalog.OrderColumns(), catalog.OrderStatusTag, opts).WithMatcher(catalog.MatchOrder),
			orderRow, orderChips),
		users: newTableScreen(
			tableview.New(catalog.UserColumns(), catalog.UserRoleTag, opts).WithMatcher(catalog.MatchUser),
			userRow, userChips),
	}
	a.products.setLoading(true)
	a.orders.setLoading(true)
	a.users.setLoading(true)
	return a
}

func productRow(p catalog.Product) table.Row {
	return table.Row{strconv.FormatInt(p.ID, 10), p.Name, p.Category, money(p.Price), strconv.Itoa(p.Stock)}
}

func orderRow(o catalog.Order) table.Row {
	date := "-"
	if !o.Date.IsZero() {
		date = o.Date.Format("2006-01-02")
	}
	return table.Row{"#" + strconv.FormatInt(o.ID, 10), o.Customer, date, string(o.Status), money(o.Total)}
}

func userRow(u catalog.User) table.Row {
	joined := "-"
	if !u.CreatedAt.IsZero() {
		joined = u.CreatedAt.Format("2006-01-02")
	}
	return table.Row{u.Name, u.Email, string(u.Role), joined}
}

func (a *adminScreen) capturing() bool {
	if a.form != nil || a.confirm != nil {
		return true
	}
	switch a.tab {
	case adminProducts:
		return a.products.capturing()
	case adminOrders:
		return a.orders.capturing()
	case adminUsers:
		return a.users.capturing()
	}
	return false
}

// handleKey switches admin tabs and forwards the rest to the open table.
func (a *adminScreen) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if !a.capturing() {
		switch {
		case key.Matches(msg, keys.NextGroup):
			a.tab = (a.tab + 1) % adminTab(len(adminTabNames))
			return true, nil
		case key.Matches(msg, keys.PrevGroup):
			a.tab = (a.tab + adminTab(len(adminTabNames)) - 1) % adminTab(len(adminTabNames))
			return true, nil
		}
	}
	switch a.tab {
	case adminProducts:
		return a.products.handleKey(msg)
	case adminOrders:
		return a.orders.handleKey(msg)
	case adminUsers:
		return a.users.handleKey(msg)
	}
	return false, nil
}

func (a *adminScreen) view(spin string, stats catalog.Stats, width int) string {
	var b strings.Builder
	tabs := make([]string, len(adminTabNames))
	for i, name := range adminTabNames {
		if adminTab(i) == a.tab {
			tabs[i] = TabActive.Render(name)
		} else {
			tabs[i] = TabInactive.Render(name)
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")

	if a.form != nil {
		b.WriteString(a.form.view(spin))
		return b.String()
	}
	if a.confirm != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Delete %s? Press y to confirm, any other key cancels.", a.confirm.label)))
		b.WriteString("\n")
	}

	switch a.tab {
	case adminProducts:
		b.WriteString(a.products.view(spin))
	case adminOrders:
		b.WriteString(a.orders.view(spin))
	case adminUsers:
		b.WriteString(a.users.view(spin))
	case adminDashboard:
		b.WriteString(renderDashboard(stats, width))
	}
	return b.String()
}

// renderDashboard draws the stat cards and a sales-by-day bar chart.
func renderDashboard(st catalog.Stats, width int) string {
	cards := []string{
		Panel.Render(fmt.Sprintf("Users\n%s", StatusBarKey.Render(strconv.Itoa(st.UserCount)))),
		Panel.Render(fmt.Sprintf("Products\n%s", StatusBarKey.Render(strconv.Itoa(st.ProductCount)))),
		Panel.Render(fmt.Sprintf("Orders\n%s", StatusBarKey.Render(strconv.Itoa(st.OrderCount)))),
		Panel.Render(fmt.Sprintf("Revenue\n%s", Price.Render(money(st.Revenue)))),
	}
	var b strings.Builder
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n\n")

	if len(st.SalesByDay) == 0 {
		b.WriteString(HelpStyle.Render(emptyText))
		return b.String()
	}

	b.WriteString(Title.Render("Sales by day"))
	b.WriteString("\n")
	peak := 0.0
	for _, d := range st.SalesByDay {
		peak = max(peak, d.Sales)
	}
	barWidth := max(width-30, 10)
	for _, d := range st.SalesByDay {
		n := 0
		if peak > 0 {
			n = int(d.Sales / peak * float64(barWidth))
		}
		fmt.Fprintf(&b, "%-7s %s %s\n",
			d.Label(),
			lipgloss.NewStyle().Foreground(colorPrimary).Render(strings.Repeat("█", max(n, 1))),
			StatusBarText.Render(money(d.Sales)))
	}
	return b.String()
}
