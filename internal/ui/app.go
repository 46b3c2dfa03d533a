package ui

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/abelbrown/storefront/internal/cart"
	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/checkout"
	"github.com/abelbrown/storefront/internal/tableview"
)

// Screen is a top-level page of the app.
type Screen int

const (
	ScreenShop Screen = iota
	ScreenSearch
	ScreenCart
	ScreenWishlist
	ScreenOrders
	ScreenAdmin
	ScreenCheckout // reached from the cart only
)

var screenNames = []string{"Shop", "Search", "Cart", "Wishlist", "My Orders", "Admin"}

// AppConfig holds the command functions and state containers the App
// works with. Nil command functions disable the feature.
type AppConfig struct {
	LoadProducts      func() tea.Cmd
	LoadOrders        func() tea.Cmd
	LoadUsers         func() tea.Cmd
	LoadMyOrders      func(email string) tea.Cmd
	Refresh           func() tea.Cmd
	PlaceOrder        func(flow *checkout.Flow, products map[int64]catalog.Product) tea.Cmd
	UpdateOrderStatus func(id int64, status catalog.OrderStatus) tea.Cmd
	SaveProduct       func(p catalog.Product) tea.Cmd
	SaveUser          func(u catalog.User) tea.Cmd
	DeleteProduct     func(id int64) tea.Cmd
	DeleteUser        func(id string) tea.Cmd

	Cart     *cart.Cart
	Wishlist *cart.Wishlist
	Email    string // customer the orders are placed for

	ProductPageSize    int
	AdminPageSize      int
	ResetPageOnRefresh bool // admin tables go back to page 1 on reload
}

// App is the root Bubble Tea model.
// IMPORTANT: App does NOT hold *store.Store. It receives records via messages.
type App struct {
	cfg AppConfig

	screen   Screen
	shop     *shopScreen
	search   *searchScreen
	admin    *adminScreen
	myOrders *tableScreen[catalog.Order]
	checkout *checkoutScreen
	cartPos  *listCursor
	wishPos  *listCursor

	products    []catalog.Product
	productByID map[int64]catalog.Product
	orders      []catalog.Order
	users       []catalog.User

	spinner spinner.Model
	err     error
	notice  string
	width   int
	height  int
	ready   bool
}

// NewAppWithConfig creates an App. A missing cart or wishlist is replaced
// with an in-memory one.
func NewAppWithConfig(cfg AppConfig) App {
	if cfg.Cart == nil {
		cfg.Cart = cart.NewCart(cart.NewMemory[[]cart.Line]())
	}
	if cfg.Wishlist == nil {
		cfg.Wishlist = cart.NewWishlist(cart.NewMemory[[]int64]())
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorHighlight)

	statusChips := []string{tableview.DefaultAllFilter}
	for _, st := range catalog.OrderStatuses() {
		statusChips = append(statusChips, string(st))
	}
	myOrders := newTableScreen(
		tableview.New(catalog.OrderColumns(), catalog.OrderStatusTag, tableview.Options{PageSize: cfg.AdminPageSize}).
			WithMatcher(catalog.MatchOrder),
		orderRow, statusChips)
	myOrders.setLoading(cfg.LoadMyOrders != nil)

	return App{
		cfg:         cfg,
		shop:        newShopScreen(cfg.ProductPageSize),
		search:      newSearchScreen(cfg.ProductPageSize),
		admin:       newAdminScreen(cfg.AdminPageSize, cfg.ResetPageOnRefresh),
		myOrders:    myOrders,
		checkout:    newCheckoutScreen(),
		cartPos:     &listCursor{},
		wishPos:     &listCursor{},
		productByID: map[int64]catalog.Product{},
		spinner:     s,
	}
}

// Init starts the spinner and the initial loads.
func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.spinner.Tick}
	if a.cfg.LoadProducts != nil {
		cmds = append(cmds, a.cfg.LoadProducts())
	}
	if a.cfg.LoadOrders != nil {
		cmds = append(cmds, a.cfg.LoadOrders())
	}
	if a.cfg.LoadUsers != nil {
		cmds = append(cmds, a.cfg.LoadUsers())
	}
	if a.cfg.LoadMyOrders != nil {
		cmds = append(cmds, a.cfg.LoadMyOrders(a.cfg.Email))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case ProductsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.products = msg.Products
			a.indexProducts()
		}
		a.shop.loaded(msg.Products, msg.Err)
		a.search.loaded(msg.Products, msg.Err)
		a.admin.products.loaded(msg.Products, msg.Err)
		return a, nil

	case OrdersLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.orders = msg.Orders
		}
		a.admin.orders.loaded(msg.Orders, msg.Err)
		return a, nil

	case UsersLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		} else {
			a.users = msg.Users
		}
		a.admin.users.loaded(msg.Users, msg.Err)
		return a, nil

	case MyOrdersLoaded:
		if msg.Err != nil {
			a.err = msg.Err
		}
		a.myOrders.loaded(msg.Orders, msg.Err)
		return a, nil

	case OrderPlaced:
		a.checkout.placedOrder(msg.Order, msg.Err)
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.notice = fmt.Sprintf("Order %s placed", msg.Order.Reference)
		a.orders = append([]catalog.Order{msg.Order}, a.orders...)
		a.admin.orders.setRecords(a.orders)
		if a.cfg.LoadMyOrders != nil {
			return a, a.cfg.LoadMyOrders(a.cfg.Email)
		}
		return a, nil

	case OrderStatusUpdated:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		for i := range a.orders {
			if a.orders[i].ID == msg.ID {
				a.orders[i].Status = msg.Status
			}
		}
		a.admin.orders.setRecords(a.orders)
		a.notice = fmt.Sprintf("Order #%d is now %s", msg.ID, msg.Status)
		return a, nil

	case ProductSaved:
		if a.admin.form != nil {
			a.admin.form.saving = false
		}
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.admin.form = nil
		a.products = upsert(a.products, msg.Product, func(p catalog.Product) bool { return p.ID == msg.Product.ID })
		a.indexProducts()
		a.shop.setProducts(a.products)
		a.search.setProducts(a.products)
		a.admin.products.setRecords(a.products)
		a.notice = fmt.Sprintf("Saved %s", msg.Product.Name)
		return a, nil

	case UserSaved:
		if a.admin.form != nil {
			a.admin.form.saving = false
		}
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.admin.form = nil
		a.users = upsert(a.users, msg.User, func(u catalog.User) bool { return u.ID == msg.User.ID })
		a.admin.users.setRecords(a.users)
		a.notice = fmt.Sprintf("Saved %s", msg.User.Email)
		return a, nil

	case ProductDeleted:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.products = slices.DeleteFunc(slices.Clone(a.products), func(p catalog.Product) bool { return p.ID == msg.ID })
		a.indexProducts()
		a.shop.setProducts(a.products)
		a.search.setProducts(a.products)
		a.admin.products.setRecords(a.products)
		a.notice = fmt.Sprintf("Product %d deleted", msg.ID)
		return a, nil

	case UserDeleted:
		if msg.Err != nil {
			a.err = msg.Err
			return a, nil
		}
		a.users = slices.DeleteFunc(slices.Clone(a.users), func(u catalog.User) bool { return u.ID == msg.ID })
		a.admin.users.setRecords(a.users)
		a.notice = "User deleted"
		return a, nil

	case RefreshComplete:
		switch {
		case msg.Throttled:
			a.notice = "Refresh skipped: too soon after the last one"
		case msg.Err != nil:
			a.err = msg.Err
		}
		return a, nil
	}

	return a, nil
}

// upsert replaces the record same matches, or appends rec.
func upsert[T any](records []T, rec T, same func(T) bool) []T {
	out := slices.Clone(records)
	if i := slices.IndexFunc(out, same); i >= 0 {
		out[i] = rec
		return out
	}
	return append(out, rec)
}

func (a *App) indexProducts() {
	a.productByID = make(map[int64]catalog.Product, len(a.products))
	for _, p := range a.products {
		a.productByID[p.ID] = p
	}
}

// capturing reports whether a text input owns the keyboard.
func (a App) capturing() bool {
	switch a.screen {
	case ScreenSearch:
		return a.search.capturing()
	case ScreenOrders:
		return a.myOrders.capturing()
	case ScreenAdmin:
		return a.admin.capturing()
	case ScreenCheckout:
		return true
	}
	return false
}

// handleKeyMsg processes keyboard input.
func (a App) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Clear any existing error on key press
	a.err = nil
	a.notice = ""

	if msg.Type == tea.KeyCtrlC {
		return a, tea.Quit
	}

	if a.screen == ScreenCheckout {
		return a.handleCheckoutKey(msg)
	}

	if !a.capturing() {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.NextTab):
			a.screen = (a.screen + 1) % Screen(len(screenNames))
			return a, nil
		case key.Matches(msg, keys.PrevTab):
			a.screen = (a.screen + Screen(len(screenNames)) - 1) % Screen(len(screenNames))
			return a, nil
		case key.Matches(msg, keys.Refresh):
			return a, a.refresh()
		}
	}

	switch a.screen {
	case ScreenShop:
		if a.shop.handleKey(msg) {
			return a, nil
		}
		if p, ok := a.shop.selected(); ok {
			a.productAction(msg, p)
		}

	case ScreenSearch:
		if used, cmd := a.search.handleKey(msg); used {
			return a, cmd
		}
		if p, ok := a.search.selected(); ok {
			a.productAction(msg, p)
		}

	case ScreenCart:
		return a.handleCartKey(msg)

	case ScreenWishlist:
		return a.handleWishlistKey(msg)

	case ScreenOrders:
		_, cmd := a.myOrders.handleKey(msg)
		return a, cmd

	case ScreenAdmin:
		if a.admin.confirm != nil {
			cmd := a.confirmDelete(msg)
			return a, cmd
		}
		if a.admin.form != nil {
			return a.handleAdminFormKey(msg)
		}
		if used, cmd := a.admin.handleKey(msg); used {
			return a, cmd
		}
		cmd := a.adminAction(msg)
		return a, cmd
	}

	return a, nil
}

// refresh reloads every dataset, through the coordinator when there is one.
func (a App) refresh() tea.Cmd {
	if a.cfg.Refresh != nil {
		return a.cfg.Refresh()
	}
	var cmds []tea.Cmd
	if a.cfg.LoadProducts != nil {
		cmds = append(cmds, a.cfg.LoadProducts())
	}
	if a.cfg.LoadOrders != nil {
		cmds = append(cmds, a.cfg.LoadOrders())
	}
	if a.cfg.LoadUsers != nil {
		cmds = append(cmds, a.cfg.LoadUsers())
	}
	if a.cfg.LoadMyOrders != nil {
		cmds = append(cmds, a.cfg.LoadMyOrders(a.cfg.Email))
	}
	return tea.Batch(cmds...)
}

// productAction handles add-to-cart and wishlist keys on a product.
func (a *App) productAction(msg tea.KeyMsg, p catalog.Product) {
	switch {
	case key.Matches(msg, keys.AddToCart):
		if p.Stock <= 0 {
			a.err = fmt.Errorf("%s is out of stock", p.Name)
			return
		}
		if err := a.cfg.Cart.Add(p.ID); err != nil {
			a.err = err
			return
		}
		a.notice = fmt.Sprintf("Added %s to cart", p.Name)

	case key.Matches(msg, keys.Wishlist):
		in, err := a.cfg.Wishlist.Toggle(p.ID)
		if err != nil {
			a.err = err
			return
		}
		if in {
			a.notice = fmt.Sprintf("Saved %s to wishlist", p.Name)
		} else {
			a.notice = fmt.Sprintf("Removed %s from wishlist", p.Name)
		}
	}
}

func (a App) handleCartKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lines := checkout.Lines(a.cfg.Cart, a.productByID)
	a.cartPos.clamp(len(lines))

	switch {
	case key.Matches(msg, keys.Up):
		a.cartPos.move(-1, len(lines))
	case key.Matches(msg, keys.Down):
		a.cartPos.move(1, len(lines))
	case key.Matches(msg, keys.Increase):
		if len(lines) > 0 {
			a.err = a.cfg.Cart.Add(lines[a.cartPos.pos].ProductID)
		}
	case key.Matches(msg, keys.Decrease):
		if len(lines) > 0 {
			a.err = a.cfg.Cart.Decrease(lines[a.cartPos.pos].ProductID)
		}
	case key.Matches(msg, keys.Remove):
		if len(lines) > 0 {
			a.err = a.cfg.Cart.Remove(lines[a.cartPos.pos].ProductID)
		}
	case key.Matches(msg, keys.Checkout):
		if len(lines) == 0 {
			a.err = checkout.ErrEmptyCart
			return a, nil
		}
		a.checkout.reset()
		a.screen = ScreenCheckout
		return a, textinput.Blink
	}
	a.cartPos.clamp(len(checkout.Lines(a.cfg.Cart, a.productByID)))
	return a, nil
}

func (a App) handleWishlistKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := wishlistProducts(a.cfg.Wishlist, a.productByID)
	a.wishPos.clamp(len(items))

	switch {
	case key.Matches(msg, keys.Up):
		a.wishPos.move(-1, len(items))
	case key.Matches(msg, keys.Down):
		a.wishPos.move(1, len(items))
	case key.Matches(msg, keys.AddToCart):
		if len(items) > 0 {
			p := items[a.wishPos.pos]
			a.productAction(msg, p)
			if a.err == nil {
				_, a.err = a.cfg.Wishlist.Toggle(p.ID)
			}
		}
	case key.Matches(msg, keys.Remove), key.Matches(msg, keys.Wishlist):
		if len(items) > 0 {
			_, a.err = a.cfg.Wishlist.Toggle(items[a.wishPos.pos].ID)
		}
	}
	a.wishPos.clamp(len(wishlistProducts(a.cfg.Wishlist, a.productByID)))
	return a, nil
}

func (a App) handleCheckoutKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := a.checkout.handleKey(msg)
	switch action {
	case checkoutLeave:
		if a.checkout.placed != nil {
			a.screen = ScreenOrders
		} else {
			a.screen = ScreenCart
		}
		a.checkout.reset()
		return a, nil

	case checkoutPlace:
		if a.cfg.PlaceOrder == nil {
			a.checkout.placedOrder(catalog.Order{}, errors.New("ordering is not available"))
			a.err = errors.New("ordering is not available")
			return a, nil
		}
		return a, a.cfg.PlaceOrder(a.checkout.flow, a.productByID)
	}
	return a, cmd
}

// adminAction handles the row actions of the admin tables. Deletes only
// ask for confirmation here; confirmDelete runs them.
func (a *App) adminAction(msg tea.KeyMsg) tea.Cmd {
	switch a.admin.tab {
	case adminOrders:
		if !key.Matches(msg, keys.Enter) || a.cfg.UpdateOrderStatus == nil {
			return nil
		}
		if o, ok := a.admin.orders.selected(); ok {
			return a.cfg.UpdateOrderStatus(o.ID, nextStatus(o.Status))
		}

	case adminProducts:
		switch {
		case key.Matches(msg, keys.Add):
			a.admin.form = newProductForm(nil)
			return textinput.Blink
		case key.Matches(msg, keys.Edit):
			if p, ok := a.admin.products.selected(); ok {
				a.admin.form = newProductForm(&p)
				return textinput.Blink
			}
		case key.Matches(msg, keys.Remove):
			if p, ok := a.admin.products.selected(); ok {
				a.admin.confirm = &pendingDelete{label: fmt.Sprintf("product %q", p.Name), productID: p.ID}
			}
		}

	case adminUsers:
		switch {
		case key.Matches(msg, keys.Add):
			a.admin.form = newUserForm(nil)
			return textinput.Blink
		case key.Matches(msg, keys.Edit):
			if u, ok := a.admin.users.selected(); ok {
				a.admin.form = newUserForm(&u)
				return textinput.Blink
			}
		case key.Matches(msg, keys.Remove):
			if u, ok := a.admin.users.selected(); ok {
				a.admin.confirm = &pendingDelete{label: fmt.Sprintf("user %s", u.Email), user: true, userID: u.ID}
			}
		}
	}
	return nil
}

// confirmDelete runs the pending delete on y and drops it on any other key.
func (a *App) confirmDelete(msg tea.KeyMsg) tea.Cmd {
	pd := a.admin.confirm
	a.admin.confirm = nil
	if !key.Matches(msg, keys.Confirm) {
		a.notice = "Delete canceled"
		return nil
	}
	if pd.user {
		if a.cfg.DeleteUser == nil {
			a.err = errors.New("deleting users is not available")
			return nil
		}
		return a.cfg.DeleteUser(pd.userID)
	}
	if a.cfg.DeleteProduct == nil {
		a.err = errors.New("deleting products is not available")
		return nil
	}
	return a.cfg.DeleteProduct(pd.productID)
}

// handleAdminFormKey feeds the open add/edit form and saves it on submit.
func (a App) handleAdminFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := a.admin.form
	action, cmd := f.handleKey(msg)
	switch action {
	case formCancel:
		a.admin.form = nil
		return a, nil

	case formSave:
		if f.product != nil {
			if a.cfg.SaveProduct == nil {
				f.saving = false
				a.err = errors.New("editing products is not available")
				return a, nil
			}
			p, _ := f.parseProduct()
			return a, a.cfg.SaveProduct(p)
		}
		if a.cfg.SaveUser == nil {
			f.saving = false
			a.err = errors.New("editing users is not available")
			return a, nil
		}
		u, _ := f.parseUser()
		return a, a.cfg.SaveUser(u)
	}
	return a, cmd
}

// nextStatus cycles an order through the statuses in display order.
func nextStatus(s catalog.OrderStatus) catalog.OrderStatus {
	all := catalog.OrderStatuses()
	i := slices.Index(all, s)
	return all[(i+1)%len(all)]
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	spin := a.spinner.View()
	var content string
	switch a.screen {
	case ScreenShop:
		content = a.shop.view(spin, a.cfg.Cart, a.cfg.Wishlist, a.width)
	case ScreenSearch:
		content = a.search.view(spin, a.cfg.Cart, a.cfg.Wishlist, a.width)
	case ScreenCart:
		content = renderCart(a.cfg.Cart, a.productByID, a.cartPos.pos, a.width)
	case ScreenWishlist:
		content = renderWishlist(a.cfg.Wishlist, a.cfg.Cart, a.productByID, a.wishPos.pos, a.width)
	case ScreenOrders:
		content = a.myOrders.view(spin)
	case ScreenAdmin:
		content = a.admin.view(spin, catalog.Summarize(a.users, a.products, a.orders), a.width)
	case ScreenCheckout:
		content = a.checkout.view(spin, checkout.ComputeTotals(checkout.Lines(a.cfg.Cart, a.productByID)))
	}

	var b strings.Builder
	b.WriteString(a.renderTabs())
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n")

	// Render error bar if there's an error (shown above status bar)
	if a.err != nil {
		b.WriteString(ErrorStyle.Width(a.width).Render("Error: " + a.err.Error() + " (press any key to dismiss)"))
		b.WriteString("\n")
	} else if a.notice != "" {
		b.WriteString(SuccessStyle.Render(a.notice))
		b.WriteString("\n")
	}
	b.WriteString(a.renderStatusBar())
	return b.String()
}

func (a App) renderTabs() string {
	tabs := make([]string, len(screenNames))
	for i, name := range screenNames {
		switch Screen(i) {
		case ScreenCart:
			name = fmt.Sprintf("%s (%d)", name, a.cfg.Cart.Count())
		case ScreenWishlist:
			name = fmt.Sprintf("%s (%d)", name, a.cfg.Wishlist.Len())
		}
		active := Screen(i) == a.screen || (a.screen == ScreenCheckout && Screen(i) == ScreenCart)
		if active {
			tabs[i] = TabActive.Render(name)
		} else {
			tabs[i] = TabInactive.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (a App) renderStatusBar() string {
	var hints [][2]string
	switch a.screen {
	case ScreenShop:
		hints = [][2]string{{"[ ]", "category"}, {"f", "filter"}, {"s", "sort"}, {"n/p", "page"}, {"a", "add"}, {"w", "wishlist"}, {"enter", "details"}}
	case ScreenSearch:
		hints = [][2]string{{"/", "search"}, {"n/p", "page"}, {"a", "add"}, {"w", "wishlist"}}
	case ScreenCart:
		hints = [][2]string{{"+/-", "quantity"}, {"x", "remove"}, {"c", "checkout"}}
	case ScreenWishlist:
		hints = [][2]string{{"a", "move to cart"}, {"x", "remove"}}
	case ScreenOrders:
		hints = [][2]string{{"1-5", "sort"}, {"f", "status"}, {"/", "search"}, {"n/p", "page"}}
	case ScreenAdmin:
		hints = [][2]string{{"[ ]", "table"}, {"1-5", "sort"}, {"f", "filter"}, {"/", "search"}, {"n/p", "page"}}
		switch {
		case a.admin.form != nil:
			hints = [][2]string{{"tab", "next field"}, {"enter", "save"}, {"esc", "cancel"}}
		case a.admin.confirm != nil:
			hints = [][2]string{{"y", "delete"}, {"any key", "cancel"}}
		case a.admin.tab == adminOrders:
			hints = append(hints, [2]string{"enter", "next status"})
		case a.admin.tab == adminProducts, a.admin.tab == adminUsers:
			hints = append(hints, [2]string{"a", "add"}, [2]string{"e", "edit"}, [2]string{"x", "delete"})
		}
	case ScreenCheckout:
		hints = [][2]string{{"esc", "back"}}
	}
	if a.screen != ScreenCheckout && !a.capturing() {
		hints = append(hints, [2]string{"tab", "screen"}, [2]string{"r", "refresh"}, [2]string{"q", "quit"})
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = StatusBarKey.Render(h[0]) + " " + StatusBarText.Render(h[1])
	}
	return StatusBar.Width(a.width).Render(strings.Join(parts, "  "))
}

// Screen returns the current screen (for testing).
func (a App) Screen() Screen {
	return a.screen
}

// Err returns the error shown in the error bar (for testing).
func (a App) Err() error {
	return a.err
}

// ShopSnapshot returns the shop page state (for testing).
func (a App) ShopSnapshot() tableview.Snapshot[catalog.Product] {
	return a.shop.ctrl.Snapshot()
}

// SearchSnapshot returns the search results state (for testing).
func (a App) SearchSnapshot() tableview.Snapshot[catalog.Product] {
	return a.search.ctrl.Snapshot()
}

// AdminOrders returns the admin order table state (for testing).
func (a App) AdminOrders() tableview.Snapshot[catalog.Order] {
	return a.admin.orders.ctrl.Snapshot()
}
