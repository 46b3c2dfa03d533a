package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/checkout"
	"github.com/abelbrown/storefront/internal/tableview"
)

// mockCmd tracks which command functions were called.
type mockCmd struct {
	loads        int
	placed       *checkout.Flow
	statusID     int64
	status       catalog.OrderStatus
	deletedID    int64
	deletedUser  string
	savedProduct *catalog.Product
	savedUser    *catalog.User
	refreshCalls int
}

func seededProducts() []catalog.Product {
	products := catalog.SeedProducts()
	for i := range products {
		products[i].ID = int64(i + 1)
	}
	return products
}

func (m *mockCmd) loadProducts() tea.Cmd {
	m.loads++
	return func() tea.Msg { return ProductsLoaded{Products: seededProducts()} }
}

func (m *mockCmd) loadOrders() tea.Cmd {
	m.loads++
	return func() tea.Msg { return OrdersLoaded{Orders: catalog.SeedOrders()} }
}

func (m *mockCmd) placeOrder(flow *checkout.Flow, products map[int64]catalog.Product) tea.Cmd {
	m.placed = flow
	return func() tea.Msg {
		return OrderPlaced{Order: catalog.Order{ID: 200, Reference: "ORD-TEST", Total: 549, Status: catalog.StatusPending}}
	}
}

func (m *mockCmd) updateStatus(id int64, status catalog.OrderStatus) tea.Cmd {
	m.statusID, m.status = id, status
	return func() tea.Msg { return OrderStatusUpdated{ID: id, Status: status} }
}

func (m *mockCmd) saveProduct(p catalog.Product) tea.Cmd {
	m.savedProduct = &p
	if p.ID == 0 {
		p.ID = 20
	}
	return func() tea.Msg { return ProductSaved{Product: p} }
}

func (m *mockCmd) saveUser(u catalog.User) tea.Cmd {
	m.savedUser = &u
	return func() tea.Msg { return UserSaved{User: u} }
}

func (m *mockCmd) deleteProduct(id int64) tea.Cmd {
	m.deletedID = id
	return func() tea.Msg { return ProductDeleted{ID: id} }
}

func (m *mockCmd) deleteUser(id string) tea.Cmd {
	m.deletedUser = id
	return func() tea.Msg { return UserDeleted{ID: id} }
}

func (m *mockCmd) refresh() tea.Cmd {
	m.refreshCalls++
	return func() tea.Msg { return RefreshComplete{Throttled: true} }
}

func newTestApp(m *mockCmd) App {
	return NewAppWithConfig(AppConfig{
		LoadProducts:      m.loadProducts,
		LoadOrders:        m.loadOrders,
		PlaceOrder:        m.placeOrder,
		UpdateOrderStatus: m.updateStatus,
		SaveProduct:       m.saveProduct,
		SaveUser:          m.saveUser,
		DeleteProduct:     m.deleteProduct,
		DeleteUser:        m.deleteUser,
		Refresh:           m.refresh,
		Email:             "asha@example.com",
		ProductPageSize:   6,
		AdminPageSize:     5,
	})
}

func send(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	var model tea.Model = a
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	return model.(App)
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends one key press per rune.
func typeText(t *testing.T, a App, s string) App {
	t.Helper()
	for _, r := range s {
		a = send(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return a
}

func loadedApp(t *testing.T, m *mockCmd) App {
	t.Helper()
	a := newTestApp(m)
	return send(t, a,
		tea.WindowSizeMsg{Width: 100, Height: 40},
		m.loadProducts()(),
		m.loadOrders()(),
		UsersLoaded{Users: catalog.SeedUsers()},
	)
}

func TestAppInit(t *testing.T) {
	mock := &mockCmd{}
	app := newTestApp(mock)

	if cmd := app.Init(); cmd == nil {
		t.Fatal("Init should return a command")
	}
	if mock.loads != 2 {
		t.Errorf("Init should call both loaders, got %d calls", mock.loads)
	}
	if !app.ShopSnapshot().Loading {
		t.Error("shop should be loading before products arrive")
	}
}

func TestAppLoadingView(t *testing.T) {
	app := send(t, newTestApp(&mockCmd{}), tea.WindowSizeMsg{Width: 100, Height: 40})
	if !strings.Contains(app.View(), "Loading products") {
		t.Errorf("expected loading placeholder, got:\n%s", app.View())
	}
}

func TestShopCategoryFilterSortAndPaging(t *testing.T) {
	app := loadedApp(t, &mockCmd{})

	snap := app.ShopSnapshot()
	if snap.FilteredCount != 7 || snap.TotalPages != 2 || len(snap.Items) != 6 {
		t.Fatalf("OTT page = %d items of %d, %d pages", len(snap.Items), snap.FilteredCount, snap.TotalPages)
	}

	app = send(t, app, press("n"))
	if app.ShopSnapshot().PageIndex != 2 || len(app.ShopSnapshot().Items) != 1 {
		t.Errorf("page 2 = %+v", app.ShopSnapshot())
	}

	// Choosing a chip returns to page 1.
	app = send(t, app, press("f"))
	snap = app.ShopSnapshot()
	if snap.ActiveFilter != "Streaming" || snap.FilteredCount != 6 || snap.PageIndex != 1 {
		t.Errorf("Streaming chip = filter %q, %d records, page %d", snap.ActiveFilter, snap.FilteredCount, snap.PageIndex)
	}

	app = send(t, app, press("s"))
	snap = app.ShopSnapshot()
	if diff := cmp.Diff(tableview.SortSpec{Key: "price", Dir: tableview.Ascending}, snap.Sort); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
	if snap.Items[0].Name != "YouTube Premium" {
		t.Errorf("cheapest streaming product = %q", snap.Items[0].Name)
	}

	// Next category resets chip and sort.
	app = send(t, app, press("]"))
	snap = app.ShopSnapshot()
	if snap.FilteredCount != 4 || snap.ActiveFilter != tableview.DefaultAllFilter || !snap.Sort.IsZero() {
		t.Errorf("IPTV = %+v", snap)
	}
}

func TestAddToCartAndWishlist(t *testing.T) {
	app := loadedApp(t, &mockCmd{})

	app = send(t, app, press("a"), press("j"), press("a"), press("a"), press("w"))
	if app.cfg.Cart.Count() != 3 {
		t.Errorf("cart count = %d, want 3", app.cfg.Cart.Count())
	}
	if app.cfg.Cart.Quantity(2) != 2 {
		t.Errorf("Quantity(2) = %d", app.cfg.Cart.Quantity(2))
	}
	if !app.cfg.Wishlist.Contains(2) {
		t.Error("product 2 should be wishlisted")
	}
	if !strings.Contains(app.View(), "Cart (3)") {
		t.Error("tab bar should show the cart count")
	}
}

func TestOutOfStockCannotBeAdded(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	// Downloads is the fourth category; Cyber Racer is out of stock.
	app = send(t, app, press("["), press("a"))
	if app.Err() == nil {
		t.Error("expected out of stock error")
	}
	if app.cfg.Cart.Count() != 0 {
		t.Error("out of stock product was added")
	}
}

func TestCartEmptyCheckoutRejected(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = send(t, app, press("tab"), press("tab"))
	if app.Screen() != ScreenCart {
		t.Fatalf("Screen = %d, want cart", app.Screen())
	}
	app = send(t, app, press("c"))
	if !errors.Is(app.Err(), checkout.ErrEmptyCart) {
		t.Errorf("Err = %v, want ErrEmptyCart", app.Err())
	}
	// Any key dismisses the error.
	app = send(t, app, press("j"))
	if app.Err() != nil {
		t.Error("error should be dismissed on key press")
	}
}

func TestCartQuantityKeys(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = send(t, app, press("a"), press("tab"), press("tab"))

	app = send(t, app, press("+"), press("+"))
	if app.cfg.Cart.Quantity(1) != 3 {
		t.Errorf("Quantity = %d, want 3", app.cfg.Cart.Quantity(1))
	}
	app = send(t, app, press("-"))
	if app.cfg.Cart.Quantity(1) != 2 {
		t.Errorf("Quantity = %d, want 2", app.cfg.Cart.Quantity(1))
	}
	app = send(t, app, press("x"))
	if app.cfg.Cart.Count() != 0 {
		t.Error("x should remove the line")
	}
}

func TestCheckoutFlow(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)
	app = send(t, app, press("a"), press("tab"), press("tab"), press("c"))
	if app.Screen() != ScreenCheckout {
		t.Fatalf("Screen = %d, want checkout", app.Screen())
	}

	// Submitting an empty form shows inline errors and stays on shipping.
	for range 4 {
		app = send(t, app, press("enter"))
	}
	if app.checkout.flow.Step() != checkout.StepShipping || len(app.checkout.errs) == 0 {
		t.Fatalf("empty shipping form accepted: step %s, errs %v", app.checkout.flow.Step(), app.checkout.errs)
	}
	if !strings.Contains(app.View(), "Pincode must be 6 digits") {
		t.Error("inline validation message missing")
	}

	app.checkout.setFocus(0)
	for _, v := range []string{"Asha Rao", "12 MG Road, Indiranagar", "Bengaluru", "560038"} {
		app = typeText(t, app, v)
		app = send(t, app, press("enter"))
	}
	if app.checkout.flow.Step() != checkout.StepPayment {
		t.Fatalf("Step = %s, want Payment (errs %v)", app.checkout.flow.Step(), app.checkout.errs)
	}

	for _, v := range []string{"4111111111111111", "Asha Rao", "09/27", "123"} {
		app = typeText(t, app, v)
		app = send(t, app, press("enter"))
	}
	if app.checkout.flow.Step() != checkout.StepConfirmation {
		t.Fatalf("Step = %s, want Confirmation (errs %v)", app.checkout.flow.Step(), app.checkout.errs)
	}
	if !strings.Contains(app.View(), "card ending 1111") {
		t.Error("confirmation should show the card's last digits")
	}

	var cmd tea.Cmd
	var model tea.Model
	model, cmd = app.Update(press("enter"))
	app = model.(App)
	if mock.placed == nil || cmd == nil {
		t.Fatal("enter on confirmation should place the order")
	}
	app = send(t, app, cmd())
	if !strings.Contains(app.View(), "ORD-TEST") {
		t.Error("success message should show the order reference")
	}
	if app.AdminOrders().TotalCount != 7 {
		t.Errorf("admin orders = %d, want 7", app.AdminOrders().TotalCount)
	}

	app = send(t, app, press("enter"))
	if app.Screen() != ScreenOrders {
		t.Errorf("Screen = %d, want My Orders", app.Screen())
	}
}

func TestCheckoutEscGoesBack(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = send(t, app, press("a"), press("tab"), press("tab"), press("c"))
	app = send(t, app, press("q")) // typed into the name field, not quit
	if app.checkout.value(0) != "q" {
		t.Errorf("name field = %q", app.checkout.value(0))
	}
	app = send(t, app, press("esc"))
	if app.Screen() != ScreenCart {
		t.Errorf("esc at shipping should return to the cart, got %d", app.Screen())
	}
}

func TestAdminOrdersSortFilterAndStatus(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)
	app = send(t, app, press("shift+tab"))
	if app.Screen() != ScreenAdmin {
		t.Fatalf("Screen = %d, want admin", app.Screen())
	}
	app = send(t, app, press("]"))

	snap := app.AdminOrders()
	if snap.TotalCount != 6 || snap.TotalPages != 2 {
		t.Fatalf("orders = %d, pages %d", snap.TotalCount, snap.TotalPages)
	}

	app = send(t, app, press("f"), press("5"))
	snap = app.AdminOrders()
	if snap.ActiveFilter != "Pending" || snap.FilteredCount != 2 {
		t.Fatalf("Pending filter = %q, %d", snap.ActiveFilter, snap.FilteredCount)
	}
	if diff := cmp.Diff([]int64{106, 102}, []int64{snap.Items[0].ID, snap.Items[1].ID}); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	// Same column again flips to descending.
	app = send(t, app, press("5"))
	if got := app.AdminOrders().Items[0].ID; got != 102 {
		t.Errorf("descending first = %d, want 102", got)
	}

	var model tea.Model
	model, cmd := app.Update(press("enter"))
	app = model.(App)
	if mock.statusID != 102 || mock.status != catalog.StatusShipped {
		t.Errorf("UpdateOrderStatus(%d, %s)", mock.statusID, mock.status)
	}
	app = send(t, app, cmd())
	snap = app.AdminOrders()
	if snap.FilteredCount != 1 {
		t.Errorf("Pending orders after update = %d, want 1", snap.FilteredCount)
	}
}

func TestAdminRefreshKeepsPage(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = send(t, app, press("shift+tab"), press("]"), press("n"))
	if app.AdminOrders().PageIndex != 2 {
		t.Fatalf("PageIndex = %d", app.AdminOrders().PageIndex)
	}
	app = send(t, app, OrdersLoaded{Orders: catalog.SeedOrders()})
	if app.AdminOrders().PageIndex != 2 {
		t.Errorf("refresh moved the page to %d", app.AdminOrders().PageIndex)
	}
}

func TestAdminSearchCapturesKeys(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = send(t, app, press("shift+tab"), press("]"), press("/"))
	app = typeText(t, app, "alice")
	if app.Screen() != ScreenAdmin {
		t.Fatal("typing should not switch screens")
	}
	snap := app.AdminOrders()
	if snap.Query != "alice" || snap.FilteredCount != 2 {
		t.Errorf("query %q matched %d", snap.Query, snap.FilteredCount)
	}

	// esc leaves the search box; the query stays applied.
	app = send(t, app, press("esc"))
	if app.admin.capturing() || app.AdminOrders().Query != "alice" {
		t.Error("esc should release the keyboard and keep the query")
	}
}

func TestAdminDeleteProduct(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)
	app = send(t, app, press("shift+tab"), press("x"))
	if mock.deletedID != 0 {
		t.Fatalf("deleted %d before confirming", mock.deletedID)
	}
	if !strings.Contains(app.View(), `Delete product "Netflix Premium"?`) {
		t.Errorf("confirmation missing:\n%s", app.View())
	}

	model, cmd := app.Update(press("y"))
	app = model.(App)
	if mock.deletedID != 1 {
		t.Fatalf("deleted %d, want 1", mock.deletedID)
	}
	app = send(t, app, cmd())
	if app.ShopSnapshot().FilteredCount != 6 {
		t.Errorf("shop still shows %d OTT products", app.ShopSnapshot().FilteredCount)
	}
	if _, ok := app.productByID[1]; ok {
		t.Error("deleted product still indexed")
	}
}

func TestAdminDeleteCanceled(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)
	app = send(t, app, press("shift+tab"), press("x"), press("n"))
	if mock.deletedID != 0 {
		t.Errorf("deleted %d after canceling", mock.deletedID)
	}
	if app.admin.confirm != nil || !strings.Contains(app.View(), "Delete canceled") {
		t.Error("any key other than y should cancel the delete")
	}
	// The canceling key is not also applied as a page turn.
	if app.admin.products.ctrl.Snapshot().PageIndex != 1 {
		t.Errorf("PageIndex = %d", app.admin.products.ctrl.Snapshot().PageIndex)
	}
}

func TestAdminDeleteUserConfirms(t *testing.T) {
	mock := &mockCmd{}
	users := catalog.SeedUsers()
	for i := range users {
		users[i].ID = fmt.Sprintf("u%d", i+1)
	}
	app := send(t, loadedApp(t, mock), UsersLoaded{Users: users})
	app = send(t, app, press("shift+tab"), press("]"), press("]"), press("x"))
	if !strings.Contains(app.View(), "Delete user harsh@example.com?") {
		t.Fatalf("confirmation missing:\n%s", app.View())
	}
	model, cmd := app.Update(press("y"))
	if mock.deletedUser != "u1" || cmd == nil {
		t.Fatalf("deleted user %q, want u1", mock.deletedUser)
	}
	app = send(t, model.(App), cmd())
	if app.admin.users.ctrl.Snapshot().TotalCount != 4 {
		t.Errorf("users left = %d", app.admin.users.ctrl.Snapshot().TotalCount)
	}
}

// fillField types s into the focused form field and moves to the next one.
func fillField(t *testing.T, a App, s string) App {
	t.Helper()
	return send(t, typeText(t, a, s), press("enter"))
}

func TestAdminAddProduct(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)
	app = send(t, app, press("shift+tab"), press("a"))
	if app.admin.form == nil || !app.capturing() {
		t.Fatal("a should open the product form")
	}
	for _, v := range []string{"Steam Wallet", "keys", "Gaming, Gift Cards, Gaming", "500", "", "10", "", "Top up any account."} {
		app = fillField(t, app, v)
	}
	if mock.savedProduct != nil {
		t.Fatal("saved before the last field")
	}
	model, cmd := app.Update(press("enter"))
	app = model.(App)
	if cmd == nil || mock.savedProduct == nil {
		t.Fatal("enter on the last field should save")
	}
	want := catalog.Product{
		Name:        "Steam Wallet",
		Category:    "Keys",
		Tags:        []string{"Gaming", "Gift Cards"},
		Price:       500,
		Stock:       10,
		Description: "Top up any account.",
	}
	if diff := cmp.Diff(want, *mock.savedProduct); diff != "" {
		t.Errorf("saved product mismatch (-want +got):\n%s", diff)
	}

	app = send(t, app, cmd())
	if app.admin.form != nil {
		t.Error("form should close after saving")
	}
	if p, ok := app.productByID[20]; !ok || p.Name != "Steam Wallet" {
		t.Errorf("new product not indexed: %+v", p)
	}
	if n := app.admin.products.ctrl.Snapshot().TotalCount; n != 20 {
		t.Errorf("admin products = %d, want 20", n)
	}
}

func TestAdminProductFormValidation(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)
	app = send(t, app, press("shift+tab"), press("a"))
	app = fillField(t, app, "")
	app = fillField(t, app, "Books")
	app = fillField(t, app, "")
	app = fillField(t, app, "-5")
	for range 5 {
		app = send(t, app, press("enter"))
	}
	if mock.savedProduct != nil {
		t.Fatal("invalid product should not be saved")
	}
	f := app.admin.form
	if f == nil || f.saving {
		t.Fatal("form should stay open for corrections")
	}
	for _, field := range []string{"name", "category", "price"} {
		if _, bad := f.errs[field]; !bad {
			t.Errorf("no error for %s: %v", field, f.errs)
		}
	}
	if f.focus != 0 {
		t.Errorf("focus = %d, want the first bad field", f.focus)
	}
	if !strings.Contains(app.View(), "Name is required") {
		t.Error("field error not shown")
	}

	app = send(t, app, press("esc"))
	if app.admin.form != nil || app.capturing() {
		t.Error("esc should close the form")
	}
}

func TestAdminEditProduct(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)
	app = send(t, app, press("shift+tab"), press("e"))
	if app.admin.form == nil || app.admin.form.value("name") != "Netflix Premium" {
		t.Fatal("e should open the form prefilled with the selected product")
	}
	app = send(t, app, press("tab"), press("tab"), press("tab"))
	for range 3 {
		app = send(t, app, press("backspace"))
	}
	app = typeText(t, app, "450")
	app = send(t, app, press("shift+tab"), press("shift+tab"), press("shift+tab"), press("shift+tab"))
	// shift+tab from the first field wraps to the last, where enter saves.
	model, cmd := app.Update(press("enter"))
	app = model.(App)
	if mock.savedProduct == nil {
		t.Fatal("enter on the last field should save")
	}
	got := *mock.savedProduct
	if got.ID != 1 || got.Price != 450 || got.OriginalPrice != 649 {
		t.Errorf("saved %d at %v (was %v)", got.ID, got.Price, got.OriginalPrice)
	}
	if diff := cmp.Diff(seededProducts()[0].Features, got.Features); diff != "" {
		t.Errorf("features changed (-want +got):\n%s", diff)
	}

	app = send(t, app, cmd())
	if app.productByID[1].Price != 450 || app.ShopSnapshot().Items[0].Price != 450 {
		t.Error("edit not applied to the shop")
	}
	if app.admin.products.ctrl.Snapshot().TotalCount != 19 {
		t.Error("editing should not add a product")
	}
}

func TestAdminEditUser(t *testing.T) {
	mock := &mockCmd{}
	users := catalog.SeedUsers()
	for i := range users {
		users[i].ID = fmt.Sprintf("u%d", i+1)
	}
	app := send(t, loadedApp(t, mock), UsersLoaded{Users: users})
	app = send(t, app, press("shift+tab"), press("]"), press("]"), press("e"))
	if app.admin.form == nil || app.admin.form.user == nil {
		t.Fatal("e should open the user form")
	}
	app = send(t, app, press("tab"), press("tab"))
	for range len("Admin") {
		app = send(t, app, press("backspace"))
	}
	app = typeText(t, app, "customer")
	model, cmd := app.Update(press("enter"))
	app = model.(App)
	if mock.savedUser == nil {
		t.Fatal("enter on the last field should save")
	}
	if mock.savedUser.ID != "u1" || mock.savedUser.Role != catalog.RoleCustomer {
		t.Errorf("saved %+v", *mock.savedUser)
	}

	app = send(t, app, cmd())
	if app.users[0].Role != catalog.RoleCustomer || len(app.users) != 5 {
		t.Errorf("users after edit = %+v", app.users)
	}
}

func TestAdminSaveErrorKeepsForm(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = send(t, app, press("shift+tab"), press("e"))
	app.admin.form.saving = true
	app = send(t, app, ProductSaved{Err: errors.New("disk full")})
	if app.admin.form == nil || app.admin.form.saving {
		t.Fatal("a failed save should leave the form open and editable")
	}
	if app.Err() == nil || !strings.Contains(app.View(), "disk full") {
		t.Error("save error not shown")
	}
}

func TestAdminCursorStartsOnFirstRow(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	if c := app.admin.products.table.Cursor(); c != 0 {
		t.Fatalf("cursor after load = %d, want 0", c)
	}
	if p, ok := app.admin.products.selected(); !ok || p.ID != 1 {
		t.Errorf("selected %d, want 1", p.ID)
	}

	// A search that empties the table and is then cleared lands on the first row.
	app = send(t, app, press("shift+tab"), press("/"))
	app = typeText(t, app, "zzz")
	if n := app.admin.products.ctrl.Snapshot().FilteredCount; n != 0 {
		t.Fatalf("zzz matched %d", n)
	}
	for range 3 {
		app = send(t, app, press("backspace"))
	}
	if c := app.admin.products.table.Cursor(); c != 0 {
		t.Errorf("cursor after clearing the search = %d, want 0", c)
	}
}

func TestShopRefreshKeepsPageAndSelection(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = send(t, app, press("n"))
	app = send(t, app, ProductsLoaded{Products: seededProducts()})
	if app.ShopSnapshot().PageIndex != 2 {
		t.Fatalf("refresh moved the shop to page %d", app.ShopSnapshot().PageIndex)
	}

	// The cursor stays on the same product when rows above it go away.
	app = send(t, app, press("p"), press("j"), press("j"))
	if p, _ := app.shop.selected(); p.ID != 3 {
		t.Fatalf("selected %d, want 3", p.ID)
	}
	app = send(t, app, ProductsLoaded{Products: seededProducts()[1:]})
	if p, ok := app.shop.selected(); !ok || p.ID != 3 {
		t.Errorf("after reload selected %d, want 3", p.ID)
	}
}

func TestSearchRefreshKeepsPage(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	app = send(t, app, press("tab"), press("n"))
	if app.Screen() != ScreenSearch || app.SearchSnapshot().PageIndex != 2 {
		t.Fatalf("screen %v page %d", app.Screen(), app.SearchSnapshot().PageIndex)
	}
	app = send(t, app, ProductsLoaded{Products: seededProducts()})
	if app.SearchSnapshot().PageIndex != 2 {
		t.Errorf("refresh moved search to page %d", app.SearchSnapshot().PageIndex)
	}
}

func TestEmptyTableShowsNoData(t *testing.T) {
	app := send(t, newTestApp(&mockCmd{}),
		tea.WindowSizeMsg{Width: 100, Height: 40},
		OrdersLoaded{Orders: nil},
		press("shift+tab"), press("]"))
	if !strings.Contains(app.View(), "No data available.") {
		t.Errorf("expected empty state, got:\n%s", app.View())
	}
}

func TestLoadErrorShown(t *testing.T) {
	app := send(t, newTestApp(&mockCmd{}),
		tea.WindowSizeMsg{Width: 100, Height: 40},
		ProductsLoaded{Err: errors.New("connection refused")})
	if app.Err() == nil {
		t.Fatal("load error should be shown")
	}
	if !strings.Contains(app.View(), "connection refused") {
		t.Error("error bar missing")
	}
}

func TestRefreshKey(t *testing.T) {
	mock := &mockCmd{}
	app := loadedApp(t, mock)
	model, cmd := app.Update(press("r"))
	if mock.refreshCalls != 1 || cmd == nil {
		t.Fatal("r should trigger a refresh")
	}
	app = send(t, model.(App), cmd())
	if !strings.Contains(app.View(), "Refresh skipped") {
		t.Error("throttled refresh should be reported")
	}
}

func TestQuit(t *testing.T) {
	app := loadedApp(t, &mockCmd{})
	_, cmd := app.Update(press("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
