package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/abelbrown/storefront/internal/catalog"
)

// RecordSource is used ONLY for testing callers.
// It defines the subset of Store methods the views and coordinator need.
type RecordSource interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]catalog.Product, error)
	Orders(ctx context.Context) ([]catalog.Order, error)
	Users(ctx context.Context) ([]catalog.User, error)
	LoadState(ctx context.Context, key string) ([]byte, error)
	SaveState(ctx context.Context, key string, data []byte) error
}

// Verify Store implements RecordSource at compile time.
var _ RecordSource = (*Store)(nil)

func openTest(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen(t *testing.T) {
	st := openTest(t)

	for _, table := range []string{"products", "product_tags", "orders", "order_lines", "users", "app_state"} {
		var name string
		err := st.db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("%s table not created: %v", table, err)
		}
	}
	if st.Backend() != "sqlite" {
		t.Errorf("Backend() = %q, want sqlite", st.Backend())
	}
}

func TestCreateTablesIdempotent(t *testing.T) {
	st := openTest(t)

	if err := st.createTables(); err != nil {
		t.Fatalf("second createTables failed: %v", err)
	}
	if err := st.createTables(); err != nil {
		t.Fatalf("third createTables failed: %v", err)
	}
}

func TestIsPostgres(t *testing.T) {
	cases := map[string]bool{
		"postgres://u:p@localhost/db":   true,
		"postgresql://localhost/db":     true,
		":memory:":                      false,
		"/home/me/.storefront/store.db": false,
		"":                              false,
	}
	for dsn, want := range cases {
		if got := IsPostgres(dsn); got != want {
			t.Errorf("IsPostgres(%q) = %v, want %v", dsn, got, want)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{dialect: dialectPostgres}
	got := pg.rebind("SELECT a FROM t WHERE b = ? AND c IN (?, ?)")
	want := "SELECT a FROM t WHERE b = $1 AND c IN ($2, $3)"
	if got != want {
		t.Errorf("rebind = %q, want %q", got, want)
	}

	lite := &Store{dialect: dialectSQLite}
	if got := lite.rebind("WHERE b = ?"); got != "WHERE b = ?" {
		t.Errorf("sqlite rebind changed query: %q", got)
	}
}

func TestSaveProductInsertAndGet(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	p := catalog.Product{
		Name:          "Netflix Premium",
		Category:      "OTT",
		Tags:          []string{"Streaming", "Sports"},
		Price:         499,
		OriginalPrice: 649,
		Stock:         10,
		Description:   "4K",
		Features:      []catalog.Feature{{Title: "Instant", Desc: "Minutes"}},
	}
	id, err := st.SaveProduct(ctx, p)
	if err != nil {
		t.Fatalf("SaveProduct failed: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero ID")
	}

	got, err := st.Product(ctx, id)
	if err != nil {
		t.Fatalf("Product failed: %v", err)
	}
	p.ID = id
	if diff := cmp.Diff(p, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveProductUpdateReplacesTags(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	id, err := st.SaveProduct(ctx, catalog.Product{Name: "A", Category: "OTT", Tags: []string{"Music", "Streaming"}})
	if err != nil {
		t.Fatalf("SaveProduct failed: %v", err)
	}

	_, err = st.SaveProduct(ctx, catalog.Product{ID: id, Name: "A2", Category: "OTT", Tags: []string{"Sports"}, Price: 5})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := st.Product(ctx, id)
	if err != nil {
		t.Fatalf("Product failed: %v", err)
	}
	if got.Name != "A2" || got.Price != 5 {
		t.Errorf("update not applied: %+v", got)
	}
	if diff := cmp.Diff([]string{"Sports"}, got.Tags); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveProductValidation(t *testing.T) {
	st := openTest(t)

	_, err := st.SaveProduct(context.Background(), catalog.Product{Category: "OTT"})
	if !errors.Is(err, catalog.ErrInvalidProduct) {
		t.Errorf("expected ErrInvalidProduct, got %v", err)
	}
}

func TestSaveProductUnknownID(t *testing.T) {
	st := openTest(t)

	_, err := st.SaveProduct(context.Background(), catalog.Product{ID: 999, Name: "x", Category: "OTT"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProductsByCategory(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	if err := st.Seed(ctx, catalog.SeedProducts(), nil, nil); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	ott, err := st.ProductsByCategory(ctx, "OTT")
	if err != nil {
		t.Fatalf("ProductsByCategory failed: %v", err)
	}
	if len(ott) != 7 {
		t.Errorf("expected 7 OTT products, got %d", len(ott))
	}
	for _, p := range ott {
		if p.Category != "OTT" {
			t.Errorf("product %q has category %q", p.Name, p.Category)
		}
		if len(p.Tags) == 0 {
			t.Errorf("product %q lost its tags", p.Name)
		}
	}
	// Insertion order survives.
	if ott[0].Name != "Netflix Premium" {
		t.Errorf("first product = %q, want Netflix Premium", ott[0].Name)
	}

	none, err := st.ProductsByCategory(ctx, "Nope")
	if err != nil {
		t.Fatalf("ProductsByCategory failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", none)
	}

	cats, err := st.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories failed: %v", err)
	}
	if diff := cmp.Diff([]string{"Downloads", "IPTV", "Keys", "OTT"}, cats); diff != "" {
		t.Errorf("categories mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteProduct(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	id, err := st.SaveProduct(ctx, catalog.Product{Name: "x", Category: "OTT", Tags: []string{"Music"}})
	if err != nil {
		t.Fatalf("SaveProduct failed: %v", err)
	}
	if err := st.DeleteProduct(ctx, id); err != nil {
		t.Fatalf("DeleteProduct failed: %v", err)
	}
	if _, err := st.Product(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := st.DeleteProduct(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}

	var tags int
	st.db.QueryRow("SELECT COUNT(*) FROM product_tags WHERE product_id = ?", id).Scan(&tags)
	if tags != 0 {
		t.Errorf("expected tags removed, %d left", tags)
	}
}

func TestCreateOrder(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	o, err := st.CreateOrder(ctx, catalog.Order{
		Customer: "Asha",
		Email:    "Asha@Example.com",
		Total:    549,
		Lines: []catalog.OrderLine{
			{ProductID: 1, Name: "Netflix Premium", Quantity: 1, UnitPrice: 499},
		},
	})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if o.ID == 0 || o.Reference == "" || o.Date.IsZero() {
		t.Errorf("CreateOrder did not fill defaults: %+v", o)
	}
	if o.Status != catalog.StatusPending {
		t.Errorf("Status = %q, want Pending", o.Status)
	}

	mine, err := st.OrdersByEmail(ctx, "asha@example.com")
	if err != nil {
		t.Fatalf("OrdersByEmail failed: %v", err)
	}
	if len(mine) != 1 {
		t.Fatalf("expected 1 order, got %d", len(mine))
	}
	if diff := cmp.Diff(o.Lines, mine[0].Lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if !mine[0].Date.Equal(o.Date.Truncate(time.Second)) {
		t.Errorf("Date = %v, want %v", mine[0].Date, o.Date)
	}
}

func TestOrdersNewestFirst(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	if err := st.Seed(ctx, nil, catalog.SeedOrders(), nil); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	orders, err := st.Orders(ctx)
	if err != nil {
		t.Fatalf("Orders failed: %v", err)
	}
	if len(orders) != 6 {
		t.Fatalf("expected 6 orders, got %d", len(orders))
	}
	for i := 1; i < len(orders); i++ {
		if orders[i-1].Date.Before(orders[i].Date) {
			t.Errorf("orders not newest first at %d", i)
		}
	}

	// Seeded IDs are kept and new orders continue after them.
	o, err := st.CreateOrder(ctx, catalog.Order{Customer: "New", Email: "n@example.com"})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if o.ID <= 106 {
		t.Errorf("new order ID = %d, want > 106", o.ID)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	o, err := st.CreateOrder(ctx, catalog.Order{Customer: "A", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("CreateOrder failed: %v", err)
	}
	if err := st.UpdateOrderStatus(ctx, o.ID, catalog.StatusShipped); err != nil {
		t.Fatalf("UpdateOrderStatus failed: %v", err)
	}
	orders, _ := st.Orders(ctx)
	if orders[0].Status != catalog.StatusShipped {
		t.Errorf("Status = %q, want Shipped", orders[0].Status)
	}

	if err := st.UpdateOrderStatus(ctx, o.ID, "Lost"); err == nil {
		t.Error("expected error for unknown status")
	}
	if err := st.UpdateOrderStatus(ctx, 9999, catalog.StatusShipped); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveUser(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	u, err := st.SaveUser(ctx, catalog.User{Name: " Priya ", Email: "Priya@Example.com"})
	if err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if u.ID == "" || u.Role != catalog.RoleCustomer || u.Email != "priya@example.com" || u.Name != "Priya" {
		t.Errorf("SaveUser normalisation: %+v", u)
	}

	u.Role = catalog.RoleAdmin
	if _, err := st.SaveUser(ctx, u); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	users, err := st.Users(ctx)
	if err != nil {
		t.Fatalf("Users failed: %v", err)
	}
	if len(users) != 1 || users[0].Role != catalog.RoleAdmin {
		t.Errorf("Users = %+v", users)
	}

	// Duplicate email is rejected.
	if _, err := st.SaveUser(ctx, catalog.User{Name: "Other", Email: "priya@example.com"}); err == nil {
		t.Error("expected duplicate email error")
	}
	if _, err := st.SaveUser(ctx, catalog.User{Name: "", Email: "x@example.com"}); err == nil {
		t.Error("expected missing name error")
	}
	if _, err := st.SaveUser(ctx, catalog.User{Name: "Bad", Email: "not-an-address"}); !errors.Is(err, catalog.ErrInvalidUser) {
		t.Errorf("bad email err = %v, want ErrInvalidUser", err)
	}
}

func TestDeleteUser(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	u, err := st.SaveUser(ctx, catalog.User{Name: "Jay", Email: "jay@example.com"})
	if err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	if err := st.DeleteUser(ctx, u.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}
	if err := st.DeleteUser(ctx, u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestStateRoundTrip(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	data, err := st.LoadState(ctx, "cart")
	if err != nil || data != nil {
		t.Fatalf("LoadState on empty = %q, %v", data, err)
	}

	if err := st.SaveState(ctx, "cart", []byte(`[1]`)); err != nil {
		t.Fatalf("SaveState failed: %v", err)
	}
	if err := st.SaveState(ctx, "cart", []byte(`[1,2]`)); err != nil {
		t.Fatalf("SaveState overwrite failed: %v", err)
	}

	data, err = st.LoadState(ctx, "cart")
	if err != nil {
		t.Fatalf("LoadState failed: %v", err)
	}
	if string(data) != `[1,2]` {
		t.Errorf("LoadState = %q, want [1,2]", data)
	}
}

func TestSeedAndIsEmpty(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	empty, err := st.IsEmpty(ctx)
	if err != nil || !empty {
		t.Fatalf("IsEmpty = %v, %v; want true", empty, err)
	}

	if err := st.Seed(ctx, catalog.SeedProducts(), catalog.SeedOrders(), catalog.SeedUsers()); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	empty, err = st.IsEmpty(ctx)
	if err != nil || empty {
		t.Fatalf("IsEmpty after seed = %v, %v; want false", empty, err)
	}
	users, _ := st.Users(ctx)
	if len(users) != len(catalog.SeedUsers()) {
		t.Errorf("expected %d users, got %d", len(catalog.SeedUsers()), len(users))
	}
}

func TestSeedRollsBackOnError(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	users := []catalog.User{
		{Name: "A", Email: "dup@example.com", Role: catalog.RoleCustomer},
		{Name: "B", Email: "dup@example.com", Role: catalog.RoleCustomer},
	}
	if err := st.Seed(ctx, catalog.SeedProducts(), nil, users); err == nil {
		t.Fatal("expected duplicate email to fail the seed")
	}
	empty, _ := st.IsEmpty(ctx)
	if !empty {
		t.Error("products should be rolled back with the failed seed")
	}
}

func TestConcurrentAccess(t *testing.T) {
	st := openTest(t)
	ctx := context.Background()

	var wg sync.WaitGroup

	// Channel to collect errors from goroutines (testing.T methods are not goroutine-safe)
	errCh := make(chan error, 20)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			p := catalog.Product{Name: fmt.Sprintf("P%d", n), Category: "OTT", Tags: []string{"Music"}}
			if _, err := st.SaveProduct(ctx, p); err != nil {
				errCh <- fmt.Errorf("SaveProduct failed for writer %d: %v", n, err)
			}
		}(i)
	}

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := st.Products(ctx); err != nil {
				errCh <- fmt.Errorf("Products failed: %v", err)
			}
		}()
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Error(err)
	}

	products, err := st.Products(ctx)
	if err != nil {
		t.Fatalf("Products failed: %v", err)
	}
	if len(products) != 10 {
		t.Errorf("expected 10 products, got %d", len(products))
	}
}
