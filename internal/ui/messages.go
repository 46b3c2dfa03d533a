// Package ui provides the Bubble Tea TUI for the storefront.
package ui

import "github.com/abelbrown/storefront/internal/catalog"

// ProductsLoaded is sent when the product list has been read from the store.
type ProductsLoaded struct {
	Products []catalog.Product
	Err      error
}

// OrdersLoaded is sent when all orders have been read (admin).
type OrdersLoaded struct {
	Orders []catalog.Order
	Err    error
}

// UsersLoaded is sent when the user list has been read (admin).
type UsersLoaded struct {
	Users []catalog.User
	Err   error
}

// MyOrdersLoaded is sent with the signed-in customer's order history.
type MyOrdersLoaded struct {
	Orders []catalog.Order
	Err    error
}

// OrderPlaced is sent when checkout has stored an order.
type OrderPlaced struct {
	Order catalog.Order
	Err   error
}

// OrderStatusUpdated is sent after an admin changed an order's status.
type OrderStatusUpdated struct {
	ID     int64
	Status catalog.OrderStatus
	Err    error
}

// ProductSaved is sent after an admin added or edited a product. Product
// carries the stored ID.
type ProductSaved struct {
	Product catalog.Product
	Err     error
}

// UserSaved is sent after an admin added or edited a user.
type UserSaved struct {
	User catalog.User
	Err  error
}

// ProductDeleted is sent after an admin removed a product.
type ProductDeleted struct {
	ID  int64
	Err error
}

// UserDeleted is sent after an admin removed a user.
type UserDeleted struct {
	ID  string
	Err error
}

// RefreshComplete is sent when a background refresh cycle finishes.
// Throttled is set when the refresh was dropped by the rate limiter.
type RefreshComplete struct {
	Datasets  int
	Throttled bool
	Err       error
}
