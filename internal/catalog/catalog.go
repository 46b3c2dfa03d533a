// Package catalog defines the storefront's records: products, orders,
// users, and the category tree the shop pages are built from.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Product is a sellable digital good.
type Product struct {
	ID            int64
	Name          string
	Category      string   // top-level category: OTT, IPTV, Keys, Downloads
	Tags          []string // sub-categories the product appears under
	Price         float64
	OriginalPrice float64 // 0 when the product is not discounted
	Stock         int
	Description   string
	Image         string
	Features      []Feature
}

// Feature is one bullet on a product's detail page.
type Feature struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// DiscountPercent returns the whole-number discount from OriginalPrice,
// or 0 when there is none.
func (p Product) DiscountPercent() int {
	if p.OriginalPrice <= 0 || p.OriginalPrice <= p.Price {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}

// ErrInvalidProduct is wrapped by ValidateProduct failures.
var ErrInvalidProduct = errors.New("invalid product")

// ValidateProduct checks the fields the admin form requires.
func ValidateProduct(p Product) error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case strings.TrimSpace(p.Category) == "":
		return fmt.Errorf("%w: category is required", ErrInvalidProduct)
	case p.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidProduct)
	case p.OriginalPrice < 0:
		return fmt.Errorf("%w: original price must not be negative", ErrInvalidProduct)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidProduct)
	}
	return nil
}

// ParseTags splits a comma separated tag list, dropping blanks and
// duplicates while keeping the first occurrence's position.
func ParseTags(s string) []string {
	var tags []string
	for _, part := range strings.Split(s, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" || slices.Contains(tags, tag) {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}

// ParseFeatures reads "Title: description" pairs separated by semicolons,
// as typed into the admin form. Pairs with neither part are dropped.
func ParseFeatures(s string) []Feature {
	var out []Feature
	for _, part := range strings.Split(s, ";") {
		title, desc, _ := strings.Cut(part, ":")
		f := Feature{Title: strings.TrimSpace(title), Desc: strings.TrimSpace(desc)}
		if f.Title == "" && f.Desc == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FormatFeatures is the inverse of ParseFeatures.
func FormatFeatures(features []Feature) string {
	parts := make([]string, len(features))
	for i, f := range features {
		parts[i] = f.Title + ": " + f.Desc
	}
	return strings.Join(parts, "; ")
}

// OrderStatus is where an order is in fulfilment.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusShipped   OrderStatus = "Shipped"
	StatusDelivered OrderStatus = "Delivered"
	StatusCanceled  OrderStatus = "Canceled"
)

// OrderStatuses lists every status in display order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{StatusPending, StatusShipped, StatusDelivered, StatusCanceled}
}

// ParseOrderStatus matches s case-insensitively against the known statuses.
func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, st := range OrderStatuses() {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Order is a placed purchase.
type Order struct {
	ID        int64
	Reference string // customer-facing identifier
	Customer  string
	Email     string
	Status    OrderStatus
	Total     float64
	Date      time.Time
	Address   string
	Lines     []OrderLine
}

// OrderLine is one product within an order.
type OrderLine struct {
	ProductID int64
	Name      string
	Quantity  int
	UnitPrice float64
}

// Subtotal returns UnitPrice * Quantity.
func (l OrderLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

// Role is a user's access level. It is displayed and filtered on only.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleCustomer Role = "Customer"
)

// Roles lists every role in display order.
func Roles() []Role {
	return []Role{RoleAdmin, RoleCustomer}
}

// ParseRole matches s case-insensitively against the known roles. A blank
// role means Customer.
func ParseRole(s string) (Role, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RoleCustomer, nil
	}
	for _, r := range Roles() {
		if strings.EqualFold(s, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// ErrInvalidUser is wrapped by ValidateUser failures.
var ErrInvalidUser = errors.New("invalid user")

// ValidateUser checks the fields the admin user form requires.
func ValidateUser(u User) error {
	email := strings.TrimSpace(u.Email)
	switch {
	case strings.TrimSpace(u.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	case email == "":
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	case !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@"):
		return fmt.Errorf("%w: email %q is not an address", ErrInvalidUser, email)
	case u.Role != "" && !slices.Contains(Roles(), u.Role):
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUser, u.Role)
	}
	return nil
}

// User is a registered account.
type User struct {
	ID        string
	Name      string
	Email     string
	Role      Role
	CreatedAt time.Time
}

// Category is a top-level shop section and its sub-category chips.
// The first sub-category is always "All".
type Category struct {
	Name          string
	Title         string
	SubCategories []string
}

// DefaultCategories returns the storefront's category tree.
func DefaultCategories() []Category {
	return []Category{
		{Name: "OTT", Title: "OTT Platforms", SubCategories: []string{"All", "Streaming", "Music", "Sports"}},
		{Name: "IPTV", Title: "IPTV Subscriptions", SubCategories: []string{"All", "Basic", "Premium", "Sports", "International"}},
		{Name: "Keys", Title: "Product Keys", SubCategories: []string{"All", "OS", "Office", "Creative", "Security"}},
		{Name: "Downloads", Title: "Downloads", SubCategories: []string{"All", "Games", "Software", "Movies", "Music"}},
	}
}

// FindCategory returns the category called name.
func FindCategory(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}
