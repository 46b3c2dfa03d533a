package catalog

import (
	"strconv"
	"strings"

	"github.com/abelbrown/storefront/internal/tableview"
)

// ProductColumns are the admin product table columns. The shop pages sort
// on the same keys.
func ProductColumns() []tableview.Column[Product] {
	return []tableview.Column[Product]{
		{Key: "id", Label: "ID", Sortable: true, Width: 6, Value: func(p Product) tableview.Value { return tableview.Int(p.ID) }},
		{Key: "name", Label: "Name", Sortable: true, Width: 28, Value: func(p Product) tableview.Value { return tableview.Str(p.Name) }},
		{Key: "category", Label: "Category", Sortable: true, Width: 12, Value: func(p Product) tableview.Value { return tableview.Str(p.Category) }},
		{Key: "price", Label: "Price", Sortable: true, Width: 10, Value: func(p Product) tableview.Value { return tableview.Num(p.Price) }},
		{Key: "stock", Label: "Stock", Sortable: true, Width: 7, Value: func(p Product) tableview.Value { return tableview.Int(int64(p.Stock)) }},
	}
}

// OrderColumns are the admin order table columns.
func OrderColumns() []tableview.Column[Order] {
	return []tableview.Column[Order]{
		{Key: "id", Label: "Order ID", Sortable: true, Width: 10, Value: func(o Order) tableview.Value { return tableview.Int(o.ID) }},
		{Key: "customer", Label: "Customer", Sortable: true, Width: 20, Value: func(o Order) tableview.Value { return tableview.Str(o.Customer) }},
		{Key: "date", Label: "Date", Sortable: true, Width: 12, Value: func(o Order) tableview.Value {
			if o.Date.IsZero() {
				return tableview.Missing()
			}
			return tableview.Int(o.Date.Unix())
		}},
		{Key: "status", Label: "Status", Sortable: true, Width: 11, Value: func(o Order) tableview.Value { return tableview.Str(string(o.Status)) }},
		{Key: "total", Label: "Total", Sortable: true, Width: 10, Value: func(o Order) tableview.Value { return tableview.Num(o.Total) }},
	}
}

// UserColumns are the admin user table columns.
func UserColumns() []tableview.Column[User] {
	return []tableview.Column[User]{
		{Key: "name", Label: "Name", Sortable: true, Width: 22, Value: func(u User) tableview.Value { return tableview.Str(u.Name) }},
		{Key: "email", Label: "Email", Sortable: true, Width: 28, Value: func(u User) tableview.Value { return tableview.Str(u.Email) }},
		{Key: "role", Label: "Role", Sortable: true, Width: 10, Value: func(u User) tableview.Value { return tableview.Str(string(u.Role)) }},
		{Key: "joined", Label: "Joined", Sortable: true, Width: 12, Value: func(u User) tableview.Value {
			if u.CreatedAt.IsZero() {
				return tableview.Missing()
			}
			return tableview.Int(u.CreatedAt.Unix())
		}},
	}
}

// ProductTags is the tag set shop pages filter on.
func ProductTags(p Product) []string { return p.Tags }

// ProductCategoryTag filters products by top-level category.
func ProductCategoryTag(p Product) []string { return []string{p.Category} }

// OrderStatusTag filters orders by status.
func OrderStatusTag(o Order) []string { return []string{string(o.Status)} }

// UserRoleTag filters users by role.
func UserRoleTag(u User) []string { return []string{string(u.Role)} }

// MatchProduct matches the query against name, description, and tags.
func MatchProduct(p Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

// MatchOrder matches the query against the customer name, the order ID,
// or the reference.
func MatchOrder(o Order, q string) bool {
	return strings.Contains(strings.ToLower(o.Customer), q) ||
		strings.Contains(strconv.FormatInt(o.ID, 10), q) ||
		strings.Contains(strings.ToLower(o.Reference), q)
}

// MatchUser matches the query against name or email.
func MatchUser(u User, q string) bool {
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q)
}

// SortOption is one entry of the shop's "Sort By" dropdown.
type SortOption struct {
	Label string
	Spec  tableview.SortSpec
}

// SortOptions returns the dropdown entries. "Featured" keeps catalog order.
func SortOptions() []SortOption {
	return []SortOption{
		{Label: "Featured"},
		{Label: "Price: Low to High", Spec: tableview.SortSpec{Key: "price", Dir: tableview.Ascending}},
		{Label: "Price: High to Low", Spec: tableview.SortSpec{Key: "price", Dir: tableview.Descending}},
		{Label: "Name: A-Z", Spec: tableview.SortSpec{Key: "name", Dir: tableview.Ascending}},
		{Label: "Name: Z-A", Spec: tableview.SortSpec{Key: "name", Dir: tableview.Descending}},
	}
}

// ParseSort reads "key" or "key:asc|desc" as used on the command line.
func ParseSort(s string) (tableview.SortSpec, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return tableview.SortSpec{}, true
	}
	key, dir, _ := strings.Cut(s, ":")
	spec := tableview.SortSpec{Key: strings.ToLower(key)}
	switch strings.ToLower(dir) {
	case "", "asc":
		spec.Dir = tableview.Ascending
	case "desc":
		spec.Dir = tableview.Descending
	default:
		return tableview.SortSpec{}, false
	}
	return spec, true
}
