// Package checkout validates the three-step checkout form and turns a cart
// into a placed order.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/abelbrown/storefront/internal/cart"
	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/logging"
)

// ShippingFee is charged on every non-empty order.
const ShippingFee = 50.0

// ErrEmptyCart is returned when placing an order with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// Step is a page of the checkout flow.
type Step int

const (
	StepShipping Step = iota
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepShipping:
		return "Shipping"
	case StepPayment:
		return "Payment"
	case StepConfirmation:
		return "Confirmation"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Shipping is the delivery address form.
type Shipping struct {
	FullName string
	Address  string
	City     string
	Pincode  string
}

// Payment is the card form.
type Payment struct {
	CardNumber string
	CardHolder string
	Expiry     string // MM/YY or MMYY
	CVV        string
}

// ValidationErrors maps form field names to messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + v[f]
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

var (
	digitsRe = regexp.MustCompile(`^[0-9]+$`)
	expiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/?([0-9]{2})$`)
)

// ValidateShipping checks the shipping form.
func ValidateShipping(s Shipping) error {
	errs := ValidationErrors{}
	if minLen(s.FullName, 3) {
		errs["fullName"] = "Full name must be at least 3 characters"
	}
	if minLen(s.Address, 10) {
		errs["address"] = "Address must be at least 10 characters"
	}
	if minLen(s.City, 2) {
		errs["city"] = "City is required"
	}
	if pin := strings.TrimSpace(s.Pincode); len(pin) != 6 || !digitsRe.MatchString(pin) {
		errs["pincode"] = "Pincode must be 6 digits"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ValidatePayment checks the payment form.
func ValidatePayment(p Payment) error {
	errs := ValidationErrors{}
	card := strings.ReplaceAll(p.CardNumber, " ", "")
	if len(card) != 16 || !digitsRe.MatchString(card) {
		errs["cardNumber"] = "Card number must be 16 digits"
	}
	if minLen(p.CardHolder, 3) {
		errs["cardHolder"] = "Cardholder name is required"
	}
	if !expiryRe.MatchString(strings.TrimSpace(p.Expiry)) {
		errs["expiry"] = "Expiry must be MM/YY"
	}
	if cvv := strings.TrimSpace(p.CVV); len(cvv) != 3 || !digitsRe.MatchString(cvv) {
		errs["cvv"] = "CVV must be 3 digits"
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// minLen reports whether s is shorter than n characters after trimming.
func minLen(s string, n int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) < n
}

// Totals is the price breakdown shown beside the form.
type Totals struct {
	Subtotal float64
	Shipping float64
	Total    float64
}

// ComputeTotals prices lines. Shipping is charged only when there is
// something to ship.
func ComputeTotals(lines []catalog.OrderLine) Totals {
	var t Totals
	for _, l := range lines {
		t.Subtotal += l.Subtotal()
	}
	if t.Subtotal > 0 {
		t.Shipping = ShippingFee
	}
	t.Total = t.Subtotal + t.Shipping
	return t
}

// Lines prices the cart against products. Products that no longer exist
// are dropped.
func Lines(c *cart.Cart, products map[int64]catalog.Product) []catalog.OrderLine {
	var out []catalog.OrderLine
	for _, l := range c.Lines() {
		p, ok := products[l.ProductID]
		if !ok {
			continue
		}
		out = append(out, catalog.OrderLine{
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  l.Quantity,
			UnitPrice: p.Price,
		})
	}
	return out
}

// Flow is the checkout state machine: Shipping, then Payment, then
// Confirmation. A step only advances when its form validates.
type Flow struct {
	step     Step
	shipping Shipping
	payment  Payment
}

// NewFlow starts at the shipping step.
func NewFlow() *Flow { return &Flow{step: StepShipping} }

// Step returns the current step.
func (f *Flow) Step() Step { return f.step }

// Shipping returns the last accepted shipping form.
func (f *Flow) Shipping() Shipping { return f.shipping }

// CardLast4 returns the last four digits of the accepted card, for the
// confirmation summary.
func (f *Flow) CardLast4() string {
	card := strings.ReplaceAll(f.payment.CardNumber, " ", "")
	if len(card) < 4 {
		return ""
	}
	return card[len(card)-4:]
}

// SubmitShipping validates s and moves to payment.
func (f *Flow) SubmitShipping(s Shipping) error {
	if f.step != StepShipping {
		return fmt.Errorf("submit shipping: at %s step", f.step)
	}
	if err := ValidateShipping(s); err != nil {
		return err
	}
	f.shipping = s
	f.step = StepPayment
	return nil
}

// SubmitPayment validates p and moves to confirmation.
func (f *Flow) SubmitPayment(p Payment) error {
	if f.step != StepPayment {
		return fmt.Errorf("submit payment: at %s step", f.step)
	}
	if err := ValidatePayment(p); err != nil {
		return err
	}
	f.payment = p
	f.step = StepConfirmation
	return nil
}

// Back returns to the previous step. It does nothing on the first step.
func (f *Flow) Back() {
	if f.step > StepShipping {
		f.step--
	}
}

// OrderCreator persists orders.
type OrderCreator interface {
	CreateOrder(ctx context.Context, o catalog.Order) (catalog.Order, error)
}

// PlaceOrder creates a Pending order from the cart and clears the cart.
// The cart is left alone if the order cannot be stored.
func PlaceOrder(ctx context.Context, orders OrderCreator, c *cart.Cart, products map[int64]catalog.Product, ship Shipping, email string) (catalog.Order, error) {
	if err := ValidateShipping(ship); err != nil {
		return catalog.Order{}, err
	}
	lines := Lines(c, products)
	if len(lines) == 0 {
		return catalog.Order{}, ErrEmptyCart
	}
	totals := ComputeTotals(lines)

	o, err := orders.CreateOrder(ctx, catalog.Order{
		Customer: strings.TrimSpace(ship.FullName),
		Email:    email,
		Status:   catalog.StatusPending,
		Total:    totals.Total,
		Address:  fmt.Sprintf("%s, %s %s", strings.TrimSpace(ship.Address), strings.TrimSpace(ship.City), strings.TrimSpace(ship.Pincode)),
		Lines:    lines,
	})
	if err != nil {
		return catalog.Order{}, fmt.Errorf("place order: %w", err)
	}

	if err := c.Clear(); err != nil {
		logging.Warn("checkout: order placed but cart not cleared", "order", o.Reference, "error", err)
	}
	logging.Info("checkout: order placed", "order", o.Reference, "total", o.Total, "lines", len(o.Lines))
	return o, nil
}

// Submit places the order once the flow has reached Confirmation.
func (f *Flow) Submit(ctx context.Context, orders OrderCreator, c *cart.Cart, products map[int64]catalog.Product, email string) (catalog.Order, error) {
	if f.step != StepConfirmation {
		return catalog.Order{}, fmt.Errorf("submit: at %s step", f.step)
	}
	return PlaceOrder(ctx, orders, c, products, f.shipping, email)
}
