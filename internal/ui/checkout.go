package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/checkout"
)

// checkoutAction tells the app what a key press in the form asked for.
type checkoutAction int

const (
	checkoutNone checkoutAction = iota
	checkoutLeave
	checkoutPlace
)

// formField is one labelled input of a checkout step.
type formField struct {
	name  string // validation key
	label string
	input textinput.Model
}

// checkoutScreen renders the checkout flow one step at a time.
type checkoutScreen struct {
	flow    *checkout.Flow
	fields  []formField
	focus   int
	errs    checkout.ValidationErrors
	placing bool
	placed  *catalog.Order
}

func newCheckoutScreen() *checkoutScreen {
	s := &checkoutScreen{}
	s.reset()
	return s
}

// reset starts a fresh flow at the shipping step.
func (s *checkoutScreen) reset() {
	s.flow = checkout.NewFlow()
	s.placing = false
	s.placed = nil
	s.buildFields()
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.Prompt = ""
	return in
}

// buildFields creates the inputs for the current step.
func (s *checkoutScreen) buildFields() {
	s.errs = nil
	s.focus = 0
	switch s.flow.Step() {
	case checkout.StepShipping:
		prev := s.flow.Shipping()
		s.fields = []formField{
			{name: "fullName", label: "Full name", input: newInput("Asha Rao", 60)},
			{name: "address", label: "Address", input: newInput("12 MG Road, Indiranagar", 120)},
			{name: "city", label: "City", input: newInput("Bengaluru", 40)},
			{name: "pincode", label: "Pincode", input: newInput("560038", 6)},
		}
		for i, v := range []string{prev.FullName, prev.Address, prev.City, prev.Pincode} {
			s.fields[i].input.SetValue(v)
		}
	case checkout.StepPayment:
		cvv := newInput("123", 3)
		cvv.EchoMode = textinput.EchoPassword
		s.fields = []formField{
			{name: "cardNumber", label: "Card number", input: newInput("4111 1111 1111 1111", 19)},
			{name: "cardHolder", label: "Cardholder", input: newInput("Name on card", 60)},
			{name: "expiry", label: "Expiry", input: newInput("MM/YY", 5)},
			{name: "cvv", label: "CVV", input: cvv},
		}
	default:
		s.fields = nil
	}
	if len(s.fields) > 0 {
		s.fields[0].input.Focus()
	}
}

func (s *checkoutScreen) value(i int) string { return s.fields[i].input.Value() }

func (s *checkoutScreen) setFocus(i int) {
	if len(s.fields) == 0 {
		return
	}
	s.fields[s.focus].input.Blur()
	s.focus = ((i % len(s.fields)) + len(s.fields)) % len(s.fields)
	s.fields[s.focus].input.Focus()
}

// submitStep validates the visible form and advances the flow.
func (s *checkoutScreen) submitStep() {
	var err error
	switch s.flow.Step() {
	case checkout.StepShipping:
		err = s.flow.SubmitShipping(checkout.Shipping{
			FullName: s.value(0), Address: s.value(1), City: s.value(2), Pincode: s.value(3),
		})
	case checkout.StepPayment:
		err = s.flow.SubmitPayment(checkout.Payment{
			CardNumber: s.value(0), CardHolder: s.value(1), Expiry: s.value(2), CVV: s.value(3),
		})
	}

	var verrs checkout.ValidationErrors
	if errors.As(err, &verrs) {
		s.errs = verrs
		for i, f := range s.fields {
			if _, bad := verrs[f.name]; bad {
				s.setFocus(i)
				break
			}
		}
		return
	}
	s.buildFields()
}

// handleKey routes a key press to the form. The form owns the keyboard
// while checkout is open.
func (s *checkoutScreen) handleKey(msg tea.KeyMsg) (checkoutAction, tea.Cmd) {
	if s.placed != nil {
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeyEsc {
			return checkoutLeave, nil
		}
		return checkoutNone, nil
	}
	if s.placing {
		return checkoutNone, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		if s.flow.Step() == checkout.StepShipping {
			return checkoutLeave, nil
		}
		s.flow.Back()
		s.buildFields()
		return checkoutNone, nil

	case tea.KeyEnter:
		if s.flow.Step() == checkout.StepConfirmation {
			s.placing = true
			return checkoutPlace, nil
		}
		if s.focus < len(s.fields)-1 {
			s.setFocus(s.focus + 1)
			return checkoutNone, nil
		}
		s.submitStep()
		return checkoutNone, nil

	case tea.KeyTab, tea.KeyDown:
		s.setFocus(s.focus + 1)
		return checkoutNone, nil

	case tea.KeyShiftTab, tea.KeyUp:
		s.setFocus(s.focus - 1)
		return checkoutNone, nil
	}

	if len(s.fields) == 0 {
		return checkoutNone, nil
	}
	var cmd tea.Cmd
	s.fields[s.focus].input, cmd = s.fields[s.focus].input.Update(msg)
	return checkoutNone, cmd
}

// placedOrder records the result of placing the order.
func (s *checkoutScreen) placedOrder(o catalog.Order, err error) {
	s.placing = false
	if err == nil {
		s.placed = &o
	}
}

func (s *checkoutScreen) view(spin string, totals checkout.Totals) string {
	var b strings.Builder

	steps := []checkout.Step{checkout.StepShipping, checkout.StepPayment, checkout.StepConfirmation}
	for i, st := range steps {
		if i > 0 {
			b.WriteString(StatusBarText.Render(" › "))
		}
		if st == s.flow.Step() {
			b.WriteString(TabActive.Render(fmt.Sprintf("%d %s", i+1, st)))
		} else {
			b.WriteString(TabInactive.Render(fmt.Sprintf("%d %s", i+1, st)))
		}
	}
	b.WriteString("\n\n")

	switch {
	case s.placed != nil:
		b.WriteString(SuccessStyle.Render(fmt.Sprintf("Order %s placed. Total %s.", s.placed.Reference, money(s.placed.Total))))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("Press enter to see your orders."))
		return b.String()

	case s.placing:
		b.WriteString(HelpStyle.Render(spin + " Placing order..."))
		return b.String()

	case s.flow.Step() == checkout.StepConfirmation:
		ship := s.flow.Shipping()
		summary := fmt.Sprintf("Ship to   %s\n          %s, %s %s\nPay with  card ending %s",
			ship.FullName, ship.Address, ship.City, ship.Pincode, s.flow.CardLast4())
		b.WriteString(Panel.Render(summary))
		b.WriteString("\n")
		b.WriteString(renderTotals(totals))
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("enter place order · esc back"))
		return b.String()
	}

	for i, f := range s.fields {
		label := StatusBarText.Render(fmt.Sprintf("%-12s", f.label))
		if i == s.focus {
			label = StatusBarKey.Render(fmt.Sprintf("%-12s", f.label))
		}
		b.WriteString(label + " " + f.input.View())
		if msg, bad := s.errs[f.name]; bad {
			b.WriteString("  " + FieldError.Render(msg))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(renderTotals(totals))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab next field · enter continue · esc back"))
	return b.String()
}
