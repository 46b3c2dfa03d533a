package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/storefront/internal/catalog"
)

// formAction tells the app what a key press in an admin form asked for.
type formAction int

const (
	formNone formAction = iota
	formCancel
	formSave
)

// formErrors maps a field name to its message. The "form" key holds
// errors that belong to no single field.
type formErrors map[string]string

// adminForm is the add/edit form for a product or a user.
type adminForm struct {
	title   string
	product *catalog.Product // set for product forms; ID 0 when adding
	user    *catalog.User    // set for user forms; ID "" when adding
	fields  []formField
	focus   int
	errs    formErrors
	saving  bool
}

func categoryNames() []string {
	cats := catalog.DefaultCategories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}

// newProductForm opens the product form, prefilled from p when editing.
func newProductForm(p *catalog.Product) *adminForm {
	f := &adminForm{title: "Add Product", product: &catalog.Product{}}
	if p != nil {
		f.title = "Edit Product"
		cp := *p
		f.product = &cp
	}
	f.fields = []formField{
		{name: "name", label: "Name", input: newInput("Netflix Premium", 80)},
		{name: "category", label: "Category", input: newInput(strings.Join(categoryNames(), ", "), 20)},
		{name: "tags", label: "Tags", input: newInput("Streaming, Sports", 120)},
		{name: "price", label: "Price", input: newInput("499", 12)},
		{name: "originalPrice", label: "Orig. price", input: newInput("0 when not discounted", 12)},
		{name: "stock", label: "Stock", input: newInput("0", 8)},
		{name: "image", label: "Image URL", input: newInput("https://...", 200)},
		{name: "description", label: "Description", input: newInput("Shown on the detail panel", 300)},
		{name: "features", label: "Features", input: newInput("Title: description; Title: description", 400)},
	}
	if p != nil {
		values := []string{
			p.Name, p.Category, strings.Join(p.Tags, ", "),
			formatAmount(p.Price), formatAmount(p.OriginalPrice), strconv.Itoa(p.Stock),
			p.Image, p.Description, catalog.FormatFeatures(p.Features),
		}
		for i, v := range values {
			f.fields[i].input.SetValue(v)
			f.fields[i].input.CursorEnd()
		}
	}
	f.fields[0].input.Focus()
	return f
}

// newUserForm opens the user form, prefilled from u when editing.
func newUserForm(u *catalog.User) *adminForm {
	f := &adminForm{title: "Add User", user: &catalog.User{Role: catalog.RoleCustomer}}
	if u != nil {
		f.title = "Edit User"
		cp := *u
		f.user = &cp
	}
	f.fields = []formField{
		{name: "name", label: "Full name", input: newInput("Sonal Mehta", 80)},
		{name: "email", label: "Email", input: newInput("sonal@example.com", 120)},
		{name: "role", label: "Role", input: newInput("Admin or Customer", 20)},
	}
	for i, v := range []string{f.user.Name, f.user.Email, string(f.user.Role)} {
		f.fields[i].input.SetValue(v)
		f.fields[i].input.CursorEnd()
	}
	f.fields[0].input.Focus()
	return f
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (f *adminForm) value(name string) string {
	for _, fl := range f.fields {
		if fl.name == name {
			return strings.TrimSpace(fl.input.Value())
		}
	}
	return ""
}

func (f *adminForm) setFocus(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = ((i % len(f.fields)) + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

// parseAmount reads an optional non-negative number; blank means 0.
func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("must be a number of 0 or more")
	}
	return v, nil
}

// parseProduct builds the product from the form.
func (f *adminForm) parseProduct() (catalog.Product, formErrors) {
	p := *f.product
	errs := formErrors{}

	p.Name = f.value("name")
	if p.Name == "" {
		errs["name"] = "Name is required"
	}
	if c, ok := catalog.FindCategory(catalog.DefaultCategories(), f.value("category")); ok {
		p.Category = c.Name
	} else {
		errs["category"] = "Choose one of " + strings.Join(categoryNames(), ", ")
	}
	p.Tags = catalog.ParseTags(f.value("tags"))

	var err error
	if p.Price, err = parseAmount(f.value("price")); err != nil {
		errs["price"] = "Price " + err.Error()
	}
	if p.OriginalPrice, err = parseAmount(f.value("originalPrice")); err != nil {
		errs["originalPrice"] = "Original price " + err.Error()
	}
	if s := f.value("stock"); s == "" {
		p.Stock = 0
	} else if n, err := strconv.Atoi(s); err != nil || n < 0 {
		errs["stock"] = "Stock must be a whole number of 0 or more"
	} else {
		p.Stock = n
	}

	p.Image = f.value("image")
	p.Description = f.value("description")
	p.Features = catalog.ParseFeatures(f.value("features"))

	if len(errs) == 0 {
		if err := catalog.ValidateProduct(p); err != nil {
			errs["form"] = err.Error()
		}
	}
	return p, errs
}

// parseUser builds the user from the form.
func (f *adminForm) parseUser() (catalog.User, formErrors) {
	u := *f.user
	errs := formErrors{}

	u.Name = f.value("name")
	u.Email = strings.ToLower(f.value("email"))
	role, err := catalog.ParseRole(f.value("role"))
	if err != nil {
		errs["role"] = "Role must be Admin or Customer"
	}
	u.Role = role

	if len(errs) == 0 {
		if err := catalog.ValidateUser(u); err != nil {
			errs["form"] = err.Error()
		}
	}
	return u, errs
}

// validate parses the form and records any errors on it.
func (f *adminForm) validate() bool {
	if f.product != nil {
		_, f.errs = f.parseProduct()
	} else {
		_, f.errs = f.parseUser()
	}
	if len(f.errs) == 0 {
		return true
	}
	for i, fl := range f.fields {
		if _, bad := f.errs[fl.name]; bad {
			f.setFocus(i)
			break
		}
	}
	return false
}

// handleKey routes a key press to the form, which owns the keyboard.
func (f *adminForm) handleKey(msg tea.KeyMsg) (formAction, tea.Cmd) {
	if f.saving {
		return formNone, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		return formCancel, nil
	case tea.KeyEnter:
		if f.focus < len(f.fields)-1 {
			f.setFocus(f.focus + 1)
			return formNone, nil
		}
		if !f.validate() {
			return formNone, nil
		}
		f.saving = true
		return formSave, nil
	case tea.KeyTab, tea.KeyDown:
		f.setFocus(f.focus + 1)
		return formNone, nil
	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus(f.focus - 1)
		return formNone, nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return formNone, cmd
}

func (f *adminForm) view(spin string) string {
	var b strings.Builder
	b.WriteString(Title.Render(f.title))
	b.WriteString("\n\n")
	for i, fl := range f.fields {
		label := StatusBarText.Render(fmt.Sprintf("%-12s", fl.label))
		if i == f.focus {
			label = StatusBarKey.Render(fmt.Sprintf("%-12s", fl.label))
		}
		b.WriteString(label + " " + fl.input.View())
		if msg, bad := f.errs[fl.name]; bad {
			b.WriteString("  " + FieldError.Render(msg))
		}
		b.WriteString("\n")
	}
	if msg, bad := f.errs["form"]; bad {
		b.WriteString(FieldError.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if f.saving {
		b.WriteString(HelpStyle.Render(spin + " Saving..."))
	} else {
		b.WriteString(HelpStyle.Render("tab next field · enter on the last field saves · esc cancel"))
	}
	return b.String()
}
