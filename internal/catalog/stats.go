package catalog

import (
	"slices"
	"time"
)

// Stats summarises the store for the admin dashboard.
type Stats struct {
	UserCount    int
	ProductCount int
	OrderCount   int
	Revenue      float64 // sum of non-canceled order totals
	SalesByDay   []DaySales
}

// DaySales is the revenue booked on one calendar day.
type DaySales struct {
	Day   time.Time // midnight UTC
	Sales float64
}

// Label formats the day as the dashboard chart axis does, e.g. "Jul 15".
func (d DaySales) Label() string { return d.Day.Format("Jan 2") }

// Summarize computes dashboard stats. SalesByDay is in date order.
func Summarize(users []User, products []Product, orders []Order) Stats {
	st := Stats{
		UserCount:    len(users),
		ProductCount: len(products),
		OrderCount:   len(orders),
	}

	byDay := make(map[time.Time]float64)
	for _, o := range orders {
		if o.Status == StatusCanceled {
			continue
		}
		st.Revenue += o.Total
		if o.Date.IsZero() {
			continue
		}
		d := o.Date.UTC()
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		byDay[day] += o.Total
	}

	st.SalesByDay = make([]DaySales, 0, len(byDay))
	for day, sales := range byDay {
		st.SalesByDay = append(st.SalesByDay, DaySales{Day: day, Sales: sales})
	}
	slices.SortFunc(st.SalesByDay, func(a, b DaySales) int { return a.Day.Compare(b.Day) })
	return st
}
