package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/abelbrown/storefront/internal/catalog"
)

func runStats() {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	byCategory := fs.Bool("categories", false, "Include product counts per category")
	fs.Parse(os.Args[1:])

	st, _ := openDB()
	defer st.Close()

	ctx, cancel := commandContext()
	defer cancel()

	products, err := st.Products(ctx)
	if err != nil {
		log.Fatalf("failed to load products: %v", err)
	}
	orders, err := st.Orders(ctx)
	if err != nil {
		log.Fatalf("failed to load orders: %v", err)
	}
	users, err := st.Users(ctx)
	if err != nil {
		log.Fatalf("failed to load users: %v", err)
	}

	stats := catalog.Summarize(users, products, orders)
	fmt.Printf("Backend:     %s\n", st.Backend())
	fmt.Printf("Users:       %d\n", stats.UserCount)
	fmt.Printf("Products:    %d\n", stats.ProductCount)
	fmt.Printf("Orders:      %d\n", stats.OrderCount)
	fmt.Printf("Revenue:     %s\n", money(stats.Revenue))

	byStatus := map[catalog.OrderStatus]int{}
	for _, o := range orders {
		byStatus[o.Status]++
	}
	fmt.Println("\nOrders by status:")
	for _, s := range catalog.OrderStatuses() {
		fmt.Printf("  %-10s %d\n", s, byStatus[s])
	}

	if len(stats.SalesByDay) > 0 {
		fmt.Println("\nSales by day:")
		fmt.Print(salesChart(stats.SalesByDay, 40))
	}

	if !*byCategory {
		return
	}
	cats, err := st.Categories(ctx)
	if err != nil {
		log.Fatalf("failed to load categories: %v", err)
	}
	fmt.Println("\nProducts by category:")
	for _, c := range cats {
		n, err := st.ProductsByCategory(ctx, c)
		if err != nil {
			log.Fatalf("failed to load %s: %v", c, err)
		}
		fmt.Printf("  %-10s %d\n", c, len(n))
	}
}

// salesChart renders one "#" bar per day scaled to width.
func salesChart(days []catalog.DaySales, width int) string {
	peak := 0.0
	for _, d := range days {
		peak = max(peak, d.Sales)
	}
	var b strings.Builder
	for _, d := range days {
		n := 1
		if peak > 0 {
			n = max(int(d.Sales/peak*float64(width)), 1)
		}
		fmt.Fprintf(&b, "  %-7s %-*s %s\n", d.Label(), width, strings.Repeat("#", n), money(d.Sales))
	}
	return b.String()
}
