package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/abelbrown/storefront/internal/catalog"
)

func runOrders() {
	fs := flag.NewFlagSet("orders", flag.ExitOnError)
	status := fs.String("status", "", "Only orders with this status (Pending, Shipped, Delivered, Canceled)")
	email := fs.String("email", "", "Only orders placed by this email")
	query := fs.String("query", "", "Search customer, email and reference")
	sortBy := fs.String("sort", "", "Sort column as key or key:asc|desc (id, customer, date, status, total)")
	page := fs.Int("page", 1, "Page to show")
	size := fs.Int("size", 20, "Rows per page")
	fs.Parse(os.Args[1:])

	if *status != "" {
		s, err := catalog.ParseOrderStatus(*status)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		*status = string(s)
	}

	st, _ := openDB()
	defer st.Close()

	ctx, cancel := commandContext()
	defer cancel()

	var (
		orders []catalog.Order
		err    error
	)
	if *email != "" {
		orders, err = st.OrdersByEmail(ctx, *email)
	} else {
		orders, err = st.Orders(ctx)
	}
	if err != nil {
		log.Fatalf("failed to load orders: %v", err)
	}

	snap, err := view(orders, catalog.OrderColumns(), catalog.OrderStatusTag, catalog.MatchOrder, listOptions{
		Filter: *status, Query: *query, Sort: *sortBy, Page: *page, Size: *size,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	rows := make([][]string, 0, len(snap.Items))
	for _, o := range snap.Items {
		date := "-"
		if !o.Date.IsZero() {
			date = o.Date.Format("2006-01-02")
		}
		rows = append(rows, []string{
			"#" + strconv.FormatInt(o.ID, 10),
			o.Reference,
			truncate(o.Customer, 24),
			date,
			string(o.Status),
			money(o.Total),
		})
	}
	printTable(os.Stdout, []string{"ID", "REF", "CUSTOMER", "DATE", "STATUS", "TOTAL"}, rows)
	printFooter(os.Stdout, snap)
}

func runSetStatus() {
	fs := flag.NewFlagSet("set-status", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: storectl set-status <order-id> <status>")
	}
	fs.Parse(os.Args[1:])
	if fs.NArg() != 2 {
		fs.Usage()
		os.Exit(2)
	}

	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid order id %q\n", fs.Arg(0))
		os.Exit(2)
	}
	status, err := catalog.ParseOrderStatus(fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	st, _ := openDB()
	defer st.Close()

	ctx, cancel := commandContext()
	defer cancel()

	if err := st.UpdateOrderStatus(ctx, id, status); err != nil {
		log.Fatalf("failed to update order #%d: %v", id, err)
	}
	fmt.Printf("Order #%d is now %s\n", id, status)
}
