package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/storefront/internal/catalog"
)

func runUsers() {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	role := fs.String("role", "", "Only users with this role (Admin, Customer)")
	query := fs.String("query", "", "Search name and email")
	sortBy := fs.String("sort", "", "Sort column as key or key:asc|desc (name, email, role, joined)")
	page := fs.Int("page", 1, "Page to show")
	size := fs.Int("size", 20, "Rows per page")
	fs.Parse(os.Args[1:])

	if *role != "" {
		r, err := catalog.ParseRole(*role)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(2)
		}
		*role = string(r)
	}

	st, _ := openDB()
	defer st.Close()

	ctx, cancel := commandContext()
	defer cancel()

	users, err := st.Users(ctx)
	if err != nil {
		log.Fatalf("failed to load users: %v", err)
	}

	snap, err := view(users, catalog.UserColumns(), catalog.UserRoleTag, catalog.MatchUser, listOptions{
		Filter: *role, Query: *query, Sort: *sortBy, Page: *page, Size: *size,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	rows := make([][]string, 0, len(snap.Items))
	for _, u := range snap.Items {
		joined := "-"
		if !u.CreatedAt.IsZero() {
			joined = u.CreatedAt.Format("2006-01-02")
		}
		rows = append(rows, []string{truncate(u.Name, 24), u.Email, string(u.Role), joined})
	}
	printTable(os.Stdout, []string{"NAME", "EMAIL", "ROLE", "JOINED"}, rows)
	printFooter(os.Stdout, snap)
}
