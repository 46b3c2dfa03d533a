package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/tableview"
)

func runProducts() {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "Only products in this category (OTT, IPTV, Keys, Downloads)")
	tag := fs.String("tag", "", "Only products carrying this sub-category tag")
	query := fs.String("query", "", "Case-insensitive search over name, description and tags")
	sortBy := fs.String("sort", "", "Sort column as key or key:asc|desc (id, name, category, price, stock)")
	page := fs.Int("page", 1, "Page to show")
	size := fs.Int("size", 20, "Rows per page")
	fs.Parse(os.Args[1:])

	st, _ := openDB()
	defer st.Close()

	ctx, cancel := commandContext()
	defer cancel()

	products, err := st.Products(ctx)
	if err != nil {
		log.Fatalf("failed to load products: %v", err)
	}

	snap, err := productView(products, *category, *tag, listOptions{
		Query: *query, Sort: *sortBy, Page: *page, Size: *size,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	rows := make([][]string, 0, len(snap.Items))
	for _, p := range snap.Items {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10),
			truncate(p.Name, 32),
			p.Category,
			strings.Join(p.Tags, ","),
			money(p.Price),
			strconv.Itoa(p.Stock),
		})
	}
	printTable(os.Stdout, []string{"ID", "NAME", "CATEGORY", "TAGS", "PRICE", "STOCK"}, rows)
	printFooter(os.Stdout, snap)
}

// productView narrows products to a category and tag, then pages the rest.
// An empty category or tag selects everything. Categories match without
// regard to case.
func productView(products []catalog.Product, category, tag string, opts listOptions) (tableview.Snapshot[catalog.Product], error) {
	if category != "" {
		c, ok := catalog.FindCategory(catalog.DefaultCategories(), category)
		if !ok {
			return tableview.Snapshot[catalog.Product]{}, fmt.Errorf("unknown category %q", category)
		}
		category = c.Name
	}
	if tag != "" {
		products = tableview.Filter(products, catalog.ProductTags, tag, "")
	}
	opts.Filter = category
	return view(products, catalog.ProductColumns(), catalog.ProductCategoryTag, catalog.MatchProduct, opts)
}
