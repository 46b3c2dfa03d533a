package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abelbrown/storefront/internal/catalog"
)

func seeded() []catalog.Product {
	products := catalog.SeedProducts()
	for i := range products {
		products[i].ID = int64(i + 1)
	}
	return products
}

func names(products []catalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductViewCategoryTagSort(t *testing.T) {
	snap, err := productView(seeded(), "OTT", "Music", listOptions{Sort: "price:desc", Size: 10})
	if err != nil {
		t.Fatalf("productView: %v", err)
	}
	want := []string{"YouTube Premium", "Spotify Premium"}
	if diff := cmp.Diff(want, names(snap.Items)); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	// Lo-fi Collection carries the tag but sits outside the category
	if snap.FilteredCount != 2 || snap.TotalCount != 3 {
		t.Errorf("counts = %d/%d, want 2/3", snap.FilteredCount, snap.TotalCount)
	}
}

func TestProductViewPaging(t *testing.T) {
	snap, err := productView(seeded(), "", "", listOptions{Sort: "id", Page: 4, Size: 6})
	if err != nil {
		t.Fatalf("productView: %v", err)
	}
	if snap.TotalPages != 4 {
		t.Fatalf("TotalPages = %d, want 4", snap.TotalPages)
	}
	if snap.PageIndex != 4 || len(snap.Items) != 1 {
		t.Errorf("page %d with %d items, want page 4 with 1 item", snap.PageIndex, len(snap.Items))
	}

	// Out of range pages clamp to the last one
	snap, _ = productView(seeded(), "", "", listOptions{Page: 99, Size: 6})
	if snap.PageIndex != 4 {
		t.Errorf("PageIndex = %d, want clamp to 4", snap.PageIndex)
	}
}

func TestProductViewQuery(t *testing.T) {
	snap, err := productView(seeded(), "", "", listOptions{Query: "  IPTV ", Size: 20})
	if err != nil {
		t.Fatalf("productView: %v", err)
	}
	if len(snap.Items) != 4 {
		t.Errorf("got %d items, want 4: %v", len(snap.Items), names(snap.Items))
	}
}

func TestViewRejectsBadSort(t *testing.T) {
	if _, err := productView(seeded(), "", "", listOptions{Sort: "price:sideways"}); err == nil {
		t.Fatal("expected error for bad sort direction")
	}
}

func TestViewRejectsUnknownSortColumn(t *testing.T) {
	_, err := productView(seeded(), "", "", listOptions{Sort: "bogus"})
	if err == nil {
		t.Fatal("expected error for an unknown sort column")
	}
	if !strings.Contains(err.Error(), `"bogus"`) || !strings.Contains(err.Error(), "price") {
		t.Errorf("error = %q, want the bad key and the valid ones", err)
	}
	if _, err := productView(seeded(), "", "", listOptions{Sort: "stock:desc"}); err != nil {
		t.Errorf("stock:desc rejected: %v", err)
	}
}

func TestProductViewCategoryIgnoresCase(t *testing.T) {
	snap, err := productView(seeded(), "ott", "", listOptions{Size: 20})
	if err != nil {
		t.Fatalf("productView: %v", err)
	}
	if snap.FilteredCount != 7 || snap.ActiveFilter != "OTT" {
		t.Errorf("ott = %d products under %q, want 7 under OTT", snap.FilteredCount, snap.ActiveFilter)
	}

	if _, err := productView(seeded(), "Books", "", listOptions{Size: 20}); err == nil {
		t.Error("expected error for an unknown category")
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	printTable(&buf, []string{"ID", "NAME"}, [][]string{{"1", "Netflix Premium"}, {"12", "IPTV"}})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "1   Netflix") {
		t.Errorf("columns not aligned: %q", lines[1])
	}
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{499, "₹499"},
		{29.99, "₹29.99"},
		{0, "₹0"},
	}
	for _, tt := range tests {
		if got := money(tt.in); got != tt.want {
			t.Errorf("money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSalesChart(t *testing.T) {
	stats := catalog.Summarize(nil, nil, catalog.SeedOrders())
	out := salesChart(stats.SalesByDay, 20)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(stats.SalesByDay) {
		t.Fatalf("got %d lines, want %d", len(lines), len(stats.SalesByDay))
	}
	if !strings.Contains(out, strings.Repeat("#", 20)) {
		t.Errorf("peak day should fill the width:\n%s", out)
	}
}
