package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/config"
	"github.com/abelbrown/storefront/internal/logging"
	"github.com/abelbrown/storefront/internal/store"
	"github.com/abelbrown/storefront/internal/tableview"
)

// commandTimeout bounds the database work of a single command.
const commandTimeout = 30 * time.Second

// openDB loads the config, points logging at stderr and opens the store
// or fatals.
func openDB() (*store.Store, *config.Config) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logging.SetOutput(os.Stderr, cfg.Log.Level)

	if !store.IsPostgres(cfg.DatabaseDSN()) {
		if err := os.MkdirAll(config.DataDir(), 0755); err != nil {
			log.Fatalf("failed to create data directory: %v", err)
		}
	}
	st, err := store.Open(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	logging.Debug("store opened", "backend", st.Backend())
	return st, cfg
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), commandTimeout)
}

// listOptions are the table controls shared by the list commands.
type listOptions struct {
	Filter string
	Query  string
	Sort   string
	Page   int
	Size   int
}

func sortable[T any](columns []tableview.Column[T], key string) bool {
	for _, c := range columns {
		if c.Key == key {
			return c.Sortable
		}
	}
	return false
}

func sortKeys[T any](columns []tableview.Column[T]) []string {
	var keys []string
	for _, c := range columns {
		if c.Sortable {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// view runs records through a table controller configured by opts.
func view[T any](records []T, columns []tableview.Column[T], tags tableview.TagFunc[T], match tableview.MatchFunc[T], opts listOptions) (tableview.Snapshot[T], error) {
	spec, ok := catalog.ParseSort(opts.Sort)
	if !ok {
		return tableview.Snapshot[T]{}, fmt.Errorf("invalid sort %q (want key or key:asc|desc)", opts.Sort)
	}
	if !spec.IsZero() && !sortable(columns, spec.Key) {
		return tableview.Snapshot[T]{}, fmt.Errorf("unknown sort column %q (want one of %s)", spec.Key, strings.Join(sortKeys(columns), ", "))
	}
	ctrl := tableview.New(columns, tags, tableview.Options{PageSize: opts.Size})
	if match != nil {
		ctrl.WithMatcher(match)
	}
	ctrl.SetRecords(records)
	if opts.Filter != "" {
		ctrl.SetFilter(opts.Filter)
	}
	ctrl.SetQuery(opts.Query)
	if !spec.IsZero() {
		ctrl.SetSortSpec(spec)
	}
	return ctrl.GoToPage(max(opts.Page, 1)), nil
}

// printTable writes a header row and rows as aligned columns.
func printTable(w io.Writer, header []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()
}

// printFooter writes the "page i of n" line under a listing.
func printFooter[T any](w io.Writer, snap tableview.Snapshot[T]) {
	fmt.Fprintf(w, "\nPage %d of %d (%d matching, %d total)\n",
		snap.PageIndex, snap.TotalPages, snap.FilteredCount, snap.TotalCount)
}

// money formats an amount in rupees.
func money(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("₹%d", int64(v))
	}
	return fmt.Sprintf("₹%.2f", v)
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
