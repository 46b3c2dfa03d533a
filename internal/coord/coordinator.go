// Package coord refreshes the storefront's datasets in the background and
// hands them to the TUI as messages.
package coord

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/logging"
	"github.com/abelbrown/storefront/internal/ui"
)

// loadTimeout is the timeout for each individual dataset load.
const loadTimeout = 10 * time.Second

// maxConcurrentLoads limits parallel queries against the store.
const maxConcurrentLoads = 3

// source is the read side of the store (interface for testing).
type source interface {
	Products(ctx context.Context) ([]catalog.Product, error)
	Orders(ctx context.Context) ([]catalog.Order, error)
	Users(ctx context.Context) ([]catalog.User, error)
}

// Sender receives refresh results. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Options tunes the refresh cadence.
type Options struct {
	// Interval between periodic refreshes. Zero disables the ticker.
	Interval time.Duration
	// MinGap is the minimum time between two refreshes of any kind.
	// Zero disables throttling.
	MinGap time.Duration
}

// Coordinator manages background refreshes.
// Uses context cancellation as the ONLY stop mechanism.
type Coordinator struct {
	src      source
	interval time.Duration
	limiter  *rate.Limiter
	wg       sync.WaitGroup
}

// New creates a Coordinator reading from src.
func New(src source, opts Options) *Coordinator {
	limit := rate.Inf
	if opts.MinGap > 0 {
		limit = rate.Every(opts.MinGap)
	}
	return &Coordinator{
		src:      src,
		interval: opts.Interval,
		limiter:  rate.NewLimiter(limit, 1),
	}
}

// Start performs an initial refresh immediately, then one every Interval.
// Results are sent to program (nil is allowed in tests).
func (c *Coordinator) Start(ctx context.Context, program Sender) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		c.refreshAll(ctx, program)

		if c.interval <= 0 {
			return
		}
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.refreshAll(ctx, program)
			}
		}
	}()
}

// Wait blocks until the background goroutine exits.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

// Refresh returns a command for a manual refresh. The command yields a
// tea.BatchMsg of the loaded datasets, or a throttled RefreshComplete when
// the previous refresh was too recent.
func (c *Coordinator) Refresh(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		if !c.limiter.Allow() {
			logging.Debug("coord: manual refresh throttled")
			return ui.RefreshComplete{Throttled: true}
		}
		msgs := c.load(ctx)
		cmds := make([]tea.Cmd, len(msgs))
		for i, msg := range msgs {
			cmds[i] = func() tea.Msg { return msg }
		}
		return tea.BatchMsg(cmds)
	}
}

// refreshAll loads every dataset and sends the results to program.
func (c *Coordinator) refreshAll(ctx context.Context, program Sender) {
	if ctx.Err() != nil {
		return
	}
	if !c.limiter.Allow() {
		logging.Debug("coord: periodic refresh skipped, too soon after the last one")
		return
	}
	msgs := c.load(ctx)

	// Handle nil program gracefully for testing
	if program == nil {
		return
	}
	for _, msg := range msgs {
		program.Send(msg)
	}
}

// load queries all datasets in parallel. Each load has its own timeout.
// The returned slice holds one message per dataset, in a fixed order,
// followed by a RefreshComplete.
func (c *Coordinator) load(ctx context.Context) []tea.Msg {
	var (
		products ui.ProductsLoaded
		orders   ui.OrdersLoaded
		users    ui.UsersLoaded
	)

	var g errgroup.Group
	g.SetLimit(maxConcurrentLoads)

	g.Go(func() error {
		loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		products.Products, products.Err = c.src.Products(loadCtx)
		return nil
	})
	g.Go(func() error {
		loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		orders.Orders, orders.Err = c.src.Orders(loadCtx)
		return nil
	})
	g.Go(func() error {
		loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
		defer cancel()
		users.Users, users.Err = c.src.Users(loadCtx)
		return nil
	})

	_ = g.Wait() // errors are reported per dataset

	err := errors.Join(products.Err, orders.Err, users.Err)
	if err != nil {
		logging.Warn("coord: refresh finished with errors", "error", err)
	} else {
		logging.Debug("coord: refresh complete",
			"products", len(products.Products),
			"orders", len(orders.Orders),
			"users", len(users.Users))
	}

	return []tea.Msg{products, orders, users, ui.RefreshComplete{Datasets: 3, Err: err}}
}
