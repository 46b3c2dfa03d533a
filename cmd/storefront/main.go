package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/abelbrown/storefront/internal/cart"
	"github.com/abelbrown/storefront/internal/catalog"
	"github.com/abelbrown/storefront/internal/checkout"
	"github.com/abelbrown/storefront/internal/config"
	"github.com/abelbrown/storefront/internal/coord"
	"github.com/abelbrown/storefront/internal/logging"
	"github.com/abelbrown/storefront/internal/store"
	"github.com/abelbrown/storefront/internal/ui"
)

// queryTimeout bounds every store call made on behalf of the UI.
const queryTimeout = 10 * time.Second

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	email := flag.String("email", envOrDefault("STOREFRONT_EMAIL", "guest@example.com"), "customer email orders are placed under")
	dsn := flag.String("db", "", "database DSN (overrides config)")
	flag.Parse()

	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *dsn != "" {
		cfg.Database.DSN = *dsn
	}

	dataDir := config.DataDir()
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	if err := logging.Init(dataDir, cfg.Log.Level); err != nil {
		log.Fatalf("Failed to start logging: %v", err)
	}
	defer logging.Close()

	// Open store
	st, err := store.Open(cfg.DatabaseDSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()
	logging.Info("store opened", "backend", st.Backend())

	if empty, err := st.IsEmpty(ctx); err != nil {
		log.Fatalf("Failed to inspect database: %v", err)
	} else if empty {
		if err := st.Seed(ctx, catalog.SeedProducts(), catalog.SeedOrders(), catalog.SeedUsers()); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
		logging.Info("seeded empty database")
	}

	// Cart and wishlist: a JSON file when configured, the database otherwise
	var (
		shoppingCart *cart.Cart
		wishlist     *cart.Wishlist
	)
	if cfg.Cart.Path != "" {
		shoppingCart = cart.NewCart(cart.NewJSONFile[[]cart.Line](cfg.Cart.Path))
		wishlist = cart.NewWishlist(cart.NewJSONFile[[]int64](cfg.Cart.Path + ".wishlist"))
	} else {
		shoppingCart = cart.NewCart(cart.NewStoreState[[]cart.Line](st, "cart:"+*email))
		wishlist = cart.NewWishlist(cart.NewStoreState[[]int64](st, "wishlist:"+*email))
	}

	coordinator := coord.New(st, coord.Options{
		Interval: cfg.RefreshInterval(),
		MinGap:   cfg.MinRefreshGap(),
	})

	// Create UI app with dependency injection
	app := ui.NewAppWithConfig(ui.AppConfig{
		LoadProducts: func() tea.Cmd {
			return func() tea.Msg {
				qctx, cancel := context.WithTimeout(ctx, queryTimeout)
				defer cancel()
				products, err := st.Products(qctx)
				return ui.ProductsLoaded{Products: products, Err: err}
			}
		},
		LoadMyOrders: func(email string) tea.Cmd {
			return func() tea.Msg {
				qctx, cancel := context.WithTimeout(ctx, queryTimeout)
				defer cancel()
				orders, err := st.OrdersByEmail(qctx, email)
				return ui.MyOrdersLoaded{Orders: orders, Err: err}
			}
		},
		// Admin tables are loaded by the coordinator
		Refresh: func() tea.Cmd {
			return coordinator.Refresh(ctx)
		},
		PlaceOrder: func(flow *checkout.Flow, products map[int64]catalog.Product) tea.Cmd {
			return func() tea.Msg {
				qctx, cancel := context.WithTimeout(ctx, queryTimeout)
				defer cancel()
				o, err := flow.Submit(qctx, st, shoppingCart, products, *email)
				return ui.OrderPlaced{Order: o, Err: err}
			}
		},
		UpdateOrderStatus: func(id int64, status catalog.OrderStatus) tea.Cmd {
			return func() tea.Msg {
				qctx, cancel := context.WithTimeout(ctx, queryTimeout)
				defer cancel()
				err := st.UpdateOrderStatus(qctx, id, status)
				return ui.OrderStatusUpdated{ID: id, Status: status, Err: err}
			}
		},
		SaveProduct: func(p catalog.Product) tea.Cmd {
			return func() tea.Msg {
				qctx, cancel := context.WithTimeout(ctx, queryTimeout)
				defer cancel()
				id, err := st.SaveProduct(qctx, p)
				if err == nil {
					p.ID = id
				}
				return ui.ProductSaved{Product: p, Err: err}
			}
		},
		SaveUser: func(u catalog.User) tea.Cmd {
			return func() tea.Msg {
				qctx, cancel := context.WithTimeout(ctx, queryTimeout)
				defer cancel()
				saved, err := st.SaveUser(qctx, u)
				return ui.UserSaved{User: saved, Err: err}
			}
		},
		DeleteProduct: func(id int64) tea.Cmd {
			return func() tea.Msg {
				qctx, cancel := context.WithTimeout(ctx, queryTimeout)
				defer cancel()
				return ui.ProductDeleted{ID: id, Err: st.DeleteProduct(qctx, id)}
			}
		},
		DeleteUser: func(id string) tea.Cmd {
			return func() tea.Msg {
				qctx, cancel := context.WithTimeout(ctx, queryTimeout)
				defer cancel()
				return ui.UserDeleted{ID: id, Err: st.DeleteUser(qctx, id)}
			}
		},
		Cart:               shoppingCart,
		Wishlist:           wishlist,
		Email:              *email,
		ProductPageSize:    cfg.UI.ProductPageSize,
		AdminPageSize:      cfg.UI.AdminPageSize,
		ResetPageOnRefresh: cfg.UI.ResetPageOnRefresh,
	})

	// Create program
	program := tea.NewProgram(app, tea.WithAltScreen())

	// Start coordinator
	coordinator.Start(ctx, program)

	// Run UI (blocks until quit)
	if _, err := program.Run(); err != nil {
		logging.Error("program exited with error", "error", err)
		log.Printf("Error running program: %v", err)
	}

	// Graceful shutdown
	cancel()
	coordinator.Wait()
}
