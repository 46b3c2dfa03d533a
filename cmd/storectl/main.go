// Command storectl inspects and maintains the storefront database.
//
// Usage:
//
//	storectl                      Show help
//	storectl seed                 Load the demo catalog into an empty database
//	storectl products             List products (filter, search, sort, page)
//	storectl orders               List orders
//	storectl users                List users
//	storectl set-status <id> <s>  Change an order's status
//	storectl stats                Dashboard statistics
package main

import (
	"fmt"
	"os"
)

const usage = `storectl - storefront maintenance CLI

Usage:
  storectl <command> [flags]

Commands:
  seed        Load the demo catalog (use --force on a non-empty database)
  products    List products with --category, --tag, --query, --sort, --page
  orders      List orders with --status, --email, --sort, --page
  users       List users with --role, --query
  set-status  Change an order's status: set-status <id> <status>
  stats       Dashboard statistics and sales by day

Environment:
  STOREFRONT_HOME       Data directory (default: ~/.storefront)
  STOREFRONT_DSN        Database DSN, sqlite path or postgres:// URL
  DATABASE_URL          Fallback database DSN
  STOREFRONT_LOG_LEVEL  Log level for stderr output (default: info)

Run 'storectl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "seed":
		runSeed()
	case "products":
		runProducts()
	case "orders":
		runOrders()
	case "users":
		runUsers()
	case "set-status":
		runSetStatus()
	case "stats":
		runStats()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "storectl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
