package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/abelbrown/storefront/internal/catalog"
)

func runSeed() {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	force := fs.Bool("force", false, "Seed even when the database already has data")
	fs.Parse(os.Args[1:])

	st, _ := openDB()
	defer st.Close()

	ctx, cancel := commandContext()
	defer cancel()

	empty, err := st.IsEmpty(ctx)
	if err != nil {
		log.Fatalf("failed to inspect database: %v", err)
	}
	if !empty && !*force {
		fmt.Fprintln(os.Stderr, "database already has data; pass --force to seed anyway")
		os.Exit(1)
	}

	products, orders, users := catalog.SeedProducts(), catalog.SeedOrders(), catalog.SeedUsers()
	if err := st.Seed(ctx, products, orders, users); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}
	fmt.Printf("Seeded %d products, %d orders, %d users into %s\n",
		len(products), len(orders), len(users), st.Backend())
}
