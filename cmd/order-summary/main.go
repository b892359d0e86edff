package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/config"
	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/repository/postgres"
	"github.com/jafarshop/storeadmin/internal/service"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/order-summary/main.go <order-id>")
		fmt.Println("Example: go run cmd/order-summary/main.go 1042")
		os.Exit(1)
	}

	orderID, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil || orderID <= 0 {
		fmt.Fprintf(os.Stderr, "Invalid order ID: %s\n", os.Args[1])
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	repos := postgres.NewRepositories(db, logger)
	orderService := service.NewOrderService(repos, cfg.Orders, logger)

	o, err := orderService.LoadOrder(context.Background(), orderID)
	if err != nil {
		var notFound *errors.ErrNotFound
		if stderrors.As(err, &notFound) {
			fmt.Printf("❌ Order %d not found.\n", orderID)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Failed to load order: %v\n", err)
		os.Exit(1)
	}

	header := o.Header()
	breakdown := o.Breakdown()

	fmt.Printf("🧾 Order #%s (ID %d)\n\n", o.DisplayNumber(), o.ID())
	fmt.Printf("Status: %s", header.Status)
	if o.IsComplete() {
		fmt.Printf(" ✅")
	}
	fmt.Printf("\nCurrency: %s\n", header.Currency)

	fmt.Printf("\nItems:\n")
	for _, item := range o.Items() {
		fmt.Printf("  %d x %s  %s\n", item.Quantity, item.ProductName, item.Total.StringFixed(2))
	}

	printAdjustments("Discounts", breakdown.Discounts)
	printAdjustments("Taxes", breakdown.Taxes)
	printAdjustments("Credits", breakdown.Credits)

	if len(breakdown.Fees) > 0 {
		keys := make([]string, 0, len(breakdown.Fees))
		for key := range breakdown.Fees {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		fmt.Printf("\nFees:\n")
		for _, key := range keys {
			fee := breakdown.Fees[key]
			fmt.Printf("  [%s] %s  %s\n", key, fee.Description, fee.Amount.StringFixed(2))
		}
	}

	fmt.Printf("\nSubtotal: %s\n", header.Subtotal.StringFixed(2))
	fmt.Printf("Discount: %s\n", header.Discount.StringFixed(2))
	fmt.Printf("Tax:      %s (rate %s%%)\n", header.Tax.StringFixed(2), breakdown.TaxRate.String())
	fmt.Printf("Total:    %s\n", header.Total.StringFixed(2))

	addr := o.Address()
	if addr != (domain.Address{}) {
		fmt.Printf("\nBilling address:\n")
		fmt.Printf("  %s\n  %s %s\n  %s %s %s\n  %s\n",
			addr.Name, addr.Address, addr.Address2, addr.City, addr.Region, addr.PostalCode, addr.Country)
	}
}

func printAdjustments(title string, adjustments []domain.Adjustment) {
	if len(adjustments) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, adj := range adjustments {
		fmt.Printf("  %s  %s\n", adj.Description, adj.Amount.StringFixed(2))
	}
}
