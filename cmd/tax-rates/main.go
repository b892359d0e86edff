package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/storeadmin/internal/adminapi"
	"github.com/jafarshop/storeadmin/internal/config"
	"github.com/jafarshop/storeadmin/internal/domain"
	"github.com/jafarshop/storeadmin/internal/taxrate"
	"github.com/jafarshop/storeadmin/internal/taxtable"
	"github.com/jafarshop/storeadmin/pkg/errors"
)

func usage() {
	fmt.Println("Usage: go run cmd/tax-rates/main.go <command> [args]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  list [--all]                              List active rates (or every rate)")
	fmt.Println("  add <country|*> [region] <amount> [--yes] Add a rate and save")
	fmt.Println("  activate <id>                             Activate a rate and save")
	fmt.Println("  deactivate <id>                           Deactivate a rate and save")
	fmt.Println("  remove <id>                               Remove a rate and save")
	fmt.Println("  bulk <activate|deactivate> <id>...        Change several rates and save")
	fmt.Println()
	fmt.Println("Example: go run cmd/tax-rates/main.go add US CA 7.25")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateClient(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := adminapi.NewClient(cfg.AdminAPI, logger)
	controller := taxtable.NewController(client, client, logger)

	ctx := context.Background()

	rows, err := client.FetchTaxRates(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load tax rates: %v\n", err)
		os.Exit(1)
	}
	session := controller.NewSession(rows)

	command, args := os.Args[1], os.Args[2:]
	switch command {
	case "list":
		showAll := len(args) > 0 && args[0] == "--all"
		printRates(controller.SetShowAll(session, showAll))
		return
	case "add":
		err = addRate(ctx, controller, session, args)
	case "activate", "deactivate", "remove":
		err = changeRate(controller, session, command, args)
	case "bulk":
		err = bulkChange(controller, session, args)
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		reportError(err)
		os.Exit(1)
	}

	if !session.ConfirmOnExit() {
		fmt.Println("Nothing changed.")
		return
	}

	if err := controller.Save(ctx, session); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to save tax rates: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Tax rates saved!\n\n")
	printRates(controller.SetShowAll(session, true))
}

func addRate(ctx context.Context, controller *taxtable.Controller, session *taxtable.Session, args []string) error {
	confirmAll := false
	positional := make([]string, 0, len(args))
	for _, arg := range args {
		if arg == "--yes" {
			confirmAll = true
			continue
		}
		positional = append(positional, arg)
	}

	var country, region, amountArg string
	switch len(positional) {
	case 2:
		country, amountArg = positional[0], positional[1]
	case 3:
		country, region, amountArg = positional[0], positional[1], positional[2]
	default:
		return fmt.Errorf("add needs <country|*> [region] <amount>")
	}

	amount, err := decimal.NewFromString(amountArg)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amountArg, err)
	}

	country = strings.ToUpper(country)
	result := <-controller.SelectCountry(ctx, session, country)
	if _, err := controller.ApplyRegions(session, result); err != nil {
		return err
	}

	if region != "" {
		if session.Regions.NoRegions {
			if country == taxrate.AllCountries {
				return fmt.Errorf("a rate for all countries cannot have a region")
			}
		} else {
			code, ok := matchRegion(session.Regions, region)
			if !ok {
				return fmt.Errorf("unknown region %q for %s", region, country)
			}
			region = code
		}
	}

	controller.SetDraftRegion(session, region)
	controller.SetDraftAmount(session, amount)

	added, err := controller.AddRate(session, func(w *errors.Warning) bool {
		if confirmAll {
			return true
		}
		return prompt("⚠️  " + w.Message)
	})
	if err != nil {
		return err
	}

	fmt.Printf("➕ Added %s at %s%%\n", added.ScopeLabel(), added.Amount.String())
	return nil
}

func changeRate(controller *taxtable.Controller, session *taxtable.Session, command string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%s needs <id>", command)
	}
	key, err := keyForID(session, args[0])
	if err != nil {
		return err
	}

	switch command {
	case "activate":
		return controller.Activate(session, key)
	case "deactivate":
		return controller.Deactivate(session, key)
	default:
		return controller.Remove(session, key)
	}
}

func bulkChange(controller *taxtable.Controller, session *taxtable.Session, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("bulk needs <activate|deactivate> <id>...")
	}

	var status domain.TaxRateStatus
	switch args[0] {
	case "activate":
		status = domain.TaxRateStatusActive
	case "deactivate":
		status = domain.TaxRateStatusInactive
	default:
		return fmt.Errorf("unknown bulk action %q", args[0])
	}

	keys := make([]string, 0, len(args)-1)
	for _, arg := range args[1:] {
		key, err := keyForID(session, arg)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}

	_, err := controller.BulkApply(session, keys, status)
	return err
}

func keyForID(session *taxtable.Session, arg string) (string, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid rate ID %q", arg)
	}
	for _, r := range session.Rates.Records() {
		if r.ID != nil && *r.ID == id {
			return r.Key, nil
		}
	}
	return "", &errors.ErrNotFound{Resource: "tax rate", ID: arg}
}

func matchRegion(opts taxtable.RegionOptions, region string) (string, bool) {
	for _, r := range opts.Regions {
		if strings.EqualFold(r.Code, region) || strings.EqualFold(r.Name, region) {
			return r.Code, true
		}
	}
	return "", false
}

func prompt(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printRates(records []taxrate.Record) {
	if len(records) == 0 {
		fmt.Println("No tax rates.")
		return
	}

	fmt.Printf("%-6s %-24s %-10s %s\n", "ID", "Scope", "Rate", "Status")
	for _, r := range records {
		id := "-"
		if r.ID != nil {
			id = strconv.FormatInt(*r.ID, 10)
		}
		fmt.Printf("%-6s %-24s %-10s %s\n", id, r.ScopeLabel(), r.Amount.String()+"%", r.Status)
	}
}

func reportError(err error) {
	var validation *errors.ErrValidation
	var warning *errors.Warning
	var syncErr *errors.ErrSync
	var notFound *errors.ErrNotFound

	switch {
	case stderrors.As(err, &validation):
		fmt.Printf("❌ %s\n", validation.Message)
	case stderrors.As(err, &warning):
		fmt.Printf("↩️  Cancelled: %s\n", warning.Message)
	case stderrors.As(err, &syncErr):
		fmt.Fprintf(os.Stderr, "❌ Could not reach the admin API: %v\n", syncErr)
	case stderrors.As(err, &notFound):
		fmt.Printf("❌ %v\n", notFound)
	default:
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	}
}
