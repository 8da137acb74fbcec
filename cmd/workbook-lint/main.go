package main

import (
	"context"
	"fmt"
	"os"

	"github.com/molekadoces/dashboard_backend/ingestion"
	"github.com/molekadoces/dashboard_backend/models/reports"
)

// workbook-lint loads a workbook the same way the server does and prints
// what survived ingestion. Run it against a new spreadsheet before pointing
// the dashboard at it; rejected rows show up as warnings on stderr via the
// shared logger.
//
// Usage: workbook-lint <path-or-url>
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: workbook-lint <path-or-url>")
		os.Exit(2)
	}

	ds, err := ingestion.LoadData(context.Background(), os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("source:   %s\n", ds.Source)
	fmt.Printf("sales:    %d records\n", len(ds.Sales))
	if len(ds.Sales) > 0 {
		fmt.Printf("          %s .. %s\n",
			ds.Sales[0].SaleDate.Format("2006-01-02"),
			ds.Sales[len(ds.Sales)-1].SaleDate.Format("2006-01-02"))
	}
	fmt.Printf("expenses: %d records\n", len(ds.Expenses))
	if len(ds.Expenses) > 0 {
		fmt.Printf("          %s .. %s\n",
			ds.Expenses[0].PurchaseDate.Format("2006-01-02"),
			ds.Expenses[len(ds.Expenses)-1].PurchaseDate.Format("2006-01-02"))
	}

	opts := reports.GetFilterOptionsReport(ds.Sales)
	fmt.Printf("client types: %v\n", opts.ClientTypes)
	fmt.Printf("products:     %d distinct\n", len(opts.ProductNames))
	fmt.Printf("flavors:      %d distinct\n", len(opts.Flavors))
	fmt.Printf("years:        %v\n", opts.Years)
}
