package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dealdesk/cmd/dealdesk/ui"
	"dealdesk/internal/api"
	"dealdesk/internal/transfer"
)

var exportFlags struct {
	format string
	out    string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the filtered contract list to JSON or CSV",
	Long: `Exports the currently filtered contract list client-side, no server
round-trip beyond the initial fetch. CSV uses a fixed column set with every
field double-quoted. Takes the same filter flags as "contracts list".`,
	RunE: runExport,
}

var importYes bool

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Create contracts from a JSON file",
	Long: `Reads a JSON array of contract records, validates that each has
creator_id, brand_id and contract_type, confirms, then issues one create call
per valid record and reports aggregate success/failure counts.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.format, "format", "json", "output format: json or csv")
	f.StringVarP(&exportFlags.out, "out", "o", "", "output file (default stdout)")
	f.StringVar(&listFlags.status, "status", "", "filter by status")
	f.StringVar(&listFlags.ctype, "type", "", "filter by contract type")
	f.StringVar(&listFlags.minBudget, "min-budget", "", "inclusive minimum budget")
	f.StringVar(&listFlags.maxBudget, "max-budget", "", "inclusive maximum budget")
	f.StringVar(&listFlags.from, "from", "", "earliest start date (YYYY-MM-DD)")
	f.StringVar(&listFlags.to, "to", "", "latest start date (YYYY-MM-DD)")
	f.StringVar(&listFlags.creator, "creator", "", "creator id substring")
	f.StringVar(&listFlags.brand, "brand", "", "brand id substring")
	f.StringVar(&listFlags.search, "search", "", "free text across title/creator/brand")

	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip confirmation")
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter()
	if err != nil {
		return err
	}

	contracts, err := client.ListContracts(cmd.Context(), api.ContractQuery{})
	if err != nil {
		return userFacing(err)
	}
	filtered := filter.Apply(contracts)

	out := os.Stdout
	if exportFlags.out != "" {
		f, err := os.Create(exportFlags.out)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch exportFlags.format {
	case "json":
		err = transfer.WriteJSON(out, filtered)
	case "csv":
		err = transfer.WriteCSV(out, filtered)
	default:
		return fmt.Errorf("unknown format %q, want json or csv", exportFlags.format)
	}
	if err != nil {
		return err
	}
	if exportFlags.out != "" {
		fmt.Printf("exported %d contracts to %s\n", len(filtered), exportFlags.out)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	styles := ui.StylesFor(cfg.UI.Theme)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	records, err := transfer.ReadRecords(f)
	if err != nil {
		return err
	}

	valid := 0
	for _, rec := range records {
		if rec.Validate() == nil {
			valid++
		}
	}
	fmt.Printf("%d records in file, %d valid\n", len(records), valid)
	if valid == 0 {
		fmt.Println(styles.Muted.Render("nothing to import"))
		return nil
	}

	if !importYes {
		fmt.Printf("create %d contracts? [y/N] ", valid)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Println("aborted")
			return nil
		}
	}

	report := transfer.Import(cmd.Context(), client, records)
	fmt.Println(report.Summary())
	for _, p := range report.Problems {
		fmt.Println(styles.Warning.Render("  " + p))
	}
	return nil
}
