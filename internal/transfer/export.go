// Package transfer implements client-side file export and import for the
// contract list: JSON and CSV snapshots of the filtered in-memory list, and
// batch creation from a user-supplied JSON file. No server round-trip is
// involved in export.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"dealdesk/internal/contract"
)

// csvColumns is the fixed export column set.
var csvColumns = []string{
	"id", "title", "creator_id", "brand_id", "contract_type",
	"status", "budget", "start_date", "end_date", "created_at",
}

// WriteJSON writes the contract list as indented JSON.
func WriteJSON(w io.Writer, contracts []contract.Contract) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(contracts); err != nil {
		return fmt.Errorf("failed to encode contracts: %w", err)
	}
	return nil
}

// WriteCSV writes the contract list as CSV: one header line plus one line
// per contract, every field double-quoted. Embedded quotes are doubled;
// nothing else is escaped.
func WriteCSV(w io.Writer, contracts []contract.Contract) error {
	if err := writeCSVRow(w, csvColumns); err != nil {
		return err
	}
	for _, c := range contracts {
		row := []string{
			c.ID,
			c.Title,
			c.CreatorID,
			c.BrandID,
			string(c.ContractType),
			string(c.Status),
			formatBudget(c.Budget),
			formatDate(c.StartDate),
			formatDate(c.EndDate),
			c.CreatedAt.Format(time.RFC3339),
		}
		if err := writeCSVRow(w, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVRow(w io.Writer, fields []string) error {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	if _, err := io.WriteString(w, strings.Join(quoted, ",")+"\n"); err != nil {
		return fmt.Errorf("failed to write csv row: %w", err)
	}
	return nil
}

func formatBudget(b *float64) string {
	if b == nil {
		return ""
	}
	return fmt.Sprintf("%g", *b)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
