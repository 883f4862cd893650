package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"dealdesk/internal/contract"
)

// ContractCreator is the slice of the API client the importer needs.
type ContractCreator interface {
	CreateContract(ctx context.Context, payload map[string]any) (contract.Contract, error)
}

// Record is one raw entry from an import file.
type Record map[string]any

// Report aggregates the outcome of an import run.
type Report struct {
	Total    int
	Invalid  int
	Created  int
	Failed   int
	Problems []string
}

// Summary renders the aggregate counts for the user.
func (r Report) Summary() string {
	return fmt.Sprintf("%d records: %d created, %d invalid, %d failed", r.Total, r.Created, r.Invalid, r.Failed)
}

// ReadRecords decodes an import file into raw records.
func ReadRecords(r io.Reader) ([]Record, error) {
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}
	return records, nil
}

// Validate checks that a record carries the required identity fields:
// creator_id, brand_id and contract_type, each a non-empty string.
func (rec Record) Validate() error {
	for _, key := range []string{"creator_id", "brand_id", "contract_type"} {
		v, ok := rec[key]
		if !ok {
			return fmt.Errorf("missing %s", key)
		}
		s, ok := v.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("empty %s", key)
		}
	}
	if t, _ := rec["contract_type"].(string); !contract.ValidType(contract.Type(t)) {
		return fmt.Errorf("unknown contract_type %q", t)
	}
	return nil
}

// Import creates one contract per valid record, sequentially, and reports
// aggregate counts. Invalid records are skipped without a request; a failed
// create is counted and recorded but does not stop the run.
func Import(ctx context.Context, client ContractCreator, records []Record) Report {
	report := Report{Total: len(records)}
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			report.Invalid++
			report.Problems = append(report.Problems, fmt.Sprintf("record %d skipped: %v", i+1, err))
			continue
		}
		payload := contract.StripEmpty(map[string]any(rec))
		if _, err := client.CreateContract(ctx, payload); err != nil {
			report.Failed++
			report.Problems = append(report.Problems, fmt.Sprintf("record %d failed: %v", i+1, err))
			continue
		}
		report.Created++
	}
	return report
}
