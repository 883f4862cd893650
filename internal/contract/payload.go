package contract

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Draft carries the raw form input for a create or edit call before it is
// assembled into a payload. Nested groups arrive as loosely typed maps; the
// assembly rules below decide what actually goes over the wire.
type Draft struct {
	CreatorID    string
	BrandID      string
	Title        string
	ContractType Type
	Budget       string // raw user input, coerced during assembly
	StartDate    *time.Time
	EndDate      *time.Time
	Status       Status

	Terms        map[string]any
	PaymentTerms map[string]any
	Deliverables map[string]any
	Legal        map[string]any
}

// BuildPayload assembles the wire payload for a create or full-edit call.
// Empty-string entries are stripped from each nested group, and groups left
// empty after stripping are omitted entirely. The budget string is coerced
// to a number; unparsable or NaN input is discarded rather than sent.
func (d Draft) BuildPayload() map[string]any {
	payload := map[string]any{
		"creator_id":    d.CreatorID,
		"brand_id":      d.BrandID,
		"contract_type": d.ContractType,
	}
	if d.Title != "" {
		payload["title"] = d.Title
	}
	if d.Status != "" {
		payload["status"] = d.Status
	}
	if b, ok := ParseBudget(d.Budget); ok {
		payload["budget"] = b
	}
	if d.StartDate != nil {
		payload["start_date"] = d.StartDate.Format(time.RFC3339)
	}
	if d.EndDate != nil {
		payload["end_date"] = d.EndDate.Format(time.RFC3339)
	}

	for key, group := range map[string]map[string]any{
		"terms_and_conditions": d.Terms,
		"payment_terms":        d.PaymentTerms,
		"deliverables":         d.Deliverables,
		"legal_compliance":     d.Legal,
	} {
		if cleaned := StripEmpty(group); len(cleaned) > 0 {
			payload[key] = cleaned
		}
	}
	return payload
}

// StripEmpty returns a copy of group without empty-string and nil values.
// Nested maps are stripped recursively and dropped when nothing survives.
func StripEmpty(group map[string]any) map[string]any {
	if len(group) == 0 {
		return nil
	}
	out := make(map[string]any, len(group))
	for k, v := range group {
		switch val := v.(type) {
		case nil:
			continue
		case string:
			if strings.TrimSpace(val) == "" {
				continue
			}
			out[k] = val
		case map[string]any:
			if cleaned := StripEmpty(val); len(cleaned) > 0 {
				out[k] = cleaned
			}
		default:
			out[k] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseBudget coerces raw user input to a budget value. Empty, unparsable,
// NaN and infinite inputs are rejected.
func ParseBudget(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
