package contract

import (
	"strings"
	"time"
)

// Filter is the client-side predicate set applied to an in-memory contract
// list. The zero value matches every contract; each populated field adds one
// conjunct. Budget bounds are inclusive. All substring matches are
// case-insensitive.
type Filter struct {
	Status       Status
	ContractType Type
	MinBudget    *float64
	MaxBudget    *float64
	StartAfter   *time.Time
	StartBefore  *time.Time
	CreatorID    string
	BrandID      string
	Search       string
}

// IsZero reports whether no predicate is active.
func (f Filter) IsZero() bool {
	return f.Status == "" && f.ContractType == "" &&
		f.MinBudget == nil && f.MaxBudget == nil &&
		f.StartAfter == nil && f.StartBefore == nil &&
		f.CreatorID == "" && f.BrandID == "" && f.Search == ""
}

// Match reports whether c satisfies every active predicate.
func (f Filter) Match(c Contract) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.ContractType != "" && c.ContractType != f.ContractType {
		return false
	}
	if f.MinBudget != nil {
		if c.Budget == nil || *c.Budget < *f.MinBudget {
			return false
		}
	}
	if f.MaxBudget != nil {
		if c.Budget == nil || *c.Budget > *f.MaxBudget {
			return false
		}
	}
	if f.StartAfter != nil {
		if c.StartDate == nil || c.StartDate.Before(*f.StartAfter) {
			return false
		}
	}
	if f.StartBefore != nil {
		if c.StartDate == nil || c.StartDate.After(*f.StartBefore) {
			return false
		}
	}
	if f.CreatorID != "" && !containsFold(c.CreatorID, f.CreatorID) {
		return false
	}
	if f.BrandID != "" && !containsFold(c.BrandID, f.BrandID) {
		return false
	}
	if f.Search != "" {
		if !containsFold(c.Title, f.Search) &&
			!containsFold(c.CreatorID, f.Search) &&
			!containsFold(c.BrandID, f.Search) {
			return false
		}
	}
	return true
}

// Apply returns the subset of contracts matching the filter, preserving
// input order. The input slice is never mutated.
func (f Filter) Apply(contracts []Contract) []Contract {
	if f.IsZero() {
		out := make([]Contract, len(contracts))
		copy(out, contracts)
		return out
	}
	out := make([]Contract, 0, len(contracts))
	for _, c := range contracts {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
