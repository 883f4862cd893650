// Package wizard implements the four-step contract generator as an explicit
// state machine. Steps are a typed enumeration and the machine only ever
// moves one step at a time, so an illegal jump is unrepresentable; the
// Pricing -> Result transition happens only by attaching a generation result.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"dealdesk/internal/api"
	"dealdesk/internal/contract"
)

// Step identifies one wizard page.
type Step int

const (
	StepBasicInfo Step = iota
	StepContentRequirements
	StepPricing
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepBasicInfo:
		return "basic info"
	case StepContentRequirements:
		return "content requirements"
	case StepPricing:
		return "pricing"
	case StepResult:
		return "result"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Draft accumulates form input across the steps. Numeric fields stay raw
// strings until validation so partial input never crashes the form.
type Draft struct {
	// Basic info
	CreatorID    string
	BrandID      string
	Title        string
	ContractType contract.Type

	// Content requirements
	Platform     string
	ContentType  string
	Requirements string

	// Pricing and legal
	MinBudget         string
	MaxBudget         string
	StartDate         string
	EndDate           string
	Jurisdiction      string
	DisputeResolution string
	CustomLawText     string
	CustomDisputeText string
}

// Machine is the wizard state: current step, accumulated draft, and the
// generation result once one exists.
type Machine struct {
	step   Step
	Draft  Draft
	Result *api.GeneratedContract
}

// New starts a machine on the basic-info step.
func New() *Machine {
	return &Machine{step: StepBasicInfo}
}

// Step returns the current step.
func (m *Machine) Step() Step {
	return m.step
}

// Next validates the current step and advances by one. The result step is
// reachable only through SetResult, never through Next.
func (m *Machine) Next() error {
	switch m.step {
	case StepBasicInfo:
		if err := m.validateBasicInfo(); err != nil {
			return err
		}
		m.step = StepContentRequirements
	case StepContentRequirements:
		// Free-form step, nothing to guard.
		m.step = StepPricing
	case StepPricing:
		return errors.New("pricing completes via generation, not next")
	case StepResult:
		return errors.New("already on the final step")
	}
	return nil
}

// Back retreats one step. Backing out of the result discards it.
func (m *Machine) Back() {
	if m.step == StepResult {
		m.Result = nil
	}
	if m.step > StepBasicInfo {
		m.step--
	}
}

// SetResult attaches a generation result and moves to the result step.
// Only legal from pricing, after ValidateForGeneration has passed.
func (m *Machine) SetResult(gen api.GeneratedContract) error {
	if m.step != StepPricing {
		return fmt.Errorf("cannot attach a result on the %s step", m.step)
	}
	if err := m.ValidateForGeneration(); err != nil {
		return err
	}
	m.Result = &gen
	m.step = StepResult
	return nil
}

// validateBasicInfo enforces the required fields of the first step.
func (m *Machine) validateBasicInfo() error {
	d := m.Draft
	if strings.TrimSpace(d.CreatorID) == "" {
		return errors.New("creator id is required")
	}
	if strings.TrimSpace(d.BrandID) == "" {
		return errors.New("brand id is required")
	}
	if !contract.ValidType(d.ContractType) {
		return fmt.Errorf("contract type must be one of %v", contract.ValidTypes)
	}
	return nil
}

// ValidateForGeneration runs the full pre-generation rule set: required ids,
// distinct creator and brand, positive budgets with min strictly below max,
// and jurisdiction/dispute fields with custom text when custom is selected.
func (m *Machine) ValidateForGeneration() error {
	if err := m.validateBasicInfo(); err != nil {
		return err
	}
	d := m.Draft

	if strings.TrimSpace(d.CreatorID) == strings.TrimSpace(d.BrandID) {
		return errors.New("creator and brand must be different users")
	}

	min, ok := contract.ParseBudget(d.MinBudget)
	if !ok || min <= 0 {
		return errors.New("minimum budget must be a positive number")
	}
	max, ok := contract.ParseBudget(d.MaxBudget)
	if !ok || max <= 0 {
		return errors.New("maximum budget must be a positive number")
	}
	if min >= max {
		return errors.New("minimum budget must be below the maximum")
	}

	if strings.TrimSpace(d.Jurisdiction) == "" {
		return errors.New("jurisdiction is required")
	}
	if strings.TrimSpace(d.DisputeResolution) == "" {
		return errors.New("dispute resolution method is required")
	}
	if d.Jurisdiction == contract.JurisdictionCustom && strings.TrimSpace(d.CustomLawText) == "" {
		return errors.New("custom jurisdiction requires governing-law text")
	}
	if d.DisputeResolution == contract.JurisdictionCustom && strings.TrimSpace(d.CustomDisputeText) == "" {
		return errors.New("custom dispute resolution requires a description")
	}
	return nil
}

// GenerationPayload assembles the full draft for the generation endpoint.
// Call only after ValidateForGeneration has passed.
func (m *Machine) GenerationPayload() map[string]any {
	d := m.Draft
	min, _ := contract.ParseBudget(d.MinBudget)
	max, _ := contract.ParseBudget(d.MaxBudget)

	laws := d.CustomLawText
	if text, ok := contract.ApplicableLaws(d.Jurisdiction); ok {
		laws = text
	}

	payload := map[string]any{
		"creator_id":         d.CreatorID,
		"brand_id":           d.BrandID,
		"contract_type":      d.ContractType,
		"min_budget":         min,
		"max_budget":         max,
		"jurisdiction":       d.Jurisdiction,
		"dispute_resolution": d.DisputeResolution,
		"applicable_laws":    laws,
	}
	if d.Title != "" {
		payload["title"] = d.Title
	}
	if d.StartDate != "" {
		payload["start_date"] = d.StartDate
	}
	if d.EndDate != "" {
		payload["end_date"] = d.EndDate
	}
	if req := contract.StripEmpty(map[string]any{
		"platform":     d.Platform,
		"content_type": d.ContentType,
		"requirements": d.Requirements,
	}); len(req) > 0 {
		payload["content_requirements"] = req
	}
	if d.DisputeResolution == contract.JurisdictionCustom {
		payload["custom_dispute_resolution"] = d.CustomDisputeText
	}
	return payload
}

// ApplyPricingRecommendation overwrites the budget band around a recommended
// price: min and max become the -30%/+30% bounds.
func (m *Machine) ApplyPricingRecommendation(recommended float64) {
	min, max := Band(recommended)
	m.Draft.MinBudget = formatBudget(min)
	m.Draft.MaxBudget = formatBudget(max)
}

// Band returns the +-30% budget band around a recommended price.
func Band(recommended float64) (min, max float64) {
	return recommended * 0.7, recommended * 1.3
}

func formatBudget(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

// CreatePayload converts a generation result into the create-contract
// payload for the one-action "create from draft" flow.
func CreatePayload(gen api.GeneratedContract) map[string]any {
	payload := map[string]any{
		"creator_id":    gen.CreatorID,
		"brand_id":      gen.BrandID,
		"contract_type": gen.ContractType,
		"budget":        gen.Budget,
		"status":        contract.StatusDraft,
	}
	if gen.Title != "" {
		payload["title"] = gen.Title
	}
	if gen.StartDate != "" {
		payload["start_date"] = gen.StartDate
	}
	if gen.EndDate != "" {
		payload["end_date"] = gen.EndDate
	}
	for key, group := range map[string]map[string]any{
		"terms_and_conditions": gen.TermsAndConditions,
		"payment_terms":        gen.PaymentTerms,
		"deliverables":         gen.Deliverables,
		"legal_compliance":     gen.LegalCompliance,
	} {
		if cleaned := contract.StripEmpty(group); len(cleaned) > 0 {
			payload[key] = cleaned
		}
	}
	return payload
}
