package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealdesk/internal/api"
	"dealdesk/internal/contract"
)

func validDraft() Draft {
	return Draft{
		CreatorID:         "u113",
		BrandID:           "u114",
		ContractType:      contract.TypeOneTime,
		MinBudget:         "500",
		MaxBudget:         "5000",
		Jurisdiction:      "us_federal",
		DisputeResolution: "arbitration",
	}
}

func TestNextBlockedOnMissingBasicInfo(t *testing.T) {
	m := New()
	require.Equal(t, StepBasicInfo, m.Step())

	err := m.Next()
	assert.Error(t, err)
	// No transition happened.
	assert.Equal(t, StepBasicInfo, m.Step())

	m.Draft.CreatorID = "u113"
	err = m.Next()
	assert.Error(t, err, "brand still missing")
	assert.Equal(t, StepBasicInfo, m.Step())
}

func TestLinearAdvance(t *testing.T) {
	m := New()
	m.Draft = validDraft()

	require.NoError(t, m.Next())
	assert.Equal(t, StepContentRequirements, m.Step())

	// Content step is unguarded.
	require.NoError(t, m.Next())
	assert.Equal(t, StepPricing, m.Step())

	// Pricing never advances via Next.
	assert.Error(t, m.Next())
	assert.Equal(t, StepPricing, m.Step())
}

func TestBackRetreatsAndDiscardsResult(t *testing.T) {
	m := New()
	m.Draft = validDraft()
	require.NoError(t, m.Next())
	require.NoError(t, m.Next())
	require.NoError(t, m.SetResult(api.GeneratedContract{Title: "draft"}))
	require.Equal(t, StepResult, m.Step())

	m.Back()
	assert.Equal(t, StepPricing, m.Step())
	assert.Nil(t, m.Result)

	m.Back()
	m.Back()
	assert.Equal(t, StepBasicInfo, m.Step())
	m.Back()
	assert.Equal(t, StepBasicInfo, m.Step(), "cannot retreat past the first step")
}

func TestValidateForGeneration(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr string
	}{
		{"valid", func(d *Draft) {}, ""},
		{"same creator and brand", func(d *Draft) { d.BrandID = d.CreatorID }, "different"},
		{"missing min budget", func(d *Draft) { d.MinBudget = "" }, "minimum budget"},
		{"negative min budget", func(d *Draft) { d.MinBudget = "-5" }, "minimum budget"},
		{"min equals max", func(d *Draft) { d.MinBudget = "5000" }, "below the maximum"},
		{"min above max", func(d *Draft) { d.MinBudget = "9000" }, "below the maximum"},
		{"missing jurisdiction", func(d *Draft) { d.Jurisdiction = "" }, "jurisdiction"},
		{"missing dispute", func(d *Draft) { d.DisputeResolution = "" }, "dispute"},
		{"custom jurisdiction without text", func(d *Draft) { d.Jurisdiction = contract.JurisdictionCustom }, "custom jurisdiction"},
		{"custom dispute without text", func(d *Draft) { d.DisputeResolution = contract.JurisdictionCustom }, "custom dispute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Draft = validDraft()
			tt.mutate(&m.Draft)
			err := m.ValidateForGeneration()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSetResultGuarded(t *testing.T) {
	m := New()
	m.Draft = validDraft()
	m.Draft.MinBudget = "5000" // equal to max, invalid

	require.NoError(t, m.Next())
	require.NoError(t, m.Next())

	err := m.SetResult(api.GeneratedContract{})
	assert.Error(t, err)
	assert.Equal(t, StepPricing, m.Step())

	// Also illegal from any step other than pricing.
	m2 := New()
	assert.Error(t, m2.SetResult(api.GeneratedContract{}))
}

func TestPricingBand(t *testing.T) {
	min, max := Band(2000)
	assert.Equal(t, 1400.0, min)
	assert.Equal(t, 2600.0, max)
}

func TestApplyPricingRecommendationOverwritesBudgets(t *testing.T) {
	m := New()
	m.Draft = validDraft() // 500 - 5000 before
	m.ApplyPricingRecommendation(2000)

	assert.Equal(t, "1400", m.Draft.MinBudget)
	assert.Equal(t, "2600", m.Draft.MaxBudget)

	m.ApplyPricingRecommendation(99.5)
	assert.Equal(t, "69.65", m.Draft.MinBudget)
}

func TestGenerationPayloadResolvesLaws(t *testing.T) {
	m := New()
	m.Draft = validDraft()
	m.Draft.Platform = "instagram"
	m.Draft.Requirements = ""

	payload := m.GenerationPayload()
	assert.Equal(t, "u113", payload["creator_id"])
	assert.Equal(t, 500.0, payload["min_budget"])
	assert.NotEmpty(t, payload["applicable_laws"])

	req := payload["content_requirements"].(map[string]any)
	assert.Equal(t, "instagram", req["platform"])
	assert.NotContains(t, req, "requirements")
}

func TestCreatePayloadFromResult(t *testing.T) {
	gen := api.GeneratedContract{
		Title:        "Summer Push",
		CreatorID:    "u113",
		BrandID:      "u114",
		ContractType: contract.TypeOneTime,
		Budget:       2100,
		PaymentTerms: map[string]any{"schedule": "net30", "empty": ""},
	}

	payload := CreatePayload(gen)
	assert.Equal(t, contract.StatusDraft, payload["status"])
	assert.Equal(t, 2100.0, payload["budget"])
	terms := payload["payment_terms"].(map[string]any)
	assert.Equal(t, map[string]any{"schedule": "net30"}, terms)
	assert.NotContains(t, payload, "terms_and_conditions")
}
