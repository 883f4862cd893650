package api

import (
	"context"
	"fmt"

	"dealdesk/internal/contract"
)

// AI endpoints. Request and response shapes are owned by the backend and
// consumed as-is; the client adds no interpretation.

// ChatRequest is one turn sent to the assistant.
type ChatRequest struct {
	Query      string `json:"query"`
	ContractID string `json:"contract_id,omitempty"`
}

// ChatResponse is the assistant's reply: text plus an optional structured
// analysis block and suggestion chips.
type ChatResponse struct {
	Reply       string         `json:"reply"`
	Analysis    map[string]any `json:"analysis,omitempty"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// Chat sends one user turn and returns the assistant's reply. One request
// per turn; no streaming, no retry.
func (c *Client) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	var out ChatResponse
	if err := c.post(ctx, "/contracts/ai/chat", req, &out); err != nil {
		return ChatResponse{}, fmt.Errorf("assistant chat: %w", err)
	}
	return out, nil
}

// GeneratedContract is the AI-drafted contract returned by the generation
// endpoint, displayed on the wizard's result step.
type GeneratedContract struct {
	Title              string         `json:"title"`
	CreatorID          string         `json:"creator_id"`
	BrandID            string         `json:"brand_id"`
	ContractType       contract.Type  `json:"contract_type"`
	Budget             float64        `json:"budget"`
	StartDate          string         `json:"start_date,omitempty"`
	EndDate            string         `json:"end_date,omitempty"`
	TermsAndConditions map[string]any `json:"terms_and_conditions,omitempty"`
	PaymentTerms       map[string]any `json:"payment_terms,omitempty"`
	Deliverables       map[string]any `json:"deliverables,omitempty"`
	LegalCompliance    map[string]any `json:"legal_compliance,omitempty"`
	RiskScore          float64        `json:"risk_score"`
	Suggestions        []string       `json:"suggestions,omitempty"`
}

// Generate posts the wizard draft and returns the AI-drafted contract.
func (c *Client) Generate(ctx context.Context, draft map[string]any) (GeneratedContract, error) {
	var out GeneratedContract
	if err := c.post(ctx, "/contracts/generation/generate", draft, &out); err != nil {
		return GeneratedContract{}, fmt.Errorf("generate contract: %w", err)
	}
	return out, nil
}

// AvailableUsers lists the creators and brands eligible for generation.
func (c *Client) AvailableUsers(ctx context.Context) ([]contract.User, error) {
	var out []contract.User
	if err := c.get(ctx, "/contracts/generation/available-users", nil, &out); err != nil {
		return nil, fmt.Errorf("list available users: %w", err)
	}
	return out, nil
}

// PricingRequest asks for a recommended price for a pairing.
type PricingRequest struct {
	CreatorID    string        `json:"creator_id"`
	BrandID      string        `json:"brand_id"`
	ContractType contract.Type `json:"contract_type,omitempty"`
}

// PricingResponse carries the backend's recommendation.
type PricingResponse struct {
	RecommendedPrice float64 `json:"recommended_price"`
}

// PricingRecommendation fetches a recommended price for a creator/brand pair.
func (c *Client) PricingRecommendation(ctx context.Context, req PricingRequest) (PricingResponse, error) {
	var out PricingResponse
	if err := c.post(ctx, "/pricing/recommendation", req, &out); err != nil {
		return PricingResponse{}, fmt.Errorf("pricing recommendation: %w", err)
	}
	return out, nil
}
