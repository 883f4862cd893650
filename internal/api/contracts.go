package api

import (
	"context"
	"fmt"
	"net/url"

	"dealdesk/internal/contract"
)

// ContractQuery maps to the backend's query-string filters on the contract
// list endpoint. Zero values are omitted. This is the server-side filter; the
// richer client-side predicate lives in the contract package.
type ContractQuery struct {
	Status       contract.Status
	ContractType contract.Type
	CreatorID    string
	BrandID      string
}

func (q ContractQuery) values() url.Values {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	if q.ContractType != "" {
		v.Set("contract_type", string(q.ContractType))
	}
	if q.CreatorID != "" {
		v.Set("creator_id", q.CreatorID)
	}
	if q.BrandID != "" {
		v.Set("brand_id", q.BrandID)
	}
	return v
}

// ListContracts fetches contracts, optionally filtered server-side.
func (c *Client) ListContracts(ctx context.Context, q ContractQuery) ([]contract.Contract, error) {
	var out []contract.Contract
	if err := c.get(ctx, "/contracts", q.values(), &out); err != nil {
		return nil, fmt.Errorf("list contracts: %w", err)
	}
	return out, nil
}

// GetContract fetches one contract by id.
func (c *Client) GetContract(ctx context.Context, id string) (contract.Contract, error) {
	var out contract.Contract
	if err := c.get(ctx, "/contracts/"+url.PathEscape(id), nil, &out); err != nil {
		return contract.Contract{}, fmt.Errorf("get contract %s: %w", id, err)
	}
	return out, nil
}

// CreateContract creates a contract from an assembled payload and returns
// the backend's record.
func (c *Client) CreateContract(ctx context.Context, payload map[string]any) (contract.Contract, error) {
	var out contract.Contract
	if err := c.post(ctx, "/contracts", payload, &out); err != nil {
		return contract.Contract{}, fmt.Errorf("create contract: %w", err)
	}
	return out, nil
}

// UpdateContract replaces the mutable fields of a contract.
func (c *Client) UpdateContract(ctx context.Context, id string, payload map[string]any) (contract.Contract, error) {
	var out contract.Contract
	if err := c.put(ctx, "/contracts/"+url.PathEscape(id), payload, &out); err != nil {
		return contract.Contract{}, fmt.Errorf("update contract %s: %w", id, err)
	}
	return out, nil
}

// DeleteContract removes a contract.
func (c *Client) DeleteContract(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/contracts/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete contract %s: %w", id, err)
	}
	return nil
}

// PostUpdateEvent posts a single partial-update event. The backend owns the
// patch semantics; the client only guarantees the event is non-empty.
func (c *Client) PostUpdateEvent(ctx context.Context, ev contract.UpdateEvent) error {
	path := "/contracts/" + url.PathEscape(ev.ContractID) + "/updates"
	if err := c.post(ctx, path, ev, nil); err != nil {
		return fmt.Errorf("post update for contract %s: %w", ev.ContractID, err)
	}
	return nil
}
