package api

import (
	"context"
	"fmt"
	"net/url"

	"dealdesk/internal/contract"
)

// Sub-resource endpoints. Each record is scoped to a contract by foreign id;
// the client enforces no relational integrity and trusts backend consistency.

// ListTemplates fetches the reusable contract templates.
func (c *Client) ListTemplates(ctx context.Context) ([]contract.Template, error) {
	var out []contract.Template
	if err := c.get(ctx, "/contracts/templates", nil, &out); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return out, nil
}

// GetTemplate fetches one template by id.
func (c *Client) GetTemplate(ctx context.Context, id string) (contract.Template, error) {
	var out contract.Template
	if err := c.get(ctx, "/contracts/templates/"+url.PathEscape(id), nil, &out); err != nil {
		return contract.Template{}, fmt.Errorf("get template %s: %w", id, err)
	}
	return out, nil
}

// CreateTemplate stores a new template.
func (c *Client) CreateTemplate(ctx context.Context, payload map[string]any) (contract.Template, error) {
	var out contract.Template
	if err := c.post(ctx, "/contracts/templates", payload, &out); err != nil {
		return contract.Template{}, fmt.Errorf("create template: %w", err)
	}
	return out, nil
}

// UpdateTemplate replaces the mutable fields of a template.
func (c *Client) UpdateTemplate(ctx context.Context, id string, payload map[string]any) (contract.Template, error) {
	var out contract.Template
	if err := c.put(ctx, "/contracts/templates/"+url.PathEscape(id), payload, &out); err != nil {
		return contract.Template{}, fmt.Errorf("update template %s: %w", id, err)
	}
	return out, nil
}

// DeleteTemplate removes a template.
func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	if err := c.delete(ctx, "/contracts/templates/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete template %s: %w", id, err)
	}
	return nil
}

// ListMilestones fetches the milestones of a contract.
func (c *Client) ListMilestones(ctx context.Context, contractID string) ([]contract.Milestone, error) {
	var out []contract.Milestone
	if err := c.get(ctx, "/contracts/"+url.PathEscape(contractID)+"/milestones", nil, &out); err != nil {
		return nil, fmt.Errorf("list milestones for %s: %w", contractID, err)
	}
	return out, nil
}

// CreateMilestone adds a milestone to a contract.
func (c *Client) CreateMilestone(ctx context.Context, contractID string, payload map[string]any) (contract.Milestone, error) {
	var out contract.Milestone
	if err := c.post(ctx, "/contracts/"+url.PathEscape(contractID)+"/milestones", payload, &out); err != nil {
		return contract.Milestone{}, fmt.Errorf("create milestone for %s: %w", contractID, err)
	}
	return out, nil
}

// GetMilestone fetches one milestone of a contract.
func (c *Client) GetMilestone(ctx context.Context, contractID, id string) (contract.Milestone, error) {
	var out contract.Milestone
	if err := c.get(ctx, "/contracts/"+url.PathEscape(contractID)+"/milestones/"+url.PathEscape(id), nil, &out); err != nil {
		return contract.Milestone{}, fmt.Errorf("get milestone %s: %w", id, err)
	}
	return out, nil
}

// UpdateMilestone replaces the mutable fields of a milestone.
func (c *Client) UpdateMilestone(ctx context.Context, contractID, id string, payload map[string]any) (contract.Milestone, error) {
	var out contract.Milestone
	if err := c.put(ctx, "/contracts/"+url.PathEscape(contractID)+"/milestones/"+url.PathEscape(id), payload, &out); err != nil {
		return contract.Milestone{}, fmt.Errorf("update milestone %s: %w", id, err)
	}
	return out, nil
}

// DeleteMilestone removes a milestone from a contract.
func (c *Client) DeleteMilestone(ctx context.Context, contractID, id string) error {
	if err := c.delete(ctx, "/contracts/"+url.PathEscape(contractID)+"/milestones/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete milestone %s: %w", id, err)
	}
	return nil
}

// ListDeliverables fetches the deliverables of a contract.
func (c *Client) ListDeliverables(ctx context.Context, contractID string) ([]contract.Deliverable, error) {
	var out []contract.Deliverable
	if err := c.get(ctx, "/contracts/"+url.PathEscape(contractID)+"/deliverables", nil, &out); err != nil {
		return nil, fmt.Errorf("list deliverables for %s: %w", contractID, err)
	}
	return out, nil
}

// CreateDeliverable adds a deliverable to a contract.
func (c *Client) CreateDeliverable(ctx context.Context, contractID string, payload map[string]any) (contract.Deliverable, error) {
	var out contract.Deliverable
	if err := c.post(ctx, "/contracts/"+url.PathEscape(contractID)+"/deliverables", payload, &out); err != nil {
		return contract.Deliverable{}, fmt.Errorf("create deliverable for %s: %w", contractID, err)
	}
	return out, nil
}

// GetDeliverable fetches one deliverable of a contract.
func (c *Client) GetDeliverable(ctx context.Context, contractID, id string) (contract.Deliverable, error) {
	var out contract.Deliverable
	if err := c.get(ctx, "/contracts/"+url.PathEscape(contractID)+"/deliverables/"+url.PathEscape(id), nil, &out); err != nil {
		return contract.Deliverable{}, fmt.Errorf("get deliverable %s: %w", id, err)
	}
	return out, nil
}

// UpdateDeliverable replaces the mutable fields of a deliverable.
func (c *Client) UpdateDeliverable(ctx context.Context, contractID, id string, payload map[string]any) (contract.Deliverable, error) {
	var out contract.Deliverable
	if err := c.put(ctx, "/contracts/"+url.PathEscape(contractID)+"/deliverables/"+url.PathEscape(id), payload, &out); err != nil {
		return contract.Deliverable{}, fmt.Errorf("update deliverable %s: %w", id, err)
	}
	return out, nil
}

// DeleteDeliverable removes a deliverable from a contract.
func (c *Client) DeleteDeliverable(ctx context.Context, contractID, id string) error {
	if err := c.delete(ctx, "/contracts/"+url.PathEscape(contractID)+"/deliverables/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete deliverable %s: %w", id, err)
	}
	return nil
}

// ListPayments fetches the payments recorded against a contract.
func (c *Client) ListPayments(ctx context.Context, contractID string) ([]contract.Payment, error) {
	var out []contract.Payment
	if err := c.get(ctx, "/contracts/"+url.PathEscape(contractID)+"/payments", nil, &out); err != nil {
		return nil, fmt.Errorf("list payments for %s: %w", contractID, err)
	}
	return out, nil
}

// CreatePayment records a payment against a contract.
func (c *Client) CreatePayment(ctx context.Context, contractID string, payload map[string]any) (contract.Payment, error) {
	var out contract.Payment
	if err := c.post(ctx, "/contracts/"+url.PathEscape(contractID)+"/payments", payload, &out); err != nil {
		return contract.Payment{}, fmt.Errorf("create payment for %s: %w", contractID, err)
	}
	return out, nil
}

// UpdatePayment replaces the mutable fields of a payment.
func (c *Client) UpdatePayment(ctx context.Context, contractID, id string, payload map[string]any) (contract.Payment, error) {
	var out contract.Payment
	if err := c.put(ctx, "/contracts/"+url.PathEscape(contractID)+"/payments/"+url.PathEscape(id), payload, &out); err != nil {
		return contract.Payment{}, fmt.Errorf("update payment %s: %w", id, err)
	}
	return out, nil
}

// DeletePayment removes a payment record from a contract.
func (c *Client) DeletePayment(ctx context.Context, contractID, id string) error {
	if err := c.delete(ctx, "/contracts/"+url.PathEscape(contractID)+"/payments/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete payment %s: %w", id, err)
	}
	return nil
}

// ListComments fetches the comments on a contract.
func (c *Client) ListComments(ctx context.Context, contractID string) ([]contract.Comment, error) {
	var out []contract.Comment
	if err := c.get(ctx, "/contracts/"+url.PathEscape(contractID)+"/comments", nil, &out); err != nil {
		return nil, fmt.Errorf("list comments for %s: %w", contractID, err)
	}
	return out, nil
}

// CreateComment posts a comment on a contract.
func (c *Client) CreateComment(ctx context.Context, contractID, author, body string) (contract.Comment, error) {
	payload := map[string]any{"author": author, "body": body}
	var out contract.Comment
	if err := c.post(ctx, "/contracts/"+url.PathEscape(contractID)+"/comments", payload, &out); err != nil {
		return contract.Comment{}, fmt.Errorf("create comment for %s: %w", contractID, err)
	}
	return out, nil
}

// UpdateComment replaces the body of a comment.
func (c *Client) UpdateComment(ctx context.Context, contractID, id, body string) (contract.Comment, error) {
	var out contract.Comment
	payload := map[string]any{"body": body}
	if err := c.put(ctx, "/contracts/"+url.PathEscape(contractID)+"/comments/"+url.PathEscape(id), payload, &out); err != nil {
		return contract.Comment{}, fmt.Errorf("update comment %s: %w", id, err)
	}
	return out, nil
}

// DeleteComment removes a comment from a contract.
func (c *Client) DeleteComment(ctx context.Context, contractID, id string) error {
	if err := c.delete(ctx, "/contracts/"+url.PathEscape(contractID)+"/comments/"+url.PathEscape(id)); err != nil {
		return fmt.Errorf("delete comment %s: %w", id, err)
	}
	return nil
}

// GetAnalytics fetches the backend-computed rollup for a contract.
func (c *Client) GetAnalytics(ctx context.Context, contractID string) (contract.Analytics, error) {
	var out contract.Analytics
	if err := c.get(ctx, "/contracts/"+url.PathEscape(contractID)+"/analytics", nil, &out); err != nil {
		return contract.Analytics{}, fmt.Errorf("get analytics for %s: %w", contractID, err)
	}
	return out, nil
}

// ListNotifications fetches notifications for the current actor.
func (c *Client) ListNotifications(ctx context.Context) ([]contract.Notification, error) {
	var out []contract.Notification
	if err := c.get(ctx, "/notifications", nil, &out); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

// MarkNotificationRead flags one notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	if err := c.put(ctx, "/notifications/"+url.PathEscape(id)+"/read", nil, nil); err != nil {
		return fmt.Errorf("mark notification %s read: %w", id, err)
	}
	return nil
}

// GetUser fetches a user profile by id.
func (c *Client) GetUser(ctx context.Context, id string) (contract.User, error) {
	var out contract.User
	if err := c.get(ctx, "/users/"+url.PathEscape(id), nil, &out); err != nil {
		return contract.User{}, fmt.Errorf("get user %s: %w", id, err)
	}
	return out, nil
}
