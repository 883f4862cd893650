package contract

import (
	"errors"
	"time"
)

// ErrEmptyUpdate is returned when an update carries no populated field.
var ErrEmptyUpdate = errors.New("update requires at least one populated field")

// Update is the tabbed-editor partial update: each field corresponds to one
// tab and only populated fields travel. The backend owns the patch semantics.
type Update struct {
	Status          Status
	Budget          string // raw input, coerced during assembly
	DeliverableNote string
	StartDate       *time.Time
	EndDate         *time.Time
}

// UpdateEvent is the single event posted for a partial update. Actor comes
// from configuration, never a hardcoded placeholder.
type UpdateEvent struct {
	ContractID string         `json:"contract_id"`
	Actor      string         `json:"actor"`
	Timestamp  time.Time      `json:"timestamp"`
	Changes    map[string]any `json:"changes"`
}

// BuildEvent validates the update and assembles the event envelope.
// An update with no populated field is rejected before any request is made.
func (u Update) BuildEvent(contractID, actor string, now time.Time) (UpdateEvent, error) {
	changes := map[string]any{}
	if u.Status != "" {
		changes["status"] = u.Status
	}
	if b, ok := ParseBudget(u.Budget); ok {
		changes["budget"] = b
	}
	if u.DeliverableNote != "" {
		changes["deliverable_note"] = u.DeliverableNote
	}
	if u.StartDate != nil {
		changes["start_date"] = u.StartDate.Format(time.RFC3339)
	}
	if u.EndDate != nil {
		changes["end_date"] = u.EndDate.Format(time.RFC3339)
	}
	if len(changes) == 0 {
		return UpdateEvent{}, ErrEmptyUpdate
	}
	return UpdateEvent{
		ContractID: contractID,
		Actor:      actor,
		Timestamp:  now.UTC(),
		Changes:    changes,
	}, nil
}
