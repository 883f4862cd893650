// Package contract defines the client-side view of the sponsorship contract
// domain: the records the backend owns, the filter applied to in-memory lists,
// and the payload assembly rules for create/update calls. The backend is the
// source of truth; everything here is a transient copy for one session.
package contract

import "time"

// Type enumerates the contract engagement models.
type Type string

const (
	TypeOneTime          Type = "one_time"
	TypeOngoing          Type = "ongoing"
	TypePerformanceBased Type = "performance_based"
)

// Status enumerates the contract lifecycle states.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusSigned    Status = "signed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidTypes lists every accepted contract type.
var ValidTypes = []Type{TypeOneTime, TypeOngoing, TypePerformanceBased}

// ValidStatuses lists every accepted lifecycle state.
var ValidStatuses = []Status{
	StatusDraft, StatusPending, StatusSigned,
	StatusActive, StatusCompleted, StatusCancelled,
}

// Contract is a brand-creator sponsorship agreement as returned by the
// backend. Nested clause groups are free-form JSON; the client never
// interprets them beyond display and empty-field stripping.
type Contract struct {
	ID                 string         `json:"id"`
	CreatorID          string         `json:"creator_id"`
	BrandID            string         `json:"brand_id"`
	Title              string         `json:"title,omitempty"`
	ContractType       Type           `json:"contract_type"`
	TermsAndConditions map[string]any `json:"terms_and_conditions,omitempty"`
	PaymentTerms       map[string]any `json:"payment_terms,omitempty"`
	Deliverables       map[string]any `json:"deliverables,omitempty"`
	LegalCompliance    map[string]any `json:"legal_compliance,omitempty"`
	Budget             *float64       `json:"budget,omitempty"`
	StartDate          *time.Time     `json:"start_date,omitempty"`
	EndDate            *time.Time     `json:"end_date,omitempty"`
	Status             Status         `json:"status"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	Comments           []Comment      `json:"comments,omitempty"`
	UpdateHistory      []UpdateEvent  `json:"update_history,omitempty"`
}

// Template is a reusable contract scaffold.
type Template struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	ContractType Type           `json:"contract_type"`
	Body         map[string]any `json:"body,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Milestone is a payment/progress checkpoint tied to a contract.
type Milestone struct {
	ID          string     `json:"id"`
	ContractID  string     `json:"contract_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Deliverable is a unit of content a creator owes under a contract.
type Deliverable struct {
	ID          string     `json:"id"`
	ContractID  string     `json:"contract_id"`
	Platform    string     `json:"platform,omitempty"`
	ContentType string     `json:"content_type,omitempty"`
	Description string     `json:"description,omitempty"`
	Quantity    int        `json:"quantity,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Payment records money movement against a contract.
type Payment struct {
	ID         string     `json:"id"`
	ContractID string     `json:"contract_id"`
	Amount     float64    `json:"amount"`
	Currency   string     `json:"currency,omitempty"`
	Status     string     `json:"status"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Comment is a free-text note on a contract.
type Comment struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id"`
	Author     string    `json:"author"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

// Analytics is the backend-computed per-contract rollup. The shape is owned
// by the backend and rendered as-is.
type Analytics struct {
	ContractID      string         `json:"contract_id"`
	TotalPaid       float64        `json:"total_paid"`
	MilestonesDone  int            `json:"milestones_done"`
	MilestonesTotal int            `json:"milestones_total"`
	Extra           map[string]any `json:"extra,omitempty"`
}

// Notification is a backend-generated event addressed to the current actor.
type Notification struct {
	ID         string    `json:"id"`
	ContractID string    `json:"contract_id,omitempty"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// User is the minimal profile shape consumed from /users/{id} and the
// generation available-users listing.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role,omitempty"` // creator or brand
	Platform string `json:"platform,omitempty"`
}

// ValidType reports whether t is one of the accepted contract types.
func ValidType(t Type) bool {
	for _, v := range ValidTypes {
		if t == v {
			return true
		}
	}
	return false
}

// ValidStatus reports whether s is one of the accepted lifecycle states.
func ValidStatus(s Status) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
