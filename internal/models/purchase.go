package models

import "time"

// RequestStatus represents the lifecycle state of a purchase request
type RequestStatus string

const (
	// Purchase request statuses
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusRejected  RequestStatus = "rejected"
	StatusOrdered   RequestStatus = "ordered"
	StatusCompleted RequestStatus = "completed"
)

// RequestUrgency represents how urgently a purchase request needs action
type RequestUrgency string

const (
	// Urgency levels
	UrgencyLow      RequestUrgency = "low"
	UrgencyMedium   RequestUrgency = "medium"
	UrgencyHigh     RequestUrgency = "high"
	UrgencyCritical RequestUrgency = "critical"
)

// EisenhowerQuadrant is the priority bucket assigned to requests and tasks
type EisenhowerQuadrant string

const (
	QuadrantImportantUrgent       EisenhowerQuadrant = "important-urgent"
	QuadrantImportantNotUrgent    EisenhowerQuadrant = "important-not-urgent"
	QuadrantNotImportantUrgent    EisenhowerQuadrant = "not-important-urgent"
	QuadrantNotImportantNotUrgent EisenhowerQuadrant = "not-important-not-urgent"
)

// PurchaseRequest represents a request to buy parts from a vendor. Drafts
// synthesized by the reconciliation engine carry IsLowStockItem=true and
// only become records once persisted by fullSync or an explicit create.
type PurchaseRequest struct {
	ID                 string             `json:"id,omitempty"`
	ItemName           string             `json:"itemName"`
	Vendor             string             `json:"vendor"`
	Quantity           int                `json:"quantity"`
	UnitPrice          float64            `json:"unitPrice"`
	Team               string             `json:"team"`
	Status             RequestStatus      `json:"status"`
	Urgency            RequestUrgency     `json:"urgency"`
	EisenhowerQuadrant EisenhowerQuadrant `json:"eisenhowerQuadrant,omitempty"`
	IsLowStockItem     bool               `json:"isLowStockItem"`
	RequestedBy        string             `json:"requestedBy,omitempty"`
	CreatedAt          time.Time          `json:"createdAt,omitempty"`
	UpdatedAt          time.Time          `json:"updatedAt,omitempty"`
	// MovedToPending marks a completed request transferred into the
	// pending-inventory domain. One-way; never cleared.
	MovedToPending bool `json:"movedToPending,omitempty"`
}

// requestTransitions is the allowed state machine, including the explicit
// undo edges back to pending. Entry into completed is one-way: the stock
// increment it triggers is never compensated.
var requestTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusOrdered, StatusPending},
	StatusRejected: {StatusPending},
	StatusOrdered:  {StatusCompleted},
}

// CanTransition reports whether a request may move between the two statuses.
func CanTransition(from, to RequestStatus) bool {
	for _, next := range requestTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// DedupeKey is the identity used to filter synthesized low-stock drafts
// against already-persisted requests. Deliberately weaker than an entity id.
func (r PurchaseRequest) DedupeKey() string {
	return r.ItemName + "\x00" + r.Vendor
}

// IsOpenLowStock reports whether the request occupies the dedupe key space:
// a pending request flagged as low-stock.
func (r PurchaseRequest) IsOpenLowStock() bool {
	return r.Status == StatusPending && r.IsLowStockItem
}
