package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// ServiceRequestStatus represents the lifecycle of a repair request.
//
// Domain notes:
//   - menunggu: waiting for the technician; the negotiation window is open.
//   - diproses: paid and in progress; the accepted price is locked.
//   - selesai: completed by the technician; earnings are settled.

type ServiceRequestStatus string

const (
	ServiceRequestStatusMenunggu ServiceRequestStatus = "menunggu"
	ServiceRequestStatusDiproses ServiceRequestStatus = "diproses"
	ServiceRequestStatusSelesai  ServiceRequestStatus = "selesai"
)

// ServiceRequest is a customer's repair job persisted in DynamoDB.
//
// Storage model (DynamoDB):
//   - PK: id
//
// AcceptedPrice stays nil until the assigned technician proposes a price.
// Version is bumped on every write and used as an optimistic lock.
type ServiceRequest struct {
	ID            string               `json:"id"`
	CustomerID    string               `json:"customer_id"`
	TechnicianID  string               `json:"technician_id"`
	Category      string               `json:"category"`
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	ScheduledFor  time.Time            `json:"scheduled_for"`
	Status        ServiceRequestStatus `json:"status"`
	AcceptedPrice *decimal.Decimal     `json:"accepted_price,omitempty"`
	Version       int64                `json:"version"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// NegotiationOpen reports whether price proposals are still accepted.
func (r ServiceRequest) NegotiationOpen() bool {
	return r.Status == ServiceRequestStatusMenunggu
}

// OwnerID, SecondaryPartyID and RequiredRole expose the request to the access guard.
func (r ServiceRequest) OwnerID() string { return r.CustomerID }
func (r ServiceRequest) SecondaryPartyID() string { return r.TechnicianID }
func (r ServiceRequest) RequiredRole() Role { return RoleAdmin }

// ServiceRequestDetail is the read model returned to participants.
type ServiceRequestDetail struct {
	Request            ServiceRequest
	Messages           []Message
	LatestPayment      *Payment
	NeedsPaymentAction bool
}
