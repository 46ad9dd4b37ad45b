package entity

import (
	"time"

	"github.com/google/uuid"
)

// Top-level barter lifecycle. rejected, cancelled and completed are terminal.
const (
	BarterStatusPending        = "pending"
	BarterStatusCounterOffered = "counter_offered"
	BarterStatusAccepted       = "accepted"
	BarterStatusRejected       = "rejected"
	BarterStatusCancelled      = "cancelled"
	BarterStatusCompleted      = "completed"
)

const (
	NegotiationTypeInitial = "initial_offer"
	NegotiationTypeCounter = "counter_offer"
)

// OfferedItem is one item put on the table in a negotiation round.
type OfferedItem struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Condition      string    `json:"condition,omitempty"`
	Category       string    `json:"category,omitempty"`
	EstimatedValue float64   `json:"estimated_value"`
	Description    string    `json:"description,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
}

// ItemSnapshot freezes how the target listing looked when the offer was
// created. It is never re-fetched; OriginalItemID stays the live reference.
type ItemSnapshot struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// Negotiation is a single round in the bargaining ledger. Entries are
// immutable once appended.
type Negotiation struct {
	FromUserID uuid.UUID     `json:"from_user_id"`
	ToUserID   uuid.UUID     `json:"to_user_id"`
	Items      []OfferedItem `json:"items"`
	Message    string        `json:"message,omitempty"`
	TotalValue float64       `json:"total_value"`
	Type       string        `json:"type"`
	Status     string        `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
}

// BarterOffer is the barter aggregate. Negotiations is the authoritative
// history; the latest round is derived with CurrentRound, not stored twice.
type BarterOffer struct {
	ID             uuid.UUID     `db:"id" json:"id"`
	RequesterID    uuid.UUID     `db:"requester_id" json:"requester_id"`
	OwnerID        uuid.UUID     `db:"owner_id" json:"owner_id"`
	OriginalItemID uuid.UUID     `db:"original_item_id" json:"original_item_id"`
	OriginalItem   ItemSnapshot  `db:"original_item" json:"original_item"`
	Negotiations   []Negotiation `db:"negotiations" json:"negotiations"`
	Status         string        `db:"status" json:"status"`
	ConversationID string        `db:"conversation_id" json:"conversation_id,omitempty"`

	AcceptedAt         *time.Time `db:"accepted_at" json:"accepted_at,omitempty"`
	AcceptedBy         uuid.UUID  `db:"accepted_by" json:"accepted_by,omitempty"`
	CompletedAt        *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CompletedBy        uuid.UUID  `db:"completed_by" json:"completed_by,omitempty"`
	CancelledAt        *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
	CancelledBy        uuid.UUID  `db:"cancelled_by" json:"cancelled_by,omitempty"`
	CancellationReason string     `db:"cancellation_reason" json:"cancellation_reason,omitempty"`
	RejectedBy         uuid.UUID  `db:"rejected_by" json:"rejected_by,omitempty"`
	RejectionReason    string     `db:"rejection_reason" json:"rejection_reason,omitempty"`

	Version   int       `db:"version" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CalculateOfferValue sums the estimated values of a round's items. Items
// without a value count as zero.
func CalculateOfferValue(items []OfferedItem) float64 {
	var total float64
	for _, item := range items {
		total += item.EstimatedValue
	}
	return total
}

// IsParty reports whether userID is one of the two negotiating parties.
func (b *BarterOffer) IsParty(userID uuid.UUID) bool {
	return userID == b.RequesterID || userID == b.OwnerID
}

// OtherParty returns the counter-party of userID. Callers must have checked
// IsParty first.
func (b *BarterOffer) OtherParty(userID uuid.UUID) uuid.UUID {
	if userID == b.RequesterID {
		return b.OwnerID
	}
	return b.RequesterID
}

// IsTerminal reports whether no further transitions are permitted.
func (b *BarterOffer) IsTerminal() bool {
	switch b.Status {
	case BarterStatusRejected, BarterStatusCancelled, BarterStatusCompleted:
		return true
	}
	return false
}

// CurrentRound returns the latest ledger entry, or nil for an empty ledger.
func (b *BarterOffer) CurrentRound() *Negotiation {
	if len(b.Negotiations) == 0 {
		return nil
	}
	return &b.Negotiations[len(b.Negotiations)-1]
}

// OfferedItems returns the item set currently on the table (latest round).
func (b *BarterOffer) OfferedItems() []OfferedItem {
	round := b.CurrentRound()
	if round == nil {
		return nil
	}
	return round.Items
}

const (
	BarterRoleReceived = "received"
	BarterRoleSent     = "sent"
	BarterRoleAll      = "all"
)

// UserBarter is a directory row: a barter tagged with the querying user's role.
type UserBarter struct {
	BarterOffer
	Role string `json:"role"`
}

type CreateBarterInput struct {
	OwnerID        uuid.UUID     `json:"owner_id" binding:"required"`
	OriginalItemID uuid.UUID     `json:"original_item_id" binding:"required"`
	OfferedItems   []OfferedItem `json:"offered_items" binding:"required"`
	Message        string        `json:"message"`
	ConversationID string        `json:"conversation_id"`
}

type CounterOfferInput struct {
	Items   []OfferedItem `json:"items" binding:"required"`
	Message string        `json:"message"`
}

type BarterDecisionInput struct {
	Reason string `json:"reason"`
}
