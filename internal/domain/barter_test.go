package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOfferValue(t *testing.T) {
	items := []OfferedItem{
		{Name: "camera", EstimatedValue: 100},
		{Name: "lens", EstimatedValue: 50},
	}
	assert.Equal(t, 150.0, CalculateOfferValue(items))

	// items without a value count as zero
	assert.Equal(t, 0.0, CalculateOfferValue([]OfferedItem{{}}))
	assert.Equal(t, 0.0, CalculateOfferValue(nil))
}

func TestBarterOfferParties(t *testing.T) {
	requester := uuid.New()
	owner := uuid.New()
	stranger := uuid.New()

	barter := &BarterOffer{RequesterID: requester, OwnerID: owner}

	assert.True(t, barter.IsParty(requester))
	assert.True(t, barter.IsParty(owner))
	assert.False(t, barter.IsParty(stranger))

	assert.Equal(t, owner, barter.OtherParty(requester))
	assert.Equal(t, requester, barter.OtherParty(owner))
}

func TestBarterOfferTerminal(t *testing.T) {
	for status, terminal := range map[string]bool{
		BarterStatusPending:        false,
		BarterStatusCounterOffered: false,
		BarterStatusAccepted:       false,
		BarterStatusRejected:       true,
		BarterStatusCancelled:      true,
		BarterStatusCompleted:      true,
	} {
		barter := &BarterOffer{Status: status}
		assert.Equal(t, terminal, barter.IsTerminal(), "status %s", status)
	}
}

func TestCurrentRoundIsLastLedgerEntry(t *testing.T) {
	barter := &BarterOffer{}
	assert.Nil(t, barter.CurrentRound())
	assert.Nil(t, barter.OfferedItems())

	first := Negotiation{Type: NegotiationTypeInitial, TotalValue: 100, CreatedAt: time.Now()}
	second := Negotiation{
		Type:       NegotiationTypeCounter,
		TotalValue: 250,
		Items:      []OfferedItem{{Name: "bike", EstimatedValue: 250}},
	}
	barter.Negotiations = []Negotiation{first, second}

	round := barter.CurrentRound()
	assert.Equal(t, NegotiationTypeCounter, round.Type)
	assert.Equal(t, 250.0, round.TotalValue)
	assert.Equal(t, "bike", barter.OfferedItems()[0].Name)
}
