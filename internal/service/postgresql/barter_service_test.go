package service

import (
	"errors"
	"testing"
	"time"

	entity "swap-market/internal/domain"
	repo "swap-market/internal/repository/postgresql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type barterFixture struct {
	service    *BarterService
	barterRepo *fakeBarterRepo
	itemRepo   *fakeItemRepo
	logRepo    *fakeLogRepo

	requester uuid.UUID
	owner     uuid.UUID
	item      *entity.Item
}

func newBarterFixture(t *testing.T) *barterFixture {
	t.Helper()

	f := &barterFixture{
		barterRepo: newFakeBarterRepo(),
		itemRepo:   newFakeItemRepo(),
		logRepo:    &fakeLogRepo{},
		requester:  uuid.New(),
		owner:      uuid.New(),
	}
	f.service = NewBarterService(f.barterRepo, f.itemRepo, f.logRepo)

	f.item = &entity.Item{
		ID:       uuid.New(),
		SellerID: f.owner,
		Name:     "vintage record player",
		ImageURL: "/images/record-player.jpg",
		Status:   "active",
		Stock:    1,
	}
	require.NoError(t, f.itemRepo.CreateItem(f.item))
	return f
}

func (f *barterFixture) createOffer(t *testing.T, items []entity.OfferedItem) *entity.BarterOffer {
	t.Helper()
	barter, err := f.service.CreateBarterOffer(f.requester, entity.CreateBarterInput{
		OwnerID:        f.owner,
		OriginalItemID: f.item.ID,
		OfferedItems:   items,
		Message:        "interested in a swap?",
	})
	require.NoError(t, err)
	return barter
}

func offeredItems(value float64) []entity.OfferedItem {
	return []entity.OfferedItem{{ID: uuid.New(), Name: "trade goods", EstimatedValue: value}}
}

func TestCreateBarterOffer(t *testing.T) {
	f := newBarterFixture(t)

	barter := f.createOffer(t, offeredItems(3500))

	assert.Equal(t, entity.BarterStatusPending, barter.Status)
	assert.Equal(t, f.requester, barter.RequesterID)
	assert.Equal(t, f.owner, barter.OwnerID)

	// the target listing is snapshotted at creation time
	assert.Equal(t, "vintage record player", barter.OriginalItem.Name)
	assert.Equal(t, "/images/record-player.jpg", barter.OriginalItem.ImageURL)

	require.Len(t, barter.Negotiations, 1)
	entry := barter.Negotiations[0]
	assert.Equal(t, entity.NegotiationTypeInitial, entry.Type)
	assert.Equal(t, 3500.0, entry.TotalValue)
	assert.Equal(t, f.requester, entry.FromUserID)
	assert.Equal(t, f.owner, entry.ToUserID)

	// the owner is notified with the full barter payload
	noti := f.logRepo.lastNotification()
	require.NotNil(t, noti)
	assert.Equal(t, f.owner.String(), noti.UserID)
	assert.Equal(t, barter.ID.String(), noti.RelatedID)
	assert.Equal(t, f.item.ID.String(), noti.ItemID)
	assert.Equal(t, "vintage record player", noti.ItemName)
	assert.Equal(t, entity.BarterStatusPending, noti.Status)
	assert.Equal(t, f.requester.String(), noti.ActingUserID)
}

func TestCreateBarterOfferValidation(t *testing.T) {
	f := newBarterFixture(t)

	_, err := f.service.CreateBarterOffer(f.requester, entity.CreateBarterInput{
		OwnerID:        f.owner,
		OriginalItemID: f.item.ID,
	})
	assert.ErrorIs(t, err, ErrNoOfferedItems)

	_, err = f.service.CreateBarterOffer(f.owner, entity.CreateBarterInput{
		OwnerID:        f.owner,
		OriginalItemID: f.item.ID,
		OfferedItems:   offeredItems(10),
	})
	assert.ErrorIs(t, err, ErrSelfBarter)

	_, err = f.service.CreateBarterOffer(f.requester, entity.CreateBarterInput{
		OwnerID:        f.owner,
		OriginalItemID: uuid.New(),
		OfferedItems:   offeredItems(10),
	})
	assert.ErrorIs(t, err, ErrTargetItemNotFound)

	_, err = f.service.CreateBarterOffer(f.requester, entity.CreateBarterInput{
		OwnerID:        uuid.New(),
		OriginalItemID: f.item.ID,
		OfferedItems:   offeredItems(10),
	})
	assert.ErrorIs(t, err, ErrOwnerMismatch)
}

func TestCounterOfferAppendsRound(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(3500))

	updated, err := f.service.CreateCounterOffer(barter.ID, f.owner, entity.CounterOfferInput{
		Items:   offeredItems(4000),
		Message: "add the headphones and we have a deal",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.BarterStatusCounterOffered, updated.Status)
	require.Len(t, updated.Negotiations, 2)

	second := updated.Negotiations[1]
	assert.Equal(t, entity.NegotiationTypeCounter, second.Type)
	assert.Equal(t, f.owner, second.FromUserID)
	assert.Equal(t, f.requester, second.ToUserID)
	assert.Equal(t, 4000.0, second.TotalValue)

	// the first entry is untouched: the ledger is append-only
	first := updated.Negotiations[0]
	assert.Equal(t, entity.NegotiationTypeInitial, first.Type)
	assert.Equal(t, 3500.0, first.TotalValue)

	// counter-party (the requester) is notified
	noti := f.logRepo.lastNotification()
	require.NotNil(t, noti)
	assert.Equal(t, f.requester.String(), noti.UserID)
}

func TestCounterOfferClosedAfterAcceptance(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	_, err := f.service.AcceptBarterOffer(barter.ID, f.owner)
	require.NoError(t, err)

	// the round table closes once a party has committed
	_, err = f.service.CreateCounterOffer(barter.ID, f.requester, entity.CounterOfferInput{Items: offeredItems(200)})
	assert.ErrorIs(t, err, ErrInvalidBarterStatus)
}

func TestAcceptThenComplete(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(3500))

	_, err := f.service.CreateCounterOffer(barter.ID, f.owner, entity.CounterOfferInput{Items: offeredItems(4000)})
	require.NoError(t, err)

	accepted, err := f.service.AcceptBarterOffer(barter.ID, f.requester)
	require.NoError(t, err)
	assert.Equal(t, entity.BarterStatusAccepted, accepted.Status)
	assert.Equal(t, f.requester, accepted.AcceptedBy)
	require.NotNil(t, accepted.AcceptedAt)

	completed, err := f.service.CompleteBarterExchange(barter.ID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, entity.BarterStatusCompleted, completed.Status)
	assert.Equal(t, f.owner, completed.CompletedBy)
	require.NotNil(t, completed.CompletedAt)

	// completed is terminal for everyone
	_, err = f.service.CancelBarterOffer(barter.ID, f.requester, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidBarterStatus)
	_, err = f.service.CancelBarterOffer(barter.ID, f.owner, "changed my mind")
	assert.ErrorIs(t, err, ErrInvalidBarterStatus)
}

func TestCompleteRequiresAccepted(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	_, err := f.service.CompleteBarterExchange(barter.ID, f.owner)
	assert.ErrorIs(t, err, ErrInvalidBarterStatus)

	_, err = f.service.CreateCounterOffer(barter.ID, f.owner, entity.CounterOfferInput{Items: offeredItems(150)})
	require.NoError(t, err)
	_, err = f.service.CompleteBarterExchange(barter.ID, f.requester)
	assert.ErrorIs(t, err, ErrInvalidBarterStatus)
}

// Post-acceptance cancellation is deliberately asymmetric: an unaccepted offer
// can be withdrawn by either party, but once the counter-party has committed
// by accepting, only the original requester may still back out.
func TestCancelAcceptedBarterRequesterOnly(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	_, err := f.service.AcceptBarterOffer(barter.ID, f.owner)
	require.NoError(t, err)

	_, err = f.service.CancelBarterOffer(barter.ID, f.owner, "found a better trade")
	assert.ErrorIs(t, err, ErrRequesterOnlyCancel)

	cancelled, err := f.service.CancelBarterOffer(barter.ID, f.requester, "shipping too far")
	require.NoError(t, err)
	assert.Equal(t, entity.BarterStatusCancelled, cancelled.Status)
	assert.Equal(t, f.requester, cancelled.CancelledBy)
	assert.Equal(t, "shipping too far", cancelled.CancellationReason)
	require.NotNil(t, cancelled.CancelledAt)
}

func TestCancelBeforeAcceptanceEitherParty(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	cancelled, err := f.service.CancelBarterOffer(barter.ID, f.owner, "not interested")
	require.NoError(t, err)
	assert.Equal(t, entity.BarterStatusCancelled, cancelled.Status)
	assert.Equal(t, f.owner, cancelled.CancelledBy)
}

func TestRejectBarterOffer(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	rejected, err := f.service.RejectBarterOffer(barter.ID, f.owner, "value too low")
	require.NoError(t, err)
	assert.Equal(t, entity.BarterStatusRejected, rejected.Status)
	assert.Equal(t, f.owner, rejected.RejectedBy)
	assert.Equal(t, "value too low", rejected.RejectionReason)

	// terminal: no further transitions
	_, err = f.service.AcceptBarterOffer(barter.ID, f.requester)
	assert.ErrorIs(t, err, ErrInvalidBarterStatus)
	_, err = f.service.RejectBarterOffer(barter.ID, f.requester, "again")
	assert.ErrorIs(t, err, ErrInvalidBarterStatus)
}

func TestUnknownBarterAndStrangers(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	_, err := f.service.AcceptBarterOffer(uuid.New(), f.owner)
	assert.ErrorIs(t, err, ErrBarterNotFound)

	stranger := uuid.New()
	_, err = f.service.AcceptBarterOffer(barter.ID, stranger)
	assert.ErrorIs(t, err, ErrNotBarterParty)
	_, err = f.service.CreateCounterOffer(barter.ID, stranger, entity.CounterOfferInput{Items: offeredItems(1)})
	assert.ErrorIs(t, err, ErrNotBarterParty)
	_, err = f.service.CancelBarterOffer(barter.ID, stranger, "")
	assert.ErrorIs(t, err, ErrNotBarterParty)
}

func TestNotificationFailureDoesNotBlockTransition(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	f.logRepo.saveErr = errors.New("mongo down")

	accepted, err := f.service.AcceptBarterOffer(barter.ID, f.owner)
	require.NoError(t, err)
	assert.Equal(t, entity.BarterStatusAccepted, accepted.Status)

	stored, err := f.barterRepo.GetBarterByID(barter.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BarterStatusAccepted, stored.Status)
}

func TestConcurrentUpdateConflict(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	stale, err := f.barterRepo.GetBarterByID(barter.ID)
	require.NoError(t, err)

	// a racing writer bumps the stored version before the stale copy lands
	racing, err := f.barterRepo.GetBarterByID(barter.ID)
	require.NoError(t, err)
	require.NoError(t, f.barterRepo.UpdateBarter(racing))

	stale.Status = entity.BarterStatusAccepted
	assert.ErrorIs(t, f.barterRepo.UpdateBarter(stale), repo.ErrVersionConflict)
}

func TestStatusHistoryTrail(t *testing.T) {
	f := newBarterFixture(t)
	barter := f.createOffer(t, offeredItems(100))

	_, err := f.service.CreateCounterOffer(barter.ID, f.owner, entity.CounterOfferInput{Items: offeredItems(150)})
	require.NoError(t, err)
	_, err = f.service.AcceptBarterOffer(barter.ID, f.requester)
	require.NoError(t, err)

	history, err := f.service.GetBarterStatusHistory(barter.ID, f.requester)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, entity.BarterStatusPending, history[0].NewStatus)
	assert.Equal(t, entity.BarterStatusCounterOffered, history[1].NewStatus)
	assert.Equal(t, entity.BarterStatusAccepted, history[2].NewStatus)

	// parties only
	_, err = f.service.GetBarterStatusHistory(barter.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotBarterParty)
}

func TestGetUserBartersMergesRoles(t *testing.T) {
	f := newBarterFixture(t)
	user := uuid.New()
	other := uuid.New()

	base := time.Now()
	seed := func(requester, owner uuid.UUID, age time.Duration) {
		barter := &entity.BarterOffer{
			ID:          uuid.New(),
			RequesterID: requester,
			OwnerID:     owner,
			Status:      entity.BarterStatusPending,
			Version:     1,
			CreatedAt:   base.Add(-age),
		}
		require.NoError(t, f.barterRepo.CreateBarter(barter))
	}

	// three sent (newest), two received (older), interleaved ages
	seed(user, other, 1*time.Minute)
	seed(other, user, 2*time.Minute)
	seed(user, other, 3*time.Minute)
	seed(other, user, 4*time.Minute)
	seed(user, other, 5*time.Minute)

	all, err := f.service.GetUserBarters(user, entity.BarterRoleAll, 4)
	require.NoError(t, err)
	require.Len(t, all, 4)

	// sorted newest-first across both roles, truncated after the merge
	expectedRoles := []string{
		entity.BarterRoleSent, entity.BarterRoleReceived,
		entity.BarterRoleSent, entity.BarterRoleReceived,
	}
	for i, userBarter := range all {
		assert.Equal(t, expectedRoles[i], userBarter.Role, "position %d", i)
		if i > 0 {
			assert.False(t, all[i-1].CreatedAt.Before(userBarter.CreatedAt))
		}
	}

	sent, err := f.service.GetUserBarters(user, entity.BarterRoleSent, 10)
	require.NoError(t, err)
	assert.Len(t, sent, 3)

	received, err := f.service.GetUserBarters(user, entity.BarterRoleReceived, 10)
	require.NoError(t, err)
	assert.Len(t, received, 2)

	_, err = f.service.GetUserBarters(user, "moderator", 10)
	assert.ErrorIs(t, err, ErrInvalidBarterRole)
}
