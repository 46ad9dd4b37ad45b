package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	entity "swap-market/internal/domain"
	mongorepo "swap-market/internal/repository/mongodb"
	repo "swap-market/internal/repository/postgresql"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- ERROR DEFINITIONS ---
var (
	ErrBarterNotFound      = errors.New("barter not found")
	ErrNotBarterParty      = errors.New("unauthorized: you are not a party to this barter")
	ErrRequesterOnlyCancel = errors.New("unauthorized: only the requester may cancel an accepted barter")
	ErrInvalidBarterStatus = errors.New("operation not allowed in the barter's current status")
	ErrNoOfferedItems      = errors.New("at least one offered item is required")
	ErrTargetItemNotFound  = errors.New("target item not found")
	ErrOwnerMismatch       = errors.New("owner_id does not match the target item's seller")
	ErrSelfBarter          = errors.New("cannot open a barter on your own item")
	ErrInvalidBarterRole   = errors.New("role must be one of: received, sent, all")
)

const defaultBarterLimit = 20

type BarterService struct {
	barterRepo repo.BarterRepository
	itemRepo   repo.ItemRepository
	logRepo    mongorepo.LogRepository
}

func NewBarterService(barterRepo repo.BarterRepository, itemRepo repo.ItemRepository, logRepo mongorepo.LogRepository) *BarterService {
	return &BarterService{
		barterRepo: barterRepo,
		itemRepo:   itemRepo,
		logRepo:    logRepo,
	}
}

// CreateBarterOffer opens a new barter in pending status. The target item's
// name and image are snapshotted here and never refreshed afterwards, so the
// record keeps showing the listing as the requester saw it.
func (s *BarterService) CreateBarterOffer(requesterID uuid.UUID, input entity.CreateBarterInput) (*entity.BarterOffer, error) {
	if input.OwnerID == uuid.Nil || input.OriginalItemID == uuid.Nil {
		return nil, errors.New("owner_id and original_item_id are required")
	}
	if len(input.OfferedItems) == 0 {
		return nil, ErrNoOfferedItems
	}
	if requesterID == input.OwnerID {
		return nil, ErrSelfBarter
	}

	item, err := s.itemRepo.GetItemByID(input.OriginalItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrTargetItemNotFound
	}
	if item.SellerID != input.OwnerID {
		return nil, ErrOwnerMismatch
	}

	now := time.Now()
	barter := &entity.BarterOffer{
		ID:             uuid.New(),
		RequesterID:    requesterID,
		OwnerID:        input.OwnerID,
		OriginalItemID: input.OriginalItemID,
		OriginalItem:   entity.ItemSnapshot{Name: item.Name, ImageURL: item.ImageURL},
		Status:         entity.BarterStatusPending,
		ConversationID: input.ConversationID,
		Negotiations: []entity.Negotiation{{
			FromUserID: requesterID,
			ToUserID:   input.OwnerID,
			Items:      input.OfferedItems,
			Message:    input.Message,
			TotalValue: entity.CalculateOfferValue(input.OfferedItems),
			Type:       entity.NegotiationTypeInitial,
			Status:     entity.BarterStatusPending,
			CreatedAt:  now,
		}},
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.barterRepo.CreateBarter(barter); err != nil {
		return nil, err
	}

	s.saveHistory(barter, "", requesterID, "barter offer created")
	s.notifyCounterParty(barter, requesterID, "New Barter Offer",
		fmt.Sprintf("You received a barter offer for '%s'.", barter.OriginalItem.Name))

	return barter, nil
}

// CreateCounterOffer supersedes the current round with a new item set. Counter
// offers are only accepted while the negotiation is still open; once a barter
// is accepted or terminal the round table is closed.
func (s *BarterService) CreateCounterOffer(barterID, userID uuid.UUID, input entity.CounterOfferInput) (*entity.BarterOffer, error) {
	if len(input.Items) == 0 {
		return nil, ErrNoOfferedItems
	}

	barter, err := s.getBarterAsParty(barterID, userID)
	if err != nil {
		return nil, err
	}
	if barter.Status != entity.BarterStatusPending && barter.Status != entity.BarterStatusCounterOffered {
		return nil, ErrInvalidBarterStatus
	}

	oldStatus := barter.Status
	barter.Negotiations = append(barter.Negotiations, entity.Negotiation{
		FromUserID: userID,
		ToUserID:   barter.OtherParty(userID),
		Items:      input.Items,
		Message:    input.Message,
		TotalValue: entity.CalculateOfferValue(input.Items),
		Type:       entity.NegotiationTypeCounter,
		Status:     entity.BarterStatusCounterOffered,
		CreatedAt:  time.Now(),
	})
	barter.Status = entity.BarterStatusCounterOffered

	if err := s.barterRepo.UpdateBarter(barter); err != nil {
		return nil, err
	}

	s.saveHistory(barter, oldStatus, userID, "counter offer placed")
	s.notifyCounterParty(barter, userID, "Counter Offer Received",
		fmt.Sprintf("A counter offer was placed on the barter for '%s'.", barter.OriginalItem.Name))

	return barter, nil
}

// AcceptBarterOffer commits the party to the current round.
func (s *BarterService) AcceptBarterOffer(barterID, userID uuid.UUID) (*entity.BarterOffer, error) {
	barter, err := s.getBarterAsParty(barterID, userID)
	if err != nil {
		return nil, err
	}
	if barter.Status != entity.BarterStatusPending && barter.Status != entity.BarterStatusCounterOffered {
		return nil, ErrInvalidBarterStatus
	}

	oldStatus := barter.Status
	now := time.Now()
	barter.Status = entity.BarterStatusAccepted
	barter.AcceptedAt = &now
	barter.AcceptedBy = userID

	if err := s.barterRepo.UpdateBarter(barter); err != nil {
		return nil, err
	}

	s.saveHistory(barter, oldStatus, userID, "offer accepted")
	s.notifyCounterParty(barter, userID, "Barter Accepted",
		fmt.Sprintf("Your barter for '%s' was accepted.", barter.OriginalItem.Name))

	return barter, nil
}

// RejectBarterOffer is a terminal off-ramp available from any non-terminal status.
func (s *BarterService) RejectBarterOffer(barterID, userID uuid.UUID, reason string) (*entity.BarterOffer, error) {
	barter, err := s.getBarterAsParty(barterID, userID)
	if err != nil {
		return nil, err
	}
	if barter.IsTerminal() {
		return nil, ErrInvalidBarterStatus
	}

	oldStatus := barter.Status
	barter.Status = entity.BarterStatusRejected
	barter.RejectedBy = userID
	barter.RejectionReason = reason

	if err := s.barterRepo.UpdateBarter(barter); err != nil {
		return nil, err
	}

	s.saveHistory(barter, oldStatus, userID, "offer rejected")
	s.notifyCounterParty(barter, userID, "Barter Rejected",
		fmt.Sprintf("The barter for '%s' was rejected.", barter.OriginalItem.Name))

	return barter, nil
}

// CancelBarterOffer withdraws the exchange. Before acceptance either party may
// cancel; once the counter-party has committed by accepting, only the
// requester who started the exchange may still back out.
func (s *BarterService) CancelBarterOffer(barterID, userID uuid.UUID, reason string) (*entity.BarterOffer, error) {
	barter, err := s.getBarterAsParty(barterID, userID)
	if err != nil {
		return nil, err
	}
	if barter.Status == entity.BarterStatusAccepted && userID != barter.RequesterID {
		return nil, ErrRequesterOnlyCancel
	}
	if barter.IsTerminal() {
		return nil, ErrInvalidBarterStatus
	}

	oldStatus := barter.Status
	now := time.Now()
	barter.Status = entity.BarterStatusCancelled
	barter.CancelledAt = &now
	barter.CancelledBy = userID
	barter.CancellationReason = reason

	if err := s.barterRepo.UpdateBarter(barter); err != nil {
		return nil, err
	}

	s.saveHistory(barter, oldStatus, userID, "barter cancelled")
	s.notifyCounterParty(barter, userID, "Barter Cancelled",
		fmt.Sprintf("The barter for '%s' was cancelled.", barter.OriginalItem.Name))

	return barter, nil
}

// CompleteBarterExchange closes out an accepted exchange after the swap happened.
func (s *BarterService) CompleteBarterExchange(barterID, userID uuid.UUID) (*entity.BarterOffer, error) {
	barter, err := s.getBarterAsParty(barterID, userID)
	if err != nil {
		return nil, err
	}
	if barter.Status != entity.BarterStatusAccepted {
		return nil, ErrInvalidBarterStatus
	}

	oldStatus := barter.Status
	now := time.Now()
	barter.Status = entity.BarterStatusCompleted
	barter.CompletedAt = &now
	barter.CompletedBy = userID

	if err := s.barterRepo.UpdateBarter(barter); err != nil {
		return nil, err
	}

	s.saveHistory(barter, oldStatus, userID, "exchange completed")
	s.notifyCounterParty(barter, userID, "Barter Completed",
		fmt.Sprintf("The barter for '%s' was completed.", barter.OriginalItem.Name))

	return barter, nil
}

// GetBarter returns the aggregate to one of its parties.
func (s *BarterService) GetBarter(barterID, userID uuid.UUID) (*entity.BarterOffer, error) {
	return s.getBarterAsParty(barterID, userID)
}

// GetBarterStatusHistory returns the audit trail of status transitions.
func (s *BarterService) GetBarterStatusHistory(barterID, userID uuid.UUID) ([]entity.HistoryStatus, error) {
	if _, err := s.getBarterAsParty(barterID, userID); err != nil {
		return nil, err
	}
	return s.logRepo.GetHistoryByRelatedID(barterID.String())
}

// GetUserBarters lists a user's barters by role. For "all" both sides are
// fetched independently, tagged, merged and sorted; the limit is applied after
// the merge so the newest activity wins regardless of role.
func (s *BarterService) GetUserBarters(userID uuid.UUID, role string, limit int) ([]entity.UserBarter, error) {
	if role != entity.BarterRoleReceived && role != entity.BarterRoleSent && role != entity.BarterRoleAll {
		return nil, ErrInvalidBarterRole
	}
	if limit <= 0 {
		limit = defaultBarterLimit
	}

	var result []entity.UserBarter

	if role == entity.BarterRoleReceived || role == entity.BarterRoleAll {
		received, err := s.barterRepo.GetBartersByOwnerID(userID, limit)
		if err != nil {
			return nil, err
		}
		for _, barter := range received {
			result = append(result, entity.UserBarter{BarterOffer: barter, Role: entity.BarterRoleReceived})
		}
	}
	if role == entity.BarterRoleSent || role == entity.BarterRoleAll {
		sent, err := s.barterRepo.GetBartersByRequesterID(userID, limit)
		if err != nil {
			return nil, err
		}
		for _, barter := range sent {
			result = append(result, entity.UserBarter{BarterOffer: barter, Role: entity.BarterRoleSent})
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// --- HELPERS ---

func (s *BarterService) getBarterAsParty(barterID, userID uuid.UUID) (*entity.BarterOffer, error) {
	barter, err := s.barterRepo.GetBarterByID(barterID)
	if err != nil {
		return nil, err
	}
	if barter == nil {
		return nil, ErrBarterNotFound
	}
	if !barter.IsParty(userID) {
		return nil, ErrNotBarterParty
	}
	return barter, nil
}

// notifyCounterParty dispatches a best-effort notification to the party who
// did not act. Failures are logged and never roll back the transition.
func (s *BarterService) notifyCounterParty(barter *entity.BarterOffer, actingUserID uuid.UUID, title, message string) {
	recipient := barter.OtherParty(actingUserID)
	noti := &entity.Notification{
		ID:           primitive.NewObjectID(),
		UserID:       recipient.String(),
		Type:         "barter_status",
		Title:        title,
		Message:      message,
		RelatedID:    barter.ID.String(),
		ItemID:       barter.OriginalItemID.String(),
		ItemName:     barter.OriginalItem.Name,
		Status:       barter.Status,
		ActingUserID: actingUserID.String(),
		IsRead:       false,
		CreatedAt:    time.Now(),
	}
	if err := s.logRepo.SaveNotification(noti); err != nil {
		log.Printf("Warning: failed to save notification for user %s: %v", recipient.String(), err)
	}
}

func (s *BarterService) saveHistory(barter *entity.BarterOffer, oldStatus string, changedBy uuid.UUID, note string) {
	history := &entity.HistoryStatus{
		ID:          primitive.NewObjectID(),
		RelatedID:   barter.ID.String(),
		RelatedType: "barter",
		OldStatus:   oldStatus,
		NewStatus:   barter.Status,
		ChangedBy:   changedBy.String(),
		Timestamp:   time.Now(),
		Note:        note,
	}
	if err := s.logRepo.SaveHistoryStatus(history); err != nil {
		log.Printf("Warning: failed to save history status for barter %s: %v", barter.ID.String(), err)
	}
}
