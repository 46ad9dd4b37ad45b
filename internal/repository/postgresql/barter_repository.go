package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	entity "swap-market/internal/domain"

	"github.com/google/uuid"
)

// ErrVersionConflict means the row was updated by someone else between our
// read and our write. Callers reload and retry or surface a conflict.
var ErrVersionConflict = errors.New("barter was modified concurrently")

type BarterRepository interface {
	CreateBarter(barter *entity.BarterOffer) error
	GetBarterByID(barterID uuid.UUID) (*entity.BarterOffer, error)
	UpdateBarter(barter *entity.BarterOffer) error
	GetBartersByOwnerID(ownerID uuid.UUID, limit int) ([]entity.BarterOffer, error)
	GetBartersByRequesterID(requesterID uuid.UUID, limit int) ([]entity.BarterOffer, error)
}

type barterRepository struct {
	db *sql.DB
}

func NewBarterRepository(db *sql.DB) BarterRepository {
	return &barterRepository{db: db}
}

const barterColumns = `
	id, requester_id, owner_id, original_item_id, original_item, negotiations,
	status, conversation_id, accepted_at, accepted_by, completed_at, completed_by,
	cancelled_at, cancelled_by, cancellation_reason, rejected_by, rejection_reason,
	version, created_at, updated_at
`

func (r *barterRepository) CreateBarter(barter *entity.BarterOffer) error {
	snapshot, err := json.Marshal(barter.OriginalItem)
	if err != nil {
		return err
	}
	negotiations, err := json.Marshal(barter.Negotiations)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO barters (id, requester_id, owner_id, original_item_id, original_item, negotiations, status, conversation_id, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1, NOW(), NOW())
	`
	_, err = r.db.Exec(query,
		barter.ID, barter.RequesterID, barter.OwnerID, barter.OriginalItemID,
		snapshot, negotiations, barter.Status, nullString(barter.ConversationID),
	)
	return err
}

func (r *barterRepository) GetBarterByID(barterID uuid.UUID) (*entity.BarterOffer, error) {
	row := r.db.QueryRow(`SELECT `+barterColumns+` FROM barters WHERE id = $1`, barterID)
	barter, err := scanBarter(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return barter, nil
}

// UpdateBarter writes the mutable half of the aggregate with a compare-and-swap
// on the version column. The identity, parties and snapshot never change.
func (r *barterRepository) UpdateBarter(barter *entity.BarterOffer) error {
	negotiations, err := json.Marshal(barter.Negotiations)
	if err != nil {
		return err
	}

	query := `
		UPDATE barters
		SET negotiations = $1, status = $2, conversation_id = $3,
		    accepted_at = $4, accepted_by = $5, completed_at = $6, completed_by = $7,
		    cancelled_at = $8, cancelled_by = $9, cancellation_reason = $10,
		    rejected_by = $11, rejection_reason = $12,
		    version = version + 1, updated_at = NOW()
		WHERE id = $13 AND version = $14
	`
	res, err := r.db.Exec(query,
		negotiations, barter.Status, nullString(barter.ConversationID),
		nullTime(barter.AcceptedAt), nullUUID(barter.AcceptedBy),
		nullTime(barter.CompletedAt), nullUUID(barter.CompletedBy),
		nullTime(barter.CancelledAt), nullUUID(barter.CancelledBy), nullString(barter.CancellationReason),
		nullUUID(barter.RejectedBy), nullString(barter.RejectionReason),
		barter.ID, barter.Version,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	barter.Version++
	return nil
}

func (r *barterRepository) GetBartersByOwnerID(ownerID uuid.UUID, limit int) ([]entity.BarterOffer, error) {
	return r.listBarters(`owner_id`, ownerID, limit)
}

func (r *barterRepository) GetBartersByRequesterID(requesterID uuid.UUID, limit int) ([]entity.BarterOffer, error) {
	return r.listBarters(`requester_id`, requesterID, limit)
}

func (r *barterRepository) listBarters(column string, userID uuid.UUID, limit int) ([]entity.BarterOffer, error) {
	query := `SELECT ` + barterColumns + ` FROM barters WHERE ` + column + ` = $1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var barters []entity.BarterOffer
	for rows.Next() {
		barter, err := scanBarter(rows)
		if err != nil {
			return nil, err
		}
		barters = append(barters, *barter)
	}
	return barters, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBarter(row rowScanner) (*entity.BarterOffer, error) {
	var (
		barter         entity.BarterOffer
		snapshot       []byte
		negotiations   []byte
		conversationID sql.NullString
		acceptedAt     sql.NullTime
		acceptedBy     uuid.NullUUID
		completedAt    sql.NullTime
		completedBy    uuid.NullUUID
		cancelledAt    sql.NullTime
		cancelledBy    uuid.NullUUID
		cancelReason   sql.NullString
		rejectedBy     uuid.NullUUID
		rejectReason   sql.NullString
	)

	err := row.Scan(
		&barter.ID, &barter.RequesterID, &barter.OwnerID, &barter.OriginalItemID,
		&snapshot, &negotiations, &barter.Status, &conversationID,
		&acceptedAt, &acceptedBy, &completedAt, &completedBy,
		&cancelledAt, &cancelledBy, &cancelReason, &rejectedBy, &rejectReason,
		&barter.Version, &barter.CreatedAt, &barter.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(snapshot, &barter.OriginalItem); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(negotiations, &barter.Negotiations); err != nil {
		return nil, err
	}

	barter.ConversationID = conversationID.String
	barter.AcceptedAt = timePtr(acceptedAt)
	barter.AcceptedBy = acceptedBy.UUID
	barter.CompletedAt = timePtr(completedAt)
	barter.CompletedBy = completedBy.UUID
	barter.CancelledAt = timePtr(cancelledAt)
	barter.CancelledBy = cancelledBy.UUID
	barter.CancellationReason = cancelReason.String
	barter.RejectedBy = rejectedBy.UUID
	barter.RejectionReason = rejectReason.String
	return &barter, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullUUID(id uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: id, Valid: id != uuid.Nil}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
