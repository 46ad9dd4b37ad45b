package repository

import (
	"database/sql"
	"errors"

	entity "swap-market/internal/domain"

	"github.com/google/uuid"
)

var ErrAlreadyFollowing = errors.New("already following this user")

type FollowRepository interface {
	CreateFollow(follow *entity.Follow) error
	DeleteFollow(followerID, followeeID uuid.UUID) error
	GetFollowers(userID uuid.UUID) ([]entity.Follow, error)
	GetFollowing(userID uuid.UUID) ([]entity.Follow, error)
}

type ReviewRepository interface {
	CreateReview(review *entity.Review) error
	GetReviewsByTargetID(targetID uuid.UUID) ([]entity.Review, error)
}

type followRepository struct {
	db *sql.DB
}

func NewFollowRepository(db *sql.DB) FollowRepository {
	return &followRepository{db: db}
}

func (r *followRepository) CreateFollow(follow *entity.Follow) error {
	query := `
		INSERT INTO follows (follower_id, followee_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, followee_id) DO NOTHING
	`
	res, err := r.db.Exec(query, follow.FollowerID, follow.FolloweeID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyFollowing
	}
	return nil
}

func (r *followRepository) DeleteFollow(followerID, followeeID uuid.UUID) error {
	_, err := r.db.Exec(`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`, followerID, followeeID)
	return err
}

func (r *followRepository) GetFollowers(userID uuid.UUID) ([]entity.Follow, error) {
	return r.queryFollows(`SELECT follower_id, followee_id, created_at FROM follows WHERE followee_id = $1`, userID)
}

func (r *followRepository) GetFollowing(userID uuid.UUID) ([]entity.Follow, error) {
	return r.queryFollows(`SELECT follower_id, followee_id, created_at FROM follows WHERE follower_id = $1`, userID)
}

func (r *followRepository) queryFollows(query string, userID uuid.UUID) ([]entity.Follow, error) {
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var follows []entity.Follow
	for rows.Next() {
		var follow entity.Follow
		if err := rows.Scan(&follow.FollowerID, &follow.FolloweeID, &follow.CreatedAt); err != nil {
			return nil, err
		}
		follows = append(follows, follow)
	}
	return follows, rows.Err()
}

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) CreateReview(review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, reviewer_id, target_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(query, review.ID, review.ReviewerID, review.TargetID, review.Rating, review.Comment)
	return err
}

func (r *reviewRepository) GetReviewsByTargetID(targetID uuid.UUID) ([]entity.Review, error) {
	query := `SELECT id, reviewer_id, target_id, rating, comment, created_at FROM reviews WHERE target_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(query, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []entity.Review
	for rows.Next() {
		var review entity.Review
		if err := rows.Scan(&review.ID, &review.ReviewerID, &review.TargetID, &review.Rating, &review.Comment, &review.CreatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
