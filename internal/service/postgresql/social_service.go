package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	entity "swap-market/internal/domain"
	mongorepo "swap-market/internal/repository/mongodb"
	repo "swap-market/internal/repository/postgresql"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrSelfFollow       = errors.New("cannot follow yourself")
	ErrSelfReview       = errors.New("cannot review yourself")
	ErrAlreadyFollowing = repo.ErrAlreadyFollowing
)

type SocialService struct {
	followRepo repo.FollowRepository
	reviewRepo repo.ReviewRepository
	userRepo   repo.UserRepository
	logRepo    mongorepo.LogRepository
}

func NewSocialService(followRepo repo.FollowRepository, reviewRepo repo.ReviewRepository, userRepo repo.UserRepository, logRepo mongorepo.LogRepository) *SocialService {
	return &SocialService{
		followRepo: followRepo,
		reviewRepo: reviewRepo,
		userRepo:   userRepo,
		logRepo:    logRepo,
	}
}

func (s *SocialService) Follow(followerID, followeeID uuid.UUID) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}

	followee, err := s.userRepo.GetByID(followeeID)
	if err != nil {
		return err
	}
	if followee == nil {
		return ErrUserNotFound
	}

	follow := &entity.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.followRepo.CreateFollow(follow); err != nil {
		return err
	}

	s.notify(followeeID, "New Follower", "Someone started following you.", "new_follower", followerID)
	return nil
}

func (s *SocialService) Unfollow(followerID, followeeID uuid.UUID) error {
	return s.followRepo.DeleteFollow(followerID, followeeID)
}

func (s *SocialService) GetFollowers(userID uuid.UUID) ([]entity.Follow, error) {
	return s.followRepo.GetFollowers(userID)
}

func (s *SocialService) GetFollowing(userID uuid.UUID) ([]entity.Follow, error) {
	return s.followRepo.GetFollowing(userID)
}

func (s *SocialService) CreateReview(reviewerID uuid.UUID, input entity.CreateReviewInput) (*entity.Review, error) {
	if reviewerID == input.TargetID {
		return nil, ErrSelfReview
	}

	target, err := s.userRepo.GetByID(input.TargetID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	review := &entity.Review{
		ID:         uuid.New(),
		ReviewerID: reviewerID,
		TargetID:   input.TargetID,
		Rating:     input.Rating,
		Comment:    input.Comment,
	}
	if err := s.reviewRepo.CreateReview(review); err != nil {
		return nil, err
	}

	s.notify(input.TargetID, "New Review",
		fmt.Sprintf("You received a %d-star review.", review.Rating), "new_review", reviewerID)
	return review, nil
}

func (s *SocialService) GetUserReviews(targetID uuid.UUID) (*entity.ReviewSummary, error) {
	reviews, err := s.reviewRepo.GetReviewsByTargetID(targetID)
	if err != nil {
		return nil, err
	}

	var average float64
	if len(reviews) > 0 {
		var total int
		for _, review := range reviews {
			total += review.Rating
		}
		average = float64(total) / float64(len(reviews))
	}
	return &entity.ReviewSummary{Reviews: reviews, AverageRating: average}, nil
}

func (s *SocialService) notify(userID uuid.UUID, title, message, notiType string, actorID uuid.UUID) {
	noti := &entity.Notification{
		ID:           primitive.NewObjectID(),
		UserID:       userID.String(),
		Type:         notiType,
		Title:        title,
		Message:      message,
		ActingUserID: actorID.String(),
		IsRead:       false,
		CreatedAt:    time.Now(),
	}
	if err := s.logRepo.SaveNotification(noti); err != nil {
		log.Printf("Warning: failed to save notification for user %s: %v", userID.String(), err)
	}
}
