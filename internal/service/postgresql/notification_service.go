package service

import (
	"errors"

	entity "swap-market/internal/domain"
	mongorepo "swap-market/internal/repository/mongodb"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	logRepo mongorepo.LogRepository
}

func NewNotificationService(logRepo mongorepo.LogRepository) *NotificationService {
	return &NotificationService{logRepo: logRepo}
}

func (s *NotificationService) GetMyNotifications(userID uuid.UUID, limit int64) ([]entity.Notification, error) {
	return s.logRepo.GetNotificationsByUserID(userID.String(), limit)
}

func (s *NotificationService) MarkRead(userID uuid.UUID, notificationID string) error {
	objectID, err := primitive.ObjectIDFromHex(notificationID)
	if err != nil {
		return ErrNotificationNotFound
	}
	err = s.logRepo.MarkNotificationRead(objectID, userID.String())
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotificationNotFound
	}
	return err
}
