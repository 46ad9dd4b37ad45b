package mongodb

import (
	"context"
	"fmt"
	"time"

	entity "swap-market/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionNotifications = "notifications"
	CollectionStatusHistory = "history_status"
)

type LogRepository interface {
	SaveNotification(doc *entity.Notification) error
	SaveHistoryStatus(doc *entity.HistoryStatus) error
	GetNotificationsByUserID(userID string, limit int64) ([]entity.Notification, error)
	MarkNotificationRead(id primitive.ObjectID, userID string) error
	GetHistoryByRelatedID(relatedID string) ([]entity.HistoryStatus, error)
}

type logRepository struct {
	notifications *mongo.Collection
	history       *mongo.Collection
}

func NewLogRepository(client *mongo.Client, database string) LogRepository {
	db := client.Database(database)
	return &logRepository{
		notifications: db.Collection(CollectionNotifications),
		history:       db.Collection(CollectionStatusHistory),
	}
}

func (r *logRepository) SaveNotification(doc *entity.Notification) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.notifications.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *logRepository) SaveHistoryStatus(doc *entity.HistoryStatus) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := r.history.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert history status: %w", err)
	}
	return nil
}

func (r *logRepository) GetNotificationsByUserID(userID string, limit int64) ([]entity.Notification, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}

	cursor, err := r.notifications.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []entity.Notification
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode notifications: %w", err)
	}
	return docs, nil
}

func (r *logRepository) MarkNotificationRead(id primitive.ObjectID, userID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.notifications.UpdateOne(ctx,
		bson.M{"_id": id, "user_id": userID},
		bson.M{"$set": bson.M{"is_read": true}},
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *logRepository) GetHistoryByRelatedID(relatedID string) ([]entity.HistoryStatus, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cursor, err := r.history.Find(ctx, bson.M{"related_id": relatedID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []entity.HistoryStatus
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode status history: %w", err)
	}
	return docs, nil
}
