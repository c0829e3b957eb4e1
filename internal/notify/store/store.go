package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/consite/inventory-service/internal/model"
	"github.com/consite/inventory-service/internal/notify"
	"github.com/consite/inventory-service/internal/pkg/broker"
	"github.com/consite/inventory-service/internal/pkg/logger"
)

// Store persists notifications and mirrors them onto the event bus for
// external consumers. Both writes are best-effort.
type Store struct {
	DB       *sqlx.DB
	producer *broker.Producer
	logger   logger.Logger
}

func NewStore(db *sqlx.DB, producer *broker.Producer, log logger.Logger) *Store {
	return &Store{DB: db, producer: producer, logger: log}
}

type event struct {
	EventID   string              `json:"event_id"`
	EventType string              `json:"event_type"`
	Payload   notify.Notification `json:"payload"`
	Timestamp time.Time           `json:"timestamp"`
}

func (s *Store) Notify(ctx context.Context, notifications ...notify.Notification) {
	for _, n := range notifications {
		query := `
            INSERT INTO notifications (user_id, type, message, link, read, created_at)
            VALUES ($1, $2, $3, $4, false, $5)
        `
		if _, err := s.DB.ExecContext(ctx, query, n.UserID, n.Type, n.Message, n.Link, time.Now()); err != nil {
			s.logger.Error("failed to store notification",
				zap.Int64("user_id", n.UserID), zap.Error(err))
		}

		if s.producer == nil {
			continue
		}
		data, err := json.Marshal(event{
			EventID:   uuid.New().String(),
			EventType: "notification.created",
			Payload:   n,
			Timestamp: time.Now(),
		})
		if err != nil {
			continue
		}
		if err := s.producer.Publish(ctx, uuid.New().String(), data); err != nil {
			s.logger.Warn("failed to publish notification event", zap.Error(err))
		}
	}
}

func (s *Store) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	if limit <= 0 {
		limit = 20
	}
	items := []model.Notification{}
	query := `SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	err := s.DB.SelectContext(ctx, &items, query, userID, limit)
	return items, err
}

func (s *Store) MarkRead(ctx context.Context, id, userID int64) error {
	query := `UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2`
	_, err := s.DB.ExecContext(ctx, query, id, userID)
	return err
}
