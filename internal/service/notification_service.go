package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/prejin2310/paperlesh-notifier/internal/metrics"
	"github.com/prejin2310/paperlesh-notifier/internal/model"
	"github.com/prejin2310/paperlesh-notifier/internal/push"
)

// NotificationService delivers one notification: best-effort push plus the
// durable in-app history record the user sees on next app open.
type NotificationService struct {
	users   UserStore
	history NotificationStore
	sender  push.Sender
	metrics *metrics.Collector
	log     *zap.Logger
}

func NewNotificationService(users UserStore, history NotificationStore, sender push.Sender, m *metrics.Collector, log *zap.Logger) *NotificationService {
	return &NotificationService{users: users, history: history, sender: sender, metrics: m, log: log}
}

// Dispatch resolves the user's token, attempts push delivery, and appends the
// history record. A missing token skips push without error; a push failure is
// logged and does not prevent the history write. Only a failed history write
// is returned, since the record is the durable source of truth.
func (s *NotificationService) Dispatch(ctx context.Context, userID, title, body string, data map[string]string) error {
	token, err := s.users.PushToken(ctx, userID)
	if err != nil {
		// Degrade to history-only delivery rather than dropping the record.
		s.log.Warn("resolve push token", zap.String("user_id", userID), zap.Error(err))
		token = ""
	}

	if token == "" {
		s.metrics.RecordPushSkipped()
	} else if err := s.sender.Send(ctx, token, push.Message{Title: title, Body: body, Data: data}); err != nil {
		s.metrics.RecordPushFailure()
		s.log.Warn("push delivery failed", zap.String("user_id", userID), zap.Error(err))
	}

	rec := &model.NotificationRecord{
		ID:     uuid.NewString(),
		UserID: userID,
		Title:  title,
		Body:   body,
		Kind:   data["type"],
		Read:   false,
		Data:   toJSONMap(data),
	}
	if err := s.history.Append(ctx, rec); err != nil {
		s.metrics.RecordHistoryFailure()
		return fmt.Errorf("append notification: %w", err)
	}
	s.metrics.RecordDispatch(rec.Kind)
	return nil
}

func toJSONMap(data map[string]string) datatypes.JSONMap {
	m := make(datatypes.JSONMap, len(data))
	for k, v := range data {
		m[k] = v
	}
	return m
}
