package notify

import (
	"context"
	"encoding/json"
	"time"

	"photodesk/internal/domain"
)

// Service persists in-app notifications. Delivery is fire-and-forget: a
// failed insert is logged and never propagates into the calling workflow.
type Service struct {
	repo    NotificationRepository
	loggerf func(format string, args ...interface{})
}

func NewService(repo NotificationRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{repo: repo, loggerf: loggerf}
}

func (s *Service) Notify(userID int64, kind domain.NotificationKind, title, body string, data map[string]any) {
	n := &domain.Notification{
		UserID: userID,
		Kind:   kind,
		Title:  title,
		Body:   body,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			s.loggerf("level=warn msg=notification payload not serializable kind=%s err=%v", kind, err)
		} else {
			n.Data = raw
		}
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.Create(ctx, n); err != nil {
			s.loggerf("level=error msg=notification insert failed kind=%s user=%d err=%v", kind, userID, err)
		}
	}()
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]domain.Notification, error) {
	return s.repo.ListByUser(ctx, userID, limit)
}

func (s *Service) MarkRead(ctx context.Context, id, userID int64) error {
	return s.repo.MarkRead(ctx, id, userID)
}
