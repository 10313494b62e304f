package store

import (
	"context"

	"github.com/collabsphere/collabsphere/internal/models"
	"gorm.io/gorm"
)

type NotificationStore struct {
	DB *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{DB: db}
}

func (s *NotificationStore) Create(ctx context.Context, n *models.Notification) error {
	return s.DB.WithContext(ctx).Create(n).Error
}

func (s *NotificationStore) Get(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := s.DB.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationStore) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := newestFirst(s.DB.WithContext(ctx)).Where("user_id = ?", userID).Find(&list).Error
	return list, err
}

// MarkRead flips is_read for the notification when it belongs to userID and
// reports whether such a row exists.
func (s *NotificationStore) MarkRead(ctx context.Context, id, userID uint) (bool, error) {
	res := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (s *NotificationStore) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}
