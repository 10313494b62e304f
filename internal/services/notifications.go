package services

import (
	"context"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/store"
)

func (w *Workflow) ListNotifications(ctx context.Context, actor Actor) ([]models.Notification, error) {
	list, err := store.NewNotificationStore(w.db).ListForUser(ctx, actor.ID)
	if err != nil {
		return nil, storageError("list notifications", err)
	}
	return list, nil
}

func (w *Workflow) UnreadCount(ctx context.Context, actor Actor) (int64, error) {
	count, err := store.NewNotificationStore(w.db).CountUnread(ctx, actor.ID)
	if err != nil {
		return 0, storageError("count notifications", err)
	}
	return count, nil
}

// MarkNotificationRead flips is_read on one of the caller's notifications.
// Another user's notification is reported as forbidden.
func (w *Workflow) MarkNotificationRead(ctx context.Context, notificationID uint, actor Actor) error {
	notifications := store.NewNotificationStore(w.db)

	n, err := notifications.Get(ctx, notificationID)
	if err != nil {
		return lookupError(err, "notification not found")
	}
	if n.UserID != actor.ID {
		return newError(KindForbidden, "notification belongs to another user")
	}

	if _, err := notifications.MarkRead(ctx, notificationID, actor.ID); err != nil {
		return storageError("mark notification read", err)
	}
	return nil
}
