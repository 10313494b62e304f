package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/collabsphere/collabsphere/internal/models"
	"github.com/collabsphere/collabsphere/internal/store"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Actor is the authenticated caller of a workflow operation.
type Actor struct {
	ID      uint
	IsAdmin bool
}

// AdminDirectory lists the users that receive new-project notifications.
type AdminDirectory interface {
	AdminIDs(ctx context.Context) ([]uint, error)
}

// Publisher pushes committed notifications to connected clients.
type Publisher interface {
	Publish(n models.Notification)
}

// AdminRelay announces new submissions on an out-of-band admin channel.
type AdminRelay interface {
	ProjectSubmitted(ctx context.Context, project models.Project, owner models.User) error
}

// Workflow composes the project lifecycle, application tracking, membership
// ledger and notification sink. Every mutating operation runs in a single
// transaction; pushes and relays happen after commit.
type Workflow struct {
	db        *gorm.DB
	admins    AdminDirectory
	publisher Publisher
	relay     AdminRelay
	log       *logrus.Logger
	validate  *validator.Validate
	now       func() time.Time
}

type Option func(*Workflow)

func WithPublisher(p Publisher) Option {
	return func(w *Workflow) { w.publisher = p }
}

func WithAdminRelay(r AdminRelay) Option {
	return func(w *Workflow) { w.relay = r }
}

func WithClock(now func() time.Time) Option {
	return func(w *Workflow) { w.now = now }
}

func New(db *gorm.DB, admins AdminDirectory, log *logrus.Logger, opts ...Option) *Workflow {
	if db == nil {
		panic("database connection is required")
	}
	if admins == nil {
		panic("admin directory is required")
	}
	if log == nil {
		panic("logger is required")
	}

	w := &Workflow{
		db:       db,
		admins:   admins,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// outbox collects notifications written inside a transaction so they can be
// pushed once the transaction has committed.
type outbox struct {
	sent []models.Notification
}

func (w *Workflow) inTx(ctx context.Context, fn func(tx *gorm.DB, out *outbox) error) error {
	out := &outbox{}
	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(tx, out)
	})
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return e
		}
		return storageError("transaction failed", err)
	}
	w.publish(out.sent)
	return nil
}

func (w *Workflow) publish(sent []models.Notification) {
	if w.publisher == nil {
		return
	}
	for _, n := range sent {
		w.publisher.Publish(n)
	}
}

// notify is the notification sink: an append-only insert inside the caller's
// transaction. A failure aborts the whole operation.
func (w *Workflow) notify(ctx context.Context, tx *gorm.DB, out *outbox, recipient uint, typ models.NotificationType, message, link string, payload map[string]interface{}) error {
	n := models.Notification{
		UserID:  recipient,
		Type:    typ,
		Message: message,
		Link:    link,
	}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return storageError("encode notification payload", err)
		}
		n.Payload = datatypes.JSON(raw)
	}

	if err := store.NewNotificationStore(tx).Create(ctx, &n); err != nil {
		w.log.WithFields(logrus.Fields{
			"stage":     "notify",
			"recipient": recipient,
			"type":      typ,
		}).WithError(err).Error("notification insert failed, rolling back")
		return storageError("create notification", err)
	}

	out.sent = append(out.sent, n)
	return nil
}

func (w *Workflow) requireAdmin(actor Actor) error {
	if !actor.IsAdmin {
		return newError(KindForbidden, "admin access required")
	}
	return nil
}
