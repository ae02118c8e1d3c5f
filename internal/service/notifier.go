package service

import (
	"errors"
	"sync"

	"github.com/brightframe/studio-backend/internal/models"
	"go.uber.org/zap"
)

// ErrNotConfirmed is returned when the user declines a confirmation prompt.
var ErrNotConfirmed = errors.New("operation not confirmed")

// Notifier receives the transient success and failure messages an
// operation produces.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NotificationLog collects notifications for one request.
type NotificationLog struct {
	mu    sync.Mutex
	items []models.Notification
}

func NewNotificationLog() *NotificationLog {
	return &NotificationLog{}
}

func (l *NotificationLog) Success(message string) {
	l.add(models.NotifySuccess, message)
}

func (l *NotificationLog) Error(message string) {
	l.add(models.NotifyError, message)
}

func (l *NotificationLog) add(level models.NotificationLevel, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, models.Notification{Level: level, Message: message})
}

// Items returns a copy of everything collected so far.
func (l *NotificationLog) Items() []models.Notification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Notification, len(l.items))
	copy(out, l.items)
	return out
}

type loggingNotifier struct {
	next   Notifier
	log    *zap.Logger
	fields []zap.Field
}

// WithLogging logs every notification before passing it on.
func WithLogging(next Notifier, log *zap.Logger, fields ...zap.Field) Notifier {
	return &loggingNotifier{next: next, log: log, fields: fields}
}

func (n *loggingNotifier) Success(message string) {
	n.log.Info(message, n.fields...)
	n.next.Success(message)
}

func (n *loggingNotifier) Error(message string) {
	n.log.Warn(message, n.fields...)
	n.next.Error(message)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Confirmed answers every prompt with ok. The HTTP layer uses it with the
// "confirm" flag of the request body.
func Confirmed(ok bool) Confirmer {
	return ConfirmFunc(func(string) bool { return ok })
}

// fail reports err through n and returns it.
func fail(n Notifier, err error) error {
	n.Error(models.UserMessage(err))
	return err
}

func remote(message, op string, err error) *models.RemoteError {
	return &models.RemoteError{Op: op, Message: message, Err: err}
}
