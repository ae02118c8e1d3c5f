package models

type NotificationLevel string

const (
	NotifySuccess NotificationLevel = "success"
	NotifyError   NotificationLevel = "error"
)

// Notification is a transient message shown to the user after an operation.
type Notification struct {
	Level   NotificationLevel `json:"level"`
	Message string            `json:"message"`
}
