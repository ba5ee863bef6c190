package domain

import "time"

// NotificationType tags an event feed entry by what produced it.
type NotificationType string

const (
	NotifyUser     NotificationType = "user"
	NotifyClient   NotificationType = "client"
	NotifyWarning  NotificationType = "warning"
	NotifySale     NotificationType = "sale"
	NotifySuccess  NotificationType = "success"
	NotifyInfo     NotificationType = "info"
	NotifySecurity NotificationType = "security"
	NotifyStock    NotificationType = "stock"
)

// Notification is one append-only event feed entry. Entries are never
// edited after the fact, only cleared in bulk or pruned by id.
type Notification struct {
	ID        int64            `json:"id" bson:"id"`
	Message   string           `json:"message" bson:"message"`
	Type      NotificationType `json:"type" bson:"type"`
	Timestamp time.Time        `json:"timestamp" bson:"timestamp"`
}
