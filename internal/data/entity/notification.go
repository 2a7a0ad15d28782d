package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationInfo    NotificationType = "Info"
	NotificationBooking NotificationType = "Booking"
	NotificationRide    NotificationType = "Ride"
)

type Notification struct {
	BaseSimple
	UserID  uuid.UUID        `db:"user_id"`
	Title   string           `db:"title"`
	Message string           `db:"message"`
	Type    NotificationType `db:"type"`
	IsRead  bool             `db:"is_read"`
	ReadAt  *time.Time       `db:"read_at"`
}
