package model

import (
	"errors"
	"time"
)

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"userId"`
	Title     string    `db:"title" json:"title"`
	Message   string    `db:"message" json:"message"`
	Link      *string   `db:"link" json:"link,omitempty"`
	IsRead    bool      `db:"is_read" json:"isRead"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// NewNotification is the input to CreateNotification.
type NewNotification struct {
	UserID  int64   `json:"userId"`
	Title   string  `json:"title"`
	Message string  `json:"message"`
	Link    *string `json:"link,omitempty"`

	// EventID is set by the stream workers. A second insert with the same
	// EventID is dropped.
	EventID string `json:"-"`
}

// NotificationListResponse is the GET /notifications payload.
type NotificationListResponse struct {
	Notifications []Notification `json:"notifications"`
	UnreadCount   int            `json:"unreadCount"`
}

// UnreadCountResponse is the GET /notifications/unread-count payload.
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

// MarkReadRequest is the request body for marking notifications as read.
type MarkReadRequest struct {
	NotificationIDs []int64 `json:"notificationIds"`
}

var ErrInvalidNotification = errors.New("notification requires a recipient and a title")
