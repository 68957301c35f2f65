package handler

import (
	"net/http"

	"trackmygoal/internal/httputil"
	"trackmygoal/internal/model"
	"trackmygoal/internal/transport/http/middleware"
)

type NotificationHandler struct {
	notifService NotificationService
}

func NewNotificationHandler(notifService NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notifService: notifService,
	}
}

// List handles GET /notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	limit := httputil.QueryInt(r, "limit", 0)
	if limit < 0 {
		httputil.WriteBadRequest(w, "Invalid limit parameter")
		return
	}

	notifications, err := h.notifService.GetNotifications(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, "list_notifications", err, "Failed to get notifications")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, notifications)
}

// MarkRead handles PATCH /notifications/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.MarkReadRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.NotificationIDs) == 0 {
		httputil.WriteValidationError(w, "notificationIds", "notificationIds is required")
		return
	}

	if err := h.notifService.MarkAsRead(r.Context(), userID, req.NotificationIDs); err != nil {
		writeServiceError(w, "mark_notifications_read", err, "Failed to mark notifications as read")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Notifications marked as read")
}

// MarkAllRead handles PATCH /notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	if err := h.notifService.MarkAllAsRead(r.Context(), userID); err != nil {
		writeServiceError(w, "mark_all_notifications_read", err, "Failed to mark all notifications as read")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "All notifications marked as read")
}

// UnreadCount handles GET /notifications/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	count, err := h.notifService.GetUnreadCount(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "unread_notification_count", err, "Failed to get unread count")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, model.UnreadCountResponse{UnreadCount: count})
}
