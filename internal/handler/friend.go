package handler

import (
	"net/http"

	"trackmygoal/internal/httputil"
	"trackmygoal/internal/model"
	"trackmygoal/internal/validation"
)

type FriendHandler struct {
	friendService FriendService
}

func NewFriendHandler(friendService FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// Send handles POST /friends/send
func (h *FriendHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.SendFriendRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID <= 0 {
		httputil.WriteValidationError(w, "userId", "userId is required")
		return
	}
	if err := validation.Required("friendUsername", req.FriendUsername); err != nil {
		writeServiceError(w, "send_friend_request", err, "")
		return
	}

	request, err := h.friendService.SendRequest(r.Context(), req.UserID, req.FriendUsername)
	if err != nil {
		writeServiceError(w, "send_friend_request", err, "Failed to send friend request")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, request)
}

// Accept handles PUT /friends/accept/{requestId}
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r, "requestId")
	if !ok {
		return
	}

	request, err := h.friendService.AcceptRequest(r.Context(), requestID)
	if err != nil {
		writeServiceError(w, "accept_friend_request", err, "Failed to accept friend request")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, request)
}

// Decline handles PUT /friends/decline/{requestId}. An unknown id answers
// 200 with a null body.
func (h *FriendHandler) Decline(w http.ResponseWriter, r *http.Request) {
	requestID, ok := pathID(w, r, "requestId")
	if !ok {
		return
	}

	request, err := h.friendService.DeclineRequest(r.Context(), requestID)
	if err != nil {
		writeServiceError(w, "decline_friend_request", err, "Failed to decline friend request")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, request)
}

// List handles GET /friends/{userId}
func (h *FriendHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	friends, err := h.friendService.ListFriends(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list_friends", err, "Failed to list friends")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, friends)
}

// ListRequests handles GET /friends/requests/{userId}
func (h *FriendHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	requests, err := h.friendService.ListPendingRequests(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list_friend_requests", err, "Failed to list friend requests")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, requests)
}

// Delete handles DELETE /friends/{userId}/{friendId}
func (h *FriendHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	friendID, ok := pathID(w, r, "friendId")
	if !ok {
		return
	}

	if err := h.friendService.DeleteFriendship(r.Context(), userID, friendID); err != nil {
		writeServiceError(w, "delete_friendship", err, "Failed to delete friendship")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Friendship deleted")
}
