package handler

import (
	"net/http"

	"trackmygoal/internal/httputil"
	"trackmygoal/internal/model"
	"trackmygoal/internal/transport/http/middleware"
)

type GoalHandler struct {
	goalService       GoalService
	visibilityService VisibilityService
}

func NewGoalHandler(goalService GoalService, visibilityService VisibilityService) *GoalHandler {
	return &GoalHandler{
		goalService:       goalService,
		visibilityService: visibilityService,
	}
}

// List handles GET /goals
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	goals, err := h.goalService.ListGoals(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "list_goals", err, "Failed to list goals")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, goals)
}

// Create handles POST /goals
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := h.goalService.CreateGoal(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, "create_goal", err, "Failed to create goal")
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, goal)
}

// Update handles PUT /goals/{goalId}
func (h *GoalHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	goalID, ok := pathID(w, r, "goalId")
	if !ok {
		return
	}

	var req model.UpdateGoalRequest
	if !decodeBody(w, r, &req) {
		return
	}

	goal, err := h.goalService.UpdateGoal(r.Context(), userID, int(goalID), &req)
	if err != nil {
		writeServiceError(w, "update_goal", err, "Failed to update goal")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, goal)
}

// Delete handles DELETE /goals/{goalId}
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}
	goalID, ok := pathID(w, r, "goalId")
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(r.Context(), userID, int(goalID)); err != nil {
		writeServiceError(w, "delete_goal", err, "Failed to delete goal")
		return
	}

	httputil.WriteMessage(w, http.StatusOK, "Goal deleted")
}

// FriendGoals handles GET /goals/friends/{friendId}. Authenticated callers
// must be the owner or a friend; anonymous callers get the public list.
func (h *GoalHandler) FriendGoals(w http.ResponseWriter, r *http.Request) {
	friendID, ok := pathID(w, r, "friendId")
	if !ok {
		return
	}

	if viewerID, authenticated := middleware.GetUserIDFromContext(r.Context()); authenticated {
		if err := h.visibilityService.CanView(r.Context(), viewerID, friendID); err != nil {
			writeServiceError(w, "friend_goals", err, "Failed to load friend goals")
			return
		}
	}

	goals, err := h.visibilityService.GetPublicGoalsOfFriend(r.Context(), friendID)
	if err != nil {
		writeServiceError(w, "friend_goals", err, "Failed to load friend goals")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, goals)
}

// Feed handles GET /goals/feed/{userId}
func (h *GoalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	goals, err := h.visibilityService.GetAggregatedPublicGoals(r.Context(), userID)
	if err != nil {
		writeServiceError(w, "goal_feed", err, "Failed to load goal feed")
		return
	}

	httputil.WriteJSON(w, http.StatusOK, goals)
}
