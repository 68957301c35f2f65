package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"trackmygoal/internal/httputil"
	"trackmygoal/internal/model"
	"trackmygoal/internal/transport/http/middleware"
)

// =============================================================================
// MOCK SERVICES
// =============================================================================

type mockUserService struct {
	registerFn      func(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	loginFn         func(ctx context.Context, req *model.LoginRequest) (*model.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	updateProfileFn func(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error)
}

func (m *mockUserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockUserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	return m.loginFn(ctx, req)
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockUserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	return m.updateProfileFn(ctx, userID, req)
}

type stubTokens struct {
	token string
	err   error
}

func (s stubTokens) GenerateAccessToken(userID int64) (string, error) { return s.token, s.err }
func (s stubTokens) ExpiresIn() int                                   { return 900 }

type mockFriendService struct {
	sendFn    func(ctx context.Context, userID int64, friendUsername string) (*model.Friendship, error)
	acceptFn  func(ctx context.Context, requestID int64) (*model.Friendship, error)
	declineFn func(ctx context.Context, requestID int64) (*model.Friendship, error)
	listFn    func(ctx context.Context, userID int64) ([]model.FriendWithUser, error)
	pendingFn func(ctx context.Context, userID int64) ([]model.FriendRequestWithUser, error)
	deleteFn  func(ctx context.Context, userID, friendID int64) error
}

func (m *mockFriendService) SendRequest(ctx context.Context, userID int64, friendUsername string) (*model.Friendship, error) {
	return m.sendFn(ctx, userID, friendUsername)
}

func (m *mockFriendService) AcceptRequest(ctx context.Context, requestID int64) (*model.Friendship, error) {
	return m.acceptFn(ctx, requestID)
}

func (m *mockFriendService) DeclineRequest(ctx context.Context, requestID int64) (*model.Friendship, error) {
	return m.declineFn(ctx, requestID)
}

func (m *mockFriendService) ListFriends(ctx context.Context, userID int64) ([]model.FriendWithUser, error) {
	return m.listFn(ctx, userID)
}

func (m *mockFriendService) ListPendingRequests(ctx context.Context, userID int64) ([]model.FriendRequestWithUser, error) {
	return m.pendingFn(ctx, userID)
}

func (m *mockFriendService) DeleteFriendship(ctx context.Context, userID, friendID int64) error {
	return m.deleteFn(ctx, userID, friendID)
}

type mockGoalService struct {
	listFn   func(ctx context.Context, userID int64) ([]model.Goal, error)
	createFn func(ctx context.Context, userID int64, req *model.CreateGoalRequest) (*model.Goal, error)
	updateFn func(ctx context.Context, userID int64, goalID int, req *model.UpdateGoalRequest) (*model.Goal, error)
	deleteFn func(ctx context.Context, userID int64, goalID int) error
}

func (m *mockGoalService) ListGoals(ctx context.Context, userID int64) ([]model.Goal, error) {
	return m.listFn(ctx, userID)
}

func (m *mockGoalService) CreateGoal(ctx context.Context, userID int64, req *model.CreateGoalRequest) (*model.Goal, error) {
	return m.createFn(ctx, userID, req)
}

func (m *mockGoalService) UpdateGoal(ctx context.Context, userID int64, goalID int, req *model.UpdateGoalRequest) (*model.Goal, error) {
	return m.updateFn(ctx, userID, goalID, req)
}

func (m *mockGoalService) DeleteGoal(ctx context.Context, userID int64, goalID int) error {
	return m.deleteFn(ctx, userID, goalID)
}

type mockVisibilityService struct {
	publicFn  func(ctx context.Context, friendUserID int64) ([]model.FriendGoal, error)
	canViewFn func(ctx context.Context, viewerID, ownerID int64) error
	feedFn    func(ctx context.Context, userID int64) ([]model.FriendGoal, error)
}

func (m *mockVisibilityService) GetPublicGoalsOfFriend(ctx context.Context, friendUserID int64) ([]model.FriendGoal, error) {
	return m.publicFn(ctx, friendUserID)
}

func (m *mockVisibilityService) CanView(ctx context.Context, viewerID, ownerID int64) error {
	return m.canViewFn(ctx, viewerID, ownerID)
}

func (m *mockVisibilityService) GetAggregatedPublicGoals(ctx context.Context, userID int64) ([]model.FriendGoal, error) {
	return m.feedFn(ctx, userID)
}

type mockNotificationService struct {
	listFn     func(ctx context.Context, userID int64, limit int) (*model.NotificationListResponse, error)
	markReadFn func(ctx context.Context, userID int64, ids []int64) error
	markAllFn  func(ctx context.Context, userID int64) error
	unreadFn   func(ctx context.Context, userID int64) (int, error)
}

func (m *mockNotificationService) GetNotifications(ctx context.Context, userID int64, limit int) (*model.NotificationListResponse, error) {
	return m.listFn(ctx, userID, limit)
}

func (m *mockNotificationService) MarkAsRead(ctx context.Context, userID int64, ids []int64) error {
	return m.markReadFn(ctx, userID, ids)
}

func (m *mockNotificationService) MarkAllAsRead(ctx context.Context, userID int64) error {
	return m.markAllFn(ctx, userID)
}

func (m *mockNotificationService) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	return m.unreadFn(ctx, userID)
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// serve routes one request through a chi router with a single route, so URL
// params resolve as in production. A positive userID is placed in the context
// the way the auth middleware does.
func serve(t *testing.T, method, pattern, target string, body string, userID int64, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	r.Method(method, pattern, h)

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID > 0 {
		req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) httputil.ErrorDetail {
	t.Helper()
	var resp httputil.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error body: %v (body %q)", err, rec.Body.String())
	}
	return resp.Error
}
