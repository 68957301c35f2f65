package service

import (
	"context"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"

	"trackmygoal/internal/model"
)

// =============================================================================
// TEST DOUBLES
// =============================================================================
//
// Function-field mocks cover single calls. The friend lifecycle needs state
// across several calls, so fakeFriendRepository keeps rows in memory.

// fakeTxRunner runs fn without a real transaction. A repository method that
// receives a nil tx falls back to its plain connection, which the fakes ignore.
type fakeTxRunner struct {
	calls int
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	f.calls++
	return fn(nil)
}

// -----------------------------------------------------------------------------
// users
// -----------------------------------------------------------------------------

type mockUserRepository struct {
	users map[int64]*model.User

	createFn           func(ctx context.Context, user *model.User) error
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)
	existsByEmailFn    func(ctx context.Context, email string) (bool, error)
	getByIDErr         error

	createCalls        []*model.User
	updateProfileCalls []*model.User
}

func newMockUserRepository(users ...*model.User) *mockUserRepository {
	m := &mockUserRepository{users: map[int64]*model.User{}}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls = append(m.createCalls, user)
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	user.ID = int64(len(m.users) + 1)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDErr != nil {
		return nil, m.getByIDErr
	}
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	_, err := m.GetByUsername(ctx, username)
	return err == nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.existsByEmailFn != nil {
		return m.existsByEmailFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepository) UpdateProfile(ctx context.Context, user *model.User) error {
	m.updateProfileCalls = append(m.updateProfileCalls, user)
	if _, ok := m.users[user.ID]; !ok {
		return model.ErrUserNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

// -----------------------------------------------------------------------------
// friendships
// -----------------------------------------------------------------------------

type fakeFriendRepository struct {
	users  *mockUserRepository
	rows   map[int64]*model.Friendship
	nextID int64

	listErr error
}

func newFakeFriendRepository(users *mockUserRepository) *fakeFriendRepository {
	return &fakeFriendRepository{users: users, rows: map[int64]*model.Friendship{}}
}

func (f *fakeFriendRepository) find(userID, friendID int64) *model.Friendship {
	for _, row := range f.rows {
		if row.UserID == userID && row.FriendID == friendID {
			return row
		}
	}
	return nil
}

func (f *fakeFriendRepository) sorted() []*model.Friendship {
	rows := make([]*model.Friendship, 0, len(f.rows))
	for _, row := range f.rows {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (f *fakeFriendRepository) insert(userID, friendID int64, status model.FriendshipStatus) *model.Friendship {
	f.nextID++
	now := time.Now()
	row := &model.Friendship{
		ID:        f.nextID,
		UserID:    userID,
		FriendID:  friendID,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	f.rows[row.ID] = row
	return row
}

func (f *fakeFriendRepository) LockByID(ctx context.Context, tx *sqlx.Tx, id int64) (*model.Friendship, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	copied := *row
	return &copied, nil
}

func (f *fakeFriendRepository) LockPair(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error) {
	row := f.find(userID, friendID)
	if row == nil {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (f *fakeFriendRepository) Create(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error) {
	if f.find(userID, friendID) != nil {
		return nil, model.ErrRequestAlreadyPending
	}
	copied := *f.insert(userID, friendID, model.FriendshipPending)
	return &copied, nil
}

func (f *fakeFriendRepository) UpdateStatus(ctx context.Context, tx *sqlx.Tx, id int64, status model.FriendshipStatus) (*model.Friendship, error) {
	row, ok := f.rows[id]
	if !ok {
		return nil, model.ErrRequestNotFound
	}
	row.Status = status
	row.UpdatedAt = time.Now()
	copied := *row
	return &copied, nil
}

func (f *fakeFriendRepository) UpsertAccepted(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (*model.Friendship, error) {
	row := f.find(userID, friendID)
	if row == nil {
		row = f.insert(userID, friendID, model.FriendshipAccepted)
	}
	row.Status = model.FriendshipAccepted
	copied := *row
	return &copied, nil
}

func (f *fakeFriendRepository) DeletePair(ctx context.Context, tx *sqlx.Tx, userID, friendID int64) (int64, error) {
	row := f.find(userID, friendID)
	if row == nil {
		return 0, nil
	}
	delete(f.rows, row.ID)
	return 1, nil
}

func (f *fakeFriendRepository) ListAccepted(ctx context.Context, userID int64) ([]model.FriendWithUser, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	friends := []model.FriendWithUser{}
	for _, row := range f.sorted() {
		if row.UserID != userID || row.Status != model.FriendshipAccepted {
			continue
		}
		friend := f.users.users[row.FriendID]
		friends = append(friends, model.FriendWithUser{Friendship: *row, Friend: friend.Summary()})
	}
	return friends, nil
}

func (f *fakeFriendRepository) ListPendingFor(ctx context.Context, userID int64) ([]model.FriendRequestWithUser, error) {
	requests := []model.FriendRequestWithUser{}
	for _, row := range f.sorted() {
		if row.FriendID != userID || row.Status != model.FriendshipPending {
			continue
		}
		requester := f.users.users[row.UserID]
		requests = append(requests, model.FriendRequestWithUser{Friendship: *row, Requester: requester.Summary()})
	}
	return requests, nil
}

func (f *fakeFriendRepository) AreFriends(ctx context.Context, userID, friendID int64) (bool, error) {
	row := f.find(userID, friendID)
	return row != nil && row.Status == model.FriendshipAccepted, nil
}

// -----------------------------------------------------------------------------
// goals
// -----------------------------------------------------------------------------

type fakeGoalRepository struct {
	goals map[int64][]model.Goal
	seq   map[int64]int

	createErr       error
	batchCalls      [][]int64
	listPublicCalls []int64
}

func newFakeGoalRepository() *fakeGoalRepository {
	return &fakeGoalRepository{goals: map[int64][]model.Goal{}, seq: map[int64]int{}}
}

func (f *fakeGoalRepository) add(userID int64, goals ...model.Goal) {
	for _, g := range goals {
		f.seq[userID]++
		g.UserID = userID
		g.ID = f.seq[userID]
		f.goals[userID] = append(f.goals[userID], g)
	}
}

func (f *fakeGoalRepository) NextID(ctx context.Context, tx *sqlx.Tx, userID int64) (int, error) {
	f.seq[userID]++
	return f.seq[userID], nil
}

func (f *fakeGoalRepository) Create(ctx context.Context, tx *sqlx.Tx, goal *model.Goal) error {
	if f.createErr != nil {
		return f.createErr
	}
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = goal.CreatedAt
	f.goals[goal.UserID] = append(f.goals[goal.UserID], *goal)
	return nil
}

func (f *fakeGoalRepository) GetByID(ctx context.Context, userID int64, goalID int) (*model.Goal, error) {
	for _, g := range f.goals[userID] {
		if g.ID == goalID {
			copied := g
			return &copied, nil
		}
	}
	return nil, model.ErrGoalNotFound
}

func (f *fakeGoalRepository) ListByUser(ctx context.Context, userID int64) ([]model.Goal, error) {
	return append([]model.Goal{}, f.goals[userID]...), nil
}

func (f *fakeGoalRepository) ListPublicByUser(ctx context.Context, userID int64) ([]model.Goal, error) {
	f.listPublicCalls = append(f.listPublicCalls, userID)
	goals := []model.Goal{}
	for _, g := range f.goals[userID] {
		if g.Public {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

func (f *fakeGoalRepository) ListPublicByUsers(ctx context.Context, userIDs []int64) ([]model.Goal, error) {
	f.batchCalls = append(f.batchCalls, userIDs)
	ids := append([]int64{}, userIDs...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	goals := []model.Goal{}
	for _, id := range ids {
		public, _ := f.ListPublicByUser(ctx, id)
		goals = append(goals, public...)
	}
	return goals, nil
}

func (f *fakeGoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	for i, g := range f.goals[goal.UserID] {
		if g.ID == goal.ID {
			f.goals[goal.UserID][i] = *goal
			return nil
		}
	}
	return model.ErrGoalNotFound
}

func (f *fakeGoalRepository) Delete(ctx context.Context, userID int64, goalID int) error {
	goals := f.goals[userID]
	for i, g := range goals {
		if g.ID == goalID {
			f.goals[userID] = append(goals[:i], goals[i+1:]...)
			return nil
		}
	}
	return model.ErrGoalNotFound
}

// -----------------------------------------------------------------------------
// notifications
// -----------------------------------------------------------------------------

type mockNotificationRepository struct {
	createFn      func(ctx context.Context, n model.NewNotification) (*model.Notification, error)
	listByUserFn  func(ctx context.Context, userID int64, limit int) ([]model.Notification, error)
	unreadCountFn func(ctx context.Context, userID int64) (int, error)

	created       []model.NewNotification
	listLimits    []int
	markReadCalls [][]int64
	markAllCalls  []int64
}

func (m *mockNotificationRepository) Create(ctx context.Context, n model.NewNotification) (*model.Notification, error) {
	m.created = append(m.created, n)
	if m.createFn != nil {
		return m.createFn(ctx, n)
	}
	return &model.Notification{ID: int64(len(m.created)), UserID: n.UserID, Title: n.Title, Message: n.Message, Link: n.Link}, nil
}

func (m *mockNotificationRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]model.Notification, error) {
	m.listLimits = append(m.listLimits, limit)
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID, limit)
	}
	return []model.Notification{}, nil
}

func (m *mockNotificationRepository) MarkAsRead(ctx context.Context, userID int64, notificationIDs []int64) error {
	m.markReadCalls = append(m.markReadCalls, notificationIDs)
	return nil
}

func (m *mockNotificationRepository) MarkAllAsRead(ctx context.Context, userID int64) error {
	m.markAllCalls = append(m.markAllCalls, userID)
	return nil
}

func (m *mockNotificationRepository) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	if m.unreadCountFn != nil {
		return m.unreadCountFn(ctx, userID)
	}
	return 0, nil
}

// recordingNotifier captures emitted notifications and can be told to fail.
type recordingNotifier struct {
	sent []model.NewNotification
	err  error
}

func (r *recordingNotifier) CreateNotification(ctx context.Context, n model.NewNotification) error {
	r.sent = append(r.sent, n)
	return r.err
}
