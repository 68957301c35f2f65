package model

import (
	"errors"
	"math"
	"time"
)

// Goal is one entry of a user's embedded goal list. ID is only unique within
// the owning user.
type Goal struct {
	UserID       int64     `db:"user_id" json:"-"`
	ID           int       `db:"id" json:"id"`
	Title        string    `db:"title" json:"title"`
	Category     string    `db:"category" json:"category"`
	CurrentValue float64   `db:"current_value" json:"currentValue"`
	TargetValue  float64   `db:"target_value" json:"targetValue"`
	Unit         string    `db:"unit" json:"unit"`
	StartDate    *Date     `db:"start_date" json:"startDate"`
	EndDate      *Date     `db:"end_date" json:"endDate"`
	Public       bool      `db:"public" json:"public"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`

	Progress int `db:"-" json:"progress"`
}

// Progress returns round(clamp(current/target*100, 0, 100)). A zero target or
// any non-finite ratio yields 0.
func Progress(current, target float64) int {
	if target == 0 {
		return 0
	}
	pct := current / target * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	pct = math.Max(0, math.Min(100, pct))
	return int(math.Round(pct))
}

// WithProgress fills the derived Progress field.
func (g Goal) WithProgress() Goal {
	g.Progress = Progress(g.CurrentValue, g.TargetValue)
	return g
}

// FriendGoal is a public goal as seen by one of the owner's friends.
type FriendGoal struct {
	Goal
	FriendID       int64  `json:"friendId"`
	FriendUsername string `json:"friendUsername"`
	FriendName     string `json:"friendName"`
}

// CreateGoalRequest is the body of POST /goals.
type CreateGoalRequest struct {
	Title        string   `json:"title"`
	Category     string   `json:"category"`
	CurrentValue float64  `json:"currentValue"`
	TargetValue  *float64 `json:"targetValue"`
	Unit         string   `json:"unit"`
	StartDate    *Date    `json:"startDate"`
	EndDate      *Date    `json:"endDate"`
	Public       bool     `json:"public"`
}

// UpdateGoalRequest is the body of PUT /goals/{goalId}. Nil fields are left
// unchanged. The dates are cleared by an explicit null.
type UpdateGoalRequest struct {
	Title        *string      `json:"title"`
	Category     *string      `json:"category"`
	CurrentValue *float64     `json:"currentValue"`
	TargetValue  *float64     `json:"targetValue"`
	Unit         *string      `json:"unit"`
	StartDate    OptionalDate `json:"startDate"`
	EndDate      OptionalDate `json:"endDate"`
	Public       *bool        `json:"public"`
}

// Apply merges the non-nil fields of req into g.
func (req *UpdateGoalRequest) Apply(g *Goal) {
	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.Category != nil {
		g.Category = *req.Category
	}
	if req.CurrentValue != nil {
		g.CurrentValue = *req.CurrentValue
	}
	if req.TargetValue != nil {
		g.TargetValue = *req.TargetValue
	}
	if req.Unit != nil {
		g.Unit = *req.Unit
	}
	if req.StartDate.Set {
		g.StartDate = req.StartDate.Date
	}
	if req.EndDate.Set {
		g.EndDate = req.EndDate.Date
	}
	if req.Public != nil {
		g.Public = *req.Public
	}
}

// DateRange returns the goal dates as optional times.
func (g *Goal) DateRange() (start, end *time.Time) {
	return g.StartDate.timePtr(), g.EndDate.timePtr()
}

var (
	ErrGoalNotFound = errors.New("goal not found")
	ErrNotFriends   = errors.New("not friends with this user")
)
