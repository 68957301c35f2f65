package service

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"trackmygoal/internal/model"
	"trackmygoal/internal/repository"
	"trackmygoal/internal/validation"
)

// GoalService manages the authenticated user's own goal list.
type GoalService struct {
	goalRepo repository.GoalRepository
	tx       repository.TxRunner
}

func NewGoalService(goalRepo repository.GoalRepository, tx repository.TxRunner) *GoalService {
	return &GoalService{
		goalRepo: goalRepo,
		tx:       tx,
	}
}

// ListGoals returns all goals of userID in id order with progress filled in.
func (s *GoalService) ListGoals(ctx context.Context, userID int64) ([]model.Goal, error) {
	goals, err := s.goalRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range goals {
		goals[i] = goals[i].WithProgress()
	}
	return goals, nil
}

// CreateGoal validates req and stores it under the next id from the owner's
// counter. Allocation and insert share one transaction.
func (s *GoalService) CreateGoal(ctx context.Context, userID int64, req *model.CreateGoalRequest) (*model.Goal, error) {
	if req.TargetValue == nil {
		return nil, validation.Required("targetValue", "")
	}

	goal := &model.Goal{
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Category:     strings.TrimSpace(req.Category),
		CurrentValue: req.CurrentValue,
		TargetValue:  *req.TargetValue,
		Unit:         strings.TrimSpace(req.Unit),
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Public:       req.Public,
	}
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	err := s.tx.WithTx(ctx, func(tx *sqlx.Tx) error {
		id, err := s.goalRepo.NextID(ctx, tx, userID)
		if err != nil {
			return err
		}
		goal.ID = id
		return s.goalRepo.Create(ctx, tx, goal)
	})
	if err != nil {
		return nil, err
	}

	created := goal.WithProgress()
	return &created, nil
}

// UpdateGoal applies the non-nil fields of req and revalidates the result.
func (s *GoalService) UpdateGoal(ctx context.Context, userID int64, goalID int, req *model.UpdateGoalRequest) (*model.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	req.Apply(goal)
	goal.Title = strings.TrimSpace(goal.Title)
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, err
	}

	updated := goal.WithProgress()
	return &updated, nil
}

// DeleteGoal removes one goal. The id is not handed out again.
func (s *GoalService) DeleteGoal(ctx context.Context, userID int64, goalID int) error {
	return s.goalRepo.Delete(ctx, userID, goalID)
}

func validateGoal(g *model.Goal) error {
	if err := validation.ValidateGoalTitle(g.Title); err != nil {
		return err
	}
	if err := validation.ValidateGoalValue("currentValue", g.CurrentValue); err != nil {
		return err
	}
	if err := validation.ValidateGoalValue("targetValue", g.TargetValue); err != nil {
		return err
	}
	return validation.ValidateDateRange(g.DateRange())
}
