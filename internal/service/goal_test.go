package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"trackmygoal/internal/model"
	"trackmygoal/internal/validation"
)

func floatPtr(v float64) *float64 { return &v }
func stringPtr(s string) *string  { return &s }

func TestGoalService_CreateGoal_AssignsIncreasingIDs(t *testing.T) {
	// ARRANGE
	goals := newFakeGoalRepository()
	tx := &fakeTxRunner{}
	svc := NewGoalService(goals, tx)
	ctx := context.Background()

	// ACT
	first, err := svc.CreateGoal(ctx, 1, &model.CreateGoalRequest{Title: "Run", TargetValue: floatPtr(100), CurrentValue: 25})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if err := svc.DeleteGoal(ctx, 1, first.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	second, err := svc.CreateGoal(ctx, 1, &model.CreateGoalRequest{Title: "Swim", TargetValue: floatPtr(10)})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	other, _ := svc.CreateGoal(ctx, 2, &model.CreateGoalRequest{Title: "Read", TargetValue: floatPtr(5)})

	// ASSERT
	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2 (ids are not reused)", first.ID, second.ID)
	}
	if other.ID != 1 {
		t.Errorf("other user's first id = %d, want 1", other.ID)
	}
	if first.Progress != 25 {
		t.Errorf("progress = %d, want 25", first.Progress)
	}
	if tx.calls != 3 {
		t.Errorf("transactions = %d, want 3", tx.calls)
	}
}

func TestGoalService_CreateGoal_Validation(t *testing.T) {
	start := model.NewDate(2026, 5, 10)
	end := model.NewDate(2026, 5, 1)

	tests := []struct {
		name string
		req  model.CreateGoalRequest
	}{
		{"blank title", model.CreateGoalRequest{Title: "  ", TargetValue: floatPtr(1)}},
		{"missing target", model.CreateGoalRequest{Title: "Run"}},
		{"negative target", model.CreateGoalRequest{Title: "Run", TargetValue: floatPtr(-1)}},
		{"negative current", model.CreateGoalRequest{Title: "Run", TargetValue: floatPtr(1), CurrentValue: -3}},
		{"infinite target", model.CreateGoalRequest{Title: "Run", TargetValue: floatPtr(math.Inf(1))}},
		{"end before start", model.CreateGoalRequest{Title: "Run", TargetValue: floatPtr(1), StartDate: &start, EndDate: &end}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			goals := newFakeGoalRepository()
			svc := NewGoalService(goals, &fakeTxRunner{})

			_, err := svc.CreateGoal(context.Background(), 1, &tt.req)

			if !validation.IsValidationError(err) {
				t.Errorf("expected validation error, got: %v", err)
			}
			if len(goals.goals[1]) != 0 {
				t.Error("invalid goal must not be stored")
			}
		})
	}
}

func TestGoalService_CreateGoal_RepositoryError(t *testing.T) {
	goals := newFakeGoalRepository()
	goals.createErr = errors.New("insert failed")
	svc := NewGoalService(goals, &fakeTxRunner{})

	_, err := svc.CreateGoal(context.Background(), 1, &model.CreateGoalRequest{Title: "Run", TargetValue: floatPtr(1)})

	if err == nil || validation.IsValidationError(err) {
		t.Errorf("expected repository error, got: %v", err)
	}
}

func TestGoalService_UpdateGoal(t *testing.T) {
	goals := newFakeGoalRepository()
	goals.add(1, model.Goal{Title: "Run", CurrentValue: 5, TargetValue: 20, Unit: "km"})
	svc := NewGoalService(goals, &fakeTxRunner{})

	updated, err := svc.UpdateGoal(context.Background(), 1, 1, &model.UpdateGoalRequest{
		CurrentValue: floatPtr(10),
		Title:        stringPtr("Run further"),
	})

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if updated.Title != "Run further" || updated.CurrentValue != 10 || updated.Unit != "km" {
		t.Errorf("updated = %+v", updated)
	}
	if updated.Progress != 50 {
		t.Errorf("progress = %d, want 50", updated.Progress)
	}
	stored, _ := goals.GetByID(context.Background(), 1, 1)
	if stored.CurrentValue != 10 {
		t.Errorf("stored current = %v, want 10", stored.CurrentValue)
	}
}

func TestGoalService_UpdateGoal_Errors(t *testing.T) {
	goals := newFakeGoalRepository()
	goals.add(1, model.Goal{Title: "Run", TargetValue: 20})
	svc := NewGoalService(goals, &fakeTxRunner{})
	ctx := context.Background()

	if _, err := svc.UpdateGoal(ctx, 1, 9, &model.UpdateGoalRequest{}); !errors.Is(err, model.ErrGoalNotFound) {
		t.Errorf("missing goal: expected ErrGoalNotFound, got: %v", err)
	}
	if _, err := svc.UpdateGoal(ctx, 2, 1, &model.UpdateGoalRequest{}); !errors.Is(err, model.ErrGoalNotFound) {
		t.Errorf("other user's goal: expected ErrGoalNotFound, got: %v", err)
	}
	if _, err := svc.UpdateGoal(ctx, 1, 1, &model.UpdateGoalRequest{Title: stringPtr("")}); !validation.IsValidationError(err) {
		t.Errorf("blank title: expected validation error, got: %v", err)
	}
}

func TestGoalService_ListGoals(t *testing.T) {
	goals := newFakeGoalRepository()
	goals.add(1,
		model.Goal{Title: "a", CurrentValue: 1, TargetValue: 4},
		model.Goal{Title: "b", CurrentValue: 3, TargetValue: 0, Public: true},
	)
	svc := NewGoalService(goals, &fakeTxRunner{})

	list, err := svc.ListGoals(context.Background(), 1)

	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if len(list) != 2 || list[0].ID != 1 || list[1].ID != 2 {
		t.Fatalf("list = %+v", list)
	}
	if list[0].Progress != 25 || list[1].Progress != 0 {
		t.Errorf("progress = %d, %d; want 25, 0", list[0].Progress, list[1].Progress)
	}
}

func TestGoalService_DeleteGoal_NotFound(t *testing.T) {
	svc := NewGoalService(newFakeGoalRepository(), &fakeTxRunner{})

	if err := svc.DeleteGoal(context.Background(), 1, 1); !errors.Is(err, model.ErrGoalNotFound) {
		t.Errorf("expected ErrGoalNotFound, got: %v", err)
	}
}
