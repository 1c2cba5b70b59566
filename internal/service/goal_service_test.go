package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/util"
)

func TestCreateGoalWithPlan_PersistsGoalAndTasks(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	gen := NewPlanGenerator(&stubCompleter{reply: planJSON(10)}, testSettings())
	svc := NewGoalService(stores, gen, nil)
	fixed := time.Date(2024, 6, 3, 14, 30, 0, 0, time.Local)
	svc.now = func() time.Time { return fixed }

	res, err := svc.CreateGoalWithPlan(context.Background(), validGoalRequest(user.ID))
	if err != nil {
		t.Fatalf("CreateGoalWithPlan: %v", err)
	}
	if res.Goal.Status != model.GoalActive || res.Goal.Progress != 0 {
		t.Fatalf("unexpected goal: %+v", res.Goal)
	}
	if res.AIInsights.DifficultyLevel != "Intermediate" || res.AIInsights.TotalEstimatedHours != 20 {
		t.Fatalf("unexpected insights: %+v", res.AIInsights)
	}

	goals, _ := stores.Goals.FindByUser(context.Background(), user.ID)
	if len(goals) != 1 {
		t.Fatalf("expected 1 goal, got %d", len(goals))
	}
	if string(goals[0].LearningPath) != `["Basics","Projects"]` {
		t.Fatalf("learning path not stored: %s", goals[0].LearningPath)
	}

	tasks, _ := stores.Tasks.FindByGoal(context.Background(), res.Goal.ID)
	if len(tasks) != 10 {
		t.Fatalf("expected 10 tasks, got %d", len(tasks))
	}
	seen := map[int]bool{}
	for i, task := range tasks {
		if task.OrderIndex != i || seen[task.OrderIndex] {
			t.Fatalf("unexpected orderIndex %d at %d", task.OrderIndex, i)
		}
		seen[task.OrderIndex] = true
		if task.ScheduledFor == nil || !task.ScheduledFor.Equal(fixed) {
			t.Fatalf("task %d scheduled for %v", i, task.ScheduledFor)
		}
		if task.IsCompleted || task.CompletedAt != nil {
			t.Fatalf("new task should be incomplete")
		}
	}
}

func TestCreateGoalWithPlan_GenerationFailureWritesNothing(t *testing.T) {
	for name, stub := range map[string]*stubCompleter{
		"upstream":  {err: errors.New("connection refused")},
		"malformed": {reply: `{"tasks":"later"}`},
	} {
		t.Run(name, func(t *testing.T) {
			stores := newStores()
			user := createUser(t, stores, 0)
			svc := NewGoalService(stores, NewPlanGenerator(stub, testSettings()), nil)

			_, err := svc.CreateGoalWithPlan(context.Background(), validGoalRequest(user.ID))
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("expected GenerationError, got %v", err)
			}
			n, _ := stores.Goals.CountByUser(context.Background(), user.ID)
			if n != 0 {
				t.Fatalf("expected no goals, got %d", n)
			}
		})
	}
}

func TestCreateGoalWithPlan_InvalidRequest(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	stub := &stubCompleter{reply: planJSON(1)}
	svc := NewGoalService(stores, NewPlanGenerator(stub, testSettings()), nil)

	req := model.GoalRequest{UserID: user.ID, Title: "   ", Timeline: "5 years", DailyStudyTime: "1 hour", Pace: "fast"}
	_, err := svc.CreateGoalWithPlan(context.Background(), req)
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	fields := map[string]bool{}
	for _, f := range invalid.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"title", "timeline", "pace"} {
		if !fields[want] {
			t.Fatalf("expected violation for %s, got %+v", want, invalid.Fields)
		}
	}
	if fields["dailyStudyTime"] {
		t.Fatalf("dailyStudyTime is valid")
	}
	if stub.calls != 0 {
		t.Fatalf("model should not be called for invalid input")
	}
}

func TestCreateGoalWithPlan_UnknownUser(t *testing.T) {
	stores := newStores()
	stub := &stubCompleter{reply: planJSON(1)}
	svc := NewGoalService(stores, NewPlanGenerator(stub, testSettings()), nil)

	_, err := svc.CreateGoalWithPlan(context.Background(), validGoalRequest(42))
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) || invalid.Fields[0].Field != "userId" {
		t.Fatalf("expected userId violation, got %v", err)
	}
	if stub.calls != 0 {
		t.Fatalf("model should not be called for an unknown user")
	}
}

func TestCreateGoalWithPlan_UsesScheduler(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	daily := TaskSchedulerFunc(func(_ model.GoalRequest, tasks []model.GeneratedTask, createdAt time.Time) []time.Time {
		out := make([]time.Time, len(tasks))
		for i := range out {
			out[i] = base.AddDate(0, 0, i)
		}
		return out
	})
	svc := NewGoalService(stores, NewPlanGenerator(&stubCompleter{reply: planJSON(3)}, testSettings()), daily)

	res, err := svc.CreateGoalWithPlan(context.Background(), validGoalRequest(user.ID))
	if err != nil {
		t.Fatalf("CreateGoalWithPlan: %v", err)
	}
	if !res.Tasks[2].ScheduledFor.Equal(base.AddDate(0, 0, 2)) {
		t.Fatalf("scheduler not applied: %v", res.Tasks[2].ScheduledFor)
	}
}

func TestUpdateGoalStatus(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	goal, _ := seedGoalWithTasks(t, stores, user.ID, 2, 50, time.Now())
	svc := NewGoalService(stores, nil, nil)
	ctx := context.Background()

	if err := svc.UpdateGoalStatus(ctx, goal.ID, "finished"); err == nil {
		t.Fatalf("expected error for unknown status")
	} else {
		var invalid *InvalidRequestError
		if !errors.As(err, &invalid) {
			t.Fatalf("expected InvalidRequestError, got %v", err)
		}
	}

	if err := svc.UpdateGoalStatus(ctx, goal.ID, "paused"); err != nil {
		t.Fatalf("paused: %v", err)
	}
	got, _ := stores.Goals.FindByID(ctx, goal.ID)
	if got.Status != model.GoalActive {
		t.Fatalf("non-completed statuses are ignored, got %s", got.Status)
	}

	if err := svc.UpdateGoalStatus(ctx, goal.ID, "completed"); err != nil {
		t.Fatalf("completed: %v", err)
	}
	got, _ = stores.Goals.FindByID(ctx, goal.ID)
	if got.Status != model.GoalCompleted || got.Progress != 100 || got.CompletedAt == nil {
		t.Fatalf("unexpected goal: %+v", got)
	}

	if err := svc.UpdateGoalStatus(ctx, 999, "completed"); !errors.Is(err, util.ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

// Two active goals are allowed; readers pick the lowest id.
func TestActiveGoal_NotUniqueFirstWins(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	svc := NewGoalService(stores, NewPlanGenerator(&stubCompleter{reply: planJSON(2)}, testSettings()), nil)
	ctx := context.Background()

	first, err := svc.CreateGoalWithPlan(ctx, validGoalRequest(user.ID))
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := svc.CreateGoalWithPlan(ctx, validGoalRequest(user.ID)); err != nil {
		t.Fatalf("second: %v", err)
	}

	goals, _ := svc.ListUserGoals(ctx, user.ID)
	active := 0
	for _, g := range goals {
		if g.Status == model.GoalActive {
			active++
		}
	}
	if active != 2 {
		t.Fatalf("expected both goals active, got %d", active)
	}
	picked, _ := stores.Goals.FindActiveByUser(ctx, user.ID)
	if picked.ID != first.Goal.ID {
		t.Fatalf("expected first goal %d, got %d", first.Goal.ID, picked.ID)
	}
}

func TestCreateGoalWithPlan_EmptyPlanStoresGoalWithoutTasks(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	gen := NewPlanGenerator(&stubCompleter{reply: `{"tasks":[]}`}, testSettings())
	svc := NewGoalService(stores, gen, nil)

	res, err := svc.CreateGoalWithPlan(context.Background(), validGoalRequest(user.ID))
	if err != nil {
		t.Fatalf("CreateGoalWithPlan: %v", err)
	}
	if res.Tasks == nil || len(res.Tasks) != 0 {
		t.Fatalf("expected an empty task list, got %#v", res.Tasks)
	}
	if res.AIInsights.LearningPath == nil {
		t.Fatal("learning path should default to an empty list")
	}

	tasks, _ := stores.Tasks.FindByGoal(context.Background(), res.Goal.ID)
	if len(tasks) != 0 {
		t.Fatalf("expected no stored tasks, got %d", len(tasks))
	}
}
