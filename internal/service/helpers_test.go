package service

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/repository/memory"
)

// stubCompleter answers every call with reply/err and records the request.
type stubCompleter struct {
	reply    string
	err      error
	calls    int
	messages []AIChatMessage
	opts     CompletionOptions
}

func (s *stubCompleter) Complete(_ context.Context, messages []AIChatMessage, opts CompletionOptions) (string, error) {
	s.calls++
	s.messages = messages
	s.opts = opts
	return s.reply, s.err
}

func testSettings() GenerationSettings {
	return GenerationSettings{PlanTemperature: 0.7, InsightTemperature: 0.8, InsightMaxTokens: 150, Timeout: 5 * time.Second}
}

func newStores() repository.Stores {
	return memory.NewStore().Stores()
}

func createUser(t *testing.T, stores repository.Stores, xp int) *model.User {
	t.Helper()
	u := &model.User{Username: fmt.Sprintf("user%d", time.Now().UnixNano()), Password: "x", DisplayName: "Test User", TotalXP: xp, Streak: 3}
	if err := stores.Users.Create(context.Background(), u); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

// planJSON renders n well-formed tasks.
func planJSON(n int) string {
	tasks := make([]map[string]any, n)
	for i := range tasks {
		tasks[i] = map[string]any{
			"title":            fmt.Sprintf("Step %d", i+1),
			"description":      "do it",
			"type":             "practice",
			"estimatedMinutes": 40,
			"xpReward":         50,
			"orderIndex":       i,
		}
	}
	b, _ := json.Marshal(map[string]any{
		"tasks":               tasks,
		"totalEstimatedHours": 20,
		"difficultyLevel":     "Intermediate",
		"learningPath":        []string{"Basics", "Projects"},
	})
	return string(b)
}

func validGoalRequest(userID uint) model.GoalRequest {
	return model.GoalRequest{
		UserID:         userID,
		Title:          "Learn Python",
		Timeline:       "1 month",
		DailyStudyTime: "1 hour",
		Pace:           "moderate",
	}
}

// seedGoalWithTasks stores an active goal with n incomplete tasks scheduled at "at".
func seedGoalWithTasks(t *testing.T, stores repository.Stores, userID uint, n, xp int, at time.Time) (*model.StudyGoal, []model.StudyTask) {
	t.Helper()
	ctx := context.Background()
	goal := &model.StudyGoal{UserID: userID, Title: "Go", Timeline: "1 month", DailyStudyTime: "1 hour", Pace: "moderate", Status: model.GoalActive}
	if err := stores.Goals.Create(ctx, goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	tasks := make([]model.StudyTask, n)
	for i := range tasks {
		when := at
		tasks[i] = model.StudyTask{GoalID: goal.ID, Title: fmt.Sprintf("t%d", i), Type: model.TaskReading, EstimatedMinutes: 30, XPReward: xp, OrderIndex: i, ScheduledFor: &when}
	}
	if err := stores.Tasks.CreateBatch(ctx, tasks); err != nil {
		t.Fatalf("create tasks: %v", err)
	}
	return goal, tasks
}
