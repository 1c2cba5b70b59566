package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"study_buddy_backend/internal/util"
)

type mapCache struct {
	values map[string]string
	ttl    time.Duration
}

func (c *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := c.values[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.values[key] = value
	c.ttl = ttl
	return nil
}

func TestGetInsight_MissingUserAndMissingGoalShareOnePath(t *testing.T) {
	stores := newStores()
	userWithoutGoal := createUser(t, stores, 0)
	stub := &stubCompleter{reply: "hi"}
	svc := NewInsightService(stores, NewPlanGenerator(stub, testSettings()), nil, time.Hour)

	_, errNoUser := svc.GetInsight(context.Background(), 404)
	_, errNoGoal := svc.GetInsight(context.Background(), userWithoutGoal.ID)
	if !errors.Is(errNoUser, util.ErrActiveGoalNotFound) || !errors.Is(errNoGoal, util.ErrActiveGoalNotFound) {
		t.Fatalf("expected ErrActiveGoalNotFound for both, got %v / %v", errNoUser, errNoGoal)
	}
	if errNoUser != errNoGoal {
		t.Fatalf("both cases should return the same error value")
	}
	if stub.calls != 0 {
		t.Fatalf("model should not be called")
	}
}

func TestGetInsight_BuildsSnapshot(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	goal, tasks := seedGoalWithTasks(t, stores, user.ID, 4, 50, time.Now())
	if _, err := newTaskService(stores).SetTaskCompletion(context.Background(), tasks[0].ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	stub := &stubCompleter{reply: "Nice work"}
	svc := NewInsightService(stores, NewPlanGenerator(stub, testSettings()), nil, time.Hour)
	svc.now = func() time.Time { return goal.CreatedAt.Add(73 * time.Hour) }

	text, err := svc.GetInsight(context.Background(), user.ID)
	if err != nil || text != "Nice work" {
		t.Fatalf("got %q err=%v", text, err)
	}
	prompt := stub.messages[1].Content
	for _, want := range []string{"Current study streak: 3 days", "Completed tasks: 1 out of 4", "Current goal: Go", "Days into their learning journey: 3"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestGetInsight_CachesGeneratedTextOnly(t *testing.T) {
	stores := newStores()
	user := createUser(t, stores, 0)
	seedGoalWithTasks(t, stores, user.ID, 1, 50, time.Now())
	cache := &mapCache{values: map[string]string{}}

	failing := &stubCompleter{err: errors.New("down")}
	svc := NewInsightService(stores, NewPlanGenerator(failing, testSettings()), cache, 2*time.Hour)
	text, err := svc.GetInsight(context.Background(), user.ID)
	if err != nil || text != InsightErrorFallback {
		t.Fatalf("got %q err=%v", text, err)
	}
	if len(cache.values) != 0 {
		t.Fatalf("fallback must not be cached")
	}

	stub := &stubCompleter{reply: "Fresh insight"}
	svc = NewInsightService(stores, NewPlanGenerator(stub, testSettings()), cache, 2*time.Hour)
	for i := 0; i < 2; i++ {
		text, err = svc.GetInsight(context.Background(), user.ID)
		if err != nil || text != "Fresh insight" {
			t.Fatalf("got %q err=%v", text, err)
		}
	}
	if stub.calls != 1 {
		t.Fatalf("expected one model call, got %d", stub.calls)
	}
	key := insightKey(user.ID, time.Now())
	if cache.values[key] != "Fresh insight" || cache.ttl != 2*time.Hour {
		t.Fatalf("unexpected cache state: %+v", cache)
	}
}
