// Package memory keeps every entity in process maps. It backs the service
// tests and the "memory" database driver.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
)

type Store struct {
	mu sync.RWMutex

	users        map[uint]model.User
	goals        map[uint]model.StudyGoal
	tasks        map[uint]model.StudyTask
	achievements map[uint]model.Achievement
	reminders    map[uint]model.StudyReminder

	nextUser, nextGoal, nextTask, nextAchievement, nextReminder uint
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uint]model.User),
		goals:        make(map[uint]model.StudyGoal),
		tasks:        make(map[uint]model.StudyTask),
		achievements: make(map[uint]model.Achievement),
		reminders:    make(map[uint]model.StudyReminder),
	}
}

// Stores exposes s through every capability interface.
func (s *Store) Stores() repository.Stores {
	return repository.Stores{
		Users:        userStore{s},
		Goals:        goalStore{s},
		Tasks:        taskStore{s},
		Achievements: achievementStore{s},
		Reminders:    reminderStore{s},
	}
}

type userStore struct{ s *Store }

func (u userStore) Create(_ context.Context, user *model.User) error {
	s := u.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.nextUser++
	user.ID = s.nextUser
	s.users[user.ID] = *user
	return nil
}

func (u userStore) FindByID(_ context.Context, id uint) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (u userStore) FindByUsername(_ context.Context, username string) (*model.User, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	for _, user := range u.s.users {
		if user.Username == username {
			found := user
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (u userStore) AddXP(_ context.Context, id uint, xp int) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return nil
	}
	user.TotalXP += xp
	u.s.users[id] = user
	return nil
}

func (u userStore) Count(_ context.Context) (int64, error) {
	u.s.mu.RLock()
	defer u.s.mu.RUnlock()
	return int64(len(u.s.users)), nil
}

type goalStore struct{ s *Store }

func (g goalStore) Create(_ context.Context, goal *model.StudyGoal) error {
	s := g.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if goal.CreatedAt.IsZero() {
		goal.CreatedAt = time.Now()
	}
	s.nextGoal++
	goal.ID = s.nextGoal
	s.goals[goal.ID] = *goal
	return nil
}

func (g goalStore) FindByID(_ context.Context, id uint) (*model.StudyGoal, error) {
	g.s.mu.RLock()
	defer g.s.mu.RUnlock()
	goal, ok := g.s.goals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &goal, nil
}

// byUser returns the user's goals ordered by id. Callers hold the lock.
func (g goalStore) byUser(userID uint) []model.StudyGoal {
	goals := make([]model.StudyGoal, 0)
	for _, goal := range g.s.goals {
		if goal.UserID == userID {
			goals = append(goals, goal)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].ID < goals[j].ID })
	return goals
}

func (g goalStore) FindByUser(_ context.Context, userID uint) ([]model.StudyGoal, error) {
	g.s.mu.RLock()
	defer g.s.mu.RUnlock()
	return g.byUser(userID), nil
}

func (g goalStore) FindActiveByUser(_ context.Context, userID uint) (*model.StudyGoal, error) {
	g.s.mu.RLock()
	defer g.s.mu.RUnlock()
	for _, goal := range g.byUser(userID) {
		if goal.Status == model.GoalActive {
			found := goal
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (g goalStore) UpdateProgress(_ context.Context, id uint, progress int) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	if goal, ok := g.s.goals[id]; ok {
		goal.Progress = progress
		g.s.goals[id] = goal
	}
	return nil
}

func (g goalStore) Complete(_ context.Context, id uint, at time.Time) error {
	g.s.mu.Lock()
	defer g.s.mu.Unlock()
	goal, ok := g.s.goals[id]
	if !ok {
		return repository.ErrNotFound
	}
	goal.Status = model.GoalCompleted
	goal.Progress = 100
	if goal.CompletedAt == nil {
		goal.CompletedAt = &at
	}
	g.s.goals[id] = goal
	return nil
}

func (g goalStore) CountByUser(_ context.Context, userID uint) (int64, error) {
	g.s.mu.RLock()
	defer g.s.mu.RUnlock()
	return int64(len(g.byUser(userID))), nil
}

func (g goalStore) CountCompletedByUser(_ context.Context, userID uint) (int64, error) {
	g.s.mu.RLock()
	defer g.s.mu.RUnlock()
	var n int64
	for _, goal := range g.byUser(userID) {
		if goal.Status == model.GoalCompleted {
			n++
		}
	}
	return n, nil
}

type taskStore struct{ s *Store }

func (t taskStore) FindByID(_ context.Context, id uint) (*model.StudyTask, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	task, ok := t.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func sortTasks(tasks []model.StudyTask) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].OrderIndex != tasks[j].OrderIndex {
			return tasks[i].OrderIndex < tasks[j].OrderIndex
		}
		return tasks[i].ID < tasks[j].ID
	})
}

func (t taskStore) FindByGoal(_ context.Context, goalID uint) ([]model.StudyTask, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	tasks := make([]model.StudyTask, 0)
	for _, task := range t.s.tasks {
		if task.GoalID == goalID {
			tasks = append(tasks, task)
		}
	}
	sortTasks(tasks)
	return tasks, nil
}

// ownedBy reports whether the task's goal belongs to userID. Callers hold the lock.
func (t taskStore) ownedBy(task model.StudyTask, userID uint) bool {
	goal, ok := t.s.goals[task.GoalID]
	return ok && goal.UserID == userID
}

func (t taskStore) FindScheduledBetween(_ context.Context, userID uint, from, to time.Time) ([]model.StudyTask, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	tasks := make([]model.StudyTask, 0)
	for _, task := range t.s.tasks {
		if task.ScheduledFor == nil || !t.ownedBy(task, userID) {
			continue
		}
		at := *task.ScheduledFor
		if !at.Before(from) && at.Before(to) {
			tasks = append(tasks, task)
		}
	}
	sortTasks(tasks)
	return tasks, nil
}

func (t taskStore) CreateBatch(_ context.Context, tasks []model.StudyTask) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	for i := range tasks {
		t.s.nextTask++
		tasks[i].ID = t.s.nextTask
		t.s.tasks[tasks[i].ID] = tasks[i]
	}
	return nil
}

func (t taskStore) UpdateCompletion(_ context.Context, task *model.StudyTask) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	stored, ok := t.s.tasks[task.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.IsCompleted = task.IsCompleted
	stored.CompletedAt = task.CompletedAt
	t.s.tasks[task.ID] = stored
	return nil
}

func (t taskStore) CountCompletedByUser(_ context.Context, userID uint) (int64, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	var n int64
	for _, task := range t.s.tasks {
		if task.IsCompleted && t.ownedBy(task, userID) {
			n++
		}
	}
	return n, nil
}

type achievementStore struct{ s *Store }

func (a achievementStore) Create(_ context.Context, achievement *model.Achievement) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if achievement.UnlockedAt.IsZero() {
		achievement.UnlockedAt = time.Now()
	}
	a.s.nextAchievement++
	achievement.ID = a.s.nextAchievement
	a.s.achievements[achievement.ID] = *achievement
	return nil
}

func (a achievementStore) FindByUser(_ context.Context, userID uint, limit int) ([]model.Achievement, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	list := make([]model.Achievement, 0)
	for _, ach := range a.s.achievements {
		if ach.UserID == userID {
			list = append(list, ach)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].UnlockedAt.Equal(list[j].UnlockedAt) {
			return list[i].UnlockedAt.After(list[j].UnlockedAt)
		}
		return list[i].ID > list[j].ID
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

type reminderStore struct{ s *Store }

func (r reminderStore) Create(_ context.Context, reminder *model.StudyReminder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextReminder++
	reminder.ID = r.s.nextReminder
	r.s.reminders[reminder.ID] = *reminder
	return nil
}

func (r reminderStore) FindByID(_ context.Context, id uint) (*model.StudyReminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	reminder, ok := r.s.reminders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &reminder, nil
}

func (r reminderStore) FindByUser(_ context.Context, userID uint) ([]model.StudyReminder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	list := make([]model.StudyReminder, 0)
	for _, rem := range r.s.reminders {
		if rem.UserID == userID {
			list = append(list, rem)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r reminderStore) SetActive(_ context.Context, id uint, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	reminder, ok := r.s.reminders[id]
	if !ok {
		return repository.ErrNotFound
	}
	reminder.IsActive = active
	r.s.reminders[id] = reminder
	return nil
}
