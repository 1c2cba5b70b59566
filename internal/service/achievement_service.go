package service

import (
	"context"
	"errors"
	"math"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/util"
)

// StatsSnapshot is what achievement rules see after a stat-changing event.
type StatsSnapshot struct {
	UserID              uint
	DailyCompletedCount int
	TotalCompletedTasks int
	TotalXP             int
	Streak              int
	CompletedGoals      int
}

// AchievementRule returns the achievements to create for a snapshot, if any.
type AchievementRule func(StatsSnapshot) []model.Achievement

// TaskMasterRule fires when exactly five of today's tasks are complete.
// It does not check whether the user already holds the award.
func TaskMasterRule(s StatsSnapshot) []model.Achievement {
	if s.DailyCompletedCount != 5 {
		return nil
	}
	return []model.Achievement{{
		Type:        model.AchievementTasks,
		Title:       "Task Master",
		Description: "Completed 5 tasks in a day",
		Icon:        "fas fa-check-circle",
		XPReward:    100,
	}}
}

// DefaultAchievementRules is the rule set shipped with the service.
var DefaultAchievementRules = []AchievementRule{TaskMasterRule}

type catalogueItem struct {
	model.CatalogueEntry
	// countsGoalsCreated measures goals created instead of goals completed.
	countsGoalsCreated bool
}

var achievementCatalogue = []catalogueItem{
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementStreak, Title: "Getting Started", Description: "Complete your first day of study", Icon: "fas fa-play-circle", XPReward: 50, Target: 1}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementStreak, Title: "On Fire", Description: "Maintain a 3-day study streak", Icon: "fas fa-fire", XPReward: 100, Target: 3}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementStreak, Title: "Consistent Learner", Description: "Maintain a 7-day study streak", Icon: "fas fa-calendar-check", XPReward: 200, Target: 7}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementStreak, Title: "Dedication Master", Description: "Maintain a 30-day study streak", Icon: "fas fa-medal", XPReward: 500, Target: 30}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementXP, Title: "First Steps", Description: "Earn your first 100 XP", Icon: "fas fa-star", XPReward: 25, Target: 100}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementXP, Title: "Knowledge Seeker", Description: "Earn 500 XP", Icon: "fas fa-graduation-cap", XPReward: 75, Target: 500}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementXP, Title: "Learning Machine", Description: "Earn 1000 XP", Icon: "fas fa-rocket", XPReward: 150, Target: 1000}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementXP, Title: "XP Master", Description: "Earn 5000 XP", Icon: "fas fa-crown", XPReward: 300, Target: 5000}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementTasks, Title: "Task Starter", Description: "Complete your first task", Icon: "fas fa-check", XPReward: 30, Target: 1}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementTasks, Title: "Productive Day", Description: "Complete 5 tasks in one day", Icon: "fas fa-check-double", XPReward: 100, Target: 5}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementTasks, Title: "Task Crusher", Description: "Complete 25 tasks total", Icon: "fas fa-trophy", XPReward: 250, Target: 25}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementTasks, Title: "Completion Expert", Description: "Complete 100 tasks total", Icon: "fas fa-gem", XPReward: 500, Target: 100}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementGoals, Title: "Goal Setter", Description: "Create your first study goal", Icon: "fas fa-bullseye", XPReward: 50, Target: 1}, countsGoalsCreated: true},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementGoals, Title: "Goal Achiever", Description: "Complete your first study goal", Icon: "fas fa-flag-checkered", XPReward: 200, Target: 1}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementGoals, Title: "Multi-Achiever", Description: "Complete 3 study goals", Icon: "fas fa-mountain", XPReward: 400, Target: 3}},
	{CatalogueEntry: model.CatalogueEntry{Type: model.AchievementGoals, Title: "Learning Champion", Description: "Complete 10 study goals", Icon: "fas fa-crown", XPReward: 1000, Target: 10}},
}

type AchievementService struct {
	users        repository.UserStore
	goals        repository.GoalStore
	tasks        repository.TaskStore
	achievements repository.AchievementStore
	rules        []AchievementRule
	now          func() time.Time
}

func NewAchievementService(stores repository.Stores, rules ...AchievementRule) *AchievementService {
	if len(rules) == 0 {
		rules = DefaultAchievementRules
	}
	return &AchievementService{
		users:        stores.Users,
		goals:        stores.Goals,
		tasks:        stores.Tasks,
		achievements: stores.Achievements,
		rules:        rules,
		now:          time.Now,
	}
}

// Evaluate runs every rule against the snapshot and stores what they award.
func (s *AchievementService) Evaluate(ctx context.Context, snap StatsSnapshot) ([]model.Achievement, error) {
	var created []model.Achievement
	for _, rule := range s.rules {
		for _, a := range rule(snap) {
			a.UserID = snap.UserID
			if a.UnlockedAt.IsZero() {
				a.UnlockedAt = s.now()
			}
			if err := s.achievements.Create(ctx, &a); err != nil {
				return created, err
			}
			created = append(created, a)
		}
	}
	return created, nil
}

// ListUserAchievements returns every record, newest first.
func (s *AchievementService) ListUserAchievements(ctx context.Context, userID uint) ([]model.Achievement, error) {
	return s.achievements.FindByUser(ctx, userID, 0)
}

// Catalogue reports progress towards every known achievement. An entry is
// unlocked when the user holds a record with its title or has reached its target.
func (s *AchievementService) Catalogue(ctx context.Context, userID uint) ([]model.CatalogueEntry, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	completedTasks, err := s.tasks.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	completedGoals, err := s.goals.CountCompletedByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	createdGoals, err := s.goals.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	held, err := s.achievements.FindByUser(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	titles := make(map[string]struct{}, len(held))
	for _, a := range held {
		titles[a.Title] = struct{}{}
	}

	out := make([]model.CatalogueEntry, 0, len(achievementCatalogue))
	for _, item := range achievementCatalogue {
		entry := item.CatalogueEntry
		var current int
		switch entry.Type {
		case model.AchievementStreak:
			current = user.Streak
		case model.AchievementXP:
			current = user.TotalXP
		case model.AchievementTasks:
			current = int(completedTasks)
		case model.AchievementGoals:
			current = int(completedGoals)
			if item.countsGoalsCreated {
				current = int(createdGoals)
			}
		}
		entry.Progress = catalogueProgress(current, entry.Target)
		_, has := titles[entry.Title]
		entry.Unlocked = has || entry.Progress >= 100
		out = append(out, entry)
	}
	return out, nil
}

func catalogueProgress(current, target int) int {
	if target <= 0 || current <= 0 {
		return 0
	}
	return int(math.Round(math.Min(100, float64(current)/float64(target)*100)))
}
