package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/repository"
	"study_buddy_backend/internal/util"
	"study_buddy_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// PlanSource produces a study plan for a goal request.
type PlanSource interface {
	GeneratePlan(ctx context.Context, req model.GoalRequest) (*model.PlanResult, error)
}

type GoalService struct {
	users     repository.UserStore
	goals     repository.GoalStore
	tasks     repository.TaskStore
	plans     PlanSource
	scheduler TaskScheduler
	now       func() time.Time
}

func NewGoalService(stores repository.Stores, plans PlanSource, scheduler TaskScheduler) *GoalService {
	if scheduler == nil {
		scheduler = ScheduleAllNow
	}
	return &GoalService{
		users:     stores.Users,
		goals:     stores.Goals,
		tasks:     stores.Tasks,
		plans:     plans,
		scheduler: scheduler,
		now:       time.Now,
	}
}

// CreateGoalWithPlan validates the request, generates a plan and stores the
// goal followed by its tasks. Nothing is written if generation fails.
func (s *GoalService) CreateGoalWithPlan(ctx context.Context, req model.GoalRequest) (*model.GoalWithPlan, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, invalidField("userId", "user does not exist")
		}
		return nil, err
	}

	plan, err := s.plans.GeneratePlan(ctx, req)
	if err != nil {
		return nil, err
	}

	path, err := json.Marshal(plan.LearningPath)
	if err != nil {
		return nil, err
	}

	createdAt := s.now()
	goal := &model.StudyGoal{
		UserID:              req.UserID,
		Title:               req.Title,
		Timeline:            req.Timeline,
		DailyStudyTime:      req.DailyStudyTime,
		Pace:                req.Pace,
		Status:              model.GoalActive,
		Progress:            0,
		TotalEstimatedHours: plan.TotalEstimatedHours,
		DifficultyLevel:     plan.DifficultyLevel,
		LearningPath:        datatypes.JSON(path),
		CreatedAt:           createdAt,
	}
	if req.Description != "" {
		desc := req.Description
		goal.Description = &desc
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, err
	}

	schedule := s.scheduler.Schedule(req, plan.Tasks, createdAt)
	tasks := make([]model.StudyTask, len(plan.Tasks))
	for i, gt := range plan.Tasks {
		desc := gt.Description
		at := createdAt
		if i < len(schedule) {
			at = schedule[i]
		}
		tasks[i] = model.StudyTask{
			GoalID:           goal.ID,
			Title:            gt.Title,
			Description:      &desc,
			Type:             gt.Type,
			EstimatedMinutes: gt.EstimatedMinutes,
			XPReward:         gt.XPReward,
			ScheduledFor:     &at,
			OrderIndex:       gt.OrderIndex,
		}
	}
	if err := s.tasks.CreateBatch(ctx, tasks); err != nil {
		logger.Log.Error("Goal stored without tasks", zap.Uint("goal_id", goal.ID), zap.Error(err))
		return nil, err
	}

	return &model.GoalWithPlan{
		Goal:       *goal,
		Tasks:      tasks,
		AIInsights: plan.PlanSummary,
	}, nil
}

func (s *GoalService) ListUserGoals(ctx context.Context, userID uint) ([]model.StudyGoal, error) {
	return s.goals.FindByUser(ctx, userID)
}

func (s *GoalService) ListGoalTasks(ctx context.Context, goalID uint) ([]model.StudyTask, error) {
	return s.tasks.FindByGoal(ctx, goalID)
}

// UpdateGoalStatus accepts any known status but only acts on "completed".
func (s *GoalService) UpdateGoalStatus(ctx context.Context, goalID uint, status string) error {
	st := model.GoalStatus(status)
	if !st.Valid() {
		return invalidField("status", "must be one of: active, paused, completed, archived")
	}
	if _, err := s.goals.FindByID(ctx, goalID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return util.ErrGoalNotFound
		}
		return err
	}
	if st != model.GoalCompleted {
		return nil
	}
	err := s.goals.Complete(ctx, goalID, s.now())
	if errors.Is(err, repository.ErrNotFound) {
		return util.ErrGoalNotFound
	}
	return err
}
