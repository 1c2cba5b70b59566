package service

import (
	"time"

	"study_buddy_backend/internal/model"
)

// TaskScheduler decides when each generated task is due.
type TaskScheduler interface {
	Schedule(req model.GoalRequest, tasks []model.GeneratedTask, createdAt time.Time) []time.Time
}

// TaskSchedulerFunc adapts a function to TaskScheduler.
type TaskSchedulerFunc func(req model.GoalRequest, tasks []model.GeneratedTask, createdAt time.Time) []time.Time

func (f TaskSchedulerFunc) Schedule(req model.GoalRequest, tasks []model.GeneratedTask, createdAt time.Time) []time.Time {
	return f(req, tasks, createdAt)
}

// ScheduleAllNow puts every task on the creation instant regardless of the
// requested timeline.
var ScheduleAllNow = TaskSchedulerFunc(func(_ model.GoalRequest, tasks []model.GeneratedTask, createdAt time.Time) []time.Time {
	out := make([]time.Time, len(tasks))
	for i := range out {
		out[i] = createdAt
	}
	return out
})
