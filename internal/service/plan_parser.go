package service

import (
	"encoding/json"
	"fmt"
	"math"

	"study_buddy_backend/internal/model"
	"study_buddy_backend/internal/util"
)

// Plan defaults applied when the model leaves a value out.
const (
	defaultTaskType         = model.TaskReading
	defaultEstimatedMinutes = 30
	defaultXPReward         = 50
	defaultDifficulty       = "Beginner"
)

// parsePlan decodes model output strictly at the top level and leniently
// inside the tasks array. Missing, empty, zero, negative, oversized or
// mistyped values fall back to defaults. An empty tasks array is a plan with
// no tasks.
func parsePlan(content string) (*model.PlanResult, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &top); err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrMalformedGenerationResponse, err)
	}
	if top == nil {
		return nil, fmt.Errorf("%w: response is not an object", util.ErrMalformedGenerationResponse)
	}

	var rawTasks []json.RawMessage
	raw, ok := top["tasks"]
	if !ok {
		return nil, fmt.Errorf("%w: missing tasks array", util.ErrMalformedGenerationResponse)
	}
	if err := json.Unmarshal(raw, &rawTasks); err != nil || rawTasks == nil {
		return nil, fmt.Errorf("%w: tasks is not an array", util.ErrMalformedGenerationResponse)
	}

	plan := &model.PlanResult{Tasks: make([]model.GeneratedTask, len(rawTasks))}
	for i, rt := range rawTasks {
		plan.Tasks[i] = parseTask(rt, i)
	}
	normalizeOrder(plan.Tasks)

	plan.TotalEstimatedHours, _ = positiveNumber(top["totalEstimatedHours"])
	plan.DifficultyLevel = stringOr(top["difficultyLevel"], defaultDifficulty)
	plan.LearningPath = stringList(top["learningPath"])
	return plan, nil
}

func parseTask(raw json.RawMessage, i int) model.GeneratedTask {
	var fields map[string]json.RawMessage
	_ = json.Unmarshal(raw, &fields)

	task := model.GeneratedTask{
		Title:            stringOr(fields["title"], fmt.Sprintf("Task %d", i+1)),
		Description:      stringOr(fields["description"], ""),
		Type:             defaultTaskType,
		EstimatedMinutes: defaultEstimatedMinutes,
		XPReward:         defaultXPReward,
		OrderIndex:       i,
	}
	if t := model.TaskType(stringOr(fields["type"], "")); t.Valid() {
		task.Type = t
	}
	if v, ok := positiveNumber(fields["estimatedMinutes"]); ok && math.Round(v) > 0 {
		task.EstimatedMinutes = int(math.Round(v))
	}
	if v, ok := positiveNumber(fields["xpReward"]); ok && math.Round(v) > 0 {
		task.XPReward = int(math.Round(v))
	}
	if v, ok := positiveNumber(fields["orderIndex"]); ok && v == math.Trunc(v) {
		task.OrderIndex = int(v)
	}
	return task
}

// normalizeOrder renumbers every task by position when indexes collide.
func normalizeOrder(tasks []model.GeneratedTask) {
	seen := make(map[int]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.OrderIndex] {
			for i := range tasks {
				tasks[i].OrderIndex = i
			}
			return
		}
		seen[t.OrderIndex] = true
	}
}

func stringOr(raw json.RawMessage, fallback string) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil || s == "" {
		return fallback
	}
	return s
}

// maxPlanNumber caps numeric plan fields so they always fit an int column.
const maxPlanNumber = math.MaxInt32

// positiveNumber reads a number in (0, maxPlanNumber]; anything else counts
// as absent.
func positiveNumber(raw json.RawMessage) (float64, bool) {
	var f float64
	if len(raw) == 0 || json.Unmarshal(raw, &f) != nil || f <= 0 || f > maxPlanNumber {
		return 0, false
	}
	return f, true
}

func stringList(raw json.RawMessage) []string {
	var items []json.RawMessage
	out := []string{}
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return out
	}
	for _, item := range items {
		if s := stringOr(item, ""); s != "" {
			out = append(out, s)
		}
	}
	return out
}
