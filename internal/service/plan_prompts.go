package service

import (
	"fmt"

	"study_buddy_backend/internal/model"
)

const planSystemPrompt = "You are an expert educational curriculum designer who creates personalized, effective study plans. Always respond with valid JSON format."

const insightSystemPrompt = "You are a supportive and knowledgeable learning coach who provides personalized motivation and guidance to students."

const planPromptFormat = `Create a detailed, personalized study plan for learning "%s" with the following requirements:

Timeline: %s
Daily Study Time: %s
Learning Pace: %s
Additional Details: %s

Please generate a comprehensive study plan that includes:
1. A series of specific tasks (videos to watch, readings, quizzes, practice exercises, projects)
2. Each task should have a clear title, description, type, estimated time in minutes, and XP reward
3. Tasks should be ordered logically from beginner to advanced
4. The plan should realistically fit within the specified timeline and daily study time
5. Include a mix of different learning activities (videos, reading, hands-on practice, assessments)

Respond with a JSON object in this exact format:
{
  "tasks": [
    {
      "title": "Task title",
      "description": "Detailed description of what the learner will do",
      "type": "video|reading|quiz|practice|project",
      "estimatedMinutes": number,
      "xpReward": number,
      "orderIndex": number
    }
  ],
  "totalEstimatedHours": number,
  "difficultyLevel": "Beginner|Intermediate|Advanced",
  "learningPath": ["Phase 1 description", "Phase 2 description", "etc"]
}

Make sure the XP rewards are balanced (videos: 30-50, reading: 40-60, quizzes: 50-75, practice: 60-100, projects: 100-200) and the total time aligns with the specified constraints.`

const insightPromptFormat = `Generate a personalized, motivational insight for a student with the following progress:

- Current study streak: %d days
- Completed tasks: %d out of %d
- Current goal: %s
- Days into their learning journey: %d

Create a brief, encouraging message (2-3 sentences) that:
1. Acknowledges their progress
2. Provides specific motivation based on their stats
3. Gives a helpful tip or suggestion for continued success

Keep it personal, positive, and actionable. Respond with just the motivational text, no JSON formatting.`

func buildPlanPrompt(req model.GoalRequest) string {
	details := req.Description
	if details == "" {
		details = "None provided"
	}
	return fmt.Sprintf(planPromptFormat, req.Title, req.Timeline, req.DailyStudyTime, req.Pace, details)
}

func buildInsightPrompt(p model.ProgressSnapshot) string {
	return fmt.Sprintf(insightPromptFormat, p.CurrentStreak, p.CompletedTasks, p.TotalTasks, p.GoalTitle, p.DaysIntoGoal)
}
