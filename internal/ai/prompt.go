package ai

import (
	"fmt"
	"strings"

	"mandalart/internal/model"
)

// QuestionPrompt asks the model for exactly 3 strategic interview
// questions about the goal, as a bare JSON object.
func QuestionPrompt(mainGoal string) string {
	return fmt.Sprintf(`You are an assistant that helps people plan their goals.
Always answer with ONLY valid JSON, no additional text.

The user has the following main goal: %q.

Generate exactly 3 short, strategic questions to better understand how the user intends to reach this goal, their priorities and specific context. These questions will later drive a detailed Mandalart action plan.

Answer with ONLY JSON in this format:
{"questions":[{"id":"1","text":"Question 1?"},{"id":"2","text":"Question 2?"},{"id":"3","text":"Question 3?"}]}`, mainGoal)
}

// GenerationPrompt asks for the full 9x9 Mandalart structure, seeded
// with the interview answers. Brevity is instructed so the grid cells
// stay readable.
func GenerationPrompt(mainGoal string, answers []model.InterviewAnswer) string {
	var ctx strings.Builder
	for _, a := range answers {
		fmt.Fprintf(&ctx, "Q: %s\nA: %s\n", a.QuestionText, a.Answer)
	}

	return fmt.Sprintf(`You are an expert in goal planning using the Mandalart technique.
Always answer with ONLY valid JSON, no additional text.

Goal: %q
Context:
%s
Generate JSON with mainGoal and exactly 8 subGoals. Each subGoal has title, description, an actionable advice and exactly 8 tasks. Each task has title, description, advice and a checklist of short steps.

Be VERY brief. Max 4-5 words per field.

Answer with ONLY JSON:
{"mainGoal":"X","subGoals":[{"title":"A","description":"B","advice":"C","tasks":[{"title":"T","description":"D","advice":"A","checklist":["S1","S2"]},...]},...]}`, mainGoal, ctx.String())
}
