package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mandalart/internal/model"
)

func TestQuestionPrompt(t *testing.T) {
	p := QuestionPrompt("Run a marathon")

	assert.Contains(t, p, `"Run a marathon"`)
	assert.Contains(t, p, "exactly 3")
	// Deterministic: same input, same prompt.
	assert.Equal(t, p, QuestionPrompt("Run a marathon"))
}

func TestGenerationPrompt(t *testing.T) {
	answers := []model.InterviewAnswer{
		{QuestionID: "1", QuestionText: "Why?", Answer: "Health"},
		{QuestionID: "2", QuestionText: "When?", Answer: "Next year"},
	}
	p := GenerationPrompt("Run a marathon", answers)

	assert.Contains(t, p, `"Run a marathon"`)
	assert.Contains(t, p, "Q: Why?")
	assert.Contains(t, p, "A: Health")
	assert.Contains(t, p, "A: Next year")
	assert.Contains(t, p, "exactly 8 subGoals")
	assert.Equal(t, p, GenerationPrompt("Run a marathon", answers))
}
