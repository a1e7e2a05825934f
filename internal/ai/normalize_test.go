package ai

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mandalart/internal/model"
)

func TestExtractJSON(t *testing.T) {
	t.Run("object with surrounding prose", func(t *testing.T) {
		raw := `Sure! Here is the JSON you asked for: {"questions":[{"id":"1","text":"Why?"}]} Hope it helps.`
		got, err := ExtractJSON(raw)
		require.NoError(t, err)
		assert.Equal(t, `{"questions":[{"id":"1","text":"Why?"}]}`, got)
	})

	t.Run("no braces", func(t *testing.T) {
		_, err := ExtractJSON("I cannot answer that.")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("closing brace before opening", func(t *testing.T) {
		_, err := ExtractJSON("} nothing {")
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestParseQuestions(t *testing.T) {
	t.Run("prose around the object", func(t *testing.T) {
		raw := `Of course. {"questions":[{"id":"1","text":"Why?"}]} Let me know!`
		questions, err := ParseQuestions(raw)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.Equal(t, "1", questions[0].ID)
		assert.Equal(t, "Why?", questions[0].Text)
	})

	t.Run("missing id gets one assigned", func(t *testing.T) {
		questions, err := ParseQuestions(`{"questions":[{"text":"How?"}]}`)
		require.NoError(t, err)
		require.Len(t, questions, 1)
		assert.NotEmpty(t, questions[0].ID)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseQuestions(`{"questions":[`)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("empty question list", func(t *testing.T) {
		_, err := ParseQuestions(`{"questions":[]}`)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("mistyped text field", func(t *testing.T) {
		_, err := ParseQuestions(`{"questions":[{"id":"1","text":42}]}`)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})
}

func rawMandalart(subGoals, tasksEach int) string {
	out := `{"mainGoal":"Run a marathon","subGoals":[`
	for i := 0; i < subGoals; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"title":"Sub %d","description":"d","advice":"a","tasks":[`, i)
		for j := 0; j < tasksEach; j++ {
			if j > 0 {
				out += ","
			}
			out += fmt.Sprintf(`{"title":"Task %d-%d","description":"td","advice":"ta","checklist":["one","two"]}`, i, j)
		}
		out += `]}`
	}
	return out + `]}`
}

func TestParseMandalart_FixedShape(t *testing.T) {
	// The grid must come out 8x8 regardless of what the model produced.
	for _, n := range []int{0, 3, 8, 12} {
		t.Run(fmt.Sprintf("%d sub-goals", n), func(t *testing.T) {
			data, err := ParseMandalart(rawMandalart(n, n), "en")
			require.NoError(t, err)
			require.Len(t, data.SubGoals, model.GridSize)
			for _, sg := range data.SubGoals {
				assert.Len(t, sg.Tasks, model.GridSize)
			}
		})
	}
}

func TestParseMandalart_PadsShortResponse(t *testing.T) {
	data, err := ParseMandalart(rawMandalart(5, 2), "en")
	require.NoError(t, err)

	require.Len(t, data.SubGoals, 8)
	assert.Equal(t, "Sub 0", data.SubGoals[0].Title)
	assert.Equal(t, PlaceholderTitle, data.SubGoals[5].Title)
	assert.Equal(t, PlaceholderTitle, data.SubGoals[7].Title)

	// Provided tasks survive, padded ones are placeholders.
	first := data.SubGoals[0]
	assert.Equal(t, "Task 0-0", first.Tasks[0].Title)
	assert.Equal(t, PlaceholderTitle, first.Tasks[2].Title)

	// Padded sub-goals still carry 8 placeholder tasks with checklists.
	for _, task := range data.SubGoals[7].Tasks {
		assert.Equal(t, PlaceholderTitle, task.Title)
		require.Len(t, task.Checklist, 3)
		assert.False(t, task.IsCompleted)
	}
}

func TestParseMandalart_TasksAsStrings(t *testing.T) {
	raw := `{"mainGoal":"Learn Go","subGoals":[{"title":"Read","tasks":["Book","Blog","Talk"]}]}`
	data, err := ParseMandalart(raw, "en")
	require.NoError(t, err)

	assert.Equal(t, "Book", data.SubGoals[0].Tasks[0].Title)
	assert.Empty(t, data.SubGoals[0].Tasks[0].Description)
	// Tasks from the string variant get the default checklist.
	require.Len(t, data.SubGoals[0].Tasks[0].Checklist, 3)
	assert.Equal(t, "Plan", data.SubGoals[0].Tasks[0].Checklist[0].Text)
}

func TestParseMandalart_Validation(t *testing.T) {
	t.Run("missing mainGoal", func(t *testing.T) {
		_, err := ParseMandalart(`{"subGoals":[]}`, "en")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("missing subGoals", func(t *testing.T) {
		_, err := ParseMandalart(`{"mainGoal":"X"}`, "en")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("sub-goal without title", func(t *testing.T) {
		_, err := ParseMandalart(`{"mainGoal":"X","subGoals":[{"tasks":[]}]}`, "en")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("mistyped subGoals", func(t *testing.T) {
		_, err := ParseMandalart(`{"mainGoal":"X","subGoals":"nope"}`, "en")
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	data, err := ParseMandalart(rawMandalart(8, 8), "en")
	require.NoError(t, err)

	before := *data
	beforeSubGoals := make([]model.SubGoal, len(data.SubGoals))
	copy(beforeSubGoals, data.SubGoals)

	Normalize(data, "en")

	assert.Equal(t, before.MainGoal, data.MainGoal)
	assert.Equal(t, beforeSubGoals, data.SubGoals)
}

func TestDefaultChecklist(t *testing.T) {
	en := DefaultChecklist("en")
	require.Len(t, en, 3)
	assert.Equal(t, []string{"Plan", "Execute", "Review"}, []string{en[0].Text, en[1].Text, en[2].Text})

	pt := DefaultChecklist("pt")
	assert.Equal(t, "Planejar", pt[0].Text)

	// Unknown locales fall back to English.
	assert.Equal(t, "Plan", DefaultChecklist("xx")[0].Text)

	// Every call mints fresh ids.
	again := DefaultChecklist("en")
	assert.NotEqual(t, en[0].ID, again[0].ID)
	for _, item := range en {
		assert.False(t, item.Checked)
		assert.NotEmpty(t, item.ID)
	}
}
