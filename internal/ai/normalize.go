package ai

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"mandalart/internal/model"
)

// PlaceholderTitle fills grid cells the model left short.
const PlaceholderTitle = "..."

// Default checklist steps per locale, used for any task the model
// returned without one.
var checklistSteps = map[string][]string{
	"en": {"Plan", "Execute", "Review"},
	"pt": {"Planejar", "Executar", "Revisar"},
}

// ExtractJSON pulls the first-{ to last-} substring out of raw model
// output, tolerating prose around the object.
func ExtractJSON(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return "", &ParseError{Err: errors.New("no JSON object in response")}
	}
	return raw[start : end+1], nil
}

// ParseQuestions extracts and validates the interview-questions payload.
func ParseQuestions(raw string) ([]model.Question, error) {
	jsonStr, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var payload questionsPayload
	if err := decode(jsonStr, &payload); err != nil {
		return nil, err
	}
	if err := payload.validate(); err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(payload.Questions))
	for i, q := range payload.Questions {
		id := q.ID
		if id == "" {
			id = uuid.NewString()
		}
		questions = append(questions, model.Question{ID: id, Text: payload.Questions[i].Text})
	}
	return questions, nil
}

// ParseMandalart extracts, validates and normalizes a generated grid.
// The returned document always holds exactly 8 sub-goals of 8 tasks.
func ParseMandalart(raw, locale string) (*model.MandalartData, error) {
	jsonStr, err := ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	var payload mandalartPayload
	if err := decode(jsonStr, &payload); err != nil {
		return nil, err
	}
	if err := payload.validate(); err != nil {
		return nil, err
	}

	data := &model.MandalartData{MainGoal: payload.MainGoal}
	for _, sg := range payload.SubGoals {
		sub := model.SubGoal{
			Title:       sg.Title,
			Description: sg.Description,
			Advice:      sg.Advice,
		}
		for _, t := range sg.Tasks {
			sub.Tasks = append(sub.Tasks, model.Task{
				Title:       t.Title,
				Description: t.Description,
				Advice:      t.Advice,
				Checklist:   checklistFromStrings(t.Checklist),
			})
		}
		data.SubGoals = append(data.SubGoals, sub)
	}

	Normalize(data, locale)
	return data, nil
}

// Normalize coerces a document to the fixed 8x8 shape: pads short
// sub-goal and task sequences with placeholders, truncates long ones,
// fills missing checklists and recomputes task completion. It runs
// unconditionally after every generation and is idempotent on an
// already-valid document.
func Normalize(data *model.MandalartData, locale string) {
	for len(data.SubGoals) < model.GridSize {
		data.SubGoals = append(data.SubGoals, model.SubGoal{Title: PlaceholderTitle})
	}
	data.SubGoals = data.SubGoals[:model.GridSize]

	for i := range data.SubGoals {
		sg := &data.SubGoals[i]
		for len(sg.Tasks) < model.GridSize {
			sg.Tasks = append(sg.Tasks, model.Task{Title: PlaceholderTitle})
		}
		sg.Tasks = sg.Tasks[:model.GridSize]

		for j := range sg.Tasks {
			task := &sg.Tasks[j]
			if len(task.Checklist) == 0 {
				task.Checklist = DefaultChecklist(locale)
			}
			task.RecomputeCompleted()
		}
	}
}

// DefaultChecklist builds the three fixed steps for the locale, each
// with a fresh unique id and unchecked.
func DefaultChecklist(locale string) []model.TaskItem {
	steps, ok := checklistSteps[locale]
	if !ok {
		steps = checklistSteps["en"]
	}
	return checklistFromStrings(steps)
}

func checklistFromStrings(texts []string) []model.TaskItem {
	if len(texts) == 0 {
		return nil
	}
	items := make([]model.TaskItem, 0, len(texts))
	for _, text := range texts {
		items = append(items, model.TaskItem{ID: uuid.NewString(), Text: text})
	}
	return items
}
