package ai

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Wire shapes of the two model response contracts. Task entries come in
// two variants across prompt versions: a bare string (the title) or a
// full object. taskPayload accepts both.

type questionsPayload struct {
	Questions []questionPayload `json:"questions"`
}

type questionPayload struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type mandalartPayload struct {
	MainGoal string           `json:"mainGoal"`
	SubGoals []subGoalPayload `json:"subGoals"`
}

type subGoalPayload struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Advice      string        `json:"advice"`
	Tasks       []taskPayload `json:"tasks"`
}

type taskPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Advice      string   `json:"advice"`
	Checklist   []string `json:"checklist"`
}

func (t *taskPayload) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = taskPayload{Title: s}
		return nil
	}

	type alias taskPayload
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*t = taskPayload(a)
	return nil
}

// decode unmarshals extracted JSON, classifying failures: a syntax
// error is a ParseError, a type mismatch is a ValidationError.
func decode(jsonStr string, dst any) error {
	err := json.Unmarshal([]byte(jsonStr), dst)
	if err == nil {
		return nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return &ValidationError{Field: typeErr.Field, Err: err}
	}
	return &ParseError{Err: err}
}

func (p *questionsPayload) validate() error {
	if len(p.Questions) == 0 {
		return &ValidationError{Field: "questions", Err: errors.New("missing or empty")}
	}
	for i, q := range p.Questions {
		if q.Text == "" {
			return &ValidationError{Field: fmt.Sprintf("questions[%d].text", i), Err: errors.New("missing")}
		}
	}
	return nil
}

func (p *mandalartPayload) validate() error {
	if p.MainGoal == "" {
		return &ValidationError{Field: "mainGoal", Err: errors.New("missing")}
	}
	if p.SubGoals == nil {
		return &ValidationError{Field: "subGoals", Err: errors.New("missing")}
	}
	for i, sg := range p.SubGoals {
		if sg.Title == "" {
			return &ValidationError{Field: fmt.Sprintf("subGoals[%d].title", i), Err: errors.New("missing")}
		}
	}
	return nil
}
