package model

import "time"

// GridSize is the fixed arity of the Mandalart layout: 8 sub-goals
// around the main goal, 8 tasks around each sub-goal.
const GridSize = 8

type TaskItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

type Task struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Advice      string     `json:"advice"`
	IsCompleted bool       `json:"isCompleted"`
	Checklist   []TaskItem `json:"checklist"`
}

type SubGoal struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Advice      string `json:"advice"`
	Tasks       []Task `json:"tasks"`
}

type MandalartData struct {
	MainGoal string    `json:"mainGoal"`
	SubGoals []SubGoal `json:"subGoals"`
}

type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type InterviewAnswer struct {
	QuestionID   string `json:"questionId"`
	QuestionText string `json:"questionText"`
	Answer       string `json:"answer"`
}

type HistoryItem struct {
	ID        string        `json:"id"`
	UserID    int           `json:"userId"`
	Timestamp time.Time     `json:"timestamp"`
	Data      MandalartData `json:"data"`
}

// RecomputeCompleted derives IsCompleted from the checklist. A task is
// complete iff every item is checked; an empty checklist never completes.
func (t *Task) RecomputeCompleted() {
	if len(t.Checklist) == 0 {
		t.IsCompleted = false
		return
	}
	for _, item := range t.Checklist {
		if !item.Checked {
			t.IsCompleted = false
			return
		}
	}
	t.IsCompleted = true
}

// ToggleItem flips the checklist item with the given id and recomputes
// IsCompleted. Returns false if no item matches.
func (t *Task) ToggleItem(itemID string) bool {
	for i := range t.Checklist {
		if t.Checklist[i].ID == itemID {
			t.Checklist[i].Checked = !t.Checklist[i].Checked
			t.RecomputeCompleted()
			return true
		}
	}
	return false
}

// Clone returns a copy of the task with its own checklist slice.
func (t *Task) Clone() Task {
	out := *t
	out.Checklist = append([]TaskItem(nil), t.Checklist...)
	return out
}

// Clone returns a deep copy of the document. The copy shares no
// backing arrays with the original, so one side can be mutated while
// the other is being read or marshalled.
func (d *MandalartData) Clone() *MandalartData {
	out := &MandalartData{
		MainGoal: d.MainGoal,
		SubGoals: make([]SubGoal, len(d.SubGoals)),
	}
	for i, sg := range d.SubGoals {
		cp := sg
		cp.Tasks = make([]Task, len(sg.Tasks))
		for j := range sg.Tasks {
			cp.Tasks[j] = sg.Tasks[j].Clone()
		}
		out.SubGoals[i] = cp
	}
	return out
}

// TaskAt returns the task at (subGoal, task) grid coordinates.
func (d *MandalartData) TaskAt(subGoal, task int) *Task {
	if subGoal < 0 || subGoal >= len(d.SubGoals) {
		return nil
	}
	sg := &d.SubGoals[subGoal]
	if task < 0 || task >= len(sg.Tasks) {
		return nil
	}
	return &sg.Tasks[task]
}
