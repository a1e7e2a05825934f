package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeItemTask(checked ...bool) Task {
	t := Task{Title: "t", Checklist: []TaskItem{
		{ID: "i1", Text: "one"},
		{ID: "i2", Text: "two"},
		{ID: "i3", Text: "three"},
	}}
	for i, c := range checked {
		t.Checklist[i].Checked = c
	}
	t.RecomputeCompleted()
	return t
}

func TestRecomputeCompleted(t *testing.T) {
	task := threeItemTask(true, true, true)
	assert.True(t, task.IsCompleted)

	task = threeItemTask(true, false, true)
	assert.False(t, task.IsCompleted)

	empty := Task{Title: "t"}
	empty.RecomputeCompleted()
	assert.False(t, empty.IsCompleted)
}

func TestToggleItem(t *testing.T) {
	t.Run("last unchecked item completes the task", func(t *testing.T) {
		task := threeItemTask(true, true, false)
		require.False(t, task.IsCompleted)

		require.True(t, task.ToggleItem("i3"))
		assert.True(t, task.Checklist[2].Checked)
		assert.True(t, task.IsCompleted)
	})

	t.Run("unchecking one item uncompletes the task", func(t *testing.T) {
		task := threeItemTask(true, true, true)
		require.True(t, task.IsCompleted)

		require.True(t, task.ToggleItem("i2"))
		assert.False(t, task.IsCompleted)
	})

	t.Run("unknown item id", func(t *testing.T) {
		task := threeItemTask()
		assert.False(t, task.ToggleItem("nope"))
	})
}

func TestClone(t *testing.T) {
	orig := &MandalartData{MainGoal: "g", SubGoals: []SubGoal{
		{Title: "sg", Tasks: []Task{threeItemTask(true, true, false)}},
	}}

	clone := orig.Clone()
	assert.Equal(t, orig, clone)

	// Deep copy: toggling in one must not show up in the other.
	require.True(t, clone.SubGoals[0].Tasks[0].ToggleItem("i3"))
	assert.False(t, orig.SubGoals[0].Tasks[0].Checklist[2].Checked)
	assert.False(t, orig.SubGoals[0].Tasks[0].IsCompleted)

	require.True(t, orig.SubGoals[0].Tasks[0].ToggleItem("i1"))
	assert.True(t, clone.SubGoals[0].Tasks[0].Checklist[0].Checked)
}

func TestTaskClone(t *testing.T) {
	orig := threeItemTask(true, false, false)
	clone := orig.Clone()

	require.True(t, clone.ToggleItem("i2"))
	assert.False(t, orig.Checklist[1].Checked)
}

func TestTaskAt(t *testing.T) {
	data := MandalartData{MainGoal: "g"}
	for i := 0; i < GridSize; i++ {
		sg := SubGoal{Title: "sg"}
		for j := 0; j < GridSize; j++ {
			sg.Tasks = append(sg.Tasks, Task{Title: "t"})
		}
		data.SubGoals = append(data.SubGoals, sg)
	}

	assert.NotNil(t, data.TaskAt(0, 0))
	assert.NotNil(t, data.TaskAt(7, 7))
	assert.Nil(t, data.TaskAt(-1, 0))
	assert.Nil(t, data.TaskAt(8, 0))
	assert.Nil(t, data.TaskAt(0, 8))

	// The pointer addresses the underlying task, so toggles stick.
	data.SubGoals[2].Tasks[3].Checklist = []TaskItem{{ID: "x", Text: "step"}}
	task := data.TaskAt(2, 3)
	require.True(t, task.ToggleItem("x"))
	assert.True(t, data.SubGoals[2].Tasks[3].Checklist[0].Checked)
}
