// Package grid lays out a mandalart document as the 9x9 master grid:
// nine 3x3 zones, the center zone holding the overview and each outer
// zone detailing one sub-goal.
package grid

import "mandalart/internal/model"

type CellKind string

const (
	KindMain    CellKind = "main"
	KindSubGoal CellKind = "subgoal"
	KindTask    CellKind = "task"
)

// CenterIndex is the middle position of a 3x3 block, for zones within
// the master grid and cells within a zone alike.
const CenterIndex = 4

// blockOrder maps the 8 surrounding positions of a 3x3 block (skipping
// the center) to sequence indices 0..7, reading order.
var blockOrder = [8]int{0, 1, 2, 3, 5, 6, 7, 8}

// Cell is one of the 81 cells. SubGoal and Task are -1 when the cell
// does not address that level.
type Cell struct {
	Text    string   `json:"text"`
	Kind    CellKind `json:"kind"`
	SubGoal int      `json:"subGoal"`
	Task    int      `json:"task"`
}

// Zone is one 3x3 block of the master grid.
type Zone struct {
	Cells [9]Cell `json:"cells"`
}

// Grid is the full 3x3-of-3x3 layout.
type Grid struct {
	Zones [9]Zone `json:"zones"`
}

// Layout arranges a document into the master grid. Zone 4 shows the
// main goal surrounded by the 8 sub-goal titles; every other zone shows
// one sub-goal's title at its center and its 8 task titles around it.
func Layout(data *model.MandalartData) *Grid {
	g := &Grid{}

	center := &g.Zones[CenterIndex]
	center.Cells[CenterIndex] = Cell{Text: data.MainGoal, Kind: KindMain, SubGoal: -1, Task: -1}

	for i, sg := range data.SubGoals {
		if i >= model.GridSize {
			break
		}
		center.Cells[blockOrder[i]] = Cell{Text: sg.Title, Kind: KindSubGoal, SubGoal: i, Task: -1}

		zone := &g.Zones[blockOrder[i]]
		zone.Cells[CenterIndex] = Cell{Text: sg.Title, Kind: KindSubGoal, SubGoal: i, Task: -1}
		for j, task := range sg.Tasks {
			if j >= model.GridSize {
				break
			}
			zone.Cells[blockOrder[j]] = Cell{Text: task.Title, Kind: KindTask, SubGoal: i, Task: j}
		}
	}

	return g
}
