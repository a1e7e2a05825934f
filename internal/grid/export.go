package grid

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"mandalart/internal/model"
)

// ExportError reports a failed rasterization. It never affects
// application state; callers surface it as a dismissible warning.
type ExportError struct {
	Err error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed: %v", e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

const (
	cellSize = 110
	cellGap  = 2
	zoneGap  = 10
	margin   = 16
)

var (
	bgColor        = color.RGBA{245, 245, 250, 255}
	cellColor      = color.RGBA{255, 255, 255, 255}
	mainColor      = color.RGBA{67, 56, 202, 255}
	subGoalColor   = color.RGBA{224, 231, 255, 255}
	textDark       = color.RGBA{30, 30, 40, 255}
	textLight      = color.RGBA{255, 255, 255, 255}
	placeholderCol = color.RGBA{160, 160, 170, 255}
)

// RenderPNG rasterizes the 9x9 grid to a PNG.
func RenderPNG(data *model.MandalartData) ([]byte, error) {
	if data == nil {
		return nil, &ExportError{Err: fmt.Errorf("no document to export")}
	}

	g := Layout(data)
	zoneSize := 3*cellSize + 2*cellGap
	total := 2*margin + 3*zoneSize + 2*zoneGap

	img := image.NewRGBA(image.Rect(0, 0, total, total))
	draw.Draw(img, img.Bounds(), image.NewUniform(bgColor), image.Point{}, draw.Src)

	for z := 0; z < 9; z++ {
		zx := margin + (z%3)*(zoneSize+zoneGap)
		zy := margin + (z/3)*(zoneSize+zoneGap)
		for c := 0; c < 9; c++ {
			cx := zx + (c%3)*(cellSize+cellGap)
			cy := zy + (c/3)*(cellSize+cellGap)
			drawCell(img, cx, cy, g.Zones[z].Cells[c])
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &ExportError{Err: err}
	}
	return buf.Bytes(), nil
}

func drawCell(img *image.RGBA, x, y int, cell Cell) {
	fill := cellColor
	text := textDark
	switch cell.Kind {
	case KindMain:
		fill = mainColor
		text = textLight
	case KindSubGoal:
		fill = subGoalColor
	}
	if cell.Text == "" || cell.Text == "..." {
		text = placeholderCol
	}

	rect := image.Rect(x, y, x+cellSize, y+cellSize)
	draw.Draw(img, rect, image.NewUniform(fill), image.Point{}, draw.Src)

	drawText(img, rect, cell.Text, text)
}

// drawText word-wraps the label into the cell, centered, truncating
// what does not fit.
func drawText(img *image.RGBA, rect image.Rectangle, s string, col color.RGBA) {
	if s == "" {
		return
	}

	face := basicfont.Face7x13
	maxChars := (rect.Dx() - 8) / 7
	maxLines := (rect.Dy() - 8) / face.Height
	if maxLines > 5 {
		maxLines = 5
	}

	lines := wrap(s, maxChars, maxLines)
	startY := rect.Min.Y + (rect.Dy()-len(lines)*face.Height)/2 + face.Ascent

	for i, line := range lines {
		width := len(line) * 7
		startX := rect.Min.X + (rect.Dx()-width)/2
		d := font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(col),
			Face: face,
			Dot:  fixed.P(startX, startY+i*face.Height),
		}
		d.DrawString(line)
	}
}

func wrap(s string, maxChars, maxLines int) []string {
	if maxChars < 1 {
		return nil
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		for len(word) > maxChars {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, word[:maxChars])
			word = word[maxChars:]
		}
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= maxChars:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	if len(lines) > maxLines {
		lines = lines[:maxLines]
		last := lines[maxLines-1]
		if len(last)+3 > maxChars {
			last = last[:maxChars-3]
		}
		lines[maxLines-1] = last + "..."
	}
	return lines
}
