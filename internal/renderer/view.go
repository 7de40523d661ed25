package renderer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vicore/internal/app"
)

var (
	styleText      = tcell.StyleDefault
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleStatus    = tcell.StyleDefault.Bold(true)
	styleTilde     = tcell.StyleDefault.Foreground(tcell.ColorBlue)
)

// View scrolls a frame so the cursor stays on screen. Every rune takes
// one cell.
type View struct {
	top, left int
}

// Draw renders f onto screen. The last row is the status line.
func (v *View) Draw(screen tcell.Screen, f app.Frame) {
	width, height := screen.Size()
	screen.Clear()
	if width <= 0 || height <= 0 {
		return
	}
	rows := height - 1
	v.scroll(f.Cursor, rows, width)

	for y := 0; y < rows; y++ {
		row := v.top + y
		if row >= len(f.Lines) {
			if f.Lines != nil {
				screen.SetContent(0, y, '~', nil, styleTilde)
			}
			continue
		}
		line := []rune(f.Lines[row])
		for x := 0; x < width; x++ {
			col := v.left + x
			if col >= len(line) {
				if f.Contains(row, col) {
					screen.SetContent(x, y, ' ', nil, styleSelection)
				}
				break
			}
			style := styleText
			if f.Contains(row, col) {
				style = styleSelection
			}
			r := line[col]
			if r == '\t' {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}

	v.drawStatus(screen, f, width, height-1)

	switch {
	case f.Prompting:
		screen.ShowCursor(min(len([]rune(f.Prompt)), width-1), height-1)
	case f.Lines != nil && rows > 0:
		screen.ShowCursor(f.Cursor.Col-v.left, f.Cursor.Row-v.top)
	default:
		screen.HideCursor()
	}
}

func (v *View) scroll(cursor app.Position, rows, width int) {
	if rows <= 0 {
		return
	}
	if cursor.Row < v.top {
		v.top = cursor.Row
	}
	if cursor.Row >= v.top+rows {
		v.top = cursor.Row - rows + 1
	}
	if cursor.Col < v.left {
		v.left = cursor.Col
	}
	if cursor.Col >= v.left+width {
		v.left = cursor.Col - width + 1
	}
}

func (v *View) drawStatus(screen tcell.Screen, f app.Frame, width, y int) {
	left := f.Status
	if f.Prompting {
		left = f.Prompt
	}
	x := drawString(screen, 0, y, width, left, styleStatus)

	if f.Name == "" {
		return
	}
	right := f.Name
	if f.Modified {
		right += " [+]"
	}
	right = fmt.Sprintf("%s  %d,%d", right, f.Cursor.Row+1, f.Cursor.Col+1)
	start := width - len([]rune(right))
	if start <= x {
		return
	}
	drawString(screen, start, y, width, right, styleText)
}

// drawString writes s from x and returns the column after it.
func drawString(screen tcell.Screen, x, y, width int, s string, style tcell.Style) int {
	for _, r := range s {
		if x >= width {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}
