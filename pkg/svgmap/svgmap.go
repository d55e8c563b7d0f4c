// Package svgmap renders one screen of a running episode as an SVG
// tile grid. Grounded on the teacher's pkg/export/svg.go: the same
// ajstarks/svgo canvas-construction idiom (svg.New, Start/Rect/Text/
// End, buffer-then-os.WriteFile save), rewritten to draw a simulation's
// tile screen instead of a room graph.
package svgmap

import (
	"bytes"
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/rogue-core/roguecore/pkg/observe"
)

// Options configures the tile-grid SVG export.
type Options struct {
	CellSize  int    // Pixel size of one map cell (default: 16)
	Margin    int    // Canvas margin in pixels (default: 24)
	ShowGrid  bool   // Draw faint gridlines between cells
	ShowStats bool   // Draw a status line above the map
	Title     string // Optional title
}

// DefaultOptions returns sensible default tile-grid export options.
func DefaultOptions() Options {
	return Options{
		CellSize:  16,
		Margin:    24,
		ShowGrid:  false,
		ShowStats: true,
		Title:     "Dungeon",
	}
}

// ExportSVG renders state's current map as an SVG byte slice.
func ExportSVG(state *observe.PlayerState, opts Options) ([]byte, error) {
	if state == nil {
		return nil, fmt.Errorf("state cannot be nil")
	}
	if opts.CellSize <= 0 {
		opts.CellSize = 16
	}
	if opts.Margin <= 0 {
		opts.Margin = 24
	}

	rows := state.Map
	height := len(rows)
	width := 0
	if height > 0 {
		width = len(rows[0])
	}

	headerHeight := 0
	if opts.Title != "" || opts.ShowStats {
		headerHeight = 40
	}

	canvasWidth := 2*opts.Margin + width*opts.CellSize
	canvasHeight := 2*opts.Margin + height*opts.CellSize + headerHeight

	buf := new(bytes.Buffer)
	canvas := svg.New(buf)
	canvas.Start(canvasWidth, canvasHeight)
	canvas.Rect(0, 0, canvasWidth, canvasHeight, "fill:#1a1a2e")

	if headerHeight > 0 {
		drawHeader(canvas, state, opts, canvasWidth)
	}

	top := opts.Margin + headerHeight
	for y, row := range rows {
		for x, glyph := range row {
			drawCell(canvas, opts.Margin+x*opts.CellSize, top+y*opts.CellSize, opts.CellSize, glyph)
		}
	}

	if opts.ShowGrid {
		drawGrid(canvas, opts.Margin, top, opts.CellSize, width, height)
	}

	canvas.End()
	return buf.Bytes(), nil
}

// SaveSVGToFile renders and writes state's map to path.
func SaveSVGToFile(state *observe.PlayerState, path string, opts Options) error {
	data, err := ExportSVG(state, opts)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// drawCell fills one map cell's square by glyph category, and draws the
// glyph itself as centered text for anything that isn't empty space,
// floor ('.') or passage ('#').
func drawCell(canvas *svg.SVG, x, y, size int, glyph byte) {
	fill := cellColor(glyph)
	canvas.Rect(x, y, size, size, fmt.Sprintf("fill:%s", fill))

	switch glyph {
	case ' ', '.', '#':
		return
	}
	canvas.Text(x+size/2, y+size*3/4, string(glyph),
		fmt.Sprintf("text-anchor:middle;font-size:%dpx;fill:#f7fafc", size*3/4))
}

// cellColor maps a glyph to a background color by coarse category:
// unseen, floor, passage, door/stair, item, the player, or an enemy
// tile. Wall glyphs ('-', '|') and any other glyph get the floor color.
func cellColor(glyph byte) string {
	switch glyph {
	case ' ':
		return "#0f0f1a"
	case '.':
		return "#2d2d44"
	case '#':
		return "#3a3a52"
	case '+', '>', '<', '%':
		return "#4a5568"
	case '@':
		return "#f6e05e"
	case '!', '?', ']', ')', '/', '*', ':', '=', ',':
		return "#48bb78"
	default:
		if glyph >= 'A' && glyph <= 'Z' {
			return "#f56565"
		}
		return "#2d2d44"
	}
}

func drawGrid(canvas *svg.SVG, left, top, size, width, height int) {
	style := "stroke:#0f0f1a;stroke-width:1;opacity:0.3"
	for x := 0; x <= width; x++ {
		canvas.Line(left+x*size, top, left+x*size, top+height*size, style)
	}
	for y := 0; y <= height; y++ {
		canvas.Line(left, top+y*size, left+width*size, top+y*size, style)
	}
}

func drawHeader(canvas *svg.SVG, state *observe.PlayerState, opts Options, canvasWidth int) {
	if opts.Title != "" {
		canvas.Text(canvasWidth/2, 20, opts.Title, "text-anchor:middle;font-size:18px;fill:#f7fafc")
	}
	if opts.ShowStats {
		s := state.Status
		stats := fmt.Sprintf("Level %d  HP %d/%d  Gold %d",
			s.DungeonLevel, s.HP.Current, s.HP.Max, s.Gold)
		canvas.Text(canvasWidth/2, 36, stats, "text-anchor:middle;font-size:12px;fill:#cbd5e0")
	}
}
