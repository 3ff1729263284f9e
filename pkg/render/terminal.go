// pkg/render/terminal.go
package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/opd-ai/go-starstrike/pkg/engine"
	"github.com/opd-ai/go-starstrike/pkg/physics"
)

// Glyphs used by the terminal view
const (
	GlyphPlayer      = '@'
	GlyphChaser      = 'c'
	GlyphShooter     = 's'
	GlyphBoss        = 'B'
	GlyphPlayerShot  = '.'
	GlyphEnemyShot   = '*'
	GlyphEmpty       = ' '
	GlyphUnknownKind = '?'
)

// TerminalRenderer draws a top-down ASCII view of a snapshot. World X maps
// to columns and world Z to rows, so the player's default heading points up.
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vec3
	clear     bool
}

// NewTerminalRenderer creates a new terminal renderer with the specified
// dimensions; scale is world units per character cell.
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
}

// SetClearScreen makes Present emit an ANSI clear sequence before each frame
func (r *TerminalRenderer) SetClearScreen(clear bool) {
	r.clear = clear
}

// SetCenter sets the center position of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vec3) {
	r.centerPos = pos
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vec3) (int, int, bool) {
	screenX := int((pos.X()-r.centerPos.X())/r.scale + float64(r.width)/2)
	screenY := int((pos.Z()-r.centerPos.Z())/r.scale + float64(r.height)/2)
	ok := screenX >= 0 && screenX < r.width && screenY >= 0 && screenY < r.height
	return screenX, screenY, ok
}

// Clear blanks the frame buffer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = GlyphEmpty
		}
	}
}

func (r *TerminalRenderer) plot(pos physics.Vec3, glyph rune) {
	if x, y, ok := r.worldToScreen(pos); ok {
		r.buffer[y][x] = glyph
	}
}

// Draw fills the frame buffer from a snapshot. Later layers overwrite
// earlier ones: bullets, then enemies, then the boss, then the player.
func (r *TerminalRenderer) Draw(snap *engine.Snapshot) {
	r.Clear()
	if snap.Player != nil {
		r.SetCenter(snap.Player.Position)
	}

	for _, b := range snap.Bullets {
		glyph := GlyphEnemyShot
		if b.Owner == "player" {
			glyph = GlyphPlayerShot
		}
		r.plot(b.Position, glyph)
	}
	for _, e := range snap.Enemies {
		r.plot(e.Position, enemyGlyph(e.Kind))
	}
	if snap.Boss != nil {
		r.plot(snap.Boss.Position, GlyphBoss)
	}
	if snap.Player != nil {
		r.plot(snap.Player.Position, GlyphPlayer)
	}
}

func enemyGlyph(kind string) rune {
	switch kind {
	case "chaser":
		return GlyphChaser
	case "shooter":
		return GlyphShooter
	default:
		return GlyphUnknownKind
	}
}

// Present writes the frame buffer with a border and a status line to w
func (r *TerminalRenderer) Present(w io.Writer, snap *engine.Snapshot) error {
	out := bufio.NewWriter(w)
	if r.clear {
		out.WriteString("\033[H\033[2J")
	}

	border := "+" + strings.Repeat("-", r.width) + "+\n"
	out.WriteString(border)
	for y := range r.buffer {
		out.WriteByte('|')
		out.WriteString(string(r.buffer[y]))
		out.WriteString("|\n")
	}
	out.WriteString(border)
	out.WriteString(statusLine(snap))
	out.WriteByte('\n')

	return out.Flush()
}

func statusLine(snap *engine.Snapshot) string {
	line := fmt.Sprintf("t=%.1fs galaxy=%d score=%d kills=%d explored=%.0f%% enemies=%d",
		snap.Time, snap.Galaxy, snap.Score, snap.Kills, snap.Exploration, len(snap.Enemies))
	if snap.Player != nil {
		line += fmt.Sprintf(" hp=%d/%d lives=%d", snap.Player.Health, snap.Player.MaxHealth, snap.Player.Lives)
	}
	if snap.Boss != nil {
		line += fmt.Sprintf(" boss=%s phase=%d hp=%.0f%%", snap.Boss.State, snap.Boss.Phase, snap.Boss.HealthRatio*100)
	}
	return line
}
