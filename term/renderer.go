package term

import (
	"fmt"

	"rival-snake/config"
	"rival-snake/game"
	"rival-snake/game/entity"
	"rival-snake/game/types"

	"github.com/gdamore/tcell/v2"
)

const (
	// Each grid cell is two columns wide so the board looks square.
	cellWidth = 2
	hudRows   = 1

	snakeGlyph   = '█'
	rivalGlyph   = '▓'
	foodGlyph    = '●'
	specialGlyph = '★'
)

type Theme struct {
	Background tcell.Color
	Border     tcell.Color
	Text       tcell.Color
	Food       tcell.Color
	Special    tcell.Color
}

func rgb(hex string) tcell.Color {
	c := config.MustParseHex(hex)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func snakeColor(c entity.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// ThemeFromPalette converts a validated palette.
func ThemeFromPalette(p config.Palette) Theme {
	return Theme{
		Background: rgb(p.Background),
		Border:     rgb(p.Border),
		Text:       rgb(p.Text),
		Food:       rgb(p.Food),
		Special:    rgb(p.Special),
	}
}

type Renderer struct {
	screen tcell.Screen
	theme  Theme
}

func NewRenderer(s tcell.Screen, theme Theme) *Renderer {
	return &Renderer{screen: s, theme: theme}
}

func (r *Renderer) style(fg tcell.Color) tcell.Style {
	return tcell.StyleDefault.Foreground(fg).Background(r.theme.Background)
}

// cellOrigin returns the screen column and row of grid cell p.
func cellOrigin(p types.Point) (int, int) {
	return 1 + p.X*cellWidth, hudRows + 1 + p.Y
}

func (r *Renderer) drawCell(p types.Point, glyph rune, fill bool, st tcell.Style) {
	x, y := cellOrigin(p)
	r.screen.SetContent(x, y, glyph, nil, st)
	second := ' '
	if fill {
		second = glyph
	}
	r.screen.SetContent(x+1, y, second, nil, st)
}

func (r *Renderer) drawText(x, y int, text string, st tcell.Style) {
	for i, ch := range []rune(text) {
		r.screen.SetContent(x+i, y, ch, nil, st)
	}
}

func (r *Renderer) drawCentered(g *game.Game, row int, text string, st tcell.Style) {
	width := g.Grid.Width*cellWidth + 2
	x := (width - len([]rune(text))) / 2
	if x < 0 {
		x = 0
	}
	r.drawText(x, row, text, st)
}

func (r *Renderer) drawBorder(g *game.Game) {
	st := r.style(r.theme.Border)
	left, top := 0, hudRows
	right := g.Grid.Width*cellWidth + 1
	bottom := hudRows + g.Grid.Height + 1

	for x := left + 1; x < right; x++ {
		r.screen.SetContent(x, top, '─', nil, st)
		r.screen.SetContent(x, bottom, '─', nil, st)
	}
	for y := top + 1; y < bottom; y++ {
		r.screen.SetContent(left, y, '│', nil, st)
		r.screen.SetContent(right, y, '│', nil, st)
	}
	r.screen.SetContent(left, top, '┌', nil, st)
	r.screen.SetContent(right, top, '┐', nil, st)
	r.screen.SetContent(left, bottom, '└', nil, st)
	r.screen.SetContent(right, bottom, '┘', nil, st)
}

// Draw renders one frame of g.
func (r *Renderer) Draw(g *game.Game) {
	r.screen.SetStyle(tcell.StyleDefault.Background(r.theme.Background))
	r.screen.Clear()

	hud := fmt.Sprintf("Score: %d  Lives: %d  Best: %d  Speed: %d", g.Score, g.Lives, g.Stats.GetHighScore(), g.FPS())
	r.drawText(0, 0, hud, r.style(r.theme.Text).Bold(true))
	r.drawBorder(g)

	r.drawCell(g.Food().Pos, foodGlyph, false, r.style(r.theme.Food))
	if special, ok := g.Special(); ok {
		r.drawCell(special.Pos, specialGlyph, false, r.style(r.theme.Special).Bold(true))
	}
	for _, p := range g.Rival.Body {
		r.drawCell(p, rivalGlyph, true, r.style(snakeColor(g.Rival.Color)))
	}
	for _, p := range g.Snake.Body {
		r.drawCell(p, snakeGlyph, true, r.style(snakeColor(g.Snake.Color)))
	}

	mid := hudRows + 1 + g.Grid.Height/2
	switch g.Status() {
	case game.Paused:
		r.drawCentered(g, mid, " PAUSED ", r.style(r.theme.Text).Reverse(true))
	case game.GameOver:
		r.drawCentered(g, mid, " GAME OVER ", r.style(r.theme.Food).Reverse(true).Bold(true))
		r.drawCentered(g, mid+1, " r: play again, any other key: quit ", r.style(r.theme.Text))
	}

	r.screen.Show()
}
