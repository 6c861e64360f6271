package ui

import (
	"fmt"
	"os"

	"rival-snake/config"
	"rival-snake/game"
	"rival-snake/game/entity"
	"rival-snake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 5
	titleFontSize = 40
	hudFontSize   = 40
	textFontSize  = 20
)

type palette struct {
	background rl.Color
	border     rl.Color
	text       rl.Color
	food       rl.Color
	special    rl.Color
}

func toColor(hex string) rl.Color {
	c := config.MustParseHex(hex)
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func snakeColor(c entity.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: 255}
}

func newPalette(p config.Palette) palette {
	return palette{
		background: toColor(p.Background),
		border:     toColor(p.Border),
		text:       toColor(p.Text),
		food:       toColor(p.Food),
		special:    toColor(p.Special),
	}
}

// layout holds the pixel geometry of the board.
type layout struct {
	cellSize  int32
	offset    int32
	cellCount int32
}

func newLayout(cfg config.Config) layout {
	return layout{
		cellSize:  int32(cfg.Grid.CellSize),
		offset:    int32(cfg.Grid.Offset),
		cellCount: int32(cfg.Grid.CellCount),
	}
}

// boardSize is the side of the playing area in pixels.
func (l layout) boardSize() int32 {
	return l.cellSize * l.cellCount
}

// windowSize leaves an offset margin on every side of the board.
func (l layout) windowSize() (int32, int32) {
	side := 2*l.offset + l.boardSize()
	return side, side
}

func (l layout) cellRect(p types.Point) rl.Rectangle {
	return rl.Rectangle{
		X:      float32(l.offset + int32(p.X)*l.cellSize),
		Y:      float32(l.offset + int32(p.Y)*l.cellSize),
		Width:  float32(l.cellSize),
		Height: float32(l.cellSize),
	}
}

type Renderer struct {
	layout
	colors      palette
	title       string
	foodTexture rl.Texture2D
	hasTexture  bool
}

// NewRenderer must be called after the window is open since it uploads the
// food texture to the GPU.
func NewRenderer(cfg config.Config) *Renderer {
	r := &Renderer{
		layout: newLayout(cfg),
		colors: newPalette(cfg.Palette),
		title:  cfg.Display.Title,
	}
	if path := cfg.Assets.FoodTexture; path != "" {
		if _, err := os.Stat(path); err == nil {
			img := rl.LoadImage(path)
			rl.ImageResize(img, r.cellSize, r.cellSize)
			r.foodTexture = rl.LoadTextureFromImage(img)
			rl.UnloadImage(img)
			r.hasTexture = true
		}
	}
	return r
}

func (r *Renderer) Unload() {
	if r.hasTexture {
		rl.UnloadTexture(r.foodTexture)
		r.hasTexture = false
	}
}

func (r *Renderer) drawSnake(body []types.Point, color rl.Color) {
	for _, p := range body {
		rl.DrawRectangleRounded(r.cellRect(p), 0.5, 6, color)
	}
}

func (r *Renderer) drawFood(p types.Point) {
	if r.hasTexture {
		rect := r.cellRect(p)
		rl.DrawTexture(r.foodTexture, int32(rect.X), int32(rect.Y), rl.White)
		return
	}
	rl.DrawRectangleRec(r.cellRect(p), r.colors.food)
}

func (r *Renderer) drawSpecial(p types.Point) {
	rect := r.cellRect(p)
	half := rect.Width / 2
	rl.DrawCircle(int32(rect.X+half), int32(rect.Y+half), half, r.colors.special)
}

func (r *Renderer) drawHUD(g *game.Game) {
	board := r.boardSize()
	rl.DrawText(r.title, r.offset-borderPadding, titleFontSize, titleFontSize, r.colors.text)
	rl.DrawText(fmt.Sprintf("%d", g.Score), r.offset-borderPadding, r.offset+board+10, hudFontSize, r.colors.text)
	rl.DrawText(fmt.Sprintf("Lives: %d", g.Lives), r.offset-borderPadding, r.offset+board+50, hudFontSize, r.colors.text)

	best := fmt.Sprintf("Best: %d", g.Stats.GetHighScore())
	width := rl.MeasureText(best, textFontSize)
	rl.DrawText(best, r.offset+board-width, r.offset+board+10, textFontSize, r.colors.text)
}

func (r *Renderer) drawOverlay(g *game.Game) {
	switch g.Status() {
	case game.Paused:
		rl.DrawText("Game Paused. Press P to Resume", 100, 200, textFontSize, r.colors.text)
	case game.GameOver:
		rl.DrawText("Game Over! Press R to Restart or Any Other Key to Quit", 100, 200, textFontSize, rl.DarkGreen)
	}
}

// Draw renders one frame. It runs every frame, whether or not the game ticked.
func (r *Renderer) Draw(g *game.Game) {
	rl.BeginDrawing()
	rl.ClearBackground(r.colors.background)

	board := float32(r.boardSize())
	rl.DrawRectangleLinesEx(rl.Rectangle{
		X:      float32(r.offset - borderPadding),
		Y:      float32(r.offset - borderPadding),
		Width:  board + 2*borderPadding,
		Height: board + 2*borderPadding,
	}, borderPadding, r.colors.border)

	r.drawFood(g.Food().Pos)
	if special, ok := g.Special(); ok {
		r.drawSpecial(special.Pos)
	}
	rival := snakeColor(g.Rival.Color)
	if !g.RivalActive() {
		rival = rl.Fade(rival, 0.3)
	}
	r.drawSnake(g.Rival.Body, rival)
	r.drawSnake(g.Snake.Body, snakeColor(g.Snake.Color))

	r.drawHUD(g)
	r.drawOverlay(g)
	rl.EndDrawing()
}
