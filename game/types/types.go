package types

import "github.com/pkg/errors"

// Point is a single grid cell. Coordinates are integers, never pixels.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// NewGrid returns a square grid of cellCount x cellCount cells.
func NewGrid(cellCount int) Grid {
	return Grid{Width: cellCount, Height: cellCount}
}

// InBounds reports whether p lies on the playable grid.
func (g Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Clamp pulls each coordinate of p into [margin, size-1-margin].
func (g Grid) Clamp(p Point, margin int) Point {
	return Point{
		X: clamp(p.X, margin, g.Width-1-margin),
		Y: clamp(p.Y, margin, g.Height-1-margin),
	}
}

// Size is the number of cells on the grid.
func (g Grid) Size() int {
	return g.Width * g.Height
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Contains reports whether target is one of cells.
func Contains(cells []Point, target Point) bool {
	for _, c := range cells {
		if c == target {
			return true
		}
	}
	return false
}

// Dice is the source of randomness for spawns and the rival snake.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type Dice interface {
	Intn(n int) int
}

// ErrGridExhausted is returned when no free cell is left to spawn on.
var ErrGridExhausted = errors.New("grid exhausted: no free cell")

// Game constants
const (
	DefaultCellCount = 40
	StartingLives    = 5

	SpeedUpScoreStep = 5  // Score gained between two frame-rate increases
	RivalScore       = 5  // Score from which the rival snake moves
	SpecialMinScore  = 10 // Special food needs at least this score
	SpecialMaxLives  = 4  // ...and strictly fewer lives than this
	SpecialChance    = 3  // Out of SpecialRolls outcomes
	SpecialRolls     = 11
	SpecialLifeBonus = 2
)
