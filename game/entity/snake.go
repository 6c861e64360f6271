package entity

import (
	"rival-snake/game/types"
)

type Color struct {
	R, G, B uint8
}

// Snake is an ordered body of cells with the head at index 0.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
	Color     Color

	grow      bool
	startBody []types.Point
	startDir  types.Direction
}

// Canonical starting layouts.
var (
	PlayerStart = []types.Point{{X: 6, Y: 9}, {X: 5, Y: 9}, {X: 4, Y: 9}}
	RivalStart  = []types.Point{{X: 33, Y: 30}, {X: 34, Y: 30}, {X: 35, Y: 30}}
)

func NewSnake(start []types.Point, dir types.Direction, color Color) *Snake {
	s := &Snake{
		startBody: append([]types.Point(nil), start...),
		startDir:  dir,
		Color:     color,
	}
	s.Reset()
	return s
}

// NewPlayer returns the player snake in its starting position, heading right.
func NewPlayer(color Color) *Snake {
	return NewSnake(PlayerStart, types.RIGHT, color)
}

// NewRival returns the rival snake in its starting position, heading left.
func NewRival(color Color) *Snake {
	return NewSnake(RivalStart, types.LEFT, color)
}

// Reset restores the body and heading the snake was created with.
func (s *Snake) Reset() {
	s.Body = append([]types.Point(nil), s.startBody...)
	s.Direction = s.startDir
	s.grow = false
}

// Advance moves the snake one cell using m and returns the new head.
// The tail is kept when a growth is pending, so length goes up by one.
func (s *Snake) Advance(m Mover) types.Point {
	newHead := m.Step(s)
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body[:len(s.Body)-1])
	s.Body[0] = newHead

	if s.grow {
		s.grow = false
	} else {
		s.RemoveTail()
	}
	return newHead
}

// Grow marks the snake to keep its tail on the next Advance.
func (s *Snake) Grow() {
	s.grow = true
}

// Growing reports whether a growth is pending.
func (s *Snake) Growing() bool {
	return s.grow
}

// RemoveTail drops the last segment, never going below one segment.
func (s *Snake) RemoveTail() {
	if len(s.Body) > 1 {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

func (s *Snake) GetHead() types.Point {
	return s.Body[0]
}

// SetHead moves the head segment in place.
func (s *Snake) SetHead(p types.Point) {
	s.Body[0] = p
}

func (s *Snake) GetTail() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// CanTurn reports whether d is a legal new heading (anything but a reversal).
func (s *Snake) CanTurn(d types.Direction) bool {
	return d != types.NONE && d != s.Direction.Opposite()
}

// SetDirection changes the heading unless d would reverse the snake.
func (s *Snake) SetDirection(d types.Direction) bool {
	if !s.CanTurn(d) {
		return false
	}
	s.Direction = d
	return true
}
