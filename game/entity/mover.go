package entity

import "rival-snake/game/types"

// Mover computes where a snake's head goes next.
type Mover interface {
	Step(s *Snake) types.Point
}

// Steered follows the snake's current heading. The result may leave the grid.
type Steered struct{}

func (Steered) Step(s *Snake) types.Point {
	return s.GetHead().Add(s.Direction.ToPoint())
}

// Wanderer picks a random heading every step and stays inside the grid.
type Wanderer struct {
	Grid types.Grid
	Dice types.Dice
}

// Step draws one of the four headings. A draw that would reverse the snake
// is dropped and the previous heading kept for this step.
func (w Wanderer) Step(s *Snake) types.Point {
	d := types.Directions[w.Dice.Intn(len(types.Directions))]
	s.SetDirection(d)

	next := s.GetHead().Add(s.Direction.ToPoint())
	return w.Grid.Clamp(next, 0)
}
