package entity

import "rival-snake/game/types"

type FoodKind int

const (
	Regular FoodKind = iota
	Special
)

func (k FoodKind) String() string {
	if k == Special {
		return "special"
	}
	return "regular"
}

// Food is an item on the grid. Regular food is worth a point, special food
// is worth extra lives.
type Food struct {
	Pos  types.Point
	Kind FoodKind
}

// ScoreReward is the score granted when the food is eaten.
func (f Food) ScoreReward() int {
	if f.Kind == Regular {
		return 1
	}
	return 0
}

// LifeReward is the number of lives granted when the food is eaten.
func (f Food) LifeReward() int {
	if f.Kind == Special {
		return types.SpecialLifeBonus
	}
	return 0
}
