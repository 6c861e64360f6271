package manager

import (
	"rival-snake/game/entity"
	"rival-snake/game/types"

	"github.com/pkg/errors"
)

type FoodManager struct {
	grid        types.Grid
	dice        types.Dice
	maxAttempts int

	regular    entity.Food
	special    entity.Food
	hasSpecial bool
}

// NewFoodManager places the regular food on a cell not covered by occupied.
func NewFoodManager(grid types.Grid, dice types.Dice, occupied []types.Point) (*FoodManager, error) {
	fm := &FoodManager{
		grid:        grid,
		dice:        dice,
		maxAttempts: 4 * grid.Size(),
	}
	if err := fm.Respawn(occupied); err != nil {
		return nil, err
	}
	return fm, nil
}

// RandomFreeCell draws uniformly from the grid until it finds a cell not in
// occupied. After maxAttempts misses it falls back to picking among the
// remaining free cells, and fails only when there are none.
func (fm *FoodManager) RandomFreeCell(occupied []types.Point) (types.Point, error) {
	for i := 0; i < fm.maxAttempts; i++ {
		p := types.Point{
			X: fm.dice.Intn(fm.grid.Width),
			Y: fm.dice.Intn(fm.grid.Height),
		}
		if !types.Contains(occupied, p) {
			return p, nil
		}
	}

	taken := make(map[types.Point]bool, len(occupied))
	for _, p := range occupied {
		taken[p] = true
	}
	free := make([]types.Point, 0, fm.grid.Size()-len(taken))
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Point{X: x, Y: y}
			if !taken[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return types.Point{}, errors.Wrapf(types.ErrGridExhausted, "%d cells occupied", len(taken))
	}
	return free[fm.dice.Intn(len(free))], nil
}

// Respawn moves the regular food to a new free cell.
func (fm *FoodManager) Respawn(occupied []types.Point) error {
	p, err := fm.RandomFreeCell(occupied)
	if err != nil {
		return errors.Wrap(err, "respawn regular food")
	}
	fm.regular = entity.Food{Pos: p, Kind: entity.Regular}
	return nil
}

func (fm *FoodManager) Regular() entity.Food {
	return fm.regular
}

// SetRegular places the regular food directly.
func (fm *FoodManager) SetRegular(p types.Point) {
	fm.regular = entity.Food{Pos: p, Kind: entity.Regular}
}

// Special returns the special food and whether one is on the grid.
func (fm *FoodManager) Special() (entity.Food, bool) {
	return fm.special, fm.hasSpecial
}

// SetSpecial places a special food directly, replacing any active one.
func (fm *FoodManager) SetSpecial(p types.Point) {
	fm.special = entity.Food{Pos: p, Kind: entity.Special}
	fm.hasSpecial = true
}

func (fm *FoodManager) ClearSpecial() {
	fm.special = entity.Food{}
	fm.hasSpecial = false
}

// SpecialEligible reports whether the game is in a state where special food may exist.
func SpecialEligible(score, lives int) bool {
	return score >= types.SpecialMinScore && lives < types.SpecialMaxLives
}

// ShouldSpawnSpecial applies the eligibility gate, then rolls the 3-in-11 chance.
func (fm *FoodManager) ShouldSpawnSpecial(score, lives int) bool {
	if !SpecialEligible(score, lives) {
		return false
	}
	return fm.dice.Intn(types.SpecialRolls) < types.SpecialChance
}

// TrySpawnSpecial spawns special food if none is active and the roll succeeds.
func (fm *FoodManager) TrySpawnSpecial(score, lives int, occupied []types.Point) (bool, error) {
	if fm.hasSpecial || !fm.ShouldSpawnSpecial(score, lives) {
		return false, nil
	}
	cells := make([]types.Point, 0, len(occupied)+1)
	cells = append(append(cells, occupied...), fm.regular.Pos)
	p, err := fm.RandomFreeCell(cells)
	if err != nil {
		return false, errors.Wrap(err, "spawn special food")
	}
	fm.SetSpecial(p)
	return true, nil
}

// Reset clears the special food and respawns the regular one.
func (fm *FoodManager) Reset(occupied []types.Point) error {
	fm.ClearSpecial()
	return fm.Respawn(occupied)
}
