package manager

import (
	"rival-snake/game/entity"
	"rival-snake/game/types"
)

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// isWallCollision checks if a position lies outside the grid
func (cm *CollisionManager) isWallCollision(pos types.Point) bool {
	return !cm.grid.InBounds(pos)
}

// HitsWall reports whether the snake's head has left the grid.
func (cm *CollisionManager) HitsWall(snake *entity.Snake) bool {
	return cm.isWallCollision(snake.GetHead())
}

// HitsSelf reports whether the head overlaps any other segment of the same snake.
func (cm *CollisionManager) HitsSelf(snake *entity.Snake) bool {
	return types.Contains(snake.Body[1:], snake.GetHead())
}

// HitsSnake reports contact between two snakes: either head touching any
// segment of the other. Several overlapping segments still count once.
func (cm *CollisionManager) HitsSnake(a, b *entity.Snake) bool {
	return types.Contains(b.Body, a.GetHead()) || types.Contains(a.Body, b.GetHead())
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Point, food entity.Food) bool {
	return pos == food.Pos
}
