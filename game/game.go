package game

import (
	"time"

	"rival-snake/game/entity"
	"rival-snake/game/manager"
	"rival-snake/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

type Status int

const (
	Running Status = iota
	Paused
	GameOver
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "game over"
	}
}

// Options configures a Game. Zero fields fall back to DefaultOptions.
type Options struct {
	CellCount    int
	Lives        int
	TickInterval time.Duration
	BaseFPS      int
	FPSStep      int
	ScoreStep    int
	Seed         uint64
	PlayerColor  entity.Color
	RivalColor   entity.Color

	// Dice overrides the seeded random source.
	Dice types.Dice
}

func DefaultOptions() Options {
	return Options{
		CellCount:    types.DefaultCellCount,
		Lives:        types.StartingLives,
		TickInterval: 200 * time.Millisecond,
		BaseFPS:      30,
		FPSStep:      5,
		ScoreStep:    types.SpeedUpScoreStep,
		Seed:         uint64(time.Now().UnixNano()),
		PlayerColor:  entity.Color{R: 0, G: 0, B: 0},
		RivalColor:   entity.Color{R: 190, G: 33, B: 55},
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CellCount <= 0 {
		o.CellCount = d.CellCount
	}
	if o.Lives <= 0 {
		o.Lives = d.Lives
	}
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	if o.BaseFPS <= 0 {
		o.BaseFPS = d.BaseFPS
	}
	if o.FPSStep < 0 {
		o.FPSStep = d.FPSStep
	}
	if o.ScoreStep <= 0 {
		o.ScoreStep = d.ScoreStep
	}
	if o.Dice == nil {
		seed := o.Seed
		if seed == 0 {
			seed = d.Seed
		}
		o.Dice = rand.New(rand.NewSource(seed))
	}
	return o
}

type Game struct {
	UUID   string
	Grid   types.Grid
	Snake  *entity.Snake
	Rival  *entity.Snake
	Score  int
	Lives  int
	Ticks  int
	Events *EventBus
	Stats  *manager.StateManager

	opts       Options
	status     Status
	allowMove  bool
	penalised  bool
	clock      *Clock
	foodMgr    *manager.FoodManager
	collisions *manager.CollisionManager
	speed      *manager.SpeedManager
	steer      entity.Steered
	wander     entity.Wanderer
}

func NewGame(opts Options) (*Game, error) {
	opts = opts.withDefaults()
	grid := types.NewGrid(opts.CellCount)
	if grid.Size() < len(entity.PlayerStart)+len(entity.RivalStart)+2 ||
		!grid.InBounds(entity.RivalStart[len(entity.RivalStart)-1]) {
		return nil, errors.Errorf("grid of %d cells is too small for both snakes", opts.CellCount)
	}

	g := &Game{
		Grid:       grid,
		Snake:      entity.NewPlayer(opts.PlayerColor),
		Rival:      entity.NewRival(opts.RivalColor),
		Events:     NewEventBus(),
		Stats:      manager.NewStateManager(),
		opts:       opts,
		clock:      NewClock(opts.TickInterval),
		collisions: manager.NewCollisionManager(grid),
		speed:      manager.NewSpeedManager(opts.BaseFPS, opts.FPSStep, opts.ScoreStep),
		wander:     entity.Wanderer{Grid: grid, Dice: opts.Dice},
	}

	foodMgr, err := manager.NewFoodManager(grid, opts.Dice, g.occupied())
	if err != nil {
		return nil, errors.Wrap(err, "place initial food")
	}
	g.foodMgr = foodMgr
	g.reset()
	return g, nil
}

func (g *Game) reset() {
	g.UUID = g.Stats.StartSession()
	g.Score = 0
	g.Lives = g.opts.Lives
	g.Ticks = 0
	g.status = Running
	g.allowMove = true
	g.speed.Reset()
	g.clock.Reset()
}

// Restart rebuilds every entity and counter for a new game.
func (g *Game) Restart() error {
	g.Snake.Reset()
	g.Rival.Reset()
	if err := g.foodMgr.Reset(g.occupied()); err != nil {
		return errors.Wrap(err, "restart")
	}
	g.reset()
	g.Events.Emit(Event{Type: EventRestart, Lives: g.Lives})
	return nil
}

// occupied lists every snake cell.
func (g *Game) occupied() []types.Point {
	cells := make([]types.Point, 0, len(g.Snake.Body)+len(g.Rival.Body))
	cells = append(cells, g.Snake.Body...)
	return append(cells, g.Rival.Body...)
}

// Tick advances the game by one step. It does nothing unless the game is
// running. The stages run in a fixed order since each one reads what the
// previous one changed.
func (g *Game) Tick() error {
	if g.status != Running {
		return nil
	}
	g.Ticks++
	g.allowMove = true
	g.penalised = false

	g.Snake.Advance(g.steer)

	if err := g.checkFood(); err != nil {
		return g.abort(err)
	}
	if err := g.checkSpecialSpawn(); err != nil {
		return g.abort(err)
	}
	g.checkSpecialFood()

	if g.checkWalls(); g.status == GameOver {
		return nil
	}
	if g.checkTail(); g.status == GameOver {
		return nil
	}
	if g.Score >= types.RivalScore {
		g.Rival.Advance(g.wander)
		if g.checkRival(); g.status == GameOver {
			return nil
		}
	}

	if fps, changed := g.speed.Update(g.Score); changed {
		g.Events.Emit(Event{Type: EventSpeedUp, Score: g.Score, FPS: fps})
	}
	return nil
}

func (g *Game) checkFood() error {
	head := g.Snake.GetHead()
	if !g.collisions.IsFoodCollision(head, g.foodMgr.Regular()) {
		return nil
	}
	g.Score += g.foodMgr.Regular().ScoreReward()
	g.Snake.Grow()

	cells := g.occupied()
	if special, ok := g.foodMgr.Special(); ok {
		cells = append(cells, special.Pos)
	}
	if err := g.foodMgr.Respawn(cells); err != nil {
		return err
	}
	g.Events.Emit(Event{Type: EventEat, Pos: head, Score: g.Score, Lives: g.Lives})
	return nil
}

func (g *Game) checkSpecialSpawn() error {
	spawned, err := g.foodMgr.TrySpawnSpecial(g.Score, g.Lives, g.occupied())
	if err != nil {
		return err
	}
	if spawned {
		special, _ := g.foodMgr.Special()
		g.Events.Emit(Event{Type: EventSpecialSpawned, Pos: special.Pos, Score: g.Score, Lives: g.Lives})
	}
	return nil
}

func (g *Game) checkSpecialFood() {
	special, ok := g.foodMgr.Special()
	if !ok || !g.collisions.IsFoodCollision(g.Snake.GetHead(), special) {
		return
	}
	g.Lives += special.LifeReward()
	g.foodMgr.ClearSpecial()
	g.Events.Emit(Event{Type: EventBonus, Pos: special.Pos, Score: g.Score, Lives: g.Lives})
}

func (g *Game) checkWalls() {
	if !g.collisions.HitsWall(g.Snake) {
		return
	}
	g.loseLife(CauseWall)
	g.Snake.Direction = types.RIGHT
}

// checkTail and checkRival skip once a penalty fired this tick, so the clamped
// head landing on the body cannot cost a second life.
func (g *Game) checkTail() {
	if !g.penalised && g.collisions.HitsSelf(g.Snake) {
		g.loseLife(CauseSelf)
	}
}

func (g *Game) checkRival() {
	if !g.penalised && g.collisions.HitsSnake(g.Snake, g.Rival) {
		g.loseLife(CauseRival)
	}
}

// loseLife takes a life and a tail segment. The head is pulled one cell in
// from the border so the next tick cannot hit the same wall again.
func (g *Game) loseLife(cause Cause) {
	g.Lives--
	g.penalised = true
	g.Snake.RemoveTail()
	g.Events.Emit(Event{Type: EventPenalty, Pos: g.Snake.GetHead(), Cause: cause, Score: g.Score, Lives: g.Lives})

	if g.Lives <= 0 {
		g.endGame()
		return
	}
	g.Snake.SetHead(g.Grid.Clamp(g.Snake.GetHead(), 1))
}

func (g *Game) endGame() {
	if g.status == GameOver {
		return
	}
	g.status = GameOver
	g.Stats.EndSession(g.Score, g.Ticks)
	g.Events.Emit(Event{Type: EventGameOver, Pos: g.Snake.GetHead(), Score: g.Score, Lives: g.Lives})
}

func (g *Game) abort(err error) error {
	g.endGame()
	return errors.Wrapf(err, "tick %d", g.Ticks)
}

// Frame runs one frame of the loop: commands first, then a tick if one is due.
func (g *Game) Frame(now time.Time, cmds []Command) (quit bool, err error) {
	for _, cmd := range cmds {
		if quit, err = g.HandleCommand(cmd); quit || err != nil {
			return quit, err
		}
	}
	if g.status == Running && g.clock.Due(now) {
		return false, g.Tick()
	}
	return false, nil
}

func (g *Game) Status() Status {
	return g.status
}

func (g *Game) AllowMove() bool {
	return g.allowMove
}

// Food returns the regular food.
func (g *Game) Food() entity.Food {
	return g.foodMgr.Regular()
}

// Special returns the special food and whether one is on the grid.
func (g *Game) Special() (entity.Food, bool) {
	return g.foodMgr.Special()
}

// SetFood moves the regular food, replacing the random placement.
func (g *Game) SetFood(p types.Point) {
	g.foodMgr.SetRegular(p)
}

// SetSpecial puts a special food on p.
func (g *Game) SetSpecial(p types.Point) {
	g.foodMgr.SetSpecial(p)
}

// RivalActive reports whether the rival snake moves this game.
func (g *Game) RivalActive() bool {
	return g.Score >= types.RivalScore
}

// FPS is the frame rate the shell should run at.
func (g *Game) FPS() int {
	return g.speed.FPS()
}
