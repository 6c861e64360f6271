package game

import (
	"testing"
	"time"

	"rival-snake/game/entity"
	"rival-snake/game/types"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

// queueDice hands out queued rolls first, then a fixed fallback.
type queueDice struct {
	rolls    []int
	fallback int
}

func (d *queueDice) Intn(n int) int {
	if len(d.rolls) == 0 {
		return d.fallback % n
	}
	r := d.rolls[0]
	d.rolls = d.rolls[1:]
	return r % n
}

type recorder struct {
	events []Event
}

func (r *recorder) count(t EventType) int {
	n := 0
	for _, e := range r.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func newTestGame(t *testing.T, dice types.Dice) (*Game, *recorder) {
	t.Helper()
	opts := DefaultOptions()
	opts.Dice = dice
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	rec := &recorder{}
	g.Events.SubscribeAll(func(e Event) { rec.events = append(rec.events, e) })
	return g, rec
}

func seeded(seed uint64) types.Dice {
	return rand.New(rand.NewSource(seed))
}

func body(points ...types.Point) []types.Point {
	return points
}

func TestNewGameStartState(t *testing.T) {
	g, _ := newTestGame(t, seeded(1))

	want := body(types.Point{X: 6, Y: 9}, types.Point{X: 5, Y: 9}, types.Point{X: 4, Y: 9})
	for i, p := range want {
		if g.Snake.Body[i] != p {
			t.Errorf("Segment %d: expected %v, got %v", i, p, g.Snake.Body[i])
		}
	}
	if g.Snake.Direction != types.RIGHT {
		t.Errorf("Expected heading right, got %v", g.Snake.Direction)
	}
	if g.Score != 0 || g.Lives != 5 {
		t.Errorf("Expected score 0 and 5 lives, got %d and %d", g.Score, g.Lives)
	}
	if g.Status() != Running {
		t.Errorf("Expected running, got %v", g.Status())
	}
	if types.Contains(g.Snake.Body, g.Food().Pos) {
		t.Errorf("Food %v spawned on the snake", g.Food().Pos)
	}
	if _, ok := g.Special(); ok {
		t.Error("Expected no special food at start")
	}
	if g.FPS() != 30 {
		t.Errorf("Expected 30 fps, got %d", g.FPS())
	}
}

func TestTickEatsFood(t *testing.T) {
	g, rec := newTestGame(t, seeded(2))
	g.SetFood(types.Point{X: 7, Y: 9})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Snake.GetHead() != (types.Point{X: 7, Y: 9}) {
		t.Errorf("Expected head (7, 9), got %v", g.Snake.GetHead())
	}
	if g.Score != 1 {
		t.Errorf("Expected score 1, got %d", g.Score)
	}
	if rec.count(EventEat) != 1 {
		t.Errorf("Expected one eat event, got %d", rec.count(EventEat))
	}
	if types.Contains(g.Snake.Body, g.Food().Pos) {
		t.Errorf("Food respawned on the snake at %v", g.Food().Pos)
	}

	// Growth shows up on the next move.
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Snake.Len() != 4 {
		t.Errorf("Expected length 4, got %d", g.Snake.Len())
	}
}

func TestTickEatsFoodGrowsOnNextMove(t *testing.T) {
	g, _ := newTestGame(t, seeded(3))
	g.SetFood(types.Point{X: 7, Y: 9})
	g.Snake.Grow()

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Snake.Len() != 4 {
		t.Errorf("Expected length 4 after a growth tick, got %d", g.Snake.Len())
	}
	if !g.Snake.Growing() {
		t.Error("Expected another growth pending after eating")
	}
}

func TestWallPenalty(t *testing.T) {
	g, rec := newTestGame(t, seeded(4))
	g.Snake.Body = body(types.Point{X: 39, Y: 9}, types.Point{X: 38, Y: 9}, types.Point{X: 37, Y: 9})
	g.SetFood(types.Point{X: 1, Y: 1})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Lives != 4 {
		t.Errorf("Expected 4 lives, got %d", g.Lives)
	}
	if g.Snake.Len() != 2 {
		t.Errorf("Expected body to shrink to 2, got %d", g.Snake.Len())
	}
	head := g.Snake.GetHead()
	if head.X < 1 || head.X > 38 || head.Y < 1 || head.Y > 38 {
		t.Errorf("Expected head inside [1,38], got %v", head)
	}
	if head != (types.Point{X: 38, Y: 9}) {
		t.Errorf("Expected head clamped to (38, 9), got %v", head)
	}
	if g.Snake.Direction != types.RIGHT {
		t.Errorf("Expected heading reset to right, got %v", g.Snake.Direction)
	}
	if rec.count(EventPenalty) != 1 {
		t.Fatalf("Expected one penalty, got %d", rec.count(EventPenalty))
	}
	if rec.events[0].Cause != CauseWall {
		t.Errorf("Expected wall cause, got %v", rec.events[0].Cause)
	}
}

func TestWallPenaltyClampOntoBodyCostsOneLife(t *testing.T) {
	g, rec := newTestGame(t, seeded(6))
	g.Snake.Body = body(
		types.Point{X: 39, Y: 9}, types.Point{X: 38, Y: 9},
		types.Point{X: 37, Y: 9}, types.Point{X: 36, Y: 9},
	)
	g.SetFood(types.Point{X: 1, Y: 1})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Lives != 4 {
		t.Errorf("Expected 4 lives, got %d", g.Lives)
	}
	if g.Snake.Len() != 3 {
		t.Errorf("Expected body to shrink to 3, got %d", g.Snake.Len())
	}
	if rec.count(EventPenalty) != 1 {
		t.Errorf("Expected one penalty, got %d", rec.count(EventPenalty))
	}
}

func TestGridExhaustedEndsGame(t *testing.T) {
	g, rec := newTestGame(t, seeded(8))

	// Head at (6,9), every other cell after it, and a duplicate tail so the
	// grid stays full once the tail is dropped.
	start := types.Point{X: 6, Y: 9}
	cells := []types.Point{start}
	for y := 0; y < g.Grid.Height; y++ {
		for x := 0; x < g.Grid.Width; x++ {
			if p := (types.Point{X: x, Y: y}); p != start {
				cells = append(cells, p)
			}
		}
	}
	g.Snake.Body = append(cells, cells[len(cells)-1])
	g.SetFood(types.Point{X: 7, Y: 9})

	err := g.Tick()
	if !errors.Is(err, types.ErrGridExhausted) {
		t.Fatalf("Expected ErrGridExhausted, got %v", err)
	}
	if g.Status() != GameOver {
		t.Errorf("Expected game over, got %v", g.Status())
	}
	if rec.count(EventGameOver) != 1 {
		t.Errorf("Expected one game over event, got %d", rec.count(EventGameOver))
	}
}

func TestWallPenaltyForcesRight(t *testing.T) {
	g, _ := newTestGame(t, seeded(5))
	g.Snake.Body = body(types.Point{X: 10, Y: 0}, types.Point{X: 10, Y: 1}, types.Point{X: 10, Y: 2})
	g.Snake.Direction = types.UP
	g.SetFood(types.Point{X: 30, Y: 30})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Snake.Direction != types.RIGHT {
		t.Errorf("Expected heading right after a wall hit, got %v", g.Snake.Direction)
	}
	if g.Snake.GetHead() != (types.Point{X: 10, Y: 1}) {
		t.Errorf("Expected head clamped to (10, 1), got %v", g.Snake.GetHead())
	}
}

func TestSelfCollisionPenalty(t *testing.T) {
	g, rec := newTestGame(t, seeded(6))
	g.Snake.Body = body(
		types.Point{X: 5, Y: 5}, types.Point{X: 5, Y: 6}, types.Point{X: 6, Y: 6},
		types.Point{X: 6, Y: 5}, types.Point{X: 6, Y: 4}, types.Point{X: 5, Y: 4},
		types.Point{X: 4, Y: 4},
	)
	g.Snake.Direction = types.UP
	g.SetFood(types.Point{X: 30, Y: 1})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Lives != 4 {
		t.Errorf("Expected 4 lives, got %d", g.Lives)
	}
	if g.Snake.Len() != 6 {
		t.Errorf("Expected body to shrink to 6, got %d", g.Snake.Len())
	}
	if g.Snake.Direction != types.UP {
		t.Errorf("Expected heading kept on self hit, got %v", g.Snake.Direction)
	}
	if rec.count(EventPenalty) != 1 || rec.events[0].Cause != CauseSelf {
		t.Errorf("Expected one self penalty, got %+v", rec.events)
	}
}

func TestRivalInactiveBelowScore(t *testing.T) {
	g, _ := newTestGame(t, seeded(7))
	g.SetFood(types.Point{X: 30, Y: 1})
	start := append([]types.Point(nil), g.Rival.Body...)

	for i := 0; i < 5; i++ {
		if err := g.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	for i, p := range start {
		if g.Rival.Body[i] != p {
			t.Fatalf("Rival moved before score reached %d", types.RivalScore)
		}
	}
	if g.RivalActive() {
		t.Error("Expected rival inactive at score 0")
	}
}

func TestRivalPenaltyOncePerTick(t *testing.T) {
	dice := &queueDice{fallback: 2}
	g, rec := newTestGame(t, dice)
	g.Score = types.RivalScore
	g.SetFood(types.Point{X: 30, Y: 1})

	// Moving down, the rival's head lands on the player's tail (5, 9) while
	// its neck still covers (6, 9).
	g.Rival.Body = body(types.Point{X: 5, Y: 8}, types.Point{X: 6, Y: 9}, types.Point{X: 7, Y: 9})
	g.Rival.Direction = types.DOWN
	dice.rolls = []int{2}

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Rival.GetHead() != (types.Point{X: 5, Y: 9}) {
		t.Fatalf("Expected rival head (5, 9), got %v", g.Rival.GetHead())
	}
	if rec.count(EventPenalty) != 1 {
		t.Errorf("Expected exactly one penalty, got %d", rec.count(EventPenalty))
	}
	if g.Lives != 4 {
		t.Errorf("Expected 4 lives, got %d", g.Lives)
	}
	if g.Snake.Len() != 2 {
		t.Errorf("Expected player to shrink to 2, got %d", g.Snake.Len())
	}
}

func TestSpecialFoodSpawnsWhenEligible(t *testing.T) {
	dice := &queueDice{fallback: 3}
	g, rec := newTestGame(t, dice)
	g.SetFood(types.Point{X: 30, Y: 1})
	g.Score = 10
	g.Lives = 3
	// The rival would move at this score; keep it busy away from the player.
	g.Rival.Body = body(types.Point{X: 30, Y: 30}, types.Point{X: 31, Y: 30}, types.Point{X: 32, Y: 30})

	// Gate roll 0 succeeds, then the spawn cell (12, 17).
	dice.rolls = []int{0, 12, 17}
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	special, ok := g.Special()
	if !ok {
		t.Fatal("Expected special food to spawn")
	}
	if special.Pos != (types.Point{X: 12, Y: 17}) || special.Kind != entity.Special {
		t.Errorf("Unexpected special food %+v", special)
	}
	if rec.count(EventSpecialSpawned) != 1 {
		t.Errorf("Expected one spawn event, got %d", rec.count(EventSpecialSpawned))
	}

	// A second lucky roll must not add another one.
	dice.rolls = []int{0, 20, 20}
	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if again, _ := g.Special(); again != special {
		t.Errorf("Special food changed from %v to %v", special.Pos, again.Pos)
	}
	if rec.count(EventSpecialSpawned) != 1 {
		t.Errorf("Expected still one spawn event, got %d", rec.count(EventSpecialSpawned))
	}
}

func TestSpecialFoodNeverSpawnsWhenIneligible(t *testing.T) {
	tests := []struct {
		name  string
		score int
		lives int
	}{
		{"score too low", 9, 1},
		{"too many lives", 20, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, _ := newTestGame(t, &queueDice{fallback: 0})
			g.SetFood(types.Point{X: 30, Y: 1})
			g.Score = tt.score
			g.Lives = tt.lives
			g.Rival.Body = body(types.Point{X: 30, Y: 30}, types.Point{X: 31, Y: 30}, types.Point{X: 32, Y: 30})

			for i := 0; i < 10; i++ {
				if err := g.Tick(); err != nil {
					t.Fatalf("Tick: %v", err)
				}
				if _, ok := g.Special(); ok {
					t.Fatalf("Special food spawned at score %d with %d lives", g.Score, g.Lives)
				}
			}
		})
	}
}

func TestSpecialFoodConsumed(t *testing.T) {
	g, rec := newTestGame(t, seeded(8))
	g.SetFood(types.Point{X: 30, Y: 1})
	g.Score = 10
	g.Lives = 3
	g.Rival.Body = body(types.Point{X: 30, Y: 30}, types.Point{X: 31, Y: 30}, types.Point{X: 32, Y: 30})
	g.SetSpecial(types.Point{X: 7, Y: 9})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Lives != 5 {
		t.Errorf("Expected 5 lives, got %d", g.Lives)
	}
	if _, ok := g.Special(); ok {
		t.Error("Expected special food to be removed")
	}
	if rec.count(EventBonus) != 1 {
		t.Errorf("Expected one bonus event, got %d", rec.count(EventBonus))
	}
}

func TestGameOverHappensOnce(t *testing.T) {
	opts := DefaultOptions()
	opts.Lives = 1
	opts.Dice = seeded(9)
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	rec := &recorder{}
	g.Events.SubscribeAll(func(e Event) { rec.events = append(rec.events, e) })

	g.Snake.Body = body(types.Point{X: 39, Y: 9}, types.Point{X: 38, Y: 9}, types.Point{X: 37, Y: 9})
	g.SetFood(types.Point{X: 1, Y: 1})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if g.Status() != GameOver {
		t.Fatalf("Expected game over, got %v", g.Status())
	}
	if g.Lives != 0 {
		t.Errorf("Expected 0 lives, got %d", g.Lives)
	}

	frozen := append([]types.Point(nil), g.Snake.Body...)
	for i := 0; i < 5; i++ {
		if err := g.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	for i, p := range frozen {
		if g.Snake.Body[i] != p {
			t.Fatal("Snake moved after game over")
		}
	}
	if rec.count(EventGameOver) != 1 {
		t.Errorf("Expected exactly one game over event, got %d", rec.count(EventGameOver))
	}
	if g.Stats.GamesPlayed() != 1 {
		t.Errorf("Expected one recorded game, got %d", g.Stats.GamesPlayed())
	}
}

func TestSpeedUpEvent(t *testing.T) {
	g, rec := newTestGame(t, seeded(10))
	g.Score = types.SpeedUpScoreStep - 1
	g.SetFood(types.Point{X: 7, Y: 9})

	if err := g.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if rec.count(EventSpeedUp) != 1 {
		t.Fatalf("Expected a speed-up event, got %d", rec.count(EventSpeedUp))
	}
	if g.FPS() != 35 {
		t.Errorf("Expected 35 fps, got %d", g.FPS())
	}
}

func TestRestartResetsEverything(t *testing.T) {
	g, rec := newTestGame(t, seeded(11))
	firstSession := g.UUID
	g.Score = 12
	g.Lives = 2
	g.SetSpecial(types.Point{X: 20, Y: 20})
	g.Snake.Body = body(types.Point{X: 39, Y: 9}, types.Point{X: 38, Y: 9})
	g.Rival.Body = body(types.Point{X: 1, Y: 1}, types.Point{X: 1, Y: 2}, types.Point{X: 1, Y: 3})
	g.speed.Update(10)

	if err := g.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if g.Score != 0 || g.Lives != 5 || g.Ticks != 0 {
		t.Errorf("Expected fresh counters, got score %d lives %d ticks %d", g.Score, g.Lives, g.Ticks)
	}
	if g.Snake.Len() != 3 || g.Snake.GetHead() != (types.Point{X: 6, Y: 9}) {
		t.Errorf("Expected the starting snake, got %v", g.Snake.Body)
	}
	if g.Rival.GetHead() != entity.RivalStart[0] {
		t.Errorf("Expected the rival reset, got %v", g.Rival.Body)
	}
	if _, ok := g.Special(); ok {
		t.Error("Expected special food cleared")
	}
	if g.FPS() != 30 {
		t.Errorf("Expected base fps, got %d", g.FPS())
	}
	if g.UUID == firstSession {
		t.Error("Expected a new session id")
	}
	if rec.count(EventRestart) != 1 {
		t.Errorf("Expected a restart event, got %d", rec.count(EventRestart))
	}
}

func TestTickInvariants(t *testing.T) {
	dice := rand.New(rand.NewSource(1234))
	g, _ := newTestGame(t, dice)

	penalties := 0
	g.Events.Subscribe(EventPenalty, func(Event) { penalties++ })
	g.Events.Subscribe(EventEat, func(Event) {
		if types.Contains(g.Snake.Body, g.Food().Pos) {
			t.Errorf("Food respawned on the snake at %v", g.Food().Pos)
		}
	})

	for i := 0; i < 3000; i++ {
		if g.Status() == GameOver {
			if err := g.Restart(); err != nil {
				t.Fatalf("Restart: %v", err)
			}
		}
		g.Turn(types.Directions[dice.Intn(4)])

		before := g.Snake.Len()
		growing := g.Snake.Growing()
		penalties = 0

		if err := g.Tick(); err != nil {
			t.Fatalf("Tick %d: %v", i, err)
		}

		if penalties > 1 {
			t.Fatalf("Tick %d: %d penalties fired, want at most one", i, penalties)
		}
		want := before
		if growing {
			want++
		}
		if penalties == 1 && want > 1 {
			want--
		}
		if g.Snake.Len() != want {
			t.Fatalf("Tick %d: length %d, want %d (before %d, growing %v, penalties %d)",
				i, g.Snake.Len(), want, before, growing, penalties)
		}
		if special, ok := g.Special(); ok && !(g.Score >= 10 && g.Lives < 4) {
			t.Fatalf("Tick %d: special food %v present at score %d with %d lives",
				i, special.Pos, g.Score, g.Lives)
		}
		if !g.Grid.InBounds(g.Rival.GetHead()) {
			t.Fatalf("Tick %d: rival left the grid at %v", i, g.Rival.GetHead())
		}
	}
}

func TestFrameTicksOnInterval(t *testing.T) {
	g, _ := newTestGame(t, seeded(12))
	g.SetFood(types.Point{X: 30, Y: 1})
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	steps := []struct {
		at    time.Duration
		ticks int
	}{
		{0, 0},
		{100 * time.Millisecond, 0},
		{200 * time.Millisecond, 1},
		{300 * time.Millisecond, 1},
		{400 * time.Millisecond, 2},
	}
	for _, s := range steps {
		if _, err := g.Frame(t0.Add(s.at), nil); err != nil {
			t.Fatalf("Frame: %v", err)
		}
		if g.Ticks != s.ticks {
			t.Errorf("At %v expected %d ticks, got %d", s.at, s.ticks, g.Ticks)
		}
	}
}

func TestFrameAppliesCommandsBeforeTick(t *testing.T) {
	g, _ := newTestGame(t, seeded(13))
	g.SetFood(types.Point{X: 30, Y: 1})
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	g.Frame(t0, nil)
	if _, err := g.Frame(t0.Add(200*time.Millisecond), []Command{TurnDown}); err != nil {
		t.Fatalf("Frame: %v", err)
	}
	if g.Snake.GetHead() != (types.Point{X: 6, Y: 10}) {
		t.Errorf("Expected the turn applied before the tick, head at %v", g.Snake.GetHead())
	}
}

func TestEventCue(t *testing.T) {
	tests := []struct {
		event Event
		want  Cue
	}{
		{Event{Type: EventEat}, CueEat},
		{Event{Type: EventBonus}, CueBonus},
		{Event{Type: EventPenalty, Cause: CauseRival}, CuePenalty},
		{Event{Type: EventGameOver, Lives: 0}, CueNone},
		{Event{Type: EventGameOver, Lives: 3}, CuePenalty},
		{Event{Type: EventSpeedUp}, CueNone},
	}
	for _, tt := range tests {
		if got := tt.event.Cue(); got != tt.want {
			t.Errorf("%v (lives %d): cue = %d, want %d", tt.event.Type, tt.event.Lives, got, tt.want)
		}
	}
}
