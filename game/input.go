package game

import "rival-snake/game/types"

// Command is a discrete input polled by the shell once per frame.
type Command int

const (
	CmdNone Command = iota
	TurnUp
	TurnDown
	TurnLeft
	TurnRight
	TogglePause
	Restart
	AnyOtherKey
)

func (c Command) String() string {
	switch c {
	case TurnUp:
		return "turn-up"
	case TurnDown:
		return "turn-down"
	case TurnLeft:
		return "turn-left"
	case TurnRight:
		return "turn-right"
	case TogglePause:
		return "toggle-pause"
	case Restart:
		return "restart"
	case AnyOtherKey:
		return "other"
	default:
		return "none"
	}
}

// Direction maps a turn command to its heading, NONE for other commands.
func (c Command) Direction() types.Direction {
	switch c {
	case TurnUp:
		return types.UP
	case TurnDown:
		return types.DOWN
	case TurnLeft:
		return types.LEFT
	case TurnRight:
		return types.RIGHT
	default:
		return types.NONE
	}
}

// HandleCommand applies one input command. Once the game is over, Restart
// starts a new game and any other key asks the shell to quit.
func (g *Game) HandleCommand(cmd Command) (quit bool, err error) {
	if cmd == CmdNone {
		return false, nil
	}
	if g.status == GameOver {
		if cmd == Restart {
			return false, g.Restart()
		}
		return true, nil
	}

	switch cmd {
	case TogglePause:
		g.TogglePause()
	case TurnUp, TurnDown, TurnLeft, TurnRight:
		g.Turn(cmd.Direction())
	}
	return false, nil
}

// TogglePause switches between Running and Paused.
func (g *Game) TogglePause() {
	switch g.status {
	case Running:
		g.status = Paused
	case Paused:
		g.status = Running
	}
}

// Turn changes the player's heading. At most one turn is accepted per tick,
// and never the reversal of the current heading.
func (g *Game) Turn(d types.Direction) bool {
	if g.status != Running || !g.allowMove {
		return false
	}
	if !g.Snake.SetDirection(d) {
		return false
	}
	g.allowMove = false
	return true
}
