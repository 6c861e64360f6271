package term

import (
	"unicode"

	"rival-snake/game"

	"github.com/gdamore/tcell/v2"
)

// KeyCommand maps a key press to a game command. Escape and Ctrl-C quit at
// any time.
func KeyCommand(e *tcell.EventKey) (cmd game.Command, quit bool) {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return game.CmdNone, true
	case tcell.KeyUp:
		return game.TurnUp, false
	case tcell.KeyDown:
		return game.TurnDown, false
	case tcell.KeyLeft:
		return game.TurnLeft, false
	case tcell.KeyRight:
		return game.TurnRight, false
	case tcell.KeyRune:
		switch unicode.ToLower(e.Rune()) {
		case 'p':
			return game.TogglePause, false
		case 'r':
			return game.Restart, false
		}
	}
	return game.AnyOtherKey, false
}
