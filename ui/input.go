package ui

import (
	"rival-snake/game"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type keyBinding struct {
	key int32
	cmd game.Command
}

// Checked in order; the game accepts only the first turn of a tick.
var keyBindings = []keyBinding{
	{rl.KeyUp, game.TurnUp},
	{rl.KeyDown, game.TurnDown},
	{rl.KeyLeft, game.TurnLeft},
	{rl.KeyRight, game.TurnRight},
	{rl.KeyP, game.TogglePause},
	{rl.KeyR, game.Restart},
}

func bound(key int32) bool {
	for _, b := range keyBindings {
		if b.key == key {
			return true
		}
	}
	return false
}

// PollCommands collects this frame's commands. pressed reports a key press
// edge, next drains the queue of pressed keys and returns 0 when empty. Any
// unbound key yields a single AnyOtherKey.
func PollCommands(pressed func(int32) bool, next func() int32) []game.Command {
	var cmds []game.Command
	for _, b := range keyBindings {
		if pressed(b.key) {
			cmds = append(cmds, b.cmd)
		}
	}

	other := false
	for key := next(); key != 0; key = next() {
		if !bound(key) {
			other = true
		}
	}
	if other {
		cmds = append(cmds, game.AnyOtherKey)
	}
	return cmds
}
