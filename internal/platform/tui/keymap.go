package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions.
type KeyMapper struct {
	game map[string]core.Action
	menu map[string]MenuAction
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		game: map[string]core.Action{
			"left":   core.ActionLeft,
			"a":      core.ActionLeft,
			"right":  core.ActionRight,
			"d":      core.ActionRight,
			"up":     core.ActionUp,
			"w":      core.ActionUp,
			"x":      core.ActionUp,
			"z":      core.ActionRotateCCW,
			"down":   core.ActionDown,
			"s":      core.ActionDown,
			" ":      core.ActionDrop,
			"space":  core.ActionDrop,
			"enter":  core.ActionConfirm,
			"b":      core.ActionBack,
			"p":      core.ActionPause,
			"esc":    core.ActionPause,
			"r":      core.ActionRestart,
			"q":      core.ActionQuit,
			"ctrl+c": core.ActionQuit,
		},
		menu: map[string]MenuAction{
			"ctrl+c": MenuActionQuit,
			"q":      MenuActionQuit,
			"up":     MenuActionUp,
			"w":      MenuActionUp,
			"k":      MenuActionUp,
			"down":   MenuActionDown,
			"s":      MenuActionDown,
			"j":      MenuActionDown,
			"enter":  MenuActionSelect,
			" ":      MenuActionSelect,
			"b":      MenuActionBack,
			"esc":    MenuActionBack,
			"tab":    MenuActionScoreboard,
		},
	}
}

// MapKey returns the action bound to msg and whether it asks to quit.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	action, ok := km.game[msg.String()]
	if !ok {
		return core.ActionNone, false
	}
	return action, action == core.ActionQuit
}

// MapKeyToFrame records the action bound to msg in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	if action, ok := km.menu[msg.String()]; ok {
		return action
	}
	return MenuActionNone
}
