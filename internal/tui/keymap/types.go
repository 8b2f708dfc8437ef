// Package keymap provides key binding definitions and lookup for the TUI.
// Bindings are declared per input mode and double as the source of the help
// bar, so what is shown and what is handled cannot drift apart.
package keymap

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Mode represents the current input mode of the TUI.
// Different modes have different key bindings active.
type Mode string

const (
	ModeNormal Mode = "normal" // Moving the selection and scrolling
	ModeResize Mode = "resize" // Changing the range of the active agenda item
)

// Command represents a named action that can be triggered by a key binding.
type Command string

// Normal mode commands
const (
	// Selection
	CmdPrevDay  Command = "prev_day"
	CmdNextDay  Command = "next_day"
	CmdPrevWeek Command = "prev_week"
	CmdNextWeek Command = "next_week"
	CmdToday    Command = "today"

	// Scrolling
	CmdLineUp   Command = "line_up"
	CmdLineDown Command = "line_down"
	CmdPageUp   Command = "page_up"
	CmdPageDown Command = "page_down"

	// Agenda items
	CmdNextItem   Command = "next_item"
	CmdPrevItem   Command = "prev_item"
	CmdResizeItem Command = "resize_item"
	CmdReload     Command = "reload"

	// View toggles
	CmdToggleWeekNumbers Command = "toggle_week_numbers"
	CmdMoreRows          Command = "more_rows"
	CmdFewerRows         Command = "fewer_rows"
	CmdToggleHelp        Command = "toggle_help"

	// Exit
	CmdQuit Command = "quit"
)

// Resize mode commands
const (
	CmdExtend      Command = "extend"
	CmdShrink      Command = "shrink"
	CmdMoveLater   Command = "move_later"
	CmdMoveEarlier Command = "move_earlier"
	CmdConfirm     Command = "confirm"
	CmdCancel      Command = "cancel"
)

// Binding is a key binding tied to a command.
type Binding struct {
	key.Binding

	// Command is the action to execute when this binding is triggered.
	Command Command

	// Category groups related bindings together in help display.
	Category string

	// Short marks bindings shown in the one-line help bar.
	Short bool
}

// ModeBindings holds all key bindings for a specific mode.
type ModeBindings struct {
	Mode     Mode
	Bindings []Binding
}

// GetBinding looks up a command for a key in this mode.
// Returns the command and true if found, or empty command and false if not.
func (mb *ModeBindings) GetBinding(msg tea.KeyMsg) (Command, bool) {
	for _, b := range mb.Bindings {
		if b.Enabled() && key.Matches(msg, b.Binding) {
			return b.Command, true
		}
	}
	return "", false
}

// Categories returns the binding categories in declaration order.
func (mb *ModeBindings) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, b := range mb.Bindings {
		if !seen[b.Category] {
			seen[b.Category] = true
			cats = append(cats, b.Category)
		}
	}
	return cats
}

// ShortHelp implements help.KeyMap.
func (mb *ModeBindings) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, b := range mb.Bindings {
		if b.Short {
			out = append(out, b.Binding)
		}
	}
	return out
}

// FullHelp implements help.KeyMap with one column per category.
func (mb *ModeBindings) FullHelp() [][]key.Binding {
	var cols [][]key.Binding
	for _, cat := range mb.Categories() {
		var col []key.Binding
		for _, b := range mb.Bindings {
			if b.Category == cat {
				col = append(col, b.Binding)
			}
		}
		cols = append(cols, col)
	}
	return cols
}

var _ help.KeyMap = (*ModeBindings)(nil)

// Keymap contains all key bindings organized by mode.
type Keymap struct {
	// Name identifies this keymap (e.g., "default").
	Name string

	// Description provides a human-readable description.
	Description string

	// Modes maps each mode to its bindings.
	Modes map[Mode]*ModeBindings
}

// GetBinding looks up a command for a key in a specific mode.
// Returns the command and true if found, or empty command and false if not.
func (km *Keymap) GetBinding(msg tea.KeyMsg, mode Mode) (Command, bool) {
	mb, ok := km.Modes[mode]
	if !ok {
		return "", false
	}
	return mb.GetBinding(msg)
}

// Help returns the help.KeyMap for a mode, or nil for an unknown mode.
func (km *Keymap) Help(mode Mode) help.KeyMap {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	return mb
}

// Keys returns every key bound to cmd in mode.
func (km *Keymap) Keys(cmd Command, mode Mode) []string {
	mb, ok := km.Modes[mode]
	if !ok {
		return nil
	}
	var keys []string
	for _, b := range mb.Bindings {
		if b.Command == cmd {
			keys = append(keys, b.Binding.Keys()...)
		}
	}
	return keys
}
