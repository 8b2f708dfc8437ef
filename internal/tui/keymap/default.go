package keymap

import "github.com/charmbracelet/bubbles/key"

// DefaultKeymap returns the default calgrid key bindings.
func DefaultKeymap() *Keymap {
	return &Keymap{
		Name:        "default",
		Description: "Default calgrid key bindings",
		Modes: map[Mode]*ModeBindings{
			ModeNormal: defaultNormalBindings(),
			ModeResize: defaultResizeBindings(),
		},
	}
}

func bind(cmd Command, category string, short bool, help string, keys ...string) Binding {
	return Binding{
		Binding:  key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], help)),
		Command:  cmd,
		Category: category,
		Short:    short,
	}
}

func defaultNormalBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeNormal,
		Bindings: []Binding{
			// Selection
			bind(CmdPrevDay, "Selection", false, "previous day", "h", "left"),
			bind(CmdNextDay, "Selection", false, "next day", "l", "right"),
			bind(CmdPrevWeek, "Selection", false, "previous week", "k", "up"),
			bind(CmdNextWeek, "Selection", false, "next week", "j", "down"),
			bind(CmdToday, "Selection", true, "today", "t"),

			// Scrolling
			bind(CmdLineUp, "Scrolling", false, "scroll up", "ctrl+y", "K"),
			bind(CmdLineDown, "Scrolling", false, "scroll down", "ctrl+e", "J"),
			bind(CmdPageUp, "Scrolling", true, "previous month", "pgup", "ctrl+b", "p"),
			bind(CmdPageDown, "Scrolling", true, "next month", "pgdown", "ctrl+f", "n"),

			// Agenda
			bind(CmdNextItem, "Agenda", true, "next item", "tab"),
			bind(CmdPrevItem, "Agenda", false, "previous item", "shift+tab"),
			bind(CmdResizeItem, "Agenda", true, "resize item", "r"),
			bind(CmdReload, "Agenda", false, "reload agenda", "R"),

			// View
			bind(CmdToggleWeekNumbers, "View", false, "week numbers", "w"),
			bind(CmdMoreRows, "View", false, "more rows", "+", "="),
			bind(CmdFewerRows, "View", false, "fewer rows", "-"),
			bind(CmdToggleHelp, "View", true, "help", "?"),

			// Exit
			bind(CmdQuit, "Application", true, "quit", "q", "ctrl+c"),
		},
	}
}

func defaultResizeBindings() *ModeBindings {
	return &ModeBindings{
		Mode: ModeResize,
		Bindings: []Binding{
			bind(CmdExtend, "Resize", true, "extend", "l", "right"),
			bind(CmdShrink, "Resize", true, "shrink", "h", "left"),
			bind(CmdMoveLater, "Resize", true, "move later", "L", "shift+right"),
			bind(CmdMoveEarlier, "Resize", true, "move earlier", "H", "shift+left"),
			bind(CmdConfirm, "Resize", true, "done", "enter"),
			bind(CmdCancel, "Resize", true, "cancel", "esc"),
			bind(CmdQuit, "Application", false, "quit", "ctrl+c"),
		},
	}
}
