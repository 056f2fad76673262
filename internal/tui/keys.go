package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Click      key.Binding
	Difficulty key.Binding
	Theme      key.Binding
	Settings   key.Binding
	Mute       key.Binding
	ResetBest  key.Binding
	News       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Click:      key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "click")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Settings:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "audio settings")),
		Mute:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		ResetBest:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset best")),
		News:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "news")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.News, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Click, k.Difficulty, k.Theme},
		{k.Settings, k.Mute, k.ResetBest},
		{k.News, k.Help, k.Quit},
	}
}
