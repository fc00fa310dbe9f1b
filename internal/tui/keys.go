package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	esc        key.Binding
	tab        key.Binding
	backtab    key.Binding
	quit       key.Binding
	like       key.Binding
	save       key.Binding
	copy       key.Binding
	edit       key.Binding
	login      key.Binding
	register   key.Binding
	logout     key.Binding
	switchMode key.Binding
	version    key.Binding
	feed       key.Binding
	liked      key.Binding
	saved      key.Binding
	sounds     key.Binding
	profile    key.Binding
}

var keys = keyMap{
	up:         key.NewBinding(key.WithKeys("up", "k")),
	down:       key.NewBinding(key.WithKeys("down", "j")),
	enter:      key.NewBinding(key.WithKeys("enter")),
	esc:        key.NewBinding(key.WithKeys("esc")),
	tab:        key.NewBinding(key.WithKeys("tab")),
	backtab:    key.NewBinding(key.WithKeys("shift+tab")),
	quit:       key.NewBinding(key.WithKeys("q")),
	like:       key.NewBinding(key.WithKeys("l")),
	save:       key.NewBinding(key.WithKeys("s")),
	copy:       key.NewBinding(key.WithKeys("c")),
	edit:       key.NewBinding(key.WithKeys("e")),
	login:      key.NewBinding(key.WithKeys("i")),
	register:   key.NewBinding(key.WithKeys("r")),
	logout:     key.NewBinding(key.WithKeys("o")),
	switchMode: key.NewBinding(key.WithKeys("ctrl+s")),
	version:    key.NewBinding(key.WithKeys("v")),
	feed:       key.NewBinding(key.WithKeys("1")),
	liked:      key.NewBinding(key.WithKeys("2")),
	saved:      key.NewBinding(key.WithKeys("3")),
	sounds:     key.NewBinding(key.WithKeys("4")),
	profile:    key.NewBinding(key.WithKeys("5")),
}
