package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	esc     key.Binding
	tab     key.Binding
	backtab key.Binding
	quit    key.Binding
	forceQ  key.Binding
	accept  key.Binding
	lock    key.Binding
	reset   key.Binding
	newItem key.Binding
	mask    key.Binding
	backups key.Binding
	backup  key.Binding
	copy    key.Binding
	about   key.Binding
	yes     key.Binding
	no      key.Binding
}

var keys = keyMap{
	up:      key.NewBinding(key.WithKeys("up", "k")),
	down:    key.NewBinding(key.WithKeys("down", "j")),
	enter:   key.NewBinding(key.WithKeys("enter")),
	esc:     key.NewBinding(key.WithKeys("esc")),
	tab:     key.NewBinding(key.WithKeys("tab")),
	backtab: key.NewBinding(key.WithKeys("shift+tab")),
	quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
	forceQ:  key.NewBinding(key.WithKeys("ctrl+c")),
	accept:  key.NewBinding(key.WithKeys("a", "enter")),
	lock:    key.NewBinding(key.WithKeys("ctrl+l")),
	reset:   key.NewBinding(key.WithKeys("ctrl+r")),
	newItem: key.NewBinding(key.WithKeys("n")),
	mask:    key.NewBinding(key.WithKeys("m")),
	backups: key.NewBinding(key.WithKeys("b")),
	backup:  key.NewBinding(key.WithKeys("s")),
	copy:    key.NewBinding(key.WithKeys("c")),
	about:   key.NewBinding(key.WithKeys("i")),
	yes:     key.NewBinding(key.WithKeys("y")),
	no:      key.NewBinding(key.WithKeys("n", "esc")),
}
