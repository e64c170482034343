package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	ExportJSON key.Binding
	ExportCSV  key.Binding
	Snapshot   key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ExportJSON: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "json report")),
	ExportCSV:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "csv data")),
	Snapshot:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "text snapshot")),
}

func (k keyMap) help() []key.Binding {
	return []key.Binding{k.Quit, k.ExportJSON, k.ExportCSV, k.Snapshot}
}
