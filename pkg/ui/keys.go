package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextView   key.Binding
	Categories key.Binding
	Tags       key.Binding
	Count      key.Binding
	Reload     key.Binding
	Insights   key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextView: key.NewBinding(
			key.WithKeys("tab", "v"),
			key.WithHelp("tab", "next view"),
		),
		Categories: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "categories"),
		),
		Tags: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "tags"),
		),
		Count: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "count"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Insights: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insights"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
