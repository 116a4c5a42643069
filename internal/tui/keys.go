package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	History key.Binding
	Mode    key.Binding
	NoMode  key.Binding
	Send    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		History: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "history")),
		Mode:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "mode")),
		NoMode:  key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "clear mode")),
		Send:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Mode, k.NoMode, k.History, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Send, k.Mode, k.NoMode, k.History, k.Quit}}
}

type historyKeyMap struct {
	Select key.Binding
	Delete key.Binding
	Resume key.Binding
	Page   key.Binding
	Size   key.Binding
	Filter key.Binding
	Close  key.Binding
}

func newHistoryKeyMap() historyKeyMap {
	return historyKeyMap{
		Select: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Resume: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "resume")),
		Page:   key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "page")),
		Size:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "page size")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k historyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Delete, k.Resume, k.Page, k.Size, k.Filter, k.Close}
}

func (k historyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Select, k.Delete, k.Resume, k.Page, k.Size, k.Filter, k.Close}}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		if help.Key == "" && help.Desc == "" {
			continue
		}
		parts = append(parts, boldKey(help.Key)+" "+help.Desc)
	}
	return strings.Join(parts, "  ")
}

func boldKey(text string) string {
	if text == "" {
		return ""
	}
	return "\x1b[1m" + text + "\x1b[22m"
}
