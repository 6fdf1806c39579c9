package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding. Operator triggers come first, in the order
// they appear in the footer.
type keyMap struct {
	LaunchPad   key.Binding
	Boot        key.Binding
	SetTime     key.Binding
	Calibrate   key.Binding
	OnOff       key.Binding
	CX          key.Binding
	SimEnable   key.Binding
	SimActivate key.Binding
	SimDisable  key.Binding
	Refresh     key.Binding

	Export  key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		LaunchPad:   key.NewBinding(key.WithKeys("l", "L"), key.WithHelp("l", "LAUNCH PAD")),
		Boot:        key.NewBinding(key.WithKeys("b", "B"), key.WithHelp("b", "BOOT")),
		SetTime:     key.NewBinding(key.WithKeys("t", "T"), key.WithHelp("t", "Set Time")),
		Calibrate:   key.NewBinding(key.WithKeys("c", "C"), key.WithHelp("c", "Calibrate")),
		OnOff:       key.NewBinding(key.WithKeys("o", "O"), key.WithHelp("o", "ON / OFF")),
		CX:          key.NewBinding(key.WithKeys("x", "X"), key.WithHelp("x", "CX")),
		SimEnable:   key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "SIM Enable")),
		SimActivate: key.NewBinding(key.WithKeys("a", "A"), key.WithHelp("a", "SIM Activate")),
		SimDisable:  key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "SIM Disable")),
		Refresh:     key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "Refresh Stream")),

		Export:  key.NewBinding(key.WithKeys("e", "E"), key.WithHelp("e", "export charts")),
		NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
		Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "telemetry")),
		Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "graphs")),
		Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "telecast")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// operator returns the operator trigger bindings in footer order.
func (k keyMap) operator() []key.Binding {
	return []key.Binding{
		k.LaunchPad, k.Boot, k.SetTime, k.Calibrate, k.OnOff,
		k.CX, k.SimEnable, k.SimActivate, k.SimDisable, k.Refresh,
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3},
		{k.Export, k.Refresh, k.Help, k.Quit},
		{k.LaunchPad, k.Boot, k.SetTime, k.Calibrate, k.OnOff},
		{k.CX, k.SimEnable, k.SimActivate, k.SimDisable},
	}
}
