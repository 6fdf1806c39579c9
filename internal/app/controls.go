package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Action names an operator trigger.
type Action string

const (
	ActionLaunchPad   Action = "LAUNCH PAD"
	ActionBoot        Action = "BOOT"
	ActionSetTime     Action = "Set Time"
	ActionCalibrate   Action = "Calibrate"
	ActionOnOff       Action = "ON / OFF"
	ActionCX          Action = "CX"
	ActionSimEnable   Action = "SIM Enable"
	ActionSimActivate Action = "SIM Activate"
	ActionSimDisable  Action = "SIM Disable"
	ActionRefresh     Action = "Refresh Stream"
)

type trigger struct {
	binding key.Binding
	action  Action
}

func (k keyMap) triggers() []trigger {
	return []trigger{
		{k.LaunchPad, ActionLaunchPad},
		{k.Boot, ActionBoot},
		{k.SetTime, ActionSetTime},
		{k.Calibrate, ActionCalibrate},
		{k.OnOff, ActionOnOff},
		{k.CX, ActionCX},
		{k.SimEnable, ActionSimEnable},
		{k.SimActivate, ActionSimActivate},
		{k.SimDisable, ActionSimDisable},
		{k.Refresh, ActionRefresh},
	}
}

// matchAction returns the operator action bound to msg.
func (k keyMap) matchAction(msg tea.KeyMsg) (Action, bool) {
	for _, t := range k.triggers() {
		if key.Matches(msg, t.binding) {
			return t.action, true
		}
	}
	return "", false
}

// runAction logs an operator trigger. Only Refresh Stream has behaviour
// behind it; the flight commands are not wired to a radio link.
func (m AppModel) runAction(a Action) (AppModel, tea.Cmd) {
	m.shared.logger.Info("operator action", "action", string(a))
	m.notice = string(a)

	if a != ActionRefresh {
		return m, nil
	}
	cmd := m.connectCmd()
	if cmd == nil {
		m.notice = "connect already in progress"
	}
	return m, cmd
}
