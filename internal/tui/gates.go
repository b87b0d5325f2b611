// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-quote-guard/internal/validators"
	"github.com/MKhiriev/go-quote-guard/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// incorrectPasswordMsg is the only feedback for a failed unlock, whatever
// the cause.
const incorrectPasswordMsg = "Incorrect password"

const legalText = `This application stores customer contact details and other
personal data on this device.

All data is encrypted with a key derived from your master password.
The password itself is never stored. If you forget it, your data
cannot be recovered: the only way back is a full reset that erases
everything stored locally.

You are responsible for handling your customers' personal data
according to the laws that apply to your business.`

func newPasswordInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 256
	in.Width = 40
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '*'
	return in
}

type setupForm struct {
	inputs     []textinput.Model
	focus      int
	submitting bool
	errMsg     string
}

func newSetupForm() setupForm {
	password := newPasswordInput("master password")
	password.Focus()

	return setupForm{
		inputs: []textinput.Model{password, newPasswordInput("repeat password")},
	}
}

func (f setupForm) value() models.PasswordSetup {
	return models.PasswordSetup{
		Password: f.inputs[0].Value(),
		Confirm:  f.inputs[1].Value(),
	}
}

type lockForm struct {
	input      textinput.Model
	submitting bool
	errMsg     string
}

func newLockForm() lockForm {
	in := newPasswordInput("master password")
	in.Focus()
	return lockForm{input: in}
}

type resetForm struct {
	input      textinput.Model
	confirming bool
	submitting bool
	errMsg     string
}

func newResetForm() resetForm {
	in := textinput.New()
	in.CharLimit = 64
	in.Width = 40
	in.Focus()
	return resetForm{input: in}
}

func (m appModel) updateLegal(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case legalAcceptedMsg:
		m.legalPending = false
		return m.showError(msg.err), nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.quit):
			return m, tea.Quit
		case key.Matches(msg, keys.about):
			return m.openAbout(), nil
		case key.Matches(msg, keys.accept):
			if m.legalPending {
				return m, nil
			}
			m.legalPending = true
			return m, m.cmdAcceptLegal()
		}
	}
	return m, nil
}

func (m appModel) viewLegal() string {
	return renderPage("LEGAL NOTICE", legalText, "a / enter: accept │ i: about │ q: quit")
}

func (m appModel) updateSetup(msg tea.Msg) (appModel, tea.Cmd) {
	if result, ok := msg.(passwordSetMsg); ok {
		m.setup.submitting = false
		if result.err != nil {
			m.setup.errMsg = humanizeError(result.err)
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.tab):
			m.setup = m.setup.moveFocus(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab):
			m.setup = m.setup.moveFocus(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.setup.submitting {
				return m, nil
			}
			in := m.setup.value()
			if err := m.gateCheck.Validate(m.ctx, in); err != nil {
				m.setup.errMsg = humanizeError(err)
				return m, nil
			}
			m.setup.errMsg = ""
			m.setup.submitting = true
			return m, m.cmdSetupPassword(in.Password)
		}
	}

	var cmd tea.Cmd
	m.setup.inputs[m.setup.focus], cmd = m.setup.inputs[m.setup.focus].Update(msg)
	return m, cmd
}

func (f setupForm) moveFocus(delta int) setupForm {
	inputs := make([]textinput.Model, len(f.inputs))
	copy(inputs, f.inputs)
	inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(inputs)) % len(inputs)
	inputs[f.focus].Focus()
	f.inputs = inputs
	return f
}

func (m appModel) viewSetup() string {
	var b strings.Builder
	b.WriteString("Choose a master password. It unlocks and encrypts your data\n")
	b.WriteString("and cannot be recovered.\n\n")
	b.WriteString("Password │ [")
	b.WriteString(m.setup.inputs[0].View())
	b.WriteString("]\n")
	b.WriteString("Repeat   │ [")
	b.WriteString(m.setup.inputs[1].View())
	b.WriteString("]\n\n")
	b.WriteString("Strength │ ")
	b.WriteString(strengthBar(m.security.PasswordStrength(m.setup.inputs[0].Value())))
	b.WriteString("\n")

	if m.setup.submitting {
		b.WriteString("\nSaving...\n")
	}
	if m.setup.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.setup.errMsg))
		b.WriteString("\n")
	}

	return renderPage("SET MASTER PASSWORD", strings.TrimRight(b.String(), "\n"), "tab: next field │ enter: save")
}

func (m appModel) updateLock(msg tea.Msg) (appModel, tea.Cmd) {
	if result, ok := msg.(unlockResultMsg); ok {
		m.lock.submitting = false
		if !result.ok {
			m.lock.input.Reset()
			m.lock.errMsg = incorrectPasswordMsg
		}
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch {
		case key.Matches(keyMsg, keys.reset):
			m.reset = newResetForm()
			m.screen = screenReset
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.lock.submitting {
				return m, nil
			}
			m.lock.errMsg = ""
			m.lock.submitting = true
			return m, m.cmdUnlock(m.lock.input.Value())
		}
	}

	var cmd tea.Cmd
	m.lock.input, cmd = m.lock.input.Update(msg)
	return m, cmd
}

func (m appModel) viewLock() string {
	var b strings.Builder
	b.WriteString("Password │ [")
	b.WriteString(m.lock.input.View())
	b.WriteString("]\n")

	if m.lock.submitting {
		b.WriteString("\nUnlocking...\n")
	}
	if m.lock.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.lock.errMsg))
		b.WriteString("\n")
	}

	return renderPage("LOCKED", strings.TrimRight(b.String(), "\n"), "enter: unlock │ ctrl+r: forgot password")
}

func (m appModel) updateReset(msg tea.Msg) (appModel, tea.Cmd) {
	if result, ok := msg.(resetDoneMsg); ok {
		m.reset.submitting = false
		m.reset.confirming = false
		if result.err != nil {
			return m.showError(result.err), nil
		}
		return m.withStatus("All local data erased")
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if ok && m.reset.confirming {
		switch {
		case m.reset.submitting:
		case key.Matches(keyMsg, keys.yes):
			m.reset.submitting = true
			return m, m.cmdReset()
		case key.Matches(keyMsg, keys.no):
			m.reset.confirming = false
		}
		return m, nil
	}

	if ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.lock = newLockForm()
			m.screen = screenLock
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			in := models.ResetConfirmation{Phrase: m.reset.input.Value()}
			if err := m.gateCheck.Validate(m.ctx, in, validators.FieldResetPhrase); err != nil {
				m.reset.errMsg = humanizeError(err)
				return m, nil
			}
			m.reset.errMsg = ""
			m.reset.confirming = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.reset.input, cmd = m.reset.input.Update(msg)
	return m, cmd
}

func (m appModel) viewReset() string {
	if m.reset.confirming {
		return renderConfirm("Erase all local data? This cannot be undone.")
	}

	var b strings.Builder
	b.WriteString("Resetting erases the password, all customers and all backups\n")
	b.WriteString("stored on this device.\n\n")
	b.WriteString(fmt.Sprintf("Type %q to continue:\n\n", m.resetPhrase))
	b.WriteString("[")
	b.WriteString(m.reset.input.View())
	b.WriteString("]\n")

	if m.reset.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.reset.errMsg))
		b.WriteString("\n")
	}

	return renderPage("RESET", strings.TrimRight(b.String(), "\n"), "esc: back │ enter: continue")
}
