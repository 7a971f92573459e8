// Package tui shows the timing readout in a terminal.
package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pocketaudio/pocket/monitor"
)

const labelWidth = 14

var (
	earlyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#5fafff")).Width(labelWidth).Align(lipgloss.Right)
	lateStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff8700")).Width(labelWidth).Align(lipgloss.Left)
	dividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
	positionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fff")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#555"))
)

type (
	// Transport is what the keys of the display control. *host.Clock
	// implements it.
	Transport interface {
		Toggle() bool
		Rewind()
		SetBPM(bpm float64)
		BPM() float64
		Playing() bool
	}

	Model struct {
		readouts  <-chan monitor.Readout
		transport Transport
		input     string
		readout   monitor.Readout
		quitting  bool
	}

	readoutMsg monitor.Readout
)

// New returns a model showing the readouts arriving on readouts. transport
// may be nil, in which case the transport keys do nothing. input is the
// name of the MIDI input shown in the status line.
func New(readouts <-chan monitor.Readout, transport Transport, input string) Model {
	return Model{
		readouts:  readouts,
		transport: transport,
		input:     input,
		readout:   monitor.Format(0, -1, monitor.DefaultThreshold),
	}
}

func listenForReadout(c <-chan monitor.Readout) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-c
		if !ok {
			return tea.Quit()
		}
		return readoutMsg(r)
	}
}

func (m Model) Init() tea.Cmd {
	return listenForReadout(m.readouts)
}

func (m Model) Readout() monitor.Readout {
	return m.readout
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		if m.transport == nil {
			return m, nil
		}
		switch msg.String() {
		case " ":
			m.transport.Toggle()
		case "r":
			m.transport.Rewind()
		case "+", "=":
			m.transport.SetBPM(m.transport.BPM() + 1)
		case "-", "_":
			m.transport.SetBPM(m.transport.BPM() - 1)
		}
	case readoutMsg:
		m.readout = monitor.Readout(msg)
		return m, listenForReadout(m.readouts)
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top,
		earlyStyle.Render(m.readout.Early),
		dividerStyle.Render(" │ "),
		lateStyle.Render(m.readout.Late),
	)
	position := positionStyle.Render(m.readout.Position)
	status := ""
	if m.transport != nil {
		state := "■ stopped"
		if m.transport.Playing() {
			state = "▶ playing"
		}
		status = fmt.Sprintf("%s  %.0f BPM", state, m.transport.BPM())
	}
	if m.input != "" {
		status += "  midi: " + m.input
	}
	help := dimStyle.Render("space:play/stop  r:rewind  +/-:tempo  q:quit")
	return fmt.Sprintf("\n%s\n%s\n\n%s\n%s\n", line, position, statusStyle.Render(status), help)
}
