// Package tui provides a terminal user interface for fuse2tone
package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mustangtools/fuse2tone/pkg/convert"
	"github.com/mustangtools/fuse2tone/pkg/registry"
	"github.com/mustangtools/fuse2tone/pkg/tone"
)

// Tweed-and-control-panel color scheme
var (
	tweedGold  = lipgloss.Color("#D4A017")
	creamWhite = lipgloss.Color("#F5F0DC")
	silverGray = lipgloss.Color("#C0C0C0")
	darkBrown  = lipgloss.Color("#3B2A1A")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(tweedGold).
			Background(darkBrown).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(silverGray).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(tweedGold).
			Bold(true).
			PaddingLeft(2)

	statusStyle = lipgloss.NewStyle().
			Foreground(creamWhite).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(tweedGold).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(tweedGold).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateMenu State = iota
	StateFilePicker
	StateWorking
	StateResult
)

// Action identifies what the user asked the TUI to do
type Action int

const (
	ActionConvert Action = iota
	ActionDisplay
	ActionExtract
	ActionExit
)

// MenuItem represents a menu option
type MenuItem struct {
	Title       string
	Description string
	Action      Action
	Extensions  []string
}

var menuItems = []MenuItem{
	{Title: "FUSE → TONE", Description: "Convert a .fuse preset to a Tone JSON document", Action: ActionConvert, Extensions: []string{".fuse", ".xml"}},
	{Title: "FUSE → PANEL", Description: "Show the control-panel values of a .fuse preset", Action: ActionDisplay, Extensions: []string{".fuse", ".xml"}},
	{Title: "EXTRACT SNIPPETS", Description: "Scan a strings dump for canonical Tone documents", Action: ActionExtract, Extensions: []string{".txt", ".strings"}},
	{Title: "Exit", Description: "Exit the application", Action: ActionExit},
}

// Model represents the TUI model
type Model struct {
	state        State
	menuIndex    int
	filePicker   filepicker.Model
	spinner      spinner.Model
	selectedFile string
	action       Action
	summary      string
	err          error
	width        int
	height       int
}

// workDoneMsg signals completion of the selected action
type workDoneMsg struct {
	summary string
	err     error
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick)
}

// New creates a new TUI model
func New() Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".fuse", ".xml", ".txt", ".strings"}
	fp.CurrentDirectory, _ = os.Getwd()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(tweedGold)

	return Model{
		state:      StateMenu,
		menuIndex:  0,
		filePicker: fp,
		spinner:    s,
	}
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle file picker state first - it needs to receive all messages
	if m.state == StateFilePicker {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				m.state = StateMenu
				return m, nil
			case "q", "ctrl+c":
				return m, tea.Quit
			}
		}

		var cmd tea.Cmd
		m.filePicker, cmd = m.filePicker.Update(msg)

		if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.state = StateWorking
			return m, tea.Batch(m.spinner.Tick, m.performAction())
		}

		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.filePicker.Height = msg.Height - 10
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateMenu:
			return m.updateMenu(msg)
		case StateResult:
			return m.updateResult(msg)
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case workDoneMsg:
		m.state = StateResult
		m.summary = msg.summary
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
		}
	case "enter":
		item := menuItems[m.menuIndex]
		if item.Action == ActionExit {
			return m, tea.Quit
		}
		m.action = item.Action
		m.state = StateFilePicker
		m.filePicker.AllowedTypes = item.Extensions
		return m, m.filePicker.Init()
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateMenu
		m.err = nil
		m.selectedFile = ""
		m.summary = ""
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) performAction() tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(m.selectedFile)
		if err != nil {
			return workDoneMsg{err: err}
		}

		switch m.action {
		case ActionConvert:
			return m.convertPreset(data)
		case ActionDisplay:
			return m.displayPreset(data)
		case ActionExtract:
			return m.extractSnippets(data)
		}
		return workDoneMsg{err: fmt.Errorf("unknown action")}
	}
}

func (m Model) convertPreset(data []byte) tea.Msg {
	conv := convert.New(registry.Builtin(), convert.NewGapTable())

	result, err := conv.ConvertPreset(data)
	if err != nil {
		return workDoneMsg{err: err}
	}
	doc, err := result.ToneDocument("mustang-lt")
	if err != nil {
		return workDoneMsg{err: fmt.Errorf("%w (diagnostics: %s)", err, strings.Join(result.Diagnostics, "; "))}
	}

	canonical, err := tone.CanonicalJSON(doc)
	if err != nil {
		return workDoneMsg{err: err}
	}

	base := strings.TrimSuffix(m.selectedFile, filepath.Ext(m.selectedFile))
	outputFile := base + ".json"
	if err := os.WriteFile(outputFile, []byte(canonical+"\n"), 0644); err != nil {
		return workDoneMsg{err: err}
	}

	return workDoneMsg{summary: fmt.Sprintf("Wrote %s", filepath.Base(outputFile))}
}

func (m Model) displayPreset(data []byte) tea.Msg {
	conv := convert.New(registry.Builtin(), convert.NewGapTable())

	result, err := conv.ConvertPreset(data)
	if err != nil {
		return workDoneMsg{err: err}
	}

	var b strings.Builder
	for i, slot := range result.Slots {
		if slot == nil {
			continue
		}
		fmt.Fprintf(&b, "%s: %s\n", strings.ToUpper(string(registry.SlotOrder[i])), slot.Descriptor.DisplayName)
		names := make([]string, 0, len(slot.Display))
		for name := range slot.Display {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "  %-10s %s\n", name, slot.Display[name])
		}
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(&b, "! %s\n", d)
	}

	return workDoneMsg{summary: b.String()}
}

func (m Model) extractSnippets(data []byte) tea.Msg {
	result := tone.Scan(strings.Split(string(data), "\n"), "mustang")

	outDir := strings.TrimSuffix(m.selectedFile, filepath.Ext(m.selectedFile)) + "_snippets"
	if err := result.WriteSnippets(outDir); err != nil {
		return workDoneMsg{err: err}
	}

	return workDoneMsg{summary: fmt.Sprintf("%d unique snippets written to %s", len(result.Snippets), filepath.Base(outDir))}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(asciiLogo())
	s.WriteString("\n")

	switch m.state {
	case StateMenu:
		s.WriteString(m.viewMenu())
	case StateFilePicker:
		s.WriteString(m.viewFilePicker())
	case StateWorking:
		s.WriteString(m.viewWorking())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT ACTION "))
	s.WriteString("\n\n")

	for i, item := range menuItems {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			s.WriteString("\n")
			s.WriteString(lipgloss.NewStyle().Foreground(creamWhite).PaddingLeft(4).Render(item.Description))
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" SELECT FILE "))
	s.WriteString("\n\n")
	s.WriteString(m.filePicker.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("esc: back to menu"))

	return s.String()
}

func (m Model) viewWorking() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" WORKING "))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("%s Processing %s...\n", m.spinner.View(), filepath.Base(m.selectedFile)))
	s.WriteString(statusStyle.Render(fmt.Sprintf("  %s", menuItems[m.menuIndex].Title)))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" DONE "))
		s.WriteString("\n\n")
		s.WriteString(successStyle.Render("✓ " + firstLine(m.summary)))
		if rest := restLines(m.summary); rest != "" {
			s.WriteString("\n\n")
			s.WriteString(rest)
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue"))

	return boxStyle.Render(s.String())
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func restLines(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimRight(s[i+1:], "\n")
	}
	return ""
}

func asciiLogo() string {
	logo := `
   ______ _    _  _____ ______ ___  _______ ____  _   _ ______
  |  ____| |  | |/ ____|  ____|__ \|__   __/ __ \| \ | |  ____|
  | |__  | |  | | (___ | |__     ) |  | | | |  | |  \| | |__
  |  __| | |  | |\___ \|  __|   / /   | | | |  | | .   |  __|
  | |    | |__| |____) | |____ / /_   | | | |__| | |\  | |____
  |_|     \____/|_____/|______|____|  |_|  \____/|_| \_|______|
`
	return lipgloss.NewStyle().Foreground(tweedGold).Render(logo)
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
