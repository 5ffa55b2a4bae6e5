// Package tui provides the interactive Bubble Tea chat interface for lirabot.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/liralabs/lirabot/internal/chat"
	"github.com/liralabs/lirabot/internal/cli"
	"github.com/liralabs/lirabot/internal/tui/components"
	"github.com/liralabs/lirabot/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ResponseMsg is sent when a query finishes processing.
type ResponseMsg struct {
	Text    string
	Cost    float64
	Latency time.Duration
}

const (
	tabChat = iota
	tabUsage
)

type entry struct {
	role string // "user" or "assistant"
	text string
	cost float64
}

// App is the root Bubble Tea model.
type App struct {
	mgr        *chat.Manager
	customerID string
	backend    string
	language   string
	backends   []string

	transcript []entry
	waiting    bool

	vp      viewport.Model
	input   textinput.Model
	spinner spinner.Model

	width     int
	height    int
	ready     bool
	activeTab int
}

// NewApp creates a new chat TUI model. backends lists the registered
// backend names for the usage tab.
func NewApp(mgr *chat.Manager, customerID, backend, language string, backends []string) App {
	ti := textinput.New()
	ti.Placeholder = "Ask about our products..."
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		mgr:        mgr,
		customerID: customerID,
		backend:    backend,
		language:   language,
		backends:   backends,
		input:      ti,
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) submitCmd(query string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		text, cost := a.mgr.ProcessQuery(context.Background(), a.customerID, query, a.backend, a.language)
		return ResponseMsg{Text: text, Cost: cost, Latency: time.Since(start)}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		a.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		case "enter":
			if a.activeTab != tabChat || a.waiting {
				return a, nil
			}
			query := strings.TrimSpace(a.input.Value())
			if query == "" {
				return a, nil
			}
			a.transcript = append(a.transcript, entry{role: "user", text: query})
			a.input.Reset()
			a.waiting = true
			a.refreshViewport()
			return a, tea.Batch(a.submitCmd(query), a.spinner.Tick)
		}

	case ResponseMsg:
		a.waiting = false
		a.transcript = append(a.transcript, entry{role: "assistant", text: msg.Text, cost: msg.Cost})
		a.refreshViewport()
		return a, nil

	case spinner.TickMsg:
		if a.waiting {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	if a.activeTab == tabChat && !a.waiting {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	a.vp, cmd = a.vp.Update(msg)
	cmds = append(cmds, cmd)

	return a, tea.Batch(cmds...)
}

// layout resizes the viewport for the current terminal dimensions.
// One line each for tab bar, input, and status bar, plus spacing.
func (a *App) layout() {
	vpHeight := a.height - 5
	if vpHeight < 3 {
		vpHeight = 3
	}
	if !a.ready {
		a.vp = viewport.New(a.width, vpHeight)
	} else {
		a.vp.Width = a.width
		a.vp.Height = vpHeight
	}
	a.input.Width = a.width - 4
	a.refreshViewport()
}

func (a *App) refreshViewport() {
	a.vp.SetContent(a.renderTranscript())
	a.vp.GotoBottom()
}

func (a App) renderTranscript() string {
	t := theme.Active

	userStyle := lipgloss.NewStyle().Foreground(t.Blue).Bold(true)
	botStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Width(a.width - 4)
	costStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Width(a.width - 4)

	var b strings.Builder
	for _, e := range a.transcript {
		switch e.role {
		case "user":
			b.WriteString(userStyle.Render(" You"))
			b.WriteString("\n")
			b.WriteString(textStyle.Render(" " + e.text))
		case "assistant":
			b.WriteString(botStyle.Render(" Lira"))
			b.WriteString("\n")
			if strings.HasPrefix(e.text, "Error:") {
				b.WriteString(errStyle.Render(" " + e.text))
			} else {
				b.WriteString(textStyle.Render(" " + e.text))
				b.WriteString("\n")
				b.WriteString(costStyle.Render(fmt.Sprintf(" [Cost: $%.8f]", e.cost)))
			}
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (a App) renderUsage() string {
	stats := a.mgr.SessionStats(a.customerID)

	cards := []struct{ Label, Value string }{
		{"Session Cost", cli.FormatCost(stats.TotalCost)},
		{"Queries", cli.FormatNumber(int64(stats.QueryCount))},
		{"Tokens", cli.FormatTokens(stats.TotalTokens)},
	}
	rowWidth := a.width - 2
	if rowWidth > 90 {
		rowWidth = 90
	}
	top := components.MetricCardRow(cards, rowWidth)

	var body strings.Builder
	for _, name := range a.backends {
		avg := a.mgr.Usage().Averages(name)
		if avg.TotalQueries == 0 {
			body.WriteString(fmt.Sprintf("%-10s no traffic\n", name))
			continue
		}
		body.WriteString(fmt.Sprintf("%-10s %4d queries  avg in %s  avg out %s  total %s\n",
			name,
			avg.TotalQueries,
			cli.FormatAvg(avg.AvgInputTokens),
			cli.FormatAvg(avg.AvgOutputTokens),
			cli.FormatCost(avg.TotalCost)))
	}
	breakdown := components.ContentCard("Backend Usage", strings.TrimRight(body.String(), "\n"), rowWidth)

	return top + "\n" + breakdown
}

// View implements tea.Model.
func (a App) View() string {
	if !a.ready {
		return "\n  Loading..."
	}

	var b strings.Builder
	b.WriteString(components.RenderTabBar(a.activeTab))
	b.WriteString("\n")

	switch a.activeTab {
	case tabChat:
		b.WriteString(a.vp.View())
		b.WriteString("\n")
		if a.waiting {
			b.WriteString(" " + a.spinner.View() + " thinking...")
		} else {
			b.WriteString(" > " + a.input.View())
		}
	case tabUsage:
		b.WriteString(a.renderUsage())
	}

	b.WriteString("\n")
	stats := a.mgr.SessionStats(a.customerID)
	b.WriteString(components.RenderStatusBar(a.width, a.backend, cli.FormatCost(stats.TotalCost)))

	return b.String()
}
