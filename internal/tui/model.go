// Package tui is the terminal rendition of the listing page and its chaos panel.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/resiliencere/leadsync/chaos"
	"github.com/resiliencere/leadsync/validation"
)

// Options configures the terminal shell.
type Options struct {
	Demo         *chaos.Demo // required
	PollInterval time.Duration
	Logger       *slog.Logger
}

type (
	tickMsg    time.Time
	pendingMsg int
	noteMsg    chaos.Notification
	notesDone  struct{}

	propertyMsg struct {
		property *chaos.Property
		err      error
	}

	leadMsg struct {
		lead   chaos.Lead
		queued bool
		err    error
	}
)

// Model is the bubbletea model of the listing page.
type Model struct {
	demo         *chaos.Demo
	logger       *slog.Logger
	pollInterval time.Duration
	ctx          context.Context

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	notes    <-chan chaos.Notification
	stopSubs func()

	state    chaos.State
	fetchErr error
	lastLead string
	leadSeq  int
	width    int
}

// New builds the model and subscribes it to demo notifications. Call Close, or quit
// the program, to end the subscription.
func New(ctx context.Context, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.PollInterval
	if interval <= 0 {
		interval = chaos.DefaultPollInterval
	}

	notes, stop := opts.Demo.Subscribe(16)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		demo:         opts.Demo,
		logger:       logger,
		pollInterval: interval,
		ctx:          ctx,
		keys:         keys,
		help:         help.New(),
		spinner:      sp,
		notes:        notes,
		stopSubs:     stop,
	}
	m.state = opts.Demo.Snapshot(ctx)
	m.state.Loading = true
	return m
}

// Close ends the notification subscription.
func (m Model) Close() {
	if m.stopSubs != nil {
		m.stopSubs()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchProperty(),
		m.readPending(),
		m.waitForNote(),
		m.tick(),
		m.spinner.Tick,
	)
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) readPending() tea.Cmd {
	return func() tea.Msg {
		n, err := m.demo.PendingCount(m.ctx)
		if err != nil {
			m.logger.Warn("Failed to read pending leads", "error", err)
			return nil
		}
		return pendingMsg(n)
	}
}

func (m Model) waitForNote() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-m.notes
		if !ok {
			return notesDone{}
		}
		return noteMsg(n)
	}
}

func (m Model) fetchProperty() tea.Cmd {
	return func() tea.Msg {
		p, err := m.demo.LoadProperty(m.ctx)
		return propertyMsg{property: p, err: err}
	}
}

func (m Model) submitLead(in chaos.LeadInput) tea.Cmd {
	return func() tea.Msg {
		if err := validation.ValidateLead(&in); err != nil {
			return leadMsg{err: err}
		}
		lead, queued, err := m.demo.SubmitLead(m.ctx, in)
		return leadMsg{lead: lead, queued: queued, err: err}
	}
}

func (m Model) setStatus(s chaos.ConnectionStatus) Model {
	m.demo.SetStatus(s)
	return m.refresh()
}

// refresh copies the synchronously readable parts of the demo state.
func (m Model) refresh() Model {
	m.state.Status = m.demo.Status()
	m.state.Region = m.demo.Region()
	m.state.RegionName = m.demo.RegionName()
	m.state.SyncState = m.demo.SyncState().String()
	m.state.Toast = m.demo.Toast()
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Online):
			return m.setStatus(chaos.StatusOnline), nil
		case key.Matches(msg, m.keys.Degraded):
			return m.setStatus(chaos.StatusDegraded), nil
		case key.Matches(msg, m.keys.Offline):
			return m.setStatus(chaos.StatusOffline), nil
		case key.Matches(msg, m.keys.Lead):
			m.leadSeq++
			return m, m.submitLead(chaos.LeadInput{
				Name:    fmt.Sprintf("Demo Buyer %d", m.leadSeq),
				Phone:   "0901234567",
				Message: "I would like to book a viewing.",
			})
		case key.Matches(msg, m.keys.Refetch):
			m.state.Loading = true
			return m, m.fetchProperty()
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Dismiss):
			m.demo.DismissToast()
			m.state.Toast = nil
			return m, nil
		}
		return m, nil

	case tickMsg:
		return m.refresh(), tea.Batch(m.readPending(), m.tick())

	case pendingMsg:
		m.state.Pending = int(msg)
		return m, nil

	case noteMsg:
		n := chaos.Notification(msg)
		m = m.refresh()
		m.state.Toast = &n
		return m, tea.Batch(m.waitForNote(), m.readPending())

	case notesDone:
		return m, nil

	case propertyMsg:
		m.state.Loading = false
		m.fetchErr = msg.err
		if msg.err == nil {
			m.state.Property = msg.property
		}
		return m, nil

	case leadMsg:
		if msg.err != nil {
			m.lastLead = "Lead rejected: " + msg.err.Error()
			return m, nil
		}
		route := "sent to CRM"
		if msg.queued {
			route = "saved offline"
		}
		m.lastLead = fmt.Sprintf("%s %s", msg.lead.Name, route)
		return m.refresh(), m.readPending()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("Saigon Realty · Listing Demo"))
	s.WriteString("\n\n")
	s.WriteString(m.headerView())
	s.WriteString("\n")

	if m.state.Toast != nil {
		s.WriteString(m.toastView(*m.state.Toast))
		s.WriteString("\n")
	}

	s.WriteString(m.propertyView())
	s.WriteString("\n")

	if m.lastLead != "" {
		s.WriteString(mutedStyle.Render("Last lead: " + m.lastLead))
		s.WriteString("\n")
	}

	s.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return s.String()
}

func (m Model) headerView() string {
	region := lipgloss.NewStyle().
		Bold(true).
		Foreground(regionColor(m.state.Region)).
		Render("● " + m.state.RegionName)

	status := badgeStyle.
		Foreground(lipgloss.Color("#000000")).
		Background(statusColor(m.state.Status)).
		Render(m.state.Status.String())

	parts := []string{region, " ", status}
	if m.state.Pending > 0 {
		parts = append(parts, " ", pendingStyle.Render(fmt.Sprintf("%d pending", m.state.Pending)))
	}
	if m.state.SyncState == chaos.SyncPending.String() {
		parts = append(parts, " ", mutedStyle.Render("sync scheduled"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) toastView(n chaos.Notification) string {
	return toastStyle.
		BorderForeground(kindColor(n.Kind)).
		Foreground(kindColor(n.Kind)).
		Render(n.Message)
}

func (m Model) propertyView() string {
	if m.state.Loading {
		return cardStyle.Render(m.spinner.View() + " Loading…")
	}

	p := m.state.Property
	if p == nil {
		msg := "Listing unavailable. Showing the offline fallback."
		if m.fetchErr != nil {
			msg += "\n" + mutedStyle.Render(m.fetchErr.Error())
		}
		return cardStyle.Render(msg)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(p.Title))
	if p.Cached {
		b.WriteString(" " + mutedStyle.Render("(cached)"))
	}
	b.WriteString("\n" + p.Price + "  ·  " + p.Location + "\n")
	for _, f := range p.Features {
		b.WriteString("  • " + f + "\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Agent: %s %s", p.AgentName, p.AgentPhone)))
	return cardStyle.Render(b.String())
}

// Run starts the terminal program and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	m := New(ctx, opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("terminal UI: %w", err)
	}
	return nil
}
