package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nudgekit/nudge/internal/cli/formatter"
	"github.com/nudgekit/nudge/internal/service"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	var interval time.Duration
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the reminder scheduler continuously with a live view",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("watch needs an interactive terminal; use 'nudge remind tick' from cron instead")
			}
			if interval < time.Second {
				return fmt.Errorf("interval must be at least 1s")
			}

			model := newWatchModel(app, interval, dryRun)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Time between reminder passes")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Never send, only report what each pass would do")

	return cmd
}

// ── messages ─────────────────────────────────────────────────────────────────

type passDoneMsg struct {
	results []service.TickResult
	at      time.Time
	err     error
}

type passDueMsg struct{}

// ── model ────────────────────────────────────────────────────────────────────

type watchKeymap struct {
	Tick   key.Binding
	DryRun key.Binding
	Quit   key.Binding
}

func defaultWatchKeymap() watchKeymap {
	return watchKeymap{
		Tick:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tick now")),
		DryRun: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle dry-run")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type watchModel struct {
	app      *App
	interval time.Duration
	dryRun   bool
	keys     watchKeymap

	running  bool
	results  []service.TickResult
	lastPass time.Time
	passes   int
	sent     int
	err      error
}

func newWatchModel(app *App, interval time.Duration, dryRun bool) *watchModel {
	return &watchModel{
		app:      app,
		interval: interval,
		dryRun:   dryRun,
		keys:     defaultWatchKeymap(),
	}
}

func (m *watchModel) Init() tea.Cmd {
	return m.runPass()
}

func (m *watchModel) runPass() tea.Cmd {
	dryRun := m.dryRun
	m.running = true
	return func() tea.Msg {
		now := time.Now().UTC()
		results, err := m.app.Reminders.Tick(context.Background(), now, dryRun)
		return passDoneMsg{results: results, at: now, err: err}
	}
}

func (m *watchModel) scheduleNext() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return passDueMsg{}
	})
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tick):
			if !m.running {
				return m, m.runPass()
			}
		case key.Matches(msg, m.keys.DryRun):
			m.dryRun = !m.dryRun
		}

	case passDueMsg:
		if !m.running {
			return m, m.runPass()
		}
		return m, m.scheduleNext()

	case passDoneMsg:
		m.running = false
		m.results = msg.results
		m.lastPass = msg.at
		m.err = msg.err
		m.passes++
		for _, r := range msg.results {
			if r.Outcome == service.OutcomeSent {
				m.sent++
			}
		}
		return m, m.scheduleNext()
	}

	return m, nil
}

func (m *watchModel) View() string {
	header := formatter.Header("nudge watch")

	mode := formatter.StyleGreen.Render("live")
	if m.dryRun {
		mode = formatter.StyleBlue.Render("dry-run")
	}
	status := fmt.Sprintf("%s  %s %s  %s %s  %s %s",
		mode,
		formatter.Dim("interval"), formatter.StyleFg.Render(m.interval.String()),
		formatter.Dim("passes"), formatter.StyleFg.Render(fmt.Sprintf("%d", m.passes)),
		formatter.Dim("sent"), formatter.StyleFg.Render(fmt.Sprintf("%d", m.sent)),
	)

	body := formatter.Dim("waiting for first pass...")
	if m.err != nil {
		body = formatter.StyleRed.Render("pass failed: " + m.err.Error())
	} else if m.passes > 0 {
		body = formatter.FormatTickResults(m.results, m.dryRun)
	}

	footer := formatter.Dim("t tick now · d toggle dry-run · q quit")
	if !m.lastPass.IsZero() {
		footer = formatter.Dim("last pass "+m.lastPass.Format("15:04:05")+"  ") + footer
	}

	return header + "\n" + status + "\n\n" + body + "\n" + footer + "\n"
}
