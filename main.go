package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nraghuveer/lc-status/app"
	lc "github.com/nraghuveer/lc-status/lc_api"
	"github.com/nraghuveer/lc-status/reminder"
	"github.com/sirupsen/logrus"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)
var panelStyle = lipgloss.NewStyle().Inherit(docStyle).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)
var headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
var mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
var dotStyle = lipgloss.NewStyle().Bold(true)

const progressBarWidth = 30

type snapshotMsg reminder.Snapshot

type indicatorMsg struct {
	status  *reminder.UserStatus
	loading bool
}

type model struct {
	svc       *reminder.Service
	snap      reminder.Snapshot
	indicator indicatorMsg
	spinner   spinner.Model
	input     textinput.Model
	editing   bool
	bar       progress.Model
	notice    string
}

func initModel(svc *reminder.Service) model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	input := textinput.New()
	input.Placeholder = "LeetCode username"
	input.CharLimit = 64

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = progressBarWidth

	m := model{svc: svc, snap: svc.Store().Snapshot(), spinner: s, input: input, bar: bar}
	if m.snap.Username == "" {
		m.editing = true
		m.input.Focus()
	}
	return m
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.editing {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.updateInput(msg)
		}
		switch keypress := msg.String(); keypress {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.notice = ""
			m.svc.RefreshAll()
		case "u":
			m.editing = true
			m.input.SetValue(m.snap.Username)
			m.input.Focus()
			return m, textinput.Blink
		case "o":
			if m.snap.Daily == nil {
				m.notice = "no daily challenge loaded yet"
				break
			}
			if err := app.OpenUrlInBrowser(m.snap.Daily.URL()); err != nil {
				logrus.WithError(err).Warn("failed to open daily challenge")
				m.notice = "could not open browser"
			}
		}

	case snapshotMsg:
		m.snap = reminder.Snapshot(msg)

	case indicatorMsg:
		m.indicator = msg

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.snap.Username != "" {
			m.editing = false
			m.input.Blur()
		}
		return m, nil
	case "enter":
		username := strings.TrimSpace(m.input.Value())
		if username == "" {
			return m, nil
		}
		m.editing = false
		m.input.Blur()
		m.notice = ""
		if err := m.svc.SetUsername(username); err != nil {
			m.notice = "username not saved: " + err.Error()
		}
		m.snap = m.svc.Store().Snapshot()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.editing {
		prompt := headingStyle.Render("LeetCode Reminder") + "\n\n" +
			"Enter your LeetCode username\n\n" + m.input.View() + "\n\n" +
			mutedStyle.Render("enter to connect · esc to cancel · ctrl+c to quit")
		return panelStyle.Render(prompt)
	}

	var sections []string
	sections = append(sections, m.headerView())
	if m.snap.Empty() {
		if m.snap.Loading {
			sections = append(sections, m.spinner.View()+" loading "+m.snap.Username+"...")
		} else {
			sections = append(sections, mutedStyle.Render("nothing loaded yet, press r to refresh"))
		}
	} else {
		sections = append(sections, m.statusView(), m.dailyView(), m.progressView())
	}
	if m.snap.Err != "" {
		sections = append(sections, errorStyle.Render(m.snap.Err))
	}
	if m.notice != "" {
		sections = append(sections, mutedStyle.Render(m.notice))
	}
	sections = append(sections, mutedStyle.Render("r refresh · u switch user · o open daily · q quit"))
	return panelStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m model) headerView() string {
	dot := dotStyle.Copy().Foreground(lipgloss.Color("240")).Render("●")
	if status := m.indicator.status; status != nil {
		color := lipgloss.Color("196")
		if status.DailyProblemCompleted {
			color = lipgloss.Color("42")
		}
		dot = dotStyle.Copy().Foreground(color).Render("●")
	}
	header := dot + " " + headingStyle.Render(m.snap.Username)
	if p := m.snap.Profile; p != nil && p.Ranking != nil {
		header += mutedStyle.Render(fmt.Sprintf("  Rank %d", *p.Ranking))
	}
	if m.snap.Avatar != nil {
		header += mutedStyle.Render("  [avatar]")
	}
	if m.snap.Loading {
		header += " " + m.spinner.View()
	}
	return header + "\n"
}

func (m model) statusView() string {
	status := m.snap.Status
	if status == nil {
		return mutedStyle.Render("status unavailable")
	}
	return fmt.Sprintf("Today %d solved · Streak %d · Total %d", status.SolvedToday, status.Streak, status.TotalSolved)
}

func (m model) dailyView() string {
	daily := m.snap.Daily
	if daily == nil {
		return mutedStyle.Render("no daily challenge")
	}
	state := "Pending"
	if m.snap.Status != nil && m.snap.Status.DailyProblemCompleted {
		state = "Done"
	}
	return fmt.Sprintf("\nDAILY CHALLENGE %s\n%s [%s] %s\n", mutedStyle.Render(daily.Date), daily.Title, daily.Difficulty, state)
}

func (m model) progressView() string {
	rows := lc.NewProgress(m.snap.Profile)
	if rows.Len() == 0 {
		return ""
	}
	var b strings.Builder
	iter := rows.CreateIterator()
	for iter.HasNext() {
		row, err := iter.Next()
		if err != nil {
			break
		}
		fmt.Fprintf(&b, "%-7s %s %d/%d\n", row.Difficulty, m.bar.ViewAs(row.Fraction()), row.Solved, row.Total)
	}
	return b.String()
}

// subscribe forwards store changes into the program. Only the newest pending
// value of each kind is kept so a slow UI never blocks a writer.
func subscribe(p *tea.Program, store *reminder.Store, cfg lc.Config) (stop func()) {
	snaps := make(chan reminder.Snapshot, 1)
	indicators := make(chan indicatorMsg, 1)
	done := make(chan struct{})

	cancelSnaps := store.Subscribe(func(s reminder.Snapshot) { latest(snaps, s) })
	cancelIndicator := store.SubscribeStatus(cfg.Debounce, func(status *reminder.UserStatus, loading bool) {
		latest(indicators, indicatorMsg{status: status, loading: loading})
	})

	go func() {
		for {
			select {
			case s := <-snaps:
				p.Send(snapshotMsg(s))
			case i := <-indicators:
				p.Send(i)
			case <-done:
				return
			}
		}
	}()

	return func() {
		cancelSnaps()
		cancelIndicator()
		close(done)
	}
}

func latest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

func newLogger(cfg lc.Config) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	if cfg.LogFile == "" {
		logger.SetOutput(os.Stderr)
		return logger, func() error { return nil }, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f.Close, nil
}

func run() error {
	config, err := lc.LoadConfig("config.yaml")
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(config)
	if err != nil {
		return err
	}
	defer closeLog()
	logrus.SetOutput(logger.Out)

	loc, err := config.Location()
	if err != nil {
		return err
	}
	names, err := openUsernameDB(config.DBPath)
	if err != nil {
		return err
	}
	defer names.Close()

	client := lc.NewClient(config.Endpoint,
		lc.WithHTTPClient(&http.Client{Timeout: config.HTTPTimeout}),
		lc.WithLogger(logger))
	svc := reminder.NewService(client,
		reminder.WithAvatarFetcher(client),
		reminder.WithUsernameStore(names),
		reminder.WithLogger(logger),
		reminder.WithLocation(loc),
		reminder.WithRefreshCooldown(config.RefreshCooldown))
	defer svc.Close()
	if err := svc.Load(config.Username); err != nil {
		return err
	}

	p := tea.NewProgram(initModel(svc), tea.WithAltScreen())
	stop := subscribe(p, svc.Store(), config)
	defer stop()

	scheduler := reminder.NewScheduler(svc, config.RefreshInterval, logger)
	scheduler.Start()
	defer scheduler.Stop()

	return p.Start()
}

func main() {
	if err := run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
