// Package tui renders the health dashboard: today's hydration progress,
// streak and points, upcoming reminders, and the tip of the day. The model
// drives the reminder scheduler from its own minute tick, so reminders fire
// as popups while the dashboard is open without a separate watcher process.
package tui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/logger"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/scheduler"
	"github.com/julianstephens/habitsync/internal/storage"
	"github.com/julianstephens/habitsync/internal/streak"
	"github.com/julianstephens/habitsync/internal/water"
)

type tickMsg time.Time

// dismissMsg clears the reminder popup; seq guards against a stale timer
// dismissing a newer popup.
type dismissMsg struct {
	seq int
}

type refreshMsg struct {
	profile models.Profile
	status  water.Status
	err     error
}

type waterMsg struct {
	status water.Status
	note   string
	err    error
}

// notificationInbox is the scheduler sink while the TUI owns the terminal.
// Fired reminders queue here and the next Update drains them into the popup.
type notificationInbox struct {
	mu   sync.Mutex
	msgs []string
}

func (n *notificationInbox) Notify(title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, fmt.Sprintf("%s: %s", title, body))
	return nil
}

func (n *notificationInbox) drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	msgs := n.msgs
	n.msgs = nil
	return msgs
}

// Model is the dashboard's root bubbletea model.
type Model struct {
	store   storage.Provider
	ownerID string

	sched   *scheduler.Scheduler
	tracker *water.Tracker
	engine  *streak.Engine
	inbox   *notificationInbox

	keys KeyMap
	help help.Model

	profile  models.Profile
	status   water.Status
	tip      string
	popup    string
	popupSeq int
	flash    string
	errMsg   string

	width  int
	height int
}

func NewModel(store storage.Provider, ownerID string) Model {
	inbox := &notificationInbox{}
	engine := streak.NewEngine(store)

	sched := scheduler.New(store, inbox, ownerID)
	sched.OnDayRollover(func(now time.Time) {
		if _, err := engine.Bootstrap(ownerID, now); err != nil {
			logger.Warn("Streak bootstrap on day rollover failed", "error", err)
		}
	})

	return Model{
		store:   store,
		ownerID: ownerID,
		sched:   sched,
		tracker: water.NewTracker(store, ownerID),
		engine:  engine,
		inbox:   inbox,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		tip:     TipForDay(time.Now().Weekday()),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.refresh, tick())
}

func tick() tea.Cmd {
	return tea.Tick(constants.DefaultPollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func dismissAfter(seq int) tea.Cmd {
	d := time.Duration(constants.NotificationDurationMs) * time.Millisecond
	return tea.Tick(d, func(time.Time) tea.Msg {
		return dismissMsg{seq: seq}
	})
}

// refresh reloads the reminder mirrors, counts today toward the streak, and
// re-reads the hydration snapshot.
func (m Model) refresh() tea.Msg {
	now := time.Now()
	if err := m.sched.Reload(); err != nil {
		return refreshMsg{err: err}
	}
	profile, err := m.engine.Bootstrap(m.ownerID, now)
	if err != nil {
		return refreshMsg{err: err}
	}
	status, err := m.tracker.Status(now)
	if err != nil {
		return refreshMsg{err: err}
	}
	return refreshMsg{profile: profile, status: status}
}

func (m Model) logGlass() tea.Msg {
	status, err := m.tracker.LogGlass(time.Now())
	if errors.Is(err, water.ErrDailyCapReached) {
		return waterMsg{status: status, note: "Daily water goal already reached"}
	}
	if err != nil {
		return waterMsg{err: err}
	}
	note := ""
	if status.GoalReached {
		note = "🎉 Daily water goal reached!"
	}
	return waterMsg{status: status, note: note}
}

func (m Model) removeGlass() tea.Msg {
	status, err := m.tracker.RemoveLastGlass(time.Now())
	if errors.Is(err, water.ErrNoGlassesToday) {
		return waterMsg{status: status, note: "No glasses logged today"}
	}
	if err != nil {
		return waterMsg{err: err}
	}
	return waterMsg{status: status}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		m.sched.Tick(now)
		m.tip = TipForDay(now.Weekday())
		m.flash = ""

		cmds := []tea.Cmd{tick(), m.refresh}
		if fired := m.inbox.drain(); len(fired) > 0 {
			m.popup = fired[len(fired)-1]
			m.popupSeq++
			cmds = append(cmds, dismissAfter(m.popupSeq))
		}
		return m, tea.Batch(cmds...)

	case dismissMsg:
		if msg.seq == m.popupSeq {
			m.popup = ""
		}
		return m, nil

	case refreshMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.profile = msg.profile
		m.status = msg.status
		return m, nil

	case waterMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.status = msg.status
		m.flash = msg.note
		// Points moved with the glass, so re-read the profile too.
		return m, m.refresh

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.LogWater):
		return m, m.logGlass
	case key.Matches(msg, m.keys.RemoveGlass):
		return m, m.removeGlass
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh
	case key.Matches(msg, m.keys.Dismiss):
		m.popup = ""
		return m, nil
	}
	return m, nil
}
