package app

import (
	"context"
	"log/slog"

	tea "charm.land/bubbletea/v2"

	"github.com/anmolrajas/portfolio/internal/chat"
	"github.com/anmolrajas/portfolio/internal/clock"
	"github.com/anmolrajas/portfolio/internal/config"
	"github.com/anmolrajas/portfolio/internal/contact"
	"github.com/anmolrajas/portfolio/internal/content"
	"github.com/anmolrajas/portfolio/internal/errors"
	"github.com/anmolrajas/portfolio/internal/logger"
	"github.com/anmolrajas/portfolio/internal/notification"
	"github.com/anmolrajas/portfolio/internal/scrollspy"
	"github.com/anmolrajas/portfolio/internal/theme"
	"github.com/anmolrajas/portfolio/internal/ui"
)

// Focus represents which component receives key presses
type Focus int

const (
	FocusPage Focus = iota
	FocusChat
	FocusContact
)

// String returns a human-readable name for the focus
func (f Focus) String() string {
	switch f {
	case FocusPage:
		return "Page"
	case FocusChat:
		return "Chat"
	case FocusContact:
		return "Contact"
	default:
		return "Unknown"
	}
}

// Panel is the side panel currently shown next to the page
type Panel int

const (
	PanelNone Panel = iota
	PanelChat
	PanelContact
)

// Options are the collaborators the model is built from. Zero values get
// defaults: the embedded portfolio, the canned responder, in-memory
// preferences and the Bubble Tea loop as scheduler.
type Options struct {
	Config     *config.Config
	Portfolio  *content.Portfolio
	Theme      *theme.Store
	Responder  chat.Responder
	Dispatcher contact.Dispatcher
	Notify     func(notice string) error
	Scheduler  clock.Scheduler
	Picker     clock.Picker
	ChatDelays *ChatDelays // Overrides the chat engine's lead and typing delays
}

// ChatDelays overrides the chat reply timing
type ChatDelays struct {
	Lead   clock.Range
	Typing clock.Range
}

// Model is the main Bubble Tea model
type Model struct {
	config    *config.Config
	portfolio *content.Portfolio

	header       *ui.Header
	footer       *ui.Footer
	page         *ui.Page
	chatPanel    *ui.ChatPanel
	contactPanel *ui.ContactPanel

	sched       clock.Scheduler
	loop        *Scheduler // Nil when an external scheduler drives the engines
	themes      *theme.Store
	unsubscribe func()
	tracker     *scrollspy.Tracker
	chat        *chat.Engine
	contact     *contact.Flow
	notify      func(notice string) error

	width  int
	height int
	focus  Focus
	panel  Panel

	typingAnimating bool
	flashTicking    bool
	cmds            []tea.Cmd // Commands raised from engine callbacks
	closed          bool

	log *slog.Logger
}

// New creates a new app model
func New(opts Options) *Model {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Portfolio == nil {
		opts.Portfolio = content.Default()
	}
	if opts.Theme == nil {
		opts.Theme = theme.NewStore(nil)
	}
	if opts.Dispatcher == nil {
		opts.Dispatcher = contact.DispatcherFunc(unconfiguredDispatch)
	}
	if opts.Notify == nil {
		opts.Notify = notification.ContactOutcome
	}

	m := &Model{
		config:       opts.Config,
		portfolio:    opts.Portfolio,
		footer:       ui.NewFooter(),
		page:         ui.NewPage(opts.Portfolio),
		chatPanel:    ui.NewChatPanel(),
		contactPanel: ui.NewContactPanel(),
		themes:       opts.Theme,
		notify:       opts.Notify,
		focus:        FocusPage,
		log:          logger.WithComponent("app"),
	}

	if opts.Scheduler != nil {
		m.sched = opts.Scheduler
	} else {
		m.loop = NewScheduler()
		m.sched = m.loop
	}

	items := make([]ui.NavItem, len(opts.Portfolio.Sections))
	for i, s := range opts.Portfolio.Sections {
		items[i] = ui.NavItem{ID: s.ID, Label: s.Nav}
	}
	m.header = ui.NewHeader(opts.Portfolio.Owner.Name, items)
	if len(items) > 0 {
		m.header.SetActive(items[0].ID)
	}

	ui.SetDark(m.themes.IsDark())
	m.unsubscribe = m.themes.Subscribe(m.applyTheme)

	m.tracker = scrollspy.NewTracker(m.sched, nil, m.header.SetActive)

	chatOpts := []chat.Option{}
	if opts.Responder != nil {
		chatOpts = append(chatOpts, chat.WithResponder(opts.Responder))
	}
	if opts.Picker != nil {
		chatOpts = append(chatOpts, chat.WithPicker(opts.Picker))
	}
	if opts.ChatDelays != nil {
		chatOpts = append(chatOpts, chat.WithDelays(opts.ChatDelays.Lead, opts.ChatDelays.Typing))
	}
	m.chat = chat.New(m.sched, chatOpts...)

	flowOpts := []contact.FlowOption{contact.WithOutcome(m.onContactOutcome)}
	if opts.Config.Contact.Timeout > 0 {
		flowOpts = append(flowOpts, contact.WithTimeout(opts.Config.Contact.Timeout))
	}
	m.contact = contact.NewFlow(m.sched, opts.Dispatcher, flowOpts...)

	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.drain()
}

// Close tears down every engine. Pending timers and in-flight work are
// discarded. It is idempotent.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.tracker.Close()
	m.chat.Close()
	m.contact.Close()
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
	m.log.Info("app closed")
}

// Focus returns the focused component
func (m *Model) Focus() Focus {
	return m.focus
}

// Panel returns the open side panel
func (m *Model) Panel() Panel {
	return m.panel
}

// ActiveSection returns the id of the section in view
func (m *Model) ActiveSection() string {
	return m.header.Active()
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.loop != nil && m.loop.Handle(msg) {
		m.sync()
		return m, m.drain()
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseWheelMsg:
		if cmd := m.handleMouseWheel(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case ui.FlashTickMsg:
		m.footer.ClearIfExpired()
		if m.footer.HasFlash() {
			cmds = append(cmds, ui.FlashTick())
		} else {
			m.flashTicking = false
		}

	case ui.TypingTickMsg:
		if m.chatPanel.AdvanceTyping() {
			cmds = append(cmds, ui.TypingTick())
		} else {
			m.typingAnimating = false
		}
	}

	m.sync()
	cmds = append(cmds, m.drain())
	return m, tea.Batch(cmds...)
}

// sync copies engine state into the view components. Engines change
// state from scheduler callbacks, so this runs after every message.
func (m *Model) sync() {
	m.header.SetScrolled(m.tracker.Scrolled())

	snap := m.chat.Snapshot()
	m.chatPanel.SetSnapshot(snap)
	if snap.Typing && !m.typingAnimating && !m.closed {
		m.typingAnimating = true
		m.cmds = append(m.cmds, ui.TypingTick())
	}

	m.syncContact()
	m.footer.SetMode(m.footerMode())
}

func (m *Model) syncContact() {
	phase := m.contact.Phase()
	if phase == m.contactPanel.Phase() {
		return
	}
	switch phase {
	case contact.PhaseSucceeded:
		m.contactPanel.SetDraft(m.contact.Draft())
	case contact.PhaseFailed:
		m.contactPanel.SetError(contact.FailureNotice)
	}
	m.contactPanel.SetPhase(phase)
}

func (m *Model) footerMode() ui.FooterMode {
	switch m.focus {
	case FocusChat:
		return ui.FooterChat
	case FocusContact:
		if m.contact.Phase() == contact.PhaseSubmitting {
			return ui.FooterSubmitting
		}
		return ui.FooterContact
	default:
		return ui.FooterPage
	}
}

// drain collects commands raised by callbacks and queued by the loop
// scheduler
func (m *Model) drain() tea.Cmd {
	cmds := m.cmds
	m.cmds = nil
	if m.loop != nil {
		cmds = append(cmds, m.loop.Drain())
	}
	return tea.Batch(cmds...)
}

// applyTheme is the theme store subscriber
func (m *Model) applyTheme(pref theme.Preference) {
	ui.SetDark(pref.IsDark)
	m.chatPanel.RefreshStyles()
	m.contactPanel.RefreshStyles()
	m.page.Refresh()
	m.log.Debug("theme applied", "value", pref.String())
}

// onContactOutcome runs on the loop when a submission settles
func (m *Model) onContactOutcome(out contact.Outcome) {
	m.syncContact()
	notice := out.Notice()
	m.cmds = append(m.cmds, m.showContactToast(out))

	if m.config.GetNotificationsEnabled() {
		notify, log := m.notify, m.log
		m.cmds = append(m.cmds, func() tea.Msg {
			if err := notify(notice); err != nil {
				log.Warn("desktop notification failed", "error", err)
			}
			return nil
		})
	}
}

func unconfiguredDispatch(ctx context.Context, p contact.Payload) error {
	return errors.E(errors.Op("contact.Dispatch"), errors.KindTransport, "no contact transport configured")
}
