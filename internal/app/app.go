package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"cansat-dashboard.klederson.com/internal/chart"
	"cansat-dashboard.klederson.com/internal/config"
	"cansat-dashboard.klederson.com/internal/playback"
	"cansat-dashboard.klederson.com/internal/telemetry"
	"cansat-dashboard.klederson.com/internal/ui"
	"cansat-dashboard.klederson.com/internal/video"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Options wires the dashboard to its data sources.
type Options struct {
	Table    *telemetry.Table
	Sink     playback.Sink // optional
	Opener   video.Opener
	Settings config.Settings
	Session  string
	Logger   *slog.Logger
}

// shared holds state shared between the Bubble Tea model copies.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	state  *playback.State
	driver *playback.Driver
	rc     *video.Reconnector
	screen *video.Screen
	timers timers
	logger *slog.Logger

	surfaces [telemetry.NumChannels]*chart.Surface
	charts   [telemetry.NumChannels]string

	exporting bool
	closed    bool
}

// AppModel is the root Bubble Tea model for the ground station.
type AppModel struct {
	width  int
	height int

	tab    ui.Tab
	now    time.Time
	notice string

	session      string
	exportDir    string
	exportFormat chart.Format

	keys keyMap
	help help.Model

	shared *shared
}

// New creates the dashboard. Nothing runs until the program calls Init.
func New(opts Options) AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := opts.Settings

	state := playback.NewState(opts.Table)
	screen := &video.Screen{}
	rc := video.NewReconnector(opts.Opener, s.Video.URL, screen, video.Options{
		DialTimeout: s.Video.DialTimeout,
		FrameTick:   s.Video.FrameTick,
		Backoff: video.Backoff{
			Initial: s.Video.Backoff.Initial,
			Max:     s.Video.Backoff.Max,
		},
		Logger: logger,
	})

	sh := &shared{
		state:  state,
		driver: playback.NewDriver(state, opts.Sink),
		rc:     rc,
		screen: screen,
		logger: logger,
	}
	sh.timers.register(clockTimer, config.ClockTick)
	sh.timers.register(playbackTimer, s.Telemetry.Tick)
	sh.timers.register(frameTimer, s.Video.FrameTick)
	for i := range sh.surfaces {
		sh.surfaces[i] = chart.New(config.ChartInitialWidth, config.ChartInitialHeight)
	}

	format, err := chart.ParseFormat(s.Export.Format)
	if err != nil {
		logger.Warn("export format defaulted to png", "error", err)
	}

	m := AppModel{
		now:          time.Now(),
		session:      opts.Session,
		exportDir:    s.Export.Dir,
		exportFormat: format,
		keys:         newKeyMap(),
		help:         help.New(),
		shared:       sh,
	}
	m.redrawCharts()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.shared.timers.arm(clockTimer),
		m.shared.timers.arm(playbackTimer),
		m.connectCmd(),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layoutCharts()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case timerMsg:
		if !m.shared.timers.fire(msg) {
			return m, nil
		}
		return m.onTimer(msg)

	case connectResultMsg:
		return m.onConnectResult(msg)

	case ExportDoneMsg:
		m.shared.exporting = false
		if msg.Err != nil {
			m.shared.logger.Error("chart export failed", "error", msg.Err)
			m.notice = "export failed: " + msg.Err.Error()
		} else {
			m.shared.logger.Info("charts exported", "files", len(msg.Paths), "dir", m.exportDir)
			m.notice = fmt.Sprintf("exported %d charts to %s", len(msg.Paths), m.exportDir)
		}
		return m, nil
	}

	return m, nil
}

func (m AppModel) onTimer(msg timerMsg) (tea.Model, tea.Cmd) {
	s := m.shared
	switch msg.id {
	case clockTimer:
		m.now = msg.at
		return m, s.timers.arm(clockTimer)

	case playbackTimer:
		outcome, err := s.driver.Tick()
		switch outcome {
		case playback.TickIdle:
			s.logger.Info("playback complete", "rows", s.state.Table.Len(), "skipped", s.state.Skipped)
			return m, nil
		case playback.TickSkipped:
			s.logger.Warn("telemetry row skipped", "error", err)
		case playback.TickAppended:
			if err != nil {
				s.logger.Warn("archive write failed", "error", err)
			}
			m.redrawCharts()
		}
		return m, s.timers.arm(playbackTimer)

	case frameTimer:
		reconnect, err := s.rc.Pull()
		if err != nil {
			s.logger.Debug("frame pull", "error", err)
		}
		if reconnect {
			return m, m.connectCmd()
		}
		return m, s.timers.arm(frameTimer)

	case retryTimer:
		return m, m.connectCmd()
	}
	return m, nil
}

// connectCmd starts a reconnect and returns the dial as a command so the
// UI loop never blocks on the network. It returns nil while a dial is
// already outstanding.
func (m AppModel) connectCmd() tea.Cmd {
	s := m.shared
	if s.closed {
		return nil
	}
	dial, ok := s.rc.StartConnect()
	if !ok {
		return nil
	}
	s.timers.stop(frameTimer)
	s.timers.stop(retryTimer)
	return func() tea.Msg {
		stream, err := dial()
		return connectResultMsg{stream: stream, err: err}
	}
}

func (m AppModel) onConnectResult(msg connectResultMsg) (tea.Model, tea.Cmd) {
	s := m.shared
	if err := s.rc.FinishConnect(msg.stream, msg.err); err != nil {
		// Disarmed: retry after the backoff delay, one frame tick by default.
		return m, s.timers.armAfter(retryTimer, s.rc.RetryDelay())
	}
	if s.rc.Armed() {
		return m, s.timers.arm(frameTimer)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a, ok := m.keys.matchAction(msg); ok {
		return m.runAction(a)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.NextTab):
		m.tab = m.tab.Next()
	case key.Matches(msg, m.keys.PrevTab):
		m.tab = m.tab.Prev()
	case key.Matches(msg, m.keys.Tab1):
		m.tab = ui.TabTelemetry
	case key.Matches(msg, m.keys.Tab2):
		m.tab = ui.TabGraphs
	case key.Matches(msg, m.keys.Tab3):
		m.tab = ui.TabTelecast

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layoutCharts()

	case key.Matches(msg, m.keys.Export):
		return m.export()
	}

	return m, nil
}

// shutdown stops every timer and releases the stream handle.
func (m AppModel) shutdown() {
	s := m.shared
	s.closed = true
	for id := timerID(0); id < numTimers; id++ {
		s.timers.stop(id)
	}
	s.rc.Close()
}

// export writes every chart off the UI loop. The histories are
// copied first since playback keeps appending while the export runs.
func (m AppModel) export() (tea.Model, tea.Cmd) {
	s := m.shared
	if s.exporting {
		m.notice = "export already in progress"
		return m, nil
	}
	s.exporting = true
	m.notice = "exporting charts..."

	type job struct {
		ch     telemetry.Channel
		xs, ys []float64
	}
	jobs := make([]job, 0, telemetry.NumChannels)
	for i, ch := range telemetry.Channels {
		h := &s.state.History[i]
		jobs = append(jobs, job{
			ch: ch,
			xs: append([]float64(nil), h.XS()...),
			ys: append([]float64(nil), h.YS()...),
		})
	}

	dir, format := m.exportDir, m.exportFormat
	prefix := exportPrefix(m.session, m.now)
	return m, func() tea.Msg {
		var paths []string
		var errs []error
		for _, j := range jobs {
			p, err := chart.ExportAs(format, dir, prefix, j.xs, j.ys, j.ch.Title(), xLabel, yLabel(j.ch))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			paths = append(paths, p)
		}
		return ExportDoneMsg{Paths: paths, Err: errors.Join(errs...)}
	}
}

func exportPrefix(session string, now time.Time) string {
	if len(session) > 8 {
		session = session[:8]
	}
	stamp := now.Format("20060102-150405")
	if session == "" {
		return stamp
	}
	return session + "_" + stamp
}

const xLabel = "Time"

func yLabel(ch telemetry.Channel) string {
	if u := ch.Unit(); u != "" {
		return ch.Title() + " (" + u + ")"
	}
	return ch.Title()
}

// redrawCharts re-renders every chart from its full history.
func (m AppModel) redrawCharts() {
	s := m.shared
	for i, ch := range telemetry.Channels {
		h := &s.state.History[i]
		s.charts[i] = s.surfaces[i].Render(h.XS(), h.YS(), ch.Title(), xLabel, yLabel(ch))
	}
}

// layoutCharts fits the chart surfaces to the graph grid and redraws them.
func (m AppModel) layoutCharts() {
	if m.width == 0 || m.height == 0 {
		return
	}
	w, h := ui.ChartCellSize(telemetry.NumChannels, m.width, m.bodyHeight())
	for _, sf := range m.shared.surfaces {
		sf.Resize(w, h)
	}
	m.redrawCharts()
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing ground station..."
	}
	s := m.shared

	header := m.renderHeader()
	tabs := ui.RenderTabs(m.width, m.tab)
	footer := m.renderFooter()
	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(tabs) - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	switch m.tab {
	case ui.TabGraphs:
		body = ui.RenderGraphGrid(s.charts[:], m.width, bodyH)
	case ui.TabTelecast:
		vw, vh := ui.VideoAreaSize(m.width, bodyH)
		state := s.rc.State().String()
		if s.rc.Dialing() {
			state = "CONNECTING"
		}
		body = ui.RenderTelecastPanel(s.screen.View(vw, vh), s.rc.Addr(), state,
			s.rc.Frames(), s.rc.Reconnects(), m.width, bodyH)
	default:
		body = ui.RenderTelemetryPanel(m.readings(), s.state.Cursor, s.state.Table.Len(),
			s.state.Skipped, s.state.Phase().String(), m.width, bodyH)
	}

	return ui.ComposeLayout(header, tabs, ui.ClampLines(body, bodyH), footer)
}

func (m AppModel) renderHeader() string {
	return ui.RenderHeader(m.width, m.now, m.shared.state.Cursor)
}

func (m AppModel) renderFooter() string {
	s := m.shared
	ops := m.keys.operator()
	controls := make([]ui.Control, 0, len(ops))
	for _, b := range ops {
		h := b.Help()
		controls = append(controls, ui.Control{Key: h.Key, Label: h.Desc})
	}

	stream := s.rc.State().String()
	if s.rc.Dialing() {
		stream = "CONNECTING"
	}
	fields := []string{
		"PLAYBACK " + s.state.Phase().String(),
		"STREAM " + stream,
	}
	if m.notice != "" {
		fields = append(fields, m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		ui.RenderFooter(m.width, controls, ui.StatusLine(fields...)),
		m.help.View(m.keys),
	)
}

// bodyHeight is the height left for the active page.
func (m AppModel) bodyHeight() int {
	h := m.height -
		lipgloss.Height(m.renderHeader()) -
		lipgloss.Height(ui.RenderTabs(m.width, m.tab)) -
		lipgloss.Height(m.renderFooter())
	if h < 3 {
		h = 3
	}
	return h
}

// readings builds the telemetry page from the latest appended sample.
func (m AppModel) readings() []ui.Reading {
	s := m.shared
	out := make([]ui.Reading, 0, telemetry.NumChannels)
	for i, ch := range telemetry.Channels {
		h := &s.state.History[i]
		v, ok := h.Last()
		out = append(out, ui.Reading{
			Title:    ch.Title(),
			Unit:     ch.Unit(),
			Value:    v,
			HasValue: ok,
			Trend:    h.Tail(config.SparklineWidth),
		})
	}
	return out
}

// Close releases the stream if the program exited without a quit key.
func (m AppModel) Close() {
	m.shutdown()
}
