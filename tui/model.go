package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	tea "charm.land/bubbletea/v2"

	"go.jacobcolvin.com/tintplay/dial"
	"go.jacobcolvin.com/tintplay/log"
	"go.jacobcolvin.com/tintplay/player"
)

// tickMsg signals that it is time to run the render loop again.
type tickMsg struct {
	gen uint64
}

// openMsg loads a path given on the command line.
type openMsg struct {
	path string
}

// logMsg carries one log line for the status line.
type logMsg string

type dragTarget int

const (
	dragNone dragTarget = iota
	dragSlider
	dragDial
)

// Model is the Bubble Tea model for the player. It translates terminal input
// into [player.Event]s and turns each [player.Result] into commands.
//
// Create instances with [New].
type Model struct {
	ctx      context.Context
	player   *player.Player
	canvas   *Canvas
	logs     *log.Subscription
	prompt   *Prompt
	info     *player.Info
	pending  player.Event
	initial  string
	startDir string
	status   string
	width    int
	height   int
	drag     dragTarget
	dragDial player.Channel
}

// Option configures a [Model].
type Option func(*Model)

// WithInitialPath loads path as soon as the program starts.
func WithInitialPath(path string) Option {
	return func(m *Model) {
		m.initial = path
	}
}

// WithLogs shows lines from pub in the status line, starting with the most
// recent one.
func WithLogs(pub *log.Publisher) Option {
	return func(m *Model) {
		m.logs = pub.Subscribe()

		if latest := pub.Latest(); latest != "" {
			m.status = latest
		}
	}
}

// WithStartDir presets the file prompt to dir.
func WithStartDir(dir string) Option {
	return func(m *Model) {
		m.startDir = dir
	}
}

// New creates a [Model] driving p, which must render to canvas.
func New(ctx context.Context, p *player.Player, canvas *Canvas, opts ...Option) *Model {
	m := &Model{
		ctx:    ctx,
		player: p,
		canvas: canvas,
		width:  80,
		height: 24,
		status: "o: open · space: play/pause · ?: help · q: quit",
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init loads the initial path, if any, and starts listening for log entries.
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	if m.initial != "" {
		path := m.initial
		cmds = append(cmds, func() tea.Msg { return openMsg{path: path} })
	}

	cmds = append(cmds, m.waitForLog())

	return tea.Batch(cmds...)
}

func (m *Model) waitForLog() tea.Cmd {
	sub := m.logs
	if sub == nil {
		return nil
	}

	return func() tea.Msg {
		line, ok := <-sub.C()
		if !ok {
			return nil
		}

		return logMsg(line)
	}
}

// Update handles terminal input, ticks, and log entries.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		return m, m.handle(player.Tick{Gen: msg.gen})

	case openMsg:
		return m, m.handle(player.Load{Path: msg.path})

	case logMsg:
		m.status = string(msg)

		return m, m.waitForLog()

	case tea.KeyPressMsg:
		return m, m.onKey(msg)

	case tea.MouseClickMsg:
		m.onClick(msg.Mouse())

	case tea.MouseMotionMsg:
		return m, m.onMotion(msg.Mouse())

	case tea.MouseReleaseMsg:
		return m, m.onRelease(msg.Mouse())
	}

	return m, nil
}

// handle dispatches ev to the player and turns the result into a command.
func (m *Model) handle(ev player.Event) tea.Cmd {
	res := m.player.Handle(m.ctx, ev)

	if res.Err != nil {
		m.status = res.Err.Error()
	}

	if res.Info != nil {
		m.info = res.Info
	}

	if res.Prompt != nil {
		m.prompt = NewPrompt(res.Prompt, m.startDir)
	}

	if res.Next == nil {
		return nil
	}

	gen := res.Next.Gen

	return tea.Tick(res.Next.Delay, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m *Model) quit() tea.Cmd {
	err := m.player.Close()
	if err != nil {
		m.status = err.Error()
	}

	return tea.Quit
}

func (m *Model) onKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.info != nil {
		m.info = nil

		return nil
	}

	if m.prompt != nil {
		done, path := m.prompt.Update(msg)
		if !done {
			return nil
		}

		m.prompt = nil

		return m.handle(player.FileChosen{Path: path})
	}

	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m.quit()
	case "space":
		return m.handle(player.TogglePlay{})
	case "o":
		return m.handle(player.ChangeSource{})
	case "?", "h":
		return m.handle(player.ShowHelp{})
	}

	return nil
}

func (m *Model) onClick(mouse tea.Mouse) {
	if m.info != nil {
		m.info = nil

		return
	}

	if m.prompt != nil || mouse.Button != tea.MouseLeft {
		return
	}

	switch {
	// Buttons fire on release over the same button.
	case mouse.Y == m.buttonRow():
		b, ok := m.buttonAt(mouse.X)
		if ok {
			m.pending = b.event
		}

	case m.onSlider(mouse.X, mouse.Y):
		m.drag = dragSlider
		m.player.Handle(m.ctx, player.SliderPress{})
		m.player.Handle(m.ctx, player.SliderDrag{Position: m.sliderPosAt(mouse.X)})

	default:
		c, ok := m.dialAt(mouse.X, mouse.Y)
		if ok {
			m.drag = dragDial
			m.dragDial = c
		}
	}
}

func (m *Model) onMotion(mouse tea.Mouse) tea.Cmd {
	switch m.drag {
	case dragSlider:
		m.player.Handle(m.ctx, player.SliderDrag{Position: m.sliderPosAt(mouse.X)})

	case dragDial:
		x, y := m.dialLocal(m.dragDial, mouse.X, mouse.Y)
		m.player.Handle(m.ctx, player.DialDrag{Channel: m.dragDial, X: x, Y: y})

	case dragNone:
	}

	return nil
}

func (m *Model) onRelease(mouse tea.Mouse) tea.Cmd {
	if m.pending != nil {
		ev := m.pending
		m.pending = nil

		b, ok := m.buttonAt(mouse.X)
		if ok && mouse.Y == m.buttonRow() && b.event == ev {
			return m.handle(ev)
		}

		return nil
	}

	drag := m.drag
	m.drag = dragNone

	if drag != dragSlider {
		return nil
	}

	m.player.Handle(m.ctx, player.SliderDrag{Position: m.sliderPosAt(mouse.X)})

	return m.handle(player.SliderRelease{})
}

// View draws the video, the controls, and any open dialog.
func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	return v
}

func (m *Model) render() string {
	switch {
	case m.info != nil:
		return m.modal(titleStyle.Render(m.info.Title) + "\n\n" + m.info.Body + "\n\n" +
			faintStyle.Render("press any key"))
	case m.prompt != nil:
		return m.modal(m.prompt.View())
	}

	return m.screen()
}

func (m *Model) modal(body string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modalStyle.Render(body))
}

func (m *Model) screen() string {
	var b strings.Builder

	b.WriteString(m.canvas.View(m.width, m.videoRows()))
	b.WriteByte('\n')
	b.WriteString(m.buttonLine())
	b.WriteByte('\n')
	b.WriteString(m.sliderLine())

	for _, line := range m.dialLines() {
		b.WriteByte('\n')
		b.WriteString(line)
	}

	b.WriteByte('\n')
	b.WriteString(faintStyle.Render(ansi.Truncate(m.status, m.width, "…")))

	return b.String()
}

func (m *Model) buttonLine() string {
	parts := make([]string, 0, 3)
	for _, b := range m.buttons() {
		parts = append(parts, buttonStyle.Render(b.text))
	}

	return strings.Join(parts, " ")
}

func (m *Model) sliderLine() string {
	_, w := m.sliderBar()
	s := m.player.Slider()
	knob := m.sliderCell(s.Position)

	track := []rune(strings.Repeat("━", w))

	return "[" +
		string(track[:knob]) +
		knobStyle.Render("●") +
		string(track[knob+1:]) +
		"] " +
		fmt.Sprintf("%d/%d", s.Position, s.Max)
}

func (m *Model) dialLines() []string {
	lines := make([]string, dialRows)
	sideW := dialSpacing - dialCols - 1

	for c := player.Red; c <= player.Blue; c++ {
		d := m.player.Dial(c)
		glyphs := dial.Render(d.Angle(), dialCols, dialRows)

		for r := range dialRows {
			var side string

			switch r {
			case 1:
				side = d.Label()
			case 2:
				side = fmt.Sprintf("%.2f", d.Value())
			}

			lines[r] += channelStyles[c].Render(glyphs[r]) + " " + fmt.Sprintf("%-*s", sideW, side)
		}
	}

	return lines
}
