// Package viz renders the interactive playground and episode replays
// in the terminal.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/svrgn-eu/BallDragDrop-sub004/internal/config"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/fsm"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/geom"
	"github.com/svrgn-eu/BallDragDrop-sub004/internal/session"
)

// One terminal cell covers this many world pixels. Cells are taller
// than wide, so the vertical scale is larger to keep motion roughly
// isotropic on screen.
const (
	pxPerCellX = 10.0
	pxPerCellY = 25.0
)

var (
	borderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	ballStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	heldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// TickMsg drives the physics cadence through the bubbletea loop, so
// every core mutation happens inside Update.
type TickMsg time.Time

// Model is the playground. Pointer events arrive as mouse messages and
// feed the session's input boundary; ticks pump the scheduler.
type Model struct {
	sess     *session.Session
	cfg      *config.Config
	interval time.Duration

	canvasW int
	canvasH int

	dragging bool
	quitting bool
}

// NewModel builds the playground around an existing session. The
// session must have been created with this model's Bounds func (see
// NewPlayground for the usual wiring).
func NewModel(sess *session.Session, cfg *config.Config) *Model {
	return &Model{
		sess:     sess,
		cfg:      cfg,
		interval: cfg.Interval(),
		canvasW:  int(cfg.Area.Width / pxPerCellX),
		canvasH:  int(cfg.Area.Height / pxPerCellY),
	}
}

// NewPlayground wires a session and its playground model together: the
// model owns the bounds, which track terminal resizes.
func NewPlayground(cfg *config.Config, log *zap.Logger) (*Model, error) {
	m := &Model{
		cfg:      cfg,
		interval: cfg.Interval(),
		canvasW:  int(cfg.Area.Width / pxPerCellX),
		canvasH:  int(cfg.Area.Height / pxPerCellY),
	}
	sess, err := session.New(cfg.PhysicsConfig(), session.Options{
		StartPos:   geom.Vec2{X: cfg.Ball.X, Y: cfg.Ball.Y},
		Radius:     cfg.Ball.Radius,
		Bounds:     m.Bounds,
		Interval:   cfg.Interval(),
		MaxEpisode: cfg.MaxEpisode,
		Log:        log,
	})
	if err != nil {
		return nil, err
	}
	m.sess = sess
	return m, nil
}

// Session exposes the underlying session so callers can attach
// recorders before the program starts.
func (m *Model) Session() *session.Session {
	return m.sess
}

// Bounds is the containing area in world pixels, tracking the current
// canvas size. Queried by the scheduler once per tick.
func (m *Model) Bounds() geom.Rect {
	return geom.NewRect(float64(m.canvasW)*pxPerCellX, float64(m.canvasH)*pxPerCellY)
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "r":
			m.dragging = false
			m.sess.Reset()
		}

	case tea.WindowSizeMsg:
		// Leave room for the border and the two status lines.
		m.canvasW = msg.Width - 2
		m.canvasH = msg.Height - 5
		if m.canvasW < 10 {
			m.canvasW = 10
		}
		if m.canvasH < 5 {
			m.canvasH = 5
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case TickMsg:
		m.sess.Tick()
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	// The canvas starts one cell in from the border.
	p := m.cellToWorld(msg.X-1, msg.Y-1)
	now := time.Now()

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.dragging = m.sess.OnPointerDown(p)
		}
	case tea.MouseActionMotion:
		if m.dragging {
			m.sess.OnPointerMove(p, now)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.sess.OnPointerUp(p, now)
		}
	}
}

func (m *Model) cellToWorld(cx, cy int) geom.Vec2 {
	return geom.Vec2{
		X: (float64(cx) + 0.5) * pxPerCellX,
		Y: (float64(cy) + 0.5) * pxPerCellY,
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.sess.Ball()
	bx := int(snap.Pos.X / pxPerCellX)
	by := int(snap.Pos.Y / pxPerCellY)

	style := ballStyle
	if m.sess.State() == fsm.Held {
		style = heldStyle
	}

	var sb strings.Builder
	for y := 0; y < m.canvasH; y++ {
		for x := 0; x < m.canvasW; x++ {
			if x == bx && y == by {
				sb.WriteString(style.Render("●"))
			} else {
				sb.WriteByte(' ')
			}
		}
		if y < m.canvasH-1 {
			sb.WriteByte('\n')
		}
	}

	metrics := m.sess.SchedulerMetrics()
	status := fmt.Sprintf("%s  %s  %s  %s",
		headerStyle.Render("balldrag"),
		labelStyle.Render("state:")+valueStyle.Render(m.sess.State().String()),
		labelStyle.Render("speed:")+valueStyle.Render(fmt.Sprintf("%.0f px/s", snap.Vel.Len())),
		labelStyle.Render("steps:")+valueStyle.Render(fmt.Sprintf("%d", metrics.UpdateCount)),
	)
	help := helpStyle.Render("drag the ball with the mouse, throw it with a flick · r reset · q quit")

	return borderStyle.Render(sb.String()) + "\n" + status + "\n" + help
}
