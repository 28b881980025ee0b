package tui

import (
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/pacer"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/viz"
)

type tickMsg struct{ gen int }

type restartMsg struct{ gen int }

type hideMessageMsg struct{}

// Model grows trees inside a bubbletea program. The simulator is only ever
// touched from Update.
type Model struct {
	opts    Options
	sim     *sim.Simulator
	pacer   pacer.Pacer
	tree    *viz.Canvas
	overlay *viz.Canvas

	width, height int
	gen           int
	trees         int
	finished      bool
	showMessage   bool
	err           error
}

// NewModel prepares a model; if cols and rows are known the first tree is
// planted immediately, otherwise on the first window size message.
func NewModel(opts Options, cols, rows int) Model {
	m := Model{
		opts:        opts,
		pacer:       opts.Pacer,
		width:       cols,
		height:      rows,
		showMessage: opts.Message != "",
	}
	if cols > 0 && rows > 0 {
		m.err = m.plant(opts.Sim.Seed)
	}
	return m
}

func (m *Model) plant(seed int64) error {
	cols, rows := treeBounds(m.width, m.height, m.opts.Base)
	cfg := m.opts.Sim
	cfg.Seed = seed
	cfg.Bounds = growth.Bounds{Rows: rows, Cols: cols}

	s, err := sim.New(cfg)
	if err != nil {
		return fmt.Errorf("plant tree: %w", err)
	}
	m.sim = s
	m.tree = viz.NewCanvas(cols, rows)
	m.overlay = viz.NewCanvas(cols, rows)
	m.finished = false
	m.gen++
	m.trees++
	log.Printf("tree %d: seed %d, %dx%d", m.trees, seed, cols, rows)
	return nil
}

func (m Model) tick() tea.Cmd {
	gen := m.gen
	return func() tea.Msg { return tickMsg{gen} }
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.err != nil {
		return tea.Quit
	}
	if m.sim != nil {
		cmds = append(cmds, m.tick())
	}
	if m.showMessage && m.opts.MessageTimeout > 0 {
		cmds = append(cmds, tea.Tick(m.opts.MessageTimeout, func(time.Time) tea.Msg { return hideMessageMsg{} }))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.opts.Screensaver || (m.finished && !m.opts.Infinite) {
			return m, tea.Quit
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if m.sim == nil {
			if m.err = m.plant(m.opts.Sim.Seed); m.err != nil {
				return m, tea.Quit
			}
			return m, m.tick()
		}

	case tickMsg:
		if msg.gen != m.gen || m.finished {
			return m, nil
		}
		cmd := m.advance()
		return m, cmd

	case restartMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.pacer.Target = 0
		if m.err = m.plant(m.opts.newSeed()); m.err != nil {
			return m, tea.Quit
		}
		return m, m.tick()

	case hideMessageMsg:
		m.showMessage = false
	}
	return m, nil
}

// advance steps silently until a visible step has been drawn or the tree is
// finished, then schedules what comes next.
func (m *Model) advance() tea.Cmd {
	for {
		events, ok := m.sim.Next()
		m.tree.PaintAll(events)
		if !ok {
			return m.finish()
		}
		if tick := m.sim.Counters().Tick - 1; m.pacer.Visible(tick) {
			m.refreshOverlay()
			gen := m.gen
			return tea.Tick(m.pacer.Step, func(time.Time) tea.Msg { return tickMsg{gen} })
		}
	}
}

func (m *Model) refreshOverlay() {
	m.overlay.Clear()
	m.sim.Overlay(func(e growth.Event) { m.overlay.Paint(e) })
}

func (m *Model) finish() tea.Cmd {
	m.finished = true
	m.overlay.Clear()
	log.Printf("tree %d: finished after %d ticks", m.trees, m.sim.Counters().Tick)

	switch {
	case m.opts.Infinite:
		gen := m.gen
		return tea.Tick(m.opts.Wait, func(time.Time) tea.Msg { return restartMsg{gen} })
	case m.opts.Print:
		return tea.Quit
	}
	return nil
}

// Canvas is the tree as drawn so far, overlay and message included.
func (m Model) Canvas() *viz.Canvas {
	if m.tree == nil {
		return viz.NewCanvas(0, 0)
	}
	c := m.tree.Composite(m.overlay)
	if m.showMessage {
		viz.StampMessage(c, m.opts.Message, m.height)
	}
	if m.opts.Verbose && m.sim != nil {
		for i, line := range statusLines(m.sim, m.pacer) {
			c.Text(2, 1+i, line)
		}
	}
	return c
}

func (m Model) View() string {
	if m.err != nil {
		return m.err.Error() + "\n"
	}
	if m.Tree() == nil {
		return ""
	}
	return viz.Frame(m.Canvas(), m.opts.Base, m.opts.Theme)
}

// Tree is the painted tree without overlay or decorations.
func (m Model) Tree() *viz.Canvas { return m.tree }

func (m Model) Err() error { return m.err }

func (m Model) Finished() bool { return m.finished }

// Seed and Counters describe the tree that was growing when the program ended.
func (m Model) Seed() int64 {
	if m.sim == nil {
		return m.opts.Sim.Seed
	}
	return m.sim.Config().Seed
}

func (m Model) Counters() growth.Counters {
	if m.sim == nil {
		return growth.Counters{}
	}
	return m.sim.Counters()
}

// Run starts the program on the alternate screen and returns the final model.
func Run(opts Options, cols, rows int) (Model, error) {
	p := tea.NewProgram(NewModel(opts, cols, rows), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	m := final.(Model)
	return m, m.err
}
