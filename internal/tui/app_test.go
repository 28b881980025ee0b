package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/pacer"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/viz"
)

func testOptions() Options {
	cfg := sim.DefaultConfig()
	cfg.Seed = 3
	cfg.Params.Life = 40
	return Options{
		Sim:   cfg,
		Base:  2,
		Theme: viz.ThemeMono,
	}
}

// drive feeds tick messages until the model stops scheduling them.
func drive(t *testing.T, m Model, limit int) Model {
	t.Helper()
	msg := tea.Msg(tickMsg{m.gen})
	for i := 0; i < limit && !m.finished; i++ {
		next, _ := m.Update(msg)
		m = next.(Model)
		msg = tickMsg{m.gen}
	}
	return m
}

func TestModelBatchGrowsInOneTick(t *testing.T) {
	m := NewModel(testOptions(), 40, 20)
	if m.Err() != nil {
		t.Fatalf("plant failed: %v", m.Err())
	}

	next, cmd := m.Update(tickMsg{m.gen})
	m = next.(Model)
	if !m.Finished() {
		t.Fatal("a batch tree should finish in a single update")
	}
	if cmd != nil {
		t.Error("a finished batch tree waits for a key")
	}
	if m.Counters().Tick == 0 {
		t.Error("expected ticks")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if cmd == nil {
		t.Fatal("any key should quit a finished tree")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
	_ = next
}

func TestModelMatchesSimulator(t *testing.T) {
	opts := testOptions()
	m := drive(t, NewModel(opts, 40, 20), 1)

	cfg := opts.Sim
	cfg.Bounds = growth.Bounds{Rows: 20 - viz.BaseHeight(opts.Base), Cols: 40}
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	want := viz.NewCanvas(cfg.Bounds.Cols, cfg.Bounds.Rows)
	if _, err := s.Run(context.Background(), nil, func(evs []growth.Event) { want.PaintAll(evs) }); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if got := m.Tree().String(); got != want.String() {
		t.Errorf("model canvas differs from simulator run\n%s\nvs\n%s", got, want.String())
	}
}

func TestModelLiveStepsOncePerTick(t *testing.T) {
	opts := testOptions()
	opts.Pacer = pacer.Pacer{Live: true, Step: time.Millisecond}
	m := NewModel(opts, 40, 20)

	next, cmd := m.Update(tickMsg{m.gen})
	m = next.(Model)
	if m.Counters().Tick != 1 {
		t.Errorf("expected one tick, got %d", m.Counters().Tick)
	}
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}

	m = drive(t, m, 200000)
	if !m.Finished() {
		t.Fatal("expected the tree to finish")
	}
}

func TestModelFastForward(t *testing.T) {
	opts := testOptions()
	opts.Pacer = pacer.Pacer{Live: true, Step: time.Millisecond, Target: 10}
	m := NewModel(opts, 40, 20)

	next, _ := m.Update(tickMsg{m.gen})
	m = next.(Model)
	if got := m.Counters().Tick; got != 11 {
		t.Errorf("expected the first visible step to be tick 10, got %d ticks", got)
	}
}

func TestModelStaleTicksIgnored(t *testing.T) {
	m := NewModel(testOptions(), 40, 20)
	next, cmd := m.Update(tickMsg{m.gen + 1})
	m = next.(Model)
	if cmd != nil || m.Counters().Tick != 0 {
		t.Error("ticks from another tree must be ignored")
	}
}

func TestModelInfiniteRestarts(t *testing.T) {
	opts := testOptions()
	opts.Infinite = true
	opts.NewSeed = func() int64 { return 99 }
	m := drive(t, NewModel(opts, 40, 20), 1)
	if !m.Finished() {
		t.Fatal("expected the first tree to finish")
	}

	next, cmd := m.Update(restartMsg{m.gen})
	m = next.(Model)
	if m.Finished() || m.Seed() != 99 || m.trees != 2 {
		t.Errorf("expected a fresh tree with seed 99, got seed %d after %d trees", m.Seed(), m.trees)
	}
	if cmd == nil {
		t.Error("expected the new tree to start ticking")
	}
}

func TestModelWaitsForWindowSize(t *testing.T) {
	m := NewModel(testOptions(), 0, 0)
	if m.Tree() != nil {
		t.Fatal("no tree before the window size is known")
	}
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 30, Height: 15})
	m = next.(Model)
	if m.Tree() == nil || m.Tree().Height != 15-viz.BaseHeight(2) {
		t.Fatalf("expected a tree sized to the window")
	}
	if cmd == nil {
		t.Error("expected growth to start")
	}
}

func TestModelTooSmall(t *testing.T) {
	opts := testOptions()
	opts.Base = 1
	m := NewModel(opts, 40, 3)
	if m.Err() == nil {
		t.Fatal("a screen shorter than the base cannot hold a tree")
	}
	if !strings.Contains(m.View(), "canvas") {
		t.Errorf("expected the error in the view, got %q", m.View())
	}
}

func TestModelScreensaverQuitsOnAnyKey(t *testing.T) {
	opts := testOptions()
	opts.Screensaver = true
	m := NewModel(opts, 40, 20)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
}

func TestModelMessageAndVerbose(t *testing.T) {
	opts := testOptions()
	opts.Message = "hi"
	opts.Verbose = true
	m := drive(t, NewModel(opts, 40, 20), 1)

	view := m.Canvas().String()
	if !strings.Contains(view, "hi") {
		t.Error("expected the message in the view")
	}
	if !strings.Contains(view, "seed: 3") {
		t.Error("expected verbose diagnostics in the view")
	}

	next, _ := m.Update(hideMessageMsg{})
	m = next.(Model)
	if strings.Contains(m.Canvas().String(), "| hi") {
		t.Error("expected the message to be hidden")
	}
}

func TestLiveRenderer(t *testing.T) {
	opts := testOptions()
	cfg := opts.Sim
	cfg.Bounds = growth.Bounds{Rows: 17, Cols: 40}
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	var out bytes.Buffer
	p := pacer.Pacer{Live: true}
	r := NewLiveRenderer(&out, s, p, opts, 1000)
	s.AddObserver(r)

	r.Start()
	if _, err := s.Run(context.Background(), p, nil); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	r.Stop()

	if !strings.HasPrefix(out.String(), hideCursor) || !strings.HasSuffix(out.String(), showCursor) {
		t.Error("expected the cursor to be hidden and restored")
	}
	if !strings.Contains(out.String(), clearScreen) {
		t.Error("expected at least one frame")
	}
	if strings.TrimSpace(r.Tree().String()) == "" {
		t.Error("expected a painted tree")
	}
}
