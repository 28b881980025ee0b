package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/pacer"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/storage"
	"github.com/san-kum/bonsai/internal/tui"
	"github.com/san-kum/bonsai/internal/viz"
)

const appName = "bonsai"

var (
	live           bool
	timeStep       float64
	procedural     bool
	infinite       bool
	wait           float64
	screensaver    bool
	message        string
	messageTimeout float64
	base           int
	leaves         string
	multiplier     int
	lifetime       float64
	life           int
	printTree      bool
	seed           int64
	saveFile       string
	loadFile       string
	verbose        bool

	configFile string
	preset     string
	plain      bool
	rows       int
	cols       int
	logFile    string
	theme      string
	colorMode  string
)

// main registers the grow flags on the root command and the helper
// subcommands, then executes it. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          appName,
		Short:        "grow a bonsai tree in your terminal",
		SilenceUsage: true,
		RunE:         runGrow,
	}

	defaultPath := storage.DefaultPath(appName)

	pf := rootCmd.PersistentFlags()
	pf.IntVarP(&life, "life", "L", growth.DefaultLife, "life; higher -> more growth (0-200)")
	pf.IntVarP(&multiplier, "multiplier", "M", growth.DefaultMultiplier, "branch multiplier; higher -> more branching (0-20)")
	pf.Int64VarP(&seed, "seed", "s", 0, "seed random number generator (0 uses the clock)")
	pf.StringVarP(&leaves, "leaf", "c", strings.Join(growth.DefaultLeaves, ","), "comma-delimited list of strings randomly chosen for leaves")
	pf.BoolVarP(&procedural, "procedural", "P", false, "procedural leaf clusters at the tips of dead branches")
	pf.IntVarP(&base, "base", "b", config.DefaultBase, "ascii-art plant base to use, 0 is none")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&rows, "rows", 0, "screen rows (defaults to the terminal height)")
	pf.IntVar(&cols, "cols", 0, "screen columns (defaults to the terminal width)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	pf.StringVar(&colorMode, "color", "auto", "color output: auto, always or never")
	pf.StringVar(&logFile, "log", "", "write logs to this file")

	f := rootCmd.Flags()
	f.BoolVarP(&live, "live", "l", false, "live mode: show each step of growth")
	f.Float64VarP(&timeStep, "time", "t", config.DefaultTimeStep, "in live mode, wait TIME secs between steps of growth")
	f.BoolVarP(&infinite, "infinite", "i", false, "infinite mode: keep growing trees")
	f.Float64VarP(&wait, "wait", "w", config.DefaultWait, "in infinite mode, wait TIME between each tree")
	f.BoolVarP(&screensaver, "screensaver", "S", false, "screensaver mode; equivalent to -li and quit on any keypress")
	f.StringVarP(&message, "message", "m", "", "attach message next to the tree")
	f.Float64VarP(&messageTimeout, "msgtime", "T", 0, "clear message after SECS seconds")
	f.Float64VarP(&lifetime, "name", "N", 0, "create a named tree that grows over TIME seconds of real time; resume it with --load")
	f.BoolVarP(&printTree, "print", "p", false, "print tree to terminal when finished")
	f.StringVarP(&saveFile, "save", "W", "", "save progress to file (default "+defaultPath+")")
	f.StringVarP(&loadFile, "load", "C", "", "load progress from file (default "+defaultPath+")")
	f.BoolVarP(&verbose, "verbose", "v", false, "show growth diagnostics")
	f.BoolVar(&plain, "plain", false, "draw with plain ANSI escapes instead of the full screen UI")
	f.Lookup("save").NoOptDefVal = defaultPath
	f.Lookup("load").NoOptDefVal = defaultPath

	rootCmd.AddCommand(calibrateCmd(), statsCmd(), exportCmd(), presetsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		fl := flags.Lookup(name)
		return fl != nil && fl.Changed
	}

	if changed("life") {
		cfg.Life = life
	}
	if changed("multiplier") {
		cfg.Multiplier = multiplier
	}
	if changed("seed") {
		cfg.Seed = seed
	}
	if changed("leaf") {
		cfg.Leaves = config.ParseLeaves(leaves)
	}
	if changed("procedural") {
		cfg.Procedural = procedural
	}
	if changed("base") {
		cfg.Base = base
	}
	if changed("theme") {
		cfg.Theme = theme
	}
	if changed("live") {
		cfg.Live = live
	}
	if changed("time") {
		cfg.TimeStep = timeStep
	}
	if changed("infinite") {
		cfg.Infinite = infinite
	}
	if changed("wait") {
		cfg.Wait = wait
	}
	if changed("screensaver") {
		cfg.Screensaver = screensaver
	}
	if changed("message") {
		cfg.Message = message
	}
	if changed("msgtime") {
		cfg.MessageTimeout = messageTimeout
	}
	if changed("name") {
		cfg.Lifetime = lifetime
	}
	if changed("print") {
		cfg.Print = printTree
	}
	if changed("verbose") {
		cfg.Verbose = verbose
	}
	if changed("save") {
		cfg.SaveFile = saveFile
	}
	if changed("load") {
		cfg.LoadFile = loadFile
	}

	cfg.Normalize()
	if cfg.Named() && cfg.SaveFile == "" {
		cfg.SaveFile = storage.DefaultPath(appName)
	}
	if cfg.Screensaver {
		if cfg.SaveFile == "" {
			cfg.SaveFile = storage.DefaultPath(appName)
		}
		if cfg.LoadFile == "" {
			cfg.LoadFile = storage.DefaultPath(appName)
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().Unix()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setupColor() error {
	switch colorMode {
	case "auto":
	case "always":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	default:
		return fmt.Errorf("unknown color mode: %s", colorMode)
	}
	return nil
}

// setupLogging sends logs to --log, or to stderr unless the full screen UI
// owns the terminal.
func setupLogging(fullScreen bool) (io.Closer, error) {
	log.SetPrefix(appName + ": ")
	if logFile != "" {
		f, err := tea.LogToFile(logFile, appName)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		return f, nil
	}
	if fullScreen {
		log.SetOutput(io.Discard)
	} else {
		log.SetOutput(os.Stderr)
	}
	return nil, nil
}

// screenSize is --cols/--rows, then the terminal, then 80x24.
func screenSize() (int, int) {
	w, h, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w <= 0 || h <= 0 {
		w, h = 80, 24
	}
	if cols > 0 {
		w = cols
	}
	if rows > 0 {
		h = rows
	}
	return w, h
}

func simConfig(cfg *config.Config, w, h int) sim.Config {
	return sim.Config{
		Params: cfg.Params(),
		Seed:   cfg.Seed,
		Bounds: growth.Bounds{Rows: h - viz.BaseHeight(cfg.Base), Cols: w},
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// session is one resolved grow invocation.
type session struct {
	cfg    *config.Config
	sim    sim.Config
	pacer  pacer.Pacer
	record storage.Record
	named  bool
}

// prepare loads any saved record and builds the pacing plan. A record that
// cannot be read is logged and the tree starts fresh.
func prepare(ctx context.Context, cfg *config.Config, w, h int) (*session, error) {
	s := &session{cfg: cfg}
	now := time.Now()
	step := seconds(cfg.TimeStep)
	s.pacer = pacer.Pacer{Live: cfg.Live, Step: step}

	loaded := false
	if cfg.LoadFile != "" {
		rec, err := storage.New(cfg.LoadFile).Load()
		if err != nil {
			log.Printf("load %s: %v; starting a fresh tree", cfg.LoadFile, err)
		} else {
			loaded = true
			cfg.Seed = rec.Seed
			s.record = rec
			if rec.Named() {
				// A named tree always regrows the way -N planted it.
				cfg.Procedural = true
				cfg.Print = false
				cfg.Infinite = false
				s.named = true
				s.pacer = pacer.Resume(rec, now)
			} else {
				s.pacer.Target = rec.Ticks
			}
		}
	}

	s.sim = simConfig(cfg, w, h)

	if cfg.Named() && !(loaded && s.named) {
		rec, err := pacer.NewNamed(ctx, s.sim, cfg.Lifetime, now)
		if err != nil {
			return nil, err
		}
		log.Printf("named tree: %.3f seconds per tick", rec.SecondsPerTick)
		s.record = rec
		s.named = true
		s.pacer = pacer.Resume(rec, now)
	}
	return s, nil
}

func (s *session) save(seed int64, ticks uint64) {
	if s.cfg.SaveFile == "" {
		return
	}
	rec := storage.Record{Seed: seed, Ticks: ticks, Created: time.Now()}
	if s.named {
		rec.Created = s.record.Created
		rec.SecondsPerTick = s.record.SecondsPerTick
	}
	if err := storage.New(s.cfg.SaveFile).Save(rec); err != nil {
		log.Printf("save %s: %v", s.cfg.SaveFile, err)
	}
}

func (s *session) options() tui.Options {
	return tui.Options{
		Sim:            s.sim,
		Pacer:          s.pacer,
		Infinite:       s.cfg.Infinite,
		Wait:           seconds(s.cfg.Wait),
		Screensaver:    s.cfg.Screensaver,
		Print:          s.cfg.Print,
		Verbose:        s.cfg.Verbose,
		Message:        s.cfg.Message,
		MessageTimeout: seconds(s.cfg.MessageTimeout),
		Base:           s.cfg.Base,
		Theme:          viz.GetTheme(s.cfg.Theme, time.Now()),
	}
}

func runGrow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := setupColor(); err != nil {
		return err
	}

	noScreen := plain || (cfg.Print && !cfg.Live && !cfg.Infinite)
	closer, err := setupLogging(!noScreen)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, h := screenSize()
	s, err := prepare(ctx, cfg, w, h)
	if err != nil {
		return err
	}

	if noScreen {
		return runPlain(ctx, s)
	}

	final, err := tui.Run(s.options(), w, h)
	if err != nil {
		return err
	}
	s.save(final.Seed(), final.Counters().Tick)

	if cfg.Print && final.Tree() != nil {
		opts := s.options()
		return viz.Print(os.Stdout, final.Tree(), opts.Base, opts.Theme)
	}
	return nil
}

// runPlain grows trees without the full screen UI, drawing frames only when
// the pacer makes steps visible.
func runPlain(ctx context.Context, s *session) error {
	opts := s.options()
	p := s.pacer
	cfg := s.sim

	for {
		sm, err := sim.New(cfg)
		if err != nil {
			return err
		}

		var r *tui.LiveRenderer
		var painted *viz.Canvas
		if plain && p.Live {
			r = tui.NewLiveRenderer(os.Stdout, sm, p, opts, 30)
			sm.AddObserver(r)
			r.Start()
		} else {
			painted = viz.NewCanvas(cfg.Bounds.Cols, cfg.Bounds.Rows)
		}

		result, err := sm.Run(ctx, p, func(evs []growth.Event) {
			if painted != nil {
				painted.PaintAll(evs)
			}
		})
		if r != nil {
			r.Stop()
			painted = r.Tree()
		}
		s.save(cfg.Seed, result.Ticks)

		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		log.Printf("seed %d finished after %d ticks", cfg.Seed, result.Ticks)

		if r == nil || s.cfg.Print {
			if err := viz.Print(os.Stdout, painted, opts.Base, opts.Theme); err != nil {
				return err
			}
		}

		if !s.cfg.Infinite {
			return nil
		}
		if err := pacer.Wait(ctx, opts.Wait); err != nil {
			return nil
		}
		cfg.Seed = time.Now().UnixNano()
		p.Target = 0
	}
}
