package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bonsai/internal/config"
	"github.com/san-kum/bonsai/internal/export"
	"github.com/san-kum/bonsai/internal/growth"
	"github.com/san-kum/bonsai/internal/metrics"
	"github.com/san-kum/bonsai/internal/pacer"
	"github.com/san-kum/bonsai/internal/sim"
	"github.com/san-kum/bonsai/internal/viz"
)

var (
	calibrateLifetime float64
	graphWidth        int
	graphHeight       int
	exportFormat      string
	exportOutput      string
	exportScale       float64
)

func calibrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibrate",
		Short: "count the ticks a tree takes to finish",
		RunE:  runCalibrate,
	}
	cmd.Flags().Float64VarP(&calibrateLifetime, "name", "N", 0, "also derive seconds per tick for a named tree of this lifetime")
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "grow a tree silently and report its metrics",
		RunE:  runStats,
	}
	cmd.Flags().IntVar(&graphWidth, "width", 80, "graph width")
	cmd.Flags().IntVar(&graphHeight, "height", 10, "graph height")
	return cmd
}

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "grow a tree silently and export it as svg or json",
		RunE:  runExport,
	}
	cmd.Flags().StringVarP(&exportFormat, "format", "f", "svg", "output format: svg or json")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	cmd.Flags().Float64Var(&exportScale, "scale", 10, "svg cell width in pixels")
	return cmd
}

func presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}
}

// headless resolves the configuration of a subcommand that never draws live.
func headless(cmd *cobra.Command) (*config.Config, sim.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, sim.Config{}, err
	}
	if err := setupColor(); err != nil {
		return nil, sim.Config{}, err
	}
	if _, err := setupLogging(false); err != nil {
		return nil, sim.Config{}, err
	}
	w, h := screenSize()
	return cfg, simConfig(cfg, w, h), nil
}

func runCalibrate(cmd *cobra.Command, args []string) error {
	_, sc, err := headless(cmd)
	if err != nil {
		return err
	}

	ticks, err := pacer.Calibrate(cmd.Context(), sc)
	if err != nil {
		return err
	}

	fmt.Printf("seed: %d\n", sc.Seed)
	fmt.Printf("canvas: %dx%d\n", sc.Bounds.Cols, sc.Bounds.Rows)
	fmt.Printf("ticks: %d\n", ticks)
	if calibrateLifetime > 0 {
		spt, err := pacer.Rate(calibrateLifetime, ticks)
		if err != nil {
			return err
		}
		fmt.Printf("seconds per tick: %.6f\n", spt)
	}
	return nil
}

// grow runs one tree to completion and returns the painted canvas.
func grow(ctx context.Context, sc sim.Config, observers ...sim.Observer) (*sim.Result, *viz.Canvas, []sim.Metric, error) {
	s, err := sim.New(sc)
	if err != nil {
		return nil, nil, nil, err
	}
	ms := []sim.Metric{metrics.NewPeakBranches(), metrics.NewGlyphsDrawn(), metrics.NewLeafCells()}
	for _, m := range ms {
		s.AddMetric(m)
	}
	for _, o := range observers {
		s.AddObserver(o)
	}

	canvas := viz.NewCanvas(sc.Bounds.Cols, sc.Bounds.Rows)
	result, err := s.Run(ctx, nil, func(evs []growth.Event) { canvas.PaintAll(evs) })
	if err != nil {
		return nil, nil, nil, err
	}
	return result, canvas, ms, nil
}

func runStats(cmd *cobra.Command, args []string) error {
	_, sc, err := headless(cmd)
	if err != nil {
		return err
	}

	series := metrics.NewSeries(0)
	result, _, ms, err := grow(cmd.Context(), sc, series)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "seed\t%d\n", result.Seed)
	fmt.Fprintf(w, "ticks\t%d\n", result.Ticks)
	fmt.Fprintf(w, "branches\t%d\n", result.Branches)
	fmt.Fprintf(w, "shoots\t%d\n", result.Shoots)
	fmt.Fprintf(w, "trunks\t%d\n", result.Trunks)
	for _, m := range ms {
		fmt.Fprintf(w, "%s\t%.0f\n", m.Name(), m.Value())
	}
	fmt.Fprintf(w, "%s\t%.2f\n", series.Name(), series.Value())
	w.Flush()

	if len(series.Points()) > 1 {
		graph := asciigraph.Plot(series.Points(),
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("live branches per tick"),
		)
		fmt.Println()
		fmt.Println(viz.GraphStyle.Render(graph))
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, sc, err := headless(cmd)
	if err != nil {
		return err
	}

	result, canvas, _, err := grow(cmd.Context(), sc)
	if err != nil {
		return err
	}

	switch exportFormat {
	case "json":
		data := export.NewExportData(sc, result, canvas)
		if exportOutput == "" {
			return export.ExportJSONStdout(data)
		}
		return export.ExportJSON(exportOutput, data)
	case "svg":
		svg := export.CanvasToSVG(canvas, viz.GetTheme(cfg.Theme, time.Now()), exportScale)
		if exportOutput == "" {
			_, err := fmt.Println(svg)
			return err
		}
		return os.WriteFile(exportOutput, []byte(svg), 0644)
	}
	return fmt.Errorf("unknown export format: %s", exportFormat)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "name\tlife\tmultiplier\tbase\tprocedural")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%v\n", name, p.Life, p.Multiplier, p.Base, p.Procedural)
	}
	return w.Flush()
}
